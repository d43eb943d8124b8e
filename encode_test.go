package sempcfg_test

import (
	"errors"
	"testing"

	"github.com/reoring/sempcfg"
)

func TestAttributesJSON_Canonical(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), `{"msgVpns": [{
	  "msgVpnName": "vpn1",
	  "maxMsgSpoolUsage": 1500,
	  "enabled": true,
	  "authenticationBasicType": "a<b&c",
	  "queues": [{"queueName": "q"}]
	}]}`)
	got, err := firstChild(t, root, "msgVpns").AttributesJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n" +
		"  \"authenticationBasicType\": \"a<b&c\",\n" +
		"  \"enabled\": true,\n" +
		"  \"maxMsgSpoolUsage\": 1500,\n" +
		"  \"msgVpnName\": \"vpn1\"\n" +
		"}"
	if got != want {
		t.Fatalf("payload:\n%s\nwant:\n%s", got, want)
	}
}

func TestAttributesJSON_StructuredValues(t *testing.T) {
	o := sempcfg.NewObject("queues", map[string]any{
		"nested": map[string]any{"z": 1, "a": []any{true, nil, "s"}},
	})
	got, err := o.AttributesJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"nested\": {\"a\":[true,null,\"s\"],\"z\":1}\n}"
	if got != want {
		t.Fatalf("got:\n%s", got)
	}
	empty, _ := sempcfg.NewObject("queues", nil).AttributesJSON()
	if empty != "{\n}" {
		t.Fatalf("empty: %q", empty)
	}
}

func TestTreeJSON_Layout(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), `{"msgVpns": [{"msgVpnName": "v", "queues": [{"queueName": "q"}, {"queueName": "r"}]}]}`)
	got, err := root.TreeJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "msgVpns": [
    {
      "msgVpnName": "v",
      "queues": [
        {
          "queueName": "q"
        },
        {
          "queueName": "r"
        }
      ]
    }
  ]
}`
	if got != want {
		t.Fatalf("tree:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializationError(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), `{"msgVpns": [{"msgVpnName": "v"}]}`)
	vpn := firstChild(t, root, "msgVpns")
	vpn.SetAttribute("broken", make(chan int))

	_, err := vpn.AttributesJSON()
	if !errors.Is(err, sempcfg.ErrSerialization) {
		t.Fatalf("want serialization error, got %v", err)
	}
	e, _ := sempcfg.AsError(err)
	if e.SpecPath != "/msgVpns" || e.Attribute != "broken" || e.Cause == nil {
		t.Fatalf("context: %+v", e)
	}
	if _, err := sempcfg.Plan(root, sempcfg.ModeCreate); !errors.Is(err, sempcfg.ErrSerialization) {
		t.Fatalf("plan must fail: %v", err)
	}
	_, terr := root.TreeJSON()
	if terr == nil || root.String() != terr.Error() {
		t.Fatalf("String must report the failure: %q", root.String())
	}
}

package sempcfg_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/sempcfg"
	"github.com/reoring/sempcfg/command"
	"github.com/reoring/sempcfg/spec"
)

const (
	enablePayload  = "{\n  \"enabled\": true\n}"
	disablePayload = "{\n  \"enabled\": false\n}"
)

func TestCreate_WithoutDisableProtocol(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), `{"msgVpns": [{"msgVpnName": "vpn1",
	  "queues": [{"queueName": "q", "subscriptions": [{"subscriptionTopic": "a/b"}]}, {"queueName": "r"}]}]}`)
	l, err := sempcfg.Plan(root, sempcfg.ModeCreate)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"POST /msgVpns",
		"POST /msgVpns/vpn1/queues",
		"POST /msgVpns/vpn1/queues/q/subscriptions",
		"POST /msgVpns/vpn1/queues",
	}
	if got := lines(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("commands:\n%v\nwant:\n%v", got, want)
	}
	if l.Count(command.PATCH) != 0 {
		t.Fatalf("no enable PATCH expected")
	}
	if p := l.At(2).Payload; p != "{\n  \"subscriptionTopic\": \"a/b\"\n}" {
		t.Fatalf("payload: %q", p)
	}
}

const rdpDoc = `{"msgVpns": [{"msgVpnName": "vpn1", "restDeliveryPoints": [{
  "restDeliveryPointName": "r 1",
  "enabled": true,
  "queueBindings": [{"queueBindingName": "qb"}],
  "restConsumers": [{"restConsumerName": "rc", "enabled": true}]
}]}]}`

func TestCreate_WithDisableProtocol(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), rdpDoc)
	l, err := sempcfg.Plan(root, sempcfg.ModeCreate)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"POST /msgVpns",
		"POST /msgVpns/vpn1/restDeliveryPoints",
		"POST /msgVpns/vpn1/restDeliveryPoints/r+1/queueBindings",
		"POST /msgVpns/vpn1/restDeliveryPoints/r+1/restConsumers",
		"PATCH /msgVpns/vpn1/restDeliveryPoints/r+1",
	}
	if got := lines(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("commands:\n%v\nwant:\n%v", got, want)
	}
	wantRDP := "{\n  \"enabled\": false,\n  \"restDeliveryPointName\": \"r 1\"\n}"
	if p := l.At(1).Payload; p != wantRDP {
		t.Fatalf("rdp must be created disabled:\n%s", p)
	}
	if p := l.At(3).Payload; p != "{\n  \"enabled\": true,\n  \"restConsumerName\": \"rc\"\n}" {
		t.Fatalf("consumer has no protected children:\n%s", p)
	}
	if p := l.At(4).Payload; p != enablePayload {
		t.Fatalf("enable payload: %q", p)
	}

	rdp := firstChild(t, firstChild(t, root, "msgVpns"), "restDeliveryPoints")
	if v, _ := rdp.Attribute("enabled"); v != true {
		t.Fatalf("generation must not mutate attributes, enabled=%v", v)
	}
}

func TestCreate_DefaultObjectIsPatched(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), `{"msgVpns": [{"msgVpnName": "vpn1",
	  "aclProfiles": [{"aclProfileName": "default", "clientConnectDefaultAction": "allow"}]}]}`)
	l, err := sempcfg.Plan(root, sempcfg.ModeCreate)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"POST /msgVpns", "PATCH /msgVpns/vpn1/aclProfiles/default"}
	if got := lines(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("commands: %v", got)
	}
}

func TestDelete_Order(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), rdpDoc)
	l, err := sempcfg.Plan(root, sempcfg.ModeDelete)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"PATCH /msgVpns/vpn1/restDeliveryPoints/r+1",
		"DELETE /msgVpns/vpn1/restDeliveryPoints/r+1/queueBindings/qb",
		"DELETE /msgVpns/vpn1/restDeliveryPoints/r+1/restConsumers/rc",
		"DELETE /msgVpns/vpn1/restDeliveryPoints/r+1",
		"DELETE /msgVpns/vpn1",
	}
	if got := lines(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("commands:\n%v\nwant:\n%v", got, want)
	}
	if p := l.At(0).Payload; p != disablePayload {
		t.Fatalf("disable payload: %q", p)
	}
	if l.At(1).HasPayload() {
		t.Fatalf("DELETE carries no payload")
	}
}

func TestDelete_DefaultObjects(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), `{"msgVpns": [{"msgVpnName": "vpn1",
	  "aclProfiles": [{"aclProfileName": "default"}],
	  "clientUsernames": [{"clientUsername": "default", "enabled": true}]}]}`)
	l, err := sempcfg.Plan(root, sempcfg.ModeDelete)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"PATCH /msgVpns/vpn1/clientUsernames/default",
		"DELETE /msgVpns/vpn1",
	}
	if got := lines(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("commands: %v", got)
	}
	if l.At(0).Payload != disablePayload {
		t.Fatalf("payload: %q", l.At(0).Payload)
	}
}

// A default object that also needs the disable protocol gets one disable
// PATCH on delete, not two.
func TestDefaultObjectWithDisableProtocol(t *testing.T) {
	reg, err := spec.NewBuilder().
		DefaultObjectPaths("/msgVpns/restDeliveryPoints").
		Object("/msgVpns", "msgVpnName").
		Object("/msgVpns/restDeliveryPoints", "restDeliveryPointName").
		Default("enabled", false).
		Object("/msgVpns/restDeliveryPoints/queueBindings", "queueBindingName").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	root := buildTree(t, reg, `{"msgVpns": [{"msgVpnName": "v", "restDeliveryPoints": [
	  {"restDeliveryPointName": "default", "enabled": true, "queueBindings": [{"queueBindingName": "q"}]}
	]}]}`)
	rdp := firstChild(t, firstChild(t, root, "msgVpns"), "restDeliveryPoints")

	del := command.NewList()
	if err := rdp.GenerateDeleteCommands(del, "/msgVpns/v"); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"PATCH /msgVpns/v/restDeliveryPoints/default",
		"DELETE /msgVpns/v/restDeliveryPoints/default/queueBindings/q",
	}
	if got := lines(del); !reflect.DeepEqual(got, want) {
		t.Fatalf("delete: %v", got)
	}

	create := command.NewList()
	if err := rdp.GenerateCreateCommands(create, "/msgVpns/v"); err != nil {
		t.Fatal(err)
	}
	want = []string{
		"PATCH /msgVpns/v/restDeliveryPoints/default",
		"POST /msgVpns/v/restDeliveryPoints/default/queueBindings",
		"PATCH /msgVpns/v/restDeliveryPoints/default",
	}
	if got := lines(create); !reflect.DeepEqual(got, want) {
		t.Fatalf("create: %v", got)
	}
	if create.At(0).Payload != "{\n  \"enabled\": false,\n  \"restDeliveryPointName\": \"default\"\n}" {
		t.Fatalf("default object must be reconfigured disabled: %s", create.At(0).Payload)
	}
}

func TestPlan_DiscardsPartialListOnError(t *testing.T) {
	root := buildTree(t, fixtureSpec(t), `{"msgVpns": [{"msgVpnName": "ok"}, {"enabled": true}]}`)
	for _, mode := range []sempcfg.Mode{sempcfg.ModeCreate, sempcfg.ModeDelete} {
		l, err := sempcfg.Plan(root, mode)
		if !errors.Is(err, sempcfg.ErrMissingIdentifier) {
			t.Fatalf("%v: want missing identifier, got %v", mode, err)
		}
		if l != nil {
			t.Fatalf("%v: partial list must not be returned", mode)
		}
	}
}

func TestMode_String(t *testing.T) {
	if sempcfg.ModeCreate.String() != "create" || sempcfg.ModeDelete.String() != "delete" {
		t.Fatalf("mode names")
	}
}

// SEMP definitions flag parent keys as x-identifying too.
const queueAPI = `{
  "paths": {
    "/msgVpns": {"post": {"parameters": [{"in": "body", "schema": {"properties": {
      "msgVpnName": {"type": "string", "x-identifying": true}}}}]}},
    "/msgVpns/{msgVpnName}": {"get": {}},
    "/msgVpns/{msgVpnName}/queues": {"post": {"parameters": [{"in": "body", "schema": {"properties": {
      "msgVpnName": {"type": "string", "x-identifying": true},
      "queueName": {"type": "string", "x-identifying": true}}}}]}},
    "/msgVpns/{msgVpnName}/queues/{queueName}": {"get": {}}
  }
}`

func TestPlan_ImportedParentKeysDoNotIdentify(t *testing.T) {
	reg, _, err := spec.Import([]byte(queueAPI), spec.Options{})
	if err != nil {
		t.Fatal(err)
	}
	root := buildTree(t, reg, `{"msgVpns": [{"msgVpnName": "v", "queues": [{"queueName": "q"}]}]}`)

	create, err := sempcfg.Plan(root, sempcfg.ModeCreate)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := lines(create), []string{"POST /msgVpns", "POST /msgVpns/v/queues"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("create: got %v want %v", got, want)
	}
	del, err := sempcfg.Plan(root, sempcfg.ModeDelete)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := lines(del), []string{"DELETE /msgVpns/v/queues/q", "DELETE /msgVpns/v"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("delete: got %v want %v", got, want)
	}
}

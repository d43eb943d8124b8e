package command_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/reoring/sempcfg/command"
)

func sampleList() *command.List {
	l := command.NewList()
	l.Append(command.POST, "/msgVpns", "{\n  \"msgVpnName\": \"vpn1\"\n}")
	l.Append(command.PATCH, "/msgVpns/vpn1", "{\n  \"enabled\": true\n}")
	l.Append(command.DELETE, "/msgVpns/vpn1/queues/q1", "")
	return l
}

func TestList_PreservesEmissionOrder(t *testing.T) {
	l := sampleList()
	if l.Len() != 3 {
		t.Fatalf("len: %d", l.Len())
	}
	got := l.Commands()
	if got[0].Method != command.POST || got[1].Method != command.PATCH || got[2].Method != command.DELETE {
		t.Fatalf("order broken: %+v", got)
	}
	if l.Count(command.PATCH) != 1 || l.Count(command.DELETE) != 1 {
		t.Fatalf("count broken")
	}
	got[0].Path = "mutated"
	if l.At(0).Path != "/msgVpns" {
		t.Fatalf("Commands must return a copy")
	}
	if l.At(2).HasPayload() {
		t.Fatalf("DELETE has no payload")
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []command.Method{command.POST, command.PATCH, command.DELETE} {
		got, err := command.ParseMethod(strings.ToLower(m.String()))
		if err != nil || got != m {
			t.Fatalf("%v: got %v err %v", m, got, err)
		}
	}
	if _, err := command.ParseMethod("GET"); err == nil {
		t.Fatalf("GET is not part of the vocabulary")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := command.WriteText(&buf, sampleList()); err != nil {
		t.Fatal(err)
	}
	want := "POST /msgVpns\n{\n  \"msgVpnName\": \"vpn1\"\n}\n" +
		"PATCH /msgVpns/vpn1\n{\n  \"enabled\": true\n}\n" +
		"DELETE /msgVpns/vpn1/queues/q1\n"
	if buf.String() != want {
		t.Fatalf("text output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteJSON_EmbedsPayloads(t *testing.T) {
	var buf bytes.Buffer
	if err := command.WriteJSON(&buf, sampleList()); err != nil {
		t.Fatal(err)
	}
	var out []struct {
		Method  string         `json:"method"`
		Path    string         `json:"path"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(out) != 3 || out[0].Method != "POST" || out[0].Payload["msgVpnName"] != "vpn1" {
		t.Fatalf("unexpected: %+v", out)
	}
	if out[2].Payload != nil {
		t.Fatalf("DELETE payload must be omitted")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := command.Write(&buf, sampleList(), command.FormatTable); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	for _, want := range []string{"METHOD", "/msgVpns/vpn1/queues/q1", `{"enabled":true}`} {
		if !strings.Contains(s, want) {
			t.Fatalf("table missing %q:\n%s", want, s)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := command.ParseFormat("JSON"); err != nil || f != command.FormatJSON {
		t.Fatalf("got %v %v", f, err)
	}
	if _, err := command.ParseFormat("xml"); err == nil {
		t.Fatalf("xml is not supported")
	}
}

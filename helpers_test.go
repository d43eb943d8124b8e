package sempcfg_test

import (
	"testing"

	"github.com/reoring/sempcfg"
	"github.com/reoring/sempcfg/command"
	"github.com/reoring/sempcfg/document"
	"github.com/reoring/sempcfg/spec"
)

// fixtureSpec is a trimmed SEMP-like schema using the built-in default and
// disable path sets.
func fixtureSpec(t *testing.T) *spec.Spec {
	t.Helper()
	s, err := spec.NewBuilder().
		Object("/msgVpns", "msgVpnName").
		Attributes(spec.All, "authenticationBasicType").
		Attributes(spec.ReadOnly, "msgSpoolUsage").
		Default("enabled", false).
		Default("maxMsgSpoolUsage", 1500).
		Object("/msgVpns/queues", "queueName").
		Attributes(spec.RequiresDisable, "accessType").
		Default("accessType", "exclusive").
		Default("egressEnabled", false).
		Object("/msgVpns/queues/subscriptions", "subscriptionTopic").
		Object("/msgVpns/aclProfiles", "aclProfileName").
		Default("clientConnectDefaultAction", "disallow").
		Object("/msgVpns/aclProfiles/publishTopicExceptions", "publishTopicExceptionSyntax", "publishTopicException").
		Deprecated().
		Object("/msgVpns/clientUsernames", "clientUsername").
		Default("enabled", false).
		Object("/msgVpns/restDeliveryPoints", "restDeliveryPointName").
		Default("enabled", false).
		Default("clientProfileName", "default").
		Object("/msgVpns/restDeliveryPoints/queueBindings", "queueBindingName").
		Object("/msgVpns/restDeliveryPoints/restConsumers", "restConsumerName").
		Default("enabled", false).
		Default("remotePort", 8080).
		Object("/things", "a", "b").
		Object("/singles", "a").
		Build()
	if err != nil {
		t.Fatalf("fixture spec: %v", err)
	}
	return s
}

func decodeJSON(t *testing.T, src string) map[string]any {
	t.Helper()
	m, err := document.Decode([]byte(src), document.FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return m
}

// buildTree parses src under a fresh root of reg.
func buildTree(t *testing.T, reg spec.Registry, src string) *sempcfg.Object {
	t.Helper()
	root, err := sempcfg.NewRoot(reg, "")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if err := root.FromMap(decodeJSON(t, src)); err != nil {
		t.Fatalf("from map: %v", err)
	}
	return root
}

func firstChild(t *testing.T, o *sempcfg.Object, collection string) *sempcfg.Object {
	t.Helper()
	cs := o.Children(collection)
	if len(cs) == 0 {
		t.Fatalf("%s has no %s", o.SpecPath(), collection)
	}
	return cs[0]
}

// lines renders a command list as "METHOD path" strings.
func lines(l *command.List) []string {
	out := make([]string, 0, l.Len())
	for _, c := range l.Commands() {
		out = append(out, c.Method.String()+" "+c.Path)
	}
	return out
}

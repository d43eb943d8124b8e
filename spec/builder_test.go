package spec_test

import (
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/reoring/sempcfg/spec"
)

func TestBuilder_ChildrenAndAttributes(t *testing.T) {
	s, err := spec.NewBuilder().
		Object("/msgVpns", "msgVpnName").
		Attributes(spec.All, "enabled").
		Attributes(spec.ReadOnly, "msgSpoolUsage").
		Default("maxMsgSpoolUsage", 1500).
		Object("/msgVpns/queues", "queueName").
		Object("/msgVpns/aclProfiles/publishTopicExceptions", "publishTopicExceptionSyntax", "publishTopicException").
		Object("/msgVpns/aclProfiles", "aclProfileName").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	vpn, err := s.Lookup("/msgVpns")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(vpn.Children, []string{"aclProfiles", "queues"}) {
		t.Fatalf("children: %v", vpn.Children)
	}
	wantAll := []string{"enabled", "maxMsgSpoolUsage", "msgSpoolUsage", "msgVpnName"}
	if !reflect.DeepEqual(vpn.Attributes(spec.All), wantAll) {
		t.Fatalf("all: got %v want %v", vpn.Attributes(spec.All), wantAll)
	}
	if v, _ := vpn.Default("maxMsgSpoolUsage"); v != json.Number("1500") {
		t.Fatalf("defaults must be canonical: %#v", v)
	}
	acl, _ := s.Lookup("/msgVpns/aclProfiles")
	if !reflect.DeepEqual(acl.Children, []string{"publishTopicExceptions"}) {
		t.Fatalf("acl children: %v", acl.Children)
	}
	wantPaths := []string{"", "/msgVpns", "/msgVpns/aclProfiles", "/msgVpns/aclProfiles/publishTopicExceptions", "/msgVpns/queues"}
	if !reflect.DeepEqual(s.Paths(), wantPaths) {
		t.Fatalf("paths: %v", s.Paths())
	}
}

func TestBuilder_RejectsInvalidPaths(t *testing.T) {
	if _, err := spec.NewBuilder().Object("msgVpns").Build(); err == nil {
		t.Fatalf("relative path must be rejected")
	}
	if _, err := spec.NewBuilder().Object("/msgVpns/").Build(); err == nil {
		t.Fatalf("trailing slash must be rejected")
	}
	if _, err := spec.NewBuilder().Object("/msgVpns").Attributes(spec.AttributeType(99), "x").Build(); err == nil {
		t.Fatalf("invalid attribute type must be rejected")
	}
}

func TestAttributeType_RoundTrip(t *testing.T) {
	for _, at := range spec.AttributeTypes() {
		got, err := spec.ParseAttributeType(at.String())
		if err != nil || got != at {
			t.Fatalf("%v: got %v err %v", at, got, err)
		}
	}
	if _, err := spec.ParseAttributeType("bogus"); err == nil {
		t.Fatalf("unknown name must fail")
	}
	if spec.AttributeType(42).Valid() {
		t.Fatalf("42 is not a valid attribute type")
	}
}

package spec

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/sempcfg/document"
)

// Import compiles a SEMP v2 config API document (Swagger 2.0) into a Spec.
// The input can be raw JSON bytes or an already decoded map[string]any.
//
// Object paths such as /msgVpns/{msgVpnName}/queues/{queueName} yield the
// spec path /msgVpns/queues with identifying attributes [queueName].
// Composite identifiers use comma-joined templates:
// /msgVpns/{msgVpnName}/aclProfiles/{aclProfileName}/publishTopicExceptions/{publishTopicExceptionSyntax},{publishTopicException}.
// The attribute set comes from the POST body definition of the collection
// path (or the PATCH body of the object path when there is no POST).
func Import(doc any, opts Options) (*Spec, Diag, error) {
	d := &simpleDiag{}
	if doc == nil {
		return nil, d, errors.New("spec: nil document")
	}
	var root map[string]any
	switch t := doc.(type) {
	case []byte:
		m, err := document.Decode(t, document.FormatJSON)
		if err != nil {
			return nil, d, fmt.Errorf("spec: %w", err)
		}
		root = m
	case map[string]any:
		root, _ = document.Canonical(t).(map[string]any)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, d, fmt.Errorf("spec: cannot marshal input: %w", err)
		}
		m, err := document.Decode(b, document.FormatJSON)
		if err != nil {
			return nil, d, fmt.Errorf("spec: invalid marshaled JSON: %w", err)
		}
		root = m
	}

	paths, ok := root["paths"].(map[string]any)
	if !ok || len(paths) == 0 {
		return nil, d, errors.New("spec: document declares no paths")
	}
	defs, _ := root["definitions"].(map[string]any)

	b := NewBuilder()
	if opts.BasePath != "" {
		b.BasePath(opts.BasePath)
	} else if bp, ok := root["basePath"].(string); ok {
		b.BasePath(strings.TrimSuffix(bp, "/"))
	}
	if opts.DefaultObjectPaths != nil {
		b.DefaultObjectPaths(opts.DefaultObjectPaths...)
	}
	if opts.RequiresDisableChildPaths != nil {
		b.RequiresDisableChildPaths(opts.RequiresDisableChildPaths...)
	}

	raws := make([]string, 0, len(paths))
	for p := range paths {
		raws = append(raws, p)
	}
	sort.Strings(raws)

	var plans []pathPlan
	for _, raw := range raws {
		pp, err := planPath(raw)
		if err != nil {
			d.warnf("%v (skipped)", err)
			continue
		}
		pp.item, _ = paths[raw].(map[string]any)
		plans = append(plans, pp)
	}

	// Object paths first so identifier order always comes from the path template.
	described := make(map[string]bool)
	for _, pp := range plans {
		if !pp.object {
			continue
		}
		b.Object(pp.specPath, pp.identifiers...)
	}
	for _, pp := range plans {
		if pp.object {
			continue
		}
		post, ok := pp.item["post"].(map[string]any)
		if !ok {
			continue
		}
		ob := b.Object(pp.specPath)
		if truthy(post, "deprecated") {
			ob.Deprecated()
		}
		if sch := bodySchema(post); sch != nil {
			applyDefinition(ob, resolveRef(sch, defs, d, map[string]bool{}), opts, d)
			described[pp.specPath] = true
		}
	}
	for _, pp := range plans {
		if !pp.object || described[pp.specPath] {
			continue
		}
		patch, ok := pp.item["patch"].(map[string]any)
		if !ok {
			continue
		}
		if sch := bodySchema(patch); sch != nil {
			applyDefinition(b.Object(pp.specPath), resolveRef(sch, defs, d, map[string]bool{}), opts, d)
			described[pp.specPath] = true
		}
	}

	for _, p := range b.order {
		e := b.entries[p]
		if len(e.Identifiers) == 0 {
			d.warnf("%s: no object path, objects of this type cannot be addressed", p)
		}
		if !described[p] {
			d.warnf("%s: no request body definition, attribute set is limited to identifiers", p)
		}
	}

	s, err := b.Build()
	if err != nil {
		return nil, d, err
	}
	return s, d, nil
}

type pathPlan struct {
	specPath    string
	identifiers []string
	object      bool
	item        map[string]any
}

// planPath splits a path template into its spec path and, for object paths,
// the identifying attribute names of the last segment.
func planPath(raw string) (pathPlan, error) {
	segs := strings.Split(strings.Trim(raw, "/"), "/")
	if len(segs) == 0 || segs[0] == "" {
		return pathPlan{}, fmt.Errorf("path %q: empty", raw)
	}
	var literals []string
	var pp pathPlan
	for i, seg := range segs {
		isTemplate := strings.HasPrefix(seg, "{")
		if i%2 == 0 {
			if isTemplate {
				return pathPlan{}, fmt.Errorf("path %q: expected collection name at segment %d", raw, i)
			}
			literals = append(literals, seg)
			continue
		}
		if !isTemplate {
			return pathPlan{}, fmt.Errorf("path %q: expected identifier template at segment %d", raw, i)
		}
		if i == len(segs)-1 {
			ids, err := parseIdentifiers(seg)
			if err != nil {
				return pathPlan{}, fmt.Errorf("path %q: %w", raw, err)
			}
			pp.identifiers = ids
			pp.object = true
		}
	}
	pp.specPath = "/" + strings.Join(literals, "/")
	return pp, nil
}

func parseIdentifiers(seg string) ([]string, error) {
	parts := strings.Split(seg, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) < 3 || p[0] != '{' || p[len(p)-1] != '}' {
			return nil, fmt.Errorf("malformed identifier template %q", seg)
		}
		ids = append(ids, p[1:len(p)-1])
	}
	return ids, nil
}

func bodySchema(op map[string]any) map[string]any {
	params, _ := op["parameters"].([]any)
	for _, p := range params {
		pm, _ := p.(map[string]any)
		if in, _ := pm["in"].(string); in != "body" {
			continue
		}
		sch, _ := pm["schema"].(map[string]any)
		return sch
	}
	return nil
}

var defaultInDescription = regexp.MustCompile("The default value is `([^`]*)`")

// applyDefinition classifies every property of a body definition.
func applyDefinition(ob *ObjectBuilder, sch map[string]any, opts Options, d *simpleDiag) {
	if truthy(sch, "x-deprecated") {
		ob.Deprecated()
	}
	props, _ := sch["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for n := range props {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, name := range names {
		ps, _ := props[name].(map[string]any)
		ob.Attributes(All, name)
		if truthy(ps, "readOnly") {
			ob.Attributes(ReadOnly, name)
		}
		if truthy(ps, "writeOnly") || truthy(ps, "x-writeOnly") {
			ob.Attributes(WriteOnly, name)
		}
		if truthy(ps, "deprecated") || truthy(ps, "x-deprecated") {
			ob.Attributes(Deprecated, name)
		}
		if truthy(ps, "x-requiresDisable") {
			ob.Attributes(RequiresDisable, name)
		}
		if truthy(ps, "x-opaque") {
			ob.Attributes(Opaque, name)
		}
		// Identifier order comes from the path template only. SEMP also
		// flags the keys of parent objects as x-identifying.
		if truthy(ps, "x-identifying") && !slices.Contains(ob.e.Identifiers, name) && !ob.b.ancestorIdentifier(ob.e.SpecPath, name) {
			d.warnf("%s: property %q is x-identifying but not part of the path template (ignored)", ob.e.SpecPath, name)
		}
		if v, ok := ps["default"]; ok {
			ob.Default(name, v)
			continue
		}
		if !opts.DefaultFromDescription {
			continue
		}
		desc, _ := ps["description"].(string)
		m := defaultInDescription.FindStringSubmatch(desc)
		if m == nil {
			continue
		}
		v, err := document.DecodeAny([]byte(m[1]), document.FormatJSON)
		if err != nil {
			d.warnf("%s: property %q: unparsable default %q", ob.e.SpecPath, name, m[1])
			continue
		}
		ob.Default(name, v)
	}
	req, _ := sch["required"].([]any)
	for _, r := range req {
		if s, ok := r.(string); ok {
			ob.Attributes(Required, s)
		}
	}
}

func truthy(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

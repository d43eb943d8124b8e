package spec

import "strings"

const definitionsPrefix = "#/definitions/"

// resolveRef follows a local "#/definitions/..." $ref, merging the target
// shallowly into a copy of s (explicit fields in s win). Nested refs under
// properties are expanded as well.
func resolveRef(s map[string]any, defs map[string]any, d *simpleDiag, visited map[string]bool) map[string]any {
	if s == nil {
		return nil
	}
	ref, ok := s["$ref"].(string)
	if !ok {
		resolvePropertyRefs(s, defs, d, visited)
		return s
	}
	if !strings.HasPrefix(ref, definitionsPrefix) {
		d.warnf("$ref %q not supported (local definitions only)", ref)
		return s
	}
	key := strings.TrimPrefix(ref, definitionsPrefix)
	base, ok := defs[key].(map[string]any)
	if !ok {
		d.warnf("$ref to unknown definitions/%s", key)
		return s
	}
	if visited[key] {
		d.warnf("cyclic $ref detected at definitions/%s (skipping expansion)", key)
		return s
	}
	visited[key] = true
	resolved := deepCopyMap(base)
	resolvePropertyRefs(resolved, defs, d, visited)
	delete(visited, key)

	out := deepCopyMap(s)
	delete(out, "$ref")
	for k, v := range resolved {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

func resolvePropertyRefs(node map[string]any, defs map[string]any, d *simpleDiag, visited map[string]bool) {
	pm, ok := node["properties"].(map[string]any)
	if !ok {
		return
	}
	for k, raw := range pm {
		if sch, ok := raw.(map[string]any); ok {
			pm[k] = resolveRef(sch, defs, d, visited)
		}
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if mv, ok := v.(map[string]any); ok {
			out[k] = deepCopyMap(mv)
			continue
		}
		out[k] = v
	}
	return out
}

package sempcfg

import (
	"fmt"
	"maps"
	"slices"

	"github.com/reoring/sempcfg/document"
)

// FromMap populates o from a decoded document. Keys the registry lists as
// child collections of o's spec path take a list of mappings, each becoming
// an attached child; every other key is stored as an attribute. Keys are
// visited in ascending order so failures are reported deterministically.
func (o *Object) FromMap(m map[string]any) error {
	e, err := o.entry()
	if err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v := m[k]
		if !e.HasChild(k) {
			o.attributes[k] = document.Canonical(v)
			continue
		}
		items, err := childMaps(v)
		if err != nil {
			return newError(CodeInvalidShape, o.specPath, k, err)
		}
		for _, item := range items {
			child := NewObject(k, nil)
			if err := o.AddChild(child); err != nil {
				return err
			}
			if err := child.FromMap(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func childMaps(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return t, nil
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, it := range t {
			switch m := it.(type) {
			case map[string]any:
				out = append(out, m)
			case map[any]any:
				out = append(out, document.Canonical(m).(map[string]any))
			default:
				return nil, fmt.Errorf("item %d is %T, want a mapping", i, it)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("got %T, want a list", v)
	}
}

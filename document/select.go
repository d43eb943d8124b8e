package document

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Select evaluates a JSONPath expression against root and returns the single
// mapping it selects. Zero or several matches are errors.
func Select(root any, selector string) (map[string]any, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("document: invalid jsonpath '%s': %w", selector, err)
	}
	results := x.Get(root)
	switch len(results) {
	case 0:
		return nil, fmt.Errorf("document: jsonpath '%s' matched nothing", selector)
	case 1:
	default:
		return nil, fmt.Errorf("document: jsonpath '%s' matched %d values, want 1", selector, len(results))
	}
	m, ok := results[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document: jsonpath '%s': %w (got %T)", selector, ErrNotObject, results[0])
	}
	return m, nil
}

// Package document decodes configuration documents (JSON or YAML) into the
// JSON-like value tree consumed by sempcfg.Object.FromMap.
//
// Values are canonicalised so that equality checks between document values and
// schema defaults behave the same regardless of the input format:
//
//   - objects are map[string]any
//   - arrays are []any
//   - numbers are json.Number (goccy/go-json) holding the literal text
//   - strings, booleans and nil are kept as-is
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Format identifies the encoding of a document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// FormatFromPath picks the format from the file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ErrNotObject is returned when a document (or a selected part of it) is not
// a mapping.
var ErrNotObject = errors.New("document: root is not an object")

// Decode parses data and returns its root mapping.
func Decode(data []byte, f Format) (map[string]any, error) {
	v, err := DecodeAny(data, f)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w (got %T)", ErrNotObject, v)
	}
	return m, nil
}

// DecodeAny parses data and returns the canonical value tree.
func DecodeAny(data []byte, f Format) (any, error) {
	switch f {
	case FormatYAML:
		return decodeYAML(data)
	default:
		return decodeJSON(data)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("document: invalid JSON: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("document: invalid JSON: trailing data after top-level value")
	}
	return Canonical(v), nil
}

// LoadFile reads and decodes the file at path. When selector is non-empty it
// is evaluated as a JSONPath expression and must resolve to exactly one
// mapping.
func LoadFile(path, selector string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	v, err := DecodeAny(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if selector != "" {
		return Select(v, selector)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w (got %T)", path, ErrNotObject, v)
	}
	return m, nil
}

// Canonical converts v into the canonical value form described in the package
// documentation. Maps with non-string keys drop those keys.
func Canonical(v any) any {
	switch t := v.(type) {
	case nil, string, bool, json.Number:
		return v
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Canonical(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = Canonical(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = Canonical(t[i])
		}
		return arr
	case []map[string]any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = Canonical(t[i])
		}
		return arr
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int8:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int16:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint8:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint16:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	case float32:
		return json.Number(strconv.FormatFloat(float64(t), 'g', -1, 32))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	default:
		return v
	}
}

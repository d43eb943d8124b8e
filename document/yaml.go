package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// decodeYAML reads a single YAML document. Empty input is an error; extra
// documents in a multi-document stream are rejected.
func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document: empty YAML document")
		}
		return nil, fmt.Errorf("document: invalid YAML: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("document: multiple YAML documents are not supported")
	}
	return Canonical(node), nil
}

// DecodeYAMLStream decodes every document of a multi-document YAML stream,
// skipping empty documents.
func DecodeYAMLStream(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("document: invalid YAML: %w", err)
		}
		if node == nil {
			continue
		}
		out = append(out, Canonical(node))
	}
	return out, nil
}

package spec

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/reoring/sempcfg/document"
)

// ImportYAML compiles a SEMP API document written in YAML. A multi-document
// stream is treated as one bundle: paths and definitions of every document
// are merged and the first basePath wins.
func ImportYAML(data []byte, opts Options) (*Spec, Diag, error) {
	docs, err := document.DecodeYAMLStream(data)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("spec: %w", err)
	}
	switch len(docs) {
	case 0:
		return nil, &simpleDiag{}, errors.New("spec: empty YAML document")
	case 1:
		return Import(docs[0], opts)
	}
	bundle := map[string]any{}
	for i, doc := range docs {
		m, ok := doc.(map[string]any)
		if !ok {
			return nil, &simpleDiag{}, fmt.Errorf("spec: YAML document %d is %T, want a mapping", i, doc)
		}
		if bp, ok := m["basePath"]; ok {
			if _, seen := bundle["basePath"]; !seen {
				bundle["basePath"] = bp
			}
		}
		for _, key := range []string{"paths", "definitions"} {
			part, _ := m[key].(map[string]any)
			if len(part) == 0 {
				continue
			}
			dst, _ := bundle[key].(map[string]any)
			if dst == nil {
				dst = map[string]any{}
				bundle[key] = dst
			}
			maps.Copy(dst, part)
		}
	}
	return Import(bundle, opts)
}

// ImportFile reads path and imports it as JSON or YAML depending on the
// extension.
func ImportFile(path string, opts Options) (*Spec, Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("spec: read %s: %w", path, err)
	}
	if document.FormatFromPath(path) == document.FormatYAML {
		return ImportYAML(data, opts)
	}
	return Import(data, opts)
}

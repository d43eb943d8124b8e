package sempcfg

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/sempcfg/spec"
)

const indentUnit = "  "

// renderOpt controls one rendering pass.
type renderOpt struct {
	attributesOnly bool
	// forceDisabled renders "enabled" as false without touching the
	// stored attribute.
	forceDisabled bool
}

// AttributesJSON renders the attributes of o, without children, as a
// command payload.
func (o *Object) AttributesJSON() (string, error) {
	return o.render(renderOpt{attributesOnly: true})
}

// TreeJSON renders o with all of its descendants. Each child collection is
// a key holding an array of child renderings, after the attributes. The
// output is accepted by FromMap.
func (o *Object) TreeJSON() (string, error) {
	return o.render(renderOpt{})
}

// String returns TreeJSON, or the error text when rendering fails.
func (o *Object) String() string {
	s, err := o.TreeJSON()
	if err != nil {
		return err.Error()
	}
	return s
}

func (o *Object) render(opt renderOpt) (string, error) {
	b := &strings.Builder{}
	if err := o.writeJSON(b, 0, opt); err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeJSON writes "{", one line per key, and "}" at the given depth.
// Keys are ascending; a comma separates siblings and never trails.
func (o *Object) writeJSON(b *strings.Builder, level int, opt renderOpt) error {
	pad := strings.Repeat(indentUnit, level)
	inner := pad + indentUnit
	b.WriteString(pad)
	b.WriteString("{\n")

	names := o.AttributeNames()
	var collections []string
	if !opt.attributesOnly {
		collections = o.ChildCollections()
	}
	for i, name := range names {
		v := o.attributes[name]
		if opt.forceDisabled && name == spec.EnabledAttribute {
			v = false
		}
		raw, err := marshalValue(v)
		if err != nil {
			return newError(CodeSerialization, o.specPath, name, err)
		}
		b.WriteString(inner)
		b.Write(marshalKey(name))
		b.WriteString(": ")
		b.Write(raw)
		if i < len(names)-1 || len(collections) > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	for i, name := range collections {
		b.WriteString(inner)
		b.Write(marshalKey(name))
		b.WriteString(": [\n")
		list := o.children[name]
		for j, c := range list {
			if err := c.writeJSON(b, level+2, renderOpt{}); err != nil {
				return err
			}
			if j < len(list)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(inner)
		b.WriteByte(']')
		if i < len(collections)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(pad)
	b.WriteByte('}')
	return nil
}

func marshalValue(v any) ([]byte, error) {
	return json.MarshalWithOption(v, json.DisableHTMLEscape())
}

func marshalKey(name string) []byte {
	raw, err := marshalValue(name)
	if err != nil {
		// strings always marshal
		panic(err)
	}
	return raw
}

// enabledPayload renders the body of an enable or disable PATCH.
func enabledPayload(enabled bool) string {
	o := &Object{attributes: map[string]any{spec.EnabledAttribute: enabled}}
	s, _ := o.AttributesJSON()
	return s
}

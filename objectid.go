package sempcfg

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/sempcfg/spec"
)

// reservedPrefix is "#" after escaping.
var reservedPrefix = escapeID("#")

// formEscaper adjusts query escaping to form encoding:
// "*" stays literal and "~" is escaped.
var formEscaper = strings.NewReplacer("%2A", "*", "~", "%7E")

func escapeID(s string) string { return formEscaper.Replace(url.QueryEscape(s)) }

// ObjectID returns the path segment addressing o inside its collection: the
// identifying attribute values, in schema order, form-encoded and joined by
// commas.
func (o *Object) ObjectID() (string, error) {
	e, err := o.entry()
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(e.Identifiers))
	for _, name := range e.Identifiers {
		v, ok := o.attributes[name]
		if !ok || v == nil {
			return "", newError(CodeMissingIdentifier, o.specPath, name, nil)
		}
		parts = append(parts, escapeID(identifierText(v)))
	}
	return strings.Join(parts, ","), nil
}

func identifierText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// IsReserved reports whether o is a broker-internal object, i.e. its first
// identifying value starts with "#".
func (o *Object) IsReserved() (bool, error) {
	id, err := o.ObjectID()
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(id, reservedPrefix), nil
}

// IsDefault reports whether o is the pre-existing default singleton of a
// default-object collection.
func (o *Object) IsDefault() (bool, error) {
	id, err := o.ObjectID()
	if err != nil {
		return false, err
	}
	return id == spec.DefaultObjectName && o.registry.IsDefaultObjectPath(o.specPath), nil
}

func (o *Object) IsDeprecated() (bool, error) {
	e, err := o.entry()
	if err != nil {
		return false, err
	}
	return e.Deprecated, nil
}

// RequiresDisable reports whether o is enabled and has at least one child
// collection whose changes require o to be disabled first.
func (o *Object) RequiresDisable() bool {
	if enabled, _ := o.attributes[spec.EnabledAttribute].(bool); !enabled {
		return false
	}
	for name := range o.children {
		if o.registry.RequiresDisableChild(o.specPath + "/" + name) {
			return true
		}
	}
	return false
}

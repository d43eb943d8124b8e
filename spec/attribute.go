package spec

import "fmt"

// AttributeType classifies the attributes of an object type.
type AttributeType int

const (
	// All is every attribute the type declares.
	All AttributeType = iota
	// Identifying attributes make up the object identifier, in path order.
	Identifying
	Required
	ReadOnly
	WriteOnly
	Deprecated
	// RequiresDisable attributes can only change while the object is disabled.
	RequiresDisable
	// Opaque attributes carry encrypted values that only round-trip with an
	// opaque password.
	Opaque

	attributeTypeCount
)

var attributeTypeNames = [attributeTypeCount]string{
	All:             "all",
	Identifying:     "identifying",
	Required:        "required",
	ReadOnly:        "readOnly",
	WriteOnly:       "writeOnly",
	Deprecated:      "deprecated",
	RequiresDisable: "requiresDisable",
	Opaque:          "opaque",
}

func (t AttributeType) String() string {
	if t < 0 || t >= attributeTypeCount {
		return fmt.Sprintf("AttributeType(%d)", int(t))
	}
	return attributeTypeNames[t]
}

// Valid reports whether t is one of the declared classifications.
func (t AttributeType) Valid() bool { return t >= 0 && t < attributeTypeCount }

// ParseAttributeType maps a classification name (as printed by String) back
// to its AttributeType.
func ParseAttributeType(s string) (AttributeType, error) {
	for i, name := range attributeTypeNames {
		if name == s {
			return AttributeType(i), nil
		}
	}
	return 0, fmt.Errorf("spec: unknown attribute type %q", s)
}

// AttributeTypes lists every classification in declaration order.
func AttributeTypes() []AttributeType {
	out := make([]AttributeType, 0, attributeTypeCount)
	for t := All; t < attributeTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

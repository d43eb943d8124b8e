package sempcfg

import (
	"maps"
	"slices"

	"github.com/reoring/sempcfg/document"
	"github.com/reoring/sempcfg/spec"
)

// Object is one node of a configuration tree. A parent exclusively owns its
// children; children keep no back reference, only their spec path.
type Object struct {
	collectionName string
	attributes     map[string]any
	children       map[string][]*Object
	specPath       string
	attached       bool
	registry       spec.Registry
}

// NewRoot returns the synthetic root of a tree whose schema entry lives at
// specPath (usually "").
func NewRoot(reg spec.Registry, specPath string) (*Object, error) {
	if _, err := reg.Lookup(specPath); err != nil {
		return nil, newError(CodeSpecNotFound, specPath, "", err)
	}
	return &Object{
		attributes: map[string]any{},
		children:   map[string][]*Object{},
		specPath:   specPath,
		attached:   true,
		registry:   reg,
	}, nil
}

// NewObject returns a detached object of the given collection. attrs is
// copied; values are stored in canonical form.
func NewObject(collectionName string, attrs map[string]any) *Object {
	o := &Object{
		collectionName: collectionName,
		attributes:     make(map[string]any, len(attrs)),
		children:       map[string][]*Object{},
	}
	for k, v := range attrs {
		o.attributes[k] = document.Canonical(v)
	}
	return o
}

// AddChild attaches child under this object. The child's spec path is fixed
// here and must be known to the registry.
func (o *Object) AddChild(child *Object) error {
	if !o.attached {
		return newError(CodeDetached, o.specPath, child.collectionName, nil)
	}
	if child.attached {
		return newError(CodeAlreadyAttached, child.specPath, child.collectionName, nil)
	}
	p := o.specPath + "/" + child.collectionName
	if _, err := o.registry.Lookup(p); err != nil {
		return newError(CodeSpecNotFound, p, "", err)
	}
	child.specPath = p
	child.registry = o.registry
	child.attached = true
	o.children[child.collectionName] = append(o.children[child.collectionName], child)
	return nil
}

// CollectionName is empty for the root.
func (o *Object) CollectionName() string { return o.collectionName }

// SpecPath is the schema path, e.g. "/msgVpns/queues". Empty for an
// unattached object and for the default root.
func (o *Object) SpecPath() string { return o.specPath }

func (o *Object) Attribute(name string) (any, bool) {
	v, ok := o.attributes[name]
	return v, ok
}

// AttributeNames returns attribute names in ascending order.
func (o *Object) AttributeNames() []string {
	return slices.Sorted(maps.Keys(o.attributes))
}

// SetAttribute overwrites name with the canonical form of v.
func (o *Object) SetAttribute(name string, v any) {
	o.attributes[name] = document.Canonical(v)
}

func (o *Object) DeleteAttribute(name string) {
	delete(o.attributes, name)
}

// Children returns the objects of one collection in document order.
func (o *Object) Children(collection string) []*Object {
	return slices.Clone(o.children[collection])
}

// ChildCollections returns the non-empty child collection names in
// ascending order.
func (o *Object) ChildCollections() []string {
	return slices.Sorted(maps.Keys(o.children))
}

// ForEachChild visits every child, collections ascending and each collection
// in document order. It stops at the first error.
func (o *Object) ForEachChild(fn func(*Object) error) error {
	for _, name := range o.ChildCollections() {
		for _, c := range o.children[name] {
			if err := fn(c); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Object) entry() (*spec.Entry, error) {
	if !o.attached {
		return nil, newError(CodeDetached, "", o.collectionName, nil)
	}
	e, err := o.registry.Lookup(o.specPath)
	if err != nil {
		return nil, newError(CodeSpecNotFound, o.specPath, "", err)
	}
	return e, nil
}

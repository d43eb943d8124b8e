package sempcfg

import (
	"reflect"

	"github.com/reoring/sempcfg/spec"
)

// Predicate selects objects for RemoveChildren.
type Predicate func(*Object) (bool, error)

// Ready-made predicates.
var (
	Reserved      Predicate = (*Object).IsReserved
	Deprecated    Predicate = (*Object).IsDeprecated
	DefaultObject Predicate = (*Object).IsDefault
)

// RemoveAttributes strips every attribute of the given classifications from
// o and all of its descendants. A node whose schema entry cannot be found
// stops the walk with that error.
func (o *Object) RemoveAttributes(types ...spec.AttributeType) error {
	e, err := o.entry()
	if err != nil {
		return err
	}
	for _, t := range types {
		for _, name := range e.Attributes(t) {
			delete(o.attributes, name)
		}
	}
	for _, list := range o.children {
		for _, c := range list {
			if err := c.RemoveAttributes(types...); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveAttributesWithDefaultValue drops every attribute whose value equals
// the schema default, recursively.
func (o *Object) RemoveAttributesWithDefaultValue() error {
	e, err := o.entry()
	if err != nil {
		return err
	}
	for name, v := range o.attributes {
		if d, ok := e.Default(name); ok && reflect.DeepEqual(v, d) {
			delete(o.attributes, name)
		}
	}
	for _, list := range o.children {
		for _, c := range list {
			if err := c.RemoveAttributesWithDefaultValue(); err != nil {
				return err
			}
		}
	}
	return nil
}

// RemoveChildren removes every descendant matched by any of preds, together
// with its subtree. Collections left empty are dropped.
func (o *Object) RemoveChildren(preds ...Predicate) error {
	for _, name := range o.ChildCollections() {
		kept := o.children[name][:0:0]
		for _, c := range o.children[name] {
			drop, err := matchAny(c, preds)
			if err != nil {
				return err
			}
			if !drop {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			delete(o.children, name)
			continue
		}
		o.children[name] = kept
		for _, c := range kept {
			if err := c.RemoveChildren(preds...); err != nil {
				return err
			}
		}
	}
	return nil
}

func matchAny(o *Object, preds []Predicate) (bool, error) {
	for _, p := range preds {
		ok, err := p(o)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

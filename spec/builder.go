package spec

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/reoring/sempcfg/document"
)

// Builder assembles a Spec programmatically. It is what Import uses under
// the hood and what tests use to describe small fixtures.
//
//	s, err := spec.NewBuilder().
//		Object("/msgVpns", "msgVpnName").
//		Attributes(spec.All, "enabled", "maxMsgSpoolUsage").
//		Default("maxMsgSpoolUsage", 1500).
//		Done().
//		Build()
type Builder struct {
	basePath             string
	entries              map[string]*Entry
	order                []string
	defaultObjectPaths   []string
	requiresDisableChild []string
	errs                 []string
}

// NewBuilder returns a Builder seeded with the built-in SEMP path sets.
func NewBuilder() *Builder {
	return &Builder{
		entries:              make(map[string]*Entry),
		defaultObjectPaths:   slices.Clone(DefaultObjectPaths),
		requiresDisableChild: slices.Clone(RequiresDisableChildPaths),
	}
}

// BasePath records the API base path.
func (b *Builder) BasePath(p string) *Builder {
	b.basePath = p
	return b
}

// DefaultObjectPaths replaces the set of paths whose "default" objects are
// pre-existing singletons.
func (b *Builder) DefaultObjectPaths(paths ...string) *Builder {
	b.defaultObjectPaths = slices.Clone(paths)
	return b
}

// RequiresDisableChildPaths replaces the set of child paths whose changes
// need the parent disabled.
func (b *Builder) RequiresDisableChildPaths(paths ...string) *Builder {
	b.requiresDisableChild = slices.Clone(paths)
	return b
}

// Object starts (or resumes) the entry for specPath. identifiers are
// appended in order to the identifying attributes.
func (b *Builder) Object(specPath string, identifiers ...string) *ObjectBuilder {
	if !strings.HasPrefix(specPath, "/") || strings.HasSuffix(specPath, "/") {
		b.errs = append(b.errs, fmt.Sprintf("invalid spec path %q", specPath))
	}
	e, ok := b.entries[specPath]
	if !ok {
		e = &Entry{SpecPath: specPath, Defaults: make(map[string]any)}
		b.entries[specPath] = e
		b.order = append(b.order, specPath)
	}
	ob := &ObjectBuilder{b: b, e: e}
	for _, id := range identifiers {
		if !slices.Contains(e.Identifiers, id) {
			e.Identifiers = append(e.Identifiers, id)
		}
		ob.add(All, id)
	}
	return ob
}

// Build validates and freezes the collected entries.
func (b *Builder) Build() (*Spec, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("spec: %s", strings.Join(b.errs, "; "))
	}
	s := &Spec{
		basePath:             b.basePath,
		entries:              make(map[string]*Entry, len(b.entries)+1),
		defaultObjectPaths:   toSet(b.defaultObjectPaths),
		requiresDisableChild: toSet(b.requiresDisableChild),
	}
	for _, p := range b.order {
		e := b.entries[p]
		e.attrs[Identifying] = slices.Clone(e.Identifiers)
		for _, t := range AttributeTypes() {
			if t == Identifying {
				continue
			}
			sort.Strings(e.attrs[t])
		}
		s.entries[p] = e
	}
	s.link()
	return s, nil
}

// ObjectBuilder describes a single entry.
type ObjectBuilder struct {
	b *Builder
	e *Entry
}

// Attributes adds names to classification t (and to All).
func (o *ObjectBuilder) Attributes(t AttributeType, names ...string) *ObjectBuilder {
	if !t.Valid() {
		o.b.errs = append(o.b.errs, fmt.Sprintf("%s: invalid attribute type %d", o.e.SpecPath, int(t)))
		return o
	}
	if t == Identifying {
		for _, n := range names {
			if !slices.Contains(o.e.Identifiers, n) {
				o.e.Identifiers = append(o.e.Identifiers, n)
			}
			o.add(All, n)
		}
		return o
	}
	for _, n := range names {
		o.add(t, n)
		o.add(All, n)
	}
	return o
}

// Default declares the default value of name. The value is stored in
// canonical document form.
func (o *ObjectBuilder) Default(name string, v any) *ObjectBuilder {
	o.e.Defaults[name] = document.Canonical(v)
	o.add(All, name)
	return o
}

// Deprecated marks the object type as deprecated.
func (o *ObjectBuilder) Deprecated() *ObjectBuilder {
	o.e.Deprecated = true
	return o
}

// Object continues with another entry.
func (o *ObjectBuilder) Object(specPath string, identifiers ...string) *ObjectBuilder {
	return o.b.Object(specPath, identifiers...)
}

// Done returns to the parent Builder.
func (o *ObjectBuilder) Done() *Builder { return o.b }

// Build is shorthand for Done().Build().
func (o *ObjectBuilder) Build() (*Spec, error) { return o.b.Build() }

// ancestorIdentifier reports whether name identifies one of the objects
// above specPath.
func (b *Builder) ancestorIdentifier(specPath, name string) bool {
	for p := specPath; p != ""; {
		p = p[:strings.LastIndex(p, "/")]
		if e, ok := b.entries[p]; ok && slices.Contains(e.Identifiers, name) {
			return true
		}
	}
	return false
}

func (o *ObjectBuilder) add(t AttributeType, name string) {
	if !slices.Contains(o.e.attrs[t], name) {
		o.e.attrs[t] = append(o.e.attrs[t], name)
	}
}

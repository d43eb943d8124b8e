package spec

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

const (
	// DefaultObjectName is the identifier of the singleton objects that
	// always exist on the broker.
	DefaultObjectName = "default"
	// EnabledAttribute is the attribute toggled by the disable protocol.
	EnabledAttribute = "enabled"
)

// ErrNotFound is returned by Lookup for a path the registry does not know.
var ErrNotFound = errors.New("spec: no entry for path")

// Registry answers schema questions for a spec path such as
// "/msgVpns/queues".
type Registry interface {
	Lookup(specPath string) (*Entry, error)
	// IsDefaultObjectPath reports whether objects at specPath may be the
	// pre-existing default singleton.
	IsDefaultObjectPath(specPath string) bool
	// RequiresDisableChild reports whether changing children at specPath
	// requires the parent to be disabled first.
	RequiresDisableChild(specPath string) bool
}

// Entry describes one object type. Entries are read-only once built.
type Entry struct {
	SpecPath string
	// Identifiers are the identifying attribute names in path order.
	Identifiers []string
	// Defaults maps attribute names to their canonical default values.
	Defaults map[string]any
	// Children are the child collection names, sorted.
	Children   []string
	Deprecated bool

	attrs [attributeTypeCount][]string
}

// Attributes returns the attribute names of the given classification.
// Identifying attributes keep path order, every other set is sorted.
func (e *Entry) Attributes(t AttributeType) []string {
	if !t.Valid() {
		return nil
	}
	return e.attrs[t]
}

// Has reports whether name belongs to classification t.
func (e *Entry) Has(t AttributeType, name string) bool {
	return slices.Contains(e.Attributes(t), name)
}

// Default returns the default value of name, if declared.
func (e *Entry) Default(name string) (any, bool) {
	v, ok := e.Defaults[name]
	return v, ok
}

// HasChild reports whether name is a child collection of this type.
func (e *Entry) HasChild(name string) bool {
	_, found := slices.BinarySearch(e.Children, name)
	return found
}

// Built-in SEMP v2 path sets.
var (
	DefaultObjectPaths = []string{
		"/msgVpns/aclProfiles",
		"/msgVpns/clientProfiles",
		"/msgVpns/clientUsernames",
	}
	RequiresDisableChildPaths = []string{
		"/msgVpns/bridges/remoteMsgVpns",
		"/msgVpns/distributedCaches/clusters",
		"/msgVpns/distributedCaches/clusters/instances",
		"/msgVpns/restDeliveryPoints/queueBindings",
		"/msgVpns/restDeliveryPoints/restConsumers",
	}
)

// Spec is the in-memory Registry produced by Builder or Import.
type Spec struct {
	basePath             string
	entries              map[string]*Entry
	defaultObjectPaths   map[string]struct{}
	requiresDisableChild map[string]struct{}
}

var _ Registry = (*Spec)(nil)

func (s *Spec) Lookup(specPath string) (*Entry, error) {
	e, ok := s.entries[specPath]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrNotFound, specPath)
	}
	return e, nil
}

func (s *Spec) IsDefaultObjectPath(specPath string) bool {
	_, ok := s.defaultObjectPaths[specPath]
	return ok
}

func (s *Spec) RequiresDisableChild(specPath string) bool {
	_, ok := s.requiresDisableChild[specPath]
	return ok
}

// BasePath is the API base path declared by the imported document, if any.
func (s *Spec) BasePath() string { return s.basePath }

// Paths returns every known spec path, sorted. The root path "" is included.
func (s *Spec) Paths() []string {
	out := make([]string, 0, len(s.entries))
	for p := range s.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// link fills Children for every entry from path nesting and makes sure the
// root entry exists.
func (s *Spec) link() {
	if _, ok := s.entries[""]; !ok {
		s.entries[""] = &Entry{SpecPath: ""}
	}
	for p := range s.entries {
		if p == "" {
			continue
		}
		i := strings.LastIndexByte(p, '/')
		parent, name := p[:i], p[i+1:]
		pe, ok := s.entries[parent]
		if !ok {
			continue
		}
		if !slices.Contains(pe.Children, name) {
			pe.Children = append(pe.Children, name)
		}
	}
	for _, e := range s.entries {
		sort.Strings(e.Children)
	}
}

func toSet(paths []string) map[string]struct{} {
	m := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		m[p] = struct{}{}
	}
	return m
}

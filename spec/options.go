package spec

import "fmt"

// Options controls Import.
type Options struct {
	// BasePath overrides the basePath declared by the document.
	BasePath string
	// DefaultObjectPaths replaces the built-in default object paths when
	// non-nil.
	DefaultObjectPaths []string
	// RequiresDisableChildPaths replaces the built-in disable-required child
	// paths when non-nil.
	RequiresDisableChildPaths []string
	// DefaultFromDescription enables parsing "The default value is `X`."
	// from property descriptions when no default keyword is present.
	DefaultFromDescription bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{DefaultFromDescription: true}
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }

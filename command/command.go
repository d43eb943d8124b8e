// Package command holds the REST commands produced by sempcfg and the
// ordered, append-only list they are collected in.
package command

import (
	"fmt"
	"strings"
)

// Method is the HTTP method of a command. GET is never emitted.
type Method uint8

const (
	// POST creates an object in a collection path.
	POST Method = iota
	// PATCH updates an object path.
	PATCH
	// DELETE removes an object path.
	DELETE
)

// String returns the HTTP verb.
func (m Method) String() string {
	switch m {
	case POST:
		return "POST"
	case PATCH:
		return "PATCH"
	case DELETE:
		return "DELETE"
	default:
		return "Unknown"
	}
}

// ParseMethod converts an HTTP verb into a Method (case-insensitive).
func ParseMethod(s string) (Method, error) {
	switch strings.ToUpper(s) {
	case "POST":
		return POST, nil
	case "PATCH":
		return PATCH, nil
	case "DELETE":
		return DELETE, nil
	default:
		return 0, fmt.Errorf("command: unsupported method %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Command is one REST call. Payload is the JSON body; it is empty for DELETE.
type Command struct {
	Method  Method `json:"method"`
	Path    string `json:"path"`
	Payload string `json:"payload,omitempty"`
}

// HasPayload reports whether the command carries a body.
func (c Command) HasPayload() bool { return c.Payload != "" }

func (c Command) String() string {
	if !c.HasPayload() {
		return c.Method.String() + " " + c.Path
	}
	return c.Method.String() + " " + c.Path + "\n" + c.Payload
}

// Sink receives commands in emission order.
type Sink interface {
	Append(method Method, path, payload string)
}

// List is the in-memory Sink. The order of Commands is the order the
// commands must be replayed in.
type List struct {
	cmds []Command
}

var _ Sink = (*List)(nil)

// NewList creates an empty List.
func NewList() *List {
	return &List{cmds: make([]Command, 0)}
}

// Append adds a command at the end of the list.
func (l *List) Append(method Method, path, payload string) {
	l.cmds = append(l.cmds, Command{Method: method, Path: path, Payload: payload})
}

// Commands returns a copy of the commands in emission order.
func (l *List) Commands() []Command {
	return append([]Command(nil), l.cmds...)
}

// At returns the i-th command.
func (l *List) At(i int) Command { return l.cmds[i] }

// Len returns the number of commands.
func (l *List) Len() int { return len(l.cmds) }

// Count returns how many commands use method m.
func (l *List) Count(m Method) int {
	n := 0
	for _, c := range l.cmds {
		if c.Method == m {
			n++
		}
	}
	return n
}

package command

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

// Format selects how a List is rendered.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("command: unknown output format %q (want text, json or table)", s)
	}
}

// Write renders l to w in format f.
func Write(w io.Writer, l *List, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, l)
	case FormatTable:
		return WriteTable(w, l)
	default:
		return WriteText(w, l)
	}
}

// WriteText prints every command as "METHOD path" followed by its payload.
func WriteText(w io.Writer, l *List) error {
	for _, c := range l.cmds {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}

type jsonCommand struct {
	Method  Method          `json:"method"`
	Path    string          `json:"path"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WriteJSON prints the list as a JSON array. Payloads are embedded as JSON
// values rather than strings.
func WriteJSON(w io.Writer, l *List) error {
	out := make([]jsonCommand, 0, len(l.cmds))
	for _, c := range l.cmds {
		jc := jsonCommand{Method: c.Method, Path: c.Path}
		if c.HasPayload() {
			jc.Payload = json.RawMessage(c.Payload)
		}
		out = append(out, jc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteTable prints a one-line-per-command table with compacted payloads.
func WriteTable(w io.Writer, l *List) error {
	rows := make([][]string, 0, len(l.cmds))
	for i, c := range l.cmds {
		payload := ""
		if c.HasPayload() {
			var b bytes.Buffer
			if err := json.Compact(&b, []byte(c.Payload)); err != nil {
				payload = c.Payload
			} else {
				payload = b.String()
			}
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), c.Method.String(), c.Path, payload})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Method", "Path", "Payload"})
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

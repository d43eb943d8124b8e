package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reoring/sempcfg/internal/config"
)

// testDataPath returns the path to a file under the repository testdata dir
func testDataPath(t *testing.T, name string) string {
	t.Helper()
	// Go up two directories from cmd/sempcfg to repo root
	path := filepath.Join("..", "..", "testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("test file not found: %s", path)
	}
	return path
}

// useConfig installs settings for one test and restores the previous ones
// afterwards
func useConfig(t *testing.T, c config.Config) {
	t.Helper()
	prev := cfg
	if c.SpecPath == "" {
		c.SpecPath = testDataPath(t, "semp-v2-config.json")
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 5
	}
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

// commandLines keeps the "METHOD path" lines of text output
func commandLines(output string) []string {
	var out []string
	for _, line := range strings.Split(output, "\n") {
		for _, m := range []string{"POST ", "PATCH ", "DELETE "} {
			if strings.HasPrefix(line, m) {
				out = append(out, line)
			}
		}
	}
	return out
}

package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/sempcfg/internal/logging"
)

func TestInit_LevelAndFormat(t *testing.T) {
	t.Cleanup(logging.Discard)

	var buf bytes.Buffer
	require.NoError(t, logging.Init(logging.Options{Output: &buf}))
	logging.Info("hidden")
	logging.Warn("shown", "path", "/msgVpns")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "path=/msgVpns")

	buf.Reset()
	require.NoError(t, logging.Init(logging.Options{Output: &buf, Format: "json", Verbose: true}))
	logging.Debug("replay", "index", 3)
	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "{"), line)
	assert.Contains(t, line, `"index":3`)
}

func TestInit_RejectsUnknownFormat(t *testing.T) {
	t.Cleanup(logging.Discard)
	assert.Error(t, logging.Init(logging.Options{Format: "xml"}))
}

func TestInit_NoneDiscards(t *testing.T) {
	t.Cleanup(logging.Discard)

	var buf bytes.Buffer
	require.NoError(t, logging.Init(logging.Options{Output: &buf, Format: "NONE", Verbose: true}))
	logging.Error("dropped")
	assert.Empty(t, buf.String())
}

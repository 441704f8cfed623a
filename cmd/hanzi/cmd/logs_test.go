package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

func writeLogFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hanzi.log")
	lines := []string{
		`{"time":"2026-01-02T10:00:00Z","level":"INFO","msg":"store_loaded","radicals":1}`,
		`{"time":"2026-01-02T10:00:01Z","level":"WARN","msg":"record_decode_failed","path":"a.md"}`,
		`{"time":"2026-01-02T10:00:02Z","level":"DEBUG","msg":"command_started"}`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestLogs_PatternFiltersLines(t *testing.T) {
	// Given: a log with three entries
	env := newTestEnv(t)
	path := writeLogFile(t)

	// When: filtering with a regular expression
	out := env.mustRun(t, "logs", "--file", path, "--pattern", "record_|store_")

	// Then: only matching lines are shown
	assert.Contains(t, out, "store_loaded")
	assert.Contains(t, out, "record_decode_failed")
	assert.NotContains(t, out, "command_started")
}

func TestLogs_LevelFilter(t *testing.T) {
	env := newTestEnv(t)
	path := writeLogFile(t)

	out := env.mustRun(t, "logs", "--file", path, "--level", "warn")

	assert.Contains(t, out, "record_decode_failed")
	assert.NotContains(t, out, "store_loaded")
}

func TestLogs_InvalidPattern(t *testing.T) {
	// Given: a pattern that does not compile
	env := newTestEnv(t)

	// When: viewing logs
	_, err := env.run(t, "logs", "--file", writeLogFile(t), "--pattern", "record_(")

	// Then: the input is rejected
	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrInvalidInput))
}

func TestLogs_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "logs", "--file", filepath.Join(t.TempDir(), "none.log"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrNotFound))
}

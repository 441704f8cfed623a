package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv points the CLI at a throwaway knowledge base.
type testEnv struct {
	base string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	for _, key := range []string{"HANZI_ROOT", "HANZI_VSCODE_DIR", "HANZI_OBSIDIAN_DIR", "HANZI_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	return &testEnv{base: t.TempDir()}
}

func (e *testEnv) plain(elem ...string) string {
	return filepath.Join(append([]string{e.base, "plain"}, elem...)...)
}

// run executes one hanzi invocation against the environment's roots.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	full := append([]string{
		"--root", e.plain(),
		"--vscode-dir", filepath.Join(e.base, "vscode"),
		"--obsidian-dir", filepath.Join(e.base, "obsidian"),
	}, args...)

	opts := &rootOptions{}
	defer opts.teardown()

	cmd := newRootCmd(opts)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(full)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

// seed adds the 木 radical and two characters built from it.
func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	e.mustRun(t, "add", "radical", "--char", "木", "--pinyin", "mù", "--meaning", "wood",
		"--type", "semantic", "--strokes", "4", "--stroke-order", "横,竖,撇,点", "--common", "林,森")
	e.mustRun(t, "add", "character", "--char", "林", "--pinyin", "lín", "--tone", "2",
		"--meaning", "woods,forest", "--radicals", "木,木", "--strokes", "8", "--hsk", "4",
		"--word", "树林:shùlín:woods", "--tags", "nature")
	e.mustRun(t, "add", "character", "--char", "森", "--pinyin", "sēn", "--tone", "1",
		"--meaning", "forest", "--radicals", "木,木,木", "--strokes", "12", "--hsk", "5")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	// Given: the root command
	cmd := NewRootCmd()

	// Then: every top-level command is registered
	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"add", "import", "show", "radical", "search", "stats",
		"export", "practice", "watch", "pinyin", "config", "doctor", "logs", "version",
	} {
		require.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_VersionFlag(t *testing.T) {
	// Given: the root command with --version
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	// When: executing
	err := cmd.Execute()

	// Then: the version template is printed
	require.NoError(t, err)
	require.Contains(t, buf.String(), "hanzi version")
}

// syncBuffer is a bytes.Buffer safe for a command writing on another
// goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

package preflight

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/hanzi/internal/lock"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/store"
)

// fakeRecords is an in-memory Records.
type fakeRecords struct {
	report     store.LoadReport
	radicals   map[string]model.Radical
	characters []model.Character
}

func (f fakeRecords) LastLoad() store.LoadReport { return f.report }
func (f fakeRecords) Characters() []model.Character { return f.characters }
func (f fakeRecords) Radical(k string) (model.Radical, bool) {
	r, ok := f.radicals[k]
	return r, ok
}

func testLayout(t *testing.T) store.Layout {
	t.Helper()
	base := t.TempDir()
	return store.Layout{
		Root:     filepath.Join(base, "plain"),
		VSCode:   filepath.Join(base, "vscode"),
		Obsidian: filepath.Join(base, "obsidian"),
	}
}

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status CheckStatus
		want   string
	}{
		{StatusPass, "PASS"},
		{StatusWarn, "WARN"},
		{StatusFail, "FAIL"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestCheckResult_JSONStatus(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "disk_space", Status: StatusWarn})

	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warn"`)
}

func TestCheckResult_IsCritical(t *testing.T) {
	tests := []struct {
		name     string
		result   CheckResult
		expected bool
	}{
		{"required pass is not critical", CheckResult{Status: StatusPass, Required: true}, false},
		{"required fail is critical", CheckResult{Status: StatusFail, Required: true}, true},
		{"optional fail is not critical", CheckResult{Status: StatusFail, Required: false}, false},
		{"required warn is not critical", CheckResult{Status: StatusWarn, Required: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.IsCritical())
		})
	}
}

func TestChecker_NewWithOptions(t *testing.T) {
	// Given: custom options
	buf := &bytes.Buffer{}
	checker := New(
		WithVerbose(true),
		WithOutput(buf),
	)

	// Then: options are applied
	assert.True(t, checker.verbose)
	assert.Equal(t, buf, checker.output)
}

func TestChecker_CheckWritePermissions_CreatesMissingDir(t *testing.T) {
	// Given: a root that does not exist yet
	dir := filepath.Join(t.TempDir(), "plain")

	// When: checking write permissions
	result := New().CheckWritePermissions(dir)

	// Then: passes and the directory exists
	assert.Equal(t, StatusPass, result.Status)
	assert.True(t, result.Required)
	assert.DirExists(t, dir)
}

func TestChecker_CheckWritePermissions_ReadOnly(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping read-only test when running as root")
	}

	readOnlyDir := filepath.Join(t.TempDir(), "readonly")
	require.NoError(t, os.Mkdir(readOnlyDir, 0o555))
	defer func() { _ = os.Chmod(readOnlyDir, 0o755) }()

	result := New().CheckWritePermissions(readOnlyDir)

	assert.Equal(t, StatusFail, result.Status)
	assert.Contains(t, result.Message, "permission denied")
}

func TestChecker_CheckLock(t *testing.T) {
	// Given: a root whose lock is held
	root := t.TempDir()
	held := lock.New(root)
	require.NoError(t, held.TryLock())

	// When: checking the lock
	result := New().CheckLock(root)

	// Then: it warns
	assert.Equal(t, StatusWarn, result.Status)

	// And: passes once released
	require.NoError(t, held.Unlock())
	assert.Equal(t, StatusPass, New().CheckLock(root).Status)
}

func TestChecker_CheckUnreadableRecords(t *testing.T) {
	checker := New()

	ok := checker.CheckUnreadableRecords(fakeRecords{report: store.LoadReport{Radicals: 1, Characters: 2}})
	assert.Equal(t, StatusPass, ok.Status)
	assert.Equal(t, "1 radicals, 2 characters", ok.Message)

	bad := checker.CheckUnreadableRecords(fakeRecords{report: store.LoadReport{Skipped: 3}})
	assert.Equal(t, StatusWarn, bad.Status)
	assert.Contains(t, bad.Message, "3 file(s)")
}

func TestChecker_CheckDanglingRadicals(t *testing.T) {
	// Given: characters referencing one stored and one missing radical
	recs := fakeRecords{
		radicals: map[string]model.Radical{"木": {Character: "木"}},
		characters: []model.Character{
			{Character: "林", Radicals: []string{"木", "木"}},
			{Character: "河", Radicals: []string{"水"}},
			{Character: "海", Radicals: []string{"水"}},
		},
	}

	// When: checking references
	result := New().CheckDanglingRadicals(recs)

	// Then: the missing radical is named once
	assert.Equal(t, StatusWarn, result.Status)
	assert.Contains(t, result.Message, "1 radical(s)")
	assert.Equal(t, "Missing: 水", result.Details)
}

func TestChecker_RunAll(t *testing.T) {
	// Given: a fresh layout and an empty store view
	layout := testLayout(t)

	// When: running all checks
	results := New().RunAll(context.Background(), layout, fakeRecords{})

	// Then: every check is present and none is critical
	names := make(map[string]bool)
	for _, r := range results {
		names[r.Name] = true
	}
	for _, want := range []string{
		"write_permissions_plain", "write_permissions_vscode", "write_permissions_obsidian",
		"disk_space", "file_descriptors", "store_lock", "record_files", "radical_references",
	} {
		assert.True(t, names[want], "%s check missing", want)
	}
}

func TestChecker_RunAll_NilStore(t *testing.T) {
	results := New().RunAll(context.Background(), testLayout(t), nil)

	for _, r := range results {
		assert.NotEqual(t, "record_files", r.Name)
	}
}

func TestChecker_PrintResults(t *testing.T) {
	// Given: some check results
	results := []CheckResult{
		{Name: "disk_space", Status: StatusPass, Message: "50 GiB free"},
		{Name: "radical_references", Status: StatusWarn, Message: "1 radical(s) referenced but not stored", Details: "Missing: 水"},
		{Name: "write_permissions_plain", Status: StatusFail, Message: "permission denied", Required: true},
	}

	buf := &bytes.Buffer{}
	checker := New(WithOutput(buf), WithVerbose(true))

	// When: printing results
	checker.PrintResults(results)

	// Then: output contains formatted results
	output := buf.String()
	assert.Contains(t, output, "[PASS] disk_space")
	assert.Contains(t, output, "[WARN]")
	assert.Contains(t, output, "[FAIL]")
	assert.Contains(t, output, "Missing: 水")
	assert.Contains(t, output, "Status: FAILED")
}

func TestChecker_SummaryStatus(t *testing.T) {
	checker := New()

	tests := []struct {
		name     string
		results  []CheckResult
		expected string
	}{
		{"all pass", []CheckResult{{Status: StatusPass}, {Status: StatusPass}}, "ready"},
		{"with warnings", []CheckResult{{Status: StatusPass}, {Status: StatusWarn}}, "ready_with_warnings"},
		{"with critical failure", []CheckResult{{Status: StatusPass}, {Status: StatusFail, Required: true}}, "failed"},
		{"with optional failure", []CheckResult{{Status: StatusPass}, {Status: StatusFail}}, "ready_with_warnings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, checker.SummaryStatus(tt.results))
		})
	}
}

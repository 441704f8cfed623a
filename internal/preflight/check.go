package preflight

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Aman-CERP/hanzi/internal/store"
	"github.com/Aman-CERP/hanzi/internal/ui"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the status by name in JSON output.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *CheckStatus) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "PASS":
		*s = StatusPass
	case "WARN":
		*s = StatusWarn
	case "FAIL":
		*s = StatusFail
	default:
		return fmt.Errorf("unknown check status %q", text)
	}
	return nil
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Details  string      `json:"details,omitempty"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Checker runs the checks and prints their results.
type Checker struct {
	verbose bool
	output  io.Writer
	styles  ui.Styles
}

// Option configures a Checker.
type Option func(*Checker)

// WithVerbose prints each result's details.
func WithVerbose(verbose bool) Option {
	return func(c *Checker) {
		c.verbose = verbose
	}
}

// WithOutput sets the output writer.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// WithNoColor disables styled status tags.
func WithNoColor(noColor bool) Option {
	return func(c *Checker) {
		c.styles = ui.GetStyles(noColor)
	}
}

// New creates a Checker writing to stdout in plain style.
func New(opts ...Option) *Checker {
	c := &Checker{
		output: os.Stdout,
		styles: ui.NoColorStyles(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunAll runs every check against layout. st may be nil when the store
// could not be opened; the record checks are then skipped.
func (c *Checker) RunAll(_ context.Context, layout store.Layout, st Records) []CheckResult {
	var results []CheckResult

	for _, root := range []struct{ name, path string }{
		{"plain", layout.Root},
		{"vscode", layout.VSCode},
		{"obsidian", layout.Obsidian},
	} {
		r := c.CheckWritePermissions(root.path)
		r.Name = "write_permissions_" + root.name
		results = append(results, r)
	}

	results = append(results, c.CheckDiskSpace(layout.Root))
	results = append(results, c.CheckFileDescriptors())
	results = append(results, c.CheckLock(layout.Root))

	if st != nil {
		results = append(results, c.CheckUnreadableRecords(st))
		results = append(results, c.CheckDanglingRadicals(st))
	}

	return results
}

// HasCriticalFailures returns true if any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	return slices.ContainsFunc(results, CheckResult.IsCritical)
}

// SummaryStatus is "failed" when a required check failed,
// "ready_with_warnings" when anything else did not pass, and "ready"
// otherwise.
func (c *Checker) SummaryStatus(results []CheckResult) string {
	switch {
	case c.HasCriticalFailures(results):
		return "failed"
	case slices.ContainsFunc(results, func(r CheckResult) bool { return r.Status != StatusPass }):
		return "ready_with_warnings"
	default:
		return "ready"
	}
}

// PrintResults prints one line per check, then the overall status and the
// failing checks grouped as errors and warnings.
func (c *Checker) PrintResults(results []CheckResult) {
	w := c.output
	_, _ = fmt.Fprintln(w, c.styles.Header.Render("hanzi doctor"))
	_, _ = fmt.Fprintln(w)

	var errs, warnings []string
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", c.tag(r.Status), r.Name, r.Message)
		if c.verbose && r.Details != "" {
			_, _ = fmt.Fprintf(w, "      %s\n", c.styles.Dim.Render(r.Details))
		}
		switch {
		case r.IsCritical():
			errs = append(errs, r.Name+": "+r.Message)
		case r.Status != StatusPass:
			warnings = append(warnings, r.Name+": "+r.Message)
		}
	}

	_, _ = fmt.Fprintf(w, "\nStatus: %s\n", strings.ToUpper(c.SummaryStatus(results)))
	c.printGroup("error(s)", errs)
	c.printGroup("warning(s)", warnings)
}

func (c *Checker) printGroup(label string, lines []string) {
	if len(lines) == 0 {
		return
	}
	_, _ = fmt.Fprintf(c.output, "\n%d %s:\n", len(lines), label)
	for _, l := range lines {
		_, _ = fmt.Fprintf(c.output, "  - %s\n", l)
	}
}

func (c *Checker) tag(status CheckStatus) string {
	switch status {
	case StatusPass:
		return c.styles.Success.Render(status.String())
	case StatusWarn:
		return c.styles.Warning.Render(status.String())
	default:
		return c.styles.Error.Render(status.String())
	}
}

// CheckWritePermissions checks that a record can be created under path.
// A missing directory is created first, as the store would.
func (c *Checker) CheckWritePermissions(path string) CheckResult {
	result := CheckResult{
		Name:     "write_permissions",
		Required: true,
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("cannot create %s: %v", path, err)
		return result
	}

	testFile := filepath.Join(path, ".hanzi-preflight-test")
	f, err := os.Create(testFile)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("permission denied: %v", err)
		return result
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	result.Status = StatusPass
	result.Message = path
	return result
}

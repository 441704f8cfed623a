// Package preflight checks that a knowledge base can be read and written
// before long-running work starts.
//
// The package validates:
//   - Write permissions in every document root
//   - Disk space on the plain root (minimum 10MB)
//   - File descriptor limits for watch mode (minimum 256)
//   - Whether another writer holds the store lock
//   - Record integrity: unreadable files and dangling radical references
//
// Use the Checker type to run all validations:
//
//	checker := preflight.New()
//	results := checker.RunAll(ctx, layout, st)
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight

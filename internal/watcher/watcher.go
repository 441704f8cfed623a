package watcher

import (
	"fmt"
	"time"
)

// Operation is the kind of change seen on a record file.
type Operation int

const (
	OpCreate Operation = iota
	OpModify
	OpDelete
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// FileEvent is a change to one record file.
type FileEvent struct {
	// Path is relative to the watched root, e.g. "characters/河.md".
	Path string

	// Dir is the record subdirectory the file lives in.
	Dir string

	Operation Operation
	Timestamp time.Time
}

// Options configures the watcher.
type Options struct {
	// DebounceWindow is how long events are collected before a batch is
	// emitted. Default: 300ms
	DebounceWindow time.Duration

	// PollInterval is the scan interval in polling mode. Default: 2s
	PollInterval time.Duration

	// EventBufferSize is the number of batches buffered for the consumer.
	// Default: 16
	EventBufferSize int

	// Subdirs are the watched directories relative to the root.
	// Default: radicals, characters
	Subdirs []string

	// Ext is the extension of record files. Default: .md
	Ext string

	// ForcePolling skips fsnotify.
	ForcePolling bool
}

// DefaultOptions returns the default watcher options.
func DefaultOptions() Options {
	return Options{
		DebounceWindow:  300 * time.Millisecond,
		PollInterval:    2 * time.Second,
		EventBufferSize: 16,
		Subdirs:         []string{"radicals", "characters"},
		Ext:             ".md",
	}
}

// WithDefaults returns options with defaults applied for zero values.
func (o Options) WithDefaults() Options {
	defaults := DefaultOptions()
	if o.DebounceWindow == 0 {
		o.DebounceWindow = defaults.DebounceWindow
	}
	if o.PollInterval == 0 {
		o.PollInterval = defaults.PollInterval
	}
	if o.EventBufferSize == 0 {
		o.EventBufferSize = defaults.EventBufferSize
	}
	if len(o.Subdirs) == 0 {
		o.Subdirs = defaults.Subdirs
	}
	if o.Ext == "" {
		o.Ext = defaults.Ext
	}
	return o
}

// Validate rejects negative durations and buffer sizes.
func (o Options) Validate() error {
	if o.DebounceWindow < 0 {
		return fmt.Errorf("debounce window must not be negative: %s", o.DebounceWindow)
	}
	if o.PollInterval < 0 {
		return fmt.Errorf("poll interval must not be negative: %s", o.PollInterval)
	}
	if o.EventBufferSize < 0 {
		return fmt.Errorf("event buffer size must not be negative: %d", o.EventBufferSize)
	}
	return nil
}

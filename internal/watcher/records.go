package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RecordWatcher watches the record subdirectories of one root. It uses
// fsnotify when possible and falls back to polling.
type RecordWatcher struct {
	fsWatcher      *fsnotify.Watcher
	poller         *Poller
	debouncer      *Debouncer
	events         chan []FileEvent
	errors         chan error
	stopCh         chan struct{}
	rootPath       string
	opts           Options
	mu             sync.RWMutex
	stopped        bool
	droppedBatches atomic.Uint64
}

// New creates a watcher. It does not watch anything until Start.
func New(opts Options) (*RecordWatcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()

	w := &RecordWatcher{
		debouncer: NewDebouncer(opts.DebounceWindow, opts.EventBufferSize),
		events:    make(chan []FileEvent, opts.EventBufferSize),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
		opts:      opts,
	}

	if !opts.ForcePolling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			w.fsWatcher = fsw
		} else {
			slog.Warn("fsnotify_unavailable", slog.String("error", err.Error()))
		}
	}
	if w.fsWatcher == nil {
		w.poller = NewPoller(opts)
	}

	return w, nil
}

// Start watches root until ctx is cancelled or Stop is called. The record
// subdirectories must exist.
func (w *RecordWatcher) Start(ctx context.Context, root string) error {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}
	for _, sub := range w.opts.Subdirs {
		dir := filepath.Join(absPath, sub)
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("watch %s: not a directory", dir)
		}
	}

	w.mu.Lock()
	w.rootPath = absPath
	w.mu.Unlock()

	go w.forwardDebounced(ctx)

	slog.Debug("watcher_started",
		slog.String("root", absPath),
		slog.String("mode", w.Mode()))

	if w.fsWatcher != nil {
		return w.runFsnotify(ctx)
	}
	return w.runPolling(ctx)
}

func (w *RecordWatcher) runFsnotify(ctx context.Context) error {
	for _, sub := range w.opts.Subdirs {
		if err := w.fsWatcher.Add(filepath.Join(w.rootPath, sub)); err != nil {
			return fmt.Errorf("add %s to watcher: %w", sub, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			_ = w.Stop()
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleFsnotifyEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.emitError(err)
		}
	}
}

func (w *RecordWatcher) runPolling(ctx context.Context) error {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			case event, ok := <-w.poller.Events():
				if !ok {
					return
				}
				w.debouncer.Add(event)
			case err, ok := <-w.poller.Errors():
				if !ok {
					return
				}
				w.emitError(err)
			}
		}
	}()

	err := w.poller.Start(ctx, w.rootPath)
	if ctx.Err() != nil {
		_ = w.Stop()
	}
	return err
}

// handleFsnotifyEvent converts a notification into a FileEvent if it
// concerns a record file.
func (w *RecordWatcher) handleFsnotifyEvent(event fsnotify.Event) {
	rel, dir, ok := w.classify(event.Name)
	if !ok {
		return
	}

	var op Operation
	switch {
	case event.Op&fsnotify.Create != 0:
		op = OpCreate
	case event.Op&fsnotify.Write != 0:
		op = OpModify
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// A rename reports the old name; the new name arrives as a create.
		op = OpDelete
	default:
		return
	}

	w.debouncer.Add(FileEvent{
		Path:      rel,
		Dir:       dir,
		Operation: op,
		Timestamp: time.Now(),
	})
}

// classify returns the root-relative path and subdirectory of a record
// file, or false for anything else.
func (w *RecordWatcher) classify(name string) (rel, dir string, ok bool) {
	return classifyPath(w.rootPath, name, w.opts)
}

func classifyPath(root, name string, opts Options) (rel, dir string, ok bool) {
	if !strings.HasSuffix(name, opts.Ext) || strings.HasPrefix(filepath.Base(name), ".") {
		return "", "", false
	}
	rel, err := filepath.Rel(root, name)
	if err != nil {
		return "", "", false
	}
	parent := filepath.Dir(rel)
	for _, sub := range opts.Subdirs {
		if parent == sub {
			return filepath.ToSlash(rel), sub, true
		}
	}
	return "", "", false
}

func (w *RecordWatcher) forwardDebounced(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case events, ok := <-w.debouncer.Output():
			if !ok {
				return
			}
			if len(events) > 0 {
				w.emitEvents(events)
			}
		}
	}
}

func (w *RecordWatcher) emitEvents(events []FileEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return
	}

	select {
	case w.events <- events:
	default:
		count := w.droppedBatches.Add(1)
		slog.Warn("watcher_buffer_full",
			slog.Int("batch_size", len(events)),
			slog.Uint64("total_dropped_batches", count))
	}
}

func (w *RecordWatcher) emitError(err error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.stopped {
		return
	}

	select {
	case w.errors <- err:
	default:
	}
}

// Stop releases resources and closes the event and error channels. Safe to
// call multiple times.
func (w *RecordWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.stopped = true
	close(w.stopCh)
	w.debouncer.Stop()

	if w.fsWatcher != nil {
		_ = w.fsWatcher.Close()
	}
	if w.poller != nil {
		_ = w.poller.Stop()
	}

	close(w.events)
	close(w.errors)
	return nil
}

// Events returns the channel of debounced batches.
func (w *RecordWatcher) Events() <-chan []FileEvent {
	return w.events
}

// Errors returns non-fatal watcher errors.
func (w *RecordWatcher) Errors() <-chan error {
	return w.errors
}

// DroppedBatches returns how many batches were lost to a full buffer.
func (w *RecordWatcher) DroppedBatches() uint64 {
	return w.droppedBatches.Load()
}

// Mode returns "fsnotify" or "polling".
func (w *RecordWatcher) Mode() string {
	if w.fsWatcher != nil {
		return "fsnotify"
	}
	return "polling"
}

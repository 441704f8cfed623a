package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Poller detects record changes by rescanning the record subdirectories.
type Poller struct {
	opts      Options
	fileState map[string]fileSnapshot
	events    chan FileEvent
	errors    chan error
	stopCh    chan struct{}
	mu        sync.Mutex
	stopped   bool
	rootPath  string
}

type fileSnapshot struct {
	dir     string
	modTime time.Time
	size    int64
}

// NewPoller creates a poller for the given options.
func NewPoller(opts Options) *Poller {
	opts = opts.WithDefaults()
	return &Poller{
		opts:      opts,
		fileState: make(map[string]fileSnapshot),
		events:    make(chan FileEvent, 256),
		errors:    make(chan error, 10),
		stopCh:    make(chan struct{}),
	}
}

// Start records a baseline and then polls until ctx is cancelled or Stop is
// called.
func (p *Poller) Start(ctx context.Context, root string) error {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}

	p.mu.Lock()
	p.rootPath = absPath
	p.fileState = p.snapshot()
	p.mu.Unlock()

	ticker := time.NewTicker(p.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = p.Stop()
			return ctx.Err()
		case <-p.stopCh:
			return nil
		case <-ticker.C:
			p.detectChanges()
		}
	}
}

// Stop stops polling. Safe to call multiple times.
func (p *Poller) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return nil
	}

	p.stopped = true
	close(p.stopCh)
	close(p.events)
	close(p.errors)
	return nil
}

// Events returns the channel of raw file events.
func (p *Poller) Events() <-chan FileEvent {
	return p.events
}

// Errors returns non-fatal scan errors.
func (p *Poller) Errors() <-chan error {
	return p.errors
}

// snapshot reads the state of every record file. Must be called with the
// lock held.
func (p *Poller) snapshot() map[string]fileSnapshot {
	state := make(map[string]fileSnapshot)
	for _, sub := range p.opts.Subdirs {
		dir := filepath.Join(p.rootPath, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			p.emitError(fmt.Errorf("scan %s: %w", dir, err))
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			rel, sub, ok := classifyPath(p.rootPath, filepath.Join(dir, e.Name()), p.opts)
			if !ok {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			state[rel] = fileSnapshot{dir: sub, modTime: info.ModTime(), size: info.Size()}
		}
	}
	return state
}

func (p *Poller) detectChanges() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	current := p.snapshot()
	now := time.Now()

	for rel, snap := range current {
		prev, existed := p.fileState[rel]
		switch {
		case !existed:
			p.emitEvent(FileEvent{Path: rel, Dir: snap.dir, Operation: OpCreate, Timestamp: now})
		case !prev.modTime.Equal(snap.modTime) || prev.size != snap.size:
			p.emitEvent(FileEvent{Path: rel, Dir: snap.dir, Operation: OpModify, Timestamp: now})
		}
	}
	for rel, snap := range p.fileState {
		if _, ok := current[rel]; !ok {
			p.emitEvent(FileEvent{Path: rel, Dir: snap.dir, Operation: OpDelete, Timestamp: now})
		}
	}

	p.fileState = current
}

// emitEvent must be called with the lock held.
func (p *Poller) emitEvent(event FileEvent) {
	if p.stopped {
		return
	}
	select {
	case p.events <- event:
	default:
		slog.Warn("poller_buffer_full",
			slog.String("path", event.Path),
			slog.String("op", event.Operation.String()))
	}
}

// emitError must be called with the lock held.
func (p *Poller) emitError(err error) {
	if p.stopped {
		return
	}
	select {
	case p.errors <- err:
	default:
	}
}

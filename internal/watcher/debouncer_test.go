package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveBatch(t *testing.T, ch <-chan []FileEvent, timeout time.Duration) []FileEvent {
	t.Helper()
	select {
	case events, ok := <-ch:
		require.True(t, ok, "channel closed")
		return events
	case <-time.After(timeout):
		t.Fatal("timeout waiting for batch")
		return nil
	}
}

func TestDebouncer_SingleEvent_PassesThrough(t *testing.T) {
	// Given: a debouncer with a short window
	d := NewDebouncer(50*time.Millisecond, 4)
	defer d.Stop()

	// When: a single event is added
	d.Add(FileEvent{Path: "characters/河.md", Dir: "characters", Operation: OpCreate})

	// Then: it passes through after the window
	events := receiveBatch(t, d.Output(), time.Second)
	require.Len(t, events, 1)
	assert.Equal(t, "characters/河.md", events[0].Path)
	assert.Equal(t, OpCreate, events[0].Operation)
}

func TestDebouncer_BurstOnSameFile_Coalesces(t *testing.T) {
	d := NewDebouncer(100*time.Millisecond, 4)
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Add(FileEvent{Path: "characters/河.md", Operation: OpModify})
		time.Sleep(10 * time.Millisecond)
	}

	events := receiveBatch(t, d.Output(), time.Second)
	require.Len(t, events, 1)
	assert.Equal(t, OpModify, events[0].Operation)
}

func TestDebouncer_CreateThenDelete_NoEvent(t *testing.T) {
	d := NewDebouncer(50*time.Millisecond, 4)
	defer d.Stop()

	d.Add(FileEvent{Path: "characters/tmp.md", Operation: OpCreate})
	d.Add(FileEvent{Path: "characters/tmp.md", Operation: OpDelete})

	select {
	case events := <-d.Output():
		t.Fatalf("unexpected batch: %v", events)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCoalesce_Rules(t *testing.T) {
	tests := []struct {
		name   string
		first  Operation
		next   Operation
		want   Operation
		wantOK bool
	}{
		{"create+modify", OpCreate, OpModify, OpCreate, true},
		{"create+delete", OpCreate, OpDelete, 0, false},
		{"modify+delete", OpModify, OpDelete, OpDelete, true},
		{"modify+modify", OpModify, OpModify, OpModify, true},
		{"delete+create", OpDelete, OpCreate, OpModify, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, ok := coalesce(tt.first, FileEvent{Path: "p", Operation: tt.first}, FileEvent{Path: "p", Operation: tt.next})
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, merged.Operation)
			}
		})
	}
}

func TestDebouncer_SaveByReplace_BecomesModify(t *testing.T) {
	// Given: an editor that deletes and recreates on save
	d := NewDebouncer(50*time.Millisecond, 4)
	defer d.Stop()

	d.Add(FileEvent{Path: "radicals/水.md", Operation: OpModify})
	d.Add(FileEvent{Path: "radicals/水.md", Operation: OpDelete})
	d.Add(FileEvent{Path: "radicals/水.md", Operation: OpCreate})

	events := receiveBatch(t, d.Output(), time.Second)
	require.Len(t, events, 1)
	assert.Equal(t, OpModify, events[0].Operation)
}

func TestDebouncer_BatchSortedByPath(t *testing.T) {
	d := NewDebouncer(50*time.Millisecond, 4)
	defer d.Stop()

	d.Add(FileEvent{Path: "radicals/b.md", Operation: OpCreate})
	d.Add(FileEvent{Path: "characters/z.md", Operation: OpCreate})
	d.Add(FileEvent{Path: "characters/a.md", Operation: OpCreate})

	events := receiveBatch(t, d.Output(), time.Second)
	require.Len(t, events, 3)
	assert.Equal(t, "characters/a.md", events[0].Path)
	assert.Equal(t, "characters/z.md", events[1].Path)
	assert.Equal(t, "radicals/b.md", events[2].Path)
}

func TestDebouncer_StopIsIdempotentAndDropsLateEvents(t *testing.T) {
	d := NewDebouncer(20*time.Millisecond, 4)

	d.Stop()
	d.Stop()
	d.Add(FileEvent{Path: "x.md", Operation: OpCreate})

	_, ok := <-d.Output()
	assert.False(t, ok)
}

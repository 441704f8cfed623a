// Package watcher reports changes to record files under a document root.
//
// Only the record subdirectories (radicals/ and characters/ by default) are
// watched, and only files with the record extension are reported. fsnotify is
// used when available, with polling as a fallback for file systems that do
// not deliver notifications.
//
// Bursts of events, such as an editor's write-rename-chmod sequence, are
// coalesced by a Debouncer and delivered as batches:
//
//	w, err := watcher.New(watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	go func() { _ = w.Start(ctx, root) }()
//
//	for batch := range w.Events() {
//	    // reload once per batch
//	}
package watcher

package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hanzi/internal/output"
	"github.com/Aman-CERP/hanzi/internal/store"
	"github.com/Aman-CERP/hanzi/internal/watcher"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var forcePolling bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload the knowledge base when record files change",
		Long: `Watch the radicals/ and characters/ directories of the plain root and
reload after every burst of edits. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}

			wopts, err := watcherOptions(opts, forcePolling || opts.cfg.Watch.ForcePolling)
			if err != nil {
				return err
			}
			w, err := watcher.New(wopts)
			if err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			out.Statusf("→", "Watching %s (%s), %d radicals, %d characters",
				opts.cfg.Paths.Root, w.Mode(), st.RadicalCount(), st.CharacterCount())

			return runWatch(cmd.Context(), st, w, out)
		},
	}

	cmd.Flags().BoolVar(&forcePolling, "poll", false, "Poll instead of using file system notifications")
	return cmd
}

func watcherOptions(opts *rootOptions, forcePolling bool) (watcher.Options, error) {
	debounce, err := opts.cfg.DebounceWindow()
	if err != nil {
		return watcher.Options{}, err
	}
	poll, err := opts.cfg.PollEvery()
	if err != nil {
		return watcher.Options{}, err
	}

	wopts := watcher.DefaultOptions()
	wopts.DebounceWindow = debounce
	wopts.PollInterval = poll
	wopts.Subdirs = []string{string(store.KindRadical), string(store.KindCharacter)}
	wopts.Ext = store.RecordExt
	wopts.ForcePolling = forcePolling
	return wopts, nil
}

// runWatch reloads st for every batch until ctx ends. Reloads run on this
// goroutine only, so the store is never touched concurrently.
func runWatch(ctx context.Context, st *store.Store, w *watcher.RecordWatcher, out *output.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, st.Layout().Root) }()

	events, errs := w.Events(), w.Errors()
	for {
		select {
		case err := <-done:
			return watchExitError(err)
		case batch, ok := <-events:
			if !ok {
				return watchExitError(<-done)
			}
			report, err := st.Reload(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				slog.Error("watch_reload_failed", slog.String("error", err.Error()))
				out.Errorf("Reload failed: %v", err)
				continue
			}
			slog.Info("watch_reloaded",
				slog.Int("changes", len(batch)),
				slog.Int("radicals", report.Radicals),
				slog.Int("characters", report.Characters),
				slog.Int("skipped", report.Skipped),
				slog.Int("decoded", report.Decoded))
			out.Successf("Reloaded after %d change(s): %d radicals, %d characters",
				len(batch), report.Radicals, report.Characters)
			if report.Skipped > 0 {
				out.Warningf("%d record(s) could not be read, see the log for details", report.Skipped)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Warn("watch_error", slog.String("error", err.Error()))
		}
	}
}

// watchExitError maps the watcher's exit to the command result. Shutdown by
// cancellation is a clean exit.
func watchExitError(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

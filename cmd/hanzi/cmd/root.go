// Package cmd provides the CLI commands for hanzi.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hanzi/internal/config"
	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/lock"
	"github.com/Aman-CERP/hanzi/internal/logging"
	"github.com/Aman-CERP/hanzi/internal/store"
	"github.com/Aman-CERP/hanzi/internal/ui"
	"github.com/Aman-CERP/hanzi/pkg/version"
)

// rootOptions carries global flags and the resolved configuration to every
// subcommand.
type rootOptions struct {
	root        string
	vscodeDir   string
	obsidianDir string
	debug       bool
	noColor     bool

	cfg            *config.Config
	loggingCleanup func()
}

// NewRootCmd creates the root command for the hanzi CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hanzi",
		Short: "File-backed knowledge base of Chinese radicals and characters",
		Long: `hanzi keeps radicals and characters as Markdown records with YAML
frontmatter. Every record is written in three flavors: plain, VS Code and
Obsidian. Only the plain root is read back.

It answers lookups by radical and text search, reports statistics, and
exports Anki decks and practice sheets.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			opts.teardown()
			return nil
		},
	}

	cmd.SetVersionTemplate("hanzi version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "Plain record root (overrides paths.root)")
	cmd.PersistentFlags().StringVar(&opts.vscodeDir, "vscode-dir", "", "VS Code record root (overrides paths.vscode)")
	cmd.PersistentFlags().StringVar(&opts.obsidianDir, "obsidian-dir", "", "Obsidian record root (overrides paths.obsidian)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to ~/.hanzi/logs/")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newRadicalCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newStatsCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newPracticeCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newPinyinCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newDoctorCmd(opts))
	cmd.AddCommand(newLogsCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and prints failures in CLI form.
func Execute(ctx context.Context) error {
	opts := &rootOptions{}
	defer opts.teardown()

	cmd := newRootCmd(opts)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), herrors.FormatForCLI(err))
	}
	return err
}

// skipConfigAnnotation marks commands that must run even when the
// configuration is broken.
const skipConfigAnnotation = "hanzi/skip-config"

// setup loads configuration, applies flag overrides and installs logging.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		cleanup, err := logging.SetupDefault(o.debug, "", "")
		o.loggingCleanup = cleanup
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return herrors.IOError("resolve working directory", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Paths.Root = o.root
	}
	if flags.Changed("vscode-dir") {
		cfg.Paths.VSCode = o.vscodeDir
	}
	if flags.Changed("obsidian-dir") {
		cfg.Paths.Obsidian = o.obsidianDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	cleanup, err := logging.SetupDefault(o.debug, cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	o.loggingCleanup = cleanup

	slog.Debug("command_started",
		slog.String("command", cmd.CommandPath()),
		slog.String("root", cfg.Paths.Root),
		slog.String("version", version.Version))
	return nil
}

func (o *rootOptions) teardown() {
	if o.loggingCleanup != nil {
		o.loggingCleanup()
		o.loggingCleanup = nil
	}
}

// layout returns the document roots from the resolved configuration.
func (o *rootOptions) layout() store.Layout {
	return store.Layout{
		Root:     o.cfg.Paths.Root,
		VSCode:   o.cfg.Paths.VSCode,
		Obsidian: o.cfg.Paths.Obsidian,
	}
}

// openStore opens and loads the knowledge base.
func (o *rootOptions) openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, o.layout(),
		store.WithCacheSize(o.cfg.Store.CacheSize),
		store.WithDecodeWorkers(o.cfg.Store.DecodeWorkers))
	if err != nil {
		return nil, err
	}

	if report := st.LastLoad(); report.Skipped > 0 {
		slog.Warn("records_skipped_on_load",
			slog.Int("skipped", report.Skipped),
			slog.String("root", o.cfg.Paths.Root))
	}
	return st, nil
}

// lockStore takes the writer lock on the plain root. With noWait a held lock
// fails immediately.
func (o *rootOptions) lockStore(ctx context.Context, noWait bool) (*lock.StoreLock, error) {
	l := lock.New(o.cfg.Paths.Root)
	if noWait {
		if err := l.TryLock(); err != nil {
			return nil, err
		}
		return l, nil
	}
	if err := l.Lock(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// noColorFor reports whether output to cmd's stdout should be plain.
func (o *rootOptions) noColorFor(cmd *cobra.Command) bool {
	return o.noColor || !ui.ColorEnabled(cmd.OutOrStdout())
}

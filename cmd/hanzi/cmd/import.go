package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hanzi/internal/importer"
	"github.com/Aman-CERP/hanzi/internal/output"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var noWait bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk-import radicals and characters from CSV",
		Long: `Import rows from a CSV file with a header row.

Rows with is_radical=true become radicals; every other row becomes a
character. List cells (meaning, radicals, stroke_order, tags, ...) are
comma-separated. The whole file is parsed before anything is added, so a
malformed row leaves the knowledge base untouched. Rows whose key already
exists are skipped.`,
		Example: `  hanzi import data/characters.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			l, err := opts.lockStore(ctx, noWait)
			if err != nil {
				return err
			}
			defer func() { _ = l.Unlock() }()

			st, err := opts.openStore(ctx)
			if err != nil {
				return err
			}

			start := time.Now()
			n, err := importer.ImportFile(ctx, st, args[0])
			if err != nil {
				return err
			}

			slog.Info("import_completed",
				slog.String("path", args[0]),
				slog.Int("rows", n),
				slog.Duration("duration", time.Since(start)))
			output.New(cmd.OutOrStdout()).Successf("Imported %d rows from %s", n, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Fail instead of waiting for another writer")
	return cmd
}

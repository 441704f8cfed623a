package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hanzi/internal/output"
	"github.com/Aman-CERP/hanzi/internal/pinyin"
)

func newPinyinCmd(_ *rootOptions) *cobra.Command {
	var (
		jsonPath string
		dbPath   string
	)

	cmd := &cobra.Command{
		Use:   "pinyin <chart.csv>",
		Short: "Convert a pinyin chart CSV to JSON",
		Long: `Read a pinyin chart whose first row is the header and write it as a JSON
array of objects, one per row, keyed by header name. Blank cells become null.

With --db the rows are also inserted into a SQLite table named pinyin.`,
		Example: `  hanzi pinyin chart.csv
  hanzi pinyin chart.csv --json-path out/chart.json --db data/pinyin.db`,
		Args: cobra.ExactArgs(1),
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := pinyin.LoadChart(args[0])
			if err != nil {
				return err
			}
			if err := pinyin.SaveJSON(rows, jsonPath); err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			out.Successf("Wrote %d rows to %s", len(rows), jsonPath)

			if dbPath == "" {
				return nil
			}

			db, err := pinyin.OpenDB(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			n, err := db.InsertRows(cmd.Context(), rows)
			if err != nil {
				return err
			}
			slog.Info("pinyin_rows_inserted", slog.String("db", dbPath), slog.Int("rows", n))
			out.Successf("Inserted %d rows into %s", n, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonPath, "json-path", pinyin.DefaultJSONPath, "Output JSON file")
	cmd.Flags().StringVar(&dbPath, "db", "", "Also insert rows into this SQLite database")
	return cmd
}

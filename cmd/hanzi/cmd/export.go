package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hanzi/internal/output"
	"github.com/Aman-CERP/hanzi/internal/render"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the knowledge base",
	}
	cmd.AddCommand(newExportAnkiCmd(opts))
	return cmd
}

func newExportAnkiCmd(opts *rootOptions) *cobra.Command {
	var noRadicals bool

	cmd := &cobra.Command{
		Use:   "anki <path>",
		Short: "Write a tab-separated Anki deck",
		Long: `Write one line per character (and, unless --no-radicals, per radical)
with the columns character, pinyin, meaning, mnemonic, radicals, strokes.`,
		Example: `  hanzi export anki deck.txt
  hanzi export anki deck.txt --no-radicals`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := render.AnkiExport(st, args[0], !noRadicals); err != nil {
				return err
			}

			n := st.CharacterCount()
			if !noRadicals {
				n += st.RadicalCount()
			}
			output.New(cmd.OutOrStdout()).Successf("Exported %d cards to %s", n, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&noRadicals, "no-radicals", false, "Export characters only")
	return cmd
}

func newPracticeCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "practice <dir>",
		Short: "Generate a printable practice sheet",
		Long: `Write practice_sheet.html to dir with a section per character, up to
the configured limit (practice.limit, default 20), plus a placeholder
practice_sheet.pdf.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = opts.cfg.Practice.Limit
			}
			if err := render.PracticeSheet(st, args[0], limit); err != nil {
				return err
			}

			output.New(cmd.OutOrStdout()).Successf("Practice sheet written to %s",
				filepath.Join(args[0], render.PracticeHTMLName))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum characters on the sheet")
	return cmd
}

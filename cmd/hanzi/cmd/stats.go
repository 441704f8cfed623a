package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Aman-CERP/hanzi/internal/ui"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge-base statistics",
		Long: `Show totals, characters per HSK level and per stroke count, and the
ten radicals found in the most characters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}

			r := ui.NewStatsRenderer(cmd.OutOrStdout(), opts.noColorFor(cmd))
			if jsonOutput {
				return r.RenderJSON(st.Stats())
			}
			return r.Render(st.Stats())
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/preflight"
)

// doctorReport is the --json shape of `hanzi doctor`.
type doctorReport struct {
	Status string                  `json:"status"`
	Checks []preflight.CheckResult `json:"checks"`
}

func newDoctorCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the knowledge base is healthy",
		Long: `Check the document roots for write access and free space, the store lock,
the file descriptor limit used by watch mode, and record integrity: files
that could not be read and characters referencing radicals that are not
stored.

Exits non-zero when a required check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := preflight.New(
				preflight.WithOutput(cmd.OutOrStdout()),
				preflight.WithVerbose(verbose),
				preflight.WithNoColor(opts.noColorFor(cmd)))

			var results []preflight.CheckResult
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				results = checker.RunAll(cmd.Context(), opts.layout(), nil)
				results = append(results, preflight.CheckResult{
					Name:     "store_open",
					Status:   preflight.StatusFail,
					Message:  err.Error(),
					Required: true,
				})
			} else {
				results = checker.RunAll(cmd.Context(), opts.layout(), st)
			}

			if jsonOutput {
				if err := writeJSON(cmd, doctorReport{
					Status: checker.SummaryStatus(results),
					Checks: results,
				}); err != nil {
					return err
				}
			} else {
				checker.PrintResults(results)
			}

			if checker.HasCriticalFailures(results) {
				return herrors.New(herrors.ErrCodeIOFailure, "knowledge base check failed", nil).
					WithSuggestion("fix the failures listed above and run `hanzi doctor` again")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show details for each check")
	return cmd
}

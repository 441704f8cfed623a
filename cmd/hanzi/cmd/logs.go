package cmd

import (
	"regexp"

	"github.com/spf13/cobra"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/logging"
)

func newLogsCmd(opts *rootOptions) *cobra.Command {
	var (
		lines   int
		level   string
		pattern string
		file    string
		follow  bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View hanzi debug logs",
		Long: `Show recent entries from the hanzi log file (written when --debug is set).

Entries can be filtered by minimum level and by a regular expression
matched against the raw log line.`,
		Example: `  hanzi logs -n 50
  hanzi logs --level warn
  hanzi logs --follow --pattern watch_`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var re *regexp.Regexp
			if pattern != "" {
				compiled, err := regexp.Compile(pattern)
				if err != nil {
					return herrors.ValidationError("invalid --pattern: "+err.Error(), err).
						WithDetail("pattern", pattern)
				}
				re = compiled
			}

			path, err := logging.FindLogFile(file)
			if err != nil {
				return err
			}

			viewer := logging.NewViewer(logging.ViewerConfig{
				Level:   level,
				Pattern: re,
				NoColor: opts.noColorFor(cmd),
			}, cmd.OutOrStdout())

			entries, err := viewer.Tail(path, lines)
			if err != nil {
				return err
			}
			viewer.Print(entries)

			if !follow {
				return nil
			}

			ch := make(chan logging.LogEntry, 64)
			errCh := make(chan error, 1)
			go func() {
				errCh <- viewer.Follow(cmd.Context(), path, ch)
				close(ch)
			}()
			for entry := range ch {
				viewer.Print([]logging.LogEntry{entry})
			}
			return <-errCh
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of entries to show")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level (debug, info, warn, error)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Only show lines matching this regular expression")
	cmd.Flags().StringVar(&file, "file", "", "Log file to read (default ~/.hanzi/logs/hanzi.log)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new entries")
	return cmd
}

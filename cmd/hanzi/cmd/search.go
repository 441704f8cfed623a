package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/fulltext"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/ui"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	ranked     bool
	limit      int
	jsonOutput bool
}

// rankedResult is the --json shape of a ranked hit.
type rankedResult struct {
	Score     float64         `json:"score"`
	Character model.Character `json:"character"`
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var so searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search characters",
		Long: `Search characters by grapheme, pinyin, meaning or tag.

By default every character containing the query is listed in store order;
pinyin, meaning and tags match ignoring case, and an empty query lists them
all. With --ranked the query is tokenized and scored, tone marks are ignored
(lin matches lín), and at most --limit results are returned best first.`,
		Example: `  hanzi search forest
  hanzi search lin --ranked --limit 5
  hanzi search 木 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if so.ranked && strings.TrimSpace(query) == "" {
				return herrors.New(herrors.ErrCodeQueryEmpty, "ranked search query is empty", nil)
			}

			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}

			empty := fmt.Sprintf("No characters match %q", query)
			if !so.ranked {
				chars := st.Search(query)
				if so.jsonOutput {
					return writeJSON(cmd, chars)
				}
				ui.NewCardRenderer(cmd.OutOrStdout(), opts.noColorFor(cmd)).CharacterList(chars, empty)
				return nil
			}

			idx, err := fulltext.Build(cmd.Context(), st.Characters())
			if err != nil {
				return err
			}
			defer func() { _ = idx.Close() }()

			hits, err := idx.Search(cmd.Context(), query, so.limit)
			if err != nil {
				return err
			}
			slog.Debug("ranked_search",
				slog.String("query", query),
				slog.Int("hits", len(hits)))

			if so.jsonOutput {
				results := make([]rankedResult, 0, len(hits))
				for _, h := range hits {
					if c, ok := st.Character(h.Key); ok {
						results = append(results, rankedResult{Score: h.Score, Character: c})
					}
				}
				return writeJSON(cmd, results)
			}
			ui.NewCardRenderer(cmd.OutOrStdout(), opts.noColorFor(cmd)).Hits(hits, st.Character, empty)
			return nil
		},
	}

	cmd.Flags().BoolVar(&so.ranked, "ranked", false, "Rank results by relevance")
	cmd.Flags().IntVarP(&so.limit, "limit", "n", fulltext.DefaultLimit, "Maximum ranked results")
	cmd.Flags().BoolVar(&so.jsonOutput, "json", false, "Output as JSON")

	return cmd
}

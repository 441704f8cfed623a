package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/ui"
)

// showResult is the --json shape of `hanzi show`.
type showResult struct {
	Radical   *model.Radical   `json:"radical,omitempty"`
	Character *model.Character `json:"character,omitempty"`
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Show a radical and/or character",
		Long: `Show the record stored under key. A grapheme that is both a radical
and a character (such as 木) shows both cards.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}

			key := args[0]
			var res showResult
			if r, ok := st.Radical(key); ok {
				res.Radical = &r
			}
			if c, ok := st.Character(key); ok {
				res.Character = &c
			}
			if res.Radical == nil && res.Character == nil {
				return herrors.New(herrors.ErrCodeNotFound, fmt.Sprintf("%s is not in the knowledge base", key), nil).
					WithDetail("key", key).
					WithSuggestion("add it with `hanzi add character` or `hanzi add radical`")
			}

			if jsonOutput {
				return writeJSON(cmd, res)
			}

			cards := ui.NewCardRenderer(cmd.OutOrStdout(), opts.noColorFor(cmd))
			if res.Radical != nil {
				cards.Radical(*res.Radical)
			}
			if res.Character != nil {
				cards.Character(*res.Character)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newRadicalCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "radical <key>",
		Short: "List characters containing a radical",
		Long: `List every stored character whose radicals include key, in the order
the characters were added or loaded. The radical itself need not be stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}

			chars := st.CharactersByRadical(args[0])
			if jsonOutput {
				return writeJSON(cmd, chars)
			}

			ui.NewCardRenderer(cmd.OutOrStdout(), opts.noColorFor(cmd)).
				CharacterList(chars, fmt.Sprintf("No characters contain %s", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// writeJSON writes v indented, with non-ASCII kept as is.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

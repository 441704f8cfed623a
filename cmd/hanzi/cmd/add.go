package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/output"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a radical or character",
		Long: `Add a record and write it to all three document roots.

Adding a key that already exists fails and leaves the store unchanged.`,
	}

	cmd.AddCommand(newAddRadicalCmd(opts))
	cmd.AddCommand(newAddCharacterCmd(opts))
	return cmd
}

type addRadicalFlags struct {
	char        string
	pinyin      string
	meaning     string
	typ         string
	strokes     int
	strokeOrder []string
	common      []string
	mnemonic    string
	noWait      bool
}

func newAddRadicalCmd(opts *rootOptions) *cobra.Command {
	var f addRadicalFlags

	cmd := &cobra.Command{
		Use:   "radical",
		Short: "Add a radical",
		Example: `  hanzi add radical --char 木 --pinyin mù --meaning wood --type semantic \
    --strokes 4 --stroke-order 横,竖,撇,点 --common 林,森`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := f.toModel()
			if err != nil {
				return err
			}

			l, err := opts.lockStore(cmd.Context(), f.noWait)
			if err != nil {
				return err
			}
			defer func() { _ = l.Unlock() }()

			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.AddRadical(r); err != nil {
				return err
			}

			output.New(cmd.OutOrStdout()).Successf("Added radical %s (%s)", r.Character, r.Meaning)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.char, "char", "", "Radical grapheme (required)")
	cmd.Flags().StringVar(&f.pinyin, "pinyin", "", "Pinyin")
	cmd.Flags().StringVar(&f.meaning, "meaning", "", "Meaning")
	cmd.Flags().StringVar(&f.typ, "type", "", "Type: semantic, phonetic, both, unknown")
	cmd.Flags().IntVar(&f.strokes, "strokes", 0, "Stroke count")
	cmd.Flags().StringSliceVar(&f.strokeOrder, "stroke-order", nil, "Strokes in writing order, e.g. 横,竖")
	cmd.Flags().StringSliceVar(&f.common, "common", nil, "Common characters containing the radical")
	cmd.Flags().StringVar(&f.mnemonic, "mnemonic", "", "Memory aid")
	cmd.Flags().BoolVar(&f.noWait, "no-wait", false, "Fail instead of waiting for another writer")
	_ = cmd.MarkFlagRequired("char")

	return cmd
}

func (f addRadicalFlags) toModel() (model.Radical, error) {
	typ, err := model.ParseRadicalType(f.typ)
	if err != nil {
		return model.Radical{}, err
	}
	order, err := model.ParseStrokeOrder(f.strokeOrder)
	if err != nil {
		return model.Radical{}, err
	}
	r := model.Radical{
		Character:        strings.TrimSpace(f.char),
		Pinyin:           f.pinyin,
		Meaning:          f.meaning,
		Type:             typ,
		Strokes:          f.strokes,
		StrokeOrder:      order,
		CommonCharacters: f.common,
		Mnemonic:         f.mnemonic,
	}
	r.Normalize()
	return r, nil
}

type addCharacterFlags struct {
	char        string
	pinyin      string
	tone        int
	meaning     []string
	radicals    []string
	strokes     int
	strokeOrder []string
	components  []string
	hsk         int
	frequency   int
	mnemonic    string
	words       []string
	tags        []string
	noWait      bool
}

func newAddCharacterCmd(opts *rootOptions) *cobra.Command {
	var f addCharacterFlags

	cmd := &cobra.Command{
		Use:   "character",
		Short: "Add a character",
		Example: `  hanzi add character --char 林 --pinyin lín --tone 2 --meaning woods,forest \
    --radicals 木,木 --strokes 8 --word "树林:shùlín:woods"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := f.toModel()
			if err != nil {
				return err
			}

			l, err := opts.lockStore(cmd.Context(), f.noWait)
			if err != nil {
				return err
			}
			defer func() { _ = l.Unlock() }()

			st, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := st.AddCharacter(c); err != nil {
				return err
			}

			out := output.New(cmd.OutOrStdout())
			out.Successf("Added character %s (%s)", c.Character, strings.Join(c.Meaning, ", "))
			for _, r := range c.Radicals {
				if _, ok := st.Radical(r); !ok {
					out.Warningf("Radical %s is not in the knowledge base yet", r)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.char, "char", "", "Character grapheme (required)")
	cmd.Flags().StringVar(&f.pinyin, "pinyin", "", "Pinyin")
	cmd.Flags().IntVar(&f.tone, "tone", 0, "Tone 1-5")
	cmd.Flags().StringSliceVar(&f.meaning, "meaning", nil, "Meanings")
	cmd.Flags().StringSliceVar(&f.radicals, "radicals", nil, "Radical keys, repeats allowed")
	cmd.Flags().IntVar(&f.strokes, "strokes", 0, "Stroke count")
	cmd.Flags().StringSliceVar(&f.strokeOrder, "stroke-order", nil, "Strokes in writing order")
	cmd.Flags().StringSliceVar(&f.components, "components", nil, "Component graphemes")
	cmd.Flags().IntVar(&f.hsk, "hsk", 0, "HSK level, 0 for none")
	cmd.Flags().IntVar(&f.frequency, "frequency", 0, "Frequency rank, 0 for unknown")
	cmd.Flags().StringVar(&f.mnemonic, "mnemonic", "", "Memory aid")
	cmd.Flags().StringArrayVar(&f.words, "word", nil, "Example word as word:pinyin:meaning (repeatable)")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "Tags")
	cmd.Flags().BoolVar(&f.noWait, "no-wait", false, "Fail instead of waiting for another writer")
	_ = cmd.MarkFlagRequired("char")

	return cmd
}

func (f addCharacterFlags) toModel() (model.Character, error) {
	if f.tone < 0 || f.tone > 5 {
		return model.Character{}, herrors.ValidationError(fmt.Sprintf("tone must be between 1 and 5, got %d", f.tone), nil)
	}
	order, err := model.ParseStrokeOrder(f.strokeOrder)
	if err != nil {
		return model.Character{}, err
	}
	words, err := parseWords(f.words)
	if err != nil {
		return model.Character{}, err
	}
	c := model.Character{
		Character:     strings.TrimSpace(f.char),
		Pinyin:        f.pinyin,
		Tone:          f.tone,
		Meaning:       f.meaning,
		Radicals:      f.radicals,
		Strokes:       f.strokes,
		StrokeOrder:   order,
		Components:    f.components,
		HSKLevel:      f.hsk,
		FrequencyRank: f.frequency,
		Mnemonic:      f.mnemonic,
		ExampleWords:  words,
		Tags:          f.tags,
	}
	c.Normalize()
	return c, nil
}

// parseWords reads word:pinyin:meaning triples. The meaning may itself
// contain colons.
func parseWords(raw []string) ([]model.ExampleWord, error) {
	words := make([]model.ExampleWord, 0, len(raw))
	for _, w := range raw {
		parts := strings.SplitN(w, ":", 3)
		if len(parts) != 3 || strings.TrimSpace(parts[0]) == "" {
			return nil, herrors.ValidationError(fmt.Sprintf("example word %q must look like word:pinyin:meaning", w), nil)
		}
		words = append(words, model.ExampleWord{
			Word:    strings.TrimSpace(parts[0]),
			Pinyin:  strings.TrimSpace(parts[1]),
			Meaning: strings.TrimSpace(parts[2]),
		})
	}
	return words, nil
}

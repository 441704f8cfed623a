package record

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
)

func woodRadical() model.Radical {
	return model.Radical{
		Character:        "木",
		Pinyin:           "mù",
		Meaning:          "wood",
		Type:             model.RadicalSemantic,
		Strokes:          4,
		StrokeOrder:      []model.StrokeType{model.StrokeHorizontal, model.StrokeVertical, model.StrokeLeftDiagonal, model.StrokeDot},
		CommonCharacters: []string{"林", "森"},
		Mnemonic:         "A tree with branches",
	}
}

func forestCharacter() model.Character {
	return model.Character{
		Character:     "林",
		Pinyin:        "lín",
		Tone:          2,
		Meaning:       []string{"woods", "forest"},
		Radicals:      []string{"木", "木"},
		Strokes:       8,
		StrokeOrder:   []model.StrokeType{model.StrokeHorizontal, model.StrokeVertical},
		Components:    []string{"木", "林"},
		HSKLevel:      4,
		FrequencyRank: 1024,
		Mnemonic:      "Two trees: a grove.\nSecond line: with a colon",
		ExampleWords:  []model.ExampleWord{{Word: "森林", Pinyin: "sēnlín", Meaning: "forest"}},
		Tags:          []string{"nature"},
	}
}

func TestRadical_RoundTrip_AllVariants(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			// Given: a fully populated radical
			want := woodRadical()

			// When: encoding and decoding it
			text, err := EncodeRadical(want, v)
			require.NoError(t, err)
			got, err := DecodeRadical(text)

			// Then: header fields survive unchanged
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCharacter_RoundTrip_AllVariants(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			want := forestCharacter()

			text, err := EncodeCharacter(want, v)
			require.NoError(t, err)
			got, err := DecodeCharacter(text)

			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestRadical_RoundTrip_TrailingNewlineLastField(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			// Given: a radical whose last header field ends in a line break
			want := woodRadical()
			want.StrokeOrder = []model.StrokeType{}
			want.CommonCharacters = []string{}
			want.Mnemonic = "end\n"

			// When: encoding and decoding it
			text, err := EncodeRadical(want, v)
			require.NoError(t, err)
			got, err := DecodeRadical(text)

			// Then: the line break survives
			require.NoError(t, err)
			assert.Equal(t, "end\n", got.Mnemonic)
			assert.Equal(t, want, got)
		})
	}
}

func TestSplitFrontmatter_KeepsFinalLineBreak(t *testing.T) {
	header, body, err := splitFrontmatter("---\nmnemonic: |\n  end\n---\nbody")

	require.NoError(t, err)
	assert.Equal(t, "mnemonic: |\n  end\n", header)
	assert.Equal(t, "body", body)
}

func TestSplitFrontmatter_EmptyBlock(t *testing.T) {
	header, body, err := splitFrontmatter("---\n---\nbody")

	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Equal(t, "body", body)
}

func TestRoundTrip_AllDefaults(t *testing.T) {
	// Given: zero values normalized to their empty form
	var r model.Radical
	r.Normalize()
	var c model.Character
	c.Normalize()

	// When: round-tripping the plain variant
	rt, err := EncodeRadical(r, VariantPlain)
	require.NoError(t, err)
	gotR, err := DecodeRadical(rt)
	require.NoError(t, err)

	ct, err := EncodeCharacter(c, VariantPlain)
	require.NoError(t, err)
	gotC, err := DecodeCharacter(ct)
	require.NoError(t, err)

	// Then: the defaults come back
	assert.Equal(t, r, gotR)
	assert.Equal(t, c, gotC)
}

func TestEncode_OmitsEmptyOptionalFields(t *testing.T) {
	c := model.Character{Character: "人", Pinyin: "rén", Tone: 2, Meaning: []string{"person"}}

	text, err := EncodeCharacter(c, VariantPlain)
	require.NoError(t, err)

	header := text[:strings.Index(text[4:], "---")+4]
	assert.Contains(t, header, "tone: 2")
	assert.Contains(t, header, "radicals: []")
	assert.NotContains(t, header, "stroke_order")
	assert.NotContains(t, header, "hsk_level")
	assert.NotContains(t, header, "frequency_rank")
	assert.NotContains(t, header, "example_words")
	assert.Contains(t, text, "- **HSK Level**: N/A")
}

func TestVariants_ShareIdenticalFrontmatter(t *testing.T) {
	// Given: all encoded variants of one character
	docs, err := RenderCharacter(forestCharacter())
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// Then: the payload of every variant is byte-identical
	first, _, err := splitFrontmatter(docs[0].Body)
	require.NoError(t, err)
	for _, d := range docs[1:] {
		payload, _, err := splitFrontmatter(d.Body)
		require.NoError(t, err)
		assert.Equal(t, first, payload, d.Variant.String())
	}
}

func TestPlainBody_FactsAndLists(t *testing.T) {
	text, err := EncodeCharacter(forestCharacter(), VariantPlain)
	require.NoError(t, err)

	assert.Contains(t, text, "# 林 - woods, forest")
	assert.Contains(t, text, "- **Pinyin**: lín (Tone 2)")
	assert.Contains(t, text, "- **Radicals**: 木, 木")
	assert.Contains(t, text, "- 森林 (sēnlín): forest")
	assert.Contains(t, text, "横 → 竖")
	assert.NotContains(t, text, "[[")
	assert.NotContains(t, text, "## Code Snippet")
}

func TestVSCodeBody_SnippetAndAnkiLine(t *testing.T) {
	text, err := EncodeCharacter(forestCharacter(), VariantVSCode)
	require.NoError(t, err)

	assert.Contains(t, text, "## Code Snippet\n```json\n")
	assert.Contains(t, text, `"frequency_rank": 1024`)
	assert.Contains(t, text, "林\tlín\twoods, forest\tTwo trees")
}

func TestObsidianBody_LinksCalloutsAndQuizzes(t *testing.T) {
	// Given: a character and a radical in the Obsidian variant
	ctext, err := EncodeCharacter(forestCharacter(), VariantObsidian)
	require.NoError(t, err)
	rtext, err := EncodeRadical(woodRadical(), VariantObsidian)
	require.NoError(t, err)

	// Then: cross references are links
	assert.Contains(t, ctext, "[[radicals/木|木]]")
	assert.Contains(t, ctext, "- **Components**: [[木]], [[林]]")
	assert.Contains(t, rtext, "[[林]], [[森]]")

	// And: mnemonic and meaning are callouts, multi-line text stays quoted
	assert.Contains(t, ctext, "> [!hint] Memory Aid\n> Two trees: a grove.\n> Second line")
	assert.Contains(t, ctext, "> [!info] Meaning\n> woods, forest")

	// And: the pronunciation quiz appears for characters only
	assert.Contains(t, ctext, "How do you pronounce 林?")
	assert.Contains(t, ctext, "> > lín (Tone 2)")
	assert.Contains(t, rtext, "What is the meaning of 木?")
	assert.NotContains(t, rtext, "How do you pronounce")
	assert.Equal(t, 2, strings.Count(ctext, "[!success] Answer"))
}

func TestDecode_MissingFrontmatterIsMalformed(t *testing.T) {
	inputs := map[string]string{
		"no block":        "# 木 - wood\n\nJust a body.",
		"unclosed":        "---\ncharacter: 木\n\n# body",
		"not at start":    "intro\n---\ncharacter: 木\n---\n",
		"empty file":      "",
		"yaml not a map":  "---\n- a\n- b\n---\n",
		"bad yaml syntax": "---\ncharacter: [木\n---\n",
	}

	for name, text := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRadical(text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, herrors.ErrMalformedRecord))
		})
	}
}

func TestDecode_WrongScalarTypeIsMalformed(t *testing.T) {
	_, err := DecodeCharacter("---\ncharacter: 林\nstrokes: many\n---\n")

	assert.True(t, errors.Is(err, herrors.ErrMalformedRecord))
}

func TestDecode_FirstBlockOnly(t *testing.T) {
	// Given: a body that contains a second delimited block
	text := "---\ncharacter: 木\nmeaning: wood\n---\n\nbody\n---\ncharacter: 水\n---\n"

	r, err := DecodeRadical(text)

	require.NoError(t, err)
	assert.Equal(t, "木", r.Character)
}

func TestDecode_CRLFAccepted(t *testing.T) {
	r, err := DecodeRadical("---\r\ncharacter: 水\r\npinyin: shuǐ\r\n---\r\nbody")

	require.NoError(t, err)
	assert.Equal(t, "水", r.Character)
	assert.Equal(t, "shuǐ", r.Pinyin)
}

func TestDecode_AbsentFieldsDefault(t *testing.T) {
	// Given: a minimal radical with no type
	r, err := DecodeRadical("---\ncharacter: 口\n---\n")

	// Then: lenient defaults apply
	require.NoError(t, err)
	assert.Equal(t, model.RadicalUnknown, r.Type)
	assert.Equal(t, 0, r.Strokes)
	assert.Equal(t, []model.StrokeType{}, r.StrokeOrder)
	assert.Equal(t, []string{}, r.CommonCharacters)

	c, err := DecodeCharacter("---\ncharacter: 口\n---\n")
	require.NoError(t, err)
	assert.Equal(t, []string{}, c.Meaning)
	assert.Equal(t, []model.ExampleWord{}, c.ExampleWords)
}

func TestDecode_UnknownEnumLiteralIsStrict(t *testing.T) {
	_, err := DecodeRadical("---\ncharacter: 口\ntype: decorative\n---\n")
	assert.True(t, errors.Is(err, herrors.ErrInvalidEnum))

	_, err = DecodeCharacter("---\ncharacter: 口\nstroke_order: [竖, wiggle]\n---\n")
	assert.True(t, errors.Is(err, herrors.ErrInvalidEnum))
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "plain", VariantPlain.String())
	assert.Equal(t, "vscode", VariantVSCode.String())
	assert.Equal(t, "obsidian", VariantObsidian.String())
	assert.Equal(t, "variant(9)", Variant(9).String())
}

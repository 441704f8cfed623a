package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Aman-CERP/hanzi/internal/fulltext"
	"github.com/Aman-CERP/hanzi/internal/model"
)

// CardRenderer prints records as terminal cards and lists.
type CardRenderer struct {
	out    io.Writer
	styles Styles
}

// NewCardRenderer creates a card renderer.
func NewCardRenderer(out io.Writer, noColor bool) *CardRenderer {
	return &CardRenderer{out: out, styles: GetStyles(noColor)}
}

// Character prints one character with its metadata.
func (r *CardRenderer) Character(c model.Character) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s", r.styles.Glyph.Render(c.Character), r.styles.Pinyin.Render(c.Pinyin))
	if c.Tone > 0 {
		fmt.Fprintf(&sb, " (tone %d)", c.Tone)
	}
	sb.WriteString("\n")
	r.field(&sb, "Meaning", strings.Join(c.Meaning, ", "))
	r.field(&sb, "Radicals", strings.Join(c.Radicals, " "))
	r.field(&sb, "Strokes", fmt.Sprintf("%d", c.Strokes))
	if len(c.StrokeOrder) > 0 {
		r.field(&sb, "Order", joinStrokes(c.StrokeOrder))
	}
	if c.HSKLevel > 0 {
		r.field(&sb, "HSK", fmt.Sprintf("%d", c.HSKLevel))
	}
	if c.FrequencyRank > 0 {
		r.field(&sb, "Frequency", fmt.Sprintf("#%d", c.FrequencyRank))
	}
	if c.Mnemonic != "" {
		r.field(&sb, "Mnemonic", c.Mnemonic)
	}
	for _, w := range c.ExampleWords {
		r.field(&sb, "Word", fmt.Sprintf("%s (%s) %s", w.Word, w.Pinyin, w.Meaning))
	}
	if len(c.Tags) > 0 {
		r.field(&sb, "Tags", strings.Join(c.Tags, ", "))
	}

	_, _ = fmt.Fprintln(r.out, r.styles.Panel.Render(strings.TrimRight(sb.String(), "\n")))
}

// Radical prints one radical with its metadata.
func (r *CardRenderer) Radical(rad model.Radical) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s  %s\n",
		r.styles.Glyph.Render(rad.Character),
		r.styles.Pinyin.Render(rad.Pinyin),
		r.styles.Label.Render("radical"))
	r.field(&sb, "Meaning", rad.Meaning)
	r.field(&sb, "Type", string(rad.Type))
	r.field(&sb, "Strokes", fmt.Sprintf("%d", rad.Strokes))
	if len(rad.StrokeOrder) > 0 {
		r.field(&sb, "Order", joinStrokes(rad.StrokeOrder))
	}
	if len(rad.CommonCharacters) > 0 {
		r.field(&sb, "Common", strings.Join(rad.CommonCharacters, " "))
	}
	if rad.Mnemonic != "" {
		r.field(&sb, "Mnemonic", rad.Mnemonic)
	}

	_, _ = fmt.Fprintln(r.out, r.styles.Panel.Render(strings.TrimRight(sb.String(), "\n")))
}

// CharacterList prints one line per character. empty is printed when the
// list has no entries.
func (r *CardRenderer) CharacterList(chars []model.Character, empty string) {
	if len(chars) == 0 {
		_, _ = fmt.Fprintln(r.out, r.styles.Dim.Render(empty))
		return
	}
	for _, c := range chars {
		_, _ = fmt.Fprintf(r.out, "%s  %-8s %s\n",
			r.styles.Glyph.Render(c.Character),
			r.styles.Pinyin.Render(c.Pinyin),
			strings.Join(c.Meaning, ", "))
	}
}

// Hits prints ranked search results, resolving keys through lookup. Keys
// that no longer resolve are skipped.
func (r *CardRenderer) Hits(hits []fulltext.Hit, lookup func(string) (model.Character, bool), empty string) {
	printed := 0
	for _, h := range hits {
		c, ok := lookup(h.Key)
		if !ok {
			continue
		}
		printed++
		_, _ = fmt.Fprintf(r.out, "%s %s  %-8s %s\n",
			r.styles.Label.Render(fmt.Sprintf("%6.3f", h.Score)),
			r.styles.Glyph.Render(c.Character),
			r.styles.Pinyin.Render(c.Pinyin),
			strings.Join(c.Meaning, ", "))
	}
	if printed == 0 {
		_, _ = fmt.Fprintln(r.out, r.styles.Dim.Render(empty))
	}
}

func (r *CardRenderer) field(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "%s %s\n", r.styles.Label.Render(fmt.Sprintf("%-9s", label+":")), value)
}

func joinStrokes(strokes []model.StrokeType) string {
	parts := make([]string, len(strokes))
	for i, s := range strokes {
		parts[i] = string(s)
	}
	return strings.Join(parts, " → ")
}

package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
)

const strokeArrow = " → "

func joinComma(items []string) string { return strings.Join(items, ", ") }

func strokeLine(order []model.StrokeType) string {
	return strings.Join(model.StrokeLiterals(order), strokeArrow)
}

// orNA renders an unset numeric classification as N/A.
func orNA(n int) string {
	if n == 0 {
		return "N/A"
	}
	return strconv.Itoa(n)
}

func wikiLinks(keys []string, target func(string) string) string {
	links := make([]string, len(keys))
	for i, k := range keys {
		links[i] = "[[" + target(k) + "]]"
	}
	return joinComma(links)
}

func radicalLink(key string) string { return "radicals/" + key + "|" + key }

func plainLink(key string) string { return key }

// callout writes an Obsidian callout; every text line is quoted.
func callout(sb *strings.Builder, kind, title, text string) {
	fmt.Fprintf(sb, "> [!%s] %s\n", kind, title)
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(sb, "> %s\n", line)
	}
}

// flashcard writes a question callout with a nested answer.
func flashcard(sb *strings.Builder, question, answer string) {
	sb.WriteString("> [!question] Flashcard\n")
	fmt.Fprintf(sb, "> %s\n", question)
	sb.WriteString("> \n")
	sb.WriteString("> > [!success] Answer\n")
	fmt.Fprintf(sb, "> > %s\n", answer)
}

func radicalBody(r model.Radical, v Variant) (string, error) {
	obsidian := v == VariantObsidian
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s - %s\n\n", r.Character, r.Meaning)
	if obsidian {
		callout(&sb, "info", "Meaning", r.Meaning)
		sb.WriteString("\n")
	}

	sb.WriteString("## Overview\n")
	fmt.Fprintf(&sb, "- **Pinyin**: %s\n", r.Pinyin)
	fmt.Fprintf(&sb, "- **Type**: %s\n", r.Type)
	fmt.Fprintf(&sb, "- **Strokes**: %d\n\n", r.Strokes)

	sb.WriteString("## Mnemonic\n")
	if obsidian {
		callout(&sb, "hint", "Memory Aid", r.Mnemonic)
	} else {
		sb.WriteString(r.Mnemonic + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Common Characters\n")
	if obsidian {
		sb.WriteString(wikiLinks(r.CommonCharacters, plainLink) + "\n\n")
	} else {
		sb.WriteString(joinComma(r.CommonCharacters) + "\n\n")
	}

	sb.WriteString("## Stroke Order\n")
	sb.WriteString(strokeLine(r.StrokeOrder) + "\n")

	switch v {
	case VariantVSCode:
		snippet := radicalSnippet{
			Character: r.Character,
			Pinyin:    r.Pinyin,
			Meaning:   r.Meaning,
			Type:      string(r.Type),
			Strokes:   r.Strokes,
		}
		if err := writeSnippet(&sb, snippet, []string{r.Character, r.Pinyin, r.Meaning, r.Mnemonic}); err != nil {
			return "", err
		}
	case VariantObsidian:
		writePractice(&sb, r.Character)
		sb.WriteString("\n")
		flashcard(&sb, fmt.Sprintf("What is the meaning of %s?", r.Character), r.Meaning)
	}

	return sb.String(), nil
}

func characterBody(c model.Character, v Variant) (string, error) {
	obsidian := v == VariantObsidian
	meaning := joinComma(c.Meaning)
	pronunciation := fmt.Sprintf("%s (Tone %d)", c.Pinyin, c.Tone)
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s - %s\n\n", c.Character, meaning)
	if obsidian {
		callout(&sb, "info", "Meaning", meaning)
		sb.WriteString("\n")
	}

	sb.WriteString("## Overview\n")
	fmt.Fprintf(&sb, "- **Pinyin**: %s\n", pronunciation)
	if obsidian {
		fmt.Fprintf(&sb, "- **Radicals**: %s\n", wikiLinks(c.Radicals, radicalLink))
		fmt.Fprintf(&sb, "- **Components**: %s\n", wikiLinks(c.Components, plainLink))
	} else {
		fmt.Fprintf(&sb, "- **Radicals**: %s\n", joinComma(c.Radicals))
		fmt.Fprintf(&sb, "- **Components**: %s\n", joinComma(c.Components))
	}
	fmt.Fprintf(&sb, "- **Strokes**: %d\n", c.Strokes)
	fmt.Fprintf(&sb, "- **HSK Level**: %s\n", orNA(c.HSKLevel))
	fmt.Fprintf(&sb, "- **Frequency Rank**: %s\n\n", orNA(c.FrequencyRank))

	sb.WriteString("## Mnemonic\n")
	if obsidian {
		callout(&sb, "hint", "Memory Aid", c.Mnemonic)
	} else {
		sb.WriteString(c.Mnemonic + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Example Words\n")
	for _, w := range c.ExampleWords {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", w.Word, w.Pinyin, w.Meaning)
	}
	sb.WriteString("\n")

	sb.WriteString("## Stroke Order\n")
	sb.WriteString(strokeLine(c.StrokeOrder) + "\n")

	switch v {
	case VariantVSCode:
		snippet := characterSnippet{
			Character:     c.Character,
			Pinyin:        c.Pinyin,
			Tone:          c.Tone,
			Meaning:       c.Meaning,
			Radicals:      c.Radicals,
			Strokes:       c.Strokes,
			HSKLevel:      c.HSKLevel,
			FrequencyRank: c.FrequencyRank,
		}
		if err := writeSnippet(&sb, snippet, []string{c.Character, c.Pinyin, meaning, c.Mnemonic}); err != nil {
			return "", err
		}
	case VariantObsidian:
		writePractice(&sb, c.Character)
		sb.WriteString("\n")
		flashcard(&sb, fmt.Sprintf("What is the meaning of %s?", c.Character), meaning)
		sb.WriteString("\n")
		flashcard(&sb, fmt.Sprintf("How do you pronounce %s?", c.Character), pronunciation)
	}

	return sb.String(), nil
}

type radicalSnippet struct {
	Character string `json:"character"`
	Pinyin    string `json:"pinyin"`
	Meaning   string `json:"meaning"`
	Type      string `json:"type"`
	Strokes   int    `json:"strokes"`
}

type characterSnippet struct {
	Character     string   `json:"character"`
	Pinyin        string   `json:"pinyin"`
	Tone          int      `json:"tone"`
	Meaning       []string `json:"meaning"`
	Radicals      []string `json:"radicals"`
	Strokes       int      `json:"strokes"`
	HSKLevel      int      `json:"hsk_level"`
	FrequencyRank int      `json:"frequency_rank"`
}

// writeSnippet appends the machine-readable metadata block and the
// tab-joined Anki line.
func writeSnippet(sb *strings.Builder, snippet any, ankiFields []string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snippet); err != nil {
		return herrors.InternalError("encode metadata snippet", err)
	}

	sb.WriteString("\n## Code Snippet\n")
	sb.WriteString("```json\n")
	sb.Write(buf.Bytes())
	sb.WriteString("```\n")

	sb.WriteString("\n## Anki Export\n")
	sb.WriteString("```text\n")
	sb.WriteString(strings.Join(ankiFields, "\t") + "\n")
	sb.WriteString("```\n")
	return nil
}

func writePractice(sb *strings.Builder, key string) {
	sb.WriteString("\n## Practice\n")
	fmt.Fprintf(sb, "![[%s_stroke_order.gif]]\n", key)
}

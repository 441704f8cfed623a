package record

import "fmt"

// Variant selects the body markup of an encoded record. Every variant shares
// the same frontmatter block.
type Variant int

const (
	// VariantPlain is headings, key facts and comma-joined lists.
	VariantPlain Variant = iota
	// VariantVSCode is the plain body plus a JSON snippet and an Anki line.
	VariantVSCode
	// VariantObsidian uses wiki links, callouts and flashcard quizzes.
	VariantObsidian
)

// Variants returns every variant in persistence order.
func Variants() []Variant {
	return []Variant{VariantPlain, VariantVSCode, VariantObsidian}
}

func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantVSCode:
		return "vscode"
	case VariantObsidian:
		return "obsidian"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// Document is one encoded record ready to be written to disk.
type Document struct {
	Variant Variant
	Body    string
}

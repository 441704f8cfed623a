package fulltext

import (
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/registry"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// HanziTokenizerName splits Han text into single graphemes and Latin
	// text into words.
	HanziTokenizerName = "hanzi_tokenizer"

	// ToneFoldFilterName strips tone marks so "lin" matches "lín".
	ToneFoldFilterName = "tone_fold"

	// HanziAnalyzerName is the analyzer used for every field.
	HanziAnalyzerName = "hanzi_analyzer"
)

func init() {
	_ = registry.RegisterTokenizer(HanziTokenizerName, hanziTokenizerConstructor)
	_ = registry.RegisterTokenFilter(ToneFoldFilterName, toneFoldFilterConstructor)
}

func hanziTokenizerConstructor(config map[string]interface{}, cache *registry.Cache) (analysis.Tokenizer, error) {
	return &hanziTokenizer{}, nil
}

// hanziTokenizer emits one token per Han rune and one per run of letters,
// digits and combining marks.
type hanziTokenizer struct{}

// Tokenize implements analysis.Tokenizer.
func (t *hanziTokenizer) Tokenize(input []byte) analysis.TokenStream {
	result := make(analysis.TokenStream, 0)
	pos := 1
	wordStart := -1

	emit := func(start, end int, typ analysis.TokenType) {
		result = append(result, &analysis.Token{
			Term:     input[start:end],
			Start:    start,
			End:      end,
			Position: pos,
			Type:     typ,
		})
		pos++
	}
	flush := func(end int) {
		if wordStart >= 0 {
			emit(wordStart, end, analysis.AlphaNumeric)
			wordStart = -1
		}
	}

	for i := 0; i < len(input); {
		r, size := utf8.DecodeRune(input[i:])
		switch {
		case unicode.Is(unicode.Han, r):
			flush(i)
			emit(i, i+size, analysis.Ideographic)
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.Is(unicode.Mn, r):
			if wordStart < 0 {
				wordStart = i
			}
		default:
			flush(i)
		}
		i += size
	}
	flush(len(input))

	return result
}

func toneFoldFilterConstructor(config map[string]interface{}, cache *registry.Cache) (analysis.TokenFilter, error) {
	return &toneFoldFilter{}, nil
}

// toneFoldFilter removes combining marks after canonical decomposition.
type toneFoldFilter struct{}

// Filter implements analysis.TokenFilter.
func (f *toneFoldFilter) Filter(input analysis.TokenStream) analysis.TokenStream {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	for _, token := range input {
		if token.Type == analysis.Ideographic {
			continue
		}
		folded, _, err := transform.Bytes(fold, token.Term)
		if err == nil {
			token.Term = folded
		}
		fold.Reset()
	}
	return input
}

// FoldTones applies the same folding used at index time.
func FoldTones(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		return s
	}
	return folded
}

package record

import (
	"github.com/Aman-CERP/hanzi/internal/model"
)

// DecodeRadical parses a radical record. Missing fields take their zero
// value and a missing type becomes unknown. A missing or unparsable
// frontmatter block yields ErrMalformedRecord; an unrecognized type or
// stroke literal yields ErrInvalidEnum.
func DecodeRadical(text string) (model.Radical, error) {
	payload, _, err := splitFrontmatter(text)
	if err != nil {
		return model.Radical{}, err
	}

	var h radicalHeader
	if err := unmarshalHeader(payload, &h); err != nil {
		return model.Radical{}, err
	}
	return h.toModel()
}

// DecodeCharacter parses a character record with the same rules as
// DecodeRadical.
func DecodeCharacter(text string) (model.Character, error) {
	payload, _, err := splitFrontmatter(text)
	if err != nil {
		return model.Character{}, err
	}

	var h characterHeader
	if err := unmarshalHeader(payload, &h); err != nil {
		return model.Character{}, err
	}
	return h.toModel()
}

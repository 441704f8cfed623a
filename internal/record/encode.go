package record

import (
	"fmt"

	"github.com/Aman-CERP/hanzi/internal/model"
)

// EncodeRadical renders a radical as a complete record in the given variant.
func EncodeRadical(r model.Radical, v Variant) (string, error) {
	header, err := marshalHeader(newRadicalHeader(r))
	if err != nil {
		return "", err
	}
	body, err := radicalBody(r, v)
	if err != nil {
		return "", err
	}
	return header + "\n" + body, nil
}

// EncodeCharacter renders a character as a complete record in the given
// variant.
func EncodeCharacter(c model.Character, v Variant) (string, error) {
	header, err := marshalHeader(newCharacterHeader(c))
	if err != nil {
		return "", err
	}
	body, err := characterBody(c, v)
	if err != nil {
		return "", err
	}
	return header + "\n" + body, nil
}

// RenderRadical encodes every variant of a radical.
func RenderRadical(r model.Radical) ([]Document, error) {
	return render(func(v Variant) (string, error) { return EncodeRadical(r, v) })
}

// RenderCharacter encodes every variant of a character.
func RenderCharacter(c model.Character) ([]Document, error) {
	return render(func(v Variant) (string, error) { return EncodeCharacter(c, v) })
}

func render(encode func(Variant) (string, error)) ([]Document, error) {
	variants := Variants()
	docs := make([]Document, 0, len(variants))
	for _, v := range variants {
		body, err := encode(v)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", v, err)
		}
		docs = append(docs, Document{Variant: v, Body: body})
	}
	return docs, nil
}

package record

import (
	"github.com/Aman-CERP/hanzi/internal/model"
)

// radicalHeader is the frontmatter layout of a radical record. Field order is
// the order written to disk.
type radicalHeader struct {
	Character        string   `yaml:"character"`
	Pinyin           string   `yaml:"pinyin"`
	Meaning          string   `yaml:"meaning"`
	Type             string   `yaml:"type"`
	Strokes          int      `yaml:"strokes"`
	Mnemonic         string   `yaml:"mnemonic"`
	StrokeOrder      []string `yaml:"stroke_order,omitempty"`
	CommonCharacters []string `yaml:"common_characters,omitempty"`
}

// characterHeader is the frontmatter layout of a character record.
type characterHeader struct {
	Character     string              `yaml:"character"`
	Pinyin        string              `yaml:"pinyin"`
	Tone          int                 `yaml:"tone"`
	Meaning       []string            `yaml:"meaning"`
	Radicals      []string            `yaml:"radicals"`
	Strokes       int                 `yaml:"strokes"`
	Mnemonic      string              `yaml:"mnemonic"`
	StrokeOrder   []string            `yaml:"stroke_order,omitempty"`
	Components    []string            `yaml:"components,omitempty"`
	ExampleWords  []model.ExampleWord `yaml:"example_words,omitempty"`
	Tags          []string            `yaml:"tags,omitempty"`
	HSKLevel      int                 `yaml:"hsk_level,omitempty"`
	FrequencyRank int                 `yaml:"frequency_rank,omitempty"`
}

func newRadicalHeader(r model.Radical) radicalHeader {
	t := r.Type
	if t == "" {
		t = model.RadicalUnknown
	}
	return radicalHeader{
		Character:        r.Character,
		Pinyin:           r.Pinyin,
		Meaning:          r.Meaning,
		Type:             string(t),
		Strokes:          r.Strokes,
		Mnemonic:         r.Mnemonic,
		StrokeOrder:      model.StrokeLiterals(r.StrokeOrder),
		CommonCharacters: r.CommonCharacters,
	}
}

func (h radicalHeader) toModel() (model.Radical, error) {
	rt, err := model.ParseRadicalType(h.Type)
	if err != nil {
		return model.Radical{}, err
	}
	order, err := model.ParseStrokeOrder(h.StrokeOrder)
	if err != nil {
		return model.Radical{}, err
	}

	r := model.Radical{
		Character:        h.Character,
		Pinyin:           h.Pinyin,
		Meaning:          h.Meaning,
		Type:             rt,
		Strokes:          h.Strokes,
		StrokeOrder:      order,
		CommonCharacters: h.CommonCharacters,
		Mnemonic:         h.Mnemonic,
	}
	r.Normalize()
	return r, nil
}

func newCharacterHeader(c model.Character) characterHeader {
	meaning := c.Meaning
	if meaning == nil {
		meaning = []string{}
	}
	radicals := c.Radicals
	if radicals == nil {
		radicals = []string{}
	}
	return characterHeader{
		Character:     c.Character,
		Pinyin:        c.Pinyin,
		Tone:          c.Tone,
		Meaning:       meaning,
		Radicals:      radicals,
		Strokes:       c.Strokes,
		Mnemonic:      c.Mnemonic,
		StrokeOrder:   model.StrokeLiterals(c.StrokeOrder),
		Components:    c.Components,
		ExampleWords:  c.ExampleWords,
		Tags:          c.Tags,
		HSKLevel:      c.HSKLevel,
		FrequencyRank: c.FrequencyRank,
	}
}

func (h characterHeader) toModel() (model.Character, error) {
	order, err := model.ParseStrokeOrder(h.StrokeOrder)
	if err != nil {
		return model.Character{}, err
	}

	c := model.Character{
		Character:     h.Character,
		Pinyin:        h.Pinyin,
		Tone:          h.Tone,
		Meaning:       h.Meaning,
		Radicals:      h.Radicals,
		Strokes:       h.Strokes,
		StrokeOrder:   order,
		Components:    h.Components,
		HSKLevel:      h.HSKLevel,
		FrequencyRank: h.FrequencyRank,
		Mnemonic:      h.Mnemonic,
		ExampleWords:  h.ExampleWords,
		Tags:          h.Tags,
	}
	c.Normalize()
	return c, nil
}

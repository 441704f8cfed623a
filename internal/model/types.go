// Package model defines the radical and character records kept by the
// knowledge base.
package model

// Radical is a recurring component of Chinese characters, cataloged with its
// own metadata. Character is the unique key within a store.
type Radical struct {
	Character   string       `json:"character"`
	Pinyin      string       `json:"pinyin"`
	Meaning     string       `json:"meaning"`
	Type        RadicalType  `json:"type"`
	Strokes     int          `json:"strokes"`
	StrokeOrder []StrokeType `json:"stroke_order"`
	// CommonCharacters is informational only. The store's inverted index is
	// the authoritative radical-to-character relation and the two may drift.
	CommonCharacters []string `json:"common_characters"`
	Mnemonic         string   `json:"mnemonic"`
}

// ExampleWord is a word that uses a character.
type ExampleWord struct {
	Word    string `yaml:"word" json:"word"`
	Pinyin  string `yaml:"pinyin" json:"pinyin"`
	Meaning string `yaml:"meaning" json:"meaning"`
}

// Character is a single grapheme record. Character is the unique key within a
// store.
type Character struct {
	Character string   `json:"character"`
	Pinyin    string   `json:"pinyin"`
	Tone      int      `json:"tone"` // 1-5, 0 when unset
	Meaning   []string `json:"meaning"`
	// Radicals lists radical keys. They are expected, not guaranteed, to exist
	// in the radical collection.
	Radicals    []string     `json:"radicals"`
	Strokes     int          `json:"strokes"`
	StrokeOrder []StrokeType `json:"stroke_order"`
	// Components may reference the character itself or form cycles.
	Components    []string      `json:"components"`
	HSKLevel      int           `json:"hsk_level"`      // 0 = unclassified
	FrequencyRank int           `json:"frequency_rank"` // 0 = unknown
	Mnemonic      string        `json:"mnemonic"`
	ExampleWords  []ExampleWord `json:"example_words"`
	Tags          []string      `json:"tags"`
}

// Normalize replaces nil sequences with empty ones.
func (r *Radical) Normalize() {
	if r.Type == "" {
		r.Type = RadicalUnknown
	}
	if r.StrokeOrder == nil {
		r.StrokeOrder = []StrokeType{}
	}
	if r.CommonCharacters == nil {
		r.CommonCharacters = []string{}
	}
}

// Normalize replaces nil sequences with empty ones.
func (c *Character) Normalize() {
	if c.Meaning == nil {
		c.Meaning = []string{}
	}
	if c.Radicals == nil {
		c.Radicals = []string{}
	}
	if c.StrokeOrder == nil {
		c.StrokeOrder = []StrokeType{}
	}
	if c.Components == nil {
		c.Components = []string{}
	}
	if c.ExampleWords == nil {
		c.ExampleWords = []ExampleWord{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
}

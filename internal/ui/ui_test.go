package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/hanzi/internal/fulltext"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/store"
)

func TestIsTTY_NonFile(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsTTY(nil))
	assert.False(t, ColorEnabled(&bytes.Buffer{}))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.True(t, DetectCI())
}

func sampleCharacter() model.Character {
	c := model.Character{
		Character:     "林",
		Pinyin:        "lín",
		Tone:          2,
		Meaning:       []string{"woods", "forest"},
		Radicals:      []string{"木", "木"},
		Strokes:       8,
		StrokeOrder:   []model.StrokeType{model.StrokeHorizontal, model.StrokeVertical},
		HSKLevel:      4,
		Mnemonic:      "two trees",
		ExampleWords:  []model.ExampleWord{{Word: "树林", Pinyin: "shùlín", Meaning: "woods"}},
		Tags:          []string{"nature"},
		FrequencyRank: 0,
	}
	c.Normalize()
	return c
}

func TestCardRenderer_Character(t *testing.T) {
	// Given: a populated character
	var buf bytes.Buffer
	r := NewCardRenderer(&buf, true)

	// When: rendering its card
	r.Character(sampleCharacter())

	// Then: every populated field appears, unset ones do not
	out := buf.String()
	assert.Contains(t, out, "林  lín (tone 2)")
	assert.Contains(t, out, "woods, forest")
	assert.Contains(t, out, "木 木")
	assert.Contains(t, out, "横 → 竖")
	assert.Contains(t, out, "树林 (shùlín) woods")
	assert.Contains(t, out, "HSK:")
	assert.NotContains(t, out, "Frequency")
}

func TestCardRenderer_Radical(t *testing.T) {
	var buf bytes.Buffer
	r := NewCardRenderer(&buf, true)

	r.Radical(model.Radical{
		Character: "木", Pinyin: "mù", Meaning: "wood",
		Type: model.RadicalSemantic, Strokes: 4,
		CommonCharacters: []string{"林", "森"},
	})

	out := buf.String()
	assert.Contains(t, out, "木  mù  radical")
	assert.Contains(t, out, "semantic")
	assert.Contains(t, out, "林 森")
}

func TestCardRenderer_CharacterListEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewCardRenderer(&buf, true).CharacterList(nil, "no characters")

	assert.Equal(t, "no characters\n", buf.String())
}

func TestCardRenderer_HitsSkipsUnknownKeys(t *testing.T) {
	var buf bytes.Buffer
	c := sampleCharacter()
	lookup := func(k string) (model.Character, bool) {
		if k == c.Character {
			return c, true
		}
		return model.Character{}, false
	}

	NewCardRenderer(&buf, true).Hits([]fulltext.Hit{{Key: "林", Score: 1.5}, {Key: "gone", Score: 1}}, lookup, "none")

	assert.Contains(t, buf.String(), " 1.500 林")
	assert.NotContains(t, buf.String(), "gone")
	assert.NotContains(t, buf.String(), "none")
}

func TestStatsRenderer_Render(t *testing.T) {
	// Given: stats with histograms and top radicals
	st := store.Stats{
		TotalCharacters: 3,
		TotalRadicals:   2,
		ByHSKLevel:      map[int]int{0: 1, 4: 2},
		ByStrokeCount:   map[int]int{8: 2, 4: 1},
		TopRadicals:     []store.RadicalCount{{Radical: "木", Count: 2}},
	}
	var buf bytes.Buffer

	// When: rendering as text
	err := NewStatsRenderer(&buf, true).Render(st)

	// Then: totals, buckets in key order and radicals are listed
	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Characters: 3")
	assert.Contains(t, out, "Radicals:   2")
	assert.Contains(t, out, "none")
	assert.Contains(t, out, "HSK 4")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("    4 ")), bytes.Index(buf.Bytes(), []byte("    8 ")))
	assert.Contains(t, out, "木 2")
}

func TestStatsRenderer_RenderJSON(t *testing.T) {
	var buf bytes.Buffer
	err := NewStatsRenderer(&buf, true).RenderJSON(store.Stats{
		TotalCharacters: 1,
		ByHSKLevel:      map[int]int{1: 1},
		TopRadicals:     []store.RadicalCount{{Radical: "木", Count: 1}},
	})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"total_characters": 1`)
	assert.Contains(t, buf.String(), `"radical": "木"`)
	assert.Contains(t, buf.String(), `"characters_by_hsk_level": {`)
}

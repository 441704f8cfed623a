package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/store"
)

// recordingAdder captures adds and can fail on demand.
type recordingAdder struct {
	radicals   []model.Radical
	characters []model.Character
	seen       map[string]bool
	failOn     string
}

func (a *recordingAdder) add(key string) error {
	if a.seen == nil {
		a.seen = make(map[string]bool)
	}
	if key == a.failOn {
		return herrors.IOError("disk full", nil)
	}
	if a.seen[key] {
		return herrors.DuplicateKey("record", key)
	}
	a.seen[key] = true
	return nil
}

func (a *recordingAdder) AddRadical(r model.Radical) error {
	if err := a.add(r.Character); err != nil {
		return err
	}
	a.radicals = append(a.radicals, r)
	return nil
}

func (a *recordingAdder) AddCharacter(c model.Character) error {
	if err := a.add(c.Character); err != nil {
		return err
	}
	a.characters = append(a.characters, c)
	return nil
}

func readRows(t *testing.T, text string) []Row {
	t.Helper()
	rows, err := ReadCSV(strings.NewReader(text))
	require.NoError(t, err)
	return rows
}

const waterRiverCSV = `is_radical,character,pinyin,meaning,radicals,strokes,type,stroke_order,tone,hsk_level,frequency_rank,tags
true,水,shuǐ,water,,4,semantic,"竖,钩,撇,捺",,,,
false,河,hé,"river, stream",水,8,,,2,3,x12,"geography, nature"
`

func TestScenario_ImportWaterAndRiver(t *testing.T) {
	// Given: an empty store and a two-row table
	base := t.TempDir()
	st, err := store.Open(context.Background(), store.Layout{
		Root:     filepath.Join(base, "data"),
		VSCode:   filepath.Join(base, "vscode"),
		Obsidian: filepath.Join(base, "obsidian"),
	})
	require.NoError(t, err)

	// When: importing it
	n, err := Import(context.Background(), st, readRows(t, waterRiverCSV))

	// Then: one radical, one character, and 水 indexes 河
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, st.RadicalCount())
	assert.Equal(t, 1, st.CharacterCount())
	got := st.CharactersByRadical("水")
	require.Len(t, got, 1)
	assert.Equal(t, "河", got[0].Character)
}

func TestImport_BuildsValuesFromCells(t *testing.T) {
	a := &recordingAdder{}

	_, err := Import(context.Background(), a, readRows(t, waterRiverCSV))
	require.NoError(t, err)

	require.Len(t, a.radicals, 1)
	r := a.radicals[0]
	assert.Equal(t, model.RadicalSemantic, r.Type)
	assert.Equal(t, 4, r.Strokes)
	assert.Equal(t, []model.StrokeType{model.StrokeVertical, model.StrokeHook, model.StrokeLeftDiagonal, model.StrokeRightDiagonal}, r.StrokeOrder)

	require.Len(t, a.characters, 1)
	c := a.characters[0]
	assert.Equal(t, []string{"river", "stream"}, c.Meaning)
	assert.Equal(t, []string{"水"}, c.Radicals)
	assert.Equal(t, 2, c.Tone)
	assert.Equal(t, 3, c.HSKLevel)
	// Non-digit frequency rank falls back to unset.
	assert.Equal(t, 0, c.FrequencyRank)
	assert.Equal(t, []string{"geography", "nature"}, c.Tags)
	assert.Equal(t, []string{}, c.Components)
}

func TestImport_BadStrokesFailsWithoutMutation(t *testing.T) {
	// Given: a valid first row and a bad numeric cell on the second
	rows := readRows(t, "is_radical,character,strokes\nfalse,人,2\nfalse,大,three\n")
	a := &recordingAdder{}

	// When: importing
	n, err := Import(context.Background(), a, rows)

	// Then: nothing was added and the line is reported
	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 0, n)
	assert.Empty(t, a.characters)
}

func TestImport_BadToneFails(t *testing.T) {
	rows := readRows(t, "is_radical,character,tone\nfalse,人,second\n")

	_, err := Import(context.Background(), &recordingAdder{}, rows)

	assert.True(t, errors.Is(err, herrors.ErrInvalidInput))
}

func TestImport_UnknownTypeSurfaces(t *testing.T) {
	rows := readRows(t, "is_radical,character,type\nTRUE,口,pictographic\n")
	a := &recordingAdder{}

	_, err := Import(context.Background(), a, rows)

	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrInvalidEnum))
	assert.Empty(t, a.radicals)
}

func TestImport_UnknownStrokeSurfaces(t *testing.T) {
	rows := readRows(t, "is_radical,character,stroke_order\nfalse,口,\"竖,squiggle\"\n")

	_, err := Import(context.Background(), &recordingAdder{}, rows)

	assert.True(t, errors.Is(err, herrors.ErrInvalidEnum))
}

func TestImport_DuplicatesCountedAsProcessed(t *testing.T) {
	rows := readRows(t, "is_radical,character\nfalse,人\nfalse,人\ntrue,口\n")
	a := &recordingAdder{}

	n, err := Import(context.Background(), a, rows)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, a.characters, 1)
}

func TestImport_WriteFailureStops(t *testing.T) {
	rows := readRows(t, "is_radical,character\nfalse,人\nfalse,大\nfalse,小\n")
	a := &recordingAdder{failOn: "大"}

	n, err := Import(context.Background(), a, rows)

	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrIOFailure))
	assert.Equal(t, 1, n)
	assert.Len(t, a.characters, 1)
}

func TestIsRadicalFlag(t *testing.T) {
	for flag, want := range map[string]bool{"true": true, "True": true, "TRUE": true, "yes": false, "1": false, "": false} {
		t.Run(flag, func(t *testing.T) {
			e, err := parseRow(Row{"is_radical": flag, "character": "口"}, 2)
			require.NoError(t, err)
			assert.Equal(t, want, e.radical != nil)
		})
	}
}

func TestDigitsOrZero(t *testing.T) {
	assert.Equal(t, 6, digitsOrZero("6"))
	assert.Equal(t, 0, digitsOrZero(""))
	assert.Equal(t, 0, digitsOrZero("-1"))
	assert.Equal(t, 0, digitsOrZero(" 3"))
	assert.Equal(t, 0, digitsOrZero("3.5"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b ,"))
}

func TestReadCSV_EmptyAndBOM(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows = readRows(t, "\ufeffcharacter,pinyin\n人,rén\n")
	require.Len(t, rows, 1)
	assert.Equal(t, "人", rows[0]["character"])
}

func TestImportFile_MissingFile(t *testing.T) {
	_, err := ImportFile(context.Background(), &recordingAdder{}, filepath.Join(t.TempDir(), "none.csv"))

	assert.True(t, errors.Is(err, herrors.ErrIOFailure))
}

func TestImportFile_ReadsDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte(waterRiverCSV), 0o644))
	a := &recordingAdder{}

	n, err := ImportFile(context.Background(), a, path)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

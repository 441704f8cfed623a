package pinyin

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChart = "memory_palace_groups,∅,b,p,AEOIU\n" +
	"a-group, a ,ba,pa,Alice\n" +
	"\n" +
	"o-group,,bo,po,,extra\n"

func TestReadChart_BlankCellsAndOverflow(t *testing.T) {
	// Given: a chart with a blank line, blank cells and an extra column
	// When: reading it
	rows, err := ReadChart(strings.NewReader(sampleChart))

	// Then: the blank line is skipped, cells are trimmed, blanks are nil
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, ok := rows[0].Get("∅")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = rows[1].Get("∅")
	assert.False(t, ok)
	_, ok = rows[1].Get("AEOIU")
	assert.False(t, ok)

	v, ok = rows[1].Get("col_5")
	assert.True(t, ok)
	assert.Equal(t, "extra", v)
}

func TestReadChart_EmptyInput(t *testing.T) {
	rows, err := ReadChart(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadChart_HeaderOnly(t *testing.T) {
	rows, err := ReadChart(strings.NewReader("a,b\n"))

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestRow_MarshalJSONKeepsOrderAndNulls(t *testing.T) {
	rows, err := ReadChart(strings.NewReader("z,a\n中, \n"))
	require.NoError(t, err)

	data, err := json.Marshal(rows[0])

	require.NoError(t, err)
	assert.Equal(t, `{"z":"中","a":null}`, string(data))
}

func TestSaveJSON_CreatesParentsAndKeepsUnicode(t *testing.T) {
	// Given: parsed rows and a nested output path
	rows, err := ReadChart(strings.NewReader(sampleChart))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "data", "out", "output.json")

	// When: saving
	require.NoError(t, SaveJSON(rows, path))

	// Then: the file is an indented array with raw non-ASCII text
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"∅": "a"`)
	assert.Contains(t, string(data), `"AEOIU": null`)

	var decoded []map[string]*string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
}

func TestLoadChart_MissingFile(t *testing.T) {
	_, err := LoadChart(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestDB_InsertRows(t *testing.T) {
	// Given: a fresh database
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "pinyin.db")
	db, err := OpenDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := ReadChart(strings.NewReader(sampleChart))
	require.NoError(t, err)

	// When: inserting the chart
	n, err := db.InsertRows(ctx, rows)

	// Then: every row is stored and blank columns are NULL
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var actor sql.NullString
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT actor FROM pinyin WHERE group_key = ?`, "o-group").Scan(&actor))
	assert.False(t, actor.Valid)
}

func TestDB_ReopenAppends(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pinyin.db")
	rows, err := ReadChart(strings.NewReader(sampleChart))
	require.NoError(t, err)

	for range 2 {
		db, err := OpenDB(ctx, path)
		require.NoError(t, err)
		_, err = db.InsertRows(ctx, rows)
		require.NoError(t, err)
		require.NoError(t, db.Close())
	}

	db, err := OpenDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()
	count, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

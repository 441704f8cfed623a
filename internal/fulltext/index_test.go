package fulltext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/hanzi/internal/model"
)

func sampleCharacters() []model.Character {
	return []model.Character{
		{Character: "林", Pinyin: "lín", Meaning: []string{"woods", "forest"}, Tags: []string{"nature"}},
		{Character: "森", Pinyin: "sēn", Meaning: []string{"forest", "dense"}, Mnemonic: "three trees make a dense forest"},
		{Character: "河", Pinyin: "hé", Meaning: []string{"river"},
			ExampleWords: []model.ExampleWord{{Word: "河流", Pinyin: "héliú", Meaning: "stream"}}},
	}
}

func hitKeys(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Key
	}
	return out
}

func buildIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Build(context.Background(), sampleCharacters())
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestBuild_IndexesEveryCharacter(t *testing.T) {
	idx := buildIndex(t)

	assert.Equal(t, 3, idx.Count())
}

func TestSearch_ByGrapheme(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "林", 10)

	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "林", hits[0].Key)
}

func TestSearch_PinyinIgnoresTones(t *testing.T) {
	idx := buildIndex(t)

	for _, q := range []string{"lin", "lín", "LÍN"} {
		t.Run(q, func(t *testing.T) {
			hits, err := idx.Search(context.Background(), q, 10)
			require.NoError(t, err)
			assert.Equal(t, []string{"林"}, hitKeys(hits))
		})
	}
}

func TestSearch_RanksMeaningMatches(t *testing.T) {
	// Given: two characters meaning forest, one also mentioning it in its mnemonic
	idx := buildIndex(t)

	// When: searching for forest
	hits, err := idx.Search(context.Background(), "forest", 10)

	// Then: both are found and scores descend
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"林", "森"}, hitKeys(hits))
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearch_ExampleWords(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "stream", 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"河"}, hitKeys(hits))
}

func TestSearch_BlankQuery(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "   ", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_Limit(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "forest", 1)

	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestClose_Idempotent(t *testing.T) {
	idx, err := New()
	require.NoError(t, err)

	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close())
	_, err = idx.Search(context.Background(), "x", 1)
	assert.Error(t, err)
	assert.Equal(t, 0, idx.Count())
}

func TestHanziTokenizer(t *testing.T) {
	tokens := (&hanziTokenizer{}).Tokenize([]byte("森林 forest, lín2"))

	terms := make([]string, len(tokens))
	for i, tok := range tokens {
		terms[i] = string(tok.Term)
	}
	assert.Equal(t, []string{"森", "林", "forest", "lín2"}, terms)
}

func TestFoldTones(t *testing.T) {
	assert.Equal(t, "shui", FoldTones("shuǐ"))
	assert.Equal(t, "lu", FoldTones("lǜ"))
	assert.Equal(t, "林", FoldTones("林"))
}

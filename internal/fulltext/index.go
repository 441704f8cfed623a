// Package fulltext is a ranked, in-memory search index over characters.
package fulltext

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
)

// DefaultLimit is the number of hits returned when no limit is given.
const DefaultLimit = 10

// fieldBoosts weights matches per field.
var fieldBoosts = []struct {
	field string
	boost float64
}{
	{"character", 4},
	{"pinyin", 3},
	{"meaning", 3},
	{"tags", 2},
	{"words", 1.5},
	{"mnemonic", 1},
}

// Index wraps an in-memory bleve index.
type Index struct {
	mu     sync.RWMutex
	index  bleve.Index
	closed bool
}

// Hit is one ranked result.
type Hit struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// characterDocument is the indexed form of a character.
type characterDocument struct {
	Character string `json:"character"`
	Pinyin    string `json:"pinyin"`
	Meaning   string `json:"meaning"`
	Tags      string `json:"tags"`
	Mnemonic  string `json:"mnemonic"`
	Words     string `json:"words"`
}

func newCharacterDocument(c model.Character) characterDocument {
	words := make([]string, 0, len(c.ExampleWords)*3)
	for _, w := range c.ExampleWords {
		words = append(words, w.Word, w.Pinyin, w.Meaning)
	}
	return characterDocument{
		Character: c.Character,
		Pinyin:    c.Pinyin,
		Meaning:   strings.Join(c.Meaning, " "),
		Tags:      strings.Join(c.Tags, " "),
		Mnemonic:  c.Mnemonic,
		Words:     strings.Join(words, " "),
	}
}

// New creates an empty in-memory index.
func New() (*Index, error) {
	indexMapping, err := createIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("failed to create index mapping: %w", err)
	}

	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &Index{index: idx}, nil
}

// Build creates an index holding chars.
func Build(ctx context.Context, chars []model.Character) (*Index, error) {
	idx, err := New()
	if err != nil {
		return nil, err
	}
	if err := idx.Index(ctx, chars); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return idx, nil
}

func createIndexMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(HanziAnalyzerName, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": HanziTokenizerName,
		"token_filters": []string{
			lowercase.Name,
			ToneFoldFilterName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add custom analyzer: %w", err)
	}

	indexMapping.DefaultAnalyzer = HanziAnalyzerName
	return indexMapping, nil
}

// Index adds or replaces characters, keyed by grapheme.
func (i *Index) Index(ctx context.Context, chars []model.Character) error {
	if len(chars) == 0 {
		return nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return herrors.InternalError("index is closed", nil)
	}

	start := time.Now()
	batch := i.index.NewBatch()
	for _, c := range chars {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := batch.Index(c.Character, newCharacterDocument(c)); err != nil {
			return fmt.Errorf("failed to index character %s: %w", c.Character, err)
		}
	}
	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %w", err)
	}

	slog.Debug("fulltext_indexed",
		slog.Int("characters", len(chars)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Search returns up to limit characters ranked by relevance. A blank query
// returns no hits.
func (i *Index) Search(ctx context.Context, q string, limit int) ([]Hit, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.closed {
		return nil, herrors.InternalError("index is closed", nil)
	}
	if strings.TrimSpace(q) == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	disjuncts := make([]query.Query, 0, len(fieldBoosts))
	for _, fb := range fieldBoosts {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(fb.field)
		mq.SetBoost(fb.boost)
		disjuncts = append(disjuncts, mq)
	}

	req := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(disjuncts...))
	req.Size = limit

	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, herrors.New(herrors.ErrCodeSearchFailed, "full-text search failed", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, Hit{Key: h.ID, Score: h.Score})
	}
	return hits, nil
}

// Count returns the number of indexed characters.
func (i *Index) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.closed {
		return 0
	}
	n, _ := i.index.DocCount()
	return int(n)
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	return i.index.Close()
}

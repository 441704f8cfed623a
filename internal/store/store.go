// Package store keeps the radical and character collections, the derived
// radical-to-character index, and the three document roots they persist to.
//
// A Store is single-threaded: callers serialize access.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/record"
)

// DefaultCacheSize is the number of decoded records kept between loads.
const DefaultCacheSize = 4096

// Store is the in-memory knowledge base backed by record files.
type Store struct {
	layout Layout

	radicals       map[string]model.Radical
	radicalOrder   []string
	characters     map[string]model.Character
	characterOrder []string

	// index maps a radical key to the set of character keys listing it.
	// Derived from characters; rebuilt on load, extended on insert.
	index map[string]map[string]struct{}

	cache   *lru.Cache[string, cachedRecord]
	workers int

	lastLoad LoadReport
}

// Option configures a Store.
type Option func(*options)

type options struct {
	cacheSize int
	workers   int
}

// WithCacheSize sets the decoded-record cache capacity.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// WithDecodeWorkers bounds the number of files decoded in parallel.
func WithDecodeWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Open creates the document roots if needed and loads the plain root.
func Open(ctx context.Context, layout Layout, opts ...Option) (*Store, error) {
	o := options{cacheSize: DefaultCacheSize, workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := layout.Ensure(); err != nil {
		return nil, err
	}

	cache, err := lru.New[string, cachedRecord](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create record cache: %w", err)
	}

	s := &Store{
		layout:  layout,
		cache:   cache,
		workers: o.workers,
	}
	s.reset()

	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Layout returns the document roots.
func (s *Store) Layout() Layout { return s.layout }

// LastLoad returns the report of the most recent Load.
func (s *Store) LastLoad() LoadReport { return s.lastLoad }

func (s *Store) reset() {
	s.radicals = make(map[string]model.Radical)
	s.radicalOrder = nil
	s.characters = make(map[string]model.Character)
	s.characterOrder = nil
	s.index = make(map[string]map[string]struct{})
}

// validateKey rejects keys that cannot name a record file.
func validateKey(kind, key string) error {
	if key == "" {
		return herrors.ValidationError(kind+" key is empty", nil)
	}
	if key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return herrors.ValidationError(fmt.Sprintf("%s key %q cannot be used as a file name", kind, key), nil)
	}
	return nil
}

// AddRadical inserts a radical and writes every variant. It returns
// ErrDuplicateKey, without changing anything, when the key is already
// stored. A write failure returns ErrIOFailure; the radical stays in memory.
func (s *Store) AddRadical(r model.Radical) error {
	if err := validateKey("radical", r.Character); err != nil {
		return err
	}
	if _, ok := s.radicals[r.Character]; ok {
		return herrors.DuplicateKey("radical", r.Character)
	}

	r.Normalize()
	docs, err := record.RenderRadical(r)
	if err != nil {
		return err
	}

	s.putRadical(r)
	if err := s.persist(KindRadical, r.Character, docs); err != nil {
		return err
	}

	slog.Debug("radical_added", slog.String("key", r.Character))
	return nil
}

// AddCharacter inserts a character, extends the index for each of its
// radicals, and writes every variant. Failure semantics match AddRadical.
func (s *Store) AddCharacter(c model.Character) error {
	if err := validateKey("character", c.Character); err != nil {
		return err
	}
	if _, ok := s.characters[c.Character]; ok {
		return herrors.DuplicateKey("character", c.Character)
	}

	c.Normalize()
	docs, err := record.RenderCharacter(c)
	if err != nil {
		return err
	}

	s.putCharacter(c)
	if err := s.persist(KindCharacter, c.Character, docs); err != nil {
		return err
	}

	slog.Debug("character_added",
		slog.String("key", c.Character),
		slog.Int("radicals", len(c.Radicals)))
	return nil
}

func (s *Store) putRadical(r model.Radical) {
	if _, ok := s.radicals[r.Character]; !ok {
		s.radicalOrder = append(s.radicalOrder, r.Character)
	}
	s.radicals[r.Character] = r
}

func (s *Store) putCharacter(c model.Character) {
	if _, ok := s.characters[c.Character]; !ok {
		s.characterOrder = append(s.characterOrder, c.Character)
	}
	s.characters[c.Character] = c
	s.indexCharacter(c)
}

func (s *Store) indexCharacter(c model.Character) {
	for _, rk := range c.Radicals {
		set, ok := s.index[rk]
		if !ok {
			set = make(map[string]struct{})
			s.index[rk] = set
		}
		set[c.Character] = struct{}{}
	}
}

// Radical returns the radical stored under key.
func (s *Store) Radical(key string) (model.Radical, bool) {
	r, ok := s.radicals[key]
	return r, ok
}

// Character returns the character stored under key.
func (s *Store) Character(key string) (model.Character, bool) {
	c, ok := s.characters[key]
	return c, ok
}

// Radicals returns every radical in store order: load order, then add order.
func (s *Store) Radicals() []model.Radical {
	out := make([]model.Radical, 0, len(s.radicalOrder))
	for _, k := range s.radicalOrder {
		out = append(out, s.radicals[k])
	}
	return out
}

// Characters returns every character in store order.
func (s *Store) Characters() []model.Character {
	out := make([]model.Character, 0, len(s.characterOrder))
	for _, k := range s.characterOrder {
		out = append(out, s.characters[k])
	}
	return out
}

// RadicalCount returns the number of stored radicals.
func (s *Store) RadicalCount() int { return len(s.radicals) }

// CharacterCount returns the number of stored characters.
func (s *Store) CharacterCount() int { return len(s.characters) }

package store

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Aman-CERP/hanzi/internal/model"
)

// CharactersByRadical returns, in store order, the indexed characters that
// contain the radical. The result is empty, never nil, for an unknown key.
func (s *Store) CharactersByRadical(radical string) []model.Character {
	set, ok := s.index[radical]
	if !ok {
		return []model.Character{}
	}

	out := make([]model.Character, 0, len(set))
	for _, k := range s.characterOrder {
		if _, in := set[k]; !in {
			continue
		}
		if c, ok := s.characters[k]; ok {
			out = append(out, c)
		}
	}
	return out
}

// IndexedCharacters returns the raw index entry for a radical, sorted.
func (s *Store) IndexedCharacters(radical string) []string {
	set := s.index[radical]
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Search returns characters whose grapheme contains query, or whose pinyin,
// any meaning or any tag contains it ignoring case. Each character appears
// at most once. The empty query matches every character.
func (s *Store) Search(query string) []model.Character {
	lower := cases.Lower(language.Und)
	q := lower.String(query)
	contains := func(field string) bool {
		return strings.Contains(lower.String(field), q)
	}
	anyContains := func(fields []string) bool {
		for _, f := range fields {
			if contains(f) {
				return true
			}
		}
		return false
	}

	out := make([]model.Character, 0)
	for _, k := range s.characterOrder {
		c := s.characters[k]
		switch {
		case strings.Contains(c.Character, query),
			contains(c.Pinyin),
			anyContains(c.Meaning),
			anyContains(c.Tags):
			out = append(out, c)
		}
	}
	return out
}

// Stats aggregates counts over the current collections. TopRadicals holds at
// most TopRadicalsLimit entries sorted by count, descending; equal counts are
// ordered by radical key.
func (s *Store) Stats() Stats {
	st := Stats{
		TotalCharacters: len(s.characters),
		TotalRadicals:   len(s.radicals),
		ByHSKLevel:      make(map[int]int),
		ByStrokeCount:   make(map[int]int),
		TopRadicals:     []RadicalCount{},
	}

	for _, c := range s.characters {
		st.ByHSKLevel[c.HSKLevel]++
		st.ByStrokeCount[c.Strokes]++
	}

	for r, set := range s.index {
		st.TopRadicals = append(st.TopRadicals, RadicalCount{Radical: r, Count: len(set)})
	}
	sort.Slice(st.TopRadicals, func(i, j int) bool {
		a, b := st.TopRadicals[i], st.TopRadicals[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Radical < b.Radical
	})
	if len(st.TopRadicals) > TopRadicalsLimit {
		st.TopRadicals = st.TopRadicals[:TopRadicalsLimit]
	}

	return st
}

package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
	"github.com/Aman-CERP/hanzi/internal/record"
)

// cachedRecord is a decoded file, valid while the file's size and
// modification time are unchanged.
type cachedRecord struct {
	modTime   time.Time
	size      int64
	radical   model.Radical
	character model.Character
}

// decoded is the outcome of reading one record file.
type decoded struct {
	path      string
	radical   model.Radical
	character model.Character
	fromCache bool
	err       error
}

// Load replaces the in-memory collections with the records found in the
// plain root and rebuilds the index. Files that fail to decode, or decode
// to an empty key, are logged and skipped. Only an unreadable directory or
// a cancelled context fails the load, and then the store is left unchanged.
func (s *Store) Load(ctx context.Context) (LoadReport, error) {
	start := time.Now()

	radPaths, err := listRecords(s.layout.Dir(record.VariantPlain, KindRadical))
	if err != nil {
		return LoadReport{}, err
	}
	charPaths, err := listRecords(s.layout.Dir(record.VariantPlain, KindCharacter))
	if err != nil {
		return LoadReport{}, err
	}

	rads, err := s.decodeAll(ctx, radPaths, KindRadical)
	if err != nil {
		return LoadReport{}, err
	}
	chars, err := s.decodeAll(ctx, charPaths, KindCharacter)
	if err != nil {
		return LoadReport{}, err
	}

	s.reset()
	var report LoadReport

	for _, d := range rads {
		if !s.acceptDecoded(d, d.radical.Character, &report) {
			continue
		}
		if _, dup := s.radicals[d.radical.Character]; dup {
			slog.Warn("record_key_duplicated",
				slog.String("kind", string(KindRadical)),
				slog.String("key", d.radical.Character),
				slog.String("path", d.path))
		}
		s.putRadical(d.radical)
	}

	for _, d := range chars {
		if !s.acceptDecoded(d, d.character.Character, &report) {
			continue
		}
		if _, dup := s.characters[d.character.Character]; dup {
			slog.Warn("record_key_duplicated",
				slog.String("kind", string(KindCharacter)),
				slog.String("key", d.character.Character),
				slog.String("path", d.path))
		}
		s.putCharacter(d.character)
	}

	// A key read twice keeps the later file's radicals, so derive the index
	// from the final collection rather than from every decoded file.
	s.rebuildIndex()

	report.Radicals = len(s.radicals)
	report.Characters = len(s.characters)
	s.lastLoad = report

	slog.Info("store_loaded",
		slog.String("root", s.layout.Root),
		slog.Int("radicals", report.Radicals),
		slog.Int("characters", report.Characters),
		slog.Int("skipped", report.Skipped),
		slog.Int("decoded", report.Decoded),
		slog.Duration("duration", time.Since(start)))

	return report, nil
}

// Reload re-reads the plain root. Unchanged files are served from the
// decoded-record cache.
func (s *Store) Reload(ctx context.Context) (LoadReport, error) {
	return s.Load(ctx)
}

func (s *Store) acceptDecoded(d decoded, key string, report *LoadReport) bool {
	if !d.fromCache && d.err == nil {
		report.Decoded++
	}
	if d.err != nil {
		attrs := append([]any{slog.String("path", d.path)}, herrors.LogAttrs(d.err)...)
		slog.Warn("record_decode_failed", attrs...)
		report.Skipped++
		return false
	}
	if key == "" {
		slog.Warn("record_key_missing", slog.String("path", d.path))
		report.Skipped++
		return false
	}
	return true
}

func (s *Store) rebuildIndex() {
	s.index = make(map[string]map[string]struct{})
	for _, k := range s.characterOrder {
		s.indexCharacter(s.characters[k])
	}
}

// listRecords returns the record files of a directory sorted by name. A
// missing directory holds no records.
func listRecords(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, herrors.IOError("read record directory", err).WithDetail("path", dir)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), RecordExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// decodeAll decodes files in parallel. Results keep the order of paths.
func (s *Store) decodeAll(ctx context.Context, paths []string, kind Kind) ([]decoded, error) {
	results := make([]decoded, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.decodeFile(p, kind)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Store) decodeFile(path string, kind Kind) decoded {
	info, err := os.Stat(path)
	if err != nil {
		return decoded{path: path, err: herrors.IOError("stat record", err)}
	}

	if c, ok := s.cache.Get(path); ok && c.size == info.Size() && c.modTime.Equal(info.ModTime()) {
		return decoded{path: path, radical: c.radical, character: c.character, fromCache: true}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return decoded{path: path, err: herrors.IOError("read record", err)}
	}

	d := decoded{path: path}
	entry := cachedRecord{modTime: info.ModTime(), size: info.Size()}
	switch kind {
	case KindRadical:
		d.radical, d.err = record.DecodeRadical(string(data))
		entry.radical = d.radical
	default:
		d.character, d.err = record.DecodeCharacter(string(data))
		entry.character = d.character
	}

	if d.err == nil {
		s.cache.Add(path, entry)
	} else {
		s.cache.Remove(path)
	}
	return d
}

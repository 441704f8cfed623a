// Package importer builds radicals and characters from CSV rows and adds
// them to a store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
)

// Row is one CSV record keyed by header name.
type Row map[string]string

// Adder is the part of a store the importer writes through.
type Adder interface {
	AddRadical(model.Radical) error
	AddCharacter(model.Character) error
}

// ReadCSV reads a header row followed by data rows. Short rows leave the
// missing columns absent; extra cells are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, herrors.ValidationError("read CSV header", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, herrors.ValidationError("read CSV row", err)
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// entry is a parsed row; exactly one of radical and character is set.
type entry struct {
	line      int
	radical   *model.Radical
	character *model.Character
}

// Import adds every row to st and returns how many rows were processed.
//
// All rows are parsed before anything is added, so a bad numeric cell or an
// unknown type or stroke literal fails the import with no mutation. A row
// whose key already exists is logged and still counted as processed. A write
// failure stops the import and returns the count so far.
func Import(ctx context.Context, st Adder, rows []Row) (int, error) {
	entries := make([]entry, 0, len(rows))
	for i, row := range rows {
		// Line 1 is the header.
		e, err := parseRow(row, i+2)
		if err != nil {
			return 0, err
		}
		entries = append(entries, e)
	}

	count := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		var err error
		var key string
		if e.radical != nil {
			key = e.radical.Character
			err = st.AddRadical(*e.radical)
		} else {
			key = e.character.Character
			err = st.AddCharacter(*e.character)
		}

		switch {
		case err == nil:
		case errors.Is(err, herrors.ErrDuplicateKey):
			slog.Warn("import_duplicate_skipped",
				slog.Int("line", e.line),
				slog.String("key", key))
		default:
			return count, fmt.Errorf("line %d: %w", e.line, err)
		}
		count++
	}

	slog.Info("import_complete", slog.Int("rows", count))
	return count, nil
}

// ImportFile opens a CSV file and imports it.
func ImportFile(ctx context.Context, st Adder, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, herrors.IOError("open import file", err).WithDetail("path", path)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return 0, err
	}
	return Import(ctx, st, rows)
}

func parseRow(row Row, line int) (entry, error) {
	e := entry{line: line}

	strokes, err := atoi(row, "strokes", line)
	if err != nil {
		return e, err
	}
	order, err := model.ParseStrokeOrder(splitList(row["stroke_order"]))
	if err != nil {
		return e, lineError(line, err)
	}

	if strings.ToLower(row["is_radical"]) == "true" {
		rt, err := model.ParseRadicalType(strings.TrimSpace(row["type"]))
		if err != nil {
			return e, lineError(line, err)
		}
		r := model.Radical{
			Character:        strings.TrimSpace(row["character"]),
			Pinyin:           row["pinyin"],
			Meaning:          row["meaning"],
			Type:             rt,
			Strokes:          strokes,
			StrokeOrder:      order,
			CommonCharacters: splitList(row["common_characters"]),
			Mnemonic:         row["mnemonic"],
		}
		r.Normalize()
		e.radical = &r
		return e, nil
	}

	tone, err := atoi(row, "tone", line)
	if err != nil {
		return e, err
	}
	c := model.Character{
		Character:     strings.TrimSpace(row["character"]),
		Pinyin:        row["pinyin"],
		Tone:          tone,
		Meaning:       splitList(row["meaning"]),
		Radicals:      splitList(row["radicals"]),
		Strokes:       strokes,
		StrokeOrder:   order,
		Components:    splitList(row["components"]),
		HSKLevel:      digitsOrZero(row["hsk_level"]),
		FrequencyRank: digitsOrZero(row["frequency_rank"]),
		Mnemonic:      row["mnemonic"],
		Tags:          splitList(row["tags"]),
	}
	c.Normalize()
	e.character = &c
	return e, nil
}

// atoi parses a required-if-present integer column. A blank cell is 0.
func atoi(row Row, col string, line int) (int, error) {
	s := strings.TrimSpace(row[col])
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, herrors.ValidationError(fmt.Sprintf("line %d: %s %q is not a number", line, col, s), err).
			WithDetail("line", strconv.Itoa(line)).
			WithDetail("column", col)
	}
	return n, nil
}

// digitsOrZero accepts only plain digit strings and maps anything else to 0.
func digitsOrZero(s string) int {
	if s == "" {
		return 0
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// splitList splits a comma-separated cell, trimming items and dropping
// empty ones.
func splitList(cell string) []string {
	out := []string{}
	for _, item := range strings.Split(cell, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func lineError(line int, err error) error {
	var he *herrors.HanziError
	if errors.As(err, &he) {
		he.WithDetail("line", strconv.Itoa(line))
	}
	return fmt.Errorf("line %d: %w", line, err)
}

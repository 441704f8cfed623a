// Package pinyin loads the memory-palace pinyin chart and exports it as JSON
// or into a SQLite table.
package pinyin

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// DefaultJSONPath is where the chart is written when no path is given.
const DefaultJSONPath = "data/output.json"

// Cell is one named value in a chart row. A nil Value is a blank cell.
type Cell struct {
	Name  string
	Value *string
}

// Row is a chart row in column order.
type Row []Cell

// Get returns the value for a column. ok is false when the column is absent
// or blank.
func (r Row) Get(name string) (value string, ok bool) {
	for _, c := range r {
		if c.Name == name {
			if c.Value == nil {
				return "", false
			}
			return *c.Value, true
		}
	}
	return "", false
}

// MarshalJSON writes the row as an object whose keys keep column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if c.Value == nil {
			buf.WriteString("null")
			continue
		}
		val, err := marshalNoEscape(*c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r Row) set(name string, value *string) Row {
	for i := range r {
		if r[i].Name == name {
			r[i].Value = value
			return r
		}
	}
	return append(r, Cell{Name: name, Value: value})
}

// LoadChart reads a chart CSV file.
func LoadChart(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, herrors.IOError("open pinyin chart", err).WithDetail("path", path)
	}
	defer f.Close()

	rows, err := ReadChart(f)
	if err != nil {
		return nil, err
	}
	slog.Debug("pinyin_chart_loaded",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// ReadChart parses chart CSV. The first row names the columns. Cells are
// trimmed and blanks become nil; cells past the header are named col_<n>
// after their zero-based position.
func ReadChart(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, herrors.MalformedRecord("read pinyin chart header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	rows := []Row{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, herrors.MalformedRecord("read pinyin chart", err)
		}
		if len(rec) == 0 {
			continue
		}

		row := make(Row, 0, len(rec))
		for i, raw := range rec {
			name := fmt.Sprintf("col_%d", i)
			if i < len(header) {
				name = header[i]
			}
			var value *string
			if v := strings.TrimSpace(raw); v != "" {
				value = &v
			}
			row = row.set(name, value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveJSON writes rows as an indented JSON array, creating parent
// directories as needed.
func SaveJSON(rows []Row, path string) error {
	if rows == nil {
		rows = []Row{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return herrors.IOError("create output directory", err).WithDetail("path", path)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return herrors.InternalError("encode pinyin chart", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return herrors.IOError("write pinyin chart", err).WithDetail("path", path)
	}

	slog.Info("pinyin_chart_saved",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return nil
}

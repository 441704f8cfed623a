package render

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
)

// AnkiHeader is the first row of every export.
var AnkiHeader = []string{"character", "pinyin", "meaning", "mnemonic", "radicals", "strokes"}

// AnkiExport writes a tab-separated flashcard table to path, replacing any
// existing file. Characters come first, then radicals when includeRadicals
// is set; radical rows leave the radicals column empty. Fields are written
// verbatim unless they hold a tab or line break, see ankiField.
func AnkiExport(src Source, path string, includeRadicals bool) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return herrors.IOError("create export directory", err).WithDetail("path", filepath.Dir(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return herrors.IOError("create export file", err).WithDetail("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = herrors.IOError("close export file", cerr).WithDetail("path", path)
		}
	}()

	bw := bufio.NewWriter(f)

	rows := 0
	write := func(record []string) {
		if err != nil {
			return
		}
		for i, field := range record {
			record[i] = ankiField(field)
		}
		_, err = bw.WriteString(strings.Join(record, "\t") + "\n")
		rows++
	}

	write(append([]string(nil), AnkiHeader...))
	for _, c := range src.Characters() {
		write([]string{
			c.Character,
			c.Pinyin,
			strings.Join(c.Meaning, ", "),
			c.Mnemonic,
			strings.Join(c.Radicals, ", "),
			strconv.Itoa(c.Strokes),
		})
	}
	if includeRadicals {
		for _, r := range src.Radicals() {
			write([]string{r.Character, r.Pinyin, r.Meaning, r.Mnemonic, "", strconv.Itoa(r.Strokes)})
		}
	}
	if err != nil {
		return herrors.IOError("write export row", err).WithDetail("path", path)
	}
	if err := bw.Flush(); err != nil {
		return herrors.IOError("write export file", err).WithDetail("path", path)
	}

	slog.Info("anki_exported",
		slog.String("path", path),
		slog.Int("rows", rows-1),
		slog.Bool("radicals", includeRadicals))
	return nil
}

// ankiField returns s unchanged unless it would break the row layout. A field
// holding a tab or line break is double-quoted with inner quotes doubled,
// which Anki's importer reads back as one field.
func ankiField(s string) string {
	if !strings.ContainsAny(s, "\t\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	herrors "github.com/Aman-CERP/hanzi/internal/errors"
	"github.com/Aman-CERP/hanzi/internal/model"
)

const (
	// DefaultPracticeLimit is the number of characters on one sheet.
	DefaultPracticeLimit = 20

	// PracticeCells is the number of empty practice cells per character.
	PracticeCells = 10

	PracticeHTMLName = "practice_sheet.html"
	PracticePDFName  = "practice_sheet.pdf"

	// practicePDFPlaceholder stands in for a typeset version of the sheet.
	practicePDFPlaceholder = "This would be a PDF version of the practice sheet."
)

var practiceTemplate = template.Must(template.New("practice").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Chinese Character Practice Sheet</title>
    <style>
        body { font-family: Arial, sans-serif; }
        .grid { display: grid; grid-template-columns: repeat(5, 1fr); gap: 10px; margin-bottom: 20px; }
        .cell { border: 1px solid #ccc; height: 100px; display: flex; flex-direction: column; justify-content: center; align-items: center; }
        .character { font-size: 24px; }
        .pinyin { font-size: 12px; color: #666; }
        .meaning { font-size: 10px; color: #999; }
        .practice-grid { display: grid; grid-template-columns: repeat(5, 1fr); gap: 10px; }
        .practice-cell { border: 1px solid #ccc; height: 100px; background: linear-gradient(#ddd, #ddd) center/100% 1px no-repeat, linear-gradient(#ddd, #ddd) center/1px 100% no-repeat; }
    </style>
</head>
<body>
    <h1>Chinese Character Practice Sheet</h1>
{{- range .Sections}}

    <div class="character-section">
        <h2>{{.Character}} - {{.Meaning}}</h2>
        <p>Pinyin: {{.Pinyin}} (Tone {{.Tone}})</p>
        <p>Strokes: {{.Strokes}}</p>
        <p>Stroke Order: {{.StrokeOrder}}</p>

        <div class="grid">
            <div class="cell">
                <div class="character">{{.Character}}</div>
                <div class="pinyin">{{.Pinyin}}</div>
                <div class="meaning">{{.Meaning}}</div>
            </div>
        </div>

        <h3>Practice Grid</h3>
        <div class="practice-grid">
{{- range $.Cells}}
            <div class="practice-cell"></div>
{{- end}}
        </div>
    </div>
    <hr>
{{- end}}
</body>
</html>
`))

type practiceSection struct {
	Character   string
	Meaning     string
	Pinyin      string
	Tone        int
	Strokes     int
	StrokeOrder string
}

type practiceData struct {
	Sections []practiceSection
	Cells    []struct{}
}

// PracticeSheet writes practice_sheet.html covering the first limit
// characters in store order, plus a placeholder practice_sheet.pdf. A
// non-positive limit means DefaultPracticeLimit. Output is deterministic for
// the same characters.
func PracticeSheet(src Source, dir string, limit int) error {
	if limit <= 0 {
		limit = DefaultPracticeLimit
	}

	chars := src.Characters()
	if len(chars) > limit {
		chars = chars[:limit]
	}

	data := practiceData{
		Sections: make([]practiceSection, 0, len(chars)),
		Cells:    make([]struct{}, PracticeCells),
	}
	for _, c := range chars {
		data.Sections = append(data.Sections, newPracticeSection(c))
	}

	var buf bytes.Buffer
	if err := practiceTemplate.Execute(&buf, data); err != nil {
		return herrors.InternalError("render practice sheet", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return herrors.IOError("create practice directory", err).WithDetail("path", dir)
	}

	htmlPath := filepath.Join(dir, PracticeHTMLName)
	if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
		return herrors.IOError("write practice sheet", err).WithDetail("path", htmlPath)
	}

	pdfPath := filepath.Join(dir, PracticePDFName)
	if err := os.WriteFile(pdfPath, []byte(practicePDFPlaceholder), 0o644); err != nil {
		return herrors.IOError("write practice placeholder", err).WithDetail("path", pdfPath)
	}

	slog.Info("practice_sheet_written",
		slog.String("dir", dir),
		slog.Int("characters", len(chars)))
	return nil
}

func newPracticeSection(c model.Character) practiceSection {
	return practiceSection{
		Character:   c.Character,
		Meaning:     strings.Join(c.Meaning, ", "),
		Pinyin:      c.Pinyin,
		Tone:        c.Tone,
		Strokes:     c.Strokes,
		StrokeOrder: strings.Join(model.StrokeLiterals(c.StrokeOrder), " → "),
	}
}

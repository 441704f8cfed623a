package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Aman-CERP/hanzi/internal/store"
)

// barWidth is the widest histogram bar.
const barWidth = 30

// StatsRenderer displays store statistics.
type StatsRenderer struct {
	out    io.Writer
	styles Styles
}

// NewStatsRenderer creates a stats renderer.
func NewStatsRenderer(out io.Writer, noColor bool) *StatsRenderer {
	return &StatsRenderer{
		out:    out,
		styles: GetStyles(noColor),
	}
}

// Render displays stats with small histograms.
func (r *StatsRenderer) Render(st store.Stats) error {
	_, _ = fmt.Fprintf(r.out, "%s\n\n", r.styles.Header.Render("Knowledge Base"))
	_, _ = fmt.Fprintf(r.out, "  Characters: %d\n", st.TotalCharacters)
	_, _ = fmt.Fprintf(r.out, "  Radicals:   %d\n\n", st.TotalRadicals)

	if len(st.ByHSKLevel) > 0 {
		_, _ = fmt.Fprintln(r.out, "  By HSK level:")
		r.histogram(st.ByHSKLevel, func(k int) string {
			if k == 0 {
				return "none"
			}
			return fmt.Sprintf("HSK %d", k)
		})
		_, _ = fmt.Fprintln(r.out)
	}

	if len(st.ByStrokeCount) > 0 {
		_, _ = fmt.Fprintln(r.out, "  By stroke count:")
		r.histogram(st.ByStrokeCount, func(k int) string { return fmt.Sprintf("%d", k) })
		_, _ = fmt.Fprintln(r.out)
	}

	if len(st.TopRadicals) > 0 {
		_, _ = fmt.Fprintln(r.out, "  Most common radicals:")
		for _, rc := range st.TopRadicals {
			_, _ = fmt.Fprintf(r.out, "    %s %d\n", r.styles.Glyph.Render(rc.Radical), rc.Count)
		}
	}

	return nil
}

// RenderJSON outputs stats as JSON.
func (r *StatsRenderer) RenderJSON(st store.Stats) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(st)
}

func (r *StatsRenderer) histogram(counts map[int]int, label func(int) string) {
	keys := make([]int, 0, len(counts))
	peak := 0
	for k, v := range counts {
		keys = append(keys, k)
		if v > peak {
			peak = v
		}
	}
	sort.Ints(keys)

	for _, k := range keys {
		n := counts[k]
		width := 1
		if peak > 0 {
			width = max(1, n*barWidth/peak)
		}
		_, _ = fmt.Fprintf(r.out, "    %-7s %s %d\n",
			r.styles.Label.Render(label(k)),
			r.styles.Bar.Render(strings.Repeat("█", width)),
			n)
	}
}

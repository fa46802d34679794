// Package report renders conversion results for terminal consumption.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/dashmorph/dashmorph/internal/diag"
	"github.com/dashmorph/dashmorph/internal/grafana"
)

// Table prints aligned columns under a header row.
type Table struct {
	w       io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, noColor bool, headers ...string) *Table {
	return &Table{
		w:       w,
		headers: headers,
		rows:    make([][]string, 0),
		noColor: noColor,
	}
}

// AddRow appends one row. Missing cells render empty, extra cells are
// dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table to the underlying writer.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = len(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	bold := color.New(color.Bold, color.FgCyan)
	if t.noColor {
		bold.DisableColor()
	}
	for i, header := range t.headers {
		bold.Fprint(t.w, padRight(header, widths[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.w, "  ")
		}
	}
	fmt.Fprintln(t.w)

	gray := color.New(color.FgHiBlack)
	if t.noColor {
		gray.DisableColor()
	}
	for i, width := range widths {
		gray.Fprint(t.w, strings.Repeat("─", width))
		if i < len(widths)-1 {
			gray.Fprint(t.w, "  ")
		}
	}
	fmt.Fprintln(t.w)

	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			fmt.Fprint(t.w, padRight(cell, widths[i]))
			if i < len(row)-1 && i < len(widths)-1 {
				fmt.Fprint(t.w, "  ")
			}
		}
		fmt.Fprintln(t.w)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Header writes a bold title with an underline matching its length.
func Header(w io.Writer, title string, noColor bool) {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if noColor {
		bold.DisableColor()
		gray.DisableColor()
	}
	bold.Fprintln(w, title)
	gray.Fprintln(w, strings.Repeat("─", len(title)))
}

func outcomeColor(o diag.Outcome) *color.Color {
	switch o {
	case diag.OutcomeConverted:
		return color.New(color.FgGreen)
	case diag.OutcomeFallback:
		return color.New(color.FgYellow)
	case diag.OutcomeError:
		return color.New(color.FgRed)
	}
	return color.New(color.FgHiBlack)
}

var outcomeOrder = []diag.Outcome{
	diag.OutcomeConverted,
	diag.OutcomeFallback,
	diag.OutcomeSkipped,
	diag.OutcomeError,
}

// WriteSummary prints per-outcome panel totals.
func WriteSummary(w io.Writer, rep *diag.Report, noColor bool) {
	Header(w, "Conversion summary", noColor)
	counts := rep.Counts()
	for _, o := range outcomeOrder {
		c := outcomeColor(o)
		if noColor {
			c.DisableColor()
		}
		c.Fprint(w, padRight(string(o), 10))
		fmt.Fprintf(w, "%d\n", counts[o])
	}
	fmt.Fprintln(w)
}

// WritePanels prints one row per converted panel with its outcome and any
// reason the converter recorded.
func WritePanels(w io.Writer, rep *diag.Report, noColor bool) {
	if rep.Len() == 0 {
		return
	}
	table := NewTable(w, noColor, "Panel", "Type", "Outcome", "Notes")
	for _, d := range rep.Diagnostics {
		table.AddRow(titleOrPlaceholder(d.PanelTitle), d.PanelType, string(d.Outcome), d.Reason)
	}
	table.Render()
	fmt.Fprintln(w)
}

// WriteMetrics lists metric names the translated queries reference, so the
// operator can check they exist in the target account.
func WriteMetrics(w io.Writer, names []string, noColor bool) {
	if len(names) == 0 {
		return
	}
	Header(w, "Referenced metrics", noColor)
	cyan := color.New(color.FgCyan)
	if noColor {
		cyan.DisableColor()
	}
	for _, name := range names {
		cyan.Fprint(w, "• ")
		fmt.Fprintln(w, name)
	}
	fmt.Fprintln(w)
}

// WriteInventory prints the panel inventory of a source dashboard: one row
// per panel with its target count and the dialects those targets carry.
func WriteInventory(w io.Writer, src *grafana.Dashboard, noColor bool) {
	table := NewTable(w, noColor, "Panel", "Type", "Targets", "Dialects")
	walkPanels(src.Panels, func(p *grafana.Panel) {
		if p.Type == "row" {
			return
		}
		visible := p.VisibleTargets()
		table.AddRow(titleOrPlaceholder(p.Title), p.Type, strconv.Itoa(len(visible)), dialectList(visible))
	})
	table.Render()
}

func walkPanels(panels []*grafana.Panel, fn func(*grafana.Panel)) {
	for _, p := range panels {
		if p == nil {
			continue
		}
		fn(p)
		if len(p.Panels) > 0 {
			walkPanels(p.Panels, fn)
		}
	}
}

func dialectList(targets []*grafana.Target) string {
	seen := make(map[string]bool, len(targets))
	var out []string
	for _, t := range targets {
		name := t.Dialect().String()
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ", ")
}

func titleOrPlaceholder(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}

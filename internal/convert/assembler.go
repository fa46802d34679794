package convert

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/diag"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
)

// Options configures one conversion run.
type Options struct {
	// ForceFallback charts panel types outside the allow-list as time
	// series instead of skipping them.
	ForceFallback bool

	// WidgetsPerRow caps widgets per layout row. Zero means the default
	// of 3.
	WidgetsPerRow int

	// FallbackTypes extends the built-in fallback allow-list.
	FallbackTypes []string

	// Logger receives per-panel debug lines. Nil disables logging.
	Logger *zap.Logger
}

// Result is one conversion run's output.
type Result struct {
	Dashboard *coralogix.Dashboard
	Report    diag.Report
	Metrics   *MetricNames
}

const (
	defaultWidgetsPerRow = 3
	defaultRowHeight     = 19
	maxMarkdownRowHeight = 28
)

// Assemble converts a parsed dashboard in a single pass: panels group
// into sections at row markers, each panel runs through the planner and
// its converter, and one diagnostic is recorded per panel.
func Assemble(src *grafana.Dashboard, opts Options) *Result {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxPerRow := opts.WidgetsPerRow
	if maxPerRow <= 0 {
		maxPerRow = defaultWidgetsPerRow
	}
	fallback := make(map[string]bool, len(fallbackTypes)+len(opts.FallbackTypes))
	for t := range fallbackTypes {
		fallback[t] = true
	}
	for _, t := range opts.FallbackTypes {
		fallback[t] = true
	}

	name := src.Title
	if name == "" {
		name = "Converted dashboard"
	}
	res := &Result{
		Dashboard: &coralogix.Dashboard{
			ID:          coralogix.NewID(),
			Name:        name,
			Description: src.Description,
		},
		Metrics: &MetricNames{},
	}

	a := &assembler{
		result:    res,
		logger:    logger,
		maxPerRow: maxPerRow,
		fallback:  fallback,
		force:     opts.ForceFallback,
	}
	a.run(src.Panels)

	res.Dashboard.Variables = convertVariables(src.Templating.List, logger)
	res.Dashboard.RelativeTimeFrame = relativeTimeFrame(src.Time.From)
	return res
}

// ConvertJSON parses a source document and converts it, returning the
// sanitized target dashboard with diagnostics.
func ConvertJSON(data []byte, opts Options) (*Result, error) {
	src, err := grafana.ParseDashboard(data)
	if err != nil {
		return nil, err
	}
	res := Assemble(src, opts)
	coralogix.Sanitize(res.Dashboard)
	return res, nil
}

type assembler struct {
	result    *Result
	logger    *zap.Logger
	maxPerRow int
	fallback  map[string]bool
	force     bool

	section *coralogix.Section
	row     *coralogix.Row
}

func (a *assembler) run(panels []*grafana.Panel) {
	a.section = coralogix.NewSection("", false)
	for _, p := range panels {
		if p == nil {
			continue
		}
		if p.Type == "row" {
			a.startSection(p)
			for _, nested := range p.Panels {
				a.convertPanel(nested)
			}
			continue
		}
		a.convertPanel(p)
	}
	a.flushSection()
}

// startSection flushes the current section and opens one named after the
// row marker. Nested panels of a collapsed row are flattened into it by
// the caller.
func (a *assembler) startSection(rowPanel *grafana.Panel) {
	a.flushSection()
	a.section = coralogix.NewSection(rowPanel.Title, rowPanel.Collapsed)
}

func (a *assembler) flushSection() {
	a.flushRow()
	if a.section != nil && len(a.section.Rows) > 0 {
		a.result.Dashboard.Layout.Sections = append(a.result.Dashboard.Layout.Sections, a.section)
	}
	a.section = nil
}

func (a *assembler) flushRow() {
	if a.row != nil && len(a.row.Widgets) > 0 {
		a.section.Rows = append(a.section.Rows, a.row)
	}
	a.row = nil
}

func (a *assembler) convertPanel(p *grafana.Panel) {
	if p == nil {
		return
	}
	verdict := plan.For(p.Type, p.VisibleTargets())
	if verdict.Action == plan.ActionReject {
		a.logger.Debug("panel rejected",
			zap.String("panel", p.Title),
			zap.String("reason", verdict.Reason))
		w := errorWidget(p, verdict.Reason)
		a.placeIsolated(w, markdownRowHeight(w.Definition.Markdown.MarkdownText))
		a.result.Report.Add(p.Title, p.Type, diag.OutcomeError, verdict.Reason)
		return
	}

	converter, ok := converters[p.Type]
	outcome := diag.OutcomeConverted
	reason := ""
	if !ok {
		if !a.fallback[p.Type] && !a.force {
			a.logger.Debug("panel skipped",
				zap.String("panel", p.Title),
				zap.String("type", p.Type))
			a.result.Report.Add(p.Title, p.Type, diag.OutcomeSkipped,
				fmt.Sprintf("unsupported panel type %q", p.Type))
			return
		}
		converter = convertLineChart
		outcome = diag.OutcomeFallback
		reason = fmt.Sprintf("no dedicated converter for %q; charted as time series", p.Type)
	}

	w := converter(p, a.result.Metrics, verdict)
	if w == nil {
		a.result.Report.Add(p.Title, p.Type, diag.OutcomeSkipped, "no renderable target")
		return
	}
	if md := w.Definition.Markdown; md != nil {
		a.placeIsolated(w, markdownRowHeight(md.MarkdownText))
	} else {
		a.place(w)
	}
	a.result.Report.Add(p.Title, p.Type, outcome, reason)
}

func (a *assembler) place(w *coralogix.Widget) {
	if a.row == nil {
		a.row = coralogix.NewRow(defaultRowHeight)
	}
	a.row.Widgets = append(a.row.Widgets, w)
	if len(a.row.Widgets) >= a.maxPerRow {
		a.flushRow()
	}
}

// placeIsolated gives the widget a row of its own.
func (a *assembler) placeIsolated(w *coralogix.Widget, height int) {
	a.flushRow()
	row := coralogix.NewRow(height)
	row.Widgets = append(row.Widgets, w)
	a.section.Rows = append(a.section.Rows, row)
}

// markdownRowHeight sizes an isolated markdown row by estimated line
// count.
func markdownRowHeight(text string) int {
	lines := strings.Count(text, "\n") + 1
	height := 3 + 2*lines
	if height > maxMarkdownRowHeight {
		height = maxMarkdownRowHeight
	}
	return height
}

// Package convert turns source panels into target widgets and assembles
// the converted dashboard. One converter family exists per widget type;
// the assembler dispatches on the panel type tag and collects a
// diagnostic per panel.
package convert

import (
	"strings"

	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
	"github.com/dashmorph/dashmorph/internal/translate"
)

// Converter produces a widget for one panel, or nil when the panel has no
// renderable target. Translation failures become error widgets through
// the assembler, never Go errors.
type Converter func(p *grafana.Panel, acc *MetricNames, verdict plan.Plan) *coralogix.Widget

// converters maps panel type tags to their dedicated converter family.
var converters = map[string]Converter{
	"gauge":      convertGauge,
	"stat":       convertGauge,
	"singlestat": convertGauge,
	"table":      convertDataTable,
	"logs":       convertDataTable,
	"timeseries": convertLineChart,
	"graph":      convertLineChart,
	"piechart":   convertPieChart,
	"barchart":   convertBarChart,
	"text":       convertMarkdown,
}

// fallbackTypes lists panel types without a dedicated converter that
// still chart acceptably as time series.
var fallbackTypes = map[string]bool{
	"heatmap":        true,
	"histogram":      true,
	"state-timeline": true,
	"status-history": true,
	"bargauge":       true,
	"candlestick":    true,
}

// MetricNames accumulates metric identifiers discovered while converting,
// in first-seen order. The variable resolver reads it after the panel
// pass. Converters receive it as an explicit parameter so they stay pure
// functions of their inputs.
type MetricNames struct {
	names []string
	seen  map[string]bool
}

// Add records a name once. Empty names are ignored.
func (m *MetricNames) Add(name string) {
	if name == "" {
		return
	}
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[name] {
		return
	}
	m.seen[name] = true
	m.names = append(m.names, name)
}

// Merge folds other's names into m, preserving m's order first.
func (m *MetricNames) Merge(other *MetricNames) {
	if other == nil {
		return
	}
	for _, n := range other.names {
		m.Add(n)
	}
}

// List returns the discovered names in first-seen order.
func (m *MetricNames) List() []string {
	return append([]string(nil), m.names...)
}

// normalizedLucene returns the target's raw Lucene text with placeholders
// normalized, or a wildcard when empty.
func normalizedLucene(t *grafana.Target) string {
	text := strings.TrimSpace(t.QueryText())
	if text == "" {
		return "*"
	}
	return translate.NormalizePlaceholders(text)
}

func aggPtr(agg coralogix.LogsAggregation) *coralogix.LogsAggregation {
	return &agg
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

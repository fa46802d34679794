package convert

import (
	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
	"github.com/dashmorph/dashmorph/internal/translate"
)

// convertGauge handles gauge, stat, and singlestat panels. It reads the
// first visible target only.
func convertGauge(p *grafana.Panel, acc *MetricNames, _ plan.Plan) *coralogix.Widget {
	visible := p.VisibleTargets()
	if len(visible) == 0 {
		return nil
	}
	target := visible[0]

	defaults := p.FieldConfig.Defaults
	min := 0.0
	if defaults.Min != nil {
		min = *defaults.Min
	}
	max := guessMax(p.Title, target.QueryText())
	if defaults.Max != nil {
		max = *defaults.Max
	}

	gauge := &coralogix.Gauge{
		Min:          min,
		Max:          max,
		ShowInnerArc: true,
		ShowOuterArc: true,
		Unit:         mapUnit(defaults.Unit),
		Thresholds:   gaugeThresholds(defaults.Thresholds),
		ThresholdBy:  coralogix.ThresholdByValue,
	}

	switch target.Dialect() {
	case grafana.DialectElastic:
		gauge.Query.Logs = &coralogix.GaugeLogsQuery{
			LuceneQuery:     coralogix.LuceneQuery{Value: normalizedLucene(target)},
			LogsAggregation: aggPtr(translate.FirstAggregation(target.Metrics)),
		}
	case grafana.DialectLogQL:
		gauge.Query.Logs = &coralogix.GaugeLogsQuery{
			LuceneQuery:     coralogix.LuceneQuery{Value: translate.LogQLToLucene(target.QueryText())},
			LogsAggregation: aggPtr(coralogix.CountAgg()),
		}
	default:
		acc.Add(translate.MetricName(target.QueryText()))
		gauge.Query.Metrics = &coralogix.GaugeMetricsQuery{
			PromqlQuery: coralogix.PromqlQuery{Value: translate.TranslatePromQL(target.QueryText())},
			Aggregation: coralogix.AggregationLast,
		}
	}

	return &coralogix.Widget{
		ID:          coralogix.NewID(),
		Title:       p.Title,
		Description: p.Description,
		Definition:  coralogix.WidgetDefinition{Gauge: gauge},
	}
}

// gaugeThresholds maps source threshold steps onto gauge stops, always
// emitting at least one.
func gaugeThresholds(src grafana.Thresholds) []coralogix.Threshold {
	var stops []coralogix.Threshold
	for _, step := range src.Steps {
		from := 0.0
		if step.Value != nil {
			from = *step.Value
		}
		stops = append(stops, coralogix.Threshold{From: from, Color: mapColor(step.Color)})
	}
	if len(stops) == 0 {
		stops = append(stops, coralogix.Threshold{From: 0, Color: colorFallback})
	}
	return stops
}

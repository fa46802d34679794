package convert

import (
	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/fields"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
	"github.com/dashmorph/dashmorph/internal/translate"
)

const defaultMaxBars = 10

// convertBarChart handles bar chart panels from their first visible
// target.
func convertBarChart(p *grafana.Panel, acc *MetricNames, _ plan.Plan) *coralogix.Widget {
	visible := p.VisibleTargets()
	if len(visible) == 0 {
		return nil
	}
	target := visible[0]

	bar := &coralogix.BarChart{
		MaxBarsPerChart: defaultMaxBars,
		ScaleType:       coralogix.ScaleTypeLinear,
		ColorsBy:        coralogix.ColorsByStack,
		XAxis:           &coralogix.BarChartXAxis{Type: coralogix.XAxisByCategory},
		Unit:            mapUnit(p.FieldConfig.Defaults.Unit),
	}

	switch target.Dialect() {
	case grafana.DialectElastic:
		logs := &coralogix.BarChartLogsQuery{
			LuceneQuery: coralogix.LuceneQuery{Value: normalizedLucene(target)},
			Aggregation: translate.FirstAggregation(target.Metrics),
		}
		for _, f := range translate.ElasticGroupBys(target.BucketAggs) {
			logs.GroupNames = append(logs.GroupNames, f.FlatName())
			logs.GroupNamesFields = append(logs.GroupNamesFields, f)
		}
		bar.Query.Logs = logs
	case grafana.DialectLogQL:
		logs := &coralogix.BarChartLogsQuery{
			LuceneQuery: coralogix.LuceneQuery{Value: translate.LogQLToLucene(target.QueryText())},
			Aggregation: coralogix.CountAgg(),
		}
		for _, n := range translate.LogQLGroupBy(target.QueryText()) {
			f := fields.Resolve(n)
			logs.GroupNames = append(logs.GroupNames, f.FlatName())
			logs.GroupNamesFields = append(logs.GroupNamesFields, f)
		}
		bar.Query.Logs = logs
	default:
		acc.Add(translate.MetricName(target.QueryText()))
		bar.Query.Metrics = &coralogix.BarChartMetricsQuery{
			PromqlQuery: coralogix.PromqlQuery{Value: translate.TranslatePromQL(target.QueryText())},
		}
	}

	return &coralogix.Widget{
		ID:          coralogix.NewID(),
		Title:       p.Title,
		Description: p.Description,
		Definition:  coralogix.WidgetDefinition{BarChart: bar},
	}
}

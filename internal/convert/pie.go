package convert

import (
	"fmt"

	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/fields"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
	"github.com/dashmorph/dashmorph/internal/translate"
)

const (
	defaultMaxSlices          = 10
	defaultMinSlicePercentage = 1
)

// convertPieChart builds the pie widget. A consolidation payload from the
// planner is used verbatim instead of re-deriving the query from targets.
func convertPieChart(p *grafana.Panel, acc *MetricNames, verdict plan.Plan) *coralogix.Widget {
	visible := p.VisibleTargets()
	if verdict.Pie == nil && len(visible) == 0 {
		return nil
	}

	pie := &coralogix.PieChart{
		MaxSlicesPerChart:  defaultMaxSlices,
		MinSlicePercentage: defaultMinSlicePercentage,
		LabelDefinition:    coralogix.DefaultLabelDefinition(),
		ShowLegend:         true,
	}
	w := &coralogix.Widget{
		ID:          coralogix.NewID(),
		Title:       p.Title,
		Description: p.Description,
		Definition:  coralogix.WidgetDefinition{PieChart: pie},
	}

	if payload := verdict.Pie; payload != nil {
		pie.Query.Logs = &coralogix.PieChartLogsQuery{
			LuceneQuery:      coralogix.LuceneQuery{Value: payload.Lucene},
			Aggregation:      coralogix.CountAgg(),
			GroupNames:       []string{payload.GroupByName},
			GroupNamesFields: []coralogix.ObservationField{payload.GroupBy},
		}
		pie.Query.Dataprime = &coralogix.DataprimeQuery{Text: payload.Dataprime}
		note := fmt.Sprintf("Consolidated from a boolean split over %q.", payload.GroupByName)
		if payload.DisplayLucene != "" {
			note = fmt.Sprintf("Consolidated from a boolean split over %q with base filter %q.",
				payload.GroupByName, payload.DisplayLucene)
		}
		w.Description = joinNonEmpty(p.Description, note)
		w.ConversionNotes = append(w.ConversionNotes, "merged boolean-split targets into one group-by query")
		return w
	}

	target := visible[0]
	switch target.Dialect() {
	case grafana.DialectElastic:
		logs := &coralogix.PieChartLogsQuery{
			LuceneQuery: coralogix.LuceneQuery{Value: normalizedLucene(target)},
			Aggregation: translate.FirstAggregation(target.Metrics),
		}
		for _, f := range translate.ElasticGroupBys(target.BucketAggs) {
			logs.GroupNames = append(logs.GroupNames, f.FlatName())
			logs.GroupNamesFields = append(logs.GroupNamesFields, f)
		}
		pie.Query.Logs = logs
	case grafana.DialectLogQL:
		logs := &coralogix.PieChartLogsQuery{
			LuceneQuery: coralogix.LuceneQuery{Value: translate.LogQLToLucene(target.QueryText())},
			Aggregation: coralogix.CountAgg(),
		}
		for _, n := range translate.LogQLGroupBy(target.QueryText()) {
			f := fields.Resolve(n)
			logs.GroupNames = append(logs.GroupNames, f.FlatName())
			logs.GroupNamesFields = append(logs.GroupNamesFields, f)
		}
		pie.Query.Logs = logs
	default:
		acc.Add(translate.MetricName(target.QueryText()))
		pie.Query.Metrics = &coralogix.PieChartMetricsQuery{
			PromqlQuery: coralogix.PromqlQuery{Value: translate.TranslatePromQL(target.QueryText())},
		}
	}
	return w
}

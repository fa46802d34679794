package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/fields"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
	"github.com/dashmorph/dashmorph/internal/translate"
)

const defaultBuckets = 96

// convertLineChart handles time series panels and doubles as the fallback
// for allow-listed types. Unlike the single-target families it iterates
// every visible target, producing one independent series each.
func convertLineChart(p *grafana.Panel, acc *MetricNames, _ plan.Plan) *coralogix.Widget {
	visible := p.VisibleTargets()
	if len(visible) == 0 {
		return nil
	}

	defs := make([]coralogix.QueryDefinition, 0, len(visible))
	for i, target := range visible {
		def := coralogix.QueryDefinition{
			ID:         coralogix.NewID(),
			Name:       seriesName(target, i),
			IsVisible:  true,
			ScaleType:  coralogix.ScaleTypeLinear,
			Unit:       mapUnit(p.FieldConfig.Defaults.Unit),
			Resolution: coralogix.Resolution{BucketsPresented: defaultBuckets},
		}
		switch target.Dialect() {
		case grafana.DialectElastic:
			def.Query.Logs = &coralogix.LineChartLogsQuery{
				LuceneQuery:  coralogix.LuceneQuery{Value: normalizedLucene(target)},
				GroupBy:      translate.ElasticGroupBys(target.BucketAggs),
				Aggregations: []coralogix.LogsAggregation{translate.FirstAggregation(target.Metrics)},
			}
		case grafana.DialectLogQL:
			var groupBy []coralogix.ObservationField
			for _, n := range translate.LogQLGroupBy(target.QueryText()) {
				groupBy = append(groupBy, fields.Resolve(n))
			}
			def.Query.Logs = &coralogix.LineChartLogsQuery{
				LuceneQuery:  coralogix.LuceneQuery{Value: translate.LogQLToLucene(target.QueryText())},
				GroupBy:      groupBy,
				Aggregations: []coralogix.LogsAggregation{coralogix.CountAgg()},
			}
		default:
			acc.Add(translate.MetricName(target.QueryText()))
			def.Query.Metrics = &coralogix.LineChartMetricsQuery{
				PromqlQuery: coralogix.PromqlQuery{Value: translate.TranslatePromQL(target.QueryText())},
			}
		}
		defs = append(defs, def)
	}

	return &coralogix.Widget{
		ID:          coralogix.NewID(),
		Title:       p.Title,
		Description: p.Description,
		Definition: coralogix.WidgetDefinition{
			LineChart: &coralogix.LineChart{
				Legend:           coralogix.Legend{IsVisible: true},
				Tooltip:          coralogix.Tooltip{Type: coralogix.TooltipTypeAll},
				QueryDefinitions: defs,
			},
		},
	}
}

// genericLegendRe matches legends that are nothing but one template
// interpolation.
var genericLegendRe = regexp.MustCompile(`^\{\{[^}]*\}\}$`)

// knownSeriesNames maps metric name fragments to display names when the
// source has no usable legend template.
var knownSeriesNames = []struct{ fragment, name string }{
	{"http_req_duration", "Request Duration"},
	{"http_reqs", "Request Rate"},
	{"iteration_duration", "Iteration Duration"},
	{"data_sent", "Data Sent"},
	{"data_received", "Data Received"},
	{"vus", "Virtual Users"},
}

// seriesName derives a display name for one target's series: a concrete
// legend template wins, then a known metric fragment, then the position.
func seriesName(t *grafana.Target, index int) string {
	legend := strings.TrimSpace(t.LegendFormat)
	if legend == "" {
		legend = strings.TrimSpace(t.Alias)
	}
	if legend != "" && legend != "__auto" && !genericLegendRe.MatchString(legend) {
		return legend
	}
	query := strings.ToLower(t.QueryText())
	for _, k := range knownSeriesNames {
		if strings.Contains(query, k.fragment) {
			return k.name
		}
	}
	return fmt.Sprintf("Query %d", index+1)
}

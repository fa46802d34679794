package convert

import (
	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/fields"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
	"github.com/dashmorph/dashmorph/internal/translate"
)

const defaultResultsPerPage = 20

// convertDataTable handles table and log-listing panels. Grouped queries
// become grouped tables with one column per group-by field; plain queries
// become log listings with the default column.
func convertDataTable(p *grafana.Panel, acc *MetricNames, _ plan.Plan) *coralogix.Widget {
	visible := p.VisibleTargets()
	if len(visible) == 0 {
		return nil
	}
	target := visible[0]

	table := &coralogix.DataTable{
		ResultsPerPage: defaultResultsPerPage,
		RowStyle:       coralogix.RowStyleOneLine,
	}

	switch target.Dialect() {
	case grafana.DialectElastic:
		logs := &coralogix.DataTableLogsQuery{
			LuceneQuery: coralogix.LuceneQuery{Value: normalizedLucene(target)},
		}
		groupBys := translate.ElasticGroupBys(target.BucketAggs)
		if len(groupBys) > 0 {
			logs.Grouping = tableGrouping(groupBys, translate.FirstAggregation(target.Metrics))
			for _, f := range groupBys {
				table.Columns = append(table.Columns, coralogix.DataTableColumn{Field: f.FlatName()})
			}
		} else {
			table.Columns = defaultTableColumns()
		}
		table.Query.Logs = logs
	case grafana.DialectLogQL:
		logs := &coralogix.DataTableLogsQuery{
			LuceneQuery: coralogix.LuceneQuery{Value: translate.LogQLToLucene(target.QueryText())},
		}
		if names := translate.LogQLGroupBy(target.QueryText()); len(names) > 0 {
			var groupBys []coralogix.ObservationField
			for _, n := range names {
				f := fields.Resolve(n)
				groupBys = append(groupBys, f)
				table.Columns = append(table.Columns, coralogix.DataTableColumn{Field: f.FlatName()})
			}
			logs.Grouping = tableGrouping(groupBys, coralogix.CountAgg())
		} else {
			table.Columns = defaultTableColumns()
		}
		table.Query.Logs = logs
	default:
		acc.Add(translate.MetricName(target.QueryText()))
		table.Query.Metrics = &coralogix.DataTableMetricsQuery{
			PromqlQuery: coralogix.PromqlQuery{Value: translate.TranslatePromQL(target.QueryText())},
		}
		table.Columns = []coralogix.DataTableColumn{{Field: "value"}}
	}

	return &coralogix.Widget{
		ID:          coralogix.NewID(),
		Title:       p.Title,
		Description: p.Description,
		Definition:  coralogix.WidgetDefinition{DataTable: table},
	}
}

func tableGrouping(groupBys []coralogix.ObservationField, agg coralogix.LogsAggregation) *coralogix.DataTableGrouping {
	return &coralogix.DataTableGrouping{
		GroupBys: groupBys,
		Aggregations: []coralogix.DataTableAggregation{{
			ID:          coralogix.NewID(),
			Name:        aggregationName(agg),
			IsVisible:   true,
			Aggregation: agg,
		}},
	}
}

func aggregationName(agg coralogix.LogsAggregation) string {
	switch {
	case agg.Sum != nil:
		return "Sum of " + agg.Sum.ObservationField.FlatName()
	case agg.Average != nil:
		return "Average of " + agg.Average.ObservationField.FlatName()
	case agg.Min != nil:
		return "Min of " + agg.Min.ObservationField.FlatName()
	case agg.Max != nil:
		return "Max of " + agg.Max.ObservationField.FlatName()
	}
	return "Count"
}

func defaultTableColumns() []coralogix.DataTableColumn {
	return []coralogix.DataTableColumn{{Field: "body"}}
}

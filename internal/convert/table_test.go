package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
)

func TestConvertDataTableElasticGrouped(t *testing.T) {
	target := elasticTarget("*",
		grafana.BucketAgg{Type: "terms", Field: "payload.status"},
		grafana.BucketAgg{Type: "date_histogram", Field: "@timestamp"},
	)
	target.Metrics = []grafana.ElasticMetric{{Type: "avg", Field: "payload.duration"}}
	p := &grafana.Panel{Type: "table", Title: "Status Table", Targets: []*grafana.Target{target}}

	w := convertDataTable(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	table := w.Definition.DataTable
	require.NotNil(t, table)
	require.NotNil(t, table.Query.Logs)
	grouping := table.Query.Logs.Grouping
	require.NotNil(t, grouping)
	require.Len(t, grouping.GroupBys, 1)
	assert.Equal(t, "payload.status", grouping.GroupBys[0].FlatName())
	require.Len(t, grouping.Aggregations, 1)
	assert.True(t, grouping.Aggregations[0].IsVisible)
	assert.NotNil(t, grouping.Aggregations[0].Aggregation.Average)
	require.Len(t, table.Columns, 1)
	assert.Equal(t, "payload.status", table.Columns[0].Field)
}

func TestConvertDataTableAlwaysHasColumn(t *testing.T) {
	target := elasticTarget("severity:error",
		grafana.BucketAgg{Type: "date_histogram", Field: "@timestamp"})
	p := &grafana.Panel{Type: "logs", Title: "Error Logs", Targets: []*grafana.Target{target}}

	w := convertDataTable(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	table := w.Definition.DataTable
	require.NotEmpty(t, table.Columns)
	assert.Equal(t, "body", table.Columns[0].Field)
	assert.Nil(t, table.Query.Logs.Grouping)
}

func TestConvertDataTableLogQL(t *testing.T) {
	p := &grafana.Panel{
		Type:    "table",
		Targets: []*grafana.Target{lokiTarget(`sum by (status) (rate({app="web"}[1m]))`)},
	}

	w := convertDataTable(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	table := w.Definition.DataTable
	require.NotNil(t, table.Query.Logs)
	assert.Equal(t, "app:web", table.Query.Logs.LuceneQuery.Value)
	require.NotNil(t, table.Query.Logs.Grouping)
	require.Len(t, table.Columns, 1)
	assert.Equal(t, "status", table.Columns[0].Field)
}

func TestConvertDataTablePromQL(t *testing.T) {
	var acc MetricNames
	p := &grafana.Panel{
		Type:    "table",
		Targets: []*grafana.Target{promTarget("topk(10, http_reqs)")},
	}

	w := convertDataTable(p, &acc, plan.Proceed())

	require.NotNil(t, w)
	table := w.Definition.DataTable
	require.NotNil(t, table.Query.Metrics)
	assert.Equal(t, "topk(10, http_reqs)", table.Query.Metrics.PromqlQuery.Value)
	require.Len(t, table.Columns, 1)
	assert.Equal(t, "value", table.Columns[0].Field)
	assert.Equal(t, []string{"http_reqs"}, acc.List())
}

func TestConvertDataTableNoTargets(t *testing.T) {
	p := &grafana.Panel{Type: "table", Title: "Empty"}
	assert.Nil(t, convertDataTable(p, &MetricNames{}, plan.Proceed()))
}

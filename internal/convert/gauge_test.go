package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
)

func TestConvertGaugePromQL(t *testing.T) {
	p := &grafana.Panel{
		Type:    "gauge",
		Title:   "Active VUs",
		Targets: []*grafana.Target{promTarget("vus")},
		FieldConfig: grafana.FieldConfig{Defaults: grafana.FieldDefaults{
			Unit: "short",
			Max:  f64(500),
			Thresholds: grafana.Thresholds{Steps: []grafana.ThresholdStep{
				{Color: "green"},
				{Color: "red", Value: f64(400)},
			}},
		}},
	}

	var acc MetricNames
	w := convertGauge(p, &acc, plan.Proceed())

	require.NotNil(t, w)
	g := w.Definition.Gauge
	require.NotNil(t, g)
	assert.Equal(t, 0.0, g.Min)
	assert.Equal(t, 500.0, g.Max)
	assert.Equal(t, "UNIT_NUMBER", g.Unit)
	require.NotNil(t, g.Query.Metrics)
	assert.Equal(t, "vus", g.Query.Metrics.PromqlQuery.Value)

	require.Len(t, g.Thresholds, 2)
	assert.Equal(t, 0.0, g.Thresholds[0].From)
	assert.Equal(t, "var(--c-strong-green)", g.Thresholds[0].Color)
	assert.Equal(t, 400.0, g.Thresholds[1].From)
	assert.Equal(t, "var(--c-strong-red)", g.Thresholds[1].Color)

	assert.Equal(t, []string{"vus"}, acc.List())
}

func TestConvertGaugeMaxHeuristic(t *testing.T) {
	p := &grafana.Panel{
		Type:    "gauge",
		Title:   "p95 Duration",
		Targets: []*grafana.Target{promTarget("http_req_duration")},
	}

	w := convertGauge(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	assert.Equal(t, 10.0, w.Definition.Gauge.Max)
	assert.NotEmpty(t, w.Definition.Gauge.Thresholds)
}

func TestConvertGaugeNoTargets(t *testing.T) {
	p := &grafana.Panel{Type: "gauge", Title: "Empty"}
	assert.Nil(t, convertGauge(p, &MetricNames{}, plan.Proceed()))
}

func TestConvertGaugeHiddenTargetExcluded(t *testing.T) {
	hidden := promTarget("vus_max")
	hidden.Hide = true
	p := &grafana.Panel{
		Type:    "gauge",
		Targets: []*grafana.Target{hidden, promTarget("vus")},
	}

	w := convertGauge(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	assert.Equal(t, "vus", w.Definition.Gauge.Query.Metrics.PromqlQuery.Value)
}

func TestConvertGaugeElastic(t *testing.T) {
	target := elasticTarget("status:error", grafana.BucketAgg{Type: "date_histogram", Field: "@timestamp"})
	p := &grafana.Panel{Type: "stat", Title: "Errors", Targets: []*grafana.Target{target}}

	w := convertGauge(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	logs := w.Definition.Gauge.Query.Logs
	require.NotNil(t, logs)
	assert.Equal(t, "status:error", logs.LuceneQuery.Value)
	require.NotNil(t, logs.LogsAggregation)
	assert.NotNil(t, logs.LogsAggregation.Count)
}

func TestConvertGaugeLogQL(t *testing.T) {
	p := &grafana.Panel{
		Type:    "singlestat",
		Title:   "Error Count",
		Targets: []*grafana.Target{lokiTarget(`{app="web", severity="error"}`)},
	}

	w := convertGauge(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	logs := w.Definition.Gauge.Query.Logs
	require.NotNil(t, logs)
	assert.Equal(t, "app:web AND severity:error", logs.LuceneQuery.Value)
}

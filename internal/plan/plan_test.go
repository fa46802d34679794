package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmorph/dashmorph/internal/grafana"
)

func elasticTarget(query string) *grafana.Target {
	return &grafana.Target{
		Query:      grafana.FlexString(query),
		BucketAggs: []grafana.BucketAgg{{Type: "date_histogram", Field: "@timestamp"}},
		Metrics:    []grafana.ElasticMetric{{Type: "count"}},
	}
}

func TestPieConsolidationAccepted(t *testing.T) {
	targets := []*grafana.Target{
		elasticTarget("payload.isEmail:true"),
		elasticTarget("payload.isEmail:false"),
	}

	p := For("piechart", targets)

	require.Equal(t, ActionProceed, p.Action)
	require.NotNil(t, p.Pie)
	assert.Equal(t, "payload.isEmail", p.Pie.GroupByName)
	assert.Equal(t, []string{"payload", "isEmail"}, p.Pie.GroupBy.Keypath)
	assert.Equal(t, "_exists_:payload.isEmail", p.Pie.Lucene)
	assert.Empty(t, p.Pie.DisplayLucene)
	assert.Equal(t,
		"source logs | filter $d.payload.isEmail != null | countby $d.payload.isEmail",
		p.Pie.Dataprime)
}

func TestPieConsolidationWithBaseFilter(t *testing.T) {
	targets := []*grafana.Target{
		elasticTarget("app:web AND passed:true"),
		elasticTarget("app:web AND passed:false"),
	}

	p := For("piechart", targets)

	require.Equal(t, ActionProceed, p.Action)
	require.NotNil(t, p.Pie)
	assert.Equal(t, "passed", p.Pie.GroupByName)
	assert.Equal(t, "app:web AND _exists_:passed", p.Pie.Lucene)
	assert.Equal(t, "app:web", p.Pie.DisplayLucene)
	assert.Equal(t,
		"source logs | lucene 'app:web' | filter $d.passed != null | countby $d.passed",
		p.Pie.Dataprime)
}

func TestPieConsolidationKeywordSuffix(t *testing.T) {
	targets := []*grafana.Target{
		elasticTarget("checks.passed.keyword:true"),
		elasticTarget("checks.passed.keyword:false"),
	}

	p := For("piechart", targets)

	require.Equal(t, ActionProceed, p.Action)
	require.NotNil(t, p.Pie)
	assert.Equal(t, "checks.passed", p.Pie.GroupByName)
	assert.Equal(t, "_exists_:checks.passed", p.Pie.Lucene)
}

func TestPieConsolidationDatasourceMix(t *testing.T) {
	targets := []*grafana.Target{
		elasticTarget("passed:true"),
		{Expr: "sum(rate(http_reqs[5m]))", Datasource: grafana.Datasource{Type: "prometheus"}},
	}

	p := For("piechart", targets)

	require.Equal(t, ActionReject, p.Action)
	assert.Contains(t, p.Reason, "datasource mix")
}

func TestPieConsolidationNonBooleanSplit(t *testing.T) {
	targets := []*grafana.Target{
		elasticTarget("app:foo"),
		elasticTarget("app:bar"),
	}

	p := For("piechart", targets)

	require.Equal(t, ActionReject, p.Action)
	assert.Contains(t, p.Reason, "cannot be consolidated")
}

func TestPieConsolidationRejections(t *testing.T) {
	tests := []struct {
		name    string
		queries []string
	}{
		{"predicate fields differ", []string{"passed:true", "failed:false"}},
		{"base filters differ", []string{"app:a AND passed:true", "app:b AND passed:false"}},
		{"duplicate boolean value", []string{"passed:true", "passed:true"}},
		{"unparseable target", []string{"passed:true", "(passed:false)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := make([]*grafana.Target, 0, len(tt.queries))
			for _, q := range tt.queries {
				targets = append(targets, elasticTarget(q))
			}
			p := For("piechart", targets)
			require.Equal(t, ActionReject, p.Action)
			assert.Contains(t, p.Reason, "cannot be consolidated")
		})
	}
}

func TestPieSingleTargetProceeds(t *testing.T) {
	p := For("piechart", []*grafana.Target{elasticTarget("passed:true")})
	assert.Equal(t, ActionProceed, p.Action)
	assert.Nil(t, p.Pie)
}

func TestBaseFilterNormalization(t *testing.T) {
	targets := []*grafana.Target{
		elasticTarget("app:$app  AND passed:true"),
		elasticTarget("app:${app} AND passed:false"),
	}

	p := For("piechart", targets)

	require.Equal(t, ActionProceed, p.Action)
	require.NotNil(t, p.Pie)
	assert.Equal(t, "app:${app} AND _exists_:passed", p.Pie.Lucene)
}

func TestUnregisteredTypeProceeds(t *testing.T) {
	p := For("timeseries", nil)
	assert.Equal(t, ActionProceed, p.Action)
	assert.Nil(t, p.Pie)
}

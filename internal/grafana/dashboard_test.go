package grafana

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDashboard(t *testing.T) {
	data := []byte(`{
		"uid": "k6-load",
		"title": "Load Test Overview",
		"time": {"from": "now-15m", "to": "now"},
		"templating": {"list": [
			{"name": "app", "type": "query", "query": {"query": "label_values(http_reqs, app)"}},
			{"name": "env", "type": "custom", "query": "dev,staging,prod"}
		]},
		"panels": [
			{
				"id": 1,
				"type": "gauge",
				"title": "VUs",
				"fieldConfig": {"defaults": {"unit": "short", "max": 500, "thresholds": {"mode": "absolute", "steps": [
					{"color": "green", "value": null},
					{"color": "red", "value": 400}
				]}}},
				"targets": [
					{"refId": "A", "datasource": {"type": "prometheus", "uid": "prom1"}, "expr": "vus"},
					{"refId": "B", "hide": true, "datasource": "Prometheus", "expr": "vus_max"}
				]
			}
		]
	}`)

	d, err := ParseDashboard(data)
	require.NoError(t, err)
	assert.Equal(t, "Load Test Overview", d.Title)
	assert.Equal(t, "now-15m", d.Time.From)

	require.Len(t, d.Panels, 1)
	panel := d.Panels[0]
	require.Len(t, panel.Targets, 2)
	assert.Equal(t, "prometheus", panel.Targets[0].Datasource.Type)
	assert.Equal(t, "prom1", panel.Targets[0].Datasource.UID)
	assert.Equal(t, "Prometheus", panel.Targets[1].Datasource.Type)

	visible := panel.VisibleTargets()
	require.Len(t, visible, 1)
	assert.Equal(t, "A", visible[0].RefID)

	defaults := panel.FieldConfig.Defaults
	assert.Equal(t, "short", defaults.Unit)
	require.NotNil(t, defaults.Max)
	assert.Equal(t, 500.0, *defaults.Max)
	steps := defaults.Thresholds.Steps
	require.Len(t, steps, 2)
	assert.Nil(t, steps[0].Value)
	require.NotNil(t, steps[1].Value)
	assert.Equal(t, 400.0, *steps[1].Value)

	vars := d.Templating.List
	require.Len(t, vars, 2)
	assert.Equal(t, "label_values(http_reqs, app)", vars[0].QueryString())
	assert.Equal(t, "dev,staging,prod", vars[1].QueryString())
}

func TestParseDashboardInvalid(t *testing.T) {
	_, err := ParseDashboard([]byte("not json"))
	assert.Error(t, err)
}

func TestFlexStringCoercion(t *testing.T) {
	var target Target
	require.NoError(t, json.Unmarshal([]byte(`{"query": 42}`), &target))
	assert.Equal(t, "42", string(target.Query))

	require.NoError(t, json.Unmarshal([]byte(`{"query": {"nested": true}}`), &target))
	assert.Equal(t, "", string(target.Query))
}

func TestQueryTextPrefersExpr(t *testing.T) {
	target := &Target{Expr: "up", Query: "severity:error"}
	assert.Equal(t, "up", target.QueryText())

	target = &Target{Query: "severity:error"}
	assert.Equal(t, "severity:error", target.QueryText())
}

func TestDecodeOptions(t *testing.T) {
	panel := &Panel{Options: json.RawMessage(`{"mode": "markdown", "content": "# Title", "limit": 3}`)}
	var opts struct {
		Mode    string `mapstructure:"mode"`
		Content string `mapstructure:"content"`
		Limit   string `mapstructure:"limit"`
	}
	require.NoError(t, panel.DecodeOptions(&opts))
	assert.Equal(t, "markdown", opts.Mode)
	assert.Equal(t, "# Title", opts.Content)
	assert.Equal(t, "3", opts.Limit)

	empty := &Panel{}
	require.NoError(t, empty.DecodeOptions(&opts))
}

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatePromQL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"rate interval literal",
			"rate(http_reqs[$__rate_interval])",
			"rate(http_reqs[5m])",
		},
		{
			"interval literal",
			"increase(errors[$__interval])",
			"increase(errors[1m])",
		},
		{
			"interval ms before interval",
			"clamp_max(x, $__interval_ms)",
			"clamp_max(x, 60000)",
		},
		{
			"range literal",
			"avg_over_time(vus[$__range])",
			"avg_over_time(vus[1h])",
		},
		{
			"variable braced",
			`http_reqs{status="$status"}`,
			`http_reqs{status="${status}"}`,
		},
		{
			"plain expression preserved",
			"histogram_quantile(0.95, sum(rate(http_req_duration_bucket[5m])) by (le))",
			"histogram_quantile(0.95, sum(rate(http_req_duration_bucket[5m])) by (le))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslatePromQL(tt.input))
		})
	}
}

func TestMetricName(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"bare metric", "http_reqs", "http_reqs"},
		{"wrapped in functions", "sum(rate(http_reqs[5m]))", "http_reqs"},
		{"metric before labels", `http_reqs{region="us"}`, "http_reqs"},
		{
			"histogram quantile",
			"histogram_quantile(0.95, sum(rate(http_req_duration_bucket[5m])) by (le))",
			"http_req_duration_bucket",
		},
		{"reserved placeholder skipped", "rate(__name__[1m])", ""},
		{"only functions", "time()", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MetricName(tt.expr))
		})
	}
}

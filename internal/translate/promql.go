package translate

import (
	"regexp"
	"strings"
)

// intervalSubstitutions replaces built-in interval and range placeholders
// with fixed literals so the expression stays parseable downstream. Longer
// names come before their prefixes.
var intervalSubstitutions = []struct{ from, to string }{
	{"$__rate_interval", "5m"},
	{"$__interval_ms", "60000"},
	{"$__interval", "1m"},
	{"$__range_ms", "3600000"},
	{"$__range_s", "3600"},
	{"$__range", "1h"},
	{"$__auto", "1m"},
}

// TranslatePromQL preserves a metric expression verbatim except for two
// rewrites: built-in interval placeholders become fixed literals, and the
// remaining variable references are normalized to braced form.
func TranslatePromQL(expr string) string {
	out := expr
	for _, sub := range intervalSubstitutions {
		out = strings.ReplaceAll(out, sub.from, sub.to)
	}
	return NormalizePlaceholders(out)
}

var metricTokenRe = regexp.MustCompile(`[a-zA-Z_:][a-zA-Z0-9_:]*`)

// promqlKeywords are function names, operators, and grouping words that can
// occupy the position of a metric identifier. Skipped during metric-name
// extraction.
var promqlKeywords = map[string]bool{
	"sum": true, "avg": true, "min": true, "max": true, "count": true,
	"rate": true, "irate": true, "increase": true, "delta": true, "idelta": true,
	"deriv": true, "histogram_quantile": true, "quantile": true,
	"stddev": true, "stdvar": true, "count_values": true,
	"topk": true, "bottomk": true, "abs": true, "ceil": true, "floor": true,
	"round": true, "clamp_max": true, "clamp_min": true, "sort": true,
	"sort_desc": true, "time": true, "vector": true, "scalar": true,
	"label_replace": true, "label_join": true, "predict_linear": true,
	"avg_over_time": true, "sum_over_time": true, "min_over_time": true,
	"max_over_time": true, "count_over_time": true, "quantile_over_time": true,
	"stddev_over_time": true, "stdvar_over_time": true, "last_over_time": true,
	"present_over_time": true,
	"by": true, "without": true, "on": true, "ignoring": true,
	"group_left": true, "group_right": true, "offset": true, "bool": true,
	"and": true, "or": true, "unless": true, "le": true,
	// duration unit letters left over from range selectors like [5m]
	"s": true, "m": true, "h": true, "d": true, "w": true, "y": true, "ms": true,
}

// MetricName extracts the first plain metric identifier from a metric
// expression for metadata discovery. Returns "" when the expression holds
// no recognizable metric token.
func MetricName(expr string) string {
	for _, tok := range metricTokenRe.FindAllString(expr, -1) {
		if promqlKeywords[tok] || strings.HasPrefix(tok, "__") {
			continue
		}
		return tok
	}
	return ""
}

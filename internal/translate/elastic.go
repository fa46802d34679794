package translate

import (
	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/fields"
	"github.com/dashmorph/dashmorph/internal/grafana"
)

// ElasticAggregation maps a metric aggregation tag onto a logs
// aggregation. The second return is false for tags with no counterpart
// (cardinality, percentiles, moving averages).
func ElasticAggregation(m grafana.ElasticMetric) (coralogix.LogsAggregation, bool) {
	field := func() *coralogix.FieldAggregation {
		return &coralogix.FieldAggregation{ObservationField: fields.Resolve(m.Field)}
	}
	switch m.Type {
	case "count":
		return coralogix.CountAgg(), true
	case "sum":
		return coralogix.LogsAggregation{Sum: field()}, true
	case "avg":
		return coralogix.LogsAggregation{Average: field()}, true
	case "min":
		return coralogix.LogsAggregation{Min: field()}, true
	case "max":
		return coralogix.LogsAggregation{Max: field()}, true
	}
	return coralogix.LogsAggregation{}, false
}

// ElasticGroupBys maps terms buckets onto group-by fields, in tree order.
// A date histogram bucket is the implicit time axis and never becomes a
// grouping dimension.
func ElasticGroupBys(buckets []grafana.BucketAgg) []coralogix.ObservationField {
	var groupBys []coralogix.ObservationField
	for _, b := range buckets {
		if b.Type != "terms" || b.Field == "" {
			continue
		}
		groupBys = append(groupBys, fields.Resolve(b.Field))
	}
	return groupBys
}

// FirstAggregation returns the first visible metric's aggregation,
// defaulting to a count when the metrics list is empty or unmapped.
func FirstAggregation(metrics []grafana.ElasticMetric) coralogix.LogsAggregation {
	for _, m := range metrics {
		if m.Hide {
			continue
		}
		if agg, ok := ElasticAggregation(m); ok {
			return agg
		}
	}
	return coralogix.CountAgg()
}

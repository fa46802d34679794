package coralogix

import "strings"

// DatasetScope names the storage class a log field lives in. Metadata and
// label fields are indexed by the platform itself; everything else is user
// data addressed by JSON keypath.
type DatasetScope string

const (
	ScopeUnspecified DatasetScope = "DATASET_SCOPE_UNSPECIFIED"
	ScopeUserData    DatasetScope = "DATASET_SCOPE_USER_DATA"
	ScopeLabel       DatasetScope = "DATASET_SCOPE_LABEL"
	ScopeMetadata    DatasetScope = "DATASET_SCOPE_METADATA"
)

// ObservationField addresses one log field: an ordered keypath plus the
// scope it resolves in.
type ObservationField struct {
	Keypath []string     `json:"keypath"`
	Scope   DatasetScope `json:"scope"`
}

// FlatName renders the keypath as a dotted field name.
func (f ObservationField) FlatName() string {
	return strings.Join(f.Keypath, ".")
}

// DataprimePath renders the field as a DataPrime accessor ($d for user
// data, $l for labels, $m for metadata).
func (f ObservationField) DataprimePath() string {
	prefix := "$d"
	switch f.Scope {
	case ScopeLabel:
		prefix = "$l"
	case ScopeMetadata:
		prefix = "$m"
	}
	return prefix + "." + strings.Join(f.Keypath, ".")
}

// LuceneQuery wraps a Lucene filter string.
type LuceneQuery struct {
	Value string `json:"value"`
}

// PromqlQuery wraps a PromQL expression string.
type PromqlQuery struct {
	Value string `json:"value"`
}

// DataprimeQuery wraps a DataPrime expression. Some widget endpoints do not
// accept it inline; see Sanitize.
type DataprimeQuery struct {
	Text string `json:"text"`
}

// LogsAggregation is the one-of wrapper around logs aggregation variants.
// Count needs no field; the others aggregate over one observation field.
type LogsAggregation struct {
	Count   *CountAggregation `json:"count,omitempty"`
	Sum     *FieldAggregation `json:"sum,omitempty"`
	Average *FieldAggregation `json:"average,omitempty"`
	Min     *FieldAggregation `json:"min,omitempty"`
	Max     *FieldAggregation `json:"max,omitempty"`
}

// CountAggregation counts matching log records.
type CountAggregation struct{}

// FieldAggregation aggregates a numeric observation field.
type FieldAggregation struct {
	ObservationField ObservationField `json:"observationField"`
}

// CountAgg returns a count aggregation.
func CountAgg() LogsAggregation {
	return LogsAggregation{Count: &CountAggregation{}}
}

// Variable is one entry of the variablesV2 list.
type Variable struct {
	Name        string             `json:"name"`
	DisplayName string             `json:"displayName,omitempty"`
	Definition  VariableDefinition `json:"definition"`
}

// VariableDefinition wraps the variable source definition. Only the
// multi-select form is produced by the converter.
type VariableDefinition struct {
	MultiSelect *MultiSelect `json:"multiSelect,omitempty"`
}

// MultiSelect is a variable whose values come from a source list and allow
// selecting several at once.
type MultiSelect struct {
	Source               MultiSelectSource `json:"source"`
	Selection            VariableSelection `json:"selection"`
	ValuesOrderDirection string            `json:"valuesOrderDirection"`
}

// MultiSelectSource is the one-of wrapper around variable value sources.
type MultiSelectSource struct {
	ConstantList *ConstantListSource `json:"constantList,omitempty"`
	MetricLabel  *MetricLabelSource  `json:"metricLabel,omitempty"`
	LogsPath     *LogsPathSource     `json:"logsPath,omitempty"`
}

// ConstantListSource enumerates the values inline.
type ConstantListSource struct {
	Values []string `json:"values"`
}

// MetricLabelSource draws values from the label set of a metric.
type MetricLabelSource struct {
	MetricName string `json:"metricName"`
	Label      string `json:"label"`
}

// LogsPathSource draws values from a log field.
type LogsPathSource struct {
	ObservationField ObservationField `json:"observationField"`
}

// VariableSelection records which values are selected by default.
type VariableSelection struct {
	All  *AllSelection  `json:"all,omitempty"`
	List *ListSelection `json:"list,omitempty"`
}

// AllSelection selects every value.
type AllSelection struct{}

// ListSelection selects an explicit subset.
type ListSelection struct {
	Values []string `json:"values"`
}

// OrderDirectionAsc is the default sort direction for variable values.
const OrderDirectionAsc = "ORDER_DIRECTION_ASC"

// SelectAll returns a selection covering every value.
func SelectAll() VariableSelection {
	return VariableSelection{All: &AllSelection{}}
}

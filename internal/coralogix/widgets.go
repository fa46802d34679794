package coralogix

// Gauge renders a single value against a min/max range with thresholds.
type Gauge struct {
	Query        GaugeQuery  `json:"query"`
	Min          float64     `json:"min"`
	Max          float64     `json:"max"`
	ShowInnerArc bool        `json:"showInnerArc"`
	ShowOuterArc bool        `json:"showOuterArc"`
	Unit         string      `json:"unit"`
	Thresholds   []Threshold `json:"thresholds"`
	ThresholdBy  string      `json:"thresholdBy"`
}

// GaugeQuery is the one-of wrapper around gauge data sources.
type GaugeQuery struct {
	Metrics *GaugeMetricsQuery `json:"metrics,omitempty"`
	Logs    *GaugeLogsQuery    `json:"logs,omitempty"`
}

// GaugeMetricsQuery reads the gauge value from a PromQL expression.
type GaugeMetricsQuery struct {
	PromqlQuery PromqlQuery `json:"promqlQuery"`
	Aggregation string      `json:"aggregation"`
}

// GaugeLogsQuery reads the gauge value from a logs aggregation.
type GaugeLogsQuery struct {
	LuceneQuery     LuceneQuery      `json:"luceneQuery"`
	LogsAggregation *LogsAggregation `json:"logsAggregation,omitempty"`
}

// Threshold colors the gauge from a lower bound upward.
type Threshold struct {
	From  float64 `json:"from"`
	Color string  `json:"color"`
}

// ThresholdByValue applies thresholds to the resolved value (as opposed to
// the background).
const ThresholdByValue = "THRESHOLD_BY_VALUE"

// AggregationLast takes the most recent sample of a metrics gauge query.
const AggregationLast = "AGGREGATION_LAST"

// DataTable renders query results as a paged table.
type DataTable struct {
	Query          DataTableQuery    `json:"query"`
	ResultsPerPage int               `json:"resultsPerPage"`
	RowStyle       string            `json:"rowStyle"`
	Columns        []DataTableColumn `json:"columns"`
	OrderBy        *OrderingField    `json:"orderBy,omitempty"`
}

// DataTableQuery is the one-of wrapper around table data sources.
type DataTableQuery struct {
	Logs    *DataTableLogsQuery    `json:"logs,omitempty"`
	Metrics *DataTableMetricsQuery `json:"metrics,omitempty"`
}

// DataTableLogsQuery filters logs and optionally groups them.
type DataTableLogsQuery struct {
	LuceneQuery LuceneQuery        `json:"luceneQuery"`
	Grouping    *DataTableGrouping `json:"grouping,omitempty"`
}

// DataTableMetricsQuery tabulates series of a PromQL expression.
type DataTableMetricsQuery struct {
	PromqlQuery PromqlQuery `json:"promqlQuery"`
}

// DataTableGrouping groups table rows by fields and aggregates each group.
type DataTableGrouping struct {
	GroupBys     []ObservationField     `json:"groupBys,omitempty"`
	Aggregations []DataTableAggregation `json:"aggregations,omitempty"`
}

// DataTableAggregation is one aggregated column of a grouped table.
type DataTableAggregation struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	IsVisible   bool            `json:"isVisible"`
	Aggregation LogsAggregation `json:"aggregation"`
}

// DataTableColumn selects one field for display. The API rejects tables
// with an empty column list.
type DataTableColumn struct {
	Field string `json:"field"`
	Width int    `json:"width,omitempty"`
}

// OrderingField sorts table rows by one field.
type OrderingField struct {
	Field          string `json:"field"`
	OrderDirection string `json:"orderDirection"`
}

// RowStyleOneLine renders each table row on a single line.
const RowStyleOneLine = "ROW_STYLE_ONE_LINE"

// LineChart renders one time series per query definition.
type LineChart struct {
	Legend           Legend            `json:"legend"`
	Tooltip          Tooltip           `json:"tooltip"`
	QueryDefinitions []QueryDefinition `json:"queryDefinitions"`
}

// Legend configures the line chart legend.
type Legend struct {
	IsVisible bool     `json:"isVisible"`
	Columns   []string `json:"columns,omitempty"`
}

// Tooltip configures hover behavior.
type Tooltip struct {
	ShowLabels bool   `json:"showLabels"`
	Type       string `json:"type"`
}

// TooltipTypeAll shows every series at the hovered timestamp.
const TooltipTypeAll = "TOOLTIP_TYPE_ALL"

// QueryDefinition is one series source of a line chart.
type QueryDefinition struct {
	ID                 string         `json:"id"`
	Query              LineChartQuery `json:"query"`
	SeriesNameTemplate string         `json:"seriesNameTemplate,omitempty"`
	Name               string         `json:"name,omitempty"`
	IsVisible          bool           `json:"isVisible"`
	ScaleType          string         `json:"scaleType"`
	Unit               string         `json:"unit,omitempty"`
	Resolution         Resolution     `json:"resolution"`
}

// LineChartQuery is the one-of wrapper around line chart data sources.
type LineChartQuery struct {
	Logs    *LineChartLogsQuery    `json:"logs,omitempty"`
	Metrics *LineChartMetricsQuery `json:"metrics,omitempty"`
}

// LineChartLogsQuery charts an aggregation over filtered logs.
type LineChartLogsQuery struct {
	LuceneQuery  LuceneQuery        `json:"luceneQuery"`
	GroupBy      []ObservationField `json:"groupBy,omitempty"`
	Aggregations []LogsAggregation  `json:"aggregations,omitempty"`
}

// LineChartMetricsQuery charts a PromQL expression.
type LineChartMetricsQuery struct {
	PromqlQuery PromqlQuery `json:"promqlQuery"`
}

// Resolution controls the sampling density of a charted series.
type Resolution struct {
	BucketsPresented int `json:"bucketsPresented"`
}

// ScaleTypeLinear is the default y-axis scale.
const ScaleTypeLinear = "SCALE_TYPE_LINEAR"

// PieChart renders group shares of an aggregated value.
type PieChart struct {
	Query              PieChartQuery    `json:"query"`
	MaxSlicesPerChart  int              `json:"maxSlicesPerChart"`
	MinSlicePercentage int              `json:"minSlicePercentage"`
	LabelDefinition    *LabelDefinition `json:"labelDefinition"`
	ShowLegend         bool             `json:"showLegend"`
	GroupNameTemplate  string           `json:"groupNameTemplate,omitempty"`
}

// PieChartQuery is the one-of wrapper around pie data sources. Logs and
// Dataprime may both be populated by the consolidation planner; Sanitize
// relocates the DataPrime literal because the widget endpoint rejects it
// inline.
type PieChartQuery struct {
	Logs      *PieChartLogsQuery    `json:"logs,omitempty"`
	Metrics   *PieChartMetricsQuery `json:"metrics,omitempty"`
	Dataprime *DataprimeQuery       `json:"dataprime,omitempty"`
}

// PieChartLogsQuery aggregates filtered logs into slices per group.
type PieChartLogsQuery struct {
	LuceneQuery      LuceneQuery        `json:"luceneQuery"`
	Aggregation      LogsAggregation    `json:"aggregation"`
	GroupNames       []string           `json:"groupNames,omitempty"`
	GroupNamesFields []ObservationField `json:"groupNamesFields,omitempty"`
}

// PieChartMetricsQuery slices a PromQL expression by series.
type PieChartMetricsQuery struct {
	PromqlQuery PromqlQuery `json:"promqlQuery"`
}

// LabelDefinition controls slice labeling. The API requires the block on
// every pie chart.
type LabelDefinition struct {
	LabelSource    string `json:"labelSource"`
	IsVisible      bool   `json:"isVisible"`
	ShowName       bool   `json:"showName"`
	ShowValue      bool   `json:"showValue"`
	ShowPercentage bool   `json:"showPercentage"`
}

// LabelSourceInner labels slices with the group value.
const LabelSourceInner = "LABEL_SOURCE_INNER"

// DefaultLabelDefinition returns the label block applied when a pie chart
// carries none.
func DefaultLabelDefinition() *LabelDefinition {
	return &LabelDefinition{
		LabelSource:    LabelSourceInner,
		IsVisible:      true,
		ShowName:       true,
		ShowPercentage: true,
	}
}

// BarChart renders grouped aggregates as bars.
type BarChart struct {
	Query             BarChartQuery  `json:"query"`
	MaxBarsPerChart   int            `json:"maxBarsPerChart"`
	GroupNameTemplate string         `json:"groupNameTemplate,omitempty"`
	ScaleType         string         `json:"scaleType"`
	ColorsBy          string         `json:"colorsBy"`
	XAxis             *BarChartXAxis `json:"xAxis,omitempty"`
	Unit              string         `json:"unit,omitempty"`
}

// BarChartQuery is the one-of wrapper around bar chart data sources.
type BarChartQuery struct {
	Logs    *BarChartLogsQuery    `json:"logs,omitempty"`
	Metrics *BarChartMetricsQuery `json:"metrics,omitempty"`
}

// BarChartLogsQuery aggregates filtered logs into one bar per group.
type BarChartLogsQuery struct {
	LuceneQuery      LuceneQuery        `json:"luceneQuery"`
	Aggregation      LogsAggregation    `json:"aggregation"`
	GroupNames       []string           `json:"groupNames,omitempty"`
	GroupNamesFields []ObservationField `json:"groupNamesFields,omitempty"`
}

// BarChartMetricsQuery draws one bar per series of a PromQL expression.
type BarChartMetricsQuery struct {
	PromqlQuery PromqlQuery `json:"promqlQuery"`
}

// BarChartXAxis configures the category axis.
type BarChartXAxis struct {
	Type string `json:"type"`
}

// XAxisByCategory groups bars by the group-by value.
const XAxisByCategory = "XAXIS_TYPE_CATEGORY"

// ColorsByStack colors bars per stack.
const ColorsByStack = "COLORS_BY_STACK"

// Markdown renders static rich text.
type Markdown struct {
	MarkdownText string `json:"markdownText"`
	TooltipText  string `json:"tooltipText,omitempty"`
}

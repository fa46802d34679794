// Package grafana models the subset of the Grafana dashboard schema the
// converter reads. Documents arrive as semi-structured JSON: unknown
// fields are ignored and missing optional fields decode to safe zero
// values so a sparse panel never fails the whole dashboard.
package grafana

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Dashboard is the source document root.
type Dashboard struct {
	UID         string     `json:"uid"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Time        TimeRange  `json:"time"`
	Panels      []*Panel   `json:"panels"`
	Templating  Templating `json:"templating"`
}

// TimeRange is the dashboard's default time window, in the source
// platform's relative notation ("now-15m", "now").
type TimeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Templating wraps the dashboard's template variables.
type Templating struct {
	List []TemplateVar `json:"list"`
}

// TemplateVar is one dashboard variable definition. Query holds a raw
// blob because its shape varies per variable type.
type TemplateVar struct {
	Name       string          `json:"name"`
	Label      string          `json:"label"`
	Type       string          `json:"type"`
	Query      json.RawMessage `json:"query"`
	Multi      bool            `json:"multi"`
	IncludeAll bool            `json:"includeAll"`
}

// QueryString extracts the variable's query text. Newer schema versions
// nest it under an object, older ones store a bare string.
func (v TemplateVar) QueryString() string {
	if len(v.Query) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(v.Query, &s); err == nil {
		return s
	}
	var obj struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(v.Query, &obj); err == nil {
		return obj.Query
	}
	return ""
}

// Panel is one dashboard panel. A panel of type "row" may carry nested
// panels when collapsed.
type Panel struct {
	ID          int             `json:"id"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Collapsed   bool            `json:"collapsed"`
	Panels      []*Panel        `json:"panels"`
	Targets     []*Target       `json:"targets"`
	FieldConfig FieldConfig     `json:"fieldConfig"`
	Options     json.RawMessage `json:"options"`
}

// VisibleTargets returns the panel's targets with hidden ones removed.
func (p *Panel) VisibleTargets() []*Target {
	var visible []*Target
	for _, t := range p.Targets {
		if t != nil && !t.Hide {
			visible = append(visible, t)
		}
	}
	return visible
}

// DecodeOptions decodes the panel's display options blob into out,
// coercing loosely typed values (numbers as strings, bools as numbers). A
// panel without options is not an error.
func (p *Panel) DecodeOptions(out any) error {
	if len(p.Options) == 0 {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(p.Options, &raw); err != nil {
		return fmt.Errorf("failed to decode panel options: %w", err)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// FieldConfig carries display defaults shared by several panel types.
type FieldConfig struct {
	Defaults FieldDefaults `json:"defaults"`
}

// FieldDefaults holds unit, bounds, and threshold configuration. Min and
// Max are pointers because absence and zero mean different things.
type FieldDefaults struct {
	Unit       string     `json:"unit"`
	Min        *float64   `json:"min"`
	Max        *float64   `json:"max"`
	Thresholds Thresholds `json:"thresholds"`
}

// Thresholds is the source threshold block.
type Thresholds struct {
	Mode  string          `json:"mode"`
	Steps []ThresholdStep `json:"steps"`
}

// ThresholdStep is one color stop. Value is null on the base step.
type ThresholdStep struct {
	Color string   `json:"color"`
	Value *float64 `json:"value"`
}

// Target is one query definition within a panel. Which fields are
// populated depends on the datasource dialect.
type Target struct {
	RefID        string          `json:"refId"`
	Hide         bool            `json:"hide"`
	Datasource   Datasource      `json:"datasource"`
	Expr         string          `json:"expr"`
	Query        FlexString      `json:"query"`
	LegendFormat string          `json:"legendFormat"`
	Alias        string          `json:"alias"`
	BucketAggs   []BucketAgg     `json:"bucketAggs"`
	Metrics      []ElasticMetric `json:"metrics"`

	dialect         Dialect
	dialectResolved bool
}

// QueryText returns the raw query text regardless of which schema field
// carries it.
func (t *Target) QueryText() string {
	if t.Expr != "" {
		return t.Expr
	}
	return string(t.Query)
}

// Datasource identifies a target's data source. Old dashboards store a
// bare name string, newer ones an object with type and uid.
type Datasource struct {
	Type string `json:"type"`
	UID  string `json:"uid"`
}

func (d *Datasource) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		d.Type = name
		return nil
	}
	type plain Datasource
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Datasource(p)
	return nil
}

// FlexString decodes a JSON string directly and coerces other scalars to
// their string form. Objects and arrays decode to "".
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case map[string]any, []any:
		*s = ""
	default:
		*s = FlexString(cast.ToString(v))
	}
	return nil
}

// BucketAgg is one bucket aggregation of a structured query tree.
type BucketAgg struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Field    string          `json:"field"`
	Settings json.RawMessage `json:"settings"`
}

// ElasticMetric is one metric aggregation of a structured query tree.
type ElasticMetric struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Field string `json:"field"`
	Hide  bool   `json:"hide"`
}

// ParseDashboard decodes a dashboard document.
func ParseDashboard(data []byte) (*Dashboard, error) {
	var d Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse dashboard: %w", err)
	}
	return &d, nil
}

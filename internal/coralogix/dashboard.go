// Package coralogix defines the Coralogix custom dashboard document model
// produced by the converter. It covers the subset of the dashboards API
// schema the converter emits: a section/row/widget layout, six widget
// definition variants, logs/metrics/DataPrime query objects, and the
// variablesV2 list.
package coralogix

import "github.com/google/uuid"

// Dashboard is the top-level document uploaded to the dashboards API.
type Dashboard struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Layout            Layout     `json:"layout"`
	Variables         []Variable `json:"variablesV2,omitempty"`
	RelativeTimeFrame string     `json:"relativeTimeFrame,omitempty"`
}

// Layout arranges widgets into sections of rows.
type Layout struct {
	Sections []*Section `json:"sections"`
}

// Section is one titled band of rows in the dashboard grid.
type Section struct {
	ID      string          `json:"id"`
	Rows    []*Row          `json:"rows"`
	Options *SectionOptions `json:"options,omitempty"`
}

// SectionOptions carries the display state of a section header.
type SectionOptions struct {
	Name      string `json:"name,omitempty"`
	Collapsed bool   `json:"collapsed,omitempty"`
}

// Row holds up to a handful of widgets rendered side by side.
type Row struct {
	ID         string        `json:"id"`
	Appearance RowAppearance `json:"appearance"`
	Widgets    []*Widget     `json:"widgets"`
}

// RowAppearance controls row rendering. Height is in grid units.
type RowAppearance struct {
	Height int `json:"height"`
}

// Widget is a single visualization. Exactly one definition variant is set.
type Widget struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Definition  WidgetDefinition `json:"definition"`

	// ConversionNotes carries converter-internal remarks (dropped clauses,
	// ignored panel options). The dashboards API rejects unknown widget
	// properties, so Sanitize strips these before upload.
	ConversionNotes []string `json:"conversionNotes,omitempty"`
}

// WidgetDefinition is the one-of wrapper around widget variants.
type WidgetDefinition struct {
	Gauge     *Gauge     `json:"gauge,omitempty"`
	DataTable *DataTable `json:"dataTable,omitempty"`
	LineChart *LineChart `json:"lineChart,omitempty"`
	PieChart  *PieChart  `json:"pieChart,omitempty"`
	BarChart  *BarChart  `json:"barChart,omitempty"`
	Markdown  *Markdown  `json:"markdown,omitempty"`
}

// NewID returns a fresh unique identifier for a dashboard element. IDs are
// regenerated on every conversion run and carry no meaning beyond uniqueness.
func NewID() string {
	return uuid.NewString()
}

// NewRow returns an empty row with the given grid height.
func NewRow(height int) *Row {
	return &Row{
		ID:         NewID(),
		Appearance: RowAppearance{Height: height},
	}
}

// NewSection returns an empty section with fresh identity.
func NewSection(name string, collapsed bool) *Section {
	s := &Section{ID: NewID()}
	if name != "" || collapsed {
		s.Options = &SectionOptions{Name: name, Collapsed: collapsed}
	}
	return s
}

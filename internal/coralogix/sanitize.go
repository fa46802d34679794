package coralogix

import "fmt"

// Sanitize applies the upload contract in place: converter-internal
// properties are stripped, widgets the API would reject are repaired, and
// inline DataPrime literals are relocated out of pie queries.
func Sanitize(d *Dashboard) {
	if d == nil {
		return
	}
	for _, section := range d.Layout.Sections {
		for _, row := range section.Rows {
			sanitizeRow(row)
		}
	}
}

func sanitizeRow(row *Row) {
	widgets := make([]*Widget, 0, len(row.Widgets))
	for _, w := range row.Widgets {
		w.ConversionNotes = nil
		sanitizeWidget(w)
		widgets = append(widgets, w)
		if note := detachDataprime(w); note != nil {
			widgets = append(widgets, note)
		}
	}
	row.Widgets = widgets
}

func sanitizeWidget(w *Widget) {
	if t := w.Definition.DataTable; t != nil && len(t.Columns) == 0 {
		t.Columns = []DataTableColumn{{Field: "body"}}
	}
	if p := w.Definition.PieChart; p != nil && p.LabelDefinition == nil {
		p.LabelDefinition = DefaultLabelDefinition()
	}
}

// detachDataprime moves an inline DataPrime literal from a pie query into a
// synthetic markdown widget placed after the pie. The widget endpoint
// rejects the literal inside the query object. Returns nil when the widget
// carries none.
func detachDataprime(w *Widget) *Widget {
	p := w.Definition.PieChart
	if p == nil || p.Query.Dataprime == nil {
		return nil
	}
	text := p.Query.Dataprime.Text
	p.Query.Dataprime = nil
	return &Widget{
		ID:    NewID(),
		Title: w.Title + " (DataPrime)",
		Definition: WidgetDefinition{
			Markdown: &Markdown{
				MarkdownText: fmt.Sprintf("Equivalent DataPrime query for %q:\n\n```\n%s\n```", w.Title, text),
			},
		},
	}
}

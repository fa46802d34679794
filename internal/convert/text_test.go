package convert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
)

func TestConvertMarkdown(t *testing.T) {
	p := &grafana.Panel{
		Type:    "text",
		Title:   "About",
		Options: json.RawMessage(`{"mode": "markdown", "content": "# Load Test\nNotes"}`),
	}

	w := convertMarkdown(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	require.NotNil(t, w.Definition.Markdown)
	assert.Equal(t, "# Load Test\nNotes", w.Definition.Markdown.MarkdownText)
}

func TestConvertMarkdownHTML(t *testing.T) {
	p := &grafana.Panel{
		Type:    "text",
		Options: json.RawMessage(`{"mode": "html", "content": "<p>Hello &amp; welcome</p><ul><li>one</li><li>two</li></ul><script>evil()</script>"}`),
	}

	w := convertMarkdown(p, &MetricNames{}, plan.Proceed())

	require.NotNil(t, w)
	text := w.Definition.Markdown.MarkdownText
	assert.Contains(t, text, "Hello & welcome")
	assert.Contains(t, text, "- one")
	assert.Contains(t, text, "- two")
	assert.NotContains(t, text, "<")
	assert.NotContains(t, text, "evil")
}

func TestConvertMarkdownEmpty(t *testing.T) {
	p := &grafana.Panel{Type: "text"}
	assert.Nil(t, convertMarkdown(p, &MetricNames{}, plan.Proceed()))
}

func TestStripHTML(t *testing.T) {
	in := "<style>body{color:red}</style><h1>Title</h1><p>Line one<br/>Line two</p>"
	assert.Equal(t, "Title\n\nLine one\nLine two", StripHTML(in))
}

func TestErrorWidget(t *testing.T) {
	p := &grafana.Panel{Type: "piechart", Title: "Checks"}

	w := errorWidget(p, "targets use a datasource mix")

	require.NotNil(t, w.Definition.Markdown)
	assert.Nil(t, w.Definition.PieChart)
	assert.Contains(t, w.Definition.Markdown.MarkdownText, "datasource mix")
	assert.Contains(t, w.Definition.Markdown.MarkdownText, "piechart")
	assert.Equal(t, "Checks", w.Title)
}

package convert

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/plan"
)

type textOptions struct {
	Mode    string `mapstructure:"mode"`
	Content string `mapstructure:"content"`
}

// convertMarkdown passes rich text through, reducing HTML-mode content to
// plain text. Panels with nothing to show produce no widget.
func convertMarkdown(p *grafana.Panel, _ *MetricNames, _ plan.Plan) *coralogix.Widget {
	var opts textOptions
	if err := p.DecodeOptions(&opts); err != nil {
		opts = textOptions{}
	}
	content := opts.Content
	if strings.EqualFold(opts.Mode, "html") {
		content = StripHTML(content)
	}
	if strings.TrimSpace(content) == "" {
		return nil
	}
	return &coralogix.Widget{
		ID:          coralogix.NewID(),
		Title:       p.Title,
		Description: p.Description,
		Definition: coralogix.WidgetDefinition{
			Markdown: &coralogix.Markdown{
				MarkdownText: content,
				TooltipText:  p.Description,
			},
		},
	}
}

var (
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	brRe         = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseRe = regexp.MustCompile(`(?i)</(p|div|h[1-6])>`)
	listItemRe   = regexp.MustCompile(`(?i)<li[^>]*>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	newlineRe    = regexp.MustCompile(`\n{3,}`)
)

// StripHTML reduces an HTML fragment to readable plain text: line breaks
// and paragraph ends become newlines, list items become dashes, all other
// tags are dropped and entities unescaped.
func StripHTML(s string) string {
	out := scriptRe.ReplaceAllString(s, "")
	out = styleRe.ReplaceAllString(out, "")
	out = brRe.ReplaceAllString(out, "\n")
	out = blockCloseRe.ReplaceAllString(out, "\n\n")
	out = listItemRe.ReplaceAllString(out, "- ")
	out = tagRe.ReplaceAllString(out, "")
	out = html.UnescapeString(out)
	out = newlineRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// errorWidget synthesizes the explanatory widget that replaces a rejected
// panel. The panel is never silently dropped.
func errorWidget(p *grafana.Panel, reason string) *coralogix.Widget {
	return &coralogix.Widget{
		ID:          coralogix.NewID(),
		Title:       p.Title,
		Description: "Conversion failed",
		Definition: coralogix.WidgetDefinition{
			Markdown: &coralogix.Markdown{
				MarkdownText: fmt.Sprintf(
					"**This panel could not be converted automatically.**\n\n%s\n\nOriginal panel type: `%s`",
					reason, p.Type),
			},
		},
	}
}

// Package translate holds the per-dialect query translators: log-filter
// queries to Lucene, metric-expression normalization, and structured
// aggregation mapping. All translators are pure functions over query text
// or decoded aggregation trees.
package translate

import "regexp"

// builtinVars lists placeholder names owned by the source platform.
// Interval placeholders among them are substituted with fixed literals by
// TranslatePromQL; none are ever rewritten to braced form.
var builtinVars = map[string]bool{
	"__interval":      true,
	"__interval_ms":   true,
	"__range":         true,
	"__range_s":       true,
	"__range_ms":      true,
	"__rate_interval": true,
	"__auto":          true,
	"__dashboard":     true,
	"__from":          true,
	"__to":            true,
	"__name":          true,
	"__org":           true,
	"__user":          true,
	"timeFilter":      true,
	"__timeFilter":    true,
}

var placeholderRe = regexp.MustCompile(`\$([a-zA-Z_][a-zA-Z0-9_]*)`)

// NormalizePlaceholders rewrites bare $identifier references to the braced
// ${identifier} form. Built-in placeholders and references already braced
// pass through untouched. Applying the rewrite twice equals applying it
// once.
func NormalizePlaceholders(text string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1:]
		if builtinVars[name] {
			return m
		}
		return "${" + name + "}"
	})
}

package grafana

import "strings"

// Dialect tags the query sub-language a target carries. It is resolved
// once at first use and cached on the target so converters can dispatch on
// the tag instead of repeating the heuristics.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectPromQL
	DialectLogQL
	DialectElastic
)

func (d Dialect) String() string {
	switch d {
	case DialectPromQL:
		return "promql"
	case DialectLogQL:
		return "logql"
	case DialectElastic:
		return "elastic"
	}
	return "unknown"
}

// datasourceDialects maps datasource type tags and their common aliases.
var datasourceDialects = map[string]Dialect{
	"prometheus":    DialectPromQL,
	"prom":          DialectPromQL,
	"loki":          DialectLogQL,
	"elasticsearch": DialectElastic,
	"elastic":       DialectElastic,
	"es":            DialectElastic,
}

// Dialect infers the target's query dialect. An explicit datasource tag
// wins. Otherwise a populated bucket aggregation tree without expression
// text means the structured dialect, and brace context decides between the
// metric and log-filter dialects: a brace directly after a metric-style
// identifier reads as a label matcher, any other brace as a log stream
// selector. The heuristic is knowingly partial.
func (t *Target) Dialect() Dialect {
	if !t.dialectResolved {
		t.dialect = detectDialect(t)
		t.dialectResolved = true
	}
	return t.dialect
}

func detectDialect(t *Target) Dialect {
	if d, ok := datasourceDialects[strings.ToLower(t.Datasource.Type)]; ok {
		return d
	}
	if len(t.BucketAggs) > 0 && t.Expr == "" {
		return DialectElastic
	}
	text := t.QueryText()
	if text == "" {
		return DialectUnknown
	}
	if i := strings.IndexByte(text, '{'); i >= 0 {
		if precededByIdent(text, i) {
			return DialectPromQL
		}
		return DialectLogQL
	}
	return DialectPromQL
}

// precededByIdent reports whether the first non-blank byte before pos is
// part of a metric-style identifier.
func precededByIdent(text string, pos int) bool {
	for i := pos - 1; i >= 0; i-- {
		c := text[i]
		if c == ' ' || c == '\t' {
			continue
		}
		return c == '_' || c == ':' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9')
	}
	return false
}

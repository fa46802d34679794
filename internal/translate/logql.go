package translate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dashmorph/dashmorph/internal/fields"
)

var (
	selectorRe   = regexp.MustCompile(`\{([^{}]*)\}`)
	labelPairRe  = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)\s*(=~|!~|!=|=)\s*"((?:[^"\\]|\\.)*)"`)
	lineFilterRe = regexp.MustCompile(`(\|=|!=|\|~|!~)\s*"((?:[^"\\]|\\.)*)"`)
	groupByRe    = regexp.MustCompile(`\b(?:by|without)\s*\(([^)]*)\)`)
)

// LogQLToLucene translates a log-filter query to a Lucene filter. The
// label selector becomes field:value clauses joined by AND, trailing line
// filter stages become quoted or regex clauses, and aggregation wrappers
// with their range intervals are dropped. No clauses yields a wildcard.
func LogQLToLucene(query string) string {
	loc := selectorRe.FindStringSubmatchIndex(query)
	if loc == nil {
		return "*"
	}
	inner := query[loc[2]:loc[3]]
	var clauses []string
	for _, m := range labelPairRe.FindAllStringSubmatch(inner, -1) {
		if c := labelClause(m[1], m[2], m[3]); c != "" {
			clauses = append(clauses, c)
		}
	}
	tail := query[loc[1]:]
	for _, m := range lineFilterRe.FindAllStringSubmatch(tail, -1) {
		if c := lineClause(m[1], m[2]); c != "" {
			clauses = append(clauses, c)
		}
	}
	if len(clauses) == 0 {
		return "*"
	}
	return NormalizePlaceholders(strings.Join(clauses, " AND "))
}

func labelClause(name, op, value string) string {
	field := fields.LuceneField(name)
	switch op {
	case "=":
		return fmt.Sprintf("%s:%s", field, luceneValue(value))
	case "!=":
		return fmt.Sprintf("NOT %s:%s", field, luceneValue(value))
	case "=~":
		return fmt.Sprintf("%s:/%s/", field, value)
	case "!~":
		return fmt.Sprintf("NOT %s:/%s/", field, value)
	}
	return ""
}

func lineClause(op, text string) string {
	switch op {
	case "|=":
		return fmt.Sprintf("%q", text)
	case "!=":
		return fmt.Sprintf("NOT %q", text)
	case "|~":
		return fmt.Sprintf("/%s/", text)
	case "!~":
		return fmt.Sprintf("NOT /%s/", text)
	}
	return ""
}

func luceneValue(value string) string {
	if value == "" || strings.ContainsAny(value, " \t:") {
		return fmt.Sprintf("%q", value)
	}
	return value
}

// LogQLGroupBy extracts the field names of a by(...) or without(...)
// grouping clause, in order of appearance.
func LogQLGroupBy(query string) []string {
	m := groupByRe.FindStringSubmatch(query)
	if m == nil {
		return nil
	}
	var names []string
	for _, f := range strings.Split(m[1], ",") {
		if f = strings.TrimSpace(f); f != "" {
			names = append(names, f)
		}
	}
	return names
}

// Package plan decides per panel how conversion should proceed before any
// converter runs. The planner executes exactly once per panel and its
// verdict is threaded unchanged into the matching converter.
package plan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/fields"
	"github.com/dashmorph/dashmorph/internal/grafana"
	"github.com/dashmorph/dashmorph/internal/translate"
)

// Action is the planner's verdict kind.
type Action int

const (
	ActionProceed Action = iota
	ActionReject
)

// Plan carries the verdict for one panel. A Reject holds the reason shown
// to the user; a Proceed may hold a precomputed pie payload the pie
// converter uses verbatim instead of re-deriving the query.
type Plan struct {
	Action Action
	Reason string
	Pie    *PiePayload
}

// PiePayload is the consolidated query synthesized from a boolean-split
// target set.
type PiePayload struct {
	GroupBy       coralogix.ObservationField
	GroupByName   string
	Lucene        string
	DisplayLucene string
	Dataprime     string
}

// Proceed returns the default verdict.
func Proceed() Plan { return Plan{Action: ActionProceed} }

// Reject returns a rejection with the given reason.
func Reject(reason string) Plan { return Plan{Action: ActionReject, Reason: reason} }

var planners = map[string]func([]*grafana.Target) Plan{
	"piechart": planPieConsolidation,
}

// For runs the registered planner for the panel type over the panel's
// visible targets. Types without a planner proceed untouched.
func For(panelType string, visible []*grafana.Target) Plan {
	if planner, ok := planners[panelType]; ok {
		return planner(visible)
	}
	return Proceed()
}

// The predicate grammar is deliberately narrow: a lone field:bool, or an
// arbitrary base filter joined to one trailing field:bool with AND.
// Leading negation and parenthesized predicate groups are not recognized.
var (
	soloPredicateRe     = regexp.MustCompile(`^\s*([A-Za-z_][\w.$]*)\s*:\s*(true|false)\s*$`)
	trailingPredicateRe = regexp.MustCompile(`^(.+?)\s+AND\s+([A-Za-z_][\w.$]*)\s*:\s*(true|false)\s*$`)
	whitespaceRe        = regexp.MustCompile(`\s+`)
)

type booleanSplit struct {
	base  string
	field string
	value string
}

// planPieConsolidation merges a boolean-split target set into one group-by
// query over the shared predicate field. Single-target pies proceed
// untouched.
func planPieConsolidation(visible []*grafana.Target) Plan {
	if len(visible) < 2 {
		return Proceed()
	}
	for _, t := range visible {
		if t.Dialect() != grafana.DialectElastic {
			return Reject("pie chart targets use a datasource mix; consolidation needs structured aggregation targets only")
		}
	}
	splits := make([]booleanSplit, 0, len(visible))
	for _, t := range visible {
		s, ok := parseBooleanSplit(t.QueryText())
		if !ok {
			return Reject(fmt.Sprintf("pie chart targets cannot be consolidated: query %q is not a boolean predicate split", t.QueryText()))
		}
		splits = append(splits, s)
	}
	first := splits[0]
	values := make(map[string]bool, 2)
	for _, s := range splits {
		if s.field != first.field {
			return Reject("pie chart targets cannot be consolidated: predicate fields differ")
		}
		if normalizeBase(s.base) != normalizeBase(first.base) {
			return Reject("pie chart targets cannot be consolidated: base filters differ")
		}
		values[s.value] = true
	}
	if len(values) != 2 || !values["true"] || !values["false"] {
		return Reject("pie chart targets cannot be consolidated: boolean values are not exactly true and false")
	}

	field := fields.Resolve(first.field)
	base := strings.TrimSpace(first.base)
	lucene := "_exists_:" + fields.LuceneField(first.field)
	if base != "" {
		lucene = base + " AND " + lucene
	}
	return Plan{
		Action: ActionProceed,
		Pie: &PiePayload{
			GroupBy:       field,
			GroupByName:   field.FlatName(),
			Lucene:        translate.NormalizePlaceholders(lucene),
			DisplayLucene: base,
			Dataprime:     dataprimeCountBy(base, field),
		},
	}
}

func parseBooleanSplit(query string) (booleanSplit, bool) {
	if m := soloPredicateRe.FindStringSubmatch(query); m != nil {
		return booleanSplit{field: m[1], value: m[2]}, true
	}
	if m := trailingPredicateRe.FindStringSubmatch(query); m != nil {
		return booleanSplit{base: strings.TrimSpace(m[1]), field: m[2], value: m[3]}, true
	}
	return booleanSplit{}, false
}

func normalizeBase(base string) string {
	collapsed := whitespaceRe.ReplaceAllString(strings.TrimSpace(base), " ")
	return translate.NormalizePlaceholders(collapsed)
}

// dataprimeCountBy renders the consolidated query in DataPrime, quoting
// the base filter inside a lucene stage.
func dataprimeCountBy(base string, field coralogix.ObservationField) string {
	path := field.DataprimePath()
	var b strings.Builder
	b.WriteString("source logs")
	if base != "" {
		fmt.Fprintf(&b, " | lucene '%s'", strings.ReplaceAll(base, "'", `\'`))
	}
	fmt.Fprintf(&b, " | filter %s != null | countby %s", path, path)
	return b.String()
}

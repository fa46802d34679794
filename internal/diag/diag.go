// Package diag accumulates per-panel conversion outcomes. A report lives
// for exactly one conversion run; the engine holds no other state between
// invocations.
package diag

import "encoding/json"

// Outcome classifies the conversion result of one panel.
type Outcome string

const (
	// OutcomeConverted means a normal widget was produced.
	OutcomeConverted Outcome = "converted"
	// OutcomeFallback means the line chart converter substituted for a
	// type without a dedicated converter.
	OutcomeFallback Outcome = "fallback"
	// OutcomeSkipped means no widget was produced and none was owed.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeError means the panel was rejected and an explanatory
	// widget replaced the normal result.
	OutcomeError Outcome = "error"
)

// Diagnostic records the outcome of one panel conversion.
type Diagnostic struct {
	PanelTitle string  `json:"panelTitle"`
	PanelType  string  `json:"panelType"`
	Outcome    Outcome `json:"outcome"`
	Reason     string  `json:"reason,omitempty"`
}

// Report accumulates diagnostics over one run. The zero value is ready to
// use.
type Report struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Add appends one diagnostic.
func (r *Report) Add(title, panelType string, outcome Outcome, reason string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		PanelTitle: title,
		PanelType:  panelType,
		Outcome:    outcome,
		Reason:     reason,
	})
}

// Counts tallies diagnostics per outcome.
func (r *Report) Counts() map[Outcome]int {
	counts := make(map[Outcome]int, 4)
	for _, d := range r.Diagnostics {
		counts[d.Outcome]++
	}
	return counts
}

// HasErrors reports whether any panel ended in an error outcome.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Outcome == OutcomeError {
			return true
		}
	}
	return false
}

// Len returns the number of recorded diagnostics.
func (r *Report) Len() int {
	return len(r.Diagnostics)
}

// ToJSON renders the report for machine consumption.
func (r *Report) ToJSON() (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogQLToLucene(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single label", `{app="nginx"}`, "app:nginx"},
		{
			"selector inside aggregation",
			`sum(rate({app="nginx", pod=~"$pod"}[5m]))`,
			`app:nginx AND pod:/${pod}/`,
		},
		{"negated label", `{app!="nginx"}`, "NOT app:nginx"},
		{"negated regex", `{pod!~"api-.*"}`, "NOT pod:/api-.*/"},
		{
			"line filters",
			`{app="web"} |= "error" != "timeout"`,
			`app:web AND "error" AND NOT "timeout"`,
		},
		{
			"regex line filter",
			`{app="web"} |~ "5\d\d"`,
			`app:web AND /5\d\d/`,
		},
		{"value with space quoted", `{msg="not found"}`, `msg:"not found"`},
		{"metadata label resolved", `{severity="error"}`, "severity:error"},
		{"empty selector", `{}`, "*"},
		{"no selector", "rate(foo[5m])", "*"},
		{"empty query", "", "*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogQLToLucene(tt.query))
		})
	}
}

func TestLogQLGroupBy(t *testing.T) {
	assert.Equal(t, []string{"status"},
		LogQLGroupBy(`sum by (status) (rate({app="web"}[1m]))`))
	assert.Equal(t, []string{"app", "pod"},
		LogQLGroupBy(`sum(rate({app="web"}[1m])) by (app, pod)`))
	assert.Equal(t, []string{"host"},
		LogQLGroupBy(`count without (host) (rate({app="web"}[1m]))`))
	assert.Nil(t, LogQLGroupBy(`{app="web"}`))
}

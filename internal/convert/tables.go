package convert

import "strings"

// unitMap translates source unit tags to widget units. Unrecognized tags
// fall back to a plain number.
var unitMap = map[string]string{
	"s":           "UNIT_SECONDS",
	"ms":          "UNIT_MILLISECONDS",
	"µs":          "UNIT_MICROSECONDS",
	"us":          "UNIT_MICROSECONDS",
	"percent":     "UNIT_PERCENT",
	"percentunit": "UNIT_PERCENT",
	"bytes":       "UNIT_BYTES",
	"decbytes":    "UNIT_BYTES",
	"kbytes":      "UNIT_KBYTES",
	"mbytes":      "UNIT_MBYTES",
	"gbytes":      "UNIT_GBYTES",
	"short":       "UNIT_NUMBER",
	"none":        "UNIT_NUMBER",
	"":            "UNIT_NUMBER",
}

const unitFallback = "UNIT_NUMBER"

func mapUnit(unit string) string {
	if u, ok := unitMap[unit]; ok {
		return u
	}
	return unitFallback
}

// thresholdColors maps base palette names to theme color variables.
var thresholdColors = map[string]string{
	"green":  "var(--c-strong-green)",
	"red":    "var(--c-strong-red)",
	"yellow": "var(--c-strong-yellow)",
	"orange": "var(--c-strong-orange)",
	"blue":   "var(--c-strong-blue)",
	"purple": "var(--c-strong-purple)",
}

// Shade prefixes of the source palette, collapsed onto the base color.
var colorPrefixes = []string{"semi-dark-", "super-light-", "dark-", "light-"}

const colorFallback = "var(--c-strong-blue)"

func mapColor(name string) string {
	n := strings.ToLower(name)
	for _, prefix := range colorPrefixes {
		n = strings.TrimPrefix(n, prefix)
	}
	if c, ok := thresholdColors[n]; ok {
		return c
	}
	return colorFallback
}

// maxHints pick a gauge maximum from title and query keywords when the
// source config leaves Max unset. First match wins.
var maxHints = []struct {
	keyword string
	max     float64
}{
	{"duration", 10},
	{"p95", 10},
	{"p99", 10},
	{"rate", 10000},
	{"reqs", 10000},
	{"vus", 1000},
	{"total", 1000000},
}

const defaultGaugeMax = 100

func guessMax(title, query string) float64 {
	haystack := strings.ToLower(title + " " + query)
	for _, h := range maxHints {
		if strings.Contains(haystack, h.keyword) {
			return h.max
		}
	}
	return defaultGaugeMax
}

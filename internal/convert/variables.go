package convert

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dashmorph/dashmorph/internal/coralogix"
	"github.com/dashmorph/dashmorph/internal/fields"
	"github.com/dashmorph/dashmorph/internal/grafana"
)

var (
	labelValuesRe       = regexp.MustCompile(`label_values\(\s*([^,()]+?)\s*,\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\)`)
	labelValuesSingleRe = regexp.MustCompile(`label_values\(\s*([a-zA-Z_][\w.]*)\s*\)`)
)

// convertVariables maps template variables onto multi-select definitions.
// Datasource, interval, and ad hoc variables have no counterpart and are
// dropped.
func convertVariables(vars []grafana.TemplateVar, logger *zap.Logger) []coralogix.Variable {
	var out []coralogix.Variable
	for _, v := range vars {
		converted, ok := convertVariable(v)
		if !ok {
			logger.Debug("variable dropped",
				zap.String("name", v.Name),
				zap.String("type", v.Type))
			continue
		}
		out = append(out, converted)
	}
	return out
}

func convertVariable(v grafana.TemplateVar) (coralogix.Variable, bool) {
	var source coralogix.MultiSelectSource
	switch v.Type {
	case "query":
		q := v.QueryString()
		if m := labelValuesRe.FindStringSubmatch(q); m != nil {
			source.MetricLabel = &coralogix.MetricLabelSource{
				MetricName: strings.TrimSpace(m[1]),
				Label:      m[2],
			}
		} else if m := labelValuesSingleRe.FindStringSubmatch(q); m != nil {
			source.LogsPath = &coralogix.LogsPathSource{
				ObservationField: fields.Resolve(m[1]),
			}
		} else {
			return coralogix.Variable{}, false
		}
	case "custom":
		values := splitCSV(v.QueryString())
		if len(values) == 0 {
			return coralogix.Variable{}, false
		}
		source.ConstantList = &coralogix.ConstantListSource{Values: values}
	case "constant", "textbox":
		value := strings.TrimSpace(v.QueryString())
		if value == "" {
			return coralogix.Variable{}, false
		}
		source.ConstantList = &coralogix.ConstantListSource{Values: []string{value}}
	default:
		return coralogix.Variable{}, false
	}

	display := v.Label
	if display == "" {
		display = v.Name
	}
	return coralogix.Variable{
		Name:        v.Name,
		DisplayName: display,
		Definition: coralogix.VariableDefinition{
			MultiSelect: &coralogix.MultiSelect{
				Source:               source,
				Selection:            coralogix.SelectAll(),
				ValuesOrderDirection: coralogix.OrderDirectionAsc,
			},
		},
	}, true
}

func splitCSV(s string) []string {
	var values []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

var relativeFromRe = regexp.MustCompile(`^now-(\d+)([smhd])$`)

const defaultTimeFrame = "900s"

// relativeTimeFrame converts the source's relative start ("now-15m") to a
// seconds duration string. Unrecognized forms get the 15 minute default.
func relativeTimeFrame(from string) string {
	m := relativeFromRe.FindStringSubmatch(strings.TrimSpace(from))
	if m == nil {
		return defaultTimeFrame
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return defaultTimeFrame
	}
	seconds := n
	switch m[2] {
	case "m":
		seconds = n * 60
	case "h":
		seconds = n * 3600
	case "d":
		seconds = n * 86400
	}
	return strconv.Itoa(seconds) + "s"
}

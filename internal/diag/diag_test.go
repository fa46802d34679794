package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportAddAndCounts(t *testing.T) {
	var r Report
	r.Add("VUs", "gauge", OutcomeConverted, "")
	r.Add("Checks", "piechart", OutcomeError, "cannot be consolidated")
	r.Add("Heatmap", "heatmap", OutcomeFallback, "no dedicated converter")
	r.Add("Plugin Panel", "custom-plugin", OutcomeSkipped, "unsupported type")
	r.Add("Errors", "timeseries", OutcomeConverted, "")

	assert.Equal(t, 5, r.Len())
	counts := r.Counts()
	assert.Equal(t, 2, counts[OutcomeConverted])
	assert.Equal(t, 1, counts[OutcomeError])
	assert.Equal(t, 1, counts[OutcomeFallback])
	assert.Equal(t, 1, counts[OutcomeSkipped])
}

func TestReportHasErrors(t *testing.T) {
	var r Report
	assert.False(t, r.HasErrors())

	r.Add("VUs", "gauge", OutcomeConverted, "")
	assert.False(t, r.HasErrors())

	r.Add("Checks", "piechart", OutcomeError, "rejected")
	assert.True(t, r.HasErrors())
}

func TestReportToJSON(t *testing.T) {
	var r Report
	r.Add("Checks", "piechart", OutcomeError, "datasource mix")

	out, err := r.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"panelTitle": "Checks"`)
	assert.Contains(t, out, `"outcome": "error"`)
	assert.Contains(t, out, `"reason": "datasource mix"`)
}

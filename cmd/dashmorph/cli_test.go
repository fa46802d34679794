package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dashmorph/dashmorph/internal/config"
)

const sampleDashboard = `{
	"title": "Load Test",
	"panels": [{
		"type": "gauge",
		"title": "VUs",
		"targets": [{"datasource": {"type": "prometheus"}, "expr": "vus"}]
	}]
}`

// runCommand executes the CLI in-process and resets the shared flag
// variables afterwards.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() {
		convertOutput, convertReport = "", ""
		convertForce, convertQuiet, convertNoColor, convertVerbose = false, false, false, false
		convertPerRow = 0
		inspectNoColor = false
		initForce, initDefaults = false, false
		serveAddr = ""
		watchAddr = ""
		watchDebounce = 0
	})

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { os.Chdir(oldWd) })
	return tmpDir
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "version")
	require.NoError(t, err)

	for _, want := range []string{"Dashmorph version:", "Git commit:", "Build date:", "Go version:"} {
		assert.Contains(t, out, want)
	}
}

func TestConvertCommand(t *testing.T) {
	tmpDir := chdirTemp(t)

	input := filepath.Join(tmpDir, "grafana.json")
	require.NoError(t, os.WriteFile(input, []byte(sampleDashboard), 0644))
	output := filepath.Join(tmpDir, "out.json")
	reportPath := filepath.Join(tmpDir, "report.json")

	_, errOut, err := runCommand(t, "convert", input, "-o", output, "--report", reportPath, "--no-color")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Load Test"`)

	reportData, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(reportData), `"outcome": "converted"`)

	assert.Contains(t, errOut, "Conversion summary")
	assert.Contains(t, errOut, "Referenced metrics")
}

func TestConvertCommandStdout(t *testing.T) {
	tmpDir := chdirTemp(t)

	input := filepath.Join(tmpDir, "grafana.json")
	require.NoError(t, os.WriteFile(input, []byte(sampleDashboard), 0644))

	out, errOut, err := runCommand(t, "convert", input, "--quiet", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, `"layout"`)
	assert.Contains(t, out, `"Load Test"`)
	assert.Empty(t, errOut)
}

func TestConvertCommandMissingFile(t *testing.T) {
	chdirTemp(t)

	_, _, err := runCommand(t, "convert", "no-such-file.json", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestConvertCommandBadJSON(t *testing.T) {
	tmpDir := chdirTemp(t)

	input := filepath.Join(tmpDir, "broken.json")
	require.NoError(t, os.WriteFile(input, []byte("{"), 0644))

	_, _, err := runCommand(t, "convert", input, "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse dashboard")
}

func TestInspectCommand(t *testing.T) {
	tmpDir := chdirTemp(t)

	input := filepath.Join(tmpDir, "grafana.json")
	require.NoError(t, os.WriteFile(input, []byte(sampleDashboard), 0644))

	out, _, err := runCommand(t, "inspect", input, "--no-color")
	require.NoError(t, err)

	assert.Contains(t, out, "Load Test")
	assert.Contains(t, out, "VUs")
	assert.Contains(t, out, "promql")
}

func TestInitCommandDefaults(t *testing.T) {
	chdirTemp(t)

	out, _, err := runCommand(t, "init", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "Created dashmorph.yml")

	data, err := os.ReadFile("dashmorph.yml")
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "widgets_per_row: 3")
	assert.Contains(t, content, "force_fallback: false")
	assert.Contains(t, content, "port: 8080")
	assert.Contains(t, content, "debounce_ms: 250")
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile("dashmorph.yml", []byte("serve:\n  port: 9000\n"), 0644))

	_, _, err := runCommand(t, "init", "--defaults")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCommand(t, "init", "--defaults", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile("dashmorph.yml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "port: 8080")
}

func TestInitConfigRoundTrip(t *testing.T) {
	chdirTemp(t)

	_, _, err := runCommand(t, "init", "--defaults")
	require.NoError(t, err)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Convert.WidgetsPerRow)
	assert.Equal(t, 8080, cfg.Serve.Port)
	assert.Equal(t, 4444, cfg.Watch.Port)
	assert.Equal(t, 250, cfg.Watch.DebounceMS)
}

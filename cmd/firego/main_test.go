package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planYAML = `
name: cli-plan
profile:
  current_age: 35
  target_age: 55
  life_expectancy: 90
  current_savings: 50000000
cash_flows:
  monthly_income: 4000000
  monthly_contribution: 1000000
  monthly_expenses: 3000000
assumptions:
  nominal_return: 0.07
  inflation: 0.02
  retirement_model: depletion
`

func writePlan(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(planYAML), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FIREGO_LOGGING_LEVEL", "error")

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "firego", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"calculate", "validate", "presets", "compare", "sweep", "solve", "serve", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")

	_, err = run(t, "invalid-command")
	assert.Error(t, err)
}

func TestCalculate_Console(t *testing.T) {
	out, err := run(t, "calculate", writePlan(t))
	require.NoError(t, err)

	assert.Contains(t, out, "FIRE PROJECTION: cli-plan")
	assert.Contains(t, out, "KEY RESULTS")
}

func TestCalculate_JSON(t *testing.T) {
	out, err := run(t, "calculate", writePlan(t), "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "plan")
	assert.Contains(t, doc, "result")
}

func TestCalculate_TrajectoryCSVWithPreset(t *testing.T) {
	out, err := run(t, "calculate", writePlan(t), "-f", "trajectory", "--preset", "aggressive")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "age,nominal_balance,real_balance,fire_number,fire_reached", lines[0])
	assert.Len(t, lines, 1+66, "one row per age from 35 through the 100 horizon")
}

func TestCalculate_OutputDir(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "calculate", writePlan(t), "-f", "csv", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	files, err := filepath.Glob(filepath.Join(dir, "fire_report_*.csv"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCalculate_Errors(t *testing.T) {
	plan := writePlan(t)

	_, err := run(t, "calculate", plan, "--format", "pdf")
	assert.ErrorContains(t, err, "unknown output format")

	_, err = run(t, "calculate", plan, "--preset", "lavish")
	assert.ErrorContains(t, err, "unknown preset")

	_, err = run(t, "calculate", plan, "--currency", "EUR")
	assert.ErrorContains(t, err, "unsupported currency")

	_, err = run(t, "calculate")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", writePlan(t))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("assumptions: {preservation_ratio: 2}\n"), 0o644))
	_, err = run(t, "validate", bad)
	assert.ErrorContains(t, err, "preservation ratio")
}

func TestPresets(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)

	assert.Contains(t, out, "aggressive")
	assert.Contains(t, out, "moderate")
	assert.Contains(t, out, "7.0%")
	assert.Less(t, strings.Index(out, "aggressive"), strings.Index(out, "conservative"))
}

func TestCompare(t *testing.T) {
	out, err := run(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "save_more_10pct")

	out, err = run(t, "compare", writePlan(t), "--with", "save_more_10pct", "--transform", "set_return:rate=0.09", "--format", "json")
	require.NoError(t, err)
	var set struct {
		AlternativeResults []map[string]any `json:"alternativeResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Len(t, set.AlternativeResults, 2)

	_, err = run(t, "compare", writePlan(t))
	assert.ErrorContains(t, err, "--with or --transform")

	_, err = run(t, "compare")
	assert.ErrorContains(t, err, "plan file required")

	_, err = run(t, "compare", writePlan(t), "--with", "save_more_10pct", "--format", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestSweep(t *testing.T) {
	out, err := run(t, "sweep", writePlan(t), "--param", "return", "--from", "0.04", "--to", "0.08", "--steps", "5", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,"))
	assert.Len(t, lines, 1+1+5, "header, base and one row per value")

	_, err = run(t, "sweep", writePlan(t), "--param", "luck", "--from", "1", "--to", "2")
	assert.ErrorContains(t, err, "sweep failed")

	_, err = run(t, "sweep", writePlan(t), "--param", "return", "--steps", "0")
	assert.Error(t, err)
}

func TestSolve(t *testing.T) {
	out, err := run(t, "solve", writePlan(t))
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN LEVERS")

	out, err = run(t, "solve", writePlan(t), "--target", "contribution", "--format", "json")
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "contribution", result["target"])
	assert.Equal(t, true, result["success"])

	_, err = run(t, "solve", writePlan(t), "--target", "luck")
	assert.Error(t, err)
}

func TestParseTarget(t *testing.T) {
	assert.Equal(t, "retirement_age", string(parseTarget(" Retirement-Age ")))
	assert.Equal(t, "all", string(parseTarget("ALL")))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version", "--currency", "EUR")
	require.NoError(t, err, "version skips settings")
	assert.Contains(t, out, "firego dev")
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "json", extensionFor("json"))
	assert.Equal(t, "csv", extensionFor("trajectory-csv"))
	assert.Equal(t, "txt", extensionFor("console"))
}

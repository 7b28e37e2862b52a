package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedParser() *InputParser {
	return &InputParser{Now: func() time.Time {
		return time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	}}
}

func TestLoadFromFile_Baseline(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "baseline.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "baseline", plan.Name)
	assert.Equal(t, 30.0, plan.Profile.CurrentAge)
	assert.Equal(t, 60.0, plan.Profile.TargetAge)
	assert.Equal(t, 90.0, plan.Profile.LifeExpectancy)
	assert.Equal(t, 1_000_000.0, plan.CashFlows.MonthlyContribution)
	assert.Equal(t, 2_000_000.0, plan.CashFlows.MonthlyExpenses)
	assert.Nil(t, plan.CashFlows.PensionStartAge)
	assert.Equal(t, 0.07, plan.Assumptions.NominalReturn)
	assert.Equal(t, 1.0, plan.Assumptions.PreservationRatio)
	require.Len(t, plan.Events, 2)
	assert.Equal(t, -50_000_000.0, plan.Events[0].Amount)
	assert.Equal(t, 65.0, plan.Events[1].Age)
}

func TestLoadFromFile_YearMonthDates(t *testing.T) {
	plan, err := fixedParser().LoadFromFile(filepath.Join("testdata", "dates.yaml"))
	require.NoError(t, err)

	assert.InDelta(t, 35.5, plan.Profile.CurrentAge, 1e-12)
	assert.InDelta(t, 55.5, plan.Profile.TargetAge, 1e-12)
	require.NotNil(t, plan.CashFlows.PensionStartAge)
	assert.InDelta(t, 65.0, *plan.CashFlows.PensionStartAge, 1e-12)
	assert.Equal(t, 150_000_000.5, plan.Profile.CurrentSavings)
	assert.Equal(t, 0.5, plan.Assumptions.PreservationRatio)
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{"missing file", "nope.yaml", "failed to read file"},
		{"ratio out of range", "invalid_ratio.yaml", "preservation ratio must be between 0 and 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadFromFile(filepath.Join("testdata", tt.file))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_NameFromFilename(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "invalid_ratio.yaml"))
	assert.Nil(t, plan)
	require.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "my-plan.yaml")
	require.NoError(t, writeFile(path, "profile: {current_age: 40, target_age: 50}\n"))

	plan, err = NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "my-plan", plan.Name)
	assert.Equal(t, DefaultLifeExpectancy, plan.Profile.LifeExpectancy)
}

func TestParse_Defaults(t *testing.T) {
	plan, err := fixedParser().Parse([]byte("name: empty\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultCurrentAge, plan.Profile.CurrentAge)
	assert.Equal(t, DefaultTargetAge, plan.Profile.TargetAge)
	assert.Equal(t, DefaultLifeExpectancy, plan.Profile.LifeExpectancy)
	assert.Equal(t, 1.0, plan.Assumptions.PreservationRatio)
}

func TestParse_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "profile: [", "failed to parse YAML"},
		{"bad birth month", "profile: {birth_month: 1990/03}", "invalid birth_month"},
		{"retirement month without birth", "profile: {retirement_month: \"2040-01\"}", "requires birth_month"},
		{"pension month without birth", "cash_flows: {pension_start_month: \"2040-01\"}", "requires birth_month"},
		{"unknown model", "assumptions: {retirement_model: yolo}", "unknown retirement model"},
		{"unknown preset", "preset: lavish", "unknown preset"},
		{"negative expenses", "cash_flows: {monthly_expenses: -1}", "monthly expenses cannot be negative"},
		{"return too high", "assumptions: {nominal_return: 1.5}", "nominal return must be between"},
		{"life before current age", "profile: {current_age: 80, target_age: 85, life_expectancy: 70}", "life expectancy must be greater"},
		{"event before current age", "profile: {current_age: 40}\nfuture_cash_events: [{name: x, amount: 10, age: 30}]", "is before current age"},
		{"zero event", "future_cash_events: [{name: x, amount: 0, age: 70}]", "amount cannot be zero"},
		{"fractional event age", "future_cash_events: [{name: windfall, amount: 500000000, age: 65.5}]", "must be a whole number of years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixedParser().Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_PresetOverridesCashFlows(t *testing.T) {
	doc := `
preset: moderate
profile: {current_age: 35, target_age: 55, life_expectancy: 90}
cash_flows: {monthly_income: 1, monthly_contribution: 1, monthly_expenses: 1}
assumptions: {nominal_return: 0.01, inflation: 0.02}
`
	plan, err := fixedParser().Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, 600_000.0, plan.CashFlows.MonthlyIncome)
	assert.Equal(t, 125_000.0, plan.CashFlows.MonthlyContribution)
	assert.Equal(t, 4_000_000.0, plan.CashFlows.MonthlyExpenses)
	assert.Equal(t, 0.07, plan.Assumptions.NominalReturn)
	assert.Equal(t, 0.02, plan.Assumptions.Inflation)
}

func TestParse_UnnamedEventsGetPlaceholder(t *testing.T) {
	plan, err := fixedParser().Parse([]byte("future_cash_events: [{amount: 5, age: 70}]"))
	require.NoError(t, err)
	assert.Equal(t, "event 1", plan.Events[0].Name)
}

func TestYearsBetween(t *testing.T) {
	years, err := YearsBetween("1990-03", "2025-09")
	require.NoError(t, err)
	assert.InDelta(t, 35.5, years, 1e-12)

	years, err = YearsBetween("2025-09", "2025-03")
	require.NoError(t, err)
	assert.InDelta(t, -0.5, years, 1e-12)

	_, err = YearsBetween("March 1990", "2025-09")
	assert.Error(t, err)
}

func TestValidateConfiguration_AllowsRetiredProfiles(t *testing.T) {
	plan := &domain.Plan{
		Profile:     domain.Profile{CurrentAge: 70, TargetAge: 65, LifeExpectancy: 95},
		Assumptions: domain.EconomicAssumptions{NominalReturn: 0.04, PreservationRatio: 1},
	}
	assert.NoError(t, NewInputParser().ValidateConfiguration(plan))
}

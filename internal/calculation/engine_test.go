package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_Run_NilPlan(t *testing.T) {
	engine := NewCalculationEngine()

	report, err := engine.Run(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "plan cannot be nil")
}

func TestCalculationEngine_Run_CancelledContext(t *testing.T) {
	engine := NewCalculationEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := baselinePlan()
	report, err := engine.Run(ctx, &plan)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestCalculationEngine_Run_LogsOutcome(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	plan := baselinePlan()
	_, err := engine.Run(context.Background(), &plan)
	require.NoError(t, err)

	require.Len(t, logger.messages, 2)
	assert.Contains(t, logger.messages[0], "DEBUG")
	assert.Contains(t, logger.messages[1], "INFO")
}

func TestCalculationEngine_Calculate_DoesNotMutateInput(t *testing.T) {
	engine := NewCalculationEngine()
	plan := baselinePlan()
	plan.Profile.TargetAge = 20 // below current age, clamped on a copy
	plan.Assumptions.PreservationRatio = 3

	report := engine.Calculate(&plan)

	assert.Equal(t, 20.0, plan.Profile.TargetAge)
	assert.Equal(t, 3.0, plan.Assumptions.PreservationRatio)
	assert.Equal(t, 30.0, report.Plan.Profile.TargetAge)
	assert.Equal(t, 1.0, report.Plan.Assumptions.PreservationRatio)
}

func TestCalculationEngine_Calculate_DerivedIndicators(t *testing.T) {
	engine := NewCalculationEngine()
	plan := baselinePlan()
	plan.CashFlows.MonthlyIncome = 4_000_000
	plan.CashFlows.MonthlyContribution = 1_000_000
	plan.CashFlows.PensionStartAge = floatPtr(65)
	plan.Profile.CurrentSavings = 50_000_000

	res := engine.Calculate(&plan).Result

	assert.InDelta(t, 25.0, res.SavingsRate, 1e-9)
	assert.InDelta(t, 5.0, res.BridgeYears, 1e-9)
	assert.InDelta(t, 0.05, res.RealReturn, 1e-12)
	assert.Equal(t, 65.0, res.PensionStartAge)
	assert.Equal(t, 60.0, res.BaseAge)
	assert.InDelta(t, 50_000_000/res.FireNumber*100, res.Progress, 1e-9)
	require.NotNil(t, res.AchievedAge)
	require.NotNil(t, res.YearsToFire)
	assert.Equal(t, *res.AchievedAge-30, *res.YearsToFire)
	assert.Equal(t, domain.StatusOnTrack, res.Status)
}

func TestCalculationEngine_Calculate_Status(t *testing.T) {
	engine := NewCalculationEngine()

	short := baselinePlan()
	short.CashFlows.MonthlyContribution = 0
	res := engine.Calculate(&short).Result
	assert.Equal(t, domain.StatusShortfall, res.Status)
	assert.Nil(t, res.YearsToFire)
	assert.NotNil(t, res.Suggestion)

	covered := baselinePlan()
	covered.CashFlows.MonthlyPension = covered.CashFlows.MonthlyExpenses
	res = engine.Calculate(&covered).Result
	assert.Equal(t, domain.StatusOnTrack, res.Status)
	assert.Equal(t, 100.0, res.Progress)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 100.0, progress(10, 0))
	assert.Equal(t, 100.0, progress(10, -5))
	assert.Equal(t, 50.0, progress(50, 100))
	assert.Equal(t, 100.0, progress(500, 100))
}

// baselinePlan is a 30 year old retiring at 60, saving 1,000,000 a month.
func baselinePlan() domain.Plan {
	return domain.Plan{
		Name: "baseline",
		Profile: domain.Profile{
			CurrentAge:     30,
			TargetAge:      60,
			LifeExpectancy: 90,
			CurrentSavings: 0,
		},
		CashFlows: domain.CashFlows{
			MonthlyContribution: 1_000_000,
			MonthlyExpenses:     2_000_000,
		},
		Assumptions: domain.EconomicAssumptions{
			NominalReturn:     0.07,
			Inflation:         0.02,
			PreservationRatio: 1.0,
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

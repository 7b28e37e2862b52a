package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePlan() *domain.Plan {
	return &domain.Plan{
		Name: "baseline",
		Profile: domain.Profile{
			CurrentAge:     30,
			TargetAge:      60,
			LifeExpectancy: 90,
		},
		CashFlows: domain.CashFlows{
			MonthlyIncome:       4_000_000,
			MonthlyContribution: 1_000_000,
			MonthlyExpenses:     2_000_000,
		},
		Assumptions: domain.EconomicAssumptions{
			NominalReturn:     0.07,
			Inflation:         0.02,
			PreservationRatio: 1,
		},
	}
}

func TestCompare_Templates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), basePlan(), CompareOptions{
		Templates:  []string{"spend_less_10pct", "save_more_10pct"},
		ConfigPath: "plan.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "baseline", compSet.BaseScenarioName)
	assert.Equal(t, "plan.yaml", compSet.ConfigPath)
	require.NotNil(t, compSet.BaseResult)
	require.NotNil(t, compSet.BaseResult.AchievedAge)
	require.Len(t, compSet.AlternativeResults, 2)

	spendLess := compSet.AlternativeResults[0]
	assert.Equal(t, "baseline_spend_less_10pct", spendLess.ScenarioName)
	assert.Equal(t, "Cut retirement spending by 10%", spendLess.Description)
	assert.True(t, spendLess.FireNumberDiff.IsNegative())
	assert.Equal(t, 1_800_000.0, spendLess.MonthlyExpenses)

	saveMore := compSet.AlternativeResults[1]
	assert.True(t, saveMore.FireNumberDiff.IsZero())
	require.NotNil(t, saveMore.FireAgeDiff)
	assert.LessOrEqual(t, *saveMore.FireAgeDiff, 0.0)
	assert.True(t, saveMore.BalanceDiffFromBase.IsPositive())

	assert.NotEmpty(t, compSet.Recommendations)
}

func TestCompare_TransformSpecs(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Compare(context.Background(), basePlan(), CompareOptions{
		Transforms: []string{"set_preservation_ratio:ratio=0"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "baseline_set_preservation_ratio", alt.ScenarioName)
	assert.Equal(t, 0.0, alt.PreservationRatio)
	assert.True(t, alt.FireNumber.LessThan(compSet.BaseResult.FireNumber))
}

func TestCompare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx := context.Background()

	_, err := engine.Compare(ctx, nil, CompareOptions{})
	assert.Error(t, err)

	_, err = engine.Compare(ctx, basePlan(), CompareOptions{Templates: []string{"retire_yesterday"}})
	assert.ErrorContains(t, err, "template retire_yesterday not found")

	_, err = engine.Compare(ctx, basePlan(), CompareOptions{Transforms: []string{"set_return"}})
	assert.Error(t, err)

	_, err = engine.Compare(ctx, basePlan(), CompareOptions{Transforms: []string{"set_return:rate=5"}})
	assert.ErrorContains(t, err, "validation failed")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Compare(cancelled, basePlan(), CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_BaseIsNotMutated(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	plan := basePlan()

	_, err := engine.Compare(context.Background(), plan, CompareOptions{
		Templates: []string{"postpone_5yr", "lean_fire", "model_depletion"},
	})
	require.NoError(t, err)
	assert.Equal(t, basePlan(), plan)
}

func TestSweep_PreservationRatio(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	compSet, err := engine.Sweep(context.Background(), basePlan(), SweepPreservation, []float64{1, 0.5, 0})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 3)

	names := []string{}
	for i, alt := range compSet.AlternativeResults {
		names = append(names, alt.ScenarioName)
		if i > 0 {
			prev := compSet.AlternativeResults[i-1].FireNumber
			assert.True(t, alt.FireNumber.LessThanOrEqual(prev), "%s should need no more than the previous ratio", alt.ScenarioName)
		}
	}
	assert.Equal(t, []string{"preservation=100%", "preservation=50%", "preservation=0%"}, names)
	assert.True(t, compSet.AlternativeResults[0].FireNumberDiff.IsZero())
}

func TestSweep_OtherParameters(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx := context.Background()

	tests := []struct {
		param  SweepParameter
		values []float64
		check  func(t *testing.T, r ComparisonResult, v float64)
	}{
		{SweepReturn, []float64{0.05, 0.09}, func(t *testing.T, r ComparisonResult, v float64) {
			assert.Equal(t, v, r.NominalReturn)
		}},
		{SweepTargetAge, []float64{50, 65}, func(t *testing.T, r ComparisonResult, v float64) {
			assert.Equal(t, v, r.TargetAge)
		}},
		{SweepContribution, []float64{0, 3_000_000}, func(t *testing.T, r ComparisonResult, v float64) {
			assert.Equal(t, v, r.Report.Plan.CashFlows.MonthlyContribution)
		}},
		{SweepInflation, []float64{0.01, 0.03}, func(t *testing.T, r ComparisonResult, v float64) {
			assert.Equal(t, v, r.Report.Plan.Assumptions.Inflation)
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.param), func(t *testing.T) {
			compSet, err := engine.Sweep(ctx, basePlan(), tt.param, tt.values)
			require.NoError(t, err)
			require.Len(t, compSet.AlternativeResults, len(tt.values))
			for i, v := range tt.values {
				tt.check(t, compSet.AlternativeResults[i], v)
			}
		})
	}
}

func TestSweep_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	ctx := context.Background()

	_, err := engine.Sweep(ctx, basePlan(), "volatility", []float64{1})
	assert.ErrorContains(t, err, "unknown sweep parameter")

	_, err = engine.Sweep(ctx, basePlan(), SweepReturn, nil)
	assert.Error(t, err)

	_, err = engine.Sweep(ctx, nil, SweepReturn, []float64{0.05})
	assert.Error(t, err)

	_, err = engine.Sweep(ctx, basePlan(), SweepPreservation, []float64{1.5})
	assert.Error(t, err)
}

func TestSweepValues(t *testing.T) {
	values, err := SweepValues(0, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, values)

	values, err = SweepValues(0.04, 0.08, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.04}, values)

	_, err = SweepValues(0, 1, 0)
	assert.Error(t, err)
}

package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_Horizon(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		life      float64
		firstAge  float64
		lastAge   float64
		numPoints int
	}{
		{"integer age to 100", 30, 90, 30, 100, 71},
		{"fractional age rounds up", 30.4, 90, 31, 100, 70},
		{"long life extends horizon", 30, 105, 30, 105, 76},
		{"fractional life truncates", 30, 104.5, 30, 104, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := baselinePlan()
			plan.Profile.CurrentAge = tt.current
			plan.Profile.LifeExpectancy = tt.life

			proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, nil, 1e18)

			require.Len(t, proj.Trajectory, tt.numPoints)
			assert.Equal(t, tt.firstAge, proj.Trajectory[0].Age)
			assert.Equal(t, tt.lastAge, proj.Trajectory[len(proj.Trajectory)-1].Age)
			for i := 1; i < len(proj.Trajectory); i++ {
				assert.Equal(t, proj.Trajectory[i-1].Age+1, proj.Trajectory[i].Age)
			}
		})
	}
}

func TestSimulate_FirstSampleIsCurrentSavings(t *testing.T) {
	plan := baselinePlan()
	plan.Profile.CurrentSavings = 12_345

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, nil, 1e18)

	assert.Equal(t, 12_345.0, proj.Trajectory[0].NominalBalance)
	assert.Equal(t, 12_345.0, proj.Trajectory[0].RealBalance)
}

func TestSimulate_AccumulationMatchesClosedForm(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.Inflation = 0

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, nil, 1e18)

	r := 0.07 / 12
	expected := 1_000_000 * (math.Pow(1+r, 12) - 1) / r
	assert.InDelta(t, expected, proj.Trajectory[1].NominalBalance, 1e-3)
	assert.InDelta(t, expected, proj.Trajectory[1].RealBalance, 1e-3)
}

func TestSimulate_ZeroRatesLinear(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.NominalReturn = 0
	plan.Assumptions.Inflation = 0

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, nil, 1e18)

	point, ok := proj.Trajectory.At(60)
	require.True(t, ok)
	assert.Equal(t, 360_000_000.0, point.RealBalance)

	// Spending of 2,000,000 a month drains 24,000,000 a year.
	point, ok = proj.Trajectory.At(61)
	require.True(t, ok)
	assert.Equal(t, 336_000_000.0, point.RealBalance)
	assert.Equal(t, 336_000_000.0, point.NominalBalance)
}

func TestSimulate_PensionReducesWithdrawals(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.NominalReturn = 0
	plan.Assumptions.Inflation = 0
	plan.CashFlows.MonthlyPension = 1_500_000
	plan.CashFlows.PensionStartAge = floatPtr(62)

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, nil, 1e18)

	at62, _ := proj.Trajectory.At(62)
	at63, _ := proj.Trajectory.At(63)
	assert.Equal(t, 360_000_000.0-2*24_000_000, at62.RealBalance)
	assert.Equal(t, at62.RealBalance-6_000_000, at63.RealBalance)
}

func TestSimulate_PensionSurplusDoesNotAddToBalance(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.NominalReturn = 0
	plan.Assumptions.Inflation = 0
	plan.CashFlows.MonthlyPension = 5_000_000

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, nil, 1e18)

	at60, _ := proj.Trajectory.At(60)
	at80, _ := proj.Trajectory.At(80)
	assert.Equal(t, at60.RealBalance, at80.RealBalance)
}

func TestSimulate_NominalWithdrawalsInflate(t *testing.T) {
	plan := baselinePlan()
	plan.Profile.CurrentAge = 60
	plan.Profile.CurrentSavings = 1e12
	plan.Assumptions.NominalReturn = 0
	plan.Assumptions.Inflation = 0.12

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, nil, 1e18)

	// Real withdrawals stay flat while nominal ones grow 1% a month.
	var withdrawn float64
	for m := 0; m < 12; m++ {
		withdrawn += 2_000_000 * math.Pow(1.01, float64(m))
	}
	assert.InDelta(t, 1e12-withdrawn, proj.Trajectory[1].NominalBalance, 1e-2)
	decay := math.Pow(1-0.01, 12)
	assert.InDelta(t, 1e12*decay-2_000_000*(1-decay)/0.01, proj.Trajectory[1].RealBalance, 1)
}

func TestSimulate_EventsApplyAtExactAge(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.NominalReturn = 0
	plan.Assumptions.Inflation = 0.02
	plan.CashFlows.MonthlyContribution = 0
	plan.CashFlows.MonthlyExpenses = 0

	events := []domain.FutureCashEvent{
		{Name: "bonus", Amount: 10_000_000, Age: 40},
		{Name: "never matched", Amount: 99_000_000, Age: 45.5},
	}
	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, events, 1e18)

	at40, _ := proj.Trajectory.At(40)
	at41, _ := proj.Trajectory.At(41)
	at50, _ := proj.Trajectory.At(50)

	assert.Equal(t, 0.0, at40.RealBalance, "sample is taken before the event")
	assert.InDelta(t, 10_000_000*math.Pow(1.02, 10), at41.NominalBalance, 1e-3)
	assert.InDelta(t, 10_000_000*math.Pow(1-0.02/12, 12), at41.RealBalance, 1e-3)
	assert.Less(t, at50.RealBalance, 10_000_000.0)
}

func TestSimulate_BalancesFloorAtZero(t *testing.T) {
	plan := baselinePlan()
	plan.CashFlows.MonthlyContribution = 0
	events := []domain.FutureCashEvent{{Name: "debt", Amount: -1e12, Age: 35}}

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, events, 1e18)

	for _, p := range proj.Trajectory {
		assert.GreaterOrEqual(t, p.RealBalance, 0.0)
		assert.GreaterOrEqual(t, p.NominalBalance, 0.0)
	}
}

func TestSimulate_AchievedAgeOnlyUpToTarget(t *testing.T) {
	plan := baselinePlan()
	plan.CashFlows.MonthlyContribution = 0
	events := []domain.FutureCashEvent{{Name: "windfall", Amount: 1e12, Age: 70}}

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, events, 1e9)

	assert.Nil(t, proj.AchievedAge)
	crossing := proj.Trajectory.FirstCrossing(1e9)
	require.NotNil(t, crossing)
	assert.Equal(t, 71.0, *crossing)
}

func TestSimulate_AlreadyRetiredQualifiesLater(t *testing.T) {
	plan := baselinePlan()
	plan.Profile.CurrentAge = 70
	plan.Profile.TargetAge = 70
	plan.CashFlows.MonthlyExpenses = 0
	events := []domain.FutureCashEvent{{Name: "windfall", Amount: 1e9, Age: 75}}

	proj := Simulate(plan.Profile, plan.CashFlows, plan.Assumptions, events, 5e8)

	require.NotNil(t, proj.AchievedAge)
	assert.Equal(t, 76.0, *proj.AchievedAge)
}

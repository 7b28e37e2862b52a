package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBaseAge(t *testing.T) {
	assert.Equal(t, 60.0, BaseAge(domain.Profile{CurrentAge: 30, TargetAge: 60}))
	assert.Equal(t, 70.0, BaseAge(domain.Profile{CurrentAge: 70, TargetAge: 65}))
}

func TestComputeFireNumber_PerpetuityWithFullPreservation(t *testing.T) {
	plan := baselinePlan()

	fire := ComputeFireNumber(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	// A balance of gap/monthlyRate funds the gap forever, so discounting it
	// back over the horizon returns the same amount.
	assert.InDelta(t, 24_000_000/0.05, fire, 1e-3)
}

func TestComputeFireNumber_ZeroRealReturnUsesMultiple(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.NominalReturn = 0.02
	plan.Assumptions.Inflation = 0.02

	target := ComputeFireTarget(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	assert.Equal(t, 24_000_000.0*25, target.LegacyBalance)
	assert.Equal(t, 24_000_000.0*30+24_000_000*25, target.FireNumber)
}

func TestComputeFireNumber_TinyPositiveRealReturnUsesPerpetuity(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.NominalReturn = 0.0200005
	plan.Assumptions.Inflation = 0.02
	realReturn := plan.Assumptions.RealReturn()

	target := ComputeFireTarget(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	assert.Greater(t, realReturn, 0.0)
	assert.InEpsilon(t, 24_000_000/realReturn, target.LegacyBalance, 1e-12)
	assert.Greater(t, target.LegacyBalance, 24_000_000.0*25)
}

func TestComputeFireNumber_BridgeBeforePension(t *testing.T) {
	plan := baselinePlan()
	plan.Assumptions.NominalReturn = 0.02
	plan.Assumptions.Inflation = 0.02
	plan.Assumptions.PreservationRatio = 0
	plan.CashFlows.MonthlyPension = 500_000
	plan.CashFlows.PensionStartAge = floatPtr(65)

	target := ComputeFireTarget(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	assert.Equal(t, 5.0, target.YearsToPension)
	assert.Equal(t, 25.0, target.YearsAfterPension)
	assert.Equal(t, 18_000_000.0*25, target.AtPensionStart)
	assert.Equal(t, 24_000_000.0*5+18_000_000*25, target.FireNumber)
}

func TestComputeFireNumber_PensionAlreadyStarted(t *testing.T) {
	plan := baselinePlan()
	plan.CashFlows.PensionStartAge = floatPtr(55)

	target := ComputeFireTarget(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	assert.Equal(t, 0.0, target.YearsToPension)
	assert.Equal(t, 30.0, target.YearsAfterPension)
	assert.Equal(t, 55.0, target.PensionStartAge)
}

func TestComputeFireNumber_PreservationRatioScalesLegacy(t *testing.T) {
	plan := baselinePlan()

	full := ComputeFireTarget(plan.Profile, plan.CashFlows, plan.Assumptions, nil)
	plan.Assumptions.PreservationRatio = 0.5
	half := ComputeFireTarget(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	assert.InDelta(t, full.LegacyBalance/2, half.LegacyBalance, 1e-6)
	assert.Less(t, half.FireNumber, full.FireNumber)
}

func TestComputeFireNumber_Events(t *testing.T) {
	plan := baselinePlan()
	base := ComputeFireNumber(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	events := []domain.FutureCashEvent{
		{Name: "inheritance", Amount: 100_000_000, Age: 70},
		{Name: "before retirement", Amount: 999_000_000, Age: 50},
		{Name: "at retirement", Amount: 999_000_000, Age: 60},
		{Name: "care home", Amount: -50_000_000, Age: 80},
	}
	withEvents := ComputeFireNumber(plan.Profile, plan.CashFlows, plan.Assumptions, events)

	expected := base - 100_000_000*math.Pow(1.05, -10) + 50_000_000*math.Pow(1.05, -20)
	assert.InDelta(t, expected, withEvents, 1e-3)
}

func TestComputeFireNumber_SurplusIsNegative(t *testing.T) {
	plan := baselinePlan()
	plan.CashFlows.MonthlyPension = 3_000_000

	target := ComputeFireTarget(plan.Profile, plan.CashFlows, plan.Assumptions, nil)

	assert.Equal(t, 0.0, target.LegacyBalance)
	assert.Less(t, target.FireNumber, 0.0)
}

func TestComputeFireNumber_ExtremeInputsStayFinite(t *testing.T) {
	plans := []domain.Plan{
		{
			Profile:     domain.Profile{CurrentAge: 0, TargetAge: 150, LifeExpectancy: 150},
			CashFlows:   domain.CashFlows{MonthlyExpenses: MaxAmount},
			Assumptions: domain.EconomicAssumptions{NominalReturn: MinReturn, Inflation: MaxInflation, PreservationRatio: 1},
			Events:      []domain.FutureCashEvent{{Amount: MaxAmount, Age: 150}},
		},
		{
			Profile:     domain.Profile{CurrentAge: 20, TargetAge: 21, LifeExpectancy: 150},
			CashFlows:   domain.CashFlows{MonthlyExpenses: MaxAmount},
			Assumptions: domain.EconomicAssumptions{NominalReturn: MaxReturn, Inflation: MinInflation, PreservationRatio: 1},
		},
		{
			Profile:     domain.Profile{CurrentAge: 30, TargetAge: 40, LifeExpectancy: 90},
			CashFlows:   domain.CashFlows{MonthlyExpenses: 1e6},
			Assumptions: domain.EconomicAssumptions{NominalReturn: 0, Inflation: 1e-9, PreservationRatio: 1},
		},
	}

	for _, p := range plans {
		n := NormalizePlan(&p)
		fire := ComputeFireNumber(n.Profile, n.CashFlows, n.Assumptions, n.Events)
		assert.False(t, math.IsNaN(fire))
		assert.False(t, math.IsInf(fire, 0))
	}
}

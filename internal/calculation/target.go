package calculation

import (
	"math"

	"github.com/rgehrsitz/firego/internal/domain"
)

// perpetuityMultiple replaces the perpetuity formula when the real return is
// not positive (the "25x" rule).
const perpetuityMultiple = 25

// FireTarget breaks the required capital down into its components.
type FireTarget struct {
	BaseAge           float64 `json:"baseAge"`
	PensionStartAge   float64 `json:"pensionStartAge"`
	YearsToPension    float64 `json:"yearsToPension"`
	YearsAfterPension float64 `json:"yearsAfterPension"`
	LegacyBalance     float64 `json:"legacyBalance"`
	AtPensionStart    float64 `json:"atPensionStart"`
	EventAdjustment   float64 `json:"eventAdjustment"`
	FireNumber        float64 `json:"fireNumber"`
}

// BaseAge is the age at which the required capital is measured: the target
// retirement age, or today if that age has already passed.
func BaseAge(profile domain.Profile) float64 {
	return math.Max(profile.CurrentAge, profile.TargetAge)
}

// ComputeFireNumber returns the capital, in today's money, required at the base
// age so that spending can be funded to life expectancy while leaving the
// legacy balance implied by the preservation ratio. A negative result means the
// pension and future inflows more than cover the plan.
func ComputeFireNumber(
	profile domain.Profile,
	cashFlows domain.CashFlows,
	assumptions domain.EconomicAssumptions,
	events []domain.FutureCashEvent,
) float64 {
	return ComputeFireTarget(profile, cashFlows, assumptions, events).FireNumber
}

// ComputeFireTarget is ComputeFireNumber with the intermediate values kept.
func ComputeFireTarget(
	profile domain.Profile,
	cashFlows domain.CashFlows,
	assumptions domain.EconomicAssumptions,
	events []domain.FutureCashEvent,
) FireTarget {
	baseAge := BaseAge(profile)
	realReturn := assumptions.RealReturn()
	pensionStart := cashFlows.PensionStart(profile.TargetAge)

	gapWithPension := cashFlows.MonthlyGap()
	gapNoPension := cashFlows.MonthlyExpenses

	actualPensionStart := math.Max(baseAge, pensionStart)
	yearsAfterPension := math.Max(0, profile.LifeExpectancy-actualPensionStart)
	yearsToPension := math.Max(0, pensionStart-baseAge)

	legacy := legacyBalance(gapWithPension*MonthsPerYear, realReturn) * assumptions.PreservationRatio

	atPensionStart := AnnuityPresentValue(realReturn, yearsAfterPension, gapWithPension*MonthsPerYear, legacy)
	fireNumber := AnnuityPresentValue(realReturn, yearsToPension, gapNoPension*MonthsPerYear, atPensionStart)

	var adjustment float64
	base := growthBase(realReturn)
	for _, e := range events {
		if e.Age <= baseAge {
			continue
		}
		adjustment += e.Amount * math.Pow(base, baseAge-e.Age)
	}

	return FireTarget{
		BaseAge:           baseAge,
		PensionStartAge:   pensionStart,
		YearsToPension:    yearsToPension,
		YearsAfterPension: yearsAfterPension,
		LegacyBalance:     legacy,
		AtPensionStart:    atPensionStart,
		EventAdjustment:   adjustment,
		FireNumber:        fireNumber - adjustment,
	}
}

// legacyBalance is the capital whose real return alone funds annualGap forever.
func legacyBalance(annualGap, realReturn float64) float64 {
	if annualGap <= 0 {
		return 0
	}
	if realReturn > 0 {
		return annualGap / realReturn
	}
	return annualGap * perpetuityMultiple
}

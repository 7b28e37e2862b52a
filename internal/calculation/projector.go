package calculation

import (
	"math"

	"github.com/rgehrsitz/firego/internal/domain"
)

// MinHorizonAge is the last age always covered by a projection.
const MinHorizonAge = 100.0

// Projection is the output of Simulate.
type Projection struct {
	Trajectory  domain.Trajectory
	AchievedAge *float64
}

// Simulate projects nominal and real balances year by year from the current
// age to max(MinHorizonAge, life expectancy), stepping monthly inside each
// year. The achieved age is the first sampled age at which the real balance
// covers fireNumber while still at or before the target age; a saver who is
// already retired qualifies at any age.
func Simulate(
	profile domain.Profile,
	cashFlows domain.CashFlows,
	assumptions domain.EconomicAssumptions,
	events []domain.FutureCashEvent,
	fireNumber float64,
) Projection {
	startAge := math.Ceil(profile.CurrentAge)
	endAge := math.Max(MinHorizonAge, profile.LifeExpectancy)
	pensionStart := cashFlows.PensionStart(profile.TargetAge)
	alreadyRetired := profile.AlreadyRetired()

	nominalRate := assumptions.NominalReturn / MonthsPerYear
	realRate := assumptions.RealReturn() / MonthsPerYear
	inflationRate := assumptions.Inflation / MonthsPerYear
	annualInflation := growthBase(assumptions.Inflation)
	monthlyInflation := growthBase(inflationRate)

	gapWithPension := math.Max(0, cashFlows.MonthlyGap())
	gapNoPension := cashFlows.MonthlyExpenses

	nominalBal := profile.CurrentSavings
	realBal := profile.CurrentSavings

	var trajectory domain.Trajectory
	if endAge >= startAge {
		trajectory = make(domain.Trajectory, 0, int(endAge-startAge)+1)
	}
	var achieved *float64

	for age := startAge; age <= endAge; age++ {
		trajectory = append(trajectory, domain.Point{
			Age:            age,
			NominalBalance: nominalBal,
			RealBalance:    realBal,
		})

		if achieved == nil && realBal >= fireNumber && (age <= profile.TargetAge || alreadyRetired) {
			a := age
			achieved = &a
		}

		for _, e := range events {
			if e.Age != age {
				continue
			}
			nominalBal += e.Amount * math.Pow(annualInflation, age-profile.CurrentAge)
			realBal += e.Amount
		}

		for m := 0; m < MonthsPerYear; m++ {
			monthAge := age + float64(m)/MonthsPerYear
			if monthAge < profile.TargetAge {
				nominalBal = nominalBal*(1+nominalRate) + cashFlows.MonthlyContribution
				realBal = realBal*(1+realRate) + cashFlows.MonthlyContribution
				continue
			}

			gap := gapNoPension
			if monthAge >= pensionStart {
				gap = gapWithPension
			}
			elapsed := (age-profile.CurrentAge)*MonthsPerYear + float64(m)
			nominalBal = nominalBal*(1+nominalRate) - gap*math.Pow(monthlyInflation, elapsed)
			realBal = realBal*(1+realRate) - gap
		}

		nominalBal = math.Max(0, nominalBal)
		realBal = math.Max(0, realBal)
	}

	return Projection{Trajectory: trajectory, AchievedAge: achieved}
}

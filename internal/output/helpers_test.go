package output

import "github.com/rgehrsitz/firego/internal/domain"

func ptr(v float64) *float64 { return &v }

// sampleReport is an on-track plan with a pension bridge and two events.
func sampleReport() *domain.Report {
	var trajectory domain.Trajectory
	for age := 35.0; age <= 55; age++ {
		balance := 100_000_000 + (age-35)*50_000_000
		trajectory = append(trajectory, domain.Point{Age: age, NominalBalance: balance * 1.1, RealBalance: balance})
	}

	return &domain.Report{
		Plan: domain.Plan{
			Name: "sample",
			Profile: domain.Profile{
				CurrentAge:     35,
				TargetAge:      55,
				LifeExpectancy: 90,
				CurrentSavings: 100_000_000,
			},
			CashFlows: domain.CashFlows{
				MonthlyIncome:       5_000_000,
				MonthlyContribution: 2_000_000,
				MonthlyExpenses:     3_000_000,
				MonthlyPension:      1_000_000,
				PensionStartAge:     ptr(65),
			},
			Assumptions: domain.EconomicAssumptions{NominalReturn: 0.07, Inflation: 0.02, PreservationRatio: 1},
			Events: []domain.FutureCashEvent{
				{Name: "house", Amount: -50_000_000, Age: 60},
				{Name: "inheritance", Amount: 30_000_000, Age: 45},
			},
		},
		Result: domain.Result{
			FireNumber:      800_000_000,
			Trajectory:      trajectory,
			AchievedAge:     ptr(49),
			BaseAge:         55,
			RealReturn:      0.05,
			PensionStartAge: 65,
			MonthlyGap:      2_000_000,
			BridgeYears:     10,
			SavingsRate:     40,
			Progress:        12.5,
			YearsToFire:     ptr(14),
			Status:          domain.StatusOnTrack,
		},
	}
}

// shortfallReport misses the target and carries every suggestion lever.
func shortfallReport(extraReturn float64, achievable *float64) *domain.Report {
	r := sampleReport()
	r.Plan.Assumptions.PreservationRatio = 0.5
	r.Result.AchievedAge = nil
	r.Result.YearsToFire = nil
	r.Result.Status = domain.StatusShortfall
	r.Result.BridgeYears = 0
	r.Result.Suggestion = &domain.Suggestion{
		ExtraMonthly:  ptr(1_250_000),
		ExtraReturn:   ptr(extraReturn),
		AchievableAge: achievable,
	}
	return r
}

package calculation

import (
	"math"

	"github.com/rgehrsitz/firego/internal/domain"
)

// Bounds applied by NormalizePlan. The engine never rejects input; anything
// outside these ranges is clamped so every projection stays finite.
const (
	MaxAge        = 150.0
	MaxAmount     = 1e15
	MinReturn     = -0.5
	MaxReturn     = 1.0
	MinInflation  = -0.5
	MaxInflation  = 0.5
	minGrowthBase = 1e-3
)

// NormalizePlan returns a sanitized copy of plan:
//   - NaN and infinite numbers become 0
//   - amounts are capped at MaxAmount and non-negative except event amounts
//   - ages lie in [0, MaxAge] with current <= target <= life expectancy
//   - rates and the preservation ratio are clamped to their supported ranges
//
// The input plan is not modified.
func NormalizePlan(plan *domain.Plan) domain.Plan {
	if plan == nil {
		return domain.Plan{}
	}
	out := *plan.DeepCopy()

	p := &out.Profile
	p.CurrentAge = clamp(finite(p.CurrentAge), 0, MaxAge)
	p.TargetAge = clamp(finite(p.TargetAge), p.CurrentAge, MaxAge)
	p.LifeExpectancy = clamp(finite(p.LifeExpectancy), p.TargetAge, MaxAge)
	p.CurrentSavings = clamp(finite(p.CurrentSavings), 0, MaxAmount)

	c := &out.CashFlows
	c.MonthlyIncome = clamp(finite(c.MonthlyIncome), 0, MaxAmount)
	c.MonthlyContribution = clamp(finite(c.MonthlyContribution), 0, MaxAmount)
	c.MonthlyExpenses = clamp(finite(c.MonthlyExpenses), 0, MaxAmount)
	c.MonthlyPension = clamp(finite(c.MonthlyPension), 0, MaxAmount)
	if c.PensionStartAge != nil {
		age := clamp(finite(*c.PensionStartAge), 0, MaxAge)
		c.PensionStartAge = &age
	}

	a := &out.Assumptions
	a.NominalReturn = clamp(finite(a.NominalReturn), MinReturn, MaxReturn)
	a.Inflation = clamp(finite(a.Inflation), MinInflation, MaxInflation)
	a.PreservationRatio = clamp(finite(a.PreservationRatio), 0, 1)

	for i := range out.Events {
		e := &out.Events[i]
		e.Amount = clamp(finite(e.Amount), -MaxAmount, MaxAmount)
		e.Age = clamp(finite(e.Age), 0, MaxAge)
	}

	return out
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

package compare

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single plan variant with calculated metrics
type ComparisonResult struct {
	ScenarioName string         `json:"scenarioName"`
	Description  string         `json:"description"`
	Report       *domain.Report `json:"-"`

	// Key Metrics
	FireNumber         decimal.Decimal `json:"fireNumber"`
	AchievedAge        *float64        `json:"achievedAge"`
	AchievableAge      *float64        `json:"achievableAge,omitempty"`
	BalanceAtTarget    decimal.Decimal `json:"balanceAtTarget"` // real
	BalanceAtLife      decimal.Decimal `json:"balanceAtLife"`   // real
	ExtraMonthlyNeeded decimal.Decimal `json:"extraMonthlyNeeded"`
	Progress           decimal.Decimal `json:"progress"`
	Status             domain.Status   `json:"status"`

	// Comparison to Base
	FireNumberDiff      decimal.Decimal `json:"fireNumberDiff"`
	FireAgeDiff         *float64        `json:"fireAgeDiff,omitempty"`
	BalanceDiffFromBase decimal.Decimal `json:"balanceDiffFromBase"`
	BalancePctFromBase  decimal.Decimal `json:"balancePctFromBase"`
	ExtraMonthlyDiff    decimal.Decimal `json:"extraMonthlyDiff"`

	// Plan specifics for display
	TargetAge         float64 `json:"targetAge"`
	MonthlyExpenses   float64 `json:"monthlyExpenses"`
	NominalReturn     float64 `json:"nominalReturn"`
	PreservationRatio float64 `json:"preservationRatio"`
}

// FireAge is the age the target is first met: the achieved age if any,
// otherwise the later achievable age. ok is false when neither exists.
func (r ComparisonResult) FireAge() (float64, bool) {
	if r.AchievedAge != nil {
		return *r.AchievedAge, true
	}
	if r.AchievableAge != nil {
		return *r.AchievableAge, true
	}
	return 0, false
}

// ComparisonSet represents a collection of plan comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a report
func (mc *MetricsCalculator) CalculateMetrics(report *domain.Report) ComparisonResult {
	plan, res := report.Plan, report.Result

	result := ComparisonResult{
		ScenarioName:      plan.Name,
		Report:            report,
		FireNumber:        money(res.FireNumber),
		AchievedAge:       res.AchievedAge,
		BalanceAtTarget:   money(balanceAtOrAfter(res.Trajectory, plan.Profile.TargetAge)),
		BalanceAtLife:     money(balanceAtOrBefore(res.Trajectory, plan.Profile.LifeExpectancy)),
		Progress:          decimal.NewFromFloat(res.Progress).Round(1),
		Status:            res.Status,
		TargetAge:         plan.Profile.TargetAge,
		MonthlyExpenses:   plan.CashFlows.MonthlyExpenses,
		NominalReturn:     plan.Assumptions.NominalReturn,
		PreservationRatio: plan.Assumptions.PreservationRatio,
	}

	if s := res.Suggestion; s != nil {
		result.AchievableAge = s.AchievableAge
		if s.ExtraMonthly != nil {
			result.ExtraMonthlyNeeded = money(*s.ExtraMonthly)
		}
	}

	return result
}

// CalculateComparison computes comparison metrics between a variant and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.FireNumberDiff = scenario.FireNumber.Sub(base.FireNumber)
	scenario.BalanceDiffFromBase = scenario.BalanceAtTarget.Sub(base.BalanceAtTarget)

	if !base.BalanceAtTarget.IsZero() {
		scenario.BalancePctFromBase = scenario.BalanceDiffFromBase.
			Div(base.BalanceAtTarget).
			Mul(decimal.NewFromInt(100))
	}

	scenario.ExtraMonthlyDiff = scenario.ExtraMonthlyNeeded.Sub(base.ExtraMonthlyNeeded)

	scenario.FireAgeDiff = nil
	if altAge, ok := scenario.FireAge(); ok {
		if baseAge, ok := base.FireAge(); ok {
			diff := altAge - baseAge
			scenario.FireAgeDiff = &diff
		}
	}

	return scenario
}

// balanceAtOrAfter returns the real balance of the first sample at or after age.
func balanceAtOrAfter(t domain.Trajectory, age float64) float64 {
	for _, p := range t {
		if p.Age >= age {
			return p.RealBalance
		}
	}
	if len(t) > 0 {
		return t[len(t)-1].RealBalance
	}
	return 0
}

// balanceAtOrBefore returns the real balance of the last sample at or before age.
func balanceAtOrBefore(t domain.Trajectory, age float64) float64 {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Age <= age {
			return t[i].RealBalance
		}
	}
	if len(t) > 0 {
		return t[0].RealBalance
	}
	return 0
}

// money rounds a float amount to whole currency units.
func money(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f).Round(0)
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Earliest independence
	best := base
	bestAge, bestOK := base.FireAge()
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		age, ok := alt.FireAge()
		if ok && (!bestOK || age < bestAge) {
			best, bestAge, bestOK = alt, age, true
		}
	}
	if best != base {
		if baseAge, ok := base.FireAge(); ok {
			recommendations = append(recommendations,
				fmt.Sprintf("Earliest FIRE: %s reaches the target at age %.0f, %.0f years earlier than base",
					best.ScenarioName, bestAge, baseAge-bestAge))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Earliest FIRE: %s reaches the target at age %.0f; the base plan never does",
					best.ScenarioName, bestAge))
		}
	}

	// Smallest required capital
	smallest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FireNumber.LessThan(smallest.FireNumber) {
			smallest = alt
		}
	}
	if smallest != base {
		recommendations = append(recommendations,
			"Smallest Target: "+smallest.ScenarioName+" needs "+
				formatDecimal(base.FireNumber.Sub(smallest.FireNumber))+" less capital than base")
	}

	// Largest balance left at life expectancy
	richest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.BalanceAtLife.GreaterThan(richest.BalanceAtLife) {
			richest = alt
		}
	}
	if richest != base {
		recommendations = append(recommendations,
			"Largest Cushion: "+richest.ScenarioName+" leaves "+
				formatDecimal(richest.BalanceAtLife.Sub(base.BalanceAtLife))+" more at life expectancy")
	}

	return recommendations
}

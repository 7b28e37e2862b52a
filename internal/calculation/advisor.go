package calculation

import (
	"math"

	"github.com/rgehrsitz/firego/internal/domain"
)

// NeedsSuggestion reports whether remedies should be computed: the target was
// not reached by the target age and current savings do not already cover it.
func NeedsSuggestion(achievedAge *float64, targetAge, currentSavings, fireNumber float64) bool {
	if achievedAge != nil && *achievedAge <= targetAge {
		return false
	}
	return currentSavings < fireNumber
}

// Suggest computes independent single-lever remedies for a missed target:
// an extra monthly contribution, or the annual growth rate that would turn the
// balance expected at the target age into fireNumber. It returns nil when no
// time is left before the target age or savings already cover the target.
func Suggest(
	profile domain.Profile,
	trajectory domain.Trajectory,
	fireNumber float64,
	realReturn float64,
	currentSavings float64,
	targetAge float64,
) *domain.Suggestion {
	yearsLeft := targetAge - profile.CurrentAge
	if yearsLeft <= 0 || currentSavings >= fireNumber {
		return nil
	}

	var expectedAtTarget float64
	if p, ok := trajectory.At(targetAge); ok {
		expectedAtTarget = p.RealBalance
	}

	suggestion := &domain.Suggestion{}

	shortfall := math.Max(0, fireNumber-expectedAtTarget)
	monthlyRate := realReturn / MonthsPerYear
	if shortfall > 0 && monthlyRate > 0 {
		extra := SinkingFundPayment(shortfall, monthlyRate, yearsLeft*MonthsPerYear)
		suggestion.ExtraMonthly = &extra
	}

	if expectedAtTarget > 0 && expectedAtTarget < fireNumber {
		extra := RequiredGrowthRate(expectedAtTarget, fireNumber, yearsLeft) * 100
		suggestion.ExtraReturn = &extra
	}

	suggestion.AchievableAge = trajectory.FirstCrossing(fireNumber)
	suggestion.NeverReached = suggestion.ExtraMonthly == nil && suggestion.ExtraReturn == nil

	return suggestion
}

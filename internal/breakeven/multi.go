package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/firego/internal/domain"
)

// OptimizeMultiDimensional solves every single-parameter target against the
// same base plan. Each result is an independent lever, not a combined plan.
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	basePlan *domain.Plan,
	constraints Constraints,
) (*MultiDimensionalResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	var results []OptimizationResult
	var lastErr error

	for _, target := range Targets() {
		req := OptimizationRequest{
			BasePlan:      basePlan,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		results = append(results, *result)
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no optimizations completed",
			Cause:     lastErr,
		}
	}

	md := &MultiDimensionalResult{Results: results}
	md.Recommendations = generateMultiDimensionalRecommendations(md)
	return md, nil
}

// generateMultiDimensionalRecommendations turns each successful lever into a
// one-line action.
func generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string
	failed := 0

	for _, res := range result.Results {
		if !res.Success {
			failed++
			continue
		}
		switch {
		case res.OptimalContribution != nil:
			if res.DiffFromBase.IsPositive() {
				recommendations = append(recommendations, fmt.Sprintf("Save %s more per month (%s total)",
					formatShort(res.DiffFromBase), formatShort(*res.OptimalContribution)))
			} else {
				recommendations = append(recommendations, fmt.Sprintf("Current saving already suffices; %s per month is the minimum",
					formatShort(*res.OptimalContribution)))
			}
		case res.OptimalRetirementAge != nil:
			if res.DiffFromBase.IsPositive() {
				recommendations = append(recommendations, fmt.Sprintf("Retire at %.1f, %s years later than planned",
					*res.OptimalRetirementAge, res.DiffFromBase.StringFixed(1)))
			} else {
				recommendations = append(recommendations, fmt.Sprintf("Retirement at %.1f is already reachable",
					*res.OptimalRetirementAge))
			}
		case res.OptimalReturn != nil:
			recommendations = append(recommendations, fmt.Sprintf("Requires at least %s%% nominal return",
				res.OptimalReturn.Shift(2).StringFixed(2)))
		case res.OptimalExpenses != nil:
			if res.DiffFromBase.IsNegative() {
				recommendations = append(recommendations, fmt.Sprintf("Cut spending by %s per month (to %s)",
					formatShort(res.DiffFromBase.Abs()), formatShort(*res.OptimalExpenses)))
			} else {
				recommendations = append(recommendations, fmt.Sprintf("Spending can rise to %s per month",
					formatShort(*res.OptimalExpenses)))
			}
		}
	}

	if failed == len(result.Results) {
		recommendations = append(recommendations, "No single lever reaches the target within bounds; combine changes")
	}

	return recommendations
}

// OptimizeAllTargets is OptimizeMultiDimensional with default constraints
func (s *Solver) OptimizeAllTargets(ctx context.Context, basePlan *domain.Plan) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, basePlan, Constraints{})
}

package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/transform"
	"github.com/shopspring/decimal"
)

// SweepParameter names a plan input that Sweep can vary.
type SweepParameter string

const (
	SweepPreservation SweepParameter = "preservation"
	SweepReturn       SweepParameter = "return"
	SweepInflation    SweepParameter = "inflation"
	SweepContribution SweepParameter = "contribution"
	SweepTargetAge    SweepParameter = "target-age"
)

// SweepParameters lists the supported parameters.
func SweepParameters() []SweepParameter {
	return []SweepParameter{SweepPreservation, SweepReturn, SweepInflation, SweepContribution, SweepTargetAge}
}

// SweepValues returns steps evenly spaced values from from to to inclusive.
func SweepValues(from, to float64, steps int) ([]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", steps)
	}
	if steps == 1 {
		return []float64{from}, nil
	}
	values := make([]float64, steps)
	step := (to - from) / float64(steps-1)
	for i := range values {
		values[i] = from + step*float64(i)
	}
	values[steps-1] = to
	return values, nil
}

// Sweep runs the plan once per value of a single parameter. Each value
// becomes an alternative compared against the unmodified plan.
func (ce *CompareEngine) Sweep(
	ctx context.Context,
	plan *domain.Plan,
	parameter SweepParameter,
	values []float64,
) (*ComparisonSet, error) {
	if plan == nil {
		return nil, fmt.Errorf("base plan cannot be nil")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("sweep requires at least one value")
	}

	baseReport, err := ce.CalcEngine.Run(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseReport)
	baseResult.Description = "Base plan"

	alternatives := make([]ComparisonResult, 0, len(values))
	for _, v := range values {
		tr, err := sweepTransform(parameter, plan, v)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(plan, []transform.PlanTransform{tr})
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", parameter, v, err)
		}
		modified.Name = fmt.Sprintf("%s=%s", parameter, formatSweepValue(parameter, v))

		alt, err := ce.runVariant(ctx, modified, tr.Description(), baseResult)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%g: %w", parameter, v, err)
		}
		alternatives = append(alternatives, alt)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   plan.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

func sweepTransform(parameter SweepParameter, plan *domain.Plan, v float64) (transform.PlanTransform, error) {
	d := decimal.NewFromFloat(v)
	switch SweepParameter(strings.ToLower(string(parameter))) {
	case SweepPreservation:
		return &transform.SetPreservationRatio{Ratio: d}, nil
	case SweepReturn:
		return &transform.SetReturn{Rate: d}, nil
	case SweepInflation:
		return &transform.SetInflation{Rate: d}, nil
	case SweepContribution:
		current := decimal.NewFromFloat(plan.CashFlows.MonthlyContribution)
		return &transform.AdjustContribution{Delta: d.Sub(current)}, nil
	case SweepTargetAge:
		return &transform.SetRetirementAge{Age: v}, nil
	default:
		return nil, fmt.Errorf("unknown sweep parameter: %s", parameter)
	}
}

func formatSweepValue(parameter SweepParameter, v float64) string {
	switch parameter {
	case SweepPreservation, SweepReturn, SweepInflation:
		return decimal.NewFromFloat(v * 100).Round(2).String() + "%"
	default:
		return decimal.NewFromFloat(v).Round(2).String()
	}
}

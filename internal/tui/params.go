package tui

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/transform"
	"github.com/rgehrsitz/firego/internal/tui/scenes"
)

// parameterTransform maps a slider edit to the transform that applies it
func parameterTransform(key string, value float64) (transform.PlanTransform, error) {
	d := decimal.NewFromFloat(value)
	switch key {
	case scenes.ParamReturn:
		return &transform.SetReturn{Rate: d}, nil
	case scenes.ParamInflation:
		return &transform.SetInflation{Rate: d}, nil
	case scenes.ParamPreservation:
		return &transform.SetPreservationRatio{Ratio: d}, nil
	case scenes.ParamContribution:
		return &transform.SetContribution{Amount: d}, nil
	case scenes.ParamExpenses:
		return &transform.SetExpenses{Amount: d}, nil
	case scenes.ParamTargetAge:
		return &transform.SetRetirementAge{Age: value}, nil
	default:
		return nil, fmt.Errorf("unknown parameter: %s", key)
	}
}

func applyParameter(plan *domain.Plan, key string, value float64) (*domain.Plan, error) {
	tr, err := parameterTransform(key, value)
	if err != nil {
		return nil, err
	}
	return transform.ApplyTransforms(plan, []transform.PlanTransform{tr})
}

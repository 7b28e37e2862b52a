package transform

import (
	"fmt"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minReturn    = decimal.NewFromFloat(-0.5)
	maxReturn    = decimal.NewFromInt(1)
	minInflation = decimal.NewFromFloat(-0.5)
	maxInflation = decimal.NewFromFloat(0.5)
	hundred      = decimal.NewFromInt(100)
)

// SetReturn replaces the expected nominal annual return.
type SetReturn struct {
	Rate decimal.Decimal // e.g. 0.07 for 7%
}

func (sr *SetReturn) Name() string {
	return "set_return"
}

func (sr *SetReturn) Description() string {
	return fmt.Sprintf("Set expected return to %s%%", sr.Rate.Mul(hundred).StringFixed(1))
}

func (sr *SetReturn) Validate(base *domain.Plan) error {
	if sr.Rate.LessThan(minReturn) || sr.Rate.GreaterThan(maxReturn) {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("return must be between -0.5 and 1, got %s", sr.Rate), nil)
	}
	return requirePlan(sr.Name(), base)
}

func (sr *SetReturn) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Assumptions.NominalReturn = sr.Rate.InexactFloat64()
	return modified, nil
}

// AdjustReturn shifts the expected nominal return by a delta (0.01 is +1pp).
type AdjustReturn struct {
	Delta decimal.Decimal
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	sign := "+"
	if ar.Delta.IsNegative() {
		sign = ""
	}
	return fmt.Sprintf("Shift expected return by %s%spp", sign, ar.Delta.Mul(hundred).StringFixed(1))
}

func (ar *AdjustReturn) Validate(base *domain.Plan) error {
	if err := requirePlan(ar.Name(), base); err != nil {
		return err
	}
	next := decimal.NewFromFloat(base.Assumptions.NominalReturn).Add(ar.Delta)
	if next.LessThan(minReturn) || next.GreaterThan(maxReturn) {
		return NewTransformError(ar.Name(), "validate", fmt.Sprintf("resulting return %s is out of range", next), nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Assumptions.NominalReturn = decimal.NewFromFloat(modified.Assumptions.NominalReturn).Add(ar.Delta).InexactFloat64()
	return modified, nil
}

// SetInflation changes the general inflation rate assumption.
type SetInflation struct {
	Rate decimal.Decimal
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Change inflation rate to %s%%", si.Rate.Mul(hundred).StringFixed(1))
}

func (si *SetInflation) Validate(base *domain.Plan) error {
	if si.Rate.LessThan(minInflation) || si.Rate.GreaterThan(maxInflation) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("inflation rate must be between -0.5 and 0.5, got %s", si.Rate), nil)
	}
	return requirePlan(si.Name(), base)
}

func (si *SetInflation) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Assumptions.Inflation = si.Rate.InexactFloat64()
	return modified, nil
}

// SetPreservationRatio selects how much of the legacy principal survives life expectancy.
type SetPreservationRatio struct {
	Ratio decimal.Decimal
}

func (sp *SetPreservationRatio) Name() string {
	return "set_preservation_ratio"
}

func (sp *SetPreservationRatio) Description() string {
	return fmt.Sprintf("Preserve %s%% of principal", sp.Ratio.Mul(hundred).StringFixed(0))
}

func (sp *SetPreservationRatio) Validate(base *domain.Plan) error {
	if sp.Ratio.IsNegative() || sp.Ratio.GreaterThan(decimal.NewFromInt(1)) {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("ratio must be between 0 and 1, got %s", sp.Ratio), nil)
	}
	return requirePlan(sp.Name(), base)
}

func (sp *SetPreservationRatio) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Assumptions.PreservationRatio = sp.Ratio.InexactFloat64()
	return modified, nil
}

// AdjustInflation shifts the inflation assumption by a delta.
type AdjustInflation struct {
	Delta decimal.Decimal
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Shift inflation by %spp", ai.Delta.Mul(hundred).StringFixed(1))
}

func (ai *AdjustInflation) Validate(base *domain.Plan) error {
	if err := requirePlan(ai.Name(), base); err != nil {
		return err
	}
	next := decimal.NewFromFloat(base.Assumptions.Inflation).Add(ai.Delta)
	if next.LessThan(minInflation) || next.GreaterThan(maxInflation) {
		return NewTransformError(ai.Name(), "validate", fmt.Sprintf("resulting inflation %s is out of range", next), nil)
	}
	return nil
}

func (ai *AdjustInflation) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Assumptions.Inflation = decimal.NewFromFloat(modified.Assumptions.Inflation).Add(ai.Delta).InexactFloat64()
	return modified, nil
}

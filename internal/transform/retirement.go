package transform

import (
	"fmt"

	"github.com/rgehrsitz/firego/internal/domain"
)

// PostponeRetirement moves the target retirement age later by a number of months.
// This is the "work one more year" lever.
type PostponeRetirement struct {
	Months int
}

func (pt *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pt *PostponeRetirement) Description() string {
	return fmt.Sprintf("Postpone retirement by %d months", pt.Months)
}

func (pt *PostponeRetirement) Validate(base *domain.Plan) error {
	if pt.Months < 0 {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", pt.Months), nil)
	}
	if err := requirePlan(pt.Name(), base); err != nil {
		return err
	}
	if base.Profile.TargetAge+float64(pt.Months)/12 > base.Profile.LifeExpectancy {
		return NewTransformError(pt.Name(), "validate", "postponed retirement would start after life expectancy", nil)
	}
	return nil
}

func (pt *PostponeRetirement) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Profile.TargetAge += float64(pt.Months) / 12
	return modified, nil
}

// SetRetirementAge sets the target retirement age to an absolute value.
type SetRetirementAge struct {
	Age float64
}

func (sr *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sr *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %.1f", sr.Age)
}

func (sr *SetRetirementAge) Validate(base *domain.Plan) error {
	if err := requirePlan(sr.Name(), base); err != nil {
		return err
	}
	if sr.Age < base.Profile.CurrentAge || sr.Age > base.Profile.LifeExpectancy {
		return NewTransformError(sr.Name(), "validate",
			fmt.Sprintf("age must be between %.1f and %.1f, got %.1f", base.Profile.CurrentAge, base.Profile.LifeExpectancy, sr.Age), nil)
	}
	return nil
}

func (sr *SetRetirementAge) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Profile.TargetAge = sr.Age
	return modified, nil
}

// DelayPension pushes the pension start age later by a number of months. A plan
// without an explicit start age is treated as starting at retirement.
type DelayPension struct {
	Months int
}

func (dp *DelayPension) Name() string {
	return "delay_pension"
}

func (dp *DelayPension) Description() string {
	return fmt.Sprintf("Delay pension start by %d months", dp.Months)
}

func (dp *DelayPension) Validate(base *domain.Plan) error {
	if dp.Months < 0 {
		return NewTransformError(dp.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", dp.Months), nil)
	}
	if err := requirePlan(dp.Name(), base); err != nil {
		return err
	}
	if base.CashFlows.MonthlyPension <= 0 {
		return NewTransformError(dp.Name(), "validate", "plan has no pension to delay", nil)
	}
	return nil
}

func (dp *DelayPension) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	start := modified.CashFlows.PensionStart(modified.Profile.TargetAge) + float64(dp.Months)/12
	modified.CashFlows.PensionStartAge = &start
	return modified, nil
}

// SetPension replaces the monthly pension and optionally its start age.
type SetPension struct {
	Monthly  float64
	StartAge *float64
}

func (sp *SetPension) Name() string {
	return "set_pension"
}

func (sp *SetPension) Description() string {
	if sp.StartAge != nil {
		return fmt.Sprintf("Pension of %.0f per month from age %.1f", sp.Monthly, *sp.StartAge)
	}
	return fmt.Sprintf("Pension of %.0f per month", sp.Monthly)
}

func (sp *SetPension) Validate(base *domain.Plan) error {
	if sp.Monthly < 0 {
		return NewTransformError(sp.Name(), "validate", "monthly pension cannot be negative", nil)
	}
	if sp.StartAge != nil && *sp.StartAge < 0 {
		return NewTransformError(sp.Name(), "validate", "start age cannot be negative", nil)
	}
	return requirePlan(sp.Name(), base)
}

func (sp *SetPension) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.CashFlows.MonthlyPension = sp.Monthly
	if sp.StartAge != nil {
		age := *sp.StartAge
		modified.CashFlows.PensionStartAge = &age
	}
	return modified, nil
}

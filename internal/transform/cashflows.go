package transform

import (
	"fmt"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustContribution adds a fixed amount to the monthly contribution.
// Negative deltas reduce saving but never below zero.
type AdjustContribution struct {
	Delta decimal.Decimal
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	return fmt.Sprintf("Change monthly contribution by %s", ac.Delta.StringFixed(0))
}

func (ac *AdjustContribution) Validate(base *domain.Plan) error {
	return requirePlan(ac.Name(), base)
}

func (ac *AdjustContribution) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	next := decimal.NewFromFloat(modified.CashFlows.MonthlyContribution).Add(ac.Delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	modified.CashFlows.MonthlyContribution = next.InexactFloat64()
	return modified, nil
}

// SetContribution replaces the monthly contribution.
type SetContribution struct {
	Amount decimal.Decimal
}

func (sc *SetContribution) Name() string {
	return "set_contribution"
}

func (sc *SetContribution) Description() string {
	return fmt.Sprintf("Save %s per month", sc.Amount.StringFixed(0))
}

func (sc *SetContribution) Validate(base *domain.Plan) error {
	if sc.Amount.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", sc.Amount), nil)
	}
	return requirePlan(sc.Name(), base)
}

func (sc *SetContribution) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.CashFlows.MonthlyContribution = sc.Amount.InexactFloat64()
	return modified, nil
}

// ScaleContribution multiplies the monthly contribution (1.1 saves 10% more).
type ScaleContribution struct {
	Factor decimal.Decimal
}

func (sc *ScaleContribution) Name() string {
	return "scale_contribution"
}

func (sc *ScaleContribution) Description() string {
	return fmt.Sprintf("Scale monthly contribution by %s", sc.Factor.String())
}

func (sc *ScaleContribution) Validate(base *domain.Plan) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return requirePlan(sc.Name(), base)
}

func (sc *ScaleContribution) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.CashFlows.MonthlyContribution = decimal.NewFromFloat(modified.CashFlows.MonthlyContribution).Mul(sc.Factor).InexactFloat64()
	return modified, nil
}

// ScaleExpenses multiplies retirement spending (0.9 spends 10% less).
type ScaleExpenses struct {
	Factor decimal.Decimal
}

func (se *ScaleExpenses) Name() string {
	return "scale_expenses"
}

func (se *ScaleExpenses) Description() string {
	return fmt.Sprintf("Scale monthly expenses by %s", se.Factor.String())
}

func (se *ScaleExpenses) Validate(base *domain.Plan) error {
	if se.Factor.IsNegative() {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", se.Factor), nil)
	}
	return requirePlan(se.Name(), base)
}

func (se *ScaleExpenses) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.CashFlows.MonthlyExpenses = decimal.NewFromFloat(modified.CashFlows.MonthlyExpenses).Mul(se.Factor).InexactFloat64()
	return modified, nil
}

// SetExpenses replaces monthly retirement spending in today's money.
type SetExpenses struct {
	Amount decimal.Decimal
}

func (se *SetExpenses) Name() string {
	return "set_expenses"
}

func (se *SetExpenses) Description() string {
	return fmt.Sprintf("Spend %s per month", se.Amount.StringFixed(0))
}

func (se *SetExpenses) Validate(base *domain.Plan) error {
	if se.Amount.IsNegative() {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", se.Amount), nil)
	}
	return requirePlan(se.Name(), base)
}

func (se *SetExpenses) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.CashFlows.MonthlyExpenses = se.Amount.InexactFloat64()
	return modified, nil
}

// AddCashEvent appends a one-time inflow (positive) or outflow (negative).
type AddCashEvent struct {
	EventName string
	Amount    decimal.Decimal
	Age       float64
}

func (ae *AddCashEvent) Name() string {
	return "add_cash_event"
}

func (ae *AddCashEvent) Description() string {
	return fmt.Sprintf("Add %s of %s at age %.0f", ae.EventName, ae.Amount.StringFixed(0), ae.Age)
}

func (ae *AddCashEvent) Validate(base *domain.Plan) error {
	if ae.Amount.IsZero() {
		return NewTransformError(ae.Name(), "validate", "amount cannot be zero", nil)
	}
	if err := requirePlan(ae.Name(), base); err != nil {
		return err
	}
	if ae.Age < base.Profile.CurrentAge {
		return NewTransformError(ae.Name(), "validate",
			fmt.Sprintf("age %.1f is before current age %.1f", ae.Age, base.Profile.CurrentAge), nil)
	}
	return nil
}

func (ae *AddCashEvent) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	name := ae.EventName
	if name == "" {
		name = "what-if event"
	}
	modified.Events = append(modified.Events, domain.FutureCashEvent{
		Name:   name,
		Amount: ae.Amount.InexactFloat64(),
		Age:    ae.Age,
	})
	return modified, nil
}

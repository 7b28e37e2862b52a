package breakeven

import (
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which plan input the solver varies
type OptimizationTarget string

const (
	OptimizeContribution  OptimizationTarget = "contribution"   // smallest monthly saving
	OptimizeRetirementAge OptimizationTarget = "retirement_age" // earliest retirement age
	OptimizeReturn        OptimizationTarget = "return"         // lowest nominal return
	OptimizeExpenses      OptimizationTarget = "expenses"       // largest sustainable spending
	OptimizeAll           OptimizationTarget = "all"
)

// Targets lists the single-parameter targets in solve order
func Targets() []OptimizationTarget {
	return []OptimizationTarget{OptimizeContribution, OptimizeRetirementAge, OptimizeReturn, OptimizeExpenses}
}

// Constraints define bounds for optimization parameters. Unset bounds fall
// back to defaults derived from the plan.
type Constraints struct {
	MinContribution *decimal.Decimal `json:"min_contribution,omitempty"`
	MaxContribution *decimal.Decimal `json:"max_contribution,omitempty"`

	MinRetirementAge *float64 `json:"min_retirement_age,omitempty"`
	MaxRetirementAge *float64 `json:"max_retirement_age,omitempty"`

	// Nominal return as a fraction, e.g. 0.07 for 7%
	MinReturn *decimal.Decimal `json:"min_return,omitempty"`
	MaxReturn *decimal.Decimal `json:"max_return,omitempty"`

	MaxExpenses *decimal.Decimal `json:"max_expenses,omitempty"`
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	BasePlan      *domain.Plan
	Target        OptimizationTarget
	Constraints   Constraints
	MaxIterations int             // Maximum solver iterations
	Tolerance     decimal.Decimal // Convergence tolerance in currency units
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"-"`
	Target          OptimizationTarget  `json:"target"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Optimized parameters
	OptimalContribution  *decimal.Decimal `json:"optimal_contribution,omitempty"`
	OptimalRetirementAge *float64         `json:"optimal_retirement_age,omitempty"`
	OptimalReturn        *decimal.Decimal `json:"optimal_return,omitempty"`
	OptimalExpenses      *decimal.Decimal `json:"optimal_expenses,omitempty"`

	// Results at optimal parameters
	Report      *domain.Report  `json:"-"`
	FireNumber  decimal.Decimal `json:"fire_number"`
	AchievedAge *float64        `json:"achieved_age,omitempty"`

	// Comparison to base: the optimal value minus the plan's own value
	BaseValue    decimal.Decimal `json:"base_value"`
	DiffFromBase decimal.Decimal `json:"diff_from_base"`
}

// MultiDimensionalResult contains results when solving every target
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Algorithm       string          // "binary_search"
	Tolerance       decimal.Decimal // Convergence tolerance for money targets
	ReturnTolerance decimal.Decimal // Convergence tolerance for the return target
	MaxIterations   int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Algorithm:       "binary_search",
		Tolerance:       decimal.NewFromInt(1000), // 1,000 won
		ReturnTolerance: decimal.RequireFromString("0.0001"),
		MaxIterations:   50,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinContribution != nil && c.MinContribution.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_contribution cannot be negative"}
	}
	if c.MinContribution != nil && c.MaxContribution != nil && c.MinContribution.GreaterThan(*c.MaxContribution) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_contribution cannot be greater than max_contribution"}
	}

	if c.MinRetirementAge != nil && c.MaxRetirementAge != nil && *c.MinRetirementAge > *c.MaxRetirementAge {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_retirement_age cannot be greater than max_retirement_age"}
	}

	if c.MinReturn != nil && c.MaxReturn != nil && c.MinReturn.GreaterThan(*c.MaxReturn) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_return cannot be greater than max_return"}
	}
	if c.MinReturn != nil && c.MinReturn.LessThan(minReturn) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_return cannot be below -0.5"}
	}
	if c.MaxReturn != nil && c.MaxReturn.GreaterThan(maxReturn) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_return cannot exceed 1"}
	}

	if c.MaxExpenses != nil && c.MaxExpenses.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_expenses cannot be negative"}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}

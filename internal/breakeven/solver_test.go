package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
)

// shortfallPlan misses its target: nothing saved yet, spending double the
// contribution, and the whole balance drawn down by life expectancy.
func shortfallPlan() *domain.Plan {
	return &domain.Plan{
		Name: "shortfall",
		Profile: domain.Profile{
			CurrentAge:     35,
			TargetAge:      55,
			LifeExpectancy: 90,
		},
		CashFlows: domain.CashFlows{
			MonthlyIncome:       4_000_000,
			MonthlyContribution: 1_000_000,
			MonthlyExpenses:     3_000_000,
		},
		Assumptions: domain.EconomicAssumptions{
			NominalReturn:     0.07,
			Inflation:         0.02,
			PreservationRatio: 0,
		},
	}
}

func feasibleWith(t *testing.T, plan *domain.Plan, mutate func(p *domain.Plan)) bool {
	t.Helper()
	p := plan.DeepCopy()
	mutate(p)
	return feasible(calculation.NewCalculationEngine().Calculate(p))
}

func TestNewSolver(t *testing.T) {
	calcEngine := &calculation.CalculationEngine{}
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.CalcEngine != calcEngine {
		t.Error("Expected CalcEngine to match input")
	}
	if solver.Options.MaxIterations != options.MaxIterations {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver(&calculation.CalculationEngine{})

	expected := DefaultSolverOptions()
	if solver.Options.Algorithm != expected.Algorithm {
		t.Error("Expected default algorithm to be applied")
	}
	if !solver.Options.Tolerance.Equal(expected.Tolerance) {
		t.Error("Expected default tolerance to be applied")
	}
}

func TestSolver_Optimize_InvalidRequests(t *testing.T) {
	solver := NewDefaultSolver(&calculation.CalculationEngine{})
	negative := decimal.NewFromInt(-1)

	tests := []struct {
		name string
		req  OptimizationRequest
	}{
		{"nil plan", OptimizationRequest{Target: OptimizeContribution}},
		{"unsupported target", OptimizationRequest{BasePlan: shortfallPlan(), Target: "unsupported_target"}},
		{"invalid constraints", OptimizationRequest{
			BasePlan:    shortfallPlan(),
			Target:      OptimizeContribution,
			Constraints: Constraints{MinContribution: &negative},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := solver.Optimize(context.Background(), tt.req)
			if err == nil {
				t.Error("Expected error, got nil")
			}
			if result != nil {
				t.Error("Expected nil result")
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected BreakEvenError, got %T", err)
			}
		})
	}
}

func TestSolver_OptimizeContribution(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	plan := shortfallPlan()

	if feasibleWith(t, plan, func(*domain.Plan) {}) {
		t.Fatal("base plan should miss its target")
	}

	result, err := solver.Optimize(context.Background(), OptimizationRequest{BasePlan: plan, Target: OptimizeContribution})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success || result.OptimalContribution == nil {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}

	optimal := result.OptimalContribution.InexactFloat64()
	tolerance := DefaultSolverOptions().Tolerance.InexactFloat64()

	if !feasibleWith(t, plan, func(p *domain.Plan) { p.CashFlows.MonthlyContribution = optimal }) {
		t.Errorf("Optimal contribution %.0f should reach the target", optimal)
	}
	if feasibleWith(t, plan, func(p *domain.Plan) { p.CashFlows.MonthlyContribution = optimal - 2*tolerance }) {
		t.Errorf("Contribution below %.0f should not reach the target", optimal)
	}
	if !result.DiffFromBase.Equal(result.OptimalContribution.Sub(decimal.NewFromInt(1_000_000))) {
		t.Errorf("Unexpected diff from base: %s", result.DiffFromBase)
	}
	if result.AchievedAge == nil {
		t.Error("Expected achieved age at the optimum")
	}
	if plan.CashFlows.MonthlyContribution != 1_000_000 {
		t.Error("Base plan must not be modified")
	}
}

func TestSolver_OptimizeRetirementAge(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	plan := shortfallPlan()

	result, err := solver.Optimize(context.Background(), OptimizationRequest{BasePlan: plan, Target: OptimizeRetirementAge})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success || result.OptimalRetirementAge == nil {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}

	age := *result.OptimalRetirementAge
	if age <= 55 || age > 90 {
		t.Errorf("Expected a later retirement age, got %.2f", age)
	}
	if !feasibleWith(t, plan, func(p *domain.Plan) { p.Profile.TargetAge = age }) {
		t.Errorf("Retiring at %.2f should reach the target", age)
	}
	if feasibleWith(t, plan, func(p *domain.Plan) { p.Profile.TargetAge = age - 1.0/12 }) {
		t.Errorf("Retiring a month before %.2f should not reach the target", age)
	}
}

func TestSolver_OptimizeReturn(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	plan := shortfallPlan()

	result, err := solver.Optimize(context.Background(), OptimizationRequest{BasePlan: plan, Target: OptimizeReturn})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success || result.OptimalReturn == nil {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}

	rate := result.OptimalReturn.InexactFloat64()
	if rate <= 0.07 {
		t.Errorf("Expected a higher return than 7%%, got %.4f", rate)
	}
	if !feasibleWith(t, plan, func(p *domain.Plan) { p.Assumptions.NominalReturn = rate }) {
		t.Errorf("Return %.4f should reach the target", rate)
	}
	if feasibleWith(t, plan, func(p *domain.Plan) { p.Assumptions.NominalReturn = rate - 0.0002 }) {
		t.Errorf("Return below %.4f should not reach the target", rate)
	}
}

func TestSolver_OptimizeExpenses(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	plan := shortfallPlan()

	result, err := solver.Optimize(context.Background(), OptimizationRequest{BasePlan: plan, Target: OptimizeExpenses})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success || result.OptimalExpenses == nil {
		t.Fatalf("Expected success, got %s", result.ConvergenceInfo)
	}

	expenses := result.OptimalExpenses.InexactFloat64()
	if expenses >= 3_000_000 {
		t.Errorf("Expected lower spending, got %.0f", expenses)
	}
	if !result.DiffFromBase.IsNegative() {
		t.Errorf("Expected a spending cut, got %s", result.DiffFromBase)
	}
	if !feasibleWith(t, plan, func(p *domain.Plan) { p.CashFlows.MonthlyExpenses = expenses }) {
		t.Errorf("Spending %.0f should be sustainable", expenses)
	}
	if feasibleWith(t, plan, func(p *domain.Plan) { p.CashFlows.MonthlyExpenses = expenses + 2000 }) {
		t.Errorf("Spending above %.0f should not be sustainable", expenses)
	}
}

func TestSolver_NotAchievableWithinBounds(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	ceiling := decimal.NewFromInt(1_000_000)

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		BasePlan:    shortfallPlan(),
		Target:      OptimizeContribution,
		Constraints: Constraints{MaxContribution: &ceiling},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Success {
		t.Error("Expected no solution below the current contribution")
	}
	if result.OptimalContribution != nil {
		t.Error("Expected no optimal contribution")
	}
	if !strings.Contains(result.ConvergenceInfo, "not achievable") {
		t.Errorf("Unexpected convergence info: %s", result.ConvergenceInfo)
	}
}

func TestSolver_AlreadyAchievable(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	plan := shortfallPlan()
	plan.CashFlows.MonthlyExpenses = 0

	result, err := solver.Optimize(context.Background(), OptimizationRequest{BasePlan: plan, Target: OptimizeContribution})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Success || !result.OptimalContribution.IsZero() {
		t.Errorf("Expected zero contribution to suffice, got %v", result.OptimalContribution)
	}
	if result.Iterations != 2 {
		t.Errorf("Expected both bounds to be checked only, got %d iterations", result.Iterations)
	}
}

func TestSolver_RespectsMaxIterations(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.Optimize(context.Background(), OptimizationRequest{
		BasePlan:      shortfallPlan(),
		Target:        OptimizeContribution,
		MaxIterations: 5,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Iterations > 5 {
		t.Errorf("Expected at most 5 iterations, got %d", result.Iterations)
	}
	if !result.Success {
		t.Error("Expected the feasible bound to be kept as the answer")
	}
	if !strings.Contains(result.ConvergenceInfo, "stopped after") {
		t.Errorf("Unexpected convergence info: %s", result.ConvergenceInfo)
	}
}

func TestSolver_ContextCancellation(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Optimize(ctx, OptimizationRequest{BasePlan: shortfallPlan(), Target: OptimizeContribution})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolver_OptimizeAllTargets(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	result, err := solver.OptimizeAllTargets(context.Background(), shortfallPlan())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Results) != len(Targets()) {
		t.Fatalf("Expected %d results, got %d", len(Targets()), len(result.Results))
	}
	for i, target := range Targets() {
		if result.Results[i].Target != target {
			t.Errorf("Result %d: expected target %s, got %s", i, target, result.Results[i].Target)
		}
		if !result.Results[i].Success {
			t.Errorf("Expected %s to succeed", target)
		}
	}
	if len(result.Recommendations) != 4 {
		t.Errorf("Expected one recommendation per lever, got %v", result.Recommendations)
	}
}

func TestConstraints_Validate(t *testing.T) {
	lo, hi := decimal.NewFromInt(10), decimal.NewFromInt(5)
	lowAge, highAge := 60.0, 50.0
	tooLow := decimal.RequireFromString("-0.6")

	tests := []struct {
		name    string
		c       Constraints
		wantErr bool
	}{
		{"empty", Constraints{}, false},
		{"contribution order", Constraints{MinContribution: &lo, MaxContribution: &hi}, true},
		{"age order", Constraints{MinRetirementAge: &lowAge, MaxRetirementAge: &highAge}, true},
		{"return order", Constraints{MinReturn: &lo, MaxReturn: &hi}, true},
		{"return floor", Constraints{MinReturn: &tooLow}, true},
		{"valid contribution", Constraints{MinContribution: &hi, MaxContribution: &lo}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "optimize", Message: "failed", Cause: cause}

	if err.Error() != "optimize: failed: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}
}

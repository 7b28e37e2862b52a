package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/transform"
	"github.com/shopspring/decimal"
)

var (
	minReturn = decimal.NewFromFloat(calculation.MinReturn)
	maxReturn = decimal.NewFromFloat(calculation.MaxReturn)

	defaultMinReturn   = decimal.RequireFromString("-0.05")
	defaultMaxReturn   = decimal.RequireFromString("0.30")
	defaultMoneyCeil   = decimal.NewFromInt(10_000_000)
	moneyCeilingFactor = decimal.NewFromInt(10)
)

// Solver finds the break-even value of one plan input: the point at which the
// plan first reaches its FIRE number by the target age.
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.BasePlan == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "base plan cannot be nil"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case OptimizeContribution:
		return s.optimizeContribution(ctx, req)
	case OptimizeRetirementAge:
		return s.optimizeRetirementAge(ctx, req)
	case OptimizeReturn:
		return s.optimizeReturn(ctx, req)
	case OptimizeExpenses:
		return s.optimizeExpenses(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// searchSpace describes a monotone one-dimensional search. When smallest is
// set the solver looks for the lowest feasible value, otherwise the highest.
type searchSpace struct {
	operation string
	lo, hi    float64
	tolerance float64
	smallest  bool
	integer   bool
	apply     func(base *domain.Plan, value float64) (*domain.Plan, error)
}

type searchResult struct {
	value      float64
	report     *domain.Report
	iterations int
	success    bool
	info       string
}

// optimizeContribution finds the smallest monthly contribution that reaches
// the FIRE number by the target age.
func (s *Solver) optimizeContribution(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base := req.BasePlan
	current := decimal.NewFromFloat(base.CashFlows.MonthlyContribution)

	lo := decimal.Zero
	hi := decimal.Max(defaultMoneyCeil,
		decimal.NewFromFloat(base.CashFlows.MonthlyExpenses).Mul(moneyCeilingFactor).Add(current))
	if req.Constraints.MinContribution != nil {
		lo = *req.Constraints.MinContribution
	}
	if req.Constraints.MaxContribution != nil {
		hi = *req.Constraints.MaxContribution
	}

	found, err := s.search(ctx, req, searchSpace{
		operation: "optimize_contribution",
		lo:        lo.InexactFloat64(),
		hi:        hi.InexactFloat64(),
		tolerance: req.Tolerance.InexactFloat64(),
		smallest:  true,
		apply: func(plan *domain.Plan, value float64) (*domain.Plan, error) {
			delta := decimal.NewFromFloat(value).Sub(decimal.NewFromFloat(plan.CashFlows.MonthlyContribution))
			return transform.ApplyTransforms(plan, []transform.PlanTransform{&transform.AdjustContribution{Delta: delta}})
		},
	})
	if err != nil {
		return nil, err
	}

	result := s.newResult(req, found)
	if found.success {
		optimal := roundUp(decimal.NewFromFloat(found.value), req.Tolerance)
		result.OptimalContribution = &optimal
		result.BaseValue = current
		result.DiffFromBase = optimal.Sub(current)
	}
	return result, nil
}

// optimizeRetirementAge finds the earliest target age, in whole months, that
// reaches the FIRE number.
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base := req.BasePlan
	minAge := base.Profile.CurrentAge
	maxAge := base.Profile.LifeExpectancy
	if req.Constraints.MinRetirementAge != nil {
		minAge = math.Max(minAge, *req.Constraints.MinRetirementAge)
	}
	if req.Constraints.MaxRetirementAge != nil {
		maxAge = math.Min(maxAge, *req.Constraints.MaxRetirementAge)
	}
	if maxAge < minAge {
		return nil, &BreakEvenError{
			Operation: "optimize_retirement_age",
			Message:   fmt.Sprintf("no retirement age between %.1f and %.1f", minAge, maxAge),
		}
	}

	found, err := s.search(ctx, req, searchSpace{
		operation: "optimize_retirement_age",
		lo:        0,
		hi:        math.Floor((maxAge - minAge) * calculation.MonthsPerYear),
		tolerance: 1,
		smallest:  true,
		integer:   true,
		apply: func(plan *domain.Plan, months float64) (*domain.Plan, error) {
			age := math.Min(maxAge, minAge+math.Round(months)/calculation.MonthsPerYear)
			return transform.ApplyTransforms(plan, []transform.PlanTransform{&transform.SetRetirementAge{Age: age}})
		},
	})
	if err != nil {
		return nil, err
	}

	result := s.newResult(req, found)
	if found.success {
		age := math.Min(maxAge, minAge+math.Round(found.value)/calculation.MonthsPerYear)
		result.OptimalRetirementAge = &age
		result.BaseValue = decimal.NewFromFloat(base.Profile.TargetAge)
		result.DiffFromBase = decimal.NewFromFloat(age).Sub(result.BaseValue).Round(2)
	}
	return result, nil
}

// optimizeReturn finds the lowest nominal return that reaches the FIRE number.
func (s *Solver) optimizeReturn(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base := req.BasePlan
	lo, hi := defaultMinReturn, defaultMaxReturn
	if req.Constraints.MinReturn != nil {
		lo = *req.Constraints.MinReturn
	}
	if req.Constraints.MaxReturn != nil {
		hi = *req.Constraints.MaxReturn
	}

	tolerance := s.Options.ReturnTolerance
	if tolerance.IsZero() {
		tolerance = DefaultSolverOptions().ReturnTolerance
	}

	found, err := s.search(ctx, req, searchSpace{
		operation: "optimize_return",
		lo:        lo.InexactFloat64(),
		hi:        hi.InexactFloat64(),
		tolerance: tolerance.InexactFloat64(),
		smallest:  true,
		apply: func(plan *domain.Plan, rate float64) (*domain.Plan, error) {
			return transform.ApplyTransforms(plan, []transform.PlanTransform{&transform.SetReturn{Rate: decimal.NewFromFloat(rate)}})
		},
	})
	if err != nil {
		return nil, err
	}

	result := s.newResult(req, found)
	if found.success {
		optimal := roundUp(decimal.NewFromFloat(found.value), tolerance)
		result.OptimalReturn = &optimal
		result.BaseValue = decimal.NewFromFloat(base.Assumptions.NominalReturn)
		result.DiffFromBase = optimal.Sub(result.BaseValue)
	}
	return result, nil
}

// optimizeExpenses finds the largest monthly spending the plan can sustain.
func (s *Solver) optimizeExpenses(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base := req.BasePlan
	current := decimal.NewFromFloat(base.CashFlows.MonthlyExpenses)

	hi := current.Mul(moneyCeilingFactor).Add(defaultMoneyCeil)
	if req.Constraints.MaxExpenses != nil {
		hi = *req.Constraints.MaxExpenses
	}

	found, err := s.search(ctx, req, searchSpace{
		operation: "optimize_expenses",
		lo:        0,
		hi:        hi.InexactFloat64(),
		tolerance: req.Tolerance.InexactFloat64(),
		smallest:  false,
		apply: func(plan *domain.Plan, value float64) (*domain.Plan, error) {
			modified := plan.DeepCopy()
			modified.CashFlows.MonthlyExpenses = value
			return modified, nil
		},
	})
	if err != nil {
		return nil, err
	}

	result := s.newResult(req, found)
	if found.success {
		optimal := roundDown(decimal.NewFromFloat(found.value), req.Tolerance)
		result.OptimalExpenses = &optimal
		result.BaseValue = current
		result.DiffFromBase = optimal.Sub(current)
	}
	return result, nil
}

// search bisects space, keeping the invariant that the bound on the feasible
// side always passes. It checks both ends first so that an infeasible range is
// reported rather than silently converging on a bound.
func (s *Solver) search(ctx context.Context, req OptimizationRequest, space searchSpace) (searchResult, error) {
	var res searchResult

	evaluate := func(value float64) (*domain.Report, bool, error) {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}
		res.iterations++

		plan, err := space.apply(req.BasePlan, value)
		if err != nil {
			return nil, false, &BreakEvenError{
				Operation: space.operation,
				Message:   "failed to apply transform",
				Cause:     err,
			}
		}
		report, err := s.CalcEngine.Run(ctx, plan)
		if err != nil {
			return nil, false, &BreakEvenError{
				Operation: space.operation,
				Message:   "failed to calculate plan",
				Cause:     err,
			}
		}
		return report, feasible(report), nil
	}

	// feasible side first, then the other end
	good, bad := space.hi, space.lo
	if !space.smallest {
		good, bad = space.lo, space.hi
	}

	report, ok, err := evaluate(good)
	if err != nil {
		return res, err
	}
	if !ok {
		res.report = report
		res.info = fmt.Sprintf("not achievable within bounds [%g, %g]", space.lo, space.hi)
		return res, nil
	}
	res.value, res.report, res.success = good, report, true

	report, ok, err = evaluate(bad)
	if err != nil {
		return res, err
	}
	if ok {
		res.value, res.report = bad, report
		res.info = "already achievable at the bound"
		return res, nil
	}

	for math.Abs(good-bad) > space.tolerance {
		if res.iterations >= req.MaxIterations {
			res.info = fmt.Sprintf("stopped after %d iterations", res.iterations)
			return res, nil
		}

		mid := (good + bad) / 2
		if space.integer {
			mid = math.Floor(mid)
			if mid == bad || mid == good {
				break
			}
		}

		report, ok, err := evaluate(mid)
		if err != nil {
			return res, err
		}
		if ok {
			good = mid
			res.value, res.report = mid, report
		} else {
			bad = mid
		}
	}

	res.info = fmt.Sprintf("converged after %d iterations", res.iterations)
	return res, nil
}

func (s *Solver) newResult(req OptimizationRequest, found searchResult) *OptimizationResult {
	result := &OptimizationResult{
		Request:         req,
		Target:          req.Target,
		Success:         found.success,
		Iterations:      found.iterations,
		ConvergenceInfo: found.info,
		Report:          found.report,
	}
	if found.report != nil {
		result.FireNumber = decimal.NewFromFloat(found.report.Result.FireNumber).Round(0)
		result.AchievedAge = found.report.Result.AchievedAge
	}
	return result
}

// feasible reports whether the plan reaches its target by retirement. A
// saver who is already retired qualifies only if today's savings suffice.
func feasible(report *domain.Report) bool {
	achieved := report.Result.AchievedAge
	if achieved == nil {
		return false
	}
	deadline := math.Max(report.Plan.Profile.TargetAge, math.Ceil(report.Plan.Profile.CurrentAge))
	return *achieved <= deadline
}

// roundUp rounds d up to a multiple of step.
func roundUp(d, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return d
	}
	return d.Div(step).Ceil().Mul(step)
}

// roundDown rounds d down to a multiple of step.
func roundDown(d, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return d
	}
	return d.Div(step).Floor().Mul(step)
}

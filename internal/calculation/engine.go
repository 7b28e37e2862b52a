package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/firego/internal/domain"
)

// CalculationEngine runs the projection pipeline: required capital, then the
// simulated trajectory, then remedies. It holds no per-run state and is safe
// for concurrent use.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Log intermediate values
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the logger. nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Run normalizes plan and computes its report.
func (ce *CalculationEngine) Run(ctx context.Context, plan *domain.Plan) (*domain.Report, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ce.Calculate(plan), nil
}

// Calculate is Run without cancellation. It never fails: malformed input is
// clamped by NormalizePlan.
func (ce *CalculationEngine) Calculate(plan *domain.Plan) *domain.Report {
	p := NormalizePlan(plan)
	profile, cashFlows, assumptions := p.Profile, p.CashFlows, p.Assumptions

	target := ComputeFireTarget(profile, cashFlows, assumptions, p.Events)
	if ce.Debug {
		ce.logger().Debugf("plan %q: base age %.2f, legacy %.0f, at pension start %.0f, events %.0f, fire number %.0f",
			p.Name, target.BaseAge, target.LegacyBalance, target.AtPensionStart, target.EventAdjustment, target.FireNumber)
	}

	projection := Simulate(profile, cashFlows, assumptions, p.Events, target.FireNumber)

	var suggestion *domain.Suggestion
	if NeedsSuggestion(projection.AchievedAge, profile.TargetAge, profile.CurrentSavings, target.FireNumber) {
		suggestion = Suggest(profile, projection.Trajectory, target.FireNumber,
			assumptions.RealReturn(), profile.CurrentSavings, profile.TargetAge)
	}

	result := domain.Result{
		FireNumber:      target.FireNumber,
		Trajectory:      projection.Trajectory,
		AchievedAge:     projection.AchievedAge,
		Suggestion:      suggestion,
		BaseAge:         target.BaseAge,
		RealReturn:      assumptions.RealReturn(),
		PensionStartAge: target.PensionStartAge,
		MonthlyGap:      cashFlows.MonthlyGap(),
		BridgeYears:     math.Max(0, target.PensionStartAge-profile.TargetAge),
		SavingsRate:     cashFlows.SavingsRate(),
		Progress:        progress(profile.CurrentSavings, target.FireNumber),
		Status:          status(projection.AchievedAge, profile.CurrentSavings, target.FireNumber),
	}
	if projection.AchievedAge != nil {
		years := math.Max(0, *projection.AchievedAge-profile.CurrentAge)
		result.YearsToFire = &years
	}

	if result.AchievedAge == nil {
		ce.logger().Infof("plan %q: target of %.0f not reached by age %.1f", p.Name, target.FireNumber, profile.TargetAge)
	} else {
		ce.logger().Infof("plan %q: target of %.0f reached at age %.1f", p.Name, target.FireNumber, *result.AchievedAge)
	}

	return &domain.Report{Plan: p, Result: result}
}

// progress is savings as a percentage of the target, capped at 100. A target
// that is already covered counts as complete.
func progress(savings, fireNumber float64) float64 {
	if fireNumber <= 0 {
		return 100
	}
	return math.Min(savings/fireNumber*100, 100)
}

func status(achievedAge *float64, savings, fireNumber float64) domain.Status {
	switch {
	case achievedAge != nil:
		return domain.StatusOnTrack
	case savings >= fireNumber:
		return domain.StatusAlreadySecured
	default:
		return domain.StatusShortfall
	}
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fallbacks used when a plan file leaves an age unset.
const (
	DefaultCurrentAge     = 50.0
	DefaultTargetAge      = 62.0
	DefaultLifeExpectancy = 95.0
)

const yearMonthLayout = "2006-01"

// PlanFile is the on-disk YAML schema. Money fields are decimals so that
// amounts written in the file survive parsing exactly; they are converted to
// the engine's float representation once, in ToPlan.
type PlanFile struct {
	Name        string          `yaml:"name"`
	Preset      string          `yaml:"preset,omitempty"`
	Profile     ProfileInput    `yaml:"profile"`
	CashFlows   CashFlowInput   `yaml:"cash_flows"`
	Assumptions AssumptionInput `yaml:"assumptions"`
	Events      []EventInput    `yaml:"future_cash_events,omitempty"`
}

// ProfileInput accepts either explicit ages or year-month dates ("YYYY-MM").
type ProfileInput struct {
	CurrentAge      *float64        `yaml:"current_age,omitempty"`
	TargetAge       *float64        `yaml:"target_age,omitempty"`
	LifeExpectancy  float64         `yaml:"life_expectancy,omitempty"`
	CurrentSavings  decimal.Decimal `yaml:"current_savings"`
	BirthMonth      string          `yaml:"birth_month,omitempty"`
	RetirementMonth string          `yaml:"retirement_month,omitempty"`
}

type CashFlowInput struct {
	MonthlyIncome       decimal.Decimal `yaml:"monthly_income"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution"`
	MonthlyExpenses     decimal.Decimal `yaml:"monthly_expenses"`
	MonthlyPension      decimal.Decimal `yaml:"monthly_pension"`
	PensionStartAge     *float64        `yaml:"pension_start_age,omitempty"`
	PensionStartMonth   string          `yaml:"pension_start_month,omitempty"`
}

// AssumptionInput holds annual rates as fractions (0.07 is 7%). The
// preservation ratio may be given directly or through a retirement model.
type AssumptionInput struct {
	NominalReturn     decimal.Decimal  `yaml:"nominal_return"`
	Inflation         decimal.Decimal  `yaml:"inflation"`
	PreservationRatio *decimal.Decimal `yaml:"preservation_ratio,omitempty"`
	RetirementModel   string           `yaml:"retirement_model,omitempty"`
}

type EventInput struct {
	Name   string          `yaml:"name"`
	Amount decimal.Decimal `yaml:"amount"`
	Age    float64         `yaml:"age"`
}

// InputParser handles parsing of plan files
type InputParser struct {
	// Now anchors year-month dates to today. Defaults to time.Now.
	Now func() time.Time
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

// LoadFromFile loads and validates a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(baseName(filename), ".yaml")
	}
	return plan, nil
}

// Parse decodes and validates a plan document
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var file PlanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	plan, err := ip.ToPlan(&file)
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return plan, nil
}

// ToPlan resolves dates, presets and retirement models into an engine plan.
func (ip *InputParser) ToPlan(file *PlanFile) (*domain.Plan, error) {
	now := time.Now
	if ip.Now != nil {
		now = ip.Now
	}
	today := now().Format(yearMonthLayout)

	plan := &domain.Plan{Name: file.Name}

	if err := ip.resolveAges(file, today, plan); err != nil {
		return nil, err
	}

	plan.Profile.CurrentSavings = toFloat(file.Profile.CurrentSavings)
	plan.CashFlows.MonthlyIncome = toFloat(file.CashFlows.MonthlyIncome)
	plan.CashFlows.MonthlyContribution = toFloat(file.CashFlows.MonthlyContribution)
	plan.CashFlows.MonthlyExpenses = toFloat(file.CashFlows.MonthlyExpenses)
	plan.CashFlows.MonthlyPension = toFloat(file.CashFlows.MonthlyPension)

	plan.Assumptions.NominalReturn = toFloat(file.Assumptions.NominalReturn)
	plan.Assumptions.Inflation = toFloat(file.Assumptions.Inflation)

	ratio, err := resolvePreservationRatio(file.Assumptions)
	if err != nil {
		return nil, err
	}
	plan.Assumptions.PreservationRatio = ratio

	for i, e := range file.Events {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			name = fmt.Sprintf("event %d", i+1)
		}
		plan.Events = append(plan.Events, domain.FutureCashEvent{
			Name:   name,
			Amount: toFloat(e.Amount),
			Age:    e.Age,
		})
	}

	if file.Preset != "" {
		if err := ApplyPreset(plan, file.Preset); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func (ip *InputParser) resolveAges(file *PlanFile, today string, plan *domain.Plan) error {
	p := file.Profile

	switch {
	case p.CurrentAge != nil:
		plan.Profile.CurrentAge = *p.CurrentAge
	case p.BirthMonth != "":
		age, err := YearsBetween(p.BirthMonth, today)
		if err != nil {
			return fmt.Errorf("invalid birth_month: %w", err)
		}
		plan.Profile.CurrentAge = age
	default:
		plan.Profile.CurrentAge = DefaultCurrentAge
	}

	switch {
	case p.TargetAge != nil:
		plan.Profile.TargetAge = *p.TargetAge
	case p.RetirementMonth != "":
		if p.BirthMonth == "" {
			return fmt.Errorf("retirement_month requires birth_month")
		}
		age, err := YearsBetween(p.BirthMonth, p.RetirementMonth)
		if err != nil {
			return fmt.Errorf("invalid retirement_month: %w", err)
		}
		plan.Profile.TargetAge = age
	default:
		plan.Profile.TargetAge = DefaultTargetAge
	}

	plan.Profile.LifeExpectancy = p.LifeExpectancy
	if plan.Profile.LifeExpectancy == 0 {
		plan.Profile.LifeExpectancy = DefaultLifeExpectancy
	}

	cf := file.CashFlows
	switch {
	case cf.PensionStartAge != nil:
		age := *cf.PensionStartAge
		plan.CashFlows.PensionStartAge = &age
	case cf.PensionStartMonth != "":
		if p.BirthMonth == "" {
			return fmt.Errorf("pension_start_month requires birth_month")
		}
		age, err := YearsBetween(p.BirthMonth, cf.PensionStartMonth)
		if err != nil {
			return fmt.Errorf("invalid pension_start_month: %w", err)
		}
		plan.CashFlows.PensionStartAge = &age
	}

	return nil
}

// YearsBetween returns the fractional years from one "YYYY-MM" month to another.
func YearsBetween(from, to string) (float64, error) {
	start, err := time.Parse(yearMonthLayout, strings.TrimSpace(from))
	if err != nil {
		return 0, fmt.Errorf("expected YYYY-MM, got %q", from)
	}
	end, err := time.Parse(yearMonthLayout, strings.TrimSpace(to))
	if err != nil {
		return 0, fmt.Errorf("expected YYYY-MM, got %q", to)
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	return float64(months) / 12, nil
}

func resolvePreservationRatio(a AssumptionInput) (float64, error) {
	if a.PreservationRatio != nil {
		return toFloat(*a.PreservationRatio), nil
	}
	if a.RetirementModel != "" {
		return PreservationRatioFor(a.RetirementModel)
	}
	return PreservationRatioFor(string(ModelPreservation))
}

// ValidateConfiguration checks the ranges the engine would otherwise clamp silently.
func (ip *InputParser) ValidateConfiguration(plan *domain.Plan) error {
	if err := ip.validateProfile(&plan.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if err := ip.validateCashFlows(&plan.CashFlows, plan.Profile); err != nil {
		return fmt.Errorf("cash flow validation failed: %w", err)
	}
	if err := ip.validateAssumptions(&plan.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	for i, e := range plan.Events {
		if err := ip.validateEvent(e, plan.Profile); err != nil {
			return fmt.Errorf("event %d (%s) validation failed: %w", i, e.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateProfile(p *domain.Profile) error {
	if p.CurrentAge < 0 || p.CurrentAge > 120 {
		return fmt.Errorf("current age must be between 0 and 120")
	}
	if p.TargetAge < 0 || p.TargetAge > 120 {
		return fmt.Errorf("target age must be between 0 and 120")
	}
	if p.LifeExpectancy <= p.CurrentAge {
		return fmt.Errorf("life expectancy must be greater than current age")
	}
	if p.LifeExpectancy > 150 {
		return fmt.Errorf("life expectancy cannot exceed 150")
	}
	if p.CurrentSavings < 0 {
		return fmt.Errorf("current savings cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateCashFlows(c *domain.CashFlows, p domain.Profile) error {
	if c.MonthlyIncome < 0 {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if c.MonthlyContribution < 0 {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if c.MonthlyExpenses < 0 {
		return fmt.Errorf("monthly expenses cannot be negative")
	}
	if c.MonthlyPension < 0 {
		return fmt.Errorf("monthly pension cannot be negative")
	}
	if c.PensionStartAge != nil && (*c.PensionStartAge < 0 || *c.PensionStartAge > p.LifeExpectancy) {
		return fmt.Errorf("pension start age must be between 0 and life expectancy")
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.EconomicAssumptions) error {
	if a.NominalReturn < -0.5 || a.NominalReturn > 1 {
		return fmt.Errorf("nominal return must be between -50%% and 100%%")
	}
	if a.Inflation < -0.5 || a.Inflation > 0.5 {
		return fmt.Errorf("inflation must be between -50%% and 50%%")
	}
	if a.PreservationRatio < 0 || a.PreservationRatio > 1 {
		return fmt.Errorf("preservation ratio must be between 0 and 1")
	}
	return nil
}

func (ip *InputParser) validateEvent(e domain.FutureCashEvent, p domain.Profile) error {
	if e.Amount == 0 {
		return fmt.Errorf("amount cannot be zero")
	}
	// events land on whole-year samples of the trajectory
	if e.Age != math.Trunc(e.Age) {
		return fmt.Errorf("age %g must be a whole number of years", e.Age)
	}
	if e.Age < p.CurrentAge {
		return fmt.Errorf("age %.1f is before current age %.1f", e.Age, p.CurrentAge)
	}
	return nil
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

package domain

import "sort"

// Profile describes where the saver stands today. Ages are fractional years.
type Profile struct {
	CurrentAge     float64 `yaml:"current_age" json:"currentAge"`
	TargetAge      float64 `yaml:"target_age" json:"targetAge"`
	LifeExpectancy float64 `yaml:"life_expectancy" json:"lifeExpectancy"`
	CurrentSavings float64 `yaml:"current_savings" json:"currentSavings"`
}

// AlreadyRetired reports whether the saver is at or past the target age at the
// start of the projection.
func (p Profile) AlreadyRetired() bool {
	return p.CurrentAge >= p.TargetAge
}

// CashFlows holds monthly amounts in today's money.
type CashFlows struct {
	MonthlyIncome       float64 `yaml:"monthly_income" json:"monthlyIncome"`
	MonthlyContribution float64 `yaml:"monthly_contribution" json:"monthlyContribution"`
	MonthlyExpenses     float64 `yaml:"monthly_expenses" json:"monthlyExpenses"`
	MonthlyPension      float64 `yaml:"monthly_pension" json:"monthlyPension"`

	// PensionStartAge defaults to the target retirement age when nil.
	PensionStartAge *float64 `yaml:"pension_start_age,omitempty" json:"pensionStartAge,omitempty"`
}

// PensionStart resolves the pension start age against the target age.
func (c CashFlows) PensionStart(targetAge float64) float64 {
	if c.PensionStartAge == nil {
		return targetAge
	}
	return *c.PensionStartAge
}

// MonthlyGap is what the portfolio must cover each month once the pension pays.
// It is negative when the pension exceeds spending.
func (c CashFlows) MonthlyGap() float64 {
	return c.MonthlyExpenses - c.MonthlyPension
}

// SavingsRate returns contribution as a percentage of income, or 0 without income.
func (c CashFlows) SavingsRate() float64 {
	if c.MonthlyIncome <= 0 {
		return 0
	}
	return c.MonthlyContribution / c.MonthlyIncome * 100
}

// EconomicAssumptions are blended annual rates applied uniformly to every period.
type EconomicAssumptions struct {
	NominalReturn     float64 `yaml:"nominal_return" json:"nominalReturn"`
	Inflation         float64 `yaml:"inflation" json:"inflation"`
	PreservationRatio float64 `yaml:"preservation_ratio" json:"preservationRatio"`
}

// RealReturn is the additive approximation nominal - inflation. It may be negative.
func (a EconomicAssumptions) RealReturn() float64 {
	return a.NominalReturn - a.Inflation
}

// FutureCashEvent is a one-off lump sum in today's money. Positive amounts are
// inflows (inheritance, asset sale), negative amounts are outflows.
type FutureCashEvent struct {
	Name   string  `yaml:"name" json:"name"`
	Amount float64 `yaml:"amount" json:"amount"`
	Age    float64 `yaml:"age" json:"age"`
}

// IsInflow reports whether the event adds money.
func (e FutureCashEvent) IsInflow() bool {
	return e.Amount > 0
}

// Plan is one complete input snapshot for a projection.
type Plan struct {
	Name        string              `yaml:"name" json:"name"`
	Profile     Profile             `yaml:"profile" json:"profile"`
	CashFlows   CashFlows           `yaml:"cash_flows" json:"cashFlows"`
	Assumptions EconomicAssumptions `yaml:"assumptions" json:"assumptions"`
	Events      []FutureCashEvent   `yaml:"future_cash_events,omitempty" json:"futureCashEvents,omitempty"`
}

// DeepCopy returns a copy that shares no memory with p.
func (p *Plan) DeepCopy() *Plan {
	if p == nil {
		return nil
	}
	cp := *p
	if p.CashFlows.PensionStartAge != nil {
		age := *p.CashFlows.PensionStartAge
		cp.CashFlows.PensionStartAge = &age
	}
	if p.Events != nil {
		cp.Events = make([]FutureCashEvent, len(p.Events))
		copy(cp.Events, p.Events)
	}
	return &cp
}

// SortedEvents returns the events ordered by age, keeping insertion order for ties.
func (p *Plan) SortedEvents() []FutureCashEvent {
	events := make([]FutureCashEvent, len(p.Events))
	copy(events, p.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Age < events[j].Age
	})
	return events
}

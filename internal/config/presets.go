package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
)

// RetirementModel names a preservation ratio used for the legacy balance.
type RetirementModel string

const (
	ModelPreservation RetirementModel = "preservation"
	ModelPartial      RetirementModel = "partial"
	ModelDepletion    RetirementModel = "depletion"
)

var retirementModels = map[RetirementModel]float64{
	ModelPreservation: 1.0,
	ModelPartial:      0.5,
	ModelDepletion:    0.0,
}

// PreservationRatioFor maps a retirement model name to its ratio.
func PreservationRatioFor(model string) (float64, error) {
	ratio, ok := retirementModels[RetirementModel(strings.ToLower(strings.TrimSpace(model)))]
	if !ok {
		return 0, fmt.Errorf("unknown retirement model: %s (available: preservation, partial, depletion)", model)
	}
	return ratio, nil
}

// ModelLabel describes a preservation ratio the way the diagnosis text does.
func ModelLabel(ratio float64) string {
	switch {
	case ratio >= 1:
		return "원금 보존 모델"
	case ratio <= 0:
		return "원금 완전 고갈 모델"
	default:
		return fmt.Sprintf("원금 일부 고갈 모델 (%.0f%% 유지)", ratio*100)
	}
}

// Preset is a canned cash-flow profile. Amounts are stored in 만원 as the
// presets were originally published and converted to monthly won on use.
type Preset struct {
	Name               string
	Description        string
	AnnualIncome       decimal.Decimal
	AnnualContribution decimal.Decimal
	MonthlyExpenses    decimal.Decimal
	NominalReturn      decimal.Decimal
}

var manwon = decimal.NewFromInt(10_000)
var twelve = decimal.NewFromInt(12)

// MonthlyIncome returns the preset's income in won per month.
func (p Preset) MonthlyIncome() decimal.Decimal {
	return p.AnnualIncome.Mul(manwon).Div(twelve)
}

// MonthlyContribution returns the preset's savings in won per month.
func (p Preset) MonthlyContribution() decimal.Decimal {
	return p.AnnualContribution.Mul(manwon).Div(twelve)
}

// MonthlyExpensesWon returns the preset's spending in won per month.
func (p Preset) MonthlyExpensesWon() decimal.Decimal {
	return p.MonthlyExpenses.Mul(manwon)
}

var presets = map[string]Preset{
	"conservative": {
		Name:               "conservative",
		Description:        "Low income, modest savings, frugal spending",
		AnnualIncome:       decimal.NewFromInt(600),
		AnnualContribution: decimal.NewFromInt(75),
		MonthlyExpenses:    decimal.NewFromInt(300),
		NominalReturn:      decimal.RequireFromString("0.06"),
	},
	"moderate": {
		Name:               "moderate",
		Description:        "Median household with steady saving",
		AnnualIncome:       decimal.NewFromInt(720),
		AnnualContribution: decimal.NewFromInt(150),
		MonthlyExpenses:    decimal.NewFromInt(400),
		NominalReturn:      decimal.RequireFromString("0.07"),
	},
	"aggressive": {
		Name:               "aggressive",
		Description:        "High saver targeting early independence",
		AnnualIncome:       decimal.NewFromInt(840),
		AnnualContribution: decimal.NewFromInt(350),
		MonthlyExpenses:    decimal.NewFromInt(500),
		NominalReturn:      decimal.RequireFromString("0.07"),
	},
}

// GetPreset looks a preset up by case-insensitive name.
func GetPreset(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// ListPresets returns all presets sorted by name.
func ListPresets() []Preset {
	list := make([]Preset, 0, len(presets))
	for _, p := range presets {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// ApplyPreset overwrites income, contribution, expenses and return on plan.
func ApplyPreset(plan *domain.Plan, name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("unknown preset: %s", name)
	}
	plan.CashFlows.MonthlyIncome = toFloat(p.MonthlyIncome())
	plan.CashFlows.MonthlyContribution = toFloat(p.MonthlyContribution())
	plan.CashFlows.MonthlyExpenses = toFloat(p.MonthlyExpensesWon())
	plan.Assumptions.NominalReturn = toFloat(p.NominalReturn)
	return nil
}

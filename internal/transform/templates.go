package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every template sorted by name
func (tr *TemplateRegistry) All() []Template {
	all := make([]Template, 0, len(tr.templates))
	for _, name := range tr.List() {
		all = append(all, tr.templates[name])
	}
	return all
}

// CreateBuiltInTemplates creates a template registry with common FIRE what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	for _, years := range []int{1, 3, 5} {
		registry.Register(Template{
			Name:        fmt.Sprintf("postpone_%dyr", years),
			Description: fmt.Sprintf("Retire %d year(s) later", years),
			Transforms:  []PlanTransform{&PostponeRetirement{Months: years * 12}},
		})
	}

	registry.Register(Template{
		Name:        "save_more_10pct",
		Description: "Increase monthly contribution by 10%",
		Transforms:  []PlanTransform{&ScaleContribution{Factor: decimal.RequireFromString("1.1")}},
	})

	registry.Register(Template{
		Name:        "save_more_20pct",
		Description: "Increase monthly contribution by 20%",
		Transforms:  []PlanTransform{&ScaleContribution{Factor: decimal.RequireFromString("1.2")}},
	})

	registry.Register(Template{
		Name:        "spend_less_10pct",
		Description: "Cut retirement spending by 10%",
		Transforms:  []PlanTransform{&ScaleExpenses{Factor: decimal.RequireFromString("0.9")}},
	})

	registry.Register(Template{
		Name:        "spend_less_20pct",
		Description: "Cut retirement spending by 20%",
		Transforms:  []PlanTransform{&ScaleExpenses{Factor: decimal.RequireFromString("0.8")}},
	})

	// Retirement models
	registry.Register(Template{
		Name:        "model_preservation",
		Description: "Keep the full principal for heirs",
		Transforms:  []PlanTransform{&SetPreservationRatio{Ratio: decimal.NewFromInt(1)}},
	})

	registry.Register(Template{
		Name:        "model_partial",
		Description: "Keep half of the principal",
		Transforms:  []PlanTransform{&SetPreservationRatio{Ratio: decimal.RequireFromString("0.5")}},
	})

	registry.Register(Template{
		Name:        "model_depletion",
		Description: "Spend the principal down to zero by life expectancy",
		Transforms:  []PlanTransform{&SetPreservationRatio{Ratio: decimal.Zero}},
	})

	registry.Register(Template{
		Name:        "delay_pension_2yr",
		Description: "Start the pension 2 years later",
		Transforms:  []PlanTransform{&DelayPension{Months: 24}},
	})

	// Market assumptions
	registry.Register(Template{
		Name:        "return_plus_1pct",
		Description: "Expected return 1 percentage point higher",
		Transforms:  []PlanTransform{&AdjustReturn{Delta: decimal.RequireFromString("0.01")}},
	})

	registry.Register(Template{
		Name:        "return_minus_1pct",
		Description: "Expected return 1 percentage point lower",
		Transforms:  []PlanTransform{&AdjustReturn{Delta: decimal.RequireFromString("-0.01")}},
	})

	registry.Register(Template{
		Name:        "inflation_plus_1pct",
		Description: "Inflation 1 percentage point higher",
		Transforms:  []PlanTransform{&AdjustInflation{Delta: decimal.RequireFromString("0.01")}},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "lean_fire",
		Description: "Spend 20% less and save 20% more",
		Transforms: []PlanTransform{
			&ScaleExpenses{Factor: decimal.RequireFromString("0.8")},
			&ScaleContribution{Factor: decimal.RequireFromString("1.2")},
		},
	})

	registry.Register(Template{
		Name:        "safe_landing",
		Description: "Retire 2 years later and spend the principal down",
		Transforms: []PlanTransform{
			&PostponeRetirement{Months: 24},
			&SetPreservationRatio{Ratio: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "stress_test",
		Description: "Return 1pp lower and inflation 1pp higher",
		Transforms: []PlanTransform{
			&AdjustReturn{Delta: decimal.RequireFromString("-0.01")},
			&AdjustInflation{Delta: decimal.RequireFromString("0.01")},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base plan
func ApplyTemplate(base *domain.Plan, template Template) (*domain.Plan, error) {
	if len(template.Transforms) == 0 {
		if base == nil {
			return nil, fmt.Errorf("base plan cannot be nil")
		}
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

func templateCategory(name string) string {
	switch {
	case strings.HasPrefix(name, "postpone_"):
		return "Retirement Timing"
	case strings.HasPrefix(name, "save_"), strings.HasPrefix(name, "spend_"):
		return "Saving & Spending"
	case strings.HasPrefix(name, "model_"):
		return "Retirement Models"
	case strings.HasPrefix(name, "delay_pension"):
		return "Pension"
	case strings.HasPrefix(name, "return_"), strings.HasPrefix(name, "inflation_"):
		return "Market Assumptions"
	default:
		return "Combination Strategies"
	}
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Retirement Timing", "Saving & Spending", "Retirement Models", "Pension", "Market Assumptions", "Combination Strategies"}
	categories := make(map[string][]Template)
	for _, t := range registry.All() {
		c := templateCategory(t.Name)
		categories[c] = append(categories[c], t)
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  firego compare plan.yaml --with postpone_3yr,save_more_10pct\n")
	sb.WriteString("  firego compare plan.yaml --with model_depletion,stress_test\n")

	return sb.String()
}

package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/transform"
)

// CompareEngine orchestrates what-if comparisons
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // Built-in template names
	Transforms []string // Ad-hoc transform specs, "name:k=v,..."
	ConfigPath string
}

// Compare runs the base plan and one variant per template or transform spec
func (ce *CompareEngine) Compare(
	ctx context.Context,
	plan *domain.Plan,
	options CompareOptions,
) (*ComparisonSet, error) {
	if plan == nil {
		return nil, fmt.Errorf("base plan cannot be nil")
	}

	baseReport, err := ce.CalcEngine.Run(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base plan: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseReport)
	baseResult.Description = "Base plan"

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(plan, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		modified.Name = plan.Name + "_" + template.Name

		alt, err := ce.runVariant(ctx, modified, template.Description, baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate template %s: %w", templateName, err)
		}
		alternatives = append(alternatives, alt)
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(plan, []transform.PlanTransform{tr})
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", spec, err)
		}
		modified.Name = plan.Name + "_" + tr.Name()

		alt, err := ce.runVariant(ctx, modified, tr.Description(), baseResult)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate %s: %w", spec, err)
		}
		alternatives = append(alternatives, alt)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   plan.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) runVariant(ctx context.Context, plan *domain.Plan, description string, base ComparisonResult) (ComparisonResult, error) {
	report, err := ce.CalcEngine.Run(ctx, plan)
	if err != nil {
		return ComparisonResult{}, err
	}
	result := ce.MetricsCalculator.CalculateMetrics(report)
	result.Description = description
	return ce.MetricsCalculator.CalculateComparison(result, base), nil
}

package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("delay_pension", createDelayPension)
	registry.Register("set_pension", createSetPension)

	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("set_contribution", createSetContribution)
	registry.Register("scale_contribution", createScaleContribution)
	registry.Register("scale_expenses", createScaleExpenses)
	registry.Register("set_expenses", createSetExpenses)
	registry.Register("add_cash_event", createAddCashEvent)

	registry.Register("set_return", createSetReturn)
	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("set_preservation_ratio", createSetPreservationRatio)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform given on the command line or in a request.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "postpone_retirement:months=12"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func floatParam(transform string, params map[string]string, key string) (float64, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return f, nil
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createPostponeRetirement(params map[string]string) (PlanTransform, error) {
	months, err := intParam("postpone_retirement", params, "months")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Months: months}, nil
}

func createSetRetirementAge(params map[string]string) (PlanTransform, error) {
	age, err := floatParam("set_retirement_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createDelayPension(params map[string]string) (PlanTransform, error) {
	months, err := intParam("delay_pension", params, "months")
	if err != nil {
		return nil, err
	}
	return &DelayPension{Months: months}, nil
}

func createSetPension(params map[string]string) (PlanTransform, error) {
	monthly, err := floatParam("set_pension", params, "monthly")
	if err != nil {
		return nil, err
	}
	t := &SetPension{Monthly: monthly}
	if _, ok := params["start_age"]; ok {
		age, err := floatParam("set_pension", params, "start_age")
		if err != nil {
			return nil, err
		}
		t.StartAge = &age
	}
	return t, nil
}

func createAdjustContribution(params map[string]string) (PlanTransform, error) {
	delta, err := decimalParam("adjust_contribution", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{Delta: delta}, nil
}

func createScaleContribution(params map[string]string) (PlanTransform, error) {
	factor, err := decimalParam("scale_contribution", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleContribution{Factor: factor}, nil
}

func createScaleExpenses(params map[string]string) (PlanTransform, error) {
	factor, err := decimalParam("scale_expenses", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleExpenses{Factor: factor}, nil
}

func createSetContribution(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("set_contribution", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetContribution{Amount: amount}, nil
}

func createSetExpenses(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("set_expenses", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetExpenses{Amount: amount}, nil
}

func createAddCashEvent(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam("add_cash_event", params, "amount")
	if err != nil {
		return nil, err
	}
	age, err := floatParam("add_cash_event", params, "age")
	if err != nil {
		return nil, err
	}
	return &AddCashEvent{EventName: params["name"], Amount: amount, Age: age}, nil
}

func createSetReturn(params map[string]string) (PlanTransform, error) {
	rate, err := decimalParam("set_return", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetReturn{Rate: rate}, nil
}

func createAdjustReturn(params map[string]string) (PlanTransform, error) {
	delta, err := decimalParam("adjust_return", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{Delta: delta}, nil
}

func createSetInflation(params map[string]string) (PlanTransform, error) {
	rate, err := decimalParam("set_inflation", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetInflation{Rate: rate}, nil
}

func createSetPreservationRatio(params map[string]string) (PlanTransform, error) {
	ratio, err := decimalParam("set_preservation_ratio", params, "ratio")
	if err != nil {
		return nil, err
	}
	return &SetPreservationRatio{Ratio: ratio}, nil
}

func createAdjustInflation(params map[string]string) (PlanTransform, error) {
	delta, err := decimalParam("adjust_inflation", params, "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{Delta: delta}, nil
}

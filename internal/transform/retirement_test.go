package transform

import (
	"testing"
)

func TestPostponeRetirement_Validate(t *testing.T) {
	tests := []struct {
		name        string
		transform   *PostponeRetirement
		expectError bool
	}{
		{"Valid postponement", &PostponeRetirement{Months: 12}, false},
		{"Zero months (valid)", &PostponeRetirement{Months: 0}, false},
		{"Negative months", &PostponeRetirement{Months: -6}, true},
		{"Past life expectancy", &PostponeRetirement{Months: 12 * 40}, true},
	}

	base := createTestPlan()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if tt.expectError && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no validation error, got: %v", err)
			}
		})
	}
}

func TestPostponeRetirement_Apply(t *testing.T) {
	tests := []struct {
		name     string
		months   int
		expected float64
	}{
		{"One year", 12, 56},
		{"Six months", 6, 55.5},
		{"Zero", 0, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := createTestPlan()
			result, err := (&PostponeRetirement{Months: tt.months}).Apply(base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Profile.TargetAge != tt.expected {
				t.Errorf("Expected target age %v, got %v", tt.expected, result.Profile.TargetAge)
			}
			if base.Profile.TargetAge != 55 {
				t.Error("Base plan was modified")
			}
		})
	}
}

func TestSetRetirementAge(t *testing.T) {
	base := createTestPlan()

	if err := (&SetRetirementAge{Age: 30}).Validate(base); err == nil {
		t.Error("Expected error for age before current age")
	}
	if err := (&SetRetirementAge{Age: 95}).Validate(base); err == nil {
		t.Error("Expected error for age after life expectancy")
	}

	tr := &SetRetirementAge{Age: 50}
	if err := tr.Validate(base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, _ := tr.Apply(base)
	if result.Profile.TargetAge != 50 {
		t.Errorf("Expected 50, got %v", result.Profile.TargetAge)
	}
}

func TestDelayPension(t *testing.T) {
	base := createTestPlan()

	result, err := (&DelayPension{Months: 24}).Apply(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *result.CashFlows.PensionStartAge != 67 {
		t.Errorf("Expected pension at 67, got %v", *result.CashFlows.PensionStartAge)
	}
	if *base.CashFlows.PensionStartAge != 65 {
		t.Error("Base pension start age was modified")
	}

	// Without an explicit start age the pension begins at retirement
	base.CashFlows.PensionStartAge = nil
	result, _ = (&DelayPension{Months: 12}).Apply(base)
	if *result.CashFlows.PensionStartAge != 56 {
		t.Errorf("Expected pension at 56, got %v", *result.CashFlows.PensionStartAge)
	}

	base.CashFlows.MonthlyPension = 0
	if err := (&DelayPension{Months: 12}).Validate(base); err == nil {
		t.Error("Expected error when plan has no pension")
	}
	if err := (&DelayPension{Months: -1}).Validate(createTestPlan()); err == nil {
		t.Error("Expected error for negative months")
	}
}

func TestSetPension(t *testing.T) {
	base := createTestPlan()
	start := 60.0

	result, err := ApplyTransforms(base, []PlanTransform{&SetPension{Monthly: 2_000_000, StartAge: &start}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CashFlows.MonthlyPension != 2_000_000 || *result.CashFlows.PensionStartAge != 60 {
		t.Errorf("Unexpected pension: %+v", result.CashFlows)
	}

	start = 70
	if *result.CashFlows.PensionStartAge != 60 {
		t.Error("Transform kept a reference to its StartAge parameter")
	}

	if err := (&SetPension{Monthly: -1}).Validate(base); err == nil {
		t.Error("Expected error for negative pension")
	}
}

// Package tuimsg holds messages that scenes emit to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/firego/internal/breakeven"
	"github.com/rgehrsitz/firego/internal/domain"
)

// PlanLoadedMsg carries the plan read from disk
type PlanLoadedMsg struct {
	Plan *domain.Plan
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ParameterChangedMsg reports a slider edit. Key is one of the Param* names.
type ParameterChangedMsg struct {
	Key   string
	Value float64
}

// ResetParametersMsg restores the plan as loaded
type ResetParametersMsg struct{}

// RecalculateMsg fires after the debounce delay. Only the tick whose Seq
// matches the latest edit triggers a calculation.
type RecalculateMsg struct {
	Seq int
}

// ReportReadyMsg carries a finished projection
type ReportReadyMsg struct {
	Seq    int
	Report *domain.Report
	Err    error
}

// SolveRequestedMsg asks the root model to run every break-even lever
type SolveRequestedMsg struct{}

// SolveCompleteMsg carries the break-even levers for the plan at Seq
type SolveCompleteMsg struct {
	Seq    int
	Result *breakeven.MultiDimensionalResult
	Err    error
}

package models

import (
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
)

// CalculateResponse is the projection plus its display texts
type CalculateResponse struct {
	Report     *domain.Report    `json:"report"`
	Indicators output.Indicators `json:"indicators"`
	Diagnosis  []string          `json:"diagnosis"`
	Advices    []output.Advice   `json:"advices,omitempty"`
}

// TemplateInfo describes a built-in what-if template
type TemplateInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PresetInfo describes a cash-flow preset in monthly won
type PresetInfo struct {
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	MonthlyIncome       float64 `json:"monthlyIncome"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	MonthlyExpenses     float64 `json:"monthlyExpenses"`
	NominalReturn       float64 `json:"nominalReturn"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an ErrorResponse
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

package models

import (
	"github.com/rgehrsitz/firego/internal/breakeven"
	"github.com/rgehrsitz/firego/internal/domain"
)

// CompareRequest runs a plan against what-if templates and ad-hoc transforms
type CompareRequest struct {
	Plan       *domain.Plan `json:"plan" binding:"required"`
	Templates  []string     `json:"templates,omitempty"`
	Transforms []string     `json:"transforms,omitempty"` // "name:key=value,..."
}

// SweepRequest varies one parameter across an evenly spaced range
type SweepRequest struct {
	Plan      *domain.Plan `json:"plan" binding:"required"`
	Parameter string       `json:"parameter" binding:"required"`
	From      float64      `json:"from"`
	To        float64      `json:"to"`
	Steps     int          `json:"steps" binding:"required,min=1"`
}

// SolveRequest asks for the break-even value of one input, or of all of them
type SolveRequest struct {
	Plan        *domain.Plan          `json:"plan" binding:"required"`
	Target      string                `json:"target" binding:"required"`
	Constraints breakeven.Constraints `json:"constraints"`
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/firego/internal/api/models"
	"github.com/rgehrsitz/firego/internal/breakeven"
)

// Solve handles POST /api/v1/solve
func (h *Handler) Solve(c *gin.Context) {
	var req models.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.bindPlan(c, req.Plan) {
		return
	}

	ctx := c.Request.Context()
	target := ParseTarget(req.Target)

	if target == breakeven.OptimizeAll {
		result, err := h.solver.OptimizeMultiDimensional(ctx, req.Plan, req.Constraints)
		if err != nil {
			h.solveError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	result, err := h.solver.Optimize(ctx, breakeven.OptimizationRequest{
		BasePlan:    req.Plan,
		Target:      target,
		Constraints: req.Constraints,
	})
	if err != nil {
		h.solveError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) solveError(c *gin.Context, err error) {
	var beErr *breakeven.BreakEvenError
	if errors.As(err, &beErr) {
		c.JSON(http.StatusBadRequest, models.NewError("SOLVE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusServiceUnavailable, models.NewError("SOLVE_ABORTED", err.Error()))
}

// ParseTarget accepts the CLI spelling ("retirement-age") as well as the
// canonical one.
func ParseTarget(s string) breakeven.OptimizationTarget {
	return breakeven.OptimizationTarget(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
}

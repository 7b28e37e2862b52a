package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/firego/internal/api/models"
	"github.com/rgehrsitz/firego/internal/compare"
)

// Compare handles POST /api/v1/compare
func (h *Handler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.bindPlan(c, req.Plan) {
		return
	}
	if len(req.Templates) == 0 && len(req.Transforms) == 0 {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", "at least one template or transform is required"))
		return
	}

	set, err := h.compare.Compare(c.Request.Context(), req.Plan, compare.CompareOptions{
		Templates:  req.Templates,
		Transforms: req.Transforms,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("COMPARE_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, set)
}

// Sweep handles POST /api/v1/sweep
func (h *Handler) Sweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !h.bindPlan(c, req.Plan) {
		return
	}

	values, err := compare.SweepValues(req.From, req.To, req.Steps)
	if err != nil {
		badRequest(c, err)
		return
	}

	set, err := h.compare.Sweep(c.Request.Context(), req.Plan, compare.SweepParameter(req.Parameter), values)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("SWEEP_FAILED", err.Error()))
		return
	}
	c.JSON(http.StatusOK, set)
}

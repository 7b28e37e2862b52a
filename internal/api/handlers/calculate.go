package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/firego/internal/api/models"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
	"go.uber.org/zap"
)

// Calculate handles POST /api/v1/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var plan domain.Plan
	if err := c.ShouldBindJSON(&plan); err != nil {
		badRequest(c, err)
		return
	}
	if !h.bindPlan(c, &plan) {
		return
	}

	report, err := h.engine.Run(c.Request.Context(), &plan)
	if err != nil {
		h.logger.Warn("calculation aborted", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, models.NewError("CALCULATION_ABORTED", err.Error()))
		return
	}

	c.JSON(http.StatusOK, models.CalculateResponse{
		Report:     report,
		Indicators: output.ResultIndicators(report),
		Diagnosis:  output.Diagnosis(report, h.currency),
		Advices:    output.Advices(report, h.currency),
	})
}

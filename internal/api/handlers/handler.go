package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/firego/internal/api/models"
	"github.com/rgehrsitz/firego/internal/breakeven"
	"github.com/rgehrsitz/firego/internal/calculation"
	"github.com/rgehrsitz/firego/internal/compare"
	"github.com/rgehrsitz/firego/internal/config"
	"github.com/rgehrsitz/firego/internal/domain"
	"github.com/rgehrsitz/firego/internal/output"
	"go.uber.org/zap"
)

// Handler serves the projection endpoints. It keeps no per-request state.
type Handler struct {
	engine   *calculation.CalculationEngine
	compare  *compare.CompareEngine
	solver   *breakeven.Solver
	parser   *config.InputParser
	currency output.Currency
	logger   *zap.Logger
}

// NewHandler wires the engines around one calculation engine
func NewHandler(engine *calculation.CalculationEngine, currency output.Currency, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:   engine,
		compare:  compare.NewCompareEngine(engine),
		solver:   breakeven.NewDefaultSolver(engine),
		parser:   config.NewInputParser(),
		currency: currency,
		logger:   logger,
	}
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindPlan validates a plan the way plan files are validated. It writes the
// error response and returns false on failure.
func (h *Handler) bindPlan(c *gin.Context, plan *domain.Plan) bool {
	if plan == nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", "plan is required"))
		return false
	}
	if err := h.parser.ValidateConfiguration(plan); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_PLAN", err.Error()))
		return false
	}
	return true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
}

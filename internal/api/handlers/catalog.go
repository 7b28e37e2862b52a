package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/firego/internal/api/models"
	"github.com/rgehrsitz/firego/internal/config"
)

// ListTemplates handles GET /api/v1/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	all := h.compare.TemplateRegistry.All()
	templates := make([]models.TemplateInfo, 0, len(all))
	for _, t := range all {
		templates = append(templates, models.TemplateInfo{Name: t.Name, Description: t.Description})
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// ListPresets handles GET /api/v1/presets
func (h *Handler) ListPresets(c *gin.Context) {
	all := config.ListPresets()
	presets := make([]models.PresetInfo, 0, len(all))
	for _, p := range all {
		presets = append(presets, models.PresetInfo{
			Name:                p.Name,
			Description:         p.Description,
			MonthlyIncome:       p.MonthlyIncome().Round(0).InexactFloat64(),
			MonthlyContribution: p.MonthlyContribution().Round(0).InexactFloat64(),
			MonthlyExpenses:     p.MonthlyExpensesWon().InexactFloat64(),
			NominalReturn:       p.NominalReturn.InexactFloat64(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

package library

import (
	"net/http"

	"meal-planner/internal/core/advisor"
	"meal-planner/internal/core/meal"
	"meal-planner/internal/core/planner"

	"github.com/gin-gonic/gin"
)

// Handler 食材與料理庫處理程序
type Handler struct {
	plannerService  *planner.Service
	analysisService *advisor.AnalysisService
}

// NewHandler 創建新的食材與料理庫處理程序
func NewHandler(plannerService *planner.Service, analysisService *advisor.AnalysisService) *Handler {
	return &Handler{
		plannerService:  plannerService,
		analysisService: analysisService,
	}
}

// HandleListIngredients 列出食材庫
func (h *Handler) HandleListIngredients(c *gin.Context) {
	ingredients, err := h.plannerService.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// HandleSaveIngredient 新增或更新食材，ID 為空時自動產生
func (h *Handler) HandleSaveIngredient(c *gin.Context) {
	var ing meal.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if ing.Name == "" || ing.Unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and unit are required"})
		return
	}

	saved, err := h.plannerService.SaveIngredient(c.Request.Context(), ing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// HandleDeleteIngredient 刪除食材，仍被料理引用時回 409
func (h *Handler) HandleDeleteIngredient(c *gin.Context) {
	id := c.Param("id")
	if err := h.plannerService.DeleteIngredient(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

package plan

import (
	"net/http"

	"meal-planner/internal/core/meal"

	"github.com/gin-gonic/gin"
)

// HandleDayNutrition 查詢某日菜單的營養統計與每日目標
func (h *Handler) HandleDayNutrition(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	summary, err := h.plannerService.DayNutrition(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// HandleGroceryList 依日期範圍產出採買清單
// scope 未指定時預設當週
func (h *Handler) HandleGroceryList(c *gin.Context) {
	date := c.Query("date")
	scope := meal.Scope(c.DefaultQuery("scope", string(meal.ScopeWeek)))

	if !scope.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope: " + string(scope)})
		return
	}
	if date == "" && scope != meal.ScopeAll {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	items, err := h.plannerService.GroceryList(c.Request.Context(), date, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

package library

import (
	"net/http"

	"meal-planner/internal/core/meal"

	"github.com/gin-gonic/gin"
)

// HandleListDishes 列出料理庫
func (h *Handler) HandleListDishes(c *gin.Context) {
	dishes, err := h.plannerService.ListDishes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dishes": dishes})
}

// HandleSaveDish 新增或更新料理，ID 為空時自動產生，tags 空時預設午餐
func (h *Handler) HandleSaveDish(c *gin.Context) {
	var dish meal.Dish
	if err := c.ShouldBindJSON(&dish); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if dish.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	for _, tag := range dish.Tags {
		if !tag.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal type: " + string(tag)})
			return
		}
	}

	saved, err := h.plannerService.SaveDish(c.Request.Context(), dish)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// HandleDeleteDish 刪除料理
// 既有菜單不回頭改寫，殘留的 ID 讀取端會以零營養呈現
func (h *Handler) HandleDeleteDish(c *gin.Context) {
	id := c.Param("id")
	if err := h.plannerService.DeleteDish(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

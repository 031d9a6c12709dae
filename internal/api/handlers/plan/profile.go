package plan

import (
	"net/http"

	"meal-planner/internal/core/meal"

	"github.com/gin-gonic/gin"
)

// HandleGetProfile 查詢使用者資料，未設定時回傳零值
func (h *Handler) HandleGetProfile(c *gin.Context) {
	profile, err := h.plannerService.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// HandleSaveProfile 寫入使用者資料
func (h *Handler) HandleSaveProfile(c *gin.Context) {
	var profile meal.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.plannerService.SaveProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

package library

import (
	"net/http"

	"meal-planner/internal/core/meal"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalyzeRequest 料理照片分析請求
type AnalyzeRequest struct {
	Image string `json:"image" binding:"required"` // base64 data URL
}

// HandleAnalyzeDish 分析料理照片，只回傳分析結果不落盤
// 前端確認、編修後再呼叫 HandleIngestDish 入庫
func (h *Handler) HandleAnalyzeDish(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	common.LogInfo("開始處理料理照片分析請求",
		zap.String("request_id", requestID),
		zap.String("image_type", getImageType(req.Image)),
		zap.String("client_ip", c.ClientIP()),
	)

	result, err := h.analysisService.AnalyzeDish(c.Request.Context(), req.Image)
	if err != nil {
		common.LogError("料理照片分析失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleIngestDish 把分析結果寫進食材庫，視設定同時建立料理
// 同名食材（不分大小寫）重用既有 ID，不會重複建檔
func (h *Handler) HandleIngestDish(c *gin.Context) {
	var payload meal.SaveAnalyzedDishPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if payload.ShouldCreateDish && payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required when creating a dish"})
		return
	}
	for _, tag := range payload.Tags {
		if !tag.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown meal type: " + string(tag)})
			return
		}
	}

	result, dish, err := h.plannerService.IngestAnalyzedDish(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"newIngredients":  result.NewIngredients,
		"dishIngredients": result.DishIngredients,
	}
	if dish != nil {
		response["dish"] = dish
	}
	c.JSON(http.StatusOK, response)
}

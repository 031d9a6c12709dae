package plan

import (
	"net/http"

	"meal-planner/internal/core/advisor"
	"meal-planner/internal/core/meal"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateSlotRequest 更新某日某餐別
type UpdateSlotRequest struct {
	Date     string   `json:"date" binding:"required"`     // YYYY-MM-DD
	MealType string   `json:"mealType" binding:"required"` // breakfast/lunch/dinner
	DishIDs  []string `json:"dishIds"`                     // 空陣列代表清空該餐別
}

// ClearRequest 依範圍清除菜單
type ClearRequest struct {
	Date  string `json:"date" binding:"required"`
	Scope string `json:"scope" binding:"required"` // day/week/month/all
}

// SuggestRequest 請 AI 建議某日三餐
type SuggestRequest struct {
	Date string `json:"date" binding:"required"`
}

// Handler 菜單處理程序
type Handler struct {
	plannerService    *planner.Service
	suggestionService *advisor.SuggestionService
}

// NewHandler 創建新的菜單處理程序
func NewHandler(plannerService *planner.Service, suggestionService *advisor.SuggestionService) *Handler {
	return &Handler{
		plannerService:    plannerService,
		suggestionService: suggestionService,
	}
}

// HandleListPlans 列出全部菜單
func (h *Handler) HandleListPlans(c *gin.Context) {
	plans, err := h.plannerService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// HandleUpdateSlot 更新某日某餐別的料理清單
func (h *Handler) HandleUpdateSlot(c *gin.Context) {
	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	plans, err := h.plannerService.UpdateSlot(c.Request.Context(), req.Date, meal.MealType(req.MealType), req.DishIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// HandleClearScope 清除某日、當週、當月或全部菜單
func (h *Handler) HandleClearScope(c *gin.Context) {
	var req ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	scope := meal.Scope(req.Scope)
	if !scope.IsValid() || scope == meal.ScopeAll {
		// 清除不提供 all，避免一個打錯的請求清掉整份菜單
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope: " + req.Scope})
		return
	}

	plans, err := h.plannerService.ClearScope(c.Request.Context(), req.Date, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// HandleSuggest 請 AI 建議某日三餐並直接套用
// 建議留空的餐別不動原有安排
func (h *Handler) HandleSuggest(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	common.LogInfo("開始處理菜單建議請求",
		zap.String("request_id", requestID),
		zap.String("日期", req.Date),
		zap.String("client_ip", c.ClientIP()),
	)

	ctx := c.Request.Context()
	profile, err := h.plannerService.Profile(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	dishes, err := h.plannerService.ListDishes(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	ingredients, err := h.plannerService.ListIngredients(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	suggestion, err := h.suggestionService.SuggestPlan(ctx, req.Date, profile, dishes, ingredients)
	if err != nil {
		common.LogError("菜單建議失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respondError(c, err)
		return
	}

	plans, err := h.plannerService.ApplySuggestion(ctx, req.Date, *suggestion)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestion": suggestion,
		"plans":      plans,
	})
}

package advisor

import (
	"context"
	"fmt"
	"strings"

	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/meal"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// SuggestionService 菜單建議服務
type SuggestionService struct {
	aiService *service.Service
}

// NewSuggestionService 創建菜單建議服務
func NewSuggestionService(aiService *service.Service) *SuggestionService {
	return &SuggestionService{
		aiService: aiService,
	}
}

// SuggestPlan 請 AI 從既有料理庫挑出某日三餐
// 建議裡的空餐別代表「這餐不給建議」，套用端會保留原內容；
// AI 回傳的未知料理 ID 直接丟掉，不視為錯誤
func (s *SuggestionService) SuggestPlan(ctx context.Context, date string, profile meal.UserProfile, dishes []meal.Dish, ingredients []meal.Ingredient) (*meal.MealPlanSuggestion, error) {
	if len(dishes) == 0 {
		return nil, common.NewValidationError("dish library is empty")
	}

	prompt := fmt.Sprintf(`請根據以下料理庫，為 %s 安排一日三餐(並且用繁體中文回答）(不需要考慮可讀性，請省略所有空格和換行，返回最緊湊的 JSON 格式)。

每日目標：
- 熱量：%.0f kcal
- 蛋白質：%.0f g

料理庫：
%s

要求：
1. 只能使用料理庫中列出的 id，不要發明新的 id
2. 依照每道料理的 tags 安排餐別（breakfast/lunch/dinner）
3. 三餐總熱量盡量貼近每日目標
4. 某個餐別沒有合適料理時，該餐別回傳空陣列
5. 所有欄位必須使用雙引號
6. 不要使用\n，不需要換行
7. 只回傳一個獨立的json，不要回傳多個json
請以以下 JSON 格式返回：
{
	"breakfastDishIds": ["料理id"],
	"lunchDishIds": ["料理id"],
	"dinnerDishIds": ["料理id"],
	"reasoning": "安排理由"
}`,
		date,
		profile.TargetCalories,
		profile.TargetProtein(),
		formatDishLibrary(dishes, ingredients))

	resp, err := s.aiService.ProcessRequest(ctx, prompt, "")
	if err != nil {
		return nil, fmt.Errorf("AI service error: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return nil, fmt.Errorf("empty AI response")
	}

	content := common.ExtractJSONObject(resp.Content)
	content = common.QuoteJSONKeys(content)

	var suggestion meal.MealPlanSuggestion
	if err := common.ParseJSON(content, &suggestion); err != nil {
		common.LogError("AI 建議解析失敗", zap.Error(err), zap.Int("ai_response_length", len(content)))
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	// 過濾料理庫裡不存在的 ID
	known := make(map[string]bool, len(dishes))
	for _, dish := range dishes {
		known[dish.ID] = true
	}
	suggestion.BreakfastDishIDs = filterKnown(suggestion.BreakfastDishIDs, known)
	suggestion.LunchDishIDs = filterKnown(suggestion.LunchDishIDs, known)
	suggestion.DinnerDishIDs = filterKnown(suggestion.DinnerDishIDs, known)

	common.LogInfo("AI 菜單建議完成",
		zap.String("日期", date),
		zap.Int("breakfast_count", len(suggestion.BreakfastDishIDs)),
		zap.Int("lunch_count", len(suggestion.LunchDishIDs)),
		zap.Int("dinner_count", len(suggestion.DinnerDishIDs)),
	)

	return &suggestion, nil
}

// filterKnown 只留下料理庫中存在的 ID
func filterKnown(ids []string, known map[string]bool) []string {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if known[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// formatDishLibrary 把料理庫整理成 prompt 用的清單
func formatDishLibrary(dishes []meal.Dish, ingredients []meal.Ingredient) string {
	var sb strings.Builder
	for _, dish := range dishes {
		total := meal.SumDish(dish, ingredients)
		tags := make([]string, 0, len(dish.Tags))
		for _, tag := range dish.Tags {
			tags = append(tags, string(tag))
		}
		sb.WriteString(fmt.Sprintf("- id: %s, 名稱: %s, tags: %s, 熱量: %.0f kcal, 蛋白質: %.1f g\n",
			dish.ID, dish.Name, strings.Join(tags, "/"), total.Calories, total.Protein))
	}
	return sb.String()
}

package advisor

import (
	"context"
	"fmt"

	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/meal"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// AnalysisService 料理照片分析服務
type AnalysisService struct {
	aiService *service.Service
}

// NewAnalysisService 創建照片分析服務
func NewAnalysisService(aiService *service.Service) *AnalysisService {
	return &AnalysisService{
		aiService: aiService,
	}
}

// AnalyzeDish 分析料理照片，回傳料理名稱、描述與食材營養估計
// TotalNutrition 只給前端顯示，入庫時一律由食材重新計算
func (s *AnalysisService) AnalyzeDish(ctx context.Context, imageData string) (*meal.AnalyzedDishResult, error) {
	if imageData == "" {
		return nil, fmt.Errorf("invalid image: image data is empty")
	}

	prompt := `請仔細分析圖片中的料理，並提供詳細的食材與營養估計(並且用繁體中文回答）(不需要考慮可讀性，請省略所有空格和換行，返回最緊湊的 JSON 格式)。
		要求：
		1. 只列出圖片中實際可見或合理推斷的食材
		2. 每個食材要估計份量與單位（重量用 g/ml，可數的用 顆/片/份）
		3. nutritionPerStandardUnit 是該食材每 100 g／100 ml 的營養值；可數單位則是每 1 單位的營養值
		4. 如果無法確定某個屬性，請使用合理估計而不是留空
		5. 所有欄位必須使用雙引號
		6. 不要使用\n，不需要換行
		7. 只回傳一個獨立的json，不要回傳多個json
		請以以下 JSON 格式返回：
		{
			"name": "料理名稱",
			"description": "料理描述",
			"totalNutrition": {"calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0},
			"ingredients": [
				{
					"name": "食材名稱",
					"amount": 100,
					"unit": "g",
					"nutritionPerStandardUnit": {"calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0}
				}
			]
		}`

	resp, err := s.aiService.ProcessRequest(ctx, prompt, imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to process request: %w", err)
	}

	content := common.ExtractJSONObject(resp.Content)
	content = common.QuoteJSONKeys(content)

	var result meal.AnalyzedDishResult
	if err := common.ParseJSON(content, &result); err != nil {
		common.LogError("AI 分析解析失敗", zap.Error(err), zap.Int("ai_response_length", len(content)))
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	// 檢查並補充空值
	if result.Name == "" {
		result.Name = "未知料理"
	}
	if result.Description == "" {
		result.Description = "無描述"
	}
	for i := range result.Ingredients {
		if result.Ingredients[i].Name == "" {
			result.Ingredients[i].Name = "未知食材"
		}
		if result.Ingredients[i].Unit == "" {
			result.Ingredients[i].Unit = "份"
		}
		result.Ingredients[i].Unit = meal.NormalizeUnit(result.Ingredients[i].Unit)
	}

	// 記錄成功信息，但不包含詳細內容
	common.LogInfo("Successfully analyzed dish",
		zap.Int("ingredients_count", len(result.Ingredients)),
	)

	return &result, nil
}

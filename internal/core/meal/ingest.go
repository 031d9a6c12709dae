package meal

import (
	"strings"

	"meal-planner/internal/pkg/common"
)

// ProcessAnalyzedDish 把 AI 分析結果對回既有食材庫
// 逐一比對 payload 食材名稱（不分大小寫）：找到就引用既有 ID，
// 找不到就用 payload 的營養資料建新食材。
// 比對對象是「工作清單」——既有食材加上本次呼叫已新建的食材，
// 同一次分析裡同名（含大小寫不同）的兩筆會解析到同一個新食材，
// 不會重複建檔。
func ProcessAnalyzedDish(payload SaveAnalyzedDishPayload, existingIngredients []Ingredient) IngestResult {
	working := make([]Ingredient, len(existingIngredients))
	copy(working, existingIngredients)

	result := IngestResult{
		NewIngredients:  []Ingredient{},
		DishIngredients: []DishIngredient{},
	}

	for _, analyzed := range payload.Ingredients {
		if matched, ok := findByName(working, analyzed.Name); ok {
			result.DishIngredients = append(result.DishIngredients, DishIngredient{
				IngredientID: matched.ID,
				Amount:       analyzed.Amount,
			})
			continue
		}

		created := Ingredient{
			ID:             common.GenerateUUID(),
			Name:           analyzed.Name,
			Unit:           NormalizeUnit(analyzed.Unit),
			CaloriesPer100: analyzed.NutritionPerStandardUnit.Calories,
			ProteinPer100:  analyzed.NutritionPerStandardUnit.Protein,
			CarbsPer100:    analyzed.NutritionPerStandardUnit.Carbs,
			FatPer100:      analyzed.NutritionPerStandardUnit.Fat,
			FiberPer100:    analyzed.NutritionPerStandardUnit.Fiber,
		}
		working = append(working, created)
		result.NewIngredients = append(result.NewIngredients, created)
		result.DishIngredients = append(result.DishIngredients, DishIngredient{
			IngredientID: created.ID,
			Amount:       analyzed.Amount,
		})
	}

	return result
}

// findByName 在工作清單中做不分大小寫的名稱精確比對
func findByName(ingredients []Ingredient, name string) (Ingredient, bool) {
	for _, ing := range ingredients {
		if strings.EqualFold(ing.Name, name) {
			return ing, true
		}
	}
	return Ingredient{}, false
}

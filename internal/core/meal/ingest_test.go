package meal_test

import (
	"testing"

	"meal-planner/internal/core/meal"
)

func TestProcessAnalyzedDishReusesExisting(t *testing.T) {
	existing := []meal.Ingredient{
		{ID: "garlic-1", Name: "Tỏi", Unit: "g", CaloriesPer100: 149},
	}
	payload := meal.SaveAnalyzedDishPayload{
		Ingredients: []meal.AnalyzedIngredient{
			{Name: "tỏi", Amount: 10, Unit: "gram"},
			{Name: "Thịt heo", Amount: 200, Unit: "g",
				NutritionPerStandardUnit: meal.NutritionInfo{Calories: 242, Protein: 27}},
		},
	}

	result := meal.ProcessAnalyzedDish(payload, existing)

	if len(result.NewIngredients) != 1 {
		t.Fatalf("new ingredients = %d; want 1", len(result.NewIngredients))
	}
	if len(result.DishIngredients) != 2 {
		t.Fatalf("dish ingredients = %d; want 2", len(result.DishIngredients))
	}

	// 同名食材（不分大小寫）重用既有 ID
	if result.DishIngredients[0].IngredientID != "garlic-1" {
		t.Errorf("matched id = %q; want garlic-1", result.DishIngredients[0].IngredientID)
	}
	if result.DishIngredients[0].Amount != 10 {
		t.Errorf("matched amount = %v; want 10", result.DishIngredients[0].Amount)
	}

	created := result.NewIngredients[0]
	if created.ID == "" {
		t.Error("new ingredient should get a generated id")
	}
	if created.Unit != "g" {
		t.Errorf("new ingredient unit = %q; want normalized g", created.Unit)
	}
	if created.CaloriesPer100 != 242 || created.ProteinPer100 != 27 {
		t.Errorf("new ingredient nutrition = %+v", created)
	}
	if result.DishIngredients[1].IngredientID != created.ID {
		t.Errorf("dish ingredient should reference the created id")
	}
}

func TestProcessAnalyzedDishDeduplicatesWithinCall(t *testing.T) {
	payload := meal.SaveAnalyzedDishPayload{
		Ingredients: []meal.AnalyzedIngredient{
			{Name: "Hành lá", Amount: 5, Unit: "g"},
			{Name: "hành lá", Amount: 3, Unit: "g"},
		},
	}

	result := meal.ProcessAnalyzedDish(payload, nil)

	if len(result.NewIngredients) != 1 {
		t.Fatalf("new ingredients = %d; want 1 (same name resolves once)", len(result.NewIngredients))
	}
	if len(result.DishIngredients) != 2 {
		t.Fatalf("dish ingredients = %d; want 2", len(result.DishIngredients))
	}
	if result.DishIngredients[0].IngredientID != result.DishIngredients[1].IngredientID {
		t.Error("both entries should reference the same new ingredient")
	}
}

func TestProcessAnalyzedDishDoesNotMutateExisting(t *testing.T) {
	existing := []meal.Ingredient{
		{ID: "a", Name: "Muối", Unit: "g"},
	}
	payload := meal.SaveAnalyzedDishPayload{
		Ingredients: []meal.AnalyzedIngredient{
			{Name: "Đường", Amount: 5, Unit: "g"},
		},
	}

	_ = meal.ProcessAnalyzedDish(payload, existing)

	if len(existing) != 1 || existing[0].ID != "a" {
		t.Errorf("existing ingredients mutated: %+v", existing)
	}
}

package planner_test

import (
	"context"
	"encoding/json"
	"testing"

	"meal-planner/internal/core/meal"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/storage"
	"meal-planner/internal/pkg/common"
)

func newService(t *testing.T) (*planner.Service, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return planner.NewService(store), store
}

func seedLibrary(t *testing.T, svc *planner.Service) (meal.Ingredient, meal.Ingredient, meal.Dish) {
	t.Helper()
	ctx := context.Background()

	chicken, err := svc.SaveIngredient(ctx, meal.Ingredient{
		Name: "雞胸肉", Unit: "g", CaloriesPer100: 165, ProteinPer100: 31,
	})
	if err != nil {
		t.Fatalf("SaveIngredient: %v", err)
	}
	rice, err := svc.SaveIngredient(ctx, meal.Ingredient{
		Name: "白飯", Unit: "g", CaloriesPer100: 130, ProteinPer100: 2.7,
	})
	if err != nil {
		t.Fatalf("SaveIngredient: %v", err)
	}

	dish, err := svc.SaveDish(ctx, meal.Dish{
		Name: "雞肉飯",
		Ingredients: []meal.DishIngredient{
			{IngredientID: chicken.ID, Amount: 150},
			{IngredientID: rice.ID, Amount: 200},
		},
		Tags: []meal.MealType{meal.MealLunch, meal.MealDinner},
	})
	if err != nil {
		t.Fatalf("SaveDish: %v", err)
	}
	return chicken, rice, dish
}

func TestSaveIngredientGeneratesID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	saved, err := svc.SaveIngredient(ctx, meal.Ingredient{Name: "Tỏi", Unit: "gram"})
	if err != nil {
		t.Fatalf("SaveIngredient: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated id")
	}
	if saved.Unit != "g" {
		t.Errorf("unit = %q; want normalized g", saved.Unit)
	}

	// 帶相同 ID 再存一次是更新，不是新增
	saved.Name = "Tỏi tươi"
	if _, err := svc.SaveIngredient(ctx, saved); err != nil {
		t.Fatalf("SaveIngredient update: %v", err)
	}
	ingredients, err := svc.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(ingredients) != 1 || ingredients[0].Name != "Tỏi tươi" {
		t.Errorf("ingredients = %+v; want single updated entry", ingredients)
	}
}

func TestDeleteIngredientRefusesWhenReferenced(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	chicken, rice, dish := seedLibrary(t, svc)

	if err := svc.DeleteIngredient(ctx, chicken.ID); err != common.ErrIngredientInUse {
		t.Errorf("DeleteIngredient(referenced) err = %v; want ErrIngredientInUse", err)
	}

	// 料理刪掉之後就能刪食材
	if err := svc.DeleteDish(ctx, dish.ID); err != nil {
		t.Fatalf("DeleteDish: %v", err)
	}
	if err := svc.DeleteIngredient(ctx, chicken.ID); err != nil {
		t.Errorf("DeleteIngredient(unreferenced) err = %v; want nil", err)
	}

	ingredients, _ := svc.ListIngredients(ctx)
	if len(ingredients) != 1 || ingredients[0].ID != rice.ID {
		t.Errorf("ingredients = %+v; want only rice left", ingredients)
	}
}

func TestUpdateSlotPersistsAndDropsEmptyPlans(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	_, _, dish := seedLibrary(t, svc)

	if _, err := svc.UpdateSlot(ctx, "2026-03-02", meal.MealLunch, []string{dish.ID}); err != nil {
		t.Fatalf("UpdateSlot: %v", err)
	}
	plans, err := svc.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 1 || plans[0].Date != "2026-03-02" {
		t.Fatalf("plans = %+v", plans)
	}

	// 清空唯一的餐別後整筆菜單不再落盤
	if _, err := svc.UpdateSlot(ctx, "2026-03-02", meal.MealLunch, nil); err != nil {
		t.Fatalf("UpdateSlot clear: %v", err)
	}
	data, err := store.Load(ctx, storage.KeyDayPlans)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(raw) != 0 {
		t.Errorf("persisted plans = %s; want empty array", data)
	}
}

func TestUpdateSlotRejectsUnknownMealType(t *testing.T) {
	svc, _ := newService(t)
	if _, err := svc.UpdateSlot(context.Background(), "2026-03-02", "brunch", nil); err == nil {
		t.Error("expected error for unknown meal type")
	}
}

func TestClearScope(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, _, dish := seedLibrary(t, svc)

	for _, date := range []string{"2026-03-02", "2026-03-04", "2026-04-01"} {
		if _, err := svc.UpdateSlot(ctx, date, meal.MealLunch, []string{dish.ID}); err != nil {
			t.Fatalf("UpdateSlot(%s): %v", date, err)
		}
	}

	plans, err := svc.ClearScope(ctx, "2026-03-03", meal.ScopeWeek)
	if err != nil {
		t.Fatalf("ClearScope: %v", err)
	}
	if len(plans) != 1 || plans[0].Date != "2026-04-01" {
		t.Errorf("plans after week clear = %+v; want only 2026-04-01", plans)
	}
}

func TestDayNutrition(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, _, dish := seedLibrary(t, svc)

	if err := svc.SaveProfile(ctx, meal.UserProfile{
		Weight: 70, ProteinRatio: 1.5, TargetCalories: 2200,
	}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	if _, err := svc.UpdateSlot(ctx, "2026-03-02", meal.MealLunch, []string{dish.ID}); err != nil {
		t.Fatalf("UpdateSlot: %v", err)
	}

	summary, err := svc.DayNutrition(ctx, "2026-03-02")
	if err != nil {
		t.Fatalf("DayNutrition: %v", err)
	}
	// 雞胸肉 165*1.5 + 白飯 130*2
	if summary.Total.Calories != 507.5 {
		t.Errorf("calories = %v; want 507.5", summary.Total.Calories)
	}
	if summary.TargetCalories != 2200 {
		t.Errorf("target calories = %v; want 2200", summary.TargetCalories)
	}
	if summary.TargetProtein != 105 {
		t.Errorf("target protein = %v; want 105", summary.TargetProtein)
	}

	// 沒菜單的日子回傳全零，不是錯誤
	empty, err := svc.DayNutrition(ctx, "2026-03-09")
	if err != nil {
		t.Fatalf("DayNutrition(empty day): %v", err)
	}
	if empty.Total.Calories != 0 {
		t.Errorf("empty day calories = %v; want 0", empty.Total.Calories)
	}
}

func TestGroceryList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	chicken, rice, dish := seedLibrary(t, svc)

	// 同一道料理排兩天，用量要加總
	if _, err := svc.UpdateSlot(ctx, "2026-03-02", meal.MealLunch, []string{dish.ID}); err != nil {
		t.Fatalf("UpdateSlot: %v", err)
	}
	if _, err := svc.UpdateSlot(ctx, "2026-03-04", meal.MealDinner, []string{dish.ID}); err != nil {
		t.Fatalf("UpdateSlot: %v", err)
	}

	items, err := svc.GroceryList(ctx, "2026-03-03", meal.ScopeWeek)
	if err != nil {
		t.Fatalf("GroceryList: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %+v; want 2", items)
	}
	byID := map[string]meal.GroceryItem{items[0].ID: items[0], items[1].ID: items[1]}
	if byID[chicken.ID].Amount != 300 {
		t.Errorf("chicken amount = %v; want 300", byID[chicken.ID].Amount)
	}
	if byID[rice.ID].Amount != 400 {
		t.Errorf("rice amount = %v; want 400", byID[rice.ID].Amount)
	}
}

func TestIngestAnalyzedDish(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	existing, err := svc.SaveIngredient(ctx, meal.Ingredient{Name: "Tỏi", Unit: "g", CaloriesPer100: 149})
	if err != nil {
		t.Fatalf("SaveIngredient: %v", err)
	}

	payload := meal.SaveAnalyzedDishPayload{
		Name:             "Thịt kho",
		ShouldCreateDish: true,
		Ingredients: []meal.AnalyzedIngredient{
			{Name: "tỏi", Amount: 10, Unit: "g"},
			{Name: "Thịt heo", Amount: 300, Unit: "gram",
				NutritionPerStandardUnit: meal.NutritionInfo{Calories: 242, Protein: 27}},
		},
	}

	result, dish, err := svc.IngestAnalyzedDish(ctx, payload)
	if err != nil {
		t.Fatalf("IngestAnalyzedDish: %v", err)
	}
	if len(result.NewIngredients) != 1 {
		t.Fatalf("new ingredients = %+v; want 1", result.NewIngredients)
	}
	if dish == nil || dish.ID == "" {
		t.Fatal("expected created dish with generated id")
	}
	if len(dish.Tags) == 0 {
		t.Error("created dish should carry default tags")
	}

	// 既有食材重用、新食材落盤
	ingredients, err := svc.ListIngredients(ctx)
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(ingredients) != 2 {
		t.Errorf("ingredients = %+v; want 2 (existing reused)", ingredients)
	}
	if result.DishIngredients[0].IngredientID != existing.ID {
		t.Errorf("matched id = %q; want %q", result.DishIngredients[0].IngredientID, existing.ID)
	}
}

func TestProfileDefaultsToZeroValue(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	profile, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile != (meal.UserProfile{}) {
		t.Errorf("profile = %+v; want zero value", profile)
	}

	// 壞掉的資料也退回零值，不報錯
	if err := store.Save(ctx, storage.KeyUserProfile, []byte(`not json`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	profile, err = svc.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile(corrupt): %v", err)
	}
	if profile != (meal.UserProfile{}) {
		t.Errorf("profile = %+v; want zero value", profile)
	}
}

package meal_test

import (
	"reflect"
	"testing"

	"meal-planner/internal/core/meal"
)

func TestCollectIngredients(t *testing.T) {
	dishes := []meal.Dish{
		{ID: "d1", Ingredients: []meal.DishIngredient{
			{IngredientID: "garlic", Amount: 10},
			{IngredientID: "pork", Amount: 200},
		}},
		{ID: "d2", Ingredients: []meal.DishIngredient{
			{IngredientID: "garlic", Amount: 5},
		}},
	}

	got := meal.CollectIngredients([]string{"d1", "missing", "d2"}, dishes)
	want := []meal.DishIngredient{
		{IngredientID: "garlic", Amount: 10},
		{IngredientID: "pork", Amount: 200},
		{IngredientID: "garlic", Amount: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectIngredients = %v; want %v", got, want)
	}
}

func TestBuildGroceryList(t *testing.T) {
	ingredients := []meal.Ingredient{
		{ID: "garlic", Name: "Tỏi", Unit: "g"},
		{ID: "pork", Name: "Thịt heo", Unit: "g"},
		{ID: "egg", Name: "Trứng", Unit: "quả"},
	}

	collected := []meal.DishIngredient{
		{IngredientID: "garlic", Amount: 10},
		{IngredientID: "pork", Amount: 200},
		{IngredientID: "deleted", Amount: 999},
		{IngredientID: "garlic", Amount: 5},
		{IngredientID: "egg", Amount: 2},
	}

	got := meal.BuildGroceryList(collected, ingredients)

	if len(got) != 3 {
		t.Fatalf("len = %d; want 3 (unknown id skipped)", len(got))
	}

	byID := make(map[string]meal.GroceryItem, len(got))
	for _, item := range got {
		byID[item.ID] = item
	}
	if byID["garlic"].Amount != 15 {
		t.Errorf("garlic amount = %v; want 15", byID["garlic"].Amount)
	}
	if byID["pork"].Amount != 200 {
		t.Errorf("pork amount = %v; want 200", byID["pork"].Amount)
	}
	if byID["egg"].Unit != "quả" {
		t.Errorf("egg unit = %q; want quả", byID["egg"].Unit)
	}

	// 越南文 collation：Thịt heo < Tỏi < Trứng（byte 排序會把 Tỏi 排錯位）
	wantOrder := []string{"Thịt heo", "Tỏi", "Trứng"}
	gotOrder := []string{got[0].Name, got[1].Name, got[2].Name}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("sort order = %v; want %v", gotOrder, wantOrder)
	}
}

func TestBuildGroceryListEmpty(t *testing.T) {
	got := meal.BuildGroceryList(nil, nil)
	if len(got) != 0 {
		t.Errorf("BuildGroceryList(nil, nil) = %v; want empty", got)
	}
}

package meal

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// 食材名稱多為越南文，排序用 collation 而非 byte 比較
var groceryCollator = collate.New(language.Vietnamese)

// CollectIngredients 攤平多道料理的食材用量，依輸入順序排列
// 查無的料理 ID 不貢獻任何項目
func CollectIngredients(dishIDs []string, allDishes []Dish) []DishIngredient {
	dishes := dishIndex(allDishes)
	collected := make([]DishIngredient, 0)
	for _, id := range dishIDs {
		dish, ok := dishes[id]
		if !ok {
			continue
		}
		collected = append(collected, dish.Ingredients...)
	}
	return collected
}

// BuildGroceryList 依食材 ID 分組並加總用量，產出採買清單
// 用量直接以食材原生單位相加——同一食材的所有出現共用同一單位，
// 所以這裡不需要換算（營養加總走的是已換算的路徑，兩者不同）。
// 查無的食材 ID 跳過。結果依食材名稱做 locale 排序。
func BuildGroceryList(dishIngredients []DishIngredient, allIngredients []Ingredient) []GroceryItem {
	index := ingredientIndex(allIngredients)

	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, di := range dishIngredients {
		if _, ok := index[di.IngredientID]; !ok {
			continue
		}
		if _, seen := totals[di.IngredientID]; !seen {
			order = append(order, di.IngredientID)
		}
		totals[di.IngredientID] += di.Amount
	}

	items := make([]GroceryItem, 0, len(order))
	for _, id := range order {
		ing := index[id]
		items = append(items, GroceryItem{
			ID:     ing.ID,
			Name:   ing.Name,
			Amount: totals[id],
			Unit:   ing.Unit,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return groceryCollator.CompareString(items[i].Name, items[j].Name) < 0
	})
	return items
}

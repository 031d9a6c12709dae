package meal

// ScaleIngredient 依用量換算單一食材的營養
// 重量/容量類：factor = 用量換算成 g/ml 後 ÷ 100（營養值是每 100 單位）
// 可數類：factor = 用量本身（營養值是每 1 單位）
// 不做四捨五入，也不驗證負數用量，輸入驗證是呼叫端的事
func ScaleIngredient(ing Ingredient, amount float64) NutritionInfo {
	var factor float64
	if IsWeightOrVolume(ing.Unit) {
		factor = amount * conversionFactor(ing.Unit) / 100
	} else {
		factor = amount
	}

	return NutritionInfo{
		Calories: ing.CaloriesPer100 * factor,
		Protein:  ing.ProteinPer100 * factor,
		Carbs:    ing.CarbsPer100 * factor,
		Fat:      ing.FatPer100 * factor,
		Fiber:    ing.FiberPer100 * factor,
	}
}

// ingredientIndex 以 ID 建立查找表，查無回傳 (zero, false)
func ingredientIndex(ingredients []Ingredient) map[string]Ingredient {
	index := make(map[string]Ingredient, len(ingredients))
	for _, ing := range ingredients {
		index[ing.ID] = ing
	}
	return index
}

// dishIndex 以 ID 建立料理查找表
func dishIndex(dishes []Dish) map[string]Dish {
	index := make(map[string]Dish, len(dishes))
	for _, d := range dishes {
		index[d.ID] = d
	}
	return index
}

// SumDish 加總一道料理的營養
// 查無的食材 ID 以零營養計入，不報錯：部分資料遺失時總和仍然可用
func SumDish(dish Dish, allIngredients []Ingredient) NutritionInfo {
	index := ingredientIndex(allIngredients)
	var total NutritionInfo
	for _, di := range dish.Ingredients {
		ing, ok := index[di.IngredientID]
		if !ok {
			continue
		}
		total = total.Add(ScaleIngredient(ing, di.Amount))
	}
	return total
}

// SumDishes 加總多道料理的營養
// 查無的料理 ID 直接跳過；重複出現的 ID 各自計一次，
// 同一道料理排兩餐就是吃兩份，不做去重
func SumDishes(dishIDs []string, allDishes []Dish, allIngredients []Ingredient) NutritionInfo {
	dishes := dishIndex(allDishes)
	var total NutritionInfo
	for _, id := range dishIDs {
		dish, ok := dishes[id]
		if !ok {
			continue
		}
		total = total.Add(SumDish(dish, allIngredients))
	}
	return total
}

package storage

import (
	"bytes"
	"encoding/json"

	"meal-planner/internal/core/meal"
)

// 舊版單一料理菜單的探測結構，只取得日期用
type legacyPlanProbe struct {
	Date string `json:"date"`
}

// hasArrayField 檢查原始 JSON 物件是否帶有陣列型別的指定欄位
func hasArrayField(raw json.RawMessage, field string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	value, ok := obj[field]
	if !ok {
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(value), []byte("["))
}

// MigrateDayPlans 把持久化的原始菜單記錄正規化成現行結構
// 已是多料理格式（帶陣列型 breakfastDishIds）的記錄原樣通過；
// 舊版單一料理格式（breakfastId/mealId 之類）無法無損轉換——
// 舊結構表達不了一餐多料理，因此整筆換成同日期的空菜單，
// 舊資料是刻意丟棄、不是轉換。
// 逐筆獨立處理，單筆壞資料不影響其他記錄，整個函式不回傳錯誤。
func MigrateDayPlans(raw []json.RawMessage) []meal.DayPlan {
	plans := make([]meal.DayPlan, 0, len(raw))
	for _, record := range raw {
		if hasArrayField(record, "breakfastDishIds") {
			var plan meal.DayPlan
			if err := json.Unmarshal(record, &plan); err != nil {
				continue
			}
			plans = append(plans, normalizePlan(plan))
			continue
		}

		// 舊格式：只留日期，內容丟棄
		var probe legacyPlanProbe
		if err := json.Unmarshal(record, &probe); err != nil || probe.Date == "" {
			continue
		}
		plans = append(plans, meal.NewEmptyDayPlan(probe.Date))
	}
	return plans
}

// normalizePlan 把 JSON null 餐別補成空陣列，讀取端不用再判 nil
func normalizePlan(plan meal.DayPlan) meal.DayPlan {
	if plan.BreakfastDishIDs == nil {
		plan.BreakfastDishIDs = []string{}
	}
	if plan.LunchDishIDs == nil {
		plan.LunchDishIDs = []string{}
	}
	if plan.DinnerDishIDs == nil {
		plan.DinnerDishIDs = []string{}
	}
	return plan
}

// 料理的中繼結構：tags 先收原始 JSON，型別不對也不會拖垮整筆
type rawDish struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Ingredients []meal.DishIngredient `json:"ingredients"`
	Tags        json.RawMessage       `json:"tags"`
}

// MigrateDishes 把持久化的原始料理記錄正規化成現行結構
// tags 缺失、非陣列或為空時補上預設 ['lunch']，
// 保證過完這層的料理一定帶非空 tags。
// 逐筆獨立處理，不因單筆壞資料中斷。
func MigrateDishes(raw []json.RawMessage) []meal.Dish {
	dishes := make([]meal.Dish, 0, len(raw))
	for _, record := range raw {
		var rd rawDish
		if err := json.Unmarshal(record, &rd); err != nil || rd.ID == "" {
			continue
		}

		var tags []meal.MealType
		if len(rd.Tags) > 0 {
			// 解析失敗（非陣列）就留 nil，走預設
			_ = json.Unmarshal(rd.Tags, &tags)
		}
		if len(tags) == 0 {
			tags = []meal.MealType{meal.MealLunch}
		}

		ingredients := rd.Ingredients
		if ingredients == nil {
			ingredients = []meal.DishIngredient{}
		}

		dishes = append(dishes, meal.Dish{
			ID:          rd.ID,
			Name:        rd.Name,
			Ingredients: ingredients,
			Tags:        tags,
		})
	}
	return dishes
}

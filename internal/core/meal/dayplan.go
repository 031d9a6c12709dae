package meal

import "time"

// Scope 清除範圍
type Scope string

const (
	ScopeDay   Scope = "day"
	ScopeWeek  Scope = "week"
	ScopeMonth Scope = "month"
	// ScopeAll 不限日期，僅供採買清單等讀取端選取，不用於清除
	ScopeAll Scope = "all"
)

// IsValid 檢查範圍值是否合法
func (s Scope) IsValid() bool {
	switch s {
	case ScopeDay, ScopeWeek, ScopeMonth, ScopeAll:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// NewEmptyDayPlan 建立三餐皆空的單日菜單
func NewEmptyDayPlan(date string) DayPlan {
	return DayPlan{
		Date:             date,
		BreakfastDishIDs: []string{},
		LunchDishIDs:     []string{},
		DinnerDishIDs:    []string{},
	}
}

// SlotDishIDs 取出指定餐別的料理 ID 列表
func (p DayPlan) SlotDishIDs(mealType MealType) []string {
	switch mealType {
	case MealBreakfast:
		return p.BreakfastDishIDs
	case MealDinner:
		return p.DinnerDishIDs
	default:
		return p.LunchDishIDs
	}
}

// withSlot 回傳替換單一餐別後的副本，其餘餐別原樣保留
func (p DayPlan) withSlot(mealType MealType, dishIDs []string) DayPlan {
	switch mealType {
	case MealBreakfast:
		p.BreakfastDishIDs = dishIDs
	case MealDinner:
		p.DinnerDishIDs = dishIDs
	default:
		p.LunchDishIDs = dishIDs
	}
	return p
}

// UpdateSlot 更新某日某餐別的料理列表
// 該日已有菜單時只換指定餐別，其餘餐別與其他日期原樣保留；
// 沒有菜單時新增一筆只填該餐別的菜單。
// 傳空陣列是合法的「清空這一餐」，與「這天沒菜單」是兩回事。
// 不會修改傳入的切片，一律回傳新切片。
func UpdateSlot(plans []DayPlan, date string, mealType MealType, dishIDs []string) []DayPlan {
	updated := make([]DayPlan, 0, len(plans)+1)
	found := false
	for _, plan := range plans {
		if plan.Date == date {
			updated = append(updated, plan.withSlot(mealType, dishIDs))
			found = true
			continue
		}
		updated = append(updated, plan)
	}
	if !found {
		updated = append(updated, NewEmptyDayPlan(date).withSlot(mealType, dishIDs))
	}
	return updated
}

// weekBounds 回傳含 pivot 當日的週一與週日（當地時間，零點）
// 週日屬於「以該日收尾」的那一週，週一在六天前
func weekBounds(pivot time.Time) (time.Time, time.Time) {
	var monday time.Time
	if pivot.Weekday() == time.Sunday {
		monday = pivot.AddDate(0, 0, -6)
	} else {
		monday = pivot.AddDate(0, 0, -(int(pivot.Weekday()) - 1))
	}
	return monday, monday.AddDate(0, 0, 6)
}

// inScope 判斷菜單日期是否落在清除範圍內
// 日期字串解析失敗的菜單一律視為範圍外（保留不動）
func inScope(planDate string, pivot time.Time, scope Scope) bool {
	t, err := time.ParseInLocation(dateLayout, planDate, time.Local)
	if err != nil {
		return false
	}
	switch scope {
	case ScopeWeek:
		monday, sunday := weekBounds(pivot)
		return !t.Before(monday) && !t.After(sunday)
	case ScopeMonth:
		return t.Year() == pivot.Year() && t.Month() == pivot.Month()
	}
	return false
}

// ClearByScope 依範圍移除菜單
// day：只移除日期完全相等的那一筆（字串比對，不存在則不動）
// week：移除落在 pivot 當週（週一～週日，含邊界，當地時間）的所有菜單
// month：移除與 pivot 同年同月的所有菜單
// 範圍外的菜單原順序保留。pivot 解析失敗時 week/month 視為空範圍。
func ClearByScope(plans []DayPlan, date string, scope Scope) []DayPlan {
	if scope == ScopeDay {
		kept := make([]DayPlan, 0, len(plans))
		for _, plan := range plans {
			if plan.Date == date {
				continue
			}
			kept = append(kept, plan)
		}
		return kept
	}

	pivot, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		// 無法定位週/月範圍，什麼都不刪
		out := make([]DayPlan, len(plans))
		copy(out, plans)
		return out
	}

	kept := make([]DayPlan, 0, len(plans))
	for _, plan := range plans {
		if inScope(plan.Date, pivot, scope) {
			continue
		}
		kept = append(kept, plan)
	}
	return kept
}

// ApplySuggestion 將 AI 建議合併進某日菜單
// 逐餐別處理：建議非空就整個取代，建議為空保留原值——
// 空陣列是「這餐不動」，不是「清空這餐」。
// 該日尚無菜單時直接用建議的內容建新菜單。
func ApplySuggestion(plans []DayPlan, date string, suggestion MealPlanSuggestion) []DayPlan {
	merge := func(suggested, existing []string) []string {
		if len(suggested) > 0 {
			return suggested
		}
		return existing
	}

	updated := make([]DayPlan, 0, len(plans)+1)
	found := false
	for _, plan := range plans {
		if plan.Date == date {
			merged := plan
			merged.BreakfastDishIDs = merge(suggestion.BreakfastDishIDs, plan.BreakfastDishIDs)
			merged.LunchDishIDs = merge(suggestion.LunchDishIDs, plan.LunchDishIDs)
			merged.DinnerDishIDs = merge(suggestion.DinnerDishIDs, plan.DinnerDishIDs)
			updated = append(updated, merged)
			found = true
			continue
		}
		updated = append(updated, plan)
	}
	if !found {
		plan := NewEmptyDayPlan(date)
		plan.BreakfastDishIDs = merge(suggestion.BreakfastDishIDs, plan.BreakfastDishIDs)
		plan.LunchDishIDs = merge(suggestion.LunchDishIDs, plan.LunchDishIDs)
		plan.DinnerDishIDs = merge(suggestion.DinnerDishIDs, plan.DinnerDishIDs)
		updated = append(updated, plan)
	}
	return updated
}

// PlanDatesInScope 依範圍挑出要納入的菜單
// 供採買清單與營養統計選取日期範圍，all 代表全部
func PlanDatesInScope(plans []DayPlan, date string, scope Scope) []DayPlan {
	if scope == ScopeAll {
		out := make([]DayPlan, len(plans))
		copy(out, plans)
		return out
	}
	if scope == ScopeDay {
		for _, plan := range plans {
			if plan.Date == date {
				return []DayPlan{plan}
			}
		}
		return nil
	}

	pivot, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil
	}
	selected := make([]DayPlan, 0, len(plans))
	for _, plan := range plans {
		if inScope(plan.Date, pivot, scope) {
			selected = append(selected, plan)
		}
	}
	return selected
}

// AllDishIDs 依早、午、晚順序攤平一日菜單的所有料理 ID
func (p DayPlan) AllDishIDs() []string {
	ids := make([]string, 0, len(p.BreakfastDishIDs)+len(p.LunchDishIDs)+len(p.DinnerDishIDs))
	ids = append(ids, p.BreakfastDishIDs...)
	ids = append(ids, p.LunchDishIDs...)
	ids = append(ids, p.DinnerDishIDs...)
	return ids
}

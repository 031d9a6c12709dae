package meal

import "math"

// MealType 餐別
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// MealTypes 固定的餐別順序
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// IsValid 檢查餐別是否合法
func (m MealType) IsValid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// Ingredient 食材
// 營養欄位的語意取決於單位類別：重量/容量單位是「每 100 單位」，
// 可數單位（顆、片、份…）則是「每 1 單位」。欄位名稱保留 Per100
// 後綴是歷史遺留，改名會改變既有儲存資料的解讀，故不動。
type Ingredient struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	CaloriesPer100 float64 `json:"caloriesPer100"`
	ProteinPer100  float64 `json:"proteinPer100"`
	CarbsPer100    float64 `json:"carbsPer100"`
	FatPer100      float64 `json:"fatPer100"`
	FiberPer100    float64 `json:"fiberPer100"`
}

// DishIngredient 料理中的食材用量，amount 使用食材自身的單位
type DishIngredient struct {
	IngredientID string  `json:"ingredientId"`
	Amount       float64 `json:"amount"`
}

// Dish 料理
// Ingredients 允許指向已被刪除的食材 ID，讀取端視為零營養、不報錯
type Dish struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Ingredients []DishIngredient `json:"ingredients"`
	Tags        []MealType       `json:"tags"`
}

// DayPlan 單日菜單，date 格式 YYYY-MM-DD，同一集合內每個日期至多一筆
type DayPlan struct {
	Date             string   `json:"date"`
	BreakfastDishIDs []string `json:"breakfastDishIds"`
	LunchDishIDs     []string `json:"lunchDishIds"`
	DinnerDishIDs    []string `json:"dinnerDishIds"`
}

// IsEmpty 三個餐別都沒有料理時視為「沒有安排」
func (p DayPlan) IsEmpty() bool {
	return len(p.BreakfastDishIDs) == 0 && len(p.LunchDishIDs) == 0 && len(p.DinnerDishIDs) == 0
}

// UserProfile 使用者資料，targetProtein 為導出值、不落盤
type UserProfile struct {
	Weight         float64 `json:"weight"`
	ProteinRatio   float64 `json:"proteinRatio"`
	TargetCalories float64 `json:"targetCalories"`
}

// TargetProtein 每日蛋白質目標 = round(體重 × 蛋白質係數)
func (p UserProfile) TargetProtein() float64 {
	return math.Round(p.Weight * p.ProteinRatio)
}

// NutritionInfo 營養資訊，純計算結果、不單獨持久化
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// Add 累加另一份營養資訊
func (n NutritionInfo) Add(other NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fat:      n.Fat + other.Fat,
		Fiber:    n.Fiber + other.Fiber,
	}
}

// GroceryItem 採買清單項目，amount 已跨料理加總
type GroceryItem struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// MealPlanSuggestion AI 菜單建議
// 空的餐別陣列代表「該餐別不給建議」，套用時保留原本內容
type MealPlanSuggestion struct {
	BreakfastDishIDs []string `json:"breakfastDishIds"`
	LunchDishIDs     []string `json:"lunchDishIds"`
	DinnerDishIDs    []string `json:"dinnerDishIds"`
	Reasoning        string   `json:"reasoning"`
}

// AnalyzedIngredient AI 照片分析出的單一食材
type AnalyzedIngredient struct {
	Name                    string        `json:"name"`
	Amount                  float64       `json:"amount"`
	Unit                    string        `json:"unit"`
	NutritionPerStandardUnit NutritionInfo `json:"nutritionPerStandardUnit"`
}

// AnalyzedDishResult AI 照片分析結果
// TotalNutrition 僅供前端顯示，入庫計算一律從食材重新推導
type AnalyzedDishResult struct {
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	TotalNutrition NutritionInfo        `json:"totalNutrition"`
	Ingredients    []AnalyzedIngredient `json:"ingredients"`
}

// SaveAnalyzedDishPayload 使用者確認／編輯後要入庫的分析結果
type SaveAnalyzedDishPayload struct {
	Name             string               `json:"name"`
	Tags             []MealType           `json:"tags"`
	Ingredients      []AnalyzedIngredient `json:"ingredients"`
	ShouldCreateDish bool                 `json:"shouldCreateDish"`
}

// IngestResult AI 分析結果入庫後產生的新食材與料理食材列表
type IngestResult struct {
	NewIngredients  []Ingredient     `json:"newIngredients"`
	DishIngredients []DishIngredient `json:"dishIngredients"`
}

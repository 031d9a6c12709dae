package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"meal-planner/internal/core/meal"
	"meal-planner/internal/core/storage"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 菜單規劃服務
// 純轉換函式都在 core/meal，這層負責 載入→轉換→寫回 的流程，
// 持久化只經過注入的 storage.Store，核心不直接碰儲存
type Service struct {
	store storage.Store
}

// NewService 創建菜單規劃服務
func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// loadRaw 讀取指定鍵的原始記錄陣列，鍵不存在視為空集合
func (s *Service) loadRaw(ctx context.Context, key string) ([]json.RawMessage, error) {
	data, err := s.store.Load(ctx, key)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		// 整鍵壞掉時比照遷移原則：退回空集合，不讓呼叫端掛掉
		common.LogWarn("持久化資料無法解析，改用空集合", zap.String("鍵", key), zap.Error(err))
		return nil, nil
	}
	return records, nil
}

// save 序列化並寫回指定鍵
func (s *Service) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// ListIngredients 載入食材庫
func (s *Service) ListIngredients(ctx context.Context) ([]meal.Ingredient, error) {
	raw, err := s.loadRaw(ctx, storage.KeyIngredients)
	if err != nil {
		return nil, err
	}
	ingredients := make([]meal.Ingredient, 0, len(raw))
	for _, record := range raw {
		var ing meal.Ingredient
		if err := json.Unmarshal(record, &ing); err != nil || ing.ID == "" {
			continue
		}
		ing.Unit = meal.NormalizeUnit(ing.Unit)
		ingredients = append(ingredients, ing)
	}
	return ingredients, nil
}

// SaveIngredient 新增或更新食材，ID 為空時自動產生
func (s *Service) SaveIngredient(ctx context.Context, ing meal.Ingredient) (meal.Ingredient, error) {
	if ing.ID == "" {
		ing.ID = common.GenerateUUID()
	}
	ing.Unit = meal.NormalizeUnit(ing.Unit)

	ingredients, err := s.ListIngredients(ctx)
	if err != nil {
		return meal.Ingredient{}, err
	}

	replaced := false
	for i := range ingredients {
		if ingredients[i].ID == ing.ID {
			ingredients[i] = ing
			replaced = true
			break
		}
	}
	if !replaced {
		ingredients = append(ingredients, ing)
	}

	if err := s.save(ctx, storage.KeyIngredients, ingredients); err != nil {
		return meal.Ingredient{}, err
	}
	return ing, nil
}

// DeleteIngredient 刪除食材，仍被任何料理引用時拒絕
func (s *Service) DeleteIngredient(ctx context.Context, id string) error {
	dishes, err := s.ListDishes(ctx)
	if err != nil {
		return err
	}
	for _, dish := range dishes {
		for _, di := range dish.Ingredients {
			if di.IngredientID == id {
				return common.ErrIngredientInUse
			}
		}
	}

	ingredients, err := s.ListIngredients(ctx)
	if err != nil {
		return err
	}
	kept := make([]meal.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.ID == id {
			continue
		}
		kept = append(kept, ing)
	}
	return s.save(ctx, storage.KeyIngredients, kept)
}

// ListDishes 載入料理庫，讀取時過一層遷移保證 tags 非空
func (s *Service) ListDishes(ctx context.Context) ([]meal.Dish, error) {
	raw, err := s.loadRaw(ctx, storage.KeyDishes)
	if err != nil {
		return nil, err
	}
	return storage.MigrateDishes(raw), nil
}

// SaveDish 新增或更新料理，ID 為空時自動產生
func (s *Service) SaveDish(ctx context.Context, dish meal.Dish) (meal.Dish, error) {
	if dish.ID == "" {
		dish.ID = common.GenerateUUID()
	}
	if len(dish.Tags) == 0 {
		dish.Tags = []meal.MealType{meal.MealLunch}
	}
	if dish.Ingredients == nil {
		dish.Ingredients = []meal.DishIngredient{}
	}

	dishes, err := s.ListDishes(ctx)
	if err != nil {
		return meal.Dish{}, err
	}

	replaced := false
	for i := range dishes {
		if dishes[i].ID == dish.ID {
			dishes[i] = dish
			replaced = true
			break
		}
	}
	if !replaced {
		dishes = append(dishes, dish)
	}

	if err := s.save(ctx, storage.KeyDishes, dishes); err != nil {
		return meal.Dish{}, err
	}
	return dish, nil
}

// DeleteDish 刪除料理
// 菜單對料理是弱引用：不回頭改寫既有菜單，殘留的 ID 在
// 讀取端自然解析不到、以零營養呈現
func (s *Service) DeleteDish(ctx context.Context, id string) error {
	dishes, err := s.ListDishes(ctx)
	if err != nil {
		return err
	}
	kept := make([]meal.Dish, 0, len(dishes))
	for _, dish := range dishes {
		if dish.ID == id {
			continue
		}
		kept = append(kept, dish)
	}
	return s.save(ctx, storage.KeyDishes, kept)
}

// ListPlans 載入全部菜單，讀取時過一層遷移
func (s *Service) ListPlans(ctx context.Context) ([]meal.DayPlan, error) {
	raw, err := s.loadRaw(ctx, storage.KeyDayPlans)
	if err != nil {
		return nil, err
	}
	return storage.MigrateDayPlans(raw), nil
}

// savePlans 寫回菜單，三餐全空的菜單等於「沒安排」，不落盤
func (s *Service) savePlans(ctx context.Context, plans []meal.DayPlan) error {
	kept := make([]meal.DayPlan, 0, len(plans))
	for _, plan := range plans {
		if plan.IsEmpty() {
			continue
		}
		kept = append(kept, plan)
	}
	return s.save(ctx, storage.KeyDayPlans, kept)
}

// UpdateSlot 更新某日某餐別並寫回
func (s *Service) UpdateSlot(ctx context.Context, date string, mealType meal.MealType, dishIDs []string) ([]meal.DayPlan, error) {
	if !mealType.IsValid() {
		return nil, common.NewValidationError(fmt.Sprintf("unknown meal type: %s", mealType))
	}
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	updated := meal.UpdateSlot(plans, date, mealType, dishIDs)
	if err := s.savePlans(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ClearScope 依範圍清除菜單並寫回
func (s *Service) ClearScope(ctx context.Context, date string, scope meal.Scope) ([]meal.DayPlan, error) {
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	cleared := meal.ClearByScope(plans, date, scope)
	if err := s.savePlans(ctx, cleared); err != nil {
		return nil, err
	}
	common.LogInfo("菜單已清除",
		zap.String("日期", date),
		zap.String("範圍", string(scope)),
		zap.Int("剩餘筆數", len(cleared)),
	)
	return cleared, nil
}

// ApplySuggestion 套用 AI 菜單建議並寫回
func (s *Service) ApplySuggestion(ctx context.Context, date string, suggestion meal.MealPlanSuggestion) ([]meal.DayPlan, error) {
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	merged := meal.ApplySuggestion(plans, date, suggestion)
	if err := s.savePlans(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Profile 載入使用者資料，未設定時回傳零值
func (s *Service) Profile(ctx context.Context) (meal.UserProfile, error) {
	data, err := s.store.Load(ctx, storage.KeyUserProfile)
	if err != nil {
		if err == storage.ErrNotFound {
			return meal.UserProfile{}, nil
		}
		return meal.UserProfile{}, fmt.Errorf("failed to load %s: %w", storage.KeyUserProfile, err)
	}
	var profile meal.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		common.LogWarn("使用者資料無法解析，改用預設值", zap.Error(err))
		return meal.UserProfile{}, nil
	}
	return profile, nil
}

// SaveProfile 寫回使用者資料
func (s *Service) SaveProfile(ctx context.Context, profile meal.UserProfile) error {
	return s.save(ctx, storage.KeyUserProfile, profile)
}

// DaySummary 單日營養統計與目標
type DaySummary struct {
	Date          string             `json:"date"`
	Total         meal.NutritionInfo `json:"total"`
	TargetCalories float64           `json:"targetCalories"`
	TargetProtein  float64           `json:"targetProtein"`
}

// DayNutrition 統計某日菜單的總營養並附上每日目標
// 該日沒菜單就是全零，解析不到的料理／食材照核心規則跳過
func (s *Service) DayNutrition(ctx context.Context, date string) (*DaySummary, error) {
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	dishes, err := s.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DaySummary{
		Date:           date,
		TargetCalories: profile.TargetCalories,
		TargetProtein:  profile.TargetProtein(),
	}
	for _, plan := range plans {
		if plan.Date != date {
			continue
		}
		summary.Total = meal.SumDishes(plan.AllDishIDs(), dishes, ingredients)
		break
	}
	return summary, nil
}

// GroceryList 依日期範圍產出採買清單
// 範圍選取在這層完成，聚合器本身不管日期
func (s *Service) GroceryList(ctx context.Context, date string, scope meal.Scope) ([]meal.GroceryItem, error) {
	plans, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	dishes, err := s.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ListIngredients(ctx)
	if err != nil {
		return nil, err
	}

	selected := meal.PlanDatesInScope(plans, date, scope)
	dishIDs := make([]string, 0)
	for _, plan := range selected {
		dishIDs = append(dishIDs, plan.AllDishIDs()...)
	}

	collected := meal.CollectIngredients(dishIDs, dishes)
	return meal.BuildGroceryList(collected, ingredients), nil
}

// IngestAnalyzedDish 把 AI 分析結果寫進食材庫，視設定同時建立料理
// 名稱比對與批次內去重都在 core/meal 的純函式完成，
// 這層只負責把產出的新食材與料理落盤
func (s *Service) IngestAnalyzedDish(ctx context.Context, payload meal.SaveAnalyzedDishPayload) (*meal.IngestResult, *meal.Dish, error) {
	ingredients, err := s.ListIngredients(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := meal.ProcessAnalyzedDish(payload, ingredients)

	if len(result.NewIngredients) > 0 {
		merged := append(ingredients, result.NewIngredients...)
		if err := s.save(ctx, storage.KeyIngredients, merged); err != nil {
			return nil, nil, err
		}
		common.LogInfo("AI 分析新增食材",
			zap.Int("新增數量", len(result.NewIngredients)),
		)
	}

	if !payload.ShouldCreateDish {
		return &result, nil, nil
	}

	tags := payload.Tags
	if len(tags) == 0 {
		tags = []meal.MealType{meal.MealLunch}
	}
	dish, err := s.SaveDish(ctx, meal.Dish{
		Name:        payload.Name,
		Ingredients: result.DishIngredients,
		Tags:        tags,
	})
	if err != nil {
		return nil, nil, err
	}
	return &result, &dish, nil
}

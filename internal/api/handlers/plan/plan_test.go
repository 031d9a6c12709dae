package plan_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	planHandler "meal-planner/internal/api/handlers/plan"
	"meal-planner/internal/core/meal"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/storage"

	"github.com/gin-gonic/gin"
)

func newRouter(t *testing.T) (*gin.Engine, *planner.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := planner.NewService(storage.NewMemoryStore())
	// AI 建議服務不在這些端點的路徑上，給 nil 即可
	h := planHandler.NewHandler(svc, nil)

	router := gin.New()
	router.GET("/plans", h.HandleListPlans)
	router.PUT("/plans/slot", h.HandleUpdateSlot)
	router.POST("/plans/clear", h.HandleClearScope)
	router.GET("/plans/nutrition", h.HandleDayNutrition)
	router.GET("/plans/grocery", h.HandleGroceryList)
	router.GET("/profile", h.HandleGetProfile)
	router.PUT("/profile", h.HandleSaveProfile)
	return router, svc
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleUpdateSlot(t *testing.T) {
	router, svc := newRouter(t)

	w := doJSON(t, router, http.MethodPut, "/plans/slot", map[string]interface{}{
		"date":     "2026-03-02",
		"mealType": "lunch",
		"dishIds":  []string{"dish-1"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	plans, err := svc.ListPlans(context.Background())
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(plans) != 1 || plans[0].Date != "2026-03-02" {
		t.Errorf("plans = %+v", plans)
	}
}

func TestHandleUpdateSlotRejectsBadMealType(t *testing.T) {
	router, _ := newRouter(t)

	w := doJSON(t, router, http.MethodPut, "/plans/slot", map[string]interface{}{
		"date":     "2026-03-02",
		"mealType": "brunch",
		"dishIds":  []string{"dish-1"},
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400, body = %s", w.Code, w.Body.String())
	}
}

func TestHandleClearScope(t *testing.T) {
	router, svc := newRouter(t)
	ctx := context.Background()

	if _, err := svc.UpdateSlot(ctx, "2026-03-02", meal.MealLunch, []string{"d"}); err != nil {
		t.Fatalf("UpdateSlot: %v", err)
	}

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{"valid week clear", map[string]interface{}{"date": "2026-03-03", "scope": "week"}, http.StatusOK},
		{"scope all rejected", map[string]interface{}{"date": "2026-03-03", "scope": "all"}, http.StatusBadRequest},
		{"unknown scope rejected", map[string]interface{}{"date": "2026-03-03", "scope": "year"}, http.StatusBadRequest},
		{"missing date rejected", map[string]interface{}{"scope": "week"}, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/plans/clear", tc.body)
			if w.Code != tc.wantCode {
				t.Errorf("status = %d; want %d, body = %s", w.Code, tc.wantCode, w.Body.String())
			}
		})
	}
}

func TestHandleDayNutrition(t *testing.T) {
	router, _ := newRouter(t)

	w := doJSON(t, router, http.MethodGet, "/plans/nutrition?date=2026-03-02", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var summary struct {
		Date  string             `json:"date"`
		Total meal.NutritionInfo `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if summary.Date != "2026-03-02" || summary.Total.Calories != 0 {
		t.Errorf("summary = %+v; want zero totals for empty day", summary)
	}

	// date 缺失是 400
	w = doJSON(t, router, http.MethodGet, "/plans/nutrition", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}
}

func TestHandleGroceryListScopeValidation(t *testing.T) {
	router, _ := newRouter(t)

	w := doJSON(t, router, http.MethodGet, "/plans/grocery?date=2026-03-02&scope=fortnight", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}

	// all 不需要 date
	w = doJSON(t, router, http.MethodGet, "/plans/grocery?scope=all", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d; want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestProfileRoundTrip(t *testing.T) {
	router, _ := newRouter(t)

	w := doJSON(t, router, http.MethodPut, "/profile", meal.UserProfile{
		Weight: 70, ProteinRatio: 1.5, TargetCalories: 2200,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}
	var profile meal.UserProfile
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if profile.Weight != 70 || profile.TargetCalories != 2200 {
		t.Errorf("profile = %+v", profile)
	}
}

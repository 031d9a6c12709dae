package storage_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"meal-planner/internal/core/storage"
)

func TestExportData(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	ingredients := `[{"id":"a","name":"Tỏi","unit":"g"}]`
	if err := store.Save(ctx, storage.KeyIngredients, []byte(ingredients)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	payload, err := storage.ExportData(ctx, store)
	if err != nil {
		t.Fatalf("ExportData: %v", err)
	}

	if payload.Version != storage.ExportVersion {
		t.Errorf("version = %d; want %d", payload.Version, storage.ExportVersion)
	}
	if payload.ExportedAt == "" {
		t.Error("exportedAt should be set")
	}
	if string(payload.Data[storage.KeyIngredients]) != ingredients {
		t.Errorf("exported ingredients = %s; want %s", payload.Data[storage.KeyIngredients], ingredients)
	}
	// 不存在的鍵不出現在匯出檔
	if _, ok := payload.Data[storage.KeyDishes]; ok {
		t.Error("absent key should not appear in export")
	}
}

func TestImportData(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	payload := &storage.ExportPayload{
		Version: storage.ExportVersion,
		Data: map[string]json.RawMessage{
			storage.KeyIngredients: json.RawMessage(`[{"id":"a","name":"Tỏi","unit":"g"}]`),
			storage.KeyDishes:      json.RawMessage(`[{"name":"missing id fields"}]`),
			storage.KeyDayPlans:    json.RawMessage(`[{"date":"2026-03-02"}]`),
			storage.KeyUserProfile: json.RawMessage(`{"weight":70,"proteinRatio":1.5,"targetCalories":2200}`),
		},
	}

	report, err := storage.ImportData(ctx, store, payload)
	if err != nil {
		t.Fatalf("ImportData: %v", err)
	}

	wantImported := []string{storage.KeyIngredients, storage.KeyDayPlans, storage.KeyUserProfile}
	if !reflect.DeepEqual(report.Imported, wantImported) {
		t.Errorf("imported = %v; want %v", report.Imported, wantImported)
	}
	wantSkipped := []string{storage.KeyDishes}
	if !reflect.DeepEqual(report.Skipped, wantSkipped) {
		t.Errorf("skipped = %v; want %v", report.Skipped, wantSkipped)
	}

	// 跳過的鍵不落盤，其餘照常寫入
	if _, err := store.Load(ctx, storage.KeyDishes); err != storage.ErrNotFound {
		t.Errorf("dishes key should not be written, got err = %v", err)
	}
	if _, err := store.Load(ctx, storage.KeyUserProfile); err != nil {
		t.Errorf("profile key should be written, got err = %v", err)
	}
}

func TestImportDataIgnoresUnknownKeys(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	payload := &storage.ExportPayload{
		Version: storage.ExportVersion,
		Data: map[string]json.RawMessage{
			"mp-unknown": json.RawMessage(`{"whatever":true}`),
		},
	}

	report, err := storage.ImportData(ctx, store, payload)
	if err != nil {
		t.Fatalf("ImportData: %v", err)
	}
	if len(report.Imported) != 0 || len(report.Skipped) != 0 {
		t.Errorf("report = %+v; unknown keys should be ignored entirely", report)
	}
}

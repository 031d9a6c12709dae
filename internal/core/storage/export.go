package storage

import (
	"context"
	"encoding/json"
	"time"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// ExportPayload 匯出檔格式
type ExportPayload struct {
	Version    int                        `json:"version"`
	ExportedAt string                     `json:"exportedAt"`
	Data       map[string]json.RawMessage `json:"data"`
}

// ExportVersion 目前的匯出格式版本
const ExportVersion = 2

// ImportReport 匯入結果，逐鍵記錄成功與跳過
type ImportReport struct {
	Imported []string `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// ExportData 匯出全部持久化資料
// 不存在的鍵直接略過，匯出檔只含實際有資料的鍵
func ExportData(ctx context.Context, store Store) (*ExportPayload, error) {
	payload := &ExportPayload{
		Version:    ExportVersion,
		ExportedAt: time.Now().Format(time.RFC3339),
		Data:       make(map[string]json.RawMessage),
	}

	for _, key := range AllKeys {
		value, err := store.Load(ctx, key)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		payload.Data[key] = json.RawMessage(value)
	}

	return payload, nil
}

// ImportData 匯入資料
// 每個鍵獨立驗證、獨立寫入：部分鍵格式不對就跳過該鍵，
// 其餘鍵照常匯入，絕不整包失敗。
func ImportData(ctx context.Context, store Store, payload *ExportPayload) (*ImportReport, error) {
	report := &ImportReport{
		Imported: []string{},
		Skipped:  []string{},
	}

	for _, key := range AllKeys {
		value, ok := payload.Data[key]
		if !ok {
			continue
		}
		if !validateKey(key, value) {
			common.LogWarn("匯入資料格式不符，跳過該鍵", zap.String("鍵", key))
			report.Skipped = append(report.Skipped, key)
			continue
		}
		if err := store.Save(ctx, key, value); err != nil {
			return report, err
		}
		report.Imported = append(report.Imported, key)
	}

	return report, nil
}

// validateKey 逐鍵的最小形狀檢查
func validateKey(key string, value json.RawMessage) bool {
	switch key {
	case KeyIngredients:
		return validateObjectArray(value, "id", "name", "unit")
	case KeyDishes:
		return validateObjectArray(value, "id", "name", "ingredients")
	case KeyDayPlans:
		return validateObjectArray(value, "date")
	case KeyUserProfile:
		return validateObject(value, "weight", "proteinRatio", "targetCalories")
	}
	return false
}

// validateObjectArray 要求值是物件陣列，且每個物件帶齊必要欄位
func validateObjectArray(value json.RawMessage, required ...string) bool {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(value, &records); err != nil {
		return false
	}
	for _, record := range records {
		for _, field := range required {
			if _, ok := record[field]; !ok {
				return false
			}
		}
	}
	return true
}

// validateObject 要求值是帶齊必要欄位的單一物件
func validateObject(value json.RawMessage, required ...string) bool {
	var record map[string]json.RawMessage
	if err := json.Unmarshal(value, &record); err != nil {
		return false
	}
	for _, field := range required {
		if _, ok := record[field]; !ok {
			return false
		}
	}
	return true
}

package storage

import (
	"context"
	"errors"
)

// 固定的持久化鍵，沿用既有前端 localStorage 的命名
const (
	KeyIngredients = "mp-ingredients"
	KeyDishes      = "mp-dishes"
	KeyDayPlans    = "mp-day-plans"
	KeyUserProfile = "mp-user-profile"
)

// AllKeys 匯出／匯入時處理的全部鍵
var AllKeys = []string{KeyIngredients, KeyDishes, KeyDayPlans, KeyUserProfile}

// ErrNotFound 鍵不存在
var ErrNotFound = errors.New("storage: key not found")

// Store 持久化介面，核心邏輯只透過這層存取原始 JSON 資料
type Store interface {
	// Load 讀取指定鍵的原始資料，不存在時回傳 ErrNotFound
	Load(ctx context.Context, key string) ([]byte, error)

	// Save 覆寫指定鍵的原始資料
	Save(ctx context.Context, key string, value []byte) error
}

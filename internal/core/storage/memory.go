package storage

import (
	"context"
	"sync"
)

// MemoryStore 進程內儲存，開發與測試用
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewMemoryStore 創建進程內儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string][]byte),
	}
}

// Load 讀取指定鍵的資料
func (m *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.store[key]
	if !ok {
		return nil, ErrNotFound
	}
	// 回傳副本，避免呼叫端改到內部狀態
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Save 覆寫指定鍵的資料
func (m *MemoryStore) Save(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.store[key] = stored
	return nil
}

package cache_test

import (
	"context"
	"testing"
	"time"

	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/infrastructure/config"
)

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestCacheSetGet(t *testing.T) {
	ctx := context.Background()
	m := cache.NewManager(testConfig(10, time.Minute))
	defer m.Close()

	if err := m.Set(ctx, "prompt", "", "answer"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := m.Get(ctx, "prompt", "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "answer" {
		t.Errorf("Get = %q; want answer", got)
	}

	// 不同 prompt 是不同 key
	if _, err := m.Get(ctx, "other prompt", ""); err == nil {
		t.Error("expected miss for different prompt")
	}
}

func TestCacheKeySeparatesImage(t *testing.T) {
	ctx := context.Background()
	m := cache.NewManager(testConfig(10, time.Minute))
	defer m.Close()

	if err := m.Set(ctx, "prompt", "image-a", "with image"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := m.Get(ctx, "prompt", ""); err == nil {
		t.Error("text-only lookup should miss the multimodal entry")
	}
	got, err := m.Get(ctx, "prompt", "image-a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "with image" {
		t.Errorf("Get = %q; want with image", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	ctx := context.Background()
	m := cache.NewManager(testConfig(10, 10*time.Millisecond))
	defer m.Close()

	if err := m.Set(ctx, "prompt", "", "answer"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := m.Get(ctx, "prompt", ""); err == nil {
		t.Error("expected expired entry to miss")
	}
}

func TestCacheLRUEviction(t *testing.T) {
	ctx := context.Background()
	m := cache.NewManager(testConfig(1, time.Minute))
	defer m.Close()

	if err := m.Set(ctx, "first", "", "1"); err != nil {
		t.Fatalf("Set first: %v", err)
	}
	// 容量 1：寫第二筆會淘汰第一筆
	if err := m.Set(ctx, "second", "", "2"); err != nil {
		t.Fatalf("Set second: %v", err)
	}
	if _, err := m.Get(ctx, "second", ""); err != nil {
		t.Errorf("second entry should survive, err = %v", err)
	}
}

func TestCacheDisabled(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	m := cache.NewManager(cfg)
	if m != nil {
		t.Fatal("disabled cache should return nil manager")
	}

	// nil manager 的操作是 no-op，不 panic
	ctx := context.Background()
	if err := m.Set(ctx, "p", "", "v"); err != nil {
		t.Errorf("nil Set err = %v; want nil", err)
	}
	if _, err := m.Get(ctx, "p", ""); err == nil {
		t.Error("nil Get should report cache disabled")
	}
	if err := m.Close(); err != nil {
		t.Errorf("nil Close err = %v; want nil", err)
	}
}

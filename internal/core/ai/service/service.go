package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/core/ai/image"
	"meal-planner/internal/core/ai/openrouter"
	"meal-planner/internal/core/ai/queue"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
)

// Response AI 回應結構
type Response struct {
	Content string
}

// Service AI 服務
// 對外只有 ProcessRequest 一個入口：prompt 正規化、圖片處理、
// 查快取、進隊列等 worker 打 OpenRouter、回寫快取
type Service struct {
	config       *config.Config
	client       *openrouter.Client
	cacheManager *cache.CacheManager
	queueManager *queue.Manager
	imageSvc     *image.Service
}

// NewService 創建 AI 服務並啟動隊列 worker
func NewService(cfg *config.Config, cacheManager *cache.CacheManager) (*Service, error) {
	s := &Service{
		config:       cfg,
		client:       openrouter.NewClient(cfg),
		cacheManager: cacheManager,
		queueManager: queue.NewManager(cfg),
		imageSvc:     image.NewService(cfg.Image.MaxSizeBytes),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		go s.worker()
	}

	return s, nil
}

// worker 從隊列取出請求並呼叫 OpenRouter
func (s *Service) worker() {
	for req := range s.queueManager.GetQueue() {
		start := time.Now()
		content, err := s.client.GenerateResponse(req.Context, req.Prompt, req.ImageData)
		common.LogAICall(req.Prompt, time.Since(start), err, "")
		req.Result <- queue.Result{Content: content, Error: err}
		s.queueManager.IncrementProcessed()
	}
}

// ProcessRequest 統一對外方法
func (s *Service) ProcessRequest(ctx context.Context, prompt string, imageData string) (*Response, error) {
	// 統一 prompt 格式，去除多餘空白、tab、換行，確保快取 key 一致
	prompt = strings.TrimSpace(prompt)
	prompt = strings.ReplaceAll(prompt, "\t", " ")
	prompt = strings.Join(strings.Fields(prompt), " ")

	var processedImageData string
	if imageData != "" {
		var err error
		processedImageData, err = s.imageSvc.ProcessImage(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to process image: %w", err)
		}
	}

	// 檢查緩存
	if s.config.Cache.Enabled && s.cacheManager != nil {
		if val, err := s.cacheManager.Get(ctx, prompt, processedImageData); err == nil && val != "" {
			return &Response{Content: val}, nil
		}
	}

	// 進隊列，等 worker 處理完或 context 取消
	resultCh, err := s.queueManager.Enqueue(ctx, prompt, processedImageData)
	if err != nil {
		return nil, err
	}

	select {
	case result := <-resultCh:
		if result.Error != nil {
			return nil, result.Error
		}
		if s.config.Cache.Enabled && s.cacheManager != nil {
			_ = s.cacheManager.Set(ctx, prompt, processedImageData, result.Content)
		}
		return &Response{Content: result.Content}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// QueueStatus 回報隊列狀態，健康檢查用
func (s *Service) QueueStatus() *queue.Status {
	return s.queueManager.GetQueueStatus()
}

// Close 關閉 AI 服務
func (s *Service) Close() {
	s.queueManager.Close()
}

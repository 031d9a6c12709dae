package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"meal-planner/internal/api/handlers/data"
	"meal-planner/internal/api/handlers/health"
	libraryHandler "meal-planner/internal/api/handlers/library"
	planHandler "meal-planner/internal/api/handlers/plan"
	"meal-planner/internal/api/middleware"
	"meal-planner/internal/core/advisor"
	"meal-planner/internal/core/ai/cache"
	"meal-planner/internal/core/ai/service"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/storage"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (10MB)，照片分析的 base64 圖片走 JSON body
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.CacheManager, store storage.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("queue_workers", cfg.Queue.Workers),
		zap.String("model", cfg.OpenRouter.Model),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化 AI 服務
	aiService, err := service.NewService(cfg, cacheManager)
	if err != nil || aiService == nil {
		common.LogError("Failed to initialize AI service", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	}

	// 初始化菜單規劃服務
	plannerService := planner.NewService(store)
	if plannerService == nil {
		common.LogError("Failed to initialize planner service")
		return nil, fmt.Errorf("failed to initialize planner service")
	}

	// 初始化 AI 建議與照片分析服務
	suggestionSvc := advisor.NewSuggestionService(aiService)
	analysisSvc := advisor.NewAnalysisService(aiService)
	if suggestionSvc == nil || analysisSvc == nil {
		common.LogError("Failed to initialize advisor services: service returned nil",
			zap.Bool("ai_service_initialized", aiService != nil),
			zap.Bool("cache_manager_initialized", cacheManager != nil),
			zap.String("environment", cfg.App.Env),
		)
		return nil, fmt.Errorf("failed to initialize advisor services: service returned nil")
	}

	common.LogInfo("Services initialized successfully",
		zap.Bool("ai_service_initialized", aiService != nil),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置與服務，健康檢查從 context 取用
		c.Set("config", cfg)
		c.Set("ai_service", aiService)
		c.Set("store", store)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		planHandlerInstance := planHandler.NewHandler(plannerService, suggestionSvc)
		libraryHandlerInstance := libraryHandler.NewHandler(plannerService, analysisSvc)
		dataHandlerInstance := data.NewHandler(store)

		// 菜單相關路由
		planGroup := api.Group("/plans")
		{
			planGroup.GET("", planHandlerInstance.HandleListPlans)
			planGroup.PUT("/slot", planHandlerInstance.HandleUpdateSlot)
			planGroup.POST("/clear", planHandlerInstance.HandleClearScope)
			planGroup.POST("/suggest", planHandlerInstance.HandleSuggest)
			planGroup.GET("/nutrition", planHandlerInstance.HandleDayNutrition)
			planGroup.GET("/grocery", planHandlerInstance.HandleGroceryList)
		}

		// 食材庫路由
		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("", libraryHandlerInstance.HandleListIngredients)
			ingredientGroup.POST("", libraryHandlerInstance.HandleSaveIngredient)
			ingredientGroup.DELETE("/:id", libraryHandlerInstance.HandleDeleteIngredient)
		}

		// 料理庫路由
		dishGroup := api.Group("/dishes")
		{
			dishGroup.GET("", libraryHandlerInstance.HandleListDishes)
			dishGroup.POST("", libraryHandlerInstance.HandleSaveDish)
			dishGroup.DELETE("/:id", libraryHandlerInstance.HandleDeleteDish)
			dishGroup.POST("/analyze", libraryHandlerInstance.HandleAnalyzeDish)
			dishGroup.POST("/ingest", libraryHandlerInstance.HandleIngestDish)
		}

		// 使用者資料路由
		profileGroup := api.Group("/profile")
		{
			profileGroup.GET("", planHandlerInstance.HandleGetProfile)
			profileGroup.PUT("", planHandlerInstance.HandleSaveProfile)
		}

		// 資料匯出匯入路由
		dataGroup := api.Group("/data")
		{
			dataGroup.GET("/export", dataHandlerInstance.HandleExport)
			dataGroup.POST("/import", dataHandlerInstance.HandleImport)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("ai_service_initialized", aiService != nil),
		zap.Bool("planner_service_initialized", plannerService != nil),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

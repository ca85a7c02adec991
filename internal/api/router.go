package api

import (
	"context"
	"net/http"
	"time"

	healthHandler "recipe-finder/internal/api/handlers/health"
	narrationHandler "recipe-finder/internal/api/handlers/narration"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/narration"
	recipeCore "recipe-finder/internal/core/recipe"
	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/core/storage"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store storage.Store, player *narration.Player) (*gin.Engine, error) {
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

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Int("search_limit", cfg.Spoonacular.SearchLimit),
	)

	// 初始化上游客戶端與食譜倉儲
	searchClient := spoonacular.NewClient(cfg)
	repo := recipeCore.NewRepository(searchClient, store)

	// 收藏變動時通知 UI 重新渲染（目前僅記錄，由前端輪詢收藏端點）
	repo.OnFavouritesChanged(func() {
		common.LogDebug("收藏清單已變動，等待前端重新渲染")
	})

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置
		c.Set("config", cfg)

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
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		recipeHandlerInstance := recipeHandler.NewHandler(repo, cfg)
		narrationHandlerInstance := narrationHandler.NewHandler(repo, player)

		// 食譜搜尋與選取
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("/search", recipeHandlerInstance.HandleSearch)
			recipeGroup.GET("/active", recipeHandlerInstance.HandleGetActive)
			recipeGroup.POST("/:id/active", recipeHandlerInstance.HandleSetActive)
		}

		// 收藏清單
		favouritesGroup := api.Group("/favourites")
		{
			favouritesGroup.GET("", recipeHandlerInstance.HandleListFavourites)
			favouritesGroup.POST("/:id", recipeHandlerInstance.HandleAddFavourite)
			favouritesGroup.DELETE("/:id", recipeHandlerInstance.HandleRemoveFavourite)
		}

		// 朗讀
		api.POST("/narrate", narrationHandlerInstance.HandleNarrate)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

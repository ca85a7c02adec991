package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/narration"
	"recipe-finder/internal/core/storage"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 使用 logger 記錄啟動信息
	common.LogInfo("載入設定",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Int("search_limit", cfg.Spoonacular.SearchLimit),
	)

	// 初始化收藏清單儲存
	store, closeStore, err := newStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize favourites store", zap.Error(err))
	}
	defer closeStore()

	// 初始化朗讀播放器
	player := narration.NewPlayer(narration.NewVoiceRSSClient(cfg), newSink(cfg))
	defer player.Close()

	// 設置路由
	router, err := api.SetupRouter(cfg, store, player)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}

// newStore 依設定選擇收藏清單的儲存後端
func newStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "redis":
		store, err := storage.NewRedisStore(cfg.Storage.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return storage.NewFileStore(cfg.Storage.Path), func() {}, nil
	}
}

// newSink 嘗試初始化系統音訊輸出，不可用時退回空實現
func newSink(cfg *config.Config) narration.Sink {
	if !cfg.VoiceRSS.Enabled {
		return narration.NewNoopSink()
	}
	sink, err := narration.NewOtoSink()
	if err != nil {
		common.LogWarn("音訊裝置初始化失敗，改用空輸出", zap.Error(err))
		return narration.NewNoopSink()
	}
	return sink
}

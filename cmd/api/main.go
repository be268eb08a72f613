package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-matcher/internal/api"
	"recipe-matcher/internal/core/cache"
	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/fetch"
	"recipe-matcher/internal/core/image"
	"recipe-matcher/internal/core/inventory"
	"recipe-matcher/internal/core/provider"
	"recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("env", cfg.App.Env),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("inventory_backend", cfg.Inventory.Backend),
	)

	// 本地食譜目錄
	recipes, err := catalog.LoadDefault()
	if err != nil {
		common.LogFatal("Failed to load recipe catalog", zap.Error(err))
	}

	// Redis 連線（快取或庫存使用時才建立）
	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient, err = connectRedis(cfg)
		if err != nil {
			common.LogFatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	// 初始化快取
	store, err := cache.NewStore(cfg, redisClient)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// 外部來源與查詢週期
	fetcher := fetch.NewFetcher(
		buildProviders(cfg),
		store,
		image.NewResolver(cfg.Image.FallbackEnabled, cfg.Image.FallbackURL),
		cfg.Fetch.MaxTerms,
	)
	common.LogInfo("外部食譜來源", zap.Strings("providers", fetcher.Providers()))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	queue := fetch.NewQueue(cfg.Fetch.Workers, cfg.Fetch.QueueSize)
	queue.Start(ctx)
	defer queue.Close()

	coordinator := fetch.NewCoordinator(fetcher, queue, cfg.Fetch.CycleTimeout)
	coordinator.SetWaitTimeout(cfg.Fetch.WaitTimeout)

	// 庫存
	slot, err := buildSlot(cfg, redisClient)
	if err != nil {
		common.LogFatal("Failed to initialize inventory storage", zap.Error(err))
	}
	items := inventory.NewService(slot)
	if err := items.Load(ctx); err != nil {
		common.LogFatal("Failed to load inventory", zap.Error(err))
	}
	items.OnChange(coordinator.Invalidate)
	coordinator.Invalidate(items.IngredientNames())

	// 食譜服務
	search := recipe.NewSearchService(recipes)
	suggestions := recipe.NewSuggestionService(search, coordinator, recipe.DefaultHeuristicFilter)

	router := api.SetupRouter(cfg, api.Dependencies{
		Catalog:     recipes,
		Search:      search,
		Suggestions: suggestions,
		Inventory:   items,
		Queue:       queue,
		Cache:       store,
	})

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
			zap.Int("port", cfg.Server.Port),
			zap.Int("catalog_recipes", recipes.Len()),
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
	}

	common.LogInfo("Server exited")
}

// connectRedis 建立並確認 Redis 連線
func connectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Redis.Addr, err)
	}
	return client, nil
}

// buildProviders 依設定啟用外部食譜來源
func buildProviders(cfg *config.Config) []provider.Provider {
	base := provider.Config{
		Timeout:     cfg.Providers.Timeout,
		MaxRetries:  cfg.Providers.MaxRetries,
		DetailLimit: cfg.Providers.DetailLimit,
	}
	with := func(url string) provider.Config {
		c := base
		c.BaseURL = url
		return c
	}

	var providers []provider.Provider
	if cfg.Providers.MealDB.Enabled {
		providers = append(providers, provider.NewMealDB(with(cfg.Providers.MealDB.BaseURL)))
	}
	if cfg.Providers.Forkify.Enabled {
		providers = append(providers, provider.NewForkify(with(cfg.Providers.Forkify.BaseURL)))
	}
	if cfg.Providers.CocktailDB.Enabled {
		providers = append(providers, provider.NewCocktailDB(with(cfg.Providers.CocktailDB.BaseURL)))
	}

	return providers
}

// buildSlot 依設定選擇庫存保存位置
func buildSlot(cfg *config.Config, client *redis.Client) (inventory.Slot, error) {
	switch cfg.Inventory.Backend {
	case config.BackendRedis:
		if client == nil {
			return nil, fmt.Errorf("redis inventory requires a redis client")
		}
		return inventory.NewRedisSlot(client, cfg.Redis.Prefix+":"+cfg.Inventory.Key), nil
	case config.BackendMemory:
		return inventory.NewMemorySlot(nil), nil
	default:
		return inventory.NewFileSlot(cfg.Inventory.Path), nil
	}
}

// Package api 組裝 HTTP 路由與中間件
package api

import (
	"context"
	"net/http"
	"time"

	"recipe-matcher/internal/api/handlers"
	"recipe-matcher/internal/api/handlers/health"
	inventoryHandler "recipe-matcher/internal/api/handlers/inventory"
	recipeHandler "recipe-matcher/internal/api/handlers/recipe"
	"recipe-matcher/internal/api/middleware"
	"recipe-matcher/internal/core/catalog"
	"recipe-matcher/internal/core/inventory"
	recipeService "recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/infrastructure/config"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// timeoutDuration 單一請求的處理上限，推薦請求會等待外部來源
const timeoutDuration = 30 * time.Second

// Dependencies 路由所需的服務
type Dependencies struct {
	Catalog     *catalog.Catalog
	Search      *recipeService.SearchService
	Suggestions *recipeService.SuggestionService
	Inventory   *inventory.Service
	Queue       health.QueueInfo
	Cache       health.CacheInfo
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		router.Use(middleware.RateLimit(limiter, cfg.RateLimit.Window))
	}

	router.Use(requestTimeout(timeoutDuration))

	healthHandler := health.NewHandler(health.Dependencies{
		Version: cfg.App.Version,
		Catalog: deps.Catalog,
		Queue:   deps.Queue,
		Cache:   deps.Cache,
	})
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	{
		recipes := recipeHandler.NewHandler(deps.Search, deps.Suggestions, deps.Catalog, deps.Inventory)

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.POST("/search", recipes.HandleSearch)
			recipeGroup.POST("/suggest", recipes.HandleSuggest)
			recipeGroup.GET("/:id", recipes.HandleGet)
		}

		items := inventoryHandler.NewHandler(deps.Inventory)

		inventoryGroup := api.Group("/inventory")
		inventoryGroup.Use(middleware.Deduplication(middleware.NewDeduplicator(cfg.DedupWindow)))
		{
			inventoryGroup.GET("", items.HandleList)
			inventoryGroup.POST("", items.HandleAdd)
			inventoryGroup.PUT("", items.HandleImport)
			inventoryGroup.DELETE("/:id", items.HandleRemove)
			inventoryGroup.GET("/pantry", items.HandlePantrySuggestions)
			inventoryGroup.POST("/pantry", items.HandlePantryAdd)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		handlers.RespondError(c, common.ErrNotFound)
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("dedup_window", cfg.DedupWindow),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}

// requestTimeout 為請求加上逾時，處理器未回應時回傳 504
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, handlers.ErrorBody{Error: common.ErrorResponse{
				Code:    common.ErrCodeGatewayTimeout,
				Message: common.ErrGatewayTimeout.Message,
			}})
		}
	}
}

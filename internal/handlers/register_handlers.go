package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	libredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/hnv-dev/product_desc_app/cmd/docs"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
)

// loginRateLimit caps login attempts per client IP.
const loginRateLimit = "5-M"

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	r.GET("/", GetHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	loginLimiter := buildLoginLimiter(cfg)

	registerAuthRoutes(r, cfg, services, loginLimiter)
	registerDescriptionRoutes(r, cfg, services)
	registerConversationRoutes(r, cfg, services)
	registerAdminRoutes(r, cfg, services)
	registerPaymentRoutes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// buildLoginLimiter creates the login rate-limit middleware. The counter
// lives in Redis when REDIS_URL is set, so limits hold across replicas;
// otherwise it falls back to a per-process memory store.
func buildLoginLimiter(cfg *config.Config) gin.HandlerFunc {
	rate, _ := limiter.NewRateFromFormatted(loginRateLimit)

	var store limiter.Store
	if cfg.RedisURL != "" {
		opts, err := libredis.ParseURL(cfg.RedisURL)
		if err == nil {
			client := libredis.NewClient(opts)
			store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "descgen:limiter"})
		}
		if err != nil {
			slog.Warn("Redis rate-limit store unavailable, using memory store", slog.String("error", err.Error()))
			store = nil
		}
	}
	if store == nil {
		store = memory.NewStore()
	}

	return limitergin.NewMiddleware(limiter.New(store, rate))
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/voucher_engine/cmd/docs"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/SscSPs/voucher_engine/internal/platform/config"
)

// RouteDeps carries the optional collaborators of the HTTP surface.
type RouteDeps struct {
	// Limiter rate-limits authenticated requests when set.
	Limiter *limiter.Limiter
	// ImportQueue sends imports to the background worker when set.
	ImportQueue ImportEnqueuer
	// Ready reports whether backing stores are reachable.
	Ready func(*gin.Context) error
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		if deps.Ready != nil {
			if err := deps.Ready(c); err != nil {
				middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Health check failed", "error", err)
				c.String(http.StatusServiceUnavailable, "UNAVAILABLE")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, jwt.WithIssuer(cfg.JWTIssuer)))
	if deps.Limiter != nil {
		v1.Use(middleware.RateLimit(deps.Limiter))
	}

	vouchers := registerVoucherRoutes(v1, services.Voucher)
	registerImportRoutes(vouchers, services.Import, deps.ImportQueue)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/voucher_engine/internal/adapters/lock"
	"github.com/SscSPs/voucher_engine/internal/core/services"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/handlers"
	"github.com/SscSPs/voucher_engine/internal/jobs"
	"github.com/SscSPs/voucher_engine/internal/middleware"
	"github.com/SscSPs/voucher_engine/internal/platform/config"
	"github.com/SscSPs/voucher_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/voucher_engine/pkg/cache"
	"github.com/SscSPs/voucher_engine/pkg/database"
)

// @title Voucher Engine API
// @version 1.0
// @description Composes, validates and persists journal vouchers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		return err
	}

	var (
		rdb        *redis.Client
		locker     portssvc.Locker
		limitStore limiter.Store
	)
	redisOpts := cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(ctx, redisOpts)
		if err != nil {
			return err
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, 50*time.Millisecond)
		limitStore, err = redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "ratelimit"})
		if err != nil {
			return err
		}
		logger.Info("Redis connected; distributed number locks enabled.", slog.String("addr", cfg.RedisAddr))
	} else {
		limitStore = memory.NewStore()
		logger.Warn("REDIS_ADDR not set; number locks are process-local.")
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	svc := services.NewServiceContainer(cfg, repos, locker)

	deps := handlers.RouteDeps{
		Limiter: limiter.New(limitStore, rate),
		Ready: func(c *gin.Context) error {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := dbPool.Ping(pingCtx); err != nil {
				return err
			}
			if rdb != nil {
				return rdb.Ping(pingCtx).Err()
			}
			return nil
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	if rdb != nil {
		worker := jobs.NewWorker(jobs.WorkerConfig{
			RedisOpts: redisOpts.AsynqOpts(),
			Queue:     cfg.ImportQueue,
			Logger:    logger,
			Import:    jobs.NewImportJob(svc.Import, logger),
		})
		g.Go(func() error { return worker.Run(gctx) })

		if cfg.ImportAsync {
			client := jobs.NewClient(redisOpts.AsynqOpts(), cfg.ImportQueue)
			defer client.Close()
			deps.ImportQueue = client
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.SecureHeaders(cfg.IsProduction),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, svc, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

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

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"diet_backend/internal/app/di"
	"diet_backend/internal/app/router"
	mealadapters "diet_backend/internal/feature/meals/adapters"
	mealhandler "diet_backend/internal/feature/meals/transport/handler"
	mealusecase "diet_backend/internal/feature/meals/usecase"
	userhandler "diet_backend/internal/feature/users/transport/handler"
	userusecase "diet_backend/internal/feature/users/usecase"
	"diet_backend/internal/platform/config"
	platformdb "diet_backend/internal/platform/db"
	healthhandler "diet_backend/internal/platform/http/handler"
	"diet_backend/internal/platform/ratelimit"
	platformredis "diet_backend/internal/platform/redis"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("failed to load .env; using system environment variables", "error", err)
	}
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.OpenDB(platformdb.LoadConfigFromEnv())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if cfg.RunMigrations {
		if err := platformdb.Migrate(db); err != nil {
			return err
		}
		slog.Info("migrations applied")
	}

	// Redis (optional)
	var rdb *redisv9.Client
	if redisCfg := platformredis.LoadConfigFromEnv(); redisCfg.Host != "" {
		if tmp, err := platformredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable. Running without session cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	userRepo := di.NewUserRepository(db, rdb, cfg.SessionCacheTTL)
	mealRepo := mealadapters.NewMealGorm(db)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo)
	mealUC := mealusecase.NewMealUsecase(mealRepo)

	limiter := ratelimit.NewRateLimiter(cfg.SignupRatePerSec, cfg.SignupBurst)
	go limiter.Run(ctx)

	engine := router.NewRouter(router.Deps{
		Users:          userhandler.NewUserHandler(userUC, cfg.CookieSecure),
		Meals:          mealhandler.NewMealHandler(mealUC),
		Health:         healthhandler.NewHealthHandler(sqlDB),
		Sessions:       userRepo,
		SignupLimiter:  limiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

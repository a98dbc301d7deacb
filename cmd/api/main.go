package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/office-master/internal/audit"
	"github.com/BruksfildServices01/office-master/internal/config"
	dbpkg "github.com/BruksfildServices01/office-master/internal/db"
	infraRepo "github.com/BruksfildServices01/office-master/internal/infra/repository"
	"github.com/BruksfildServices01/office-master/internal/logging"
	"github.com/BruksfildServices01/office-master/internal/middleware"
	"github.com/BruksfildServices01/office-master/internal/reminder"
	"github.com/BruksfildServices01/office-master/internal/routes"
)

func main() {
	cfg := config.Load()
	logger := logging.New("office-master", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("database init failed", "err", err)
		os.Exit(1)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer auditDispatcher.Close()

	// --------------------------------------------------
	// Redis (opcional): limite de tentativas de login
	// --------------------------------------------------
	var loginGuard gin.HandlerFunc
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, login limiter will fail open", "err", err)
		}

		limiter := middleware.NewRateLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow, "office:login")
		loginGuard = limiter.Middleware(logger, true)
	}

	// --------------------------------------------------
	// Lembretes
	// --------------------------------------------------
	sweeper := reminder.NewSweeper(
		infraRepo.NewAppointmentGormRepository(db),
		auditDispatcher,
		logger,
		cfg.DefaultTimezone,
	)
	scheduler, err := sweeper.Start(cfg.ReminderCron)
	if err != nil {
		logger.Error("reminder scheduler failed", "err", err)
		os.Exit(1)
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
	)

	routes.RegisterRoutes(r, db, cfg, auditDispatcher, loginGuard)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}

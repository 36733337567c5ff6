package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/wellcampus/internal/config"
	"github.com/wellcampus/internal/db"
	"github.com/wellcampus/internal/handler"
	"github.com/wellcampus/internal/logger"
	"github.com/wellcampus/internal/metrics"
	"github.com/wellcampus/internal/realtime"
	"github.com/wellcampus/internal/router"
	"github.com/wellcampus/internal/service"
	"github.com/wellcampus/internal/store"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// openDatabase 按配置初始化日志与数据库，供各子命令复用
func openDatabase(cfg config.AppConfig) (*logger.Logger, *gorm.DB, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	gdb, err := db.Open(db.Options{Path: cfg.DatabasePath, DSN: cfg.DatabaseDSN, Silent: true})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return log, gdb, nil
}

func runServe(parent context.Context) error {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	log, gdb, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := db.EnsureAdmin(gdb, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("ensure admin account: %w", err)
	}

	m := metrics.New()
	hub := realtime.NewHub(log.With("component", "realtime"))
	st := store.New(store.NewGormBackend(gdb),
		store.WithLogger(log.With("component", "store")),
		store.WithFailureCounter(m.StoreWriteFailures),
	)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dashboard := service.NewDashboard(ctx, st, service.Options{
		GenerationDelay: cfg.MealGenerationDelay,
		Logger:          log.With("component", "dashboard"),
		Metrics:         m,
		Notifier:        hub,
	})
	defer dashboard.Close()

	api := handler.NewAPI(gdb, dashboard, hub, log)
	r := router.SetupRouter(api, router.Options{
		SessionSecret:  cfg.SessionSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Logger:         log.With("component", "http"),
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", cfg.ListenAddr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server")
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

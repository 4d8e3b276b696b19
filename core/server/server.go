package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"esn-planner/core/cache"
	"esn-planner/core/config"
	"esn-planner/core/database"
	"esn-planner/core/logger"
	"esn-planner/core/middleware"
	"esn-planner/core/queue"
	"esn-planner/core/storage"
	"esn-planner/modules/archive"
	"esn-planner/modules/calendar"
	"esn-planner/modules/consultant"
	"esn-planner/modules/notification"
	"esn-planner/modules/presence"
)

// Run boots the planner: configuration, storage backends, module wiring, the
// HTTP server and, when enabled, the background archival worker.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())

	mw := middleware.NewMiddleware()
	e.Use(mw.RequestID())
	e.Use(mw.RequestLogger())

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Module wiring. Order matters: the notifier feeds every other module and
	// the presence store needs both the roster and the date engine.
	engine := calendar.Init(e)
	notifier := notification.Init(e, db)
	consultants := consultant.Init(e, db, notifier)
	presenceSvc := presence.Init(e, db, redisCache, consultants, engine, notifier)

	asynqClient := queue.NewClient(cfg.Redis)
	defer asynqClient.Close()

	objectStorage := storage.NewS3Storage(cfg.S3)
	asynqServer, mux := queue.NewServer(cfg.Redis)
	archive.Init(e, mux, asynqClient, objectStorage, presenceSvc)

	var scheduler *asynq.Scheduler
	if cfg.Archive.Enabled {
		if err := asynqServer.Start(mux); err != nil {
			return fmt.Errorf("server: start worker: %w", err)
		}

		scheduler = queue.NewScheduler(cfg.Redis)
		task := asynq.NewTask(queue.TaskCalendarExport, []byte(`{}`))
		if _, err := scheduler.Register(cfg.Archive.Cron, task); err != nil {
			return fmt.Errorf("server: register archive schedule: %w", err)
		}
		if err := scheduler.Start(); err != nil {
			return fmt.Errorf("server: start scheduler: %w", err)
		}
		logger.Info("Archive worker started", "cron", cfg.Archive.Cron)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
		}
	}()
	logger.Info("Server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	if scheduler != nil {
		scheduler.Shutdown()
	}
	if cfg.Archive.Enabled {
		asynqServer.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

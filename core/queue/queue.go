package queue

import (
	"github.com/hibiken/asynq"

	"esn-planner/core/config"
	"esn-planner/core/logger"
)

// Task type names handled by the background worker.
const (
	TaskCalendarExport = "archive:calendar_export"
)

// NewClient returns an asynq client for enqueueing background tasks.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewServer returns the asynq worker server. Handlers are registered on the
// returned mux by the modules that own them.
func NewServer(cfg config.RedisConfig) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		asynq.Config{
			Concurrency: 2,
			Logger:      asynqLogger{},
		},
	)
	return srv, asynq.NewServeMux()
}

// NewScheduler returns the asynq scheduler used for periodic archival runs.
func NewScheduler(cfg config.RedisConfig) *asynq.Scheduler {
	return asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
		&asynq.SchedulerOpts{Logger: asynqLogger{}},
	)
}

// asynqLogger routes asynq's log output through the application logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "msg", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "msg", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "msg", args) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "msg", args) }
func (asynqLogger) Fatal(args ...any) { logger.Error("asynq", "msg", args) }

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"esn-planner/core/constants"
	"esn-planner/core/errors"
	"esn-planner/core/logger"
	"esn-planner/core/queue"
	"esn-planner/core/storage"
	"esn-planner/modules/archive/dto"
	presenceDto "esn-planner/modules/presence/dto"
)

// ArchiveServiceInterface defines the service contract
type ArchiveServiceInterface interface {
	Archive(ctx context.Context, year, month int) (string, *errors.AppError)
	Enqueue(ctx context.Context, year, month int) *errors.AppError
	HandleExportTask(ctx context.Context, t *asynq.Task) error
}

// Exporter produces the calendar export file for a period. The presence
// service implements it.
type Exporter interface {
	Export(year, month int) (*presenceDto.ExportFile, *errors.AppError)
}

// ArchiveService uploads calendar exports to object storage, either on demand
// or from the monthly scheduler.
type ArchiveService struct {
	presence Exporter
	storage  storage.ObjectStorage
	client   *asynq.Client
}

// NewArchiveService creates a new archive service
func NewArchiveService(
	presence Exporter,
	store storage.ObjectStorage,
	client *asynq.Client,
) ArchiveServiceInterface {
	return &ArchiveService{
		presence: presence,
		storage:  store,
		client:   client,
	}
}

// Archive exports the presence map and uploads it under
// {prefix}/{year}/{filename}.
func (s *ArchiveService) Archive(ctx context.Context, year, month int) (string, *errors.AppError) {
	file, appErr := s.presence.Export(year, month)
	if appErr != nil {
		return "", appErr
	}

	key := fmt.Sprintf("%s/%d/%s", constants.ArchiveKeyPrefix, year, file.Filename)
	if err := s.storage.Put(ctx, key, file.Data, echo.MIMEApplicationJSON); err != nil {
		logger.Error("ArchiveService:Archive:Error", "error", err, "key", key)
		return "", errors.NewAppError(errors.ErrPersistence, "Erreur lors de l'archivage", err)
	}

	logger.Info("ArchiveService:Archive:Done", "key", key, "bytes", len(file.Data))
	return key, nil
}

// Enqueue schedules an archival run on the background worker.
func (s *ArchiveService) Enqueue(ctx context.Context, year, month int) *errors.AppError {
	payload, err := json.Marshal(dto.ArchiveTaskPayload{Year: year, Month: month})
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Erreur lors de la mise en file", err)
	}

	task := asynq.NewTask(queue.TaskCalendarExport, payload, asynq.MaxRetry(3))
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error("ArchiveService:Enqueue:Error", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "Erreur lors de la mise en file", err)
	}

	logger.Info("ArchiveService:Enqueue:Done", "task_id", info.ID, "year", year, "month", month)
	return nil
}

// HandleExportTask is the asynq handler for queued archival runs. A payload
// without a period archives the previous month, which is what the monthly
// schedule relies on.
func (s *ArchiveService) HandleExportTask(ctx context.Context, t *asynq.Task) error {
	var payload dto.ArchiveTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("archive: bad task payload: %w", err)
	}

	if payload.Year == 0 || payload.Month == 0 {
		now := time.Now()
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
		payload.Year, payload.Month = prev.Year(), int(prev.Month())
	}

	if _, appErr := s.Archive(ctx, payload.Year, payload.Month); appErr != nil {
		return fmt.Errorf("archive: %s", appErr.Message)
	}
	return nil
}

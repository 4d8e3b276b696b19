package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"esn-planner/core/constants"
	coreEntity "esn-planner/core/entity"
	"esn-planner/core/logger"
	"esn-planner/core/params"
	"esn-planner/modules/notification/entity"
	"esn-planner/modules/notification/repository"
)

// Notifier is the narrow interface planner services use to emit toasts.
// Success toasts auto-dismiss; error toasts stay until dismissed.
type Notifier interface {
	Success(ctx context.Context, title, message string)
	Error(ctx context.Context, title, message string)
}

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Success(ctx context.Context, title, message string) {
	s.create(ctx, title, message, entity.StyleSuccess, constants.ToastAutoDismissMS)
}

func (s *NotificationService) Error(ctx context.Context, title, message string) {
	s.create(ctx, title, message, entity.StyleError, 0)
}

// create persists the toast. A failing notification store must never break the
// operation that emitted the toast, so errors are only logged.
func (s *NotificationService) create(ctx context.Context, title, message string, style entity.Style, dismissMS int) {
	now := time.Now()
	notif := &entity.Notification{
		Title:          title,
		Message:        message,
		Style:          style,
		DismissAfterMS: dismissMS,
		IsRead:         false,
		BaseEntity: coreEntity.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		logger.Error("NotificationService:create:Error", "error", err, "title", title)
	}
}

func (s *NotificationService) List(ctx context.Context, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.List(ctx, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, ids []string) error {
	return s.repo.MarkAsRead(ctx, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	return s.repo.MarkAllAsRead(ctx)
}

func (s *NotificationService) CountUnread(ctx context.Context) (int, error) {
	return s.repo.CountUnread(ctx)
}

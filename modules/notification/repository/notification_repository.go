package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"esn-planner/core/database"
	"esn-planner/core/logger"
	"esn-planner/core/params"
	"esn-planner/modules/notification/entity"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, ids []string) error
	MarkAllAsRead(ctx context.Context) error
	CountUnread(ctx context.Context) (int, error)
}

type NotificationRepository struct {
	db database.Database
}

func NewNotificationRepository(db database.Database) NotificationRepositoryInterface {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, title, message, style, dismiss_after_ms, is_read, created_at, updated_at)
		VALUES (:id, :title, :message, :style, :dismiss_after_ms, :is_read, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, p params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications`); err != nil {
		logger.Error("NotificationRepository:List:Count:Error", "error", err)
		return nil, err
	}

	query := `
		SELECT id, title, message, style, dismiss_after_ms, is_read, created_at, updated_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	var notifications []entity.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, p.Limit, p.Offset()); err != nil {
		logger.Error("NotificationRepository:List:Select:Error", "error", err)
		return nil, err
	}

	totalPages := (total + p.Limit - 1) / p.Limit
	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	if err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context) error {
	if err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = true`); err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error", "error", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE is_read = false`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		logger.Error("NotificationRepository:CountUnread:Error", "error", err)
		return 0, err
	}
	return count, nil
}

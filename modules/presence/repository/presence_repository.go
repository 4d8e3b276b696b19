package repository

import (
	"context"
	"time"

	"esn-planner/core/constants"
	"esn-planner/core/database"
	"esn-planner/core/logger"
	"esn-planner/modules/presence/entity"
)

// PresenceRepositoryInterface is the storage port for the presence map. The
// map is loaded and flushed whole; the in-memory copy stays authoritative.
type PresenceRepositoryInterface interface {
	LoadMap(ctx context.Context) (entity.Map, error)
	SaveMap(ctx context.Context, m entity.Map) error
}

type PresenceRepository struct {
	db database.Database
}

func NewPresenceRepository(db database.Database) PresenceRepositoryInterface {
	return &PresenceRepository{db: db}
}

type presenceRow struct {
	ConsultantID int       `db:"consultant_id"`
	Day          time.Time `db:"day"`
	Type         string    `db:"type"`
	Description  string    `db:"description"`
	IsFullDay    bool      `db:"is_full_day"`
	StartTime    *string   `db:"start_time"`
	EndTime      *string   `db:"end_time"`
}

func (r *PresenceRepository) LoadMap(ctx context.Context) (entity.Map, error) {
	query := `
		SELECT consultant_id, day, type, description, is_full_day, start_time, end_time
		FROM presence_entries
	`
	var rows []presenceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		logger.Error("PresenceRepository:LoadMap:Error", "error", err)
		return nil, err
	}

	m := make(entity.Map, len(rows))
	for _, row := range rows {
		m[entity.Key(row.ConsultantID, row.Day)] = entity.Entry{
			Type:        entity.PresenceType(row.Type),
			Description: row.Description,
			IsFullDay:   row.IsFullDay,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
		}
	}
	return m, nil
}

// SaveMap replaces the stored map with the given one in a single transaction,
// so a mid-write failure leaves the previous state intact.
func (r *PresenceRepository) SaveMap(ctx context.Context, m entity.Map) error {
	tx, err := r.db.BeginTxx(ctx)
	if err != nil {
		logger.Error("PresenceRepository:SaveMap:Begin:Error", "error", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM presence_entries`); err != nil {
		logger.Error("PresenceRepository:SaveMap:Delete:Error", "error", err)
		return err
	}

	insert := `
		INSERT INTO presence_entries (consultant_id, day, type, description, is_full_day, start_time, end_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	for key, e := range m {
		consultantID, day, err := entity.ParseKey(key)
		if err != nil {
			logger.Warn("PresenceRepository:SaveMap:SkipKey", "key", key, "error", err)
			continue
		}
		if _, err := tx.ExecContext(ctx, insert,
			consultantID, day.Format(constants.DateLayout),
			string(e.Type), e.Description, e.IsFullDay, e.StartTime, e.EndTime,
		); err != nil {
			logger.Error("PresenceRepository:SaveMap:Insert:Error", "error", err, "key", key)
			return err
		}
	}

	return tx.Commit()
}

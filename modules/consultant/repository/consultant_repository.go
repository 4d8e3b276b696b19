package repository

import (
	"context"

	"esn-planner/core/database"
	"esn-planner/core/logger"
	"esn-planner/modules/consultant/entity"
)

// ConsultantRepositoryInterface is the storage port for the roster. The whole
// list is read and written as a unit; the in-memory copy held by the service
// stays authoritative.
type ConsultantRepositoryInterface interface {
	LoadAll(ctx context.Context) ([]entity.Consultant, error)
	SaveAll(ctx context.Context, consultants []entity.Consultant) error
}

type ConsultantRepository struct {
	db database.Database
}

func NewConsultantRepository(db database.Database) ConsultantRepositoryInterface {
	return &ConsultantRepository{db: db}
}

func (r *ConsultantRepository) LoadAll(ctx context.Context) ([]entity.Consultant, error) {
	query := `
		SELECT id, name, role, created_at, updated_at
		FROM consultants
		ORDER BY id
	`
	var consultants []entity.Consultant
	if err := r.db.SelectContext(ctx, &consultants, query); err != nil {
		logger.Error("ConsultantRepository:LoadAll:Error", "error", err)
		return nil, err
	}
	return consultants, nil
}

// SaveAll replaces the stored roster with the given list in one transaction.
func (r *ConsultantRepository) SaveAll(ctx context.Context, consultants []entity.Consultant) error {
	tx, err := r.db.BeginTxx(ctx)
	if err != nil {
		logger.Error("ConsultantRepository:SaveAll:Begin:Error", "error", err)
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM consultants`); err != nil {
		logger.Error("ConsultantRepository:SaveAll:Delete:Error", "error", err)
		return err
	}

	insert := `
		INSERT INTO consultants (id, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, c := range consultants {
		if _, err := tx.ExecContext(ctx, insert, c.ID, c.Name, c.Role, c.CreatedAt, c.UpdatedAt); err != nil {
			logger.Error("ConsultantRepository:SaveAll:Insert:Error", "error", err, "consultant_id", c.ID)
			return err
		}
	}

	return tx.Commit()
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/equipment/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) LatestUsage(ctx context.Context, equipmentID string) (*model.EquipmentUsage, error) {
	var usage model.EquipmentUsage
	err := r.DB.GetContext(ctx, &usage, r.DB.Rebind(`
		SELECT * FROM equipment_usage
		WHERE equipment_id = ?
		ORDER BY in_use_date DESC, id DESC
		LIMIT 1
	`), equipmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &usage, nil
}

func (r *PGRepository) LatestUsageForStage(ctx context.Context, equipmentID, batchStageID string) (*model.EquipmentUsage, error) {
	var usage model.EquipmentUsage
	err := r.DB.GetContext(ctx, &usage, r.DB.Rebind(`
		SELECT * FROM equipment_usage
		WHERE equipment_id = ? AND batch_stage_id = ?
		ORDER BY in_use_date DESC, id DESC
		LIMIT 1
	`), equipmentID, batchStageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &usage, nil
}

func (r *PGRepository) CreateUsage(ctx context.Context, usage *model.EquipmentUsage) error {
	query := `
		INSERT INTO equipment_usage (
			id, equipment_id, batch_stage_id, in_use_date, release_date, status
		)
		VALUES (:id, :equipment_id, :batch_stage_id, :in_use_date, :release_date, :status)
	`
	_, err := r.DB.NamedExecContext(ctx, query, usage)
	return err
}

func (r *PGRepository) ReleaseUsage(ctx context.Context, usageID string, releaseDate time.Time) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		UPDATE equipment_usage SET release_date = ?, status = ? WHERE id = ?
	`), releaseDate, model.UsageAvailable, usageID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("equipment usage", usageID)
	}
	return nil
}

func (r *PGRepository) ListInUseByStage(ctx context.Context, batchStageID string) ([]model.EquipmentUsage, error) {
	var usages []model.EquipmentUsage
	err := r.DB.SelectContext(ctx, &usages, r.DB.Rebind(`
		SELECT * FROM equipment_usage
		WHERE batch_stage_id = ? AND status = ?
	`), batchStageID, model.UsageInUse)
	return usages, err
}

func (r *PGRepository) ListInUseByBatch(ctx context.Context, batchID string) ([]model.EquipmentUsage, error) {
	var usages []model.EquipmentUsage
	err := r.DB.SelectContext(ctx, &usages, r.DB.Rebind(`
		SELECT u.* FROM equipment_usage u
		JOIN batch_stages s ON s.id = u.batch_stage_id
		WHERE s.batch_id = ? AND u.status = ?
	`), batchID, model.UsageInUse)
	return usages, err
}

func (r *PGRepository) ListAvailableEquipment(ctx context.Context, filters *dto.AvailableFilters) ([]model.Equipment, error) {
	// With at most one in-use row per equipment, "most recent row released
	// or never used" reduces to "no in-use row exists".
	query := `
		SELECT e.* FROM equipment e
		WHERE e.is_active AND e.can_be_occupied
		  AND NOT EXISTS (
			SELECT 1 FROM equipment_usage u
			WHERE u.equipment_id = e.id AND u.status = ?
		  )
	`
	args := []interface{}{model.UsageInUse}
	if filters != nil && filters.EquipmentType != "" {
		query += ` AND e.equipment_type = ?`
		args = append(args, filters.EquipmentType)
	}
	query = strings.TrimSpace(query) + ` ORDER BY e.name ASC`

	var items []model.Equipment
	err := r.DB.SelectContext(ctx, &items, r.DB.Rebind(query), args...)
	return items, err
}

type currentUsageRow struct {
	model.EquipmentUsage
	BatchID   string `db:"batch_id"`
	BatchName string `db:"batch_name"`
	StageName string `db:"stage_name"`
}

func (r *PGRepository) CurrentUsage(ctx context.Context, equipmentID string) (*dto.CurrentUsage, error) {
	var row currentUsageRow
	err := r.DB.GetContext(ctx, &row, r.DB.Rebind(`
		SELECT u.*, b.id AS batch_id, b.name AS batch_name, s.stage_name AS stage_name
		FROM equipment_usage u
		JOIN batch_stages s ON s.id = u.batch_stage_id
		JOIN batches b ON b.id = s.batch_id
		WHERE u.equipment_id = ? AND u.status = ?
	`), equipmentID, model.UsageInUse)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &dto.CurrentUsage{
		Usage:     row.EquipmentUsage,
		BatchID:   row.BatchID,
		BatchName: row.BatchName,
		StageName: row.StageName,
	}, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DominicBeniamin/brewcode-sub000/internal/analytics/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetBatch(ctx context.Context, id string) (*model.Batch, error) {
	var b model.Batch
	err := r.DB.GetContext(ctx, &b,
		r.DB.Rebind(`SELECT * FROM batches WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("batch", id)
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGRepository) ListStages(ctx context.Context, batchID string) ([]model.BatchStage, error) {
	var stages []model.BatchStage
	err := r.DB.SelectContext(ctx, &stages, r.DB.Rebind(`
		SELECT * FROM batch_stages WHERE batch_id = ? ORDER BY stage_order ASC
	`), batchID)
	return stages, err
}

func (r *PGRepository) ListMeasurements(ctx context.Context, batchID string) ([]model.BatchMeasurement, error) {
	var ms []model.BatchMeasurement
	err := r.DB.SelectContext(ctx, &ms, r.DB.Rebind(`
		SELECT m.* FROM batch_measurements m
		JOIN batch_stages s ON s.id = m.batch_stage_id
		WHERE s.batch_id = ?
		ORDER BY m.measurement_date ASC
	`), batchID)
	return ms, err
}

func (r *PGRepository) ListUsages(ctx context.Context, batchID string) ([]dto.UsageWithEquipment, error) {
	var usages []dto.UsageWithEquipment
	err := r.DB.SelectContext(ctx, &usages, r.DB.Rebind(`
		SELECT u.*, e.name AS equipment_name
		FROM equipment_usage u
		JOIN equipment e ON e.id = u.equipment_id
		JOIN batch_stages s ON s.id = u.batch_stage_id
		WHERE s.batch_id = ?
		ORDER BY u.in_use_date ASC
	`), batchID)
	return usages, err
}

func (r *PGRepository) ListIngredients(ctx context.Context, batchID string) ([]model.BatchIngredient, error) {
	var ings []model.BatchIngredient
	err := r.DB.SelectContext(ctx, &ings, r.DB.Rebind(`
		SELECT i.* FROM batch_ingredients i
		JOIN batch_stages s ON s.id = i.batch_stage_id
		WHERE s.batch_id = ?
	`), batchID)
	return ings, err
}

func (r *PGRepository) GetLot(ctx context.Context, lotID string) (*model.InventoryLot, error) {
	var lot model.InventoryLot
	err := r.DB.GetContext(ctx, &lot,
		r.DB.Rebind(`SELECT * FROM inventory_lots WHERE id = ?`), lotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("inventory lot", lotID)
		}
		return nil, err
	}
	return &lot, nil
}

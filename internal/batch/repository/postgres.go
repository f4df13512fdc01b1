package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/batch/dto"
	invdto "github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	invrepo "github.com/DominicBeniamin/brewcode-sub000/internal/inventory/repository"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertStageQuery = `
	INSERT INTO batch_stages (
		id, batch_id, stage_type_id, stage_name, stage_order, instructions,
		expected_duration_days, start_date, end_date, status,
		allow_multiple_additions, notes
	)
	VALUES (
		:id, :batch_id, :stage_type_id, :stage_name, :stage_order, :instructions,
		:expected_duration_days, :start_date, :end_date, :status,
		:allow_multiple_additions, :notes
	)
`

const insertIngredientQuery = `
	INSERT INTO batch_ingredients (
		id, batch_stage_id, ingredient_type_id, ingredient_type_name,
		planned_amount, planned_unit, actual_amount, actual_unit,
		ingredient_id, ingredient_name, inventory_lot_id, notes
	)
	VALUES (
		:id, :batch_stage_id, :ingredient_type_id, :ingredient_type_name,
		:planned_amount, :planned_unit, :actual_amount, :actual_unit,
		:ingredient_id, :ingredient_name, :inventory_lot_id, :notes
	)
`

const updateBatchQuery = `
	UPDATE batches SET
		name = :name, start_date = :start_date, end_date = :end_date,
		current_stage_id = :current_stage_id, status = :status,
		abandon_reason = :abandon_reason, notes = :notes, updated_at = :updated_at
	WHERE id = :id
`

const updateStageQuery = `
	UPDATE batch_stages SET
		start_date = :start_date, end_date = :end_date, status = :status,
		notes = :notes
	WHERE id = :id
`

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

func (r *PGRepository) GetBatchGraph(ctx context.Context, id string) (*model.Batch, error) {
	b, err := r.GetBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	stages, err := r.ListStages(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range stages {
		var ingredients []model.BatchIngredient
		err = r.DB.SelectContext(ctx, &ingredients,
			r.DB.Rebind(`SELECT * FROM batch_ingredients WHERE batch_stage_id = ?`), stages[i].ID)
		if err != nil {
			return nil, err
		}
		stages[i].Ingredients = ingredients
	}
	b.Stages = stages
	return b, nil
}

func (r *PGRepository) GetStage(ctx context.Context, id string) (*model.BatchStage, error) {
	var s model.BatchStage
	err := r.DB.GetContext(ctx, &s,
		r.DB.Rebind(`SELECT * FROM batch_stages WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("batch stage", id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) ListStages(ctx context.Context, batchID string) ([]model.BatchStage, error) {
	var stages []model.BatchStage
	err := r.DB.SelectContext(ctx, &stages, r.DB.Rebind(`
		SELECT * FROM batch_stages WHERE batch_id = ? ORDER BY stage_order ASC
	`), batchID)
	return stages, err
}

func (r *PGRepository) GetBatchIngredient(ctx context.Context, id string) (*model.BatchIngredient, error) {
	var ing model.BatchIngredient
	err := r.DB.GetContext(ctx, &ing,
		r.DB.Rebind(`SELECT * FROM batch_ingredients WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("batch ingredient", id)
		}
		return nil, err
	}
	return &ing, nil
}

func (r *PGRepository) CreateBatchGraph(ctx context.Context, b *model.Batch) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insertBatch := `
		INSERT INTO batches (
			id, recipe_id, name, recipe_name, actual_batch_size_l, start_date,
			end_date, current_stage_id, status, abandon_reason, notes,
			created_at, updated_at
		)
		VALUES (
			:id, :recipe_id, :name, :recipe_name, :actual_batch_size_l, :start_date,
			:end_date, :current_stage_id, :status, :abandon_reason, :notes,
			:created_at, :updated_at
		)
	`
	if _, err := tx.NamedExecContext(ctx, insertBatch, b); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for i := range b.Stages {
		stage := &b.Stages[i]
		if _, err := tx.NamedExecContext(ctx, insertStageQuery, stage); err != nil {
			return fmt.Errorf("insert stage %d: %w", stage.StageOrder, err)
		}
		for j := range stage.Ingredients {
			if _, err := tx.NamedExecContext(ctx, insertIngredientQuery, &stage.Ingredients[j]); err != nil {
				return fmt.Errorf("insert ingredient for stage %d: %w", stage.StageOrder, err)
			}
		}
	}
	return tx.Commit()
}

func (r *PGRepository) UpdateBatch(ctx context.Context, b *model.Batch) error {
	b.UpdatedAt = time.Now()
	_, err := r.DB.NamedExecContext(ctx, updateBatchQuery, b)
	return err
}

func (r *PGRepository) UpdateStage(ctx context.Context, s *model.BatchStage) error {
	_, err := r.DB.NamedExecContext(ctx, updateStageQuery, s)
	return err
}

func (r *PGRepository) UpdateStageAndBatch(ctx context.Context, s *model.BatchStage, b *model.Batch) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, updateStageQuery, s); err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	b.UpdatedAt = time.Now()
	if _, err := tx.NamedExecContext(ctx, updateBatchQuery, b); err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return tx.Commit()
}

func (r *PGRepository) CompleteStage(ctx context.Context, plan *dto.StageCompletionPlan) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, updateStageQuery, plan.Stage); err != nil {
		return fmt.Errorf("update stage: %w", err)
	}

	if err := releaseUsages(ctx, tx, plan.ReleaseUsageIDs, plan.ReleaseDate); err != nil {
		return err
	}

	if plan.NextStage != nil {
		if _, err := tx.NamedExecContext(ctx, updateStageQuery, plan.NextStage); err != nil {
			return fmt.Errorf("start next stage: %w", err)
		}
	}

	plan.Batch.UpdatedAt = time.Now()
	if _, err := tx.NamedExecContext(ctx, updateBatchQuery, plan.Batch); err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return tx.Commit()
}

func (r *PGRepository) AbandonBatch(ctx context.Context, b *model.Batch, usageIDs []string, endDate time.Time) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	b.UpdatedAt = time.Now()
	if _, err := tx.NamedExecContext(ctx, updateBatchQuery, b); err != nil {
		return 0, fmt.Errorf("update batch: %w", err)
	}

	if err := releaseUsages(ctx, tx, usageIDs, endDate); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(usageIDs), nil
}

func (r *PGRepository) RecordUsage(ctx context.Context, ing *model.BatchIngredient, lotUpdates []invdto.LotUpdate) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `
		UPDATE batch_ingredients SET
			actual_amount = :actual_amount, actual_unit = :actual_unit,
			ingredient_id = :ingredient_id, ingredient_name = :ingredient_name,
			inventory_lot_id = :inventory_lot_id, notes = :notes
		WHERE id = :id
	`
	if _, err := tx.NamedExecContext(ctx, update, ing); err != nil {
		return fmt.Errorf("update batch ingredient: %w", err)
	}

	if err := invrepo.ApplyLotUpdatesTx(ctx, tx, lotUpdates); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) AddMeasurement(ctx context.Context, m *model.BatchMeasurement) error {
	query := `
		INSERT INTO batch_measurements (
			id, batch_stage_id, measurement_date, measurement_type, value, unit, notes
		)
		VALUES (:id, :batch_stage_id, :measurement_date, :measurement_type, :value, :unit, :notes)
	`
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return err
}

func releaseUsages(ctx context.Context, tx *sqlx.Tx, usageIDs []string, releaseDate time.Time) error {
	if len(usageIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`
		UPDATE equipment_usage SET release_date = ?, status = ? WHERE id IN (?)
	`, releaseDate, model.UsageAvailable, usageIDs)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("release equipment: %w", err)
	}
	return nil
}

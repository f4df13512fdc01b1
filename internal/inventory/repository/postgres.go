package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
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

func (r *PGRepository) CreateLot(ctx context.Context, lot *model.InventoryLot) error {
	query := `
		INSERT INTO inventory_lots (
			id, ingredient_id, quantity_purchased, quantity_remaining, unit,
			purchase_date, expiration_date, cost_per_unit, supplier, notes,
			status, created_at, updated_at
		)
		VALUES (
			:id, :ingredient_id, :quantity_purchased, :quantity_remaining, :unit,
			:purchase_date, :expiration_date, :cost_per_unit, :supplier, :notes,
			:status, :created_at, :updated_at
		)
	`
	_, err := r.DB.NamedExecContext(ctx, query, lot)
	return err
}

func (r *PGRepository) ListAvailable(ctx context.Context, ingredientID string) ([]model.InventoryLot, error) {
	var lots []model.InventoryLot
	err := r.DB.SelectContext(ctx, &lots, r.DB.Rebind(`
		SELECT * FROM inventory_lots
		WHERE ingredient_id = ? AND status = ? AND quantity_remaining > 0
		ORDER BY purchase_date ASC, id ASC
	`), ingredientID, model.LotActive)
	return lots, err
}

func (r *PGRepository) ListByIngredient(ctx context.Context, ingredientID string) ([]model.InventoryLot, error) {
	var lots []model.InventoryLot
	err := r.DB.SelectContext(ctx, &lots, r.DB.Rebind(`
		SELECT * FROM inventory_lots
		WHERE ingredient_id = ?
		ORDER BY purchase_date DESC, id DESC
	`), ingredientID)
	return lots, err
}

func (r *PGRepository) UpdateLotStatus(ctx context.Context, lotID string, status model.LotStatus) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
		UPDATE inventory_lots SET status = ?, updated_at = ? WHERE id = ?
	`), status, time.Now(), lotID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("inventory lot", lotID)
	}
	return nil
}

func (r *PGRepository) ApplyConsumption(ctx context.Context, updates []dto.LotUpdate) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := applyLotUpdates(ctx, tx, updates); err != nil {
		return err
	}
	return tx.Commit()
}

// applyLotUpdates runs inside an open transaction so callers can combine
// lot updates with writes to other tables.
func applyLotUpdates(ctx context.Context, tx *sqlx.Tx, updates []dto.LotUpdate) error {
	now := time.Now()
	for _, u := range updates {
		res, err := tx.ExecContext(ctx, tx.Rebind(`
			UPDATE inventory_lots
			SET quantity_remaining = ?, status = ?, updated_at = ?
			WHERE id = ?
		`), u.QuantityRemaining, u.Status, now, u.LotID)
		if err != nil {
			return fmt.Errorf("update lot %s: %w", u.LotID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return apperrors.NotFound("inventory lot", u.LotID)
		}
	}
	return nil
}

// ApplyLotUpdatesTx exposes the in-transaction helper to repositories that
// need to consume inventory as part of their own transaction.
func ApplyLotUpdatesTx(ctx context.Context, tx *sqlx.Tx, updates []dto.LotUpdate) error {
	return applyLotUpdates(ctx, tx, updates)
}

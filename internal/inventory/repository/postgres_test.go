package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/DominicBeniamin/brewcode-sub000/internal/store"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/database/sqlite"
	"github.com/jmoiron/sqlx"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlite.NewMemory()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedIngredient(t *testing.T, db *sqlx.DB, id string) {
	t.Helper()
	now := time.Now()
	if _, err := db.Exec(
		`INSERT INTO ingredient_types (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		"it-"+id, "Type of "+id, now, now); err != nil {
		t.Fatalf("seed ingredient type: %v", err)
	}
	if _, err := db.Exec(
		`INSERT INTO ingredients (id, ingredient_type_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, "it-"+id, "Ingredient "+id, now, now); err != nil {
		t.Fatalf("seed ingredient: %v", err)
	}
}

func lot(id, ingredientID string, qty float64, purchased time.Time) *model.InventoryLot {
	now := time.Now()
	return &model.InventoryLot{
		BaseModel:         model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		IngredientID:      ingredientID,
		QuantityPurchased: qty,
		QuantityRemaining: qty,
		Unit:              "kg",
		PurchaseDate:      purchased,
		Status:            model.LotActive,
	}
}

func TestCreateAndGetLot(t *testing.T) {
	db := newTestDB(t)
	seedIngredient(t, db, "malt")
	repo := NewPGRepository(db)
	ctx := context.Background()

	cost := 2.5
	in := lot("lot1", "malt", 10, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	in.CostPerUnit = &cost
	in.Supplier = "Mill & Co"
	if err := repo.CreateLot(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetLot(ctx, "lot1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QuantityRemaining != 10 || got.Unit != "kg" || got.Status != model.LotActive {
		t.Fatalf("unexpected lot %+v", got)
	}
	if got.CostPerUnit == nil || *got.CostPerUnit != 2.5 {
		t.Fatalf("cost per unit lost: %+v", got.CostPerUnit)
	}
	if got.ExpirationDate != nil {
		t.Fatalf("expiration should be null: %v", got.ExpirationDate)
	}

	if _, err := repo.GetLot(ctx, "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAvailableFIFO(t *testing.T) {
	db := newTestDB(t)
	seedIngredient(t, db, "malt")
	seedIngredient(t, db, "hops")
	repo := NewPGRepository(db)
	ctx := context.Background()

	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	// inserted newest first to prove the ordering comes from the query
	for _, l := range []*model.InventoryLot{
		lot("z-feb", "malt", 5, feb),
		lot("b-jan", "malt", 5, jan),
		lot("a-jan", "malt", 5, jan), // same date as b-jan, id breaks the tie
		lot("other", "hops", 5, jan),
	} {
		if err := repo.CreateLot(ctx, l); err != nil {
			t.Fatalf("create %s: %v", l.ID, err)
		}
	}

	// drained and expired lots are not available
	drained := lot("drained", "malt", 3, jan)
	drained.QuantityRemaining = 0
	drained.Status = model.LotConsumed
	if err := repo.CreateLot(ctx, drained); err != nil {
		t.Fatalf("create drained: %v", err)
	}
	expired := lot("expired", "malt", 3, jan)
	expired.Status = model.LotExpired
	if err := repo.CreateLot(ctx, expired); err != nil {
		t.Fatalf("create expired: %v", err)
	}

	lots, err := repo.ListAvailable(ctx, "malt")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, l := range lots {
		ids = append(ids, l.ID)
	}
	want := []string{"a-jan", "b-jan", "z-feb"}
	if len(ids) != len(want) {
		t.Fatalf("got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v, want %v", ids, want)
		}
	}
}

func TestApplyConsumption(t *testing.T) {
	db := newTestDB(t)
	seedIngredient(t, db, "malt")
	repo := NewPGRepository(db)
	ctx := context.Background()

	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.CreateLot(ctx, lot("lot1", "malt", 5, jan)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateLot(ctx, lot("lot2", "malt", 5, jan.AddDate(0, 1, 0))); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.ApplyConsumption(ctx, []dto.LotUpdate{
		{LotID: "lot1", QuantityRemaining: 0, Status: model.LotConsumed},
		{LotID: "lot2", QuantityRemaining: 3, Status: model.LotActive},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, err := repo.GetLot(ctx, "lot1")
	if err != nil {
		t.Fatalf("get lot1: %v", err)
	}
	if got.QuantityRemaining != 0 || got.Status != model.LotConsumed {
		t.Fatalf("lot1 not updated: %+v", got)
	}
	got, err = repo.GetLot(ctx, "lot2")
	if err != nil {
		t.Fatalf("get lot2: %v", err)
	}
	if got.QuantityRemaining != 3 || got.Status != model.LotActive {
		t.Fatalf("lot2 not updated: %+v", got)
	}
}

func TestApplyConsumptionRollsBack(t *testing.T) {
	db := newTestDB(t)
	seedIngredient(t, db, "malt")
	repo := NewPGRepository(db)
	ctx := context.Background()

	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.CreateLot(ctx, lot("lot1", "malt", 5, jan)); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.ApplyConsumption(ctx, []dto.LotUpdate{
		{LotID: "lot1", QuantityRemaining: 0, Status: model.LotConsumed},
		{LotID: "ghost", QuantityRemaining: 1, Status: model.LotActive},
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// the whole batch of updates must roll back
	got, err := repo.GetLot(ctx, "lot1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.QuantityRemaining != 5 || got.Status != model.LotActive {
		t.Fatalf("lot1 should be untouched after rollback: %+v", got)
	}
}

func TestUpdateLotStatus(t *testing.T) {
	db := newTestDB(t)
	seedIngredient(t, db, "malt")
	repo := NewPGRepository(db)
	ctx := context.Background()

	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.CreateLot(ctx, lot("lot1", "malt", 5, jan)); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateLotStatus(ctx, "lot1", model.LotExpired); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.GetLot(ctx, "lot1")
	if got.Status != model.LotExpired || got.QuantityRemaining != 5 {
		t.Fatalf("unexpected lot %+v", got)
	}

	if err := repo.UpdateLotStatus(ctx, "ghost", model.LotExpired); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByIngredientNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedIngredient(t, db, "malt")
	repo := NewPGRepository(db)
	ctx := context.Background()

	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.CreateLot(ctx, lot("old", "malt", 5, jan)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateLot(ctx, lot("new", "malt", 5, feb)); err != nil {
		t.Fatalf("create: %v", err)
	}

	lots, err := repo.ListByIngredient(ctx, "malt")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lots) != 2 || lots[0].ID != "new" || lots[1].ID != "old" {
		t.Fatalf("history should be newest first: %+v", lots)
	}
}

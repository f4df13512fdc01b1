package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/batch/dto"
	invdto "github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
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

// seedCatalog inserts the reference rows every batch graph needs.
func seedCatalog(t *testing.T, db *sqlx.DB) {
	t.Helper()
	now := time.Now()
	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO ingredient_types (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			[]any{"it1", "Fruit", now, now}},
		{`INSERT INTO ingredients (id, ingredient_type_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			[]any{"ing1", "it1", "Orchard Blend", now, now}},
		{`INSERT INTO stage_types (id, name, is_required, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			[]any{"st1", "Primary", true, now, now}},
		{`INSERT INTO recipes (id, name, batch_size_l, is_draft, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"r1", "House Cider", 10.0, false, now, now}},
		{`INSERT INTO equipment (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			[]any{"eq1", "Fermenter A", now, now}},
		{`INSERT INTO inventory_lots (
			id, ingredient_id, quantity_purchased, quantity_remaining, unit,
			purchase_date, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"lot1", "ing1", 20.0, 20.0, "l", now, string(model.LotActive), now, now}},
	}
	for _, s := range stmts {
		if _, err := db.Exec(s.q, s.args...); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func testBatch() *model.Batch {
	now := time.Now()
	b := &model.Batch{
		BaseModel:        model.BaseModel{ID: "b1", CreatedAt: now, UpdatedAt: now},
		RecipeID:         "r1",
		Name:             "Batch 1",
		RecipeName:       "House Cider",
		ActualBatchSizeL: 20,
		Status:           model.BatchPlanned,
	}
	b.Stages = []model.BatchStage{
		{
			ID: "s1", BatchID: "b1", StageTypeID: "st1", StageName: "Primary",
			StageOrder: 1, Status: model.StagePending,
			Ingredients: []model.BatchIngredient{
				{ID: "bi1", BatchStageID: "s1", IngredientTypeID: "it1",
					IngredientTypeName: "Fruit", PlannedAmount: 20, PlannedUnit: "l"},
			},
		},
		{
			ID: "s2", BatchID: "b1", StageTypeID: "st1", StageName: "Secondary",
			StageOrder: 2, Status: model.StagePending,
		},
	}
	return b
}

func TestCreateAndGetBatchGraph(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPGRepository(db)
	ctx := context.Background()

	if err := repo.CreateBatchGraph(ctx, testBatch()); err != nil {
		t.Fatalf("create graph: %v", err)
	}

	got, err := repo.GetBatchGraph(ctx, "b1")
	if err != nil {
		t.Fatalf("get graph: %v", err)
	}
	if got.RecipeName != "House Cider" || got.Status != model.BatchPlanned {
		t.Fatalf("unexpected batch %+v", got)
	}
	if len(got.Stages) != 2 || got.Stages[0].StageOrder != 1 || got.Stages[1].StageOrder != 2 {
		t.Fatalf("stages missing or misordered: %+v", got.Stages)
	}
	if len(got.Stages[0].Ingredients) != 1 || got.Stages[0].Ingredients[0].ID != "bi1" {
		t.Fatalf("ingredients not attached: %+v", got.Stages[0].Ingredients)
	}
	if got.Stages[0].Ingredients[0].ActualAmount != nil {
		t.Fatalf("actuals should start null: %+v", got.Stages[0].Ingredients[0])
	}

	if _, err := repo.GetBatchGraph(ctx, "ghost"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBatchGraphRollsBack(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPGRepository(db)
	ctx := context.Background()

	b := testBatch()
	b.Stages[1].StageTypeID = "missing-type" // violates the foreign key

	if err := repo.CreateBatchGraph(ctx, b); err == nil {
		t.Fatal("expected foreign key failure")
	}
	// no partial graph may survive
	if _, err := repo.GetBatch(ctx, "b1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("batch row should roll back, got %v", err)
	}
	if _, err := repo.GetStage(ctx, "s1"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("stage row should roll back, got %v", err)
	}
}

func TestCompleteStagePlan(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPGRepository(db)
	ctx := context.Background()

	b := testBatch()
	if err := repo.CreateBatchGraph(ctx, b); err != nil {
		t.Fatalf("create graph: %v", err)
	}

	start := time.Now().Add(-48 * time.Hour)
	if _, err := db.Exec(
		`INSERT INTO equipment_usage (id, equipment_id, batch_stage_id, in_use_date, status) VALUES (?, ?, ?, ?, ?)`,
		"u1", "eq1", "s1", start, string(model.UsageInUse)); err != nil {
		t.Fatalf("seed usage: %v", err)
	}

	end := time.Now()
	stage1, err := repo.GetStage(ctx, "s1")
	if err != nil {
		t.Fatalf("get stage: %v", err)
	}
	stage1.Status = model.StageCompleted
	stage1.EndDate = &end

	stage2, err := repo.GetStage(ctx, "s2")
	if err != nil {
		t.Fatalf("get stage: %v", err)
	}
	stage2.Status = model.StageActive
	stage2.StartDate = &end

	batch, err := repo.GetBatch(ctx, "b1")
	if err != nil {
		t.Fatalf("get batch: %v", err)
	}
	batch.CurrentStageID = &stage2.ID

	err = repo.CompleteStage(ctx, &dto.StageCompletionPlan{
		Stage:           stage1,
		Batch:           batch,
		ReleaseUsageIDs: []string{"u1"},
		ReleaseDate:     end,
		NextStage:       stage2,
	})
	if err != nil {
		t.Fatalf("complete stage: %v", err)
	}

	got1, _ := repo.GetStage(ctx, "s1")
	if got1.Status != model.StageCompleted || got1.EndDate == nil {
		t.Fatalf("stage1 not completed: %+v", got1)
	}
	got2, _ := repo.GetStage(ctx, "s2")
	if got2.Status != model.StageActive || got2.StartDate == nil {
		t.Fatalf("stage2 not started: %+v", got2)
	}
	gotB, _ := repo.GetBatch(ctx, "b1")
	if gotB.CurrentStageID == nil || *gotB.CurrentStageID != "s2" {
		t.Fatalf("current stage not advanced: %+v", gotB)
	}

	var usage model.EquipmentUsage
	if err := db.Get(&usage, db.Rebind(`SELECT * FROM equipment_usage WHERE id = ?`), "u1"); err != nil {
		t.Fatalf("get usage: %v", err)
	}
	if usage.Status != model.UsageAvailable || usage.ReleaseDate == nil {
		t.Fatalf("usage not released: %+v", usage)
	}
}

func TestAbandonBatchReleasesUsages(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPGRepository(db)
	ctx := context.Background()

	if err := repo.CreateBatchGraph(ctx, testBatch()); err != nil {
		t.Fatalf("create graph: %v", err)
	}
	now := time.Now()
	for _, id := range []string{"u1", "u2"} {
		if _, err := db.Exec(
			`INSERT INTO equipment_usage (id, equipment_id, batch_stage_id, in_use_date, status) VALUES (?, ?, ?, ?, ?)`,
			id, "eq1", "s1", now, string(model.UsageInUse)); err != nil {
			t.Fatalf("seed usage: %v", err)
		}
	}

	b, err := repo.GetBatch(ctx, "b1")
	if err != nil {
		t.Fatalf("get batch: %v", err)
	}
	reason := "stuck fermentation"
	end := time.Now()
	b.Status = model.BatchAbandoned
	b.EndDate = &end
	b.AbandonReason = &reason

	released, err := repo.AbandonBatch(ctx, b, []string{"u1", "u2"}, end)
	if err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if released != 2 {
		t.Fatalf("expected 2 released, got %d", released)
	}

	got, _ := repo.GetBatch(ctx, "b1")
	if got.Status != model.BatchAbandoned || got.AbandonReason == nil || *got.AbandonReason != reason {
		t.Fatalf("unexpected batch %+v", got)
	}
	var n int
	if err := db.Get(&n, db.Rebind(`SELECT COUNT(*) FROM equipment_usage WHERE status = ?`), model.UsageInUse); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("%d usages still in use", n)
	}
}

func TestRecordUsageTx(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPGRepository(db)
	ctx := context.Background()

	if err := repo.CreateBatchGraph(ctx, testBatch()); err != nil {
		t.Fatalf("create graph: %v", err)
	}

	ing, err := repo.GetBatchIngredient(ctx, "bi1")
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	amount, unit := 20.0, "l"
	itemID, itemName, lotID := "ing1", "Orchard Blend", "lot1"
	ing.ActualAmount = &amount
	ing.ActualUnit = &unit
	ing.IngredientID = &itemID
	ing.IngredientName = &itemName
	ing.InventoryLotID = &lotID

	err = repo.RecordUsage(ctx, ing, []invdto.LotUpdate{
		{LotID: "lot1", QuantityRemaining: 0, Status: model.LotConsumed},
	})
	if err != nil {
		t.Fatalf("record usage: %v", err)
	}

	got, _ := repo.GetBatchIngredient(ctx, "bi1")
	if got.ActualAmount == nil || *got.ActualAmount != 20 {
		t.Fatalf("actuals not written: %+v", got)
	}
	if got.InventoryLotID == nil || *got.InventoryLotID != "lot1" {
		t.Fatalf("lot link not written: %+v", got)
	}
	if got.PlannedAmount != 20 || got.PlannedUnit != "l" {
		t.Fatalf("planned fields must not change: %+v", got)
	}

	var remaining float64
	var status string
	row := db.QueryRow(db.Rebind(`SELECT quantity_remaining, status FROM inventory_lots WHERE id = ?`), "lot1")
	if err := row.Scan(&remaining, &status); err != nil {
		t.Fatalf("scan lot: %v", err)
	}
	if remaining != 0 || status != string(model.LotConsumed) {
		t.Fatalf("lot not drawn down: %v %s", remaining, status)
	}
}

func TestRecordUsageRollsBack(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPGRepository(db)
	ctx := context.Background()

	if err := repo.CreateBatchGraph(ctx, testBatch()); err != nil {
		t.Fatalf("create graph: %v", err)
	}

	ing, err := repo.GetBatchIngredient(ctx, "bi1")
	if err != nil {
		t.Fatalf("get ingredient: %v", err)
	}
	amount := 20.0
	ing.ActualAmount = &amount

	err = repo.RecordUsage(ctx, ing, []invdto.LotUpdate{
		{LotID: "ghost", QuantityRemaining: 0, Status: model.LotConsumed},
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// the ingredient write must roll back with the failed lot update
	got, _ := repo.GetBatchIngredient(ctx, "bi1")
	if got.ActualAmount != nil {
		t.Fatalf("ingredient update should roll back: %+v", got)
	}
}

func TestAddMeasurement(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewPGRepository(db)
	ctx := context.Background()

	if err := repo.CreateBatchGraph(ctx, testBatch()); err != nil {
		t.Fatalf("create graph: %v", err)
	}

	value := 1.048
	unit := "sg"
	m := &model.BatchMeasurement{
		ID:              "m1",
		BatchStageID:    "s1",
		MeasurementDate: time.Now(),
		MeasurementType: "gravity",
		Value:           &value,
		Unit:            &unit,
	}
	if err := repo.AddMeasurement(ctx, m); err != nil {
		t.Fatalf("add measurement: %v", err)
	}

	var got model.BatchMeasurement
	if err := db.Get(&got, db.Rebind(`SELECT * FROM batch_measurements WHERE id = ?`), "m1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Value == nil || *got.Value != 1.048 || got.MeasurementType != "gravity" {
		t.Fatalf("unexpected measurement %+v", got)
	}
}

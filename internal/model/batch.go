package model

import "time"

// Batch is one production run materialized from a recipe. RecipeName is a
// snapshot taken at creation time and never re-derived, so renaming the
// recipe later leaves existing batches untouched.
type Batch struct {
	BaseModel
	RecipeID         string      `db:"recipe_id" json:"recipe_id"`
	Name             string      `db:"name" json:"name"`
	RecipeName       string      `db:"recipe_name" json:"recipe_name"`
	ActualBatchSizeL float64     `db:"actual_batch_size_l" json:"actual_batch_size_l"`
	StartDate        *time.Time  `db:"start_date" json:"start_date"`
	EndDate          *time.Time  `db:"end_date" json:"end_date"`
	CurrentStageID   *string     `db:"current_stage_id" json:"current_stage_id"`
	Status           BatchStatus `db:"status" json:"status"`
	AbandonReason    *string     `db:"abandon_reason" json:"abandon_reason"`
	Notes            string      `db:"notes" json:"notes"`

	Stages []BatchStage `db:"-" json:"stages"`
}

// BatchStage is one ordered production step of a batch. Stages are created
// in bulk at batch creation and never reordered or added afterwards;
// StageOrder is unique within the batch and defines traversal order.
type BatchStage struct {
	ID                     string      `db:"id" json:"id"`
	BatchID                string      `db:"batch_id" json:"batch_id"`
	StageTypeID            string      `db:"stage_type_id" json:"stage_type_id"`
	StageName              string      `db:"stage_name" json:"stage_name"`
	StageOrder             int         `db:"stage_order" json:"stage_order"`
	Instructions           string      `db:"instructions" json:"instructions"`
	ExpectedDurationDays   *int        `db:"expected_duration_days" json:"expected_duration_days"`
	StartDate              *time.Time  `db:"start_date" json:"start_date"`
	EndDate                *time.Time  `db:"end_date" json:"end_date"`
	Status                 StageStatus `db:"status" json:"status"`
	AllowMultipleAdditions bool        `db:"allow_multiple_additions" json:"allow_multiple_additions"`
	Notes                  string      `db:"notes" json:"notes"`

	Ingredients []BatchIngredient `db:"-" json:"ingredients"`
}

// BatchIngredient pairs a planned requirement (computed once at creation
// via the scaling method, immutable afterwards) with the actual usage
// recorded against inventory later.
type BatchIngredient struct {
	ID                 string   `db:"id" json:"id"`
	BatchStageID       string   `db:"batch_stage_id" json:"batch_stage_id"`
	IngredientTypeID   string   `db:"ingredient_type_id" json:"ingredient_type_id"`
	IngredientTypeName string   `db:"ingredient_type_name" json:"ingredient_type_name"`
	PlannedAmount      float64  `db:"planned_amount" json:"planned_amount"`
	PlannedUnit        string   `db:"planned_unit" json:"planned_unit"`
	ActualAmount       *float64 `db:"actual_amount" json:"actual_amount"`
	ActualUnit         *string  `db:"actual_unit" json:"actual_unit"`
	IngredientID       *string  `db:"ingredient_id" json:"ingredient_id"`
	IngredientName     *string  `db:"ingredient_name" json:"ingredient_name"`
	InventoryLotID     *string  `db:"inventory_lot_id" json:"inventory_lot_id"`
	Notes              string   `db:"notes" json:"notes"`
}

// BatchMeasurement is an append-only reading taken during a stage. The
// core never updates or deletes one.
type BatchMeasurement struct {
	ID              string    `db:"id" json:"id"`
	BatchStageID    string    `db:"batch_stage_id" json:"batch_stage_id"`
	MeasurementDate time.Time `db:"measurement_date" json:"measurement_date"`
	MeasurementType string    `db:"measurement_type" json:"measurement_type"`
	Value           *float64  `db:"value" json:"value"`
	Unit            *string   `db:"unit" json:"unit"`
	Notes           string    `db:"notes" json:"notes"`
}

package model

// Recipe and its children are owned by the recipe catalog and read-only
// here. Batch creation copies everything it needs out of this graph, so
// later recipe edits never touch existing batches.

type Recipe struct {
	BaseModel
	Name       string   `db:"name" json:"name"`
	Style      *string  `db:"style" json:"style"`
	BatchSizeL *float64 `db:"batch_size_l" json:"batch_size_l"`
	IsDraft    bool     `db:"is_draft" json:"is_draft"`
	Notes      string   `db:"notes" json:"notes"`

	Stages []RecipeStage `db:"-" json:"stages"`
}

type RecipeStage struct {
	ID                   string `db:"id" json:"id"`
	RecipeID             string `db:"recipe_id" json:"recipe_id"`
	StageTypeID          string `db:"stage_type_id" json:"stage_type_id"`
	StageTypeName        string `db:"stage_type_name" json:"stage_type_name"`
	StageOrder           int    `db:"stage_order" json:"stage_order"`
	Instructions         string `db:"instructions" json:"instructions"`
	ExpectedDurationDays *int   `db:"expected_duration_days" json:"expected_duration_days"`

	Ingredients []RecipeIngredient `db:"-" json:"ingredients"`
}

type RecipeIngredient struct {
	ID                 string        `db:"id" json:"id"`
	RecipeStageID      string        `db:"recipe_stage_id" json:"recipe_stage_id"`
	IngredientTypeID   string        `db:"ingredient_type_id" json:"ingredient_type_id"`
	IngredientTypeName string        `db:"ingredient_type_name" json:"ingredient_type_name"`
	Amount             float64       `db:"amount" json:"amount"`
	Unit               string        `db:"unit" json:"unit"`
	ScalingMethod      ScalingMethod `db:"scaling_method" json:"scaling_method"`
	Notes              string        `db:"notes" json:"notes"`
}

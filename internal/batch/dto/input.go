package dto

import "time"

type CreateBatchInput struct {
	RecipeID         string
	Name             string
	ActualBatchSizeL float64
	Notes            string
}

type RecordUsageInput struct {
	BatchIngredientID string
	IngredientID      string
	Amount            float64
	Unit              string
	Notes             string
}

type AddMeasurementInput struct {
	BatchStageID    string
	MeasurementDate *time.Time
	MeasurementType string
	Value           *float64
	Unit            *string
	Notes           string
}

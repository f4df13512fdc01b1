package dto

import "github.com/DominicBeniamin/brewcode-sub000/internal/model"

// LotConsumption is one line of a FIFO breakdown: how much was drawn from
// a single lot and what it cost.
type LotConsumption struct {
	LotID        string
	QuantityUsed float64
	CostPerUnit  *float64
	Cost         float64
}

// LotUpdate is the write half of a consumption plan: the new remaining
// quantity and status a lot must be left with.
type LotUpdate struct {
	LotID             string
	QuantityRemaining float64
	Status            model.LotStatus
}

// ConsumptionPlan is a validated FIFO allocation that has not been applied
// yet. Lines are ordered oldest lot first; Updates mirror Lines one-to-one.
type ConsumptionPlan struct {
	IngredientID   string
	Unit           string
	Lines          []LotConsumption
	Updates        []LotUpdate
	TotalConsumed  float64
	TotalCost      float64
	RemainingTotal float64
}

// ConsumptionResult reports an applied consumption.
type ConsumptionResult struct {
	IngredientID   string
	Unit           string
	Lines          []LotConsumption
	TotalConsumed  float64
	TotalCost      float64
	RemainingTotal float64
}

// MarkExpiredResult reports expiry marking, including the idempotent case.
type MarkExpiredResult struct {
	Lot            *model.InventoryLot
	AlreadyExpired bool
	Message        string
}

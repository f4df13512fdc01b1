package dto

import "time"

type AddLotInput struct {
	IngredientID      string
	QuantityPurchased float64
	Unit              string
	PurchaseDate      time.Time
	ExpirationDate    *time.Time
	CostPerUnit       *float64
	Supplier          string
	Notes             string
}

type ConsumeInput struct {
	IngredientID string
	Quantity     float64
	Unit         string
}

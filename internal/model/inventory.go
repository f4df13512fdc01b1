package model

import "time"

// InventoryLot is one purchased quantity of a trackable ingredient,
// consumed oldest-first. QuantityRemaining only ever decreases and the
// consumption walk sets Status to consumed exactly when it reaches zero.
// Expiry flips Status without touching quantity so the audit trail stays
// intact.
type InventoryLot struct {
	BaseModel
	IngredientID      string     `db:"ingredient_id" json:"ingredient_id"`
	QuantityPurchased float64    `db:"quantity_purchased" json:"quantity_purchased"`
	QuantityRemaining float64    `db:"quantity_remaining" json:"quantity_remaining"`
	Unit              string     `db:"unit" json:"unit"`
	PurchaseDate      time.Time  `db:"purchase_date" json:"purchase_date"`
	ExpirationDate    *time.Time `db:"expiration_date" json:"expiration_date"`
	CostPerUnit       *float64   `db:"cost_per_unit" json:"cost_per_unit"`
	Supplier          string     `db:"supplier" json:"supplier"`
	Notes             string     `db:"notes" json:"notes"`
	Status            LotStatus  `db:"status" json:"status"`
}

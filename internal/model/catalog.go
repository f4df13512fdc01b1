package model

// Catalog records are validated stores maintained elsewhere; the core only
// reads them by ID for existence checks and metadata.

type IngredientType struct {
	BaseModel
	Name string `db:"name" json:"name"`
}

// Ingredient is a specific stockable item of some ingredient type.
// OnDemand items are priced per use rather than tracked as lots and are
// rejected by the inventory ledger.
type Ingredient struct {
	BaseModel
	IngredientTypeID string `db:"ingredient_type_id" json:"ingredient_type_id"`
	Name             string `db:"name" json:"name"`
	DefaultUnit      string `db:"default_unit" json:"default_unit"`
	OnDemand         bool   `db:"on_demand" json:"on_demand"`
	IsActive         bool   `db:"is_active" json:"is_active"`
}

// StageType describes a kind of production step. Required stage types
// cannot be skipped.
type StageType struct {
	BaseModel
	Name       string `db:"name" json:"name"`
	IsRequired bool   `db:"is_required" json:"is_required"`
}

type Equipment struct {
	BaseModel
	Name          string   `db:"name" json:"name"`
	EquipmentType *string  `db:"equipment_type" json:"equipment_type"`
	CapacityL     *float64 `db:"capacity_l" json:"capacity_l"`
	IsActive      bool     `db:"is_active" json:"is_active"`
	CanBeOccupied bool     `db:"can_be_occupied" json:"can_be_occupied"`
	Notes         string   `db:"notes" json:"notes"`
}

package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema DDL, portable between Postgres and SQLite. Statements are
// idempotent so Migrate can run on every startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS ingredient_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ingredients (
		id TEXT PRIMARY KEY,
		ingredient_type_id TEXT NOT NULL REFERENCES ingredient_types(id),
		name TEXT NOT NULL,
		default_unit TEXT NOT NULL DEFAULT '',
		on_demand BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stage_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		is_required BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS equipment (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		equipment_type TEXT,
		capacity_l REAL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		can_be_occupied BOOLEAN NOT NULL DEFAULT TRUE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		style TEXT,
		batch_size_l REAL,
		is_draft BOOLEAN NOT NULL DEFAULT TRUE,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_stages (
		id TEXT PRIMARY KEY,
		recipe_id TEXT NOT NULL REFERENCES recipes(id),
		stage_type_id TEXT NOT NULL REFERENCES stage_types(id),
		stage_type_name TEXT NOT NULL DEFAULT '',
		stage_order INTEGER NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		expected_duration_days INTEGER,
		UNIQUE (recipe_id, stage_order)
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		id TEXT PRIMARY KEY,
		recipe_stage_id TEXT NOT NULL REFERENCES recipe_stages(id),
		ingredient_type_id TEXT NOT NULL REFERENCES ingredient_types(id),
		ingredient_type_name TEXT NOT NULL DEFAULT '',
		amount REAL NOT NULL,
		unit TEXT NOT NULL,
		scaling_method TEXT NOT NULL DEFAULT 'linear',
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		recipe_id TEXT NOT NULL REFERENCES recipes(id),
		name TEXT NOT NULL,
		recipe_name TEXT NOT NULL,
		actual_batch_size_l REAL NOT NULL,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		current_stage_id TEXT,
		status TEXT NOT NULL DEFAULT 'planned',
		abandon_reason TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS batch_stages (
		id TEXT PRIMARY KEY,
		batch_id TEXT NOT NULL REFERENCES batches(id),
		stage_type_id TEXT NOT NULL REFERENCES stage_types(id),
		stage_name TEXT NOT NULL,
		stage_order INTEGER NOT NULL,
		instructions TEXT NOT NULL DEFAULT '',
		expected_duration_days INTEGER,
		start_date TIMESTAMP,
		end_date TIMESTAMP,
		status TEXT NOT NULL DEFAULT 'pending',
		allow_multiple_additions BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT NOT NULL DEFAULT '',
		UNIQUE (batch_id, stage_order)
	)`,
	`CREATE TABLE IF NOT EXISTS batch_ingredients (
		id TEXT PRIMARY KEY,
		batch_stage_id TEXT NOT NULL REFERENCES batch_stages(id),
		ingredient_type_id TEXT NOT NULL REFERENCES ingredient_types(id),
		ingredient_type_name TEXT NOT NULL,
		planned_amount REAL NOT NULL,
		planned_unit TEXT NOT NULL,
		actual_amount REAL,
		actual_unit TEXT,
		ingredient_id TEXT REFERENCES ingredients(id),
		ingredient_name TEXT,
		inventory_lot_id TEXT,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS batch_measurements (
		id TEXT PRIMARY KEY,
		batch_stage_id TEXT NOT NULL REFERENCES batch_stages(id),
		measurement_date TIMESTAMP NOT NULL,
		measurement_type TEXT NOT NULL,
		value REAL,
		unit TEXT,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS inventory_lots (
		id TEXT PRIMARY KEY,
		ingredient_id TEXT NOT NULL REFERENCES ingredients(id),
		quantity_purchased REAL NOT NULL,
		quantity_remaining REAL NOT NULL,
		unit TEXT NOT NULL,
		purchase_date TIMESTAMP NOT NULL,
		expiration_date TIMESTAMP,
		cost_per_unit REAL,
		supplier TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS equipment_usage (
		id TEXT PRIMARY KEY,
		equipment_id TEXT NOT NULL REFERENCES equipment(id),
		batch_stage_id TEXT NOT NULL REFERENCES batch_stages(id),
		in_use_date TIMESTAMP NOT NULL,
		release_date TIMESTAMP,
		status TEXT NOT NULL DEFAULT 'in-use'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_batch_stages_batch ON batch_stages (batch_id, stage_order)`,
	`CREATE INDEX IF NOT EXISTS idx_inventory_lots_fifo ON inventory_lots (ingredient_id, purchase_date, id)`,
	`CREATE INDEX IF NOT EXISTS idx_equipment_usage_latest ON equipment_usage (equipment_id, in_use_date)`,
	`CREATE INDEX IF NOT EXISTS idx_batch_ingredients_stage ON batch_ingredients (batch_stage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_batch_measurements_stage ON batch_measurements (batch_stage_id)`,
}

// Migrate applies the schema. Safe to call repeatedly.
func Migrate(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

package model

import "time"

// EquipmentUsage links one piece of equipment to one batch stage. At most
// one in-use row may exist per equipment at any time; assignment checks
// the most recent row before inserting.
type EquipmentUsage struct {
	ID           string      `db:"id" json:"id"`
	EquipmentID  string      `db:"equipment_id" json:"equipment_id"`
	BatchStageID string      `db:"batch_stage_id" json:"batch_stage_id"`
	InUseDate    time.Time   `db:"in_use_date" json:"in_use_date"`
	ReleaseDate  *time.Time  `db:"release_date" json:"release_date"`
	Status       UsageStatus `db:"status" json:"status"`
}

package dto

import (
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

// Event types emitted by the timeline, ordered here roughly as they occur
// in a batch's life.
const (
	EventBatchStarted      = "batch_started"
	EventBatchCompleted    = "batch_completed"
	EventBatchAbandoned    = "batch_abandoned"
	EventStageStarted      = "stage_started"
	EventStageCompleted    = "stage_completed"
	EventStageSkipped      = "stage_skipped"
	EventMeasurement       = "measurement"
	EventEquipmentAssigned = "equipment_assigned"
	EventEquipmentReleased = "equipment_released"
	EventIngredientUsed    = "ingredient_used"
)

type TimelineEvent struct {
	Timestamp   time.Time
	Type        string
	Description string
	StageID     *string
	ReferenceID string // id of the row the event came from
}

type Timeline struct {
	BatchID string
	Events  []TimelineEvent
}

// UsageWithEquipment is an equipment usage row joined with the equipment
// name for display.
type UsageWithEquipment struct {
	model.EquipmentUsage
	EquipmentName string `db:"equipment_name"`
}

type CostItem struct {
	BatchIngredientID string
	IngredientName    string
	Amount            float64
	Unit              string
	CostPerUnit       float64
	Cost              float64
}

// CostReport itemizes ingredient cost. SupplyCost is structurally present
// but always zero: supply consumption is not tracked against batches yet.
type CostReport struct {
	BatchID        string
	IngredientCost float64
	SupplyCost     float64
	TotalCost      float64
	Items          []CostItem
	Note           string
}

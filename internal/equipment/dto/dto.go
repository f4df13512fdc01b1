package dto

import (
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

type AssignInput struct {
	EquipmentID  string
	BatchStageID string
	InUseDate    *time.Time
}

type ReleaseInput struct {
	EquipmentID  string
	BatchStageID string
	ReleaseDate  *time.Time
}

// ReleaseResult reports a release, including the idempotent case where the
// usage was already released.
type ReleaseResult struct {
	Usage           *model.EquipmentUsage
	AlreadyReleased bool
	Message         string
}

type AvailableFilters struct {
	EquipmentType string
}

// CurrentUsage is the single in-use row for a piece of equipment joined
// with its owning batch and stage for display.
type CurrentUsage struct {
	Usage     model.EquipmentUsage
	BatchID   string
	BatchName string
	StageName string
}

package dto

import (
	"time"

	invdto "github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

type StartBatchResult struct {
	Batch          *model.Batch
	StartedStageID *string
}

type CompleteBatchResult struct {
	Batch *model.Batch
}

type AbandonBatchResult struct {
	Batch             *model.Batch
	EquipmentReleased int
	AlreadyAbandoned  bool
	Message           string
}

type StageResult struct {
	Stage          *model.BatchStage
	AlreadyInState bool
	Message        string
}

type CompleteStageResult struct {
	Stage               *model.BatchStage
	AlreadyCompleted    bool
	EquipmentReleased   int
	AutoAdvancedStageID *string
	Message             string
}

type RecordUsageResult struct {
	Ingredient  *model.BatchIngredient
	Consumption *invdto.ConsumptionResult // nil for on-demand ingredients
	Message     string
}

// StageCompletionPlan is the single-transaction write set for completing a
// stage: the stage itself, equipment to release, the auto-advanced next
// stage if any, and the batch's current-stage bookkeeping.
type StageCompletionPlan struct {
	Stage           *model.BatchStage
	Batch           *model.Batch
	ReleaseUsageIDs []string
	ReleaseDate     time.Time
	NextStage       *model.BatchStage
}

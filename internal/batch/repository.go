package batch

import (
	"context"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/batch/dto"
	invdto "github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

// Repository persists the batch graph. Every multi-row mutation is one
// transaction: a failure partway through rolls back every write of that
// call.
type Repository interface {
	GetBatch(ctx context.Context, id string) (*model.Batch, error)

	// GetBatchGraph returns the batch with stages (ordered by stage_order)
	// and their ingredients populated.
	GetBatchGraph(ctx context.Context, id string) (*model.Batch, error)

	GetStage(ctx context.Context, id string) (*model.BatchStage, error)
	ListStages(ctx context.Context, batchID string) ([]model.BatchStage, error)
	GetBatchIngredient(ctx context.Context, id string) (*model.BatchIngredient, error)

	// CreateBatchGraph inserts the batch, its stages and their ingredients
	// in one transaction.
	CreateBatchGraph(ctx context.Context, b *model.Batch) error

	UpdateBatch(ctx context.Context, b *model.Batch) error
	UpdateStage(ctx context.Context, s *model.BatchStage) error

	// UpdateStageAndBatch writes one stage row and the batch row together.
	UpdateStageAndBatch(ctx context.Context, s *model.BatchStage, b *model.Batch) error

	// CompleteStage applies a stage completion plan: stage update, bulk
	// equipment release, optional next-stage activation, batch bookkeeping.
	CompleteStage(ctx context.Context, plan *dto.StageCompletionPlan) error

	// AbandonBatch writes the abandoned batch and releases the given
	// usages, returning how many were released.
	AbandonBatch(ctx context.Context, b *model.Batch, usageIDs []string, endDate time.Time) (int, error)

	// RecordUsage writes the ingredient's actual-usage fields and applies
	// the inventory lot updates in the same transaction.
	RecordUsage(ctx context.Context, ing *model.BatchIngredient, lotUpdates []invdto.LotUpdate) error

	AddMeasurement(ctx context.Context, m *model.BatchMeasurement) error
}

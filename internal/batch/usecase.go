package batch

import (
	"context"

	"github.com/DominicBeniamin/brewcode-sub000/internal/batch/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

type UseCase interface {
	// CreateBatch materializes a batch from a finalized recipe, scaling
	// every ingredient requirement to the actual batch size. The recipe
	// must not be a draft and must have at least one stage. The returned
	// batch carries its full stage/ingredient graph.
	CreateBatch(ctx context.Context, input *dto.CreateBatchInput) (*model.Batch, error)

	GetBatch(ctx context.Context, id string) (*model.Batch, error)

	StartBatch(ctx context.Context, batchID string, opts *dto.StartBatchOptions) (*dto.StartBatchResult, error)
	CompleteBatch(ctx context.Context, batchID string, opts *dto.CompleteBatchOptions) (*dto.CompleteBatchResult, error)

	// AbandonBatch is idempotent: abandoning an already-abandoned batch
	// succeeds with zero side effects and leaves the original reason.
	AbandonBatch(ctx context.Context, batchID, reason string, opts *dto.AbandonBatchOptions) (*dto.AbandonBatchResult, error)

	StartStage(ctx context.Context, stageID string, opts *dto.StartStageOptions) (*dto.StageResult, error)
	CompleteStage(ctx context.Context, stageID string, opts *dto.CompleteStageOptions) (*dto.CompleteStageResult, error)
	SkipStage(ctx context.Context, stageID string) (*dto.StageResult, error)

	// RecordUsage records what was actually used for a planned ingredient,
	// consuming stocked inventory FIFO through the ledger. On-demand
	// ingredients record actuals without touching inventory.
	RecordUsage(ctx context.Context, input *dto.RecordUsageInput) (*dto.RecordUsageResult, error)

	// AddMeasurement appends a reading to a stage. Quantitative types
	// require value and unit.
	AddMeasurement(ctx context.Context, input *dto.AddMeasurementInput) (*model.BatchMeasurement, error)
}

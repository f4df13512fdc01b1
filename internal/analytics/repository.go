package analytics

import (
	"context"

	"github.com/DominicBeniamin/brewcode-sub000/internal/analytics/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

// Repository is the read-only view analytics aggregates over. No method
// here mutates anything.
type Repository interface {
	GetBatch(ctx context.Context, id string) (*model.Batch, error)
	ListStages(ctx context.Context, batchID string) ([]model.BatchStage, error)
	ListMeasurements(ctx context.Context, batchID string) ([]model.BatchMeasurement, error)
	ListUsages(ctx context.Context, batchID string) ([]dto.UsageWithEquipment, error)
	ListIngredients(ctx context.Context, batchID string) ([]model.BatchIngredient, error)
	GetLot(ctx context.Context, lotID string) (*model.InventoryLot, error)
}

package inventory

import (
	"context"

	"github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

type UseCase interface {
	// AddLot stocks a new lot. On-demand ingredients are rejected with
	// ErrInvalidItem: they are priced per use, not tracked as lots.
	AddLot(ctx context.Context, input *dto.AddLotInput) (*model.InventoryLot, error)

	// GetAvailable lists consumable lots in FIFO order.
	GetAvailable(ctx context.Context, ingredientID string) ([]model.InventoryLot, error)

	// PlanConsumption validates a draw and computes the FIFO breakdown
	// without writing anything. Fails with ErrNoInventory, ErrUnitMismatch
	// or ErrInsufficientInventory. The ledger never converts units; the
	// caller converts first if needed.
	PlanConsumption(ctx context.Context, ingredientID string, quantity float64, unit string) (*dto.ConsumptionPlan, error)

	// Consume plans and applies a draw in one atomic transaction.
	Consume(ctx context.Context, input *dto.ConsumeInput) (*dto.ConsumptionResult, error)

	// MarkExpired flips a lot to expired without touching quantity. No-op
	// if already expired; ErrInvalidState if fully consumed.
	MarkExpired(ctx context.Context, lotID string) (*dto.MarkExpiredResult, error)

	// History lists every lot for an ingredient, newest purchase first.
	History(ctx context.Context, ingredientID string) ([]model.InventoryLot, error)
}

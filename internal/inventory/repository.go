package inventory

import (
	"context"

	"github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

type Repository interface {
	GetLot(ctx context.Context, lotID string) (*model.InventoryLot, error)
	CreateLot(ctx context.Context, lot *model.InventoryLot) error

	// ListAvailable returns lots with status=active and quantity_remaining>0,
	// ordered ascending by (purchase_date, id). This ordering is the FIFO
	// contract and the tie-break rule.
	ListAvailable(ctx context.Context, ingredientID string) ([]model.InventoryLot, error)

	// ListByIngredient returns every lot for an item regardless of status,
	// newest purchase first, for audit history.
	ListByIngredient(ctx context.Context, ingredientID string) ([]model.InventoryLot, error)

	UpdateLotStatus(ctx context.Context, lotID string, status model.LotStatus) error

	// ApplyConsumption applies every lot update in one transaction; on any
	// failure no lot is left partially updated.
	ApplyConsumption(ctx context.Context, updates []dto.LotUpdate) error
}

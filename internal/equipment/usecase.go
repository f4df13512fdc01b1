package equipment

import (
	"context"

	"github.com/DominicBeniamin/brewcode-sub000/internal/equipment/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

type UseCase interface {
	// Assign reserves equipment for a batch stage. Fails with
	// ErrAlreadyInUse while an in-use record exists, and with
	// ErrInvalidState for inactive or non-occupiable equipment.
	Assign(ctx context.Context, input *dto.AssignInput) (*model.EquipmentUsage, error)

	// Release frees the usage for the (equipment, stage) pair. Idempotent:
	// releasing an already-released usage succeeds and mentions the prior
	// release date.
	Release(ctx context.Context, input *dto.ReleaseInput) (*dto.ReleaseResult, error)

	GetAvailable(ctx context.Context, filters *dto.AvailableFilters) ([]model.Equipment, error)

	// CurrentUsage returns nil when the equipment is available.
	CurrentUsage(ctx context.Context, equipmentID string) (*dto.CurrentUsage, error)
}

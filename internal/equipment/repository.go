package equipment

import (
	"context"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/equipment/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

type Repository interface {
	// LatestUsage returns the most recent usage row for the equipment by
	// (in_use_date, id) descending, or nil if it has never been used.
	LatestUsage(ctx context.Context, equipmentID string) (*model.EquipmentUsage, error)

	// LatestUsageForStage returns the most recent usage row for the
	// (equipment, stage) pair, or nil.
	LatestUsageForStage(ctx context.Context, equipmentID, batchStageID string) (*model.EquipmentUsage, error)

	CreateUsage(ctx context.Context, usage *model.EquipmentUsage) error
	ReleaseUsage(ctx context.Context, usageID string, releaseDate time.Time) error

	ListInUseByStage(ctx context.Context, batchStageID string) ([]model.EquipmentUsage, error)
	ListInUseByBatch(ctx context.Context, batchID string) ([]model.EquipmentUsage, error)

	// ListAvailableEquipment returns active occupiable equipment whose most
	// recent usage row (if any) is released. Never-used equipment counts as
	// available.
	ListAvailableEquipment(ctx context.Context, filters *dto.AvailableFilters) ([]model.Equipment, error)

	// CurrentUsage returns the in-use row joined with batch/stage, or nil
	// when the equipment is free.
	CurrentUsage(ctx context.Context, equipmentID string) (*dto.CurrentUsage, error)
}

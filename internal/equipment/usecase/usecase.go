package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/catalog"
	"github.com/DominicBeniamin/brewcode-sub000/internal/equipment"
	"github.com/DominicBeniamin/brewcode-sub000/internal/equipment/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/DominicBeniamin/brewcode-sub000/internal/observability"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type equipmentUseCase struct {
	repo    equipment.Repository
	catalog catalog.Repository
	logger  logger.ZapLogger

	// Assign is check-then-act on the latest usage row; the mutex keeps
	// the at-most-one-in-use invariant when callers run concurrently
	// in-process.
	assignMu sync.Mutex
}

func NewEquipmentUseCase(repo equipment.Repository, cat catalog.Repository, log logger.ZapLogger) equipment.UseCase {
	return &equipmentUseCase{
		repo:    repo,
		catalog: cat,
		logger:  log,
	}
}

func (uc *equipmentUseCase) Assign(ctx context.Context, input *dto.AssignInput) (*model.EquipmentUsage, error) {
	if input.EquipmentID == "" {
		return nil, apperrors.ValidationError{Field: "equipmentID", Message: "required"}
	}
	if input.BatchStageID == "" {
		return nil, apperrors.ValidationError{Field: "batchStageID", Message: "required"}
	}

	eq, err := uc.catalog.GetEquipment(ctx, input.EquipmentID)
	if err != nil {
		return nil, err
	}
	if !eq.IsActive {
		return nil, apperrors.InvalidState(fmt.Sprintf("equipment %q is inactive", eq.Name))
	}
	if !eq.CanBeOccupied {
		return nil, apperrors.InvalidState(fmt.Sprintf("equipment %q cannot be occupied", eq.Name))
	}

	uc.assignMu.Lock()
	defer uc.assignMu.Unlock()

	latest, err := uc.repo.LatestUsage(ctx, input.EquipmentID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == model.UsageInUse {
		return nil, fmt.Errorf("equipment %q: %w", eq.Name, apperrors.ErrAlreadyInUse)
	}

	inUseDate := time.Now()
	if input.InUseDate != nil {
		inUseDate = *input.InUseDate
	}

	usage := &model.EquipmentUsage{
		ID:           uuid.New().String(),
		EquipmentID:  input.EquipmentID,
		BatchStageID: input.BatchStageID,
		InUseDate:    inUseDate,
		Status:       model.UsageInUse,
	}
	if err := uc.repo.CreateUsage(ctx, usage); err != nil {
		return nil, err
	}

	observability.RecordEquipmentAction("assign")
	uc.logger.Info("equipment assigned",
		zap.String("equipment_id", input.EquipmentID),
		zap.String("batch_stage_id", input.BatchStageID))
	return usage, nil
}

func (uc *equipmentUseCase) Release(ctx context.Context, input *dto.ReleaseInput) (*dto.ReleaseResult, error) {
	usage, err := uc.repo.LatestUsageForStage(ctx, input.EquipmentID, input.BatchStageID)
	if err != nil {
		return nil, err
	}
	if usage == nil {
		return nil, apperrors.NotFound("equipment usage", input.EquipmentID+"/"+input.BatchStageID)
	}

	if usage.Status == model.UsageAvailable {
		msg := "equipment was already released"
		if usage.ReleaseDate != nil {
			msg = fmt.Sprintf("equipment was already released on %s",
				usage.ReleaseDate.Format(time.RFC3339))
		}
		return &dto.ReleaseResult{Usage: usage, AlreadyReleased: true, Message: msg}, nil
	}

	releaseDate := time.Now()
	if input.ReleaseDate != nil {
		releaseDate = *input.ReleaseDate
	}
	if err := uc.repo.ReleaseUsage(ctx, usage.ID, releaseDate); err != nil {
		return nil, err
	}
	usage.ReleaseDate = &releaseDate
	usage.Status = model.UsageAvailable

	observability.RecordEquipmentAction("release")
	uc.logger.Info("equipment released",
		zap.String("equipment_id", input.EquipmentID),
		zap.String("batch_stage_id", input.BatchStageID))
	return &dto.ReleaseResult{Usage: usage, Message: "equipment released"}, nil
}

func (uc *equipmentUseCase) GetAvailable(ctx context.Context, filters *dto.AvailableFilters) ([]model.Equipment, error) {
	return uc.repo.ListAvailableEquipment(ctx, filters)
}

func (uc *equipmentUseCase) CurrentUsage(ctx context.Context, equipmentID string) (*dto.CurrentUsage, error) {
	return uc.repo.CurrentUsage(ctx, equipmentID)
}

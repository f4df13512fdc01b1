package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/catalog"
	"github.com/DominicBeniamin/brewcode-sub000/internal/inventory"
	"github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/DominicBeniamin/brewcode-sub000/internal/observability"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo    inventory.Repository
	catalog catalog.Repository
	logger  logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, cat catalog.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:    repo,
		catalog: cat,
		logger:  log,
	}
}

func (uc *inventoryUseCase) AddLot(ctx context.Context, input *dto.AddLotInput) (*model.InventoryLot, error) {
	if input.IngredientID == "" {
		return nil, apperrors.ValidationError{Field: "ingredientID", Message: "required"}
	}
	if input.QuantityPurchased <= 0 {
		return nil, apperrors.ValidationError{Field: "quantityPurchased", Message: "must be positive"}
	}
	if input.Unit == "" {
		return nil, apperrors.ValidationError{Field: "unit", Message: "required"}
	}

	ing, err := uc.catalog.GetIngredient(ctx, input.IngredientID)
	if err != nil {
		return nil, err
	}
	if ing.OnDemand {
		return nil, fmt.Errorf("ingredient %q is on-demand: %w", ing.Name, apperrors.ErrInvalidItem)
	}

	purchaseDate := input.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	now := time.Now()
	lot := &model.InventoryLot{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		IngredientID:      input.IngredientID,
		QuantityPurchased: input.QuantityPurchased,
		QuantityRemaining: input.QuantityPurchased,
		Unit:              input.Unit,
		PurchaseDate:      purchaseDate,
		ExpirationDate:    input.ExpirationDate,
		CostPerUnit:       input.CostPerUnit,
		Supplier:          input.Supplier,
		Notes:             input.Notes,
		Status:            model.LotActive,
	}

	if err := uc.repo.CreateLot(ctx, lot); err != nil {
		return nil, err
	}

	uc.logger.Info("lot added",
		zap.String("lot_id", lot.ID),
		zap.String("ingredient_id", lot.IngredientID),
		zap.Float64("quantity", lot.QuantityPurchased),
		zap.String("unit", lot.Unit))
	return lot, nil
}

func (uc *inventoryUseCase) GetAvailable(ctx context.Context, ingredientID string) ([]model.InventoryLot, error) {
	return uc.repo.ListAvailable(ctx, ingredientID)
}

func (uc *inventoryUseCase) PlanConsumption(ctx context.Context, ingredientID string, quantity float64, unit string) (*dto.ConsumptionPlan, error) {
	if quantity <= 0 {
		return nil, apperrors.ValidationError{Field: "quantity", Message: "must be positive"}
	}

	lots, err := uc.repo.ListAvailable(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		observability.RecordConsumeFailure("no_inventory")
		return nil, fmt.Errorf("ingredient %s: %w", ingredientID, apperrors.ErrNoInventory)
	}

	// The ledger does no implicit conversion; a caller holding a different
	// unit converts before asking.
	var total float64
	for _, lot := range lots {
		if lot.Unit != unit {
			observability.RecordConsumeFailure("unit_mismatch")
			return nil, fmt.Errorf("requested %q but lot %s is stocked in %q: %w",
				unit, lot.ID, lot.Unit, apperrors.ErrUnitMismatch)
		}
		total += lot.QuantityRemaining
	}
	if total < quantity {
		observability.RecordConsumeFailure("insufficient")
		return nil, fmt.Errorf("need %.4g %s, have %.4g: %w",
			quantity, unit, total, apperrors.ErrInsufficientInventory)
	}

	plan := &dto.ConsumptionPlan{
		IngredientID: ingredientID,
		Unit:         unit,
	}
	need := quantity
	for _, lot := range lots {
		if need <= 0 {
			break
		}
		used := need
		if lot.QuantityRemaining < used {
			used = lot.QuantityRemaining
		}
		remaining := lot.QuantityRemaining - used
		status := model.LotActive
		if remaining == 0 {
			status = model.LotConsumed
		}

		var cost float64
		if lot.CostPerUnit != nil {
			cost = used * *lot.CostPerUnit
		}

		plan.Lines = append(plan.Lines, dto.LotConsumption{
			LotID:        lot.ID,
			QuantityUsed: used,
			CostPerUnit:  lot.CostPerUnit,
			Cost:         cost,
		})
		plan.Updates = append(plan.Updates, dto.LotUpdate{
			LotID:             lot.ID,
			QuantityRemaining: remaining,
			Status:            status,
		})
		plan.TotalConsumed += used
		plan.TotalCost += cost
		need -= used
	}
	plan.RemainingTotal = total - plan.TotalConsumed
	return plan, nil
}

func (uc *inventoryUseCase) Consume(ctx context.Context, input *dto.ConsumeInput) (*dto.ConsumptionResult, error) {
	plan, err := uc.PlanConsumption(ctx, input.IngredientID, input.Quantity, input.Unit)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.ApplyConsumption(ctx, plan.Updates); err != nil {
		return nil, err
	}

	for _, u := range plan.Updates {
		if u.Status == model.LotConsumed {
			observability.RecordLotConsumed(input.IngredientID)
		}
	}
	uc.logger.Info("inventory consumed",
		zap.String("ingredient_id", input.IngredientID),
		zap.Float64("quantity", plan.TotalConsumed),
		zap.String("unit", plan.Unit),
		zap.Int("lots", len(plan.Lines)))

	return &dto.ConsumptionResult{
		IngredientID:   plan.IngredientID,
		Unit:           plan.Unit,
		Lines:          plan.Lines,
		TotalConsumed:  plan.TotalConsumed,
		TotalCost:      plan.TotalCost,
		RemainingTotal: plan.RemainingTotal,
	}, nil
}

func (uc *inventoryUseCase) MarkExpired(ctx context.Context, lotID string) (*dto.MarkExpiredResult, error) {
	lot, err := uc.repo.GetLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	switch lot.Status {
	case model.LotExpired:
		return &dto.MarkExpiredResult{
			Lot:            lot,
			AlreadyExpired: true,
			Message:        "lot is already marked expired",
		}, nil
	case model.LotConsumed:
		return nil, apperrors.InvalidState("cannot expire a fully consumed lot")
	}

	// Quantity stays untouched so the audit trail survives expiry.
	if err := uc.repo.UpdateLotStatus(ctx, lotID, model.LotExpired); err != nil {
		return nil, err
	}
	lot.Status = model.LotExpired

	uc.logger.Info("lot marked expired", zap.String("lot_id", lotID))
	return &dto.MarkExpiredResult{Lot: lot, Message: "lot marked expired"}, nil
}

func (uc *inventoryUseCase) History(ctx context.Context, ingredientID string) ([]model.InventoryLot, error) {
	return uc.repo.ListByIngredient(ctx, ingredientID)
}

package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/batch"
	"github.com/DominicBeniamin/brewcode-sub000/internal/batch/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/catalog"
	"github.com/DominicBeniamin/brewcode-sub000/internal/equipment"
	"github.com/DominicBeniamin/brewcode-sub000/internal/inventory"
	invdto "github.com/DominicBeniamin/brewcode-sub000/internal/inventory/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/DominicBeniamin/brewcode-sub000/internal/observability"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// stepScaleSize is the fixed step for step-scaled ingredients: one unit of
// the recipe amount per started 20 L (e.g. one yeast packet per 20 L).
const stepScaleSize = 20.0

// Measurement types that carry a numeric reading and therefore require
// value and unit. Everything else is treated as qualitative notes.
var quantitativeMeasurements = map[string]bool{
	"gravity":     true,
	"temperature": true,
	"ph":          true,
	"volume":      true,
	"abv":         true,
	"pressure":    true,
}

type batchUseCase struct {
	repo      batch.Repository
	catalog   catalog.Repository
	equipRepo equipment.Repository
	inventory inventory.UseCase
	logger    logger.ZapLogger
}

func NewBatchUseCase(
	repo batch.Repository,
	cat catalog.Repository,
	equipRepo equipment.Repository,
	inv inventory.UseCase,
	log logger.ZapLogger,
) batch.UseCase {
	return &batchUseCase{
		repo:      repo,
		catalog:   cat,
		equipRepo: equipRepo,
		inventory: inv,
		logger:    log,
	}
}

func (uc *batchUseCase) CreateBatch(ctx context.Context, input *dto.CreateBatchInput) (*model.Batch, error) {
	if input.Name == "" {
		return nil, apperrors.ValidationError{Field: "name", Message: "required"}
	}
	if input.ActualBatchSizeL <= 0 {
		return nil, apperrors.ValidationError{Field: "actualBatchSizeL", Message: "must be positive"}
	}

	recipe, err := uc.catalog.GetRecipe(ctx, input.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe.IsDraft {
		return nil, apperrors.ValidationError{Field: "recipeID", Message: "recipe is a draft"}
	}
	if len(recipe.Stages) == 0 {
		return nil, apperrors.ValidationError{Field: "recipeID", Message: "recipe has no stages"}
	}

	scalingFactor := 1.0
	if recipe.BatchSizeL != nil && *recipe.BatchSizeL > 0 {
		scalingFactor = input.ActualBatchSizeL / *recipe.BatchSizeL
	}

	now := time.Now()
	b := &model.Batch{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RecipeID:         recipe.ID,
		Name:             input.Name,
		RecipeName:       recipe.Name, // snapshot: recipe renames don't touch this batch
		ActualBatchSizeL: input.ActualBatchSizeL,
		Status:           model.BatchPlanned,
		Notes:            input.Notes,
	}

	for _, rs := range recipe.Stages {
		stage := model.BatchStage{
			ID:                   uuid.New().String(),
			BatchID:              b.ID,
			StageTypeID:          rs.StageTypeID,
			StageName:            rs.StageTypeName,
			StageOrder:           rs.StageOrder,
			Instructions:         rs.Instructions,
			ExpectedDurationDays: rs.ExpectedDurationDays,
			Status:               model.StagePending,
		}
		for _, ri := range rs.Ingredients {
			stage.Ingredients = append(stage.Ingredients, model.BatchIngredient{
				ID:                 uuid.New().String(),
				BatchStageID:       stage.ID,
				IngredientTypeID:   ri.IngredientTypeID,
				IngredientTypeName: ri.IngredientTypeName,
				PlannedAmount:      scaleAmount(ri.Amount, ri.ScalingMethod, scalingFactor, input.ActualBatchSizeL),
				PlannedUnit:        ri.Unit,
				Notes:              ri.Notes,
			})
		}
		b.Stages = append(b.Stages, stage)
	}

	if err := uc.repo.CreateBatchGraph(ctx, b); err != nil {
		return nil, err
	}

	observability.RecordTransition("batch", "create")
	uc.logger.Info("batch created",
		zap.String("batch_id", b.ID),
		zap.String("recipe_id", recipe.ID),
		zap.Float64("scaling_factor", scalingFactor),
		zap.Int("stages", len(b.Stages)))
	return b, nil
}

// scaleAmount derives the planned amount from the recipe amount. Unknown
// scaling methods fall back to linear.
func scaleAmount(amount float64, method model.ScalingMethod, factor, actualSizeL float64) float64 {
	switch method {
	case model.ScalingFixed:
		return amount
	case model.ScalingStep:
		return amount * math.Ceil(actualSizeL/stepScaleSize)
	default:
		return amount * factor
	}
}

func (uc *batchUseCase) GetBatch(ctx context.Context, id string) (*model.Batch, error) {
	return uc.repo.GetBatchGraph(ctx, id)
}

func (uc *batchUseCase) StartBatch(ctx context.Context, batchID string, opts *dto.StartBatchOptions) (*dto.StartBatchResult, error) {
	if opts == nil {
		opts = dto.DefaultStartBatchOptions()
	}

	b, err := uc.repo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.Status != model.BatchPlanned {
		return nil, apperrors.InvalidState(fmt.Sprintf("cannot start batch in status %q", b.Status))
	}

	startDate := time.Now()
	if opts.StartDate != nil {
		startDate = *opts.StartDate
	}
	b.Status = model.BatchActive
	b.StartDate = &startDate

	result := &dto.StartBatchResult{Batch: b}

	if opts.AutoStartFirstStage {
		stages, err := uc.repo.ListStages(ctx, batchID)
		if err != nil {
			return nil, err
		}
		// Lowest stage_order that is still pending. Stages skipped before
		// the batch started are terminal and must stay that way.
		var first *model.BatchStage
		for i := range stages {
			if stages[i].Status == model.StagePending {
				first = &stages[i]
				break
			}
		}
		if first != nil {
			first.Status = model.StageActive
			first.StartDate = &startDate
			b.CurrentStageID = &first.ID
			if err := uc.repo.UpdateStageAndBatch(ctx, first, b); err != nil {
				return nil, err
			}
			result.StartedStageID = &first.ID
			observability.RecordTransition("stage", "start")
		} else {
			if err := uc.repo.UpdateBatch(ctx, b); err != nil {
				return nil, err
			}
		}
	} else {
		if err := uc.repo.UpdateBatch(ctx, b); err != nil {
			return nil, err
		}
	}

	observability.RecordTransition("batch", "start")
	uc.logger.Info("batch started", zap.String("batch_id", batchID))
	return result, nil
}

func (uc *batchUseCase) CompleteBatch(ctx context.Context, batchID string, opts *dto.CompleteBatchOptions) (*dto.CompleteBatchResult, error) {
	if opts == nil {
		opts = dto.DefaultCompleteBatchOptions()
	}

	b, err := uc.repo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.Status != model.BatchActive {
		return nil, apperrors.InvalidState(fmt.Sprintf("cannot complete batch in status %q", b.Status))
	}

	if !opts.SkipValidation {
		stages, err := uc.repo.ListStages(ctx, batchID)
		if err != nil {
			return nil, err
		}
		var blocking []string
		for _, s := range stages {
			if !s.Status.Terminal() {
				blocking = append(blocking, s.StageName)
			}
		}
		if len(blocking) > 0 {
			return nil, apperrors.IncompleteStagesError{Stages: blocking}
		}
	}

	endDate := time.Now()
	if opts.EndDate != nil {
		endDate = *opts.EndDate
	}
	b.Status = model.BatchCompleted
	b.EndDate = &endDate
	b.CurrentStageID = nil

	if err := uc.repo.UpdateBatch(ctx, b); err != nil {
		return nil, err
	}

	observability.RecordTransition("batch", "complete")
	uc.logger.Info("batch completed", zap.String("batch_id", batchID))
	return &dto.CompleteBatchResult{Batch: b}, nil
}

func (uc *batchUseCase) AbandonBatch(ctx context.Context, batchID, reason string, opts *dto.AbandonBatchOptions) (*dto.AbandonBatchResult, error) {
	if reason == "" {
		return nil, apperrors.ValidationError{Field: "reason", Message: "required"}
	}
	if opts == nil {
		opts = dto.DefaultAbandonBatchOptions()
	}

	b, err := uc.repo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	switch b.Status {
	case model.BatchAbandoned:
		// Already abandoned: succeed without touching the original reason.
		return &dto.AbandonBatchResult{
			Batch:            b,
			AlreadyAbandoned: true,
			Message:          "batch was already abandoned",
		}, nil
	case model.BatchCompleted:
		return nil, apperrors.InvalidState("cannot abandon a completed batch")
	}

	endDate := time.Now()
	if opts.EndDate != nil {
		endDate = *opts.EndDate
	}
	b.Status = model.BatchAbandoned
	b.EndDate = &endDate
	b.AbandonReason = &reason
	b.CurrentStageID = nil

	var usageIDs []string
	if opts.ReleaseEquipment {
		usages, err := uc.equipRepo.ListInUseByBatch(ctx, batchID)
		if err != nil {
			return nil, err
		}
		for _, u := range usages {
			usageIDs = append(usageIDs, u.ID)
		}
	}

	released, err := uc.repo.AbandonBatch(ctx, b, usageIDs, endDate)
	if err != nil {
		return nil, err
	}

	observability.RecordTransition("batch", "abandon")
	uc.logger.Info("batch abandoned",
		zap.String("batch_id", batchID),
		zap.String("reason", reason),
		zap.Int("equipment_released", released))
	return &dto.AbandonBatchResult{
		Batch:             b,
		EquipmentReleased: released,
		Message:           "batch abandoned",
	}, nil
}

func (uc *batchUseCase) StartStage(ctx context.Context, stageID string, opts *dto.StartStageOptions) (*dto.StageResult, error) {
	if opts == nil {
		opts = dto.DefaultStartStageOptions()
	}

	s, err := uc.repo.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if s.Status == model.StageActive {
		return &dto.StageResult{Stage: s, AlreadyInState: true, Message: "stage is already active"}, nil
	}

	b, err := uc.repo.GetBatch(ctx, s.BatchID)
	if err != nil {
		return nil, err
	}
	if b.Status != model.BatchActive {
		return nil, apperrors.InvalidState(fmt.Sprintf("cannot start a stage while batch is %q", b.Status))
	}
	if !s.Status.CanTransitionTo(model.StageActive) {
		return nil, apperrors.InvalidState(fmt.Sprintf("cannot start stage in status %q", s.Status))
	}

	startDate := time.Now()
	if opts.StartDate != nil {
		startDate = *opts.StartDate
	}
	s.Status = model.StageActive
	s.StartDate = &startDate
	b.CurrentStageID = &s.ID

	if err := uc.repo.UpdateStageAndBatch(ctx, s, b); err != nil {
		return nil, err
	}

	observability.RecordTransition("stage", "start")
	uc.logger.Info("stage started",
		zap.String("batch_id", b.ID),
		zap.String("stage_id", stageID))
	return &dto.StageResult{Stage: s, Message: "stage started"}, nil
}

func (uc *batchUseCase) CompleteStage(ctx context.Context, stageID string, opts *dto.CompleteStageOptions) (*dto.CompleteStageResult, error) {
	if opts == nil {
		opts = dto.DefaultCompleteStageOptions()
	}

	s, err := uc.repo.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if s.Status == model.StageCompleted {
		// Idempotent: no second equipment release, no advancement.
		return &dto.CompleteStageResult{Stage: s, AlreadyCompleted: true, Message: "stage is already completed"}, nil
	}
	if !s.Status.CanTransitionTo(model.StageCompleted) {
		return nil, apperrors.InvalidState(fmt.Sprintf("cannot complete stage in status %q", s.Status))
	}

	b, err := uc.repo.GetBatch(ctx, s.BatchID)
	if err != nil {
		return nil, err
	}

	endDate := time.Now()
	if opts.EndDate != nil {
		endDate = *opts.EndDate
	}
	s.Status = model.StageCompleted
	s.EndDate = &endDate

	plan := &dto.StageCompletionPlan{
		Stage:       s,
		Batch:       b,
		ReleaseDate: endDate,
	}

	if opts.ReleaseEquipment {
		usages, err := uc.equipRepo.ListInUseByStage(ctx, stageID)
		if err != nil {
			return nil, err
		}
		for _, u := range usages {
			plan.ReleaseUsageIDs = append(plan.ReleaseUsageIDs, u.ID)
		}
	}

	result := &dto.CompleteStageResult{Stage: s, Message: "stage completed"}

	// The completed stage is no longer current; only a freshly auto-started
	// successor takes its place.
	b.CurrentStageID = nil
	if opts.AutoAdvance {
		next, err := uc.nextStage(ctx, s)
		if err != nil {
			return nil, err
		}
		if next != nil && next.Status == model.StagePending {
			next.Status = model.StageActive
			next.StartDate = &endDate
			b.CurrentStageID = &next.ID
			plan.NextStage = next
			result.AutoAdvancedStageID = &next.ID
		}
	}

	if err := uc.repo.CompleteStage(ctx, plan); err != nil {
		return nil, err
	}
	result.EquipmentReleased = len(plan.ReleaseUsageIDs)

	observability.RecordTransition("stage", "complete")
	if plan.NextStage != nil {
		observability.RecordTransition("stage", "start")
	}
	uc.logger.Info("stage completed",
		zap.String("batch_id", b.ID),
		zap.String("stage_id", stageID),
		zap.Int("equipment_released", result.EquipmentReleased))
	return result, nil
}

// nextStage finds the stage with the smallest stage_order greater than the
// given stage's, or nil if it was the last one.
func (uc *batchUseCase) nextStage(ctx context.Context, s *model.BatchStage) (*model.BatchStage, error) {
	stages, err := uc.repo.ListStages(ctx, s.BatchID)
	if err != nil {
		return nil, err
	}
	for i := range stages {
		if stages[i].StageOrder > s.StageOrder {
			return &stages[i], nil
		}
	}
	return nil, nil
}

func (uc *batchUseCase) SkipStage(ctx context.Context, stageID string) (*dto.StageResult, error) {
	s, err := uc.repo.GetStage(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if s.Status == model.StageSkipped {
		return &dto.StageResult{Stage: s, AlreadyInState: true, Message: "stage is already skipped"}, nil
	}
	if !s.Status.CanTransitionTo(model.StageSkipped) {
		return nil, apperrors.InvalidState(fmt.Sprintf("cannot skip stage in status %q", s.Status))
	}

	st, err := uc.catalog.GetStageType(ctx, s.StageTypeID)
	if err != nil {
		return nil, err
	}
	if st.IsRequired {
		return nil, fmt.Errorf("stage %q: %w", s.StageName, apperrors.ErrRequiredStage)
	}

	now := time.Now()
	s.Status = model.StageSkipped
	s.EndDate = &now
	if err := uc.repo.UpdateStage(ctx, s); err != nil {
		return nil, err
	}

	observability.RecordTransition("stage", "skip")
	uc.logger.Info("stage skipped", zap.String("stage_id", stageID))
	return &dto.StageResult{Stage: s, Message: "stage skipped"}, nil
}

func (uc *batchUseCase) RecordUsage(ctx context.Context, input *dto.RecordUsageInput) (*dto.RecordUsageResult, error) {
	if input.Amount <= 0 {
		return nil, apperrors.ValidationError{Field: "amount", Message: "must be positive"}
	}
	if input.Unit == "" {
		return nil, apperrors.ValidationError{Field: "unit", Message: "required"}
	}
	if input.IngredientID == "" {
		return nil, apperrors.ValidationError{Field: "ingredientID", Message: "required"}
	}

	ing, err := uc.repo.GetBatchIngredient(ctx, input.BatchIngredientID)
	if err != nil {
		return nil, err
	}
	item, err := uc.catalog.GetIngredient(ctx, input.IngredientID)
	if err != nil {
		return nil, err
	}

	amount := input.Amount
	unit := input.Unit
	ing.ActualAmount = &amount
	ing.ActualUnit = &unit
	ing.IngredientID = &item.ID
	ing.IngredientName = &item.Name // snapshot
	if input.Notes != "" {
		ing.Notes = input.Notes
	}

	if item.OnDemand {
		// Priced per use, never stocked: record actuals with no lot link.
		ing.InventoryLotID = nil
		if err := uc.repo.RecordUsage(ctx, ing, nil); err != nil {
			return nil, err
		}
		return &dto.RecordUsageResult{
			Ingredient: ing,
			Message:    "usage recorded (on-demand item, no inventory consumed)",
		}, nil
	}

	plan, err := uc.inventory.PlanConsumption(ctx, input.IngredientID, input.Amount, input.Unit)
	if err != nil {
		return nil, err
	}
	// A draw can span several lots; the link records the oldest one.
	ing.InventoryLotID = &plan.Lines[0].LotID

	if err := uc.repo.RecordUsage(ctx, ing, plan.Updates); err != nil {
		return nil, err
	}

	for _, u := range plan.Updates {
		if u.Status == model.LotConsumed {
			observability.RecordLotConsumed(input.IngredientID)
		}
	}
	uc.logger.Info("ingredient usage recorded",
		zap.String("batch_ingredient_id", input.BatchIngredientID),
		zap.String("ingredient_id", input.IngredientID),
		zap.Float64("amount", input.Amount),
		zap.Int("lots", len(plan.Lines)))

	return &dto.RecordUsageResult{
		Ingredient: ing,
		Consumption: &invdto.ConsumptionResult{
			IngredientID:   plan.IngredientID,
			Unit:           plan.Unit,
			Lines:          plan.Lines,
			TotalConsumed:  plan.TotalConsumed,
			TotalCost:      plan.TotalCost,
			RemainingTotal: plan.RemainingTotal,
		},
		Message: "usage recorded",
	}, nil
}

func (uc *batchUseCase) AddMeasurement(ctx context.Context, input *dto.AddMeasurementInput) (*model.BatchMeasurement, error) {
	if input.MeasurementType == "" {
		return nil, apperrors.ValidationError{Field: "measurementType", Message: "required"}
	}
	if quantitativeMeasurements[input.MeasurementType] {
		if input.Value == nil {
			return nil, apperrors.ValidationError{Field: "value", Message: "required for " + input.MeasurementType}
		}
		if input.Unit == nil || *input.Unit == "" {
			return nil, apperrors.ValidationError{Field: "unit", Message: "required for " + input.MeasurementType}
		}
	}

	if _, err := uc.repo.GetStage(ctx, input.BatchStageID); err != nil {
		return nil, err
	}

	date := time.Now()
	if input.MeasurementDate != nil {
		date = *input.MeasurementDate
	}
	m := &model.BatchMeasurement{
		ID:              uuid.New().String(),
		BatchStageID:    input.BatchStageID,
		MeasurementDate: date,
		MeasurementType: input.MeasurementType,
		Value:           input.Value,
		Unit:            input.Unit,
		Notes:           input.Notes,
	}
	if err := uc.repo.AddMeasurement(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/DominicBeniamin/brewcode-sub000/internal/analytics"
	"github.com/DominicBeniamin/brewcode-sub000/internal/analytics/dto"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/DominicBeniamin/brewcode-sub000/internal/unitconv"
	"github.com/DominicBeniamin/brewcode-sub000/pkg/logger"
	"go.uber.org/zap"
)

type analyticsUseCase struct {
	repo   analytics.Repository
	logger logger.ZapLogger
}

func NewAnalyticsUseCase(repo analytics.Repository, log logger.ZapLogger) analytics.UseCase {
	return &analyticsUseCase{repo: repo, logger: log}
}

func (uc *analyticsUseCase) Timeline(ctx context.Context, batchID string) (*dto.Timeline, error) {
	b, err := uc.repo.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	stages, err := uc.repo.ListStages(ctx, batchID)
	if err != nil {
		return nil, err
	}
	measurements, err := uc.repo.ListMeasurements(ctx, batchID)
	if err != nil {
		return nil, err
	}
	usages, err := uc.repo.ListUsages(ctx, batchID)
	if err != nil {
		return nil, err
	}
	ingredients, err := uc.repo.ListIngredients(ctx, batchID)
	if err != nil {
		return nil, err
	}

	var events []dto.TimelineEvent

	if b.StartDate != nil {
		events = append(events, dto.TimelineEvent{
			Timestamp:   *b.StartDate,
			Type:        dto.EventBatchStarted,
			Description: fmt.Sprintf("batch %q started", b.Name),
			ReferenceID: b.ID,
		})
	}
	if b.EndDate != nil {
		switch b.Status {
		case model.BatchAbandoned:
			desc := fmt.Sprintf("batch %q abandoned", b.Name)
			if b.AbandonReason != nil {
				desc += ": " + *b.AbandonReason
			}
			events = append(events, dto.TimelineEvent{
				Timestamp:   *b.EndDate,
				Type:        dto.EventBatchAbandoned,
				Description: desc,
				ReferenceID: b.ID,
			})
		case model.BatchCompleted:
			events = append(events, dto.TimelineEvent{
				Timestamp:   *b.EndDate,
				Type:        dto.EventBatchCompleted,
				Description: fmt.Sprintf("batch %q completed", b.Name),
				ReferenceID: b.ID,
			})
		}
	}

	stageByID := make(map[string]*model.BatchStage, len(stages))
	for i := range stages {
		s := &stages[i]
		stageByID[s.ID] = s
		if s.StartDate != nil {
			events = append(events, dto.TimelineEvent{
				Timestamp:   *s.StartDate,
				Type:        dto.EventStageStarted,
				Description: fmt.Sprintf("stage %q started", s.StageName),
				StageID:     &s.ID,
				ReferenceID: s.ID,
			})
		}
		if s.EndDate != nil {
			eventType := dto.EventStageCompleted
			desc := fmt.Sprintf("stage %q completed", s.StageName)
			if s.Status == model.StageSkipped {
				eventType = dto.EventStageSkipped
				desc = fmt.Sprintf("stage %q skipped", s.StageName)
			}
			events = append(events, dto.TimelineEvent{
				Timestamp:   *s.EndDate,
				Type:        eventType,
				Description: desc,
				StageID:     &s.ID,
				ReferenceID: s.ID,
			})
		}
	}

	for _, m := range measurements {
		desc := m.MeasurementType
		if m.Value != nil {
			unit := ""
			if m.Unit != nil {
				unit = " " + *m.Unit
			}
			desc = fmt.Sprintf("%s: %g%s", m.MeasurementType, *m.Value, unit)
		} else if m.Notes != "" {
			desc = fmt.Sprintf("%s: %s", m.MeasurementType, m.Notes)
		}
		stageID := m.BatchStageID
		events = append(events, dto.TimelineEvent{
			Timestamp:   m.MeasurementDate,
			Type:        dto.EventMeasurement,
			Description: desc,
			StageID:     &stageID,
			ReferenceID: m.ID,
		})
	}

	for _, u := range usages {
		stageID := u.BatchStageID
		events = append(events, dto.TimelineEvent{
			Timestamp:   u.InUseDate,
			Type:        dto.EventEquipmentAssigned,
			Description: fmt.Sprintf("equipment %q assigned", u.EquipmentName),
			StageID:     &stageID,
			ReferenceID: u.ID,
		})
		if u.ReleaseDate != nil {
			events = append(events, dto.TimelineEvent{
				Timestamp:   *u.ReleaseDate,
				Type:        dto.EventEquipmentReleased,
				Description: fmt.Sprintf("equipment %q released", u.EquipmentName),
				StageID:     &stageID,
				ReferenceID: u.ID,
			})
		}
	}

	// Usage time is not recorded separately; the owning stage's start date
	// is the best approximation.
	for _, ing := range ingredients {
		if ing.ActualAmount == nil {
			continue
		}
		stage := stageByID[ing.BatchStageID]
		if stage == nil || stage.StartDate == nil {
			continue
		}
		name := ing.IngredientTypeName
		if ing.IngredientName != nil {
			name = *ing.IngredientName
		}
		unit := ""
		if ing.ActualUnit != nil {
			unit = " " + *ing.ActualUnit
		}
		stageID := ing.BatchStageID
		events = append(events, dto.TimelineEvent{
			Timestamp:   *stage.StartDate,
			Type:        dto.EventIngredientUsed,
			Description: fmt.Sprintf("used %g%s of %s", *ing.ActualAmount, unit, name),
			StageID:     &stageID,
			ReferenceID: ing.ID,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return &dto.Timeline{BatchID: batchID, Events: events}, nil
}

func (uc *analyticsUseCase) Cost(ctx context.Context, batchID string) (*dto.CostReport, error) {
	if _, err := uc.repo.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}
	ingredients, err := uc.repo.ListIngredients(ctx, batchID)
	if err != nil {
		return nil, err
	}

	report := &dto.CostReport{BatchID: batchID}
	for _, ing := range ingredients {
		if ing.ActualAmount == nil || ing.InventoryLotID == nil {
			continue
		}
		lot, err := uc.repo.GetLot(ctx, *ing.InventoryLotID)
		if err != nil {
			return nil, err
		}

		amount := *ing.ActualAmount
		unit := lot.Unit
		if ing.ActualUnit != nil && *ing.ActualUnit != lot.Unit {
			converted, err := convertToLotUnit(amount, *ing.ActualUnit, lot.Unit)
			if err != nil {
				// Cross-category conversion is a hard failure for this line
				// only; the rest of the report still computes.
				uc.logger.Error("cost line skipped: unit conversion failed",
					zap.String("batch_ingredient_id", ing.ID),
					zap.String("from_unit", *ing.ActualUnit),
					zap.String("to_unit", lot.Unit),
					zap.Error(err))
				continue
			}
			amount = converted
		}

		var costPerUnit float64
		if lot.CostPerUnit != nil {
			costPerUnit = *lot.CostPerUnit
		}
		cost := amount * costPerUnit

		name := ing.IngredientTypeName
		if ing.IngredientName != nil {
			name = *ing.IngredientName
		}
		report.Items = append(report.Items, dto.CostItem{
			BatchIngredientID: ing.ID,
			IngredientName:    name,
			Amount:            amount,
			Unit:              unit,
			CostPerUnit:       costPerUnit,
			Cost:              cost,
		})
		report.IngredientCost += cost
	}

	// Supply consumption is not tracked against batches, so SupplyCost
	// stays zero.
	report.SupplyCost = 0
	report.TotalCost = report.IngredientCost + report.SupplyCost
	if len(report.Items) == 0 {
		report.Note = "no cost data recorded for this batch"
	}
	return report, nil
}

func convertToLotUnit(amount float64, fromUnit, toUnit string) (float64, error) {
	fromCat, ok := unitconv.CategoryOf(fromUnit)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", fromUnit)
	}
	toCat, ok := unitconv.CategoryOf(toUnit)
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", toUnit)
	}
	if fromCat != toCat {
		return 0, fmt.Errorf("cannot convert %s to %s across categories (%s to %s)",
			fromUnit, toUnit, fromCat, toCat)
	}
	return unitconv.Convert(amount, fromUnit, toUnit, fromCat)
}

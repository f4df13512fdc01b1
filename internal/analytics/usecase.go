package analytics

import (
	"context"

	"github.com/DominicBeniamin/brewcode-sub000/internal/analytics/dto"
)

type UseCase interface {
	// Timeline merges batch, stage, measurement, equipment and
	// ingredient-usage events into one chronological list.
	Timeline(ctx context.Context, batchID string) (*dto.Timeline, error)

	// Cost rolls up ingredient cost from recorded usage and the consumed
	// lots' prices, converting units within the same measurement category.
	Cost(ctx context.Context, batchID string) (*dto.CostReport, error)
}

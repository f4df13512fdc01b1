package catalog

import (
	"context"

	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
)

// Repository reads catalog reference data by ID. The catalog itself is
// maintained elsewhere; the core only needs existence and metadata, so
// there are no writes here.
type Repository interface {
	// GetRecipe returns the full recipe graph (stages with ingredients,
	// ordered by stage_order) or ErrNotFound.
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)
	GetStageType(ctx context.Context, id string) (*model.StageType, error)
	GetIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	GetEquipment(ctx context.Context, id string) (*model.Equipment, error)
}

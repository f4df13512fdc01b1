package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DominicBeniamin/brewcode-sub000/internal/apperrors"
	"github.com/DominicBeniamin/brewcode-sub000/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.DB.GetContext(ctx, &recipe,
		r.DB.Rebind(`SELECT * FROM recipes WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("recipe", id)
		}
		return nil, err
	}

	var stages []model.RecipeStage
	err = r.DB.SelectContext(ctx, &stages,
		r.DB.Rebind(`SELECT * FROM recipe_stages WHERE recipe_id = ? ORDER BY stage_order ASC`), id)
	if err != nil {
		return nil, err
	}

	for i := range stages {
		var ingredients []model.RecipeIngredient
		err = r.DB.SelectContext(ctx, &ingredients,
			r.DB.Rebind(`SELECT * FROM recipe_ingredients WHERE recipe_stage_id = ?`), stages[i].ID)
		if err != nil {
			return nil, err
		}
		stages[i].Ingredients = ingredients
	}
	recipe.Stages = stages
	return &recipe, nil
}

func (r *PGRepository) GetStageType(ctx context.Context, id string) (*model.StageType, error) {
	var st model.StageType
	err := r.DB.GetContext(ctx, &st,
		r.DB.Rebind(`SELECT * FROM stage_types WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("stage type", id)
		}
		return nil, err
	}
	return &st, nil
}

func (r *PGRepository) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	var ing model.Ingredient
	err := r.DB.GetContext(ctx, &ing,
		r.DB.Rebind(`SELECT * FROM ingredients WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("ingredient", id)
		}
		return nil, err
	}
	return &ing, nil
}

func (r *PGRepository) GetEquipment(ctx context.Context, id string) (*model.Equipment, error) {
	var eq model.Equipment
	err := r.DB.GetContext(ctx, &eq,
		r.DB.Rebind(`SELECT * FROM equipment WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("equipment", id)
		}
		return nil, err
	}
	return &eq, nil
}

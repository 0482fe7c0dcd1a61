package service

import (
	"context"
	"strings"

	"github.com/windoze95/mealquest-api/internal/config"
	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/mealdb"
	"github.com/windoze95/mealquest-api/internal/models"
	"go.uber.org/zap"
)

// RecipeService is the business logic layer for recipe detail lookups.
type RecipeService struct {
	Cfg    *config.Config
	Source mealdb.RecipeSource
}

// NewRecipeService is the constructor function for initializing a new RecipeService.
func NewRecipeService(cfg *config.Config, source mealdb.RecipeSource) *RecipeService {
	return &RecipeService{
		Cfg:    cfg,
		Source: source,
	}
}

// GetRecipe returns the full recipe for id. A blank id, an empty upstream
// answer, and an upstream failure all yield NotFoundError.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, NotFoundError{message: "Recipe not found"}
	}

	meals, err := s.Source.LookupByID(ctx, id)
	if err != nil {
		logger.Get().Warn("recipe lookup failed", zap.String("recipe_id", id), zap.Error(err))
		return nil, NotFoundError{message: "Recipe not found"}
	}
	if len(meals) == 0 {
		return nil, NotFoundError{message: "Recipe not found"}
	}

	recipe := NormalizeMeal(meals[0])
	return &recipe, nil
}

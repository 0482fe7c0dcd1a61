package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/service"
	"go.uber.org/zap"
)

// RecipeHandler is the handler for recipe-related requests.
type RecipeHandler struct {
	Service *service.RecipeService
}

// NewRecipeHandler is the constructor function for initializing a new RecipeHandler.
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{Service: recipeService}
}

// GetRecipe returns a recipe by ID.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID := c.Param("recipe_id")

	recipe, err := h.Service.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		logger.FromContext(c).Info("recipe not served", zap.String("recipe_id", recipeID), zap.Error(err))
		switch e := err.(type) {
		case service.NotFoundError:
			c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

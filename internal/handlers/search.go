package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/service"
	"go.uber.org/zap"
)

// SearchHandler handles recipe search requests.
type SearchHandler struct {
	Service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{Service: searchService}
}

// SearchRecipes handles GET /v1/recipes?search=...&area=...&category=...&page=1
func (h *SearchHandler) SearchRecipes(c *gin.Context) {
	q := service.SearchQuery{
		Term:     c.Query("search"),
		Area:     c.Query("area"),
		Category: c.Query("category"),
		Page:     parsePageParam(c.Query("page")),
	}

	result := h.Service.Search(c.Request.Context(), q)

	logger.FromContext(c).Debug("search served",
		zap.String("search", q.Term),
		zap.Int("page", result.Page),
		zap.Int("total", result.Total))

	c.JSON(http.StatusOK, result)
}

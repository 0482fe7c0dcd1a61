package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealquest-api/internal/service"
)

// FilterHandler serves the values for the area and category filters.
type FilterHandler struct {
	Service *service.FilterService
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(filterService *service.FilterService) *FilterHandler {
	return &FilterHandler{Service: filterService}
}

// ListFilters handles GET /v1/filters
func (h *FilterHandler) ListFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.Options(c.Request.Context()))
}

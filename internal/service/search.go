package service

import (
	"context"
	"strings"

	"github.com/windoze95/mealquest-api/internal/config"
	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/mealdb"
	"github.com/windoze95/mealquest-api/internal/metrics"
	"github.com/windoze95/mealquest-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultIngredientFallbackLimit caps the detail lookups made by the
// ingredient fallback when no limit is configured.
const DefaultIngredientFallbackLimit = 30

// SearchQuery holds the parameters of one search request.
type SearchQuery struct {
	Term     string
	Area     string
	Category string
	Page     int
}

// SearchService aggregates upstream search results into pages.
// Source serves the name search. Secondary, when set, serves the ingredient
// fallback so that its failures never count against the name search.
type SearchService struct {
	Cfg       *config.Config
	Source    mealdb.RecipeSource
	Secondary mealdb.RecipeSource
	Fallback  []models.Recipe
}

// NewSearchService creates a new SearchService. fallback is served when the
// upstream name search fails.
func NewSearchService(cfg *config.Config, source mealdb.RecipeSource, fallback []models.Recipe) *SearchService {
	return &SearchService{
		Cfg:      cfg,
		Source:   source,
		Fallback: fallback,
	}
}

// Search runs a name search, falls back to an ingredient search when the
// name search finds nothing, filters by area and category, and returns the
// requested page. Upstream failures degrade the result; they are never returned.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) models.PageResult {
	term := strings.TrimSpace(q.Term)

	recipes := s.collect(ctx, term)
	recipes = FilterRecipes(recipes, q.Area, q.Category)
	metrics.RecordSearchResults(len(recipes))

	return Paginate(recipes, q.Page)
}

func (s *SearchService) collect(ctx context.Context, term string) []models.Recipe {
	raws, err := s.Source.SearchByName(ctx, term)
	if err != nil {
		logger.Get().Warn("name search failed, serving local fallback data",
			zap.String("term", term), zap.Error(err))
		metrics.RecordSearchFallback(metrics.FallbackLocal)
		return s.Fallback
	}

	recipes := NormalizeMeals(raws)
	if len(recipes) > 0 || term == "" {
		return recipes
	}

	metrics.RecordSearchFallback(metrics.FallbackIngredient)
	return s.searchByIngredient(ctx, term)
}

// searchByIngredient resolves the first IngredientLimit matches of the
// ingredient filter to full records. Lookups run concurrently; failed or
// empty lookups are dropped and the rest keep the filter's order.
func (s *SearchService) searchByIngredient(ctx context.Context, term string) []models.Recipe {
	source := s.secondary()
	matches, err := source.FilterByIngredient(ctx, term)
	if err != nil {
		logger.Get().Warn("ingredient filter failed", zap.String("term", term), zap.Error(err))
		return nil
	}

	limit := s.IngredientLimit()
	ids := make([]string, 0, min(len(matches), limit))
	for _, m := range matches {
		if len(ids) == limit {
			break
		}
		if id := m.ID(); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	found := make([]*models.Recipe, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			meals, err := source.LookupByID(ctx, id)
			if err != nil {
				logger.Get().Debug("ingredient fallback lookup failed", zap.String("id", id), zap.Error(err))
				return nil
			}
			if len(meals) == 0 {
				return nil
			}
			recipe := NormalizeMeal(meals[0])
			found[i] = &recipe
			return nil
		})
	}
	_ = g.Wait()

	recipes := make([]models.Recipe, 0, len(found))
	for _, r := range found {
		if r != nil {
			recipes = append(recipes, *r)
		}
	}
	return recipes
}

func (s *SearchService) secondary() mealdb.RecipeSource {
	if s.Secondary != nil {
		return s.Secondary
	}
	return s.Source
}

// IngredientLimit returns the cap on detail lookups made by the ingredient fallback.
func (s *SearchService) IngredientLimit() int {
	if s.Cfg != nil && s.Cfg.EnvVars.IngredientFallbackLimit > 0 {
		return s.Cfg.EnvVars.IngredientFallbackLimit
	}
	return DefaultIngredientFallbackLimit
}

// FilterRecipes keeps recipes whose area and category match, ignoring case.
// An empty filter matches everything; a missing field never matches a
// non-empty filter.
func FilterRecipes(recipes []models.Recipe, area, category string) []models.Recipe {
	area = strings.TrimSpace(area)
	category = strings.TrimSpace(category)
	if area == "" && category == "" {
		return recipes
	}

	out := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if area != "" && !strings.EqualFold(r.AreaValue(), area) {
			continue
		}
		if category != "" && !strings.EqualFold(r.CategoryValue(), category) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Paginate returns page of recipes. Pages below 1 become 1 and pages past
// the end become the last page.
func Paginate(recipes []models.Recipe, page int) models.PageResult {
	total := len(recipes)
	totalPages := TotalPages(total)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * models.PageSize
	end := min(start+models.PageSize, total)

	items := make([]models.RecipeSummary, 0, end-start)
	for _, r := range recipes[start:end] {
		items = append(items, r.Summary())
	}

	return models.PageResult{
		Items:      items,
		Page:       page,
		PageSize:   models.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// TotalPages returns max(1, ceil(total/PageSize)).
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + models.PageSize - 1) / models.PageSize
}

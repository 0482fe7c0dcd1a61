package service

import (
	"context"

	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/mealdb"
	"github.com/windoze95/mealquest-api/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FilterService lists the values offered by the area and category filters.
type FilterService struct {
	Source mealdb.ListSource
}

// NewFilterService creates a new FilterService.
func NewFilterService(source mealdb.ListSource) *FilterService {
	return &FilterService{Source: source}
}

// Options fetches both lists concurrently. A list that cannot be fetched is
// returned empty.
func (s *FilterService) Options(ctx context.Context) models.FilterOptions {
	opts := models.FilterOptions{Areas: []string{}, Categories: []string{}}

	var g errgroup.Group
	g.Go(func() error {
		areas, err := s.Source.ListAreas(ctx)
		if err != nil {
			logger.Get().Warn("failed to list areas", zap.Error(err))
			return nil
		}
		opts.Areas = append(opts.Areas, areas...)
		return nil
	})
	g.Go(func() error {
		categories, err := s.Source.ListCategories(ctx)
		if err != nil {
			logger.Get().Warn("failed to list categories", zap.Error(err))
			return nil
		}
		opts.Categories = append(opts.Categories, categories...)
		return nil
	})
	_ = g.Wait()

	return opts
}

package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/windoze95/mealquest-api/internal/mealdb"
)

// --- MockRecipeSource ---

// MockRecipeSource is a mock implementation of mealdb.RecipeSource.
// Calls are recorded and safe to make concurrently.
type MockRecipeSource struct {
	SearchByNameFunc       func(ctx context.Context, term string) ([]mealdb.RawMeal, error)
	FilterByIngredientFunc func(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error)
	LookupByIDFunc         func(ctx context.Context, id string) ([]mealdb.RawMeal, error)

	mu    sync.Mutex
	calls []string
}

func (m *MockRecipeSource) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// Calls returns the recorded calls as "method:arg" strings.
func (m *MockRecipeSource) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times method was called.
func (m *MockRecipeSource) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if len(c) > len(method) && c[:len(method)+1] == method+":" {
			n++
		}
	}
	return n
}

func (m *MockRecipeSource) SearchByName(ctx context.Context, term string) ([]mealdb.RawMeal, error) {
	m.record("SearchByName:" + term)
	if m.SearchByNameFunc != nil {
		return m.SearchByNameFunc(ctx, term)
	}
	return nil, fmt.Errorf("SearchByName not configured")
}

func (m *MockRecipeSource) FilterByIngredient(ctx context.Context, ingredient string) ([]mealdb.RawMeal, error) {
	m.record("FilterByIngredient:" + ingredient)
	if m.FilterByIngredientFunc != nil {
		return m.FilterByIngredientFunc(ctx, ingredient)
	}
	return nil, fmt.Errorf("FilterByIngredient not configured")
}

func (m *MockRecipeSource) LookupByID(ctx context.Context, id string) ([]mealdb.RawMeal, error) {
	m.record("LookupByID:" + id)
	if m.LookupByIDFunc != nil {
		return m.LookupByIDFunc(ctx, id)
	}
	return nil, fmt.Errorf("LookupByID not configured")
}

// --- MockListSource ---

// MockListSource is a mock implementation of mealdb.ListSource.
type MockListSource struct {
	ListAreasFunc      func(ctx context.Context) ([]string, error)
	ListCategoriesFunc func(ctx context.Context) ([]string, error)
}

func (m *MockListSource) ListAreas(ctx context.Context) ([]string, error) {
	if m.ListAreasFunc != nil {
		return m.ListAreasFunc(ctx)
	}
	return nil, fmt.Errorf("ListAreas not configured")
}

func (m *MockListSource) ListCategories(ctx context.Context) ([]string, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, fmt.Errorf("ListCategories not configured")
}

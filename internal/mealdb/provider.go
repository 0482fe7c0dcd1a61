// Package mealdb is the client for TheMealDB JSON API.
package mealdb

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// RecipeSource is the read-only query surface of the upstream recipe API.
type RecipeSource interface {
	SearchByName(ctx context.Context, term string) ([]RawMeal, error)
	FilterByIngredient(ctx context.Context, ingredient string) ([]RawMeal, error)
	LookupByID(ctx context.Context, id string) ([]RawMeal, error)
}

// ListSource lists the values the upstream accepts for area and category.
type ListSource interface {
	ListAreas(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// RawMeal is one upstream meal record exactly as decoded from JSON.
// Values are strings, json.Number, or nil.
type RawMeal map[string]any

// String returns the value for key as a string. The second result is false
// when the key is missing, null, or not a scalar.
func (m RawMeal) String(key string) (string, bool) {
	switch v := m[key].(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// ID returns the meal's upstream identifier.
func (m RawMeal) ID() string {
	id, _ := m.String("idMeal")
	return strings.TrimSpace(id)
}

// envelope is the shape shared by every upstream response. Meals is
// usually an array of objects, but the upstream also sends null or a
// bare string when nothing matched.
type envelope struct {
	Meals any `json:"meals"`
}

package service

import (
	"fmt"
	"strings"

	"github.com/windoze95/mealquest-api/internal/mealdb"
	"github.com/windoze95/mealquest-api/internal/models"
)

// MaxIngredients is the number of numbered ingredient slots in an upstream record.
const MaxIngredients = 20

// NormalizeMeal converts an upstream record into a Recipe. It never fails:
// missing or malformed fields become empty strings, nil, or are left out.
func NormalizeMeal(raw mealdb.RawMeal) models.Recipe {
	name, _ := raw.String("strMeal")
	image, _ := raw.String("strMealThumb")

	return models.Recipe{
		ID:           raw.ID(),
		Name:         name,
		Image:        image,
		Category:     optional(raw, "strCategory"),
		Area:         optional(raw, "strArea"),
		Tags:         splitTags(raw),
		Instructions: optional(raw, "strInstructions"),
		YouTube:      optional(raw, "strYoutube"),
		Ingredients:  ingredients(raw),
	}
}

// NormalizeMeals normalizes every record, keeping order.
func NormalizeMeals(raws []mealdb.RawMeal) []models.Recipe {
	recipes := make([]models.Recipe, 0, len(raws))
	for _, raw := range raws {
		recipes = append(recipes, NormalizeMeal(raw))
	}
	return recipes
}

// ingredients scans every slot from 1 to MaxIngredients; an empty slot
// does not end the scan.
func ingredients(raw mealdb.RawMeal) []models.Ingredient {
	out := make([]models.Ingredient, 0, MaxIngredients)
	for i := 1; i <= MaxIngredients; i++ {
		name, _ := raw.String(fmt.Sprintf("strIngredient%d", i))
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		measure, _ := raw.String(fmt.Sprintf("strMeasure%d", i))
		out = append(out, models.Ingredient{
			Ingredient: name,
			Measure:    strings.TrimSpace(measure),
		})
	}
	return out
}

// splitTags splits the comma-joined tag field. Order and duplicates are kept.
func splitTags(raw mealdb.RawMeal) []string {
	joined, _ := raw.String("strTags")
	tags := []string{}
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

// optional returns nil for a missing or empty field.
func optional(raw mealdb.RawMeal, key string) *string {
	v, ok := raw.String(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}

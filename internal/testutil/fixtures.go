package testutil

import (
	"fmt"

	"github.com/windoze95/mealquest-api/internal/mealdb"
	"github.com/windoze95/mealquest-api/internal/models"
)

// TestRawMeal returns an upstream record with a gap in its ingredient slots.
func TestRawMeal() mealdb.RawMeal {
	return mealdb.RawMeal{
		"idMeal":          "52772",
		"strMeal":         "Teriyaki Chicken Casserole",
		"strMealThumb":    "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
		"strCategory":     "Chicken",
		"strArea":         "Japanese",
		"strTags":         "Meat, Casserole",
		"strInstructions": "Preheat oven to 350F.",
		"strYoutube":      "https://www.youtube.com/watch?v=4aZr5hZXP_s",
		"strIngredient1":  "soy sauce",
		"strMeasure1":     "3/4 cup",
		"strIngredient2":  "water",
		"strMeasure2":     "1/2 cup",
		"strIngredient3":  "",
		"strMeasure3":     "",
		"strIngredient4":  " brown sugar ",
		"strMeasure4":     nil,
		"strIngredient5":  nil,
		"strMeasure5":     nil,
	}
}

// SummaryMeal returns a minimal record in the shape of an ingredient filter match.
func SummaryMeal(id string) mealdb.RawMeal {
	return mealdb.RawMeal{
		"idMeal":       id,
		"strMeal":      "Meal " + id,
		"strMealThumb": "https://example.com/" + id + ".jpg",
	}
}

// DetailMeal returns a full record for id with the given area and category.
func DetailMeal(id, area, category string) mealdb.RawMeal {
	return mealdb.RawMeal{
		"idMeal":         id,
		"strMeal":        "Meal " + id,
		"strMealThumb":   "https://example.com/" + id + ".jpg",
		"strArea":        area,
		"strCategory":    category,
		"strTags":        nil,
		"strIngredient1": "Salt",
		"strMeasure1":    "pinch",
	}
}

// DetailMeals returns n full records with sequential ids starting at 1.
func DetailMeals(n int, area, category string) []mealdb.RawMeal {
	meals := make([]mealdb.RawMeal, 0, n)
	for i := 1; i <= n; i++ {
		meals = append(meals, DetailMeal(fmt.Sprintf("%d", i), area, category))
	}
	return meals
}

// TestRecipe returns a normalized recipe with every field populated.
func TestRecipe() models.Recipe {
	category := "Chicken"
	area := "Japanese"
	instructions := "Preheat oven to 350F."
	youtube := "https://www.youtube.com/watch?v=4aZr5hZXP_s"
	return models.Recipe{
		ID:           "52772",
		Name:         "Teriyaki Chicken Casserole",
		Image:        "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
		Category:     &category,
		Area:         &area,
		Tags:         []string{"Meat", "Casserole"},
		Instructions: &instructions,
		YouTube:      &youtube,
		Ingredients: []models.Ingredient{
			{Ingredient: "soy sauce", Measure: "3/4 cup"},
			{Ingredient: "water", Measure: "1/2 cup"},
			{Ingredient: "brown sugar", Measure: ""},
		},
	}
}

// FallbackRecipes returns a small local dataset with mixed areas.
func FallbackRecipes() []models.Recipe {
	italian, japanese := "Italian", "Japanese"
	pasta, chicken := "Pasta", "Chicken"
	return []models.Recipe{
		{ID: "f1", Name: "Lasagne", Area: &italian, Category: &pasta, Tags: []string{}},
		{ID: "f2", Name: "Katsu", Area: &japanese, Category: &chicken, Tags: []string{}},
		{ID: "f3", Name: "Carbonara", Area: &italian, Category: &pasta, Tags: []string{"Pasta"}},
		{ID: "f4", Name: "Mystery", Tags: []string{}},
	}
}

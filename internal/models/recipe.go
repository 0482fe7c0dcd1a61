package models

// Recipe is the normalized form of a TheMealDB meal.
// Category, Area, Instructions and YouTube are nil when the upstream omits them.
type Recipe struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Image        string       `json:"image" yaml:"image"`
	Category     *string      `json:"category" yaml:"category"`
	Area         *string      `json:"area" yaml:"area"`
	Tags         []string     `json:"tags" yaml:"tags"`
	Instructions *string      `json:"instructions" yaml:"instructions"`
	YouTube      *string      `json:"youtube" yaml:"youtube"`
	Ingredients  []Ingredient `json:"ingredients" yaml:"ingredients"`
}

// Ingredient is a single ingredient line paired with its measure.
type Ingredient struct {
	Ingredient string `json:"ingredient" yaml:"ingredient"`
	Measure    string `json:"measure" yaml:"measure"`
}

// RecipeSummary is the list projection of a Recipe.
type RecipeSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Image    string   `json:"image"`
	Category *string  `json:"category"`
	Area     *string  `json:"area"`
	Tags     []string `json:"tags"`
}

// Summary returns the list projection of the recipe.
func (r Recipe) Summary() RecipeSummary {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return RecipeSummary{
		ID:       r.ID,
		Name:     r.Name,
		Image:    r.Image,
		Category: r.Category,
		Area:     r.Area,
		Tags:     tags,
	}
}

// AreaValue returns the area or an empty string when absent.
func (r Recipe) AreaValue() string {
	if r.Area == nil {
		return ""
	}
	return *r.Area
}

// CategoryValue returns the category or an empty string when absent.
func (r Recipe) CategoryValue() string {
	if r.Category == nil {
		return ""
	}
	return *r.Category
}

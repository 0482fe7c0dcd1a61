// Package fallback provides the bundled recipes served when the upstream
// name search cannot be reached.
package fallback

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/windoze95/mealquest-api/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed recipes.json
var bundled []byte

// Dataset mirrors an upstream search response whose meals are already normalized.
type Dataset struct {
	Meals []models.Recipe `yaml:"meals"`
}

// Default returns the bundled dataset.
func Default() ([]models.Recipe, error) {
	return parse(bundled)
}

// Load reads a dataset from path, which may hold JSON or YAML.
// An empty path returns the bundled dataset.
func Load(path string) ([]models.Recipe, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback dataset: %w", err)
	}
	recipes, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fallback dataset %s: %w", path, err)
	}
	return recipes, nil
}

func parse(data []byte) ([]models.Recipe, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(ds.Meals))
	for _, r := range ds.Meals {
		if strings.TrimSpace(r.ID) == "" {
			continue
		}
		r.Tags = cleanTags(r.Tags)
		if r.Ingredients == nil {
			r.Ingredients = []models.Ingredient{}
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

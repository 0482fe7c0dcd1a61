package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/caarlos0/env/v11"
)

// DefaultMealDBBaseURL is used when neither MEALDB_BASE_URL nor
// MEALDB_PUBLIC_API is set.
const DefaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1"

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars `json:"env"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port                    string        `env:"PORT" envDefault:"8080"`
	MealDBBaseURL           string        `env:"MEALDB_BASE_URL" optional:"true"`
	MealDBPublicAPI         string        `env:"MEALDB_PUBLIC_API" optional:"true"`
	IngredientFallbackLimit int           `env:"INGREDIENT_FALLBACK_LIMIT" envDefault:"30"`
	SearchRevalidate        time.Duration `env:"SEARCH_REVALIDATE" envDefault:"60s"`
	DetailRevalidate        time.Duration `env:"DETAIL_REVALIDATE" envDefault:"5m"`
	ListRevalidate          time.Duration `env:"LIST_REVALIDATE" envDefault:"24h"`
	UpstreamTimeout         time.Duration `env:"UPSTREAM_TIMEOUT" optional:"true"`
	FallbackDataPath        string        `env:"FALLBACK_DATA_PATH" optional:"true"`
	CORSOrigins             []string      `env:"CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	RateLimitRPS            int           `env:"RATE_LIMIT_RPS" envDefault:"20" optional:"true"` // 0 or less disables the limiter
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// BaseURL resolves the upstream base URL. An explicit server setting wins
// over the public runtime setting, which wins over the built-in default.
func (c *Config) BaseURL() string {
	switch {
	case c.EnvVars.MealDBBaseURL != "":
		return c.EnvVars.MealDBBaseURL
	case c.EnvVars.MealDBPublicAPI != "":
		return c.EnvVars.MealDBPublicAPI
	default:
		return DefaultMealDBBaseURL
	}
}

// CheckConfigEnvFields validates that all required EnvVars fields are set
// and that the resolved upstream base URL is usable.
func (c *Config) CheckConfigEnvFields() error {
	if err := checkFieldsRecursive(reflect.ValueOf(c.EnvVars)); err != nil {
		return err
	}
	if base := c.BaseURL(); !govalidator.IsURL(base) {
		return fmt.Errorf("upstream base URL %q is not a valid URL", base)
	}
	if c.EnvVars.IngredientFallbackLimit < 0 {
		return fmt.Errorf("$IngredientFallbackLimit must not be negative")
	}
	return nil
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Name)
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}

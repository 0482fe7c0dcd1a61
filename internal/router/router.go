package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/windoze95/mealquest-api/internal/config"
	"github.com/windoze95/mealquest-api/internal/handlers"
	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/mealdb"
	"github.com/windoze95/mealquest-api/internal/middleware"
	"github.com/windoze95/mealquest-api/internal/models"
	"github.com/windoze95/mealquest-api/internal/service"
)

// SetupRouter sets up the Gin router. fallbackData is served by the search
// route whenever the upstream name search fails.
func SetupRouter(cfg *config.Config, fallbackData []models.Recipe) *gin.Engine {
	// Create default Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowOrigins = cfg.EnvVars.CORSOrigins
	r.Use(cors.New(corsConfig))

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(middleware.RecordMetrics())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Each client trips its own breaker; the name search never shares one.
	httpClient := &http.Client{Timeout: cfg.EnvVars.UpstreamTimeout}
	newClient := func(name string, revalidate time.Duration, maxHalfOpen uint32) *mealdb.Client {
		breakerCfg := mealdb.DefaultBreakerConfig()
		breakerCfg.Name = "mealdb-" + name
		breakerCfg.MaxRequests = max(breakerCfg.MaxRequests, maxHalfOpen)
		return mealdb.NewClient(cfg.BaseURL(),
			mealdb.WithHTTPClient(httpClient),
			mealdb.WithRevalidate(revalidate),
			mealdb.WithBreaker(mealdb.NewBreaker(breakerCfg)),
		)
	}

	// Search-related routes setup
	searchService := service.NewSearchService(cfg, newClient("search", cfg.EnvVars.SearchRevalidate, 0), fallbackData)
	searchService.Secondary = newClient("ingredient", cfg.EnvVars.SearchRevalidate, uint32(searchService.IngredientLimit()))
	searchHandler := handlers.NewSearchHandler(searchService)

	// Recipe-related routes setup
	recipeService := service.NewRecipeService(cfg, newClient("detail", cfg.EnvVars.DetailRevalidate, 0))
	recipeHandler := handlers.NewRecipeHandler(recipeService)

	// Filter-related routes setup
	filterService := service.NewFilterService(newClient("lists", cfg.EnvVars.ListRevalidate, 0))
	filterHandler := handlers.NewFilterHandler(filterService)

	apiPublic := r.Group("/v1")
	{
		apiPublic.Use(middleware.RateLimitByIP(cfg.EnvVars.RateLimitRPS, time.Minute, 5*time.Minute))

		// Search recipes, paginated
		apiPublic.GET("/recipes", searchHandler.SearchRecipes)
		// Get a single recipe by its ID
		apiPublic.GET("/recipes/:recipe_id", recipeHandler.GetRecipe)
		// List the area and category filter values
		apiPublic.GET("/filters", filterHandler.ListFilters)
	}

	return r
}

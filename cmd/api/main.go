package main

import (
	"os"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/mealquest-api/internal/config"
	"github.com/windoze95/mealquest-api/internal/fallback"
	"github.com/windoze95/mealquest-api/internal/logger"
	"github.com/windoze95/mealquest-api/internal/router"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("invalid config", zap.Error(err))
	}

	// Load the dataset served when the upstream is unreachable
	fallbackData, err := fallback.Load(cfg.EnvVars.FallbackDataPath)
	if err != nil {
		logger.Get().Fatal("failed to load fallback data", zap.Error(err))
	}
	logger.Get().Info("fallback data loaded", zap.Int("recipes", len(fallbackData)))

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(cfg, fallbackData)

	// Run the server
	logger.Get().Info("starting server",
		zap.String("port", cfg.EnvVars.Port),
		zap.String("upstream", cfg.BaseURL()))
	if err := r.Run(":" + cfg.EnvVars.Port); err != nil {
		logger.Get().Fatal("server stopped", zap.Error(err))
	}
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}

package startup

import (
	"os"

	"IPService/internal/app"
	"IPService/internal/pkg/config"
	"IPService/internal/pkg/logger"
	"IPService/internal/utils/finder"
)

// InitializeApplication initializes the application with the given config path.
// A missing file is tolerated; defaults and environment overrides apply.
func InitializeApplication(configPath string) *app.Application {
	foundConfigPath, err := finder.FindConfigFile(configPath, false)
	if err != nil {
		logger.Error("Failed to find configuration", logger.Err(err))
		os.Exit(1)
	}

	if foundConfigPath != "" {
		logger.Info("Using configuration file", logger.String("path", foundConfigPath))
	} else {
		logger.Info("No configuration file found, using defaults and environment",
			logger.String("path", configPath))
	}

	application := app.New(foundConfigPath)
	if err := application.Initialize(); err != nil {
		logger.Error("Failed to initialize application", logger.Err(err))
		os.Exit(1)
	}

	return application
}

// SetupDefaultLogger initializes a default logger for early startup
func SetupDefaultLogger() {
	if err := logger.Init(config.GetDefaultConfig()); err != nil {
		panic("Error initializing logger: " + err.Error())
	}
}

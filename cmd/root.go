package cmd

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-management.com/task-management/internal/configs"
	repository "task-management.com/task-management/internal/repositories"
	"task-management.com/task-management/internal/services"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "tasks",
	Short:         "Task management service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional TOML config file; environment variables take precedence")
}

func loadConfig() (config.Config, *log.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := config.NewLogger(os.Stderr, cfg)
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}
	return cfg, logger, nil
}

// newTaskService wires storage and the configured cache. The returned close
// function releases the cache.
func newTaskService(cfg config.Config, logger *log.Logger) (*services.TaskService, func(), error) {
	database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	taskRepo := repository.NewTaskRepository(database)

	taskCache, closeCache, err := config.NewCache(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	taskService, err := services.NewTaskService(taskRepo, taskCache,
		services.WithLogger(logger),
		services.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
	)
	if err != nil {
		closeCache()
		return nil, nil, err
	}

	return taskService, closeCache, nil
}

package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/taskboard/internal/services"
	"github.com/desertthunder/taskboard/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	client := services.NewTasksClient(config.Client.BaseURL, config.Client.APIKey)

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: client,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "taskboard",
		Usage:    "Task dashboard server, terminal client & page scrapers",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(exitSuccess)
		}

		logger.Error(err.Error())
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(exitRuntime)
	}
}

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/taskboard/internal/services"
	"github.com/desertthunder/taskboard/internal/shared"
	"github.com/desertthunder/taskboard/internal/ui"
	"github.com/urfave/cli/v3"
)

// boardTarget resolves the API client for the board from the config file
// named by --config, with --server overriding the base URL.
func (r *Runner) boardTarget(cmd *cli.Command) (*services.TasksClient, string) {
	config := r.loadConfig(cmd)

	base := config.Client.BaseURL
	if server := cmd.String("server"); server != "" {
		base = server
	}

	return services.NewTasksClient(base, config.Client.APIKey), config.Client.APIKey
}

// Board launches the interactive task board.
func (r *Runner) Board(ctx context.Context, cmd *cli.Command) error {
	client, apiKey := r.boardTarget(cmd)

	keyPath, err := ui.DefaultKeyPath()
	if err != nil {
		return err
	}

	if apiKey == "" {
		if stored, err := ui.LoadKey(keyPath); err == nil {
			apiKey = stored
		}
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/taskboard-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, client, apiKey, keyPath)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

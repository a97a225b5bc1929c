package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/desertthunder/tunes/internal/tasks"
	"github.com/desertthunder/tunes/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive album search.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}

	scope, err := models.ParseScope(r.config.Search.Scope)
	if err != nil {
		return fmt.Errorf("%w: search.scope: %v", shared.ErrInvalidConfig, err)
	}

	logPath := r.config.Log.File
	if logPath == "" {
		if logPath, err = shared.DefaultLogPath(); err != nil {
			return fmt.Errorf("failed to resolve log path: %w", err)
		}
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	bridge := ui.NewBridge()
	defer bridge.Close()

	coordinator := tasks.NewCoordinator(r.catalog, bridge, tasks.CoordinatorOpts{
		Debounce: r.config.Search.Debounce(),
		Region:   r.config.Catalog.Region(),
		Logger:   r.logger,
	})
	defer coordinator.Close()

	model := ui.NewModel(coordinator, scope)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	go bridge.Pump(p.Send)

	r.logger.Info("starting TUI", "scope", scope, "debounce", r.config.Search.Debounce())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ratcrate/ratcrate-tui/internal/cache"
	"github.com/ratcrate/ratcrate-tui/internal/logging"
	"github.com/ratcrate/ratcrate-tui/internal/logging/events"
	"github.com/ratcrate/ratcrate-tui/internal/registry"
	"github.com/ratcrate/ratcrate-tui/internal/sandbox"
	"github.com/ratcrate/ratcrate-tui/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	CacheFile    string
	PrimaryURL   string
	SecondaryURL string
	Installer    string
	DefaultQuery string
	Refresh      bool
	Verbose      bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	cachePath := cfg.CacheFile
	if cachePath == "" {
		resolved, err := cache.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve cache path: %w", err)
		}
		cachePath = resolved
	}

	var initial registry.Snapshot
	if !cfg.Refresh && !cache.Stale(cachePath, cache.MaxAge) {
		snap, err := cache.Load(cachePath)
		if err != nil {
			logging.Error(err)
			events.App.CacheMiss(cachePath)
		} else {
			initial = snap
			events.App.CacheHit(cachePath, len(snap.Packages))
		}
	} else {
		events.App.CacheMiss(cachePath)
	}

	client := registry.NewClient(
		registry.WithPrimaryURL(cfg.PrimaryURL),
		registry.WithSecondaryURL(cfg.SecondaryURL),
		registry.WithThrottleInterval(time.Second),
	)
	installs := sandbox.NewManager(sandbox.WithCommand(cfg.Installer))
	defer func() {
		events.App.Shutdown(len(installs.List()))
		installs.Shutdown()
	}()

	model := ui.NewModel(ui.Options{
		Client:       client,
		Installs:     installs,
		CachePath:    cachePath,
		DefaultQuery: cfg.DefaultQuery,
		Initial:      initial,
		Verbose:      cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/marquee/internal/catalog"
	"github.com/atomicstack/marquee/internal/nav"
	"github.com/atomicstack/marquee/internal/theme"
	"github.com/atomicstack/marquee/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	DBPath    string
	Seed      bool
	Width     int
	Height    int
	ShowHints bool
	Verbose   bool
	Refresh   time.Duration
	Accent    string
	Nav       nav.Options
}

const minRefresh = 250 * time.Millisecond

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	store, err := catalog.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	if cfg.Seed {
		empty, err := store.Empty()
		if err != nil {
			return fmt.Errorf("inspect catalog: %w", err)
		}
		if empty {
			if err := store.Seed(); err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}
		}
	}

	refresh := cfg.Refresh
	if refresh < minRefresh {
		refresh = minRefresh
	}
	watcher := catalog.NewWatcher(store, refresh)
	defer func() {
		watcher.Stop()
		watcher.Wait()
	}()

	model := ui.NewModel(store, watcher, cfg.Width, cfg.Height, cfg.ShowHints, cfg.Verbose, theme.Accent(cfg.Accent), cfg.Nav)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

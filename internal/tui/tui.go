// Package tui is the interactive sidebar: pinned and recent items in one
// drag-reorderable list, with a markdown preview of the selection.
package tui

import (
	"slate-cli/internal/config"
	"slate-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"
)

func Run(st *store.Store, cfg config.Config, log *zap.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()

	zone.NewGlobal()
	defer zone.Close()

	m := newAppModel(st, cfg, log)
	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run()
	return err
}

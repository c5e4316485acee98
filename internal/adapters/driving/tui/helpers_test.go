package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/core/services"
	"github.com/custodia-labs/projector/internal/example"
)

// newTestPorts wires real services over a seeded memory store.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()

	reg, err := example.NewRegistry(clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	store := memory.NewRecordStore()
	_, err = example.Seed(context.Background(), store)
	require.NoError(t, err)

	settings := services.NewSettingsService(memory.NewConfigStore())
	return &Ports{
		Projection: services.NewProjectionService(reg, store, settings, nil),
		Schema:     services.NewSchemaService(reg, settings),
	}
}

// send feeds msg to the app and keeps running the returned commands until
// none is left, mimicking the bubbletea runtime for synchronous commands.
func send(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()

	for i := 0; msg != nil; i++ {
		require.Less(t, i, 20, "command chain did not settle")
		_, cmd := app.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driving/tui"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/messages"
)

func TestTUICmd_Exists(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tui"})

	require.NoError(t, err)
	assert.Equal(t, "tui", cmd.Use)
	assert.Equal(t, "Launch the interactive terminal UI", cmd.Short)
}

func TestNewTUIApp(t *testing.T) {
	setupServices(t, true)

	app, err := newTUIApp()

	require.NoError(t, err)
	assert.Equal(t, messages.ViewTypes, app.CurrentView())
}

func TestNewTUIApp_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := newTUIApp()

	assert.ErrorIs(t, err, tui.ErrMissingProjectionService)
}

package records

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/services"
	"github.com/custodia-labs/projector/internal/example"
)

// newProjection serves the example dataset two resources per page.
func newProjection(t *testing.T) driving.ProjectionService {
	t.Helper()

	reg, err := example.NewRegistry(nil)
	require.NoError(t, err)
	store := memory.NewRecordStore()
	_, err = example.Seed(context.Background(), store)
	require.NoError(t, err)

	settings := services.NewSettingsService(memory.NewConfigStoreWith(map[string]any{
		services.KeyPageSize: 2,
	}))
	return services.NewProjectionService(reg, store, settings, nil)
}

// failingProjection fails every request.
type failingProjection struct{ err error }

func (f failingProjection) Project(context.Context, driving.ProjectionRequest) (*domain.Document, error) {
	return nil, f.err
}

var entries = driving.TypeSummary{Name: "Entry", Type: "entry", Path: "/entries"}

func run(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func TestNewView_NilParams(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.NotNil(t, v.ctx)
	assert.NotNil(t, v.styles)
	assert.Equal(t, 1, v.Page())
}

func TestView_SetTypeLoadsFirstPage(t *testing.T) {
	v := NewView(context.Background(), nil, newProjection(t))

	cmd := v.SetType(entries)
	assert.True(t, v.Loading())
	run(t, v, cmd)

	assert.False(t, v.Loading())
	require.NoError(t, v.Err())
	assert.Equal(t, 1, v.Page())
	assert.Equal(t, 2, v.Pages())
	require.NotNil(t, v.Selected())
	assert.Equal(t, "1", v.Selected().ID)
	assert.Contains(t, v.View(), "page 1 of 2")
}

func TestView_Paging(t *testing.T) {
	v := NewView(context.Background(), nil, newProjection(t))
	run(t, v, v.SetType(entries))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Nil(t, cmd, "no page before the first")

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	run(t, v, cmd)
	assert.Equal(t, 2, v.Page())
	assert.Equal(t, "3", v.Selected().ID)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd, "no page after the last")

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	run(t, v, cmd)
	assert.Equal(t, 1, v.Page())
}

func TestView_SubtypeCollection(t *testing.T) {
	v := NewView(context.Background(), nil, newProjection(t))
	run(t, v, v.SetType(driving.TypeSummary{Name: "ArtProject", Type: "artProject"}))

	require.NoError(t, v.Err())
	out := v.View()
	assert.Contains(t, out, "artProject/1")
	assert.Contains(t, out, "artProject/3")
	assert.NotContains(t, out, "researchProject")
}

func TestView_SelectEmitsRecordSelected(t *testing.T) {
	v := NewView(context.Background(), nil, newProjection(t))
	run(t, v, v.SetType(entries))
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.RecordSelected{Type: "entry", ID: "2"}, cmd())
}

func TestView_EscGoesBack(t *testing.T) {
	v := NewView(context.Background(), nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewTypes}, cmd())
}

func TestView_ProjectionError(t *testing.T) {
	boom := errors.New("boom")
	v := NewView(context.Background(), nil, failingProjection{err: boom})

	run(t, v, v.SetType(entries))

	assert.ErrorIs(t, v.Err(), boom)
	assert.Nil(t, v.Selected())
	assert.Contains(t, v.View(), "boom")
}

func TestView_IgnoresStalePages(t *testing.T) {
	v := NewView(context.Background(), nil, newProjection(t))
	run(t, v, v.SetType(entries))

	v.Update(messages.RecordsLoaded{Type: "blog", Page: 1, Document: &domain.Document{Many: true}})

	assert.Equal(t, "1", v.Selected().ID)
}

func TestView_NoService(t *testing.T) {
	v := NewView(context.Background(), nil, nil)

	run(t, v, v.SetType(entries))

	assert.Error(t, v.Err())
}

func TestSummarise(t *testing.T) {
	assert.Equal(t, "artist topic", summarise(map[string]any{"topic": "x", "artist": "y"}))
	assert.Empty(t, summarise(nil))
}

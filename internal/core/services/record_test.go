package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/example"
)

// fixedSettings returns the same settings on every call.
type fixedSettings struct {
	driving.SettingsService
	settings domain.AppSettings
}

func (f fixedSettings) Get() (*domain.AppSettings, error) {
	s := f.settings
	return &s, nil
}

func TestRecordService_PutThenProject(t *testing.T) {
	reg, store := newSeeded(t)
	records := NewRecordService(reg, store, nil)
	ctx := context.Background()

	rec, err := records.Put(ctx, []byte(`{"data": {
		"type": "comment", "id": "4",
		"attributes": {"body": "Late to the party"},
		"relationships": {
			"entry": {"data": {"type": "entry", "id": "3"}},
			"author": {"data": {"type": "author", "id": "1"}}
		}
	}}`))
	require.NoError(t, err)
	assert.Equal(t, example.Comment, rec.Type)

	stored, err := store.Get(ctx, example.Comment, "4")
	require.NoError(t, err)
	assert.Equal(t, "Late to the party", stored.Attributes["body"])

	svc := NewProjectionService(reg, store, nil, nil)
	doc, err := svc.Project(ctx, driving.ProjectionRequest{
		Type: example.Comment, ID: "4", Include: domain.Include("author"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"author/1"}, identities(doc.Included))
}

func TestRecordService_PutRejectsInvalid(t *testing.T) {
	reg, store := newSeeded(t)
	records := NewRecordService(reg, store, nil)

	_, err := records.Put(context.Background(), []byte(`{"data": {"type": "comment"}}`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordService_ParseDisabled(t *testing.T) {
	reg, store := newSeeded(t)
	settings := domain.DefaultAppSettings()
	settings.Render.ParseFormats = nil
	records := NewRecordService(reg, store, fixedSettings{settings: settings})

	_, err := records.Put(context.Background(), []byte(`{"data": {"type": "comment", "id": "5"}}`))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestRecordService_Delete(t *testing.T) {
	reg, store := newSeeded(t)
	records := NewRecordService(reg, store, nil)
	ctx := context.Background()

	require.NoError(t, records.Delete(ctx, "artProject", "3"))
	_, err := store.Get(ctx, example.Project, "3")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, records.Delete(ctx, example.Comment, "99"), domain.ErrNotFound)
	assert.ErrorIs(t, records.Delete(ctx, "widget", "1"), domain.ErrUnsupportedType)
}

func TestRecordService_NoStore(t *testing.T) {
	records := NewRecordService(newRegistry(t), nil, nil)

	_, err := records.Put(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, records.Delete(context.Background(), example.Entry, "1"), domain.ErrNotImplemented)
}

package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/example"
)

var camelFormats = domain.FormatSettings{Keys: domain.KeyFormatCamelize, Types: domain.KeyFormatCamelize}

func TestParseRecord(t *testing.T) {
	reg := newRegistry(t)
	body := `{"data": {
		"type": "entry", "id": "9",
		"attributes": {"headline": "New", "bodyText": "Fresh", "pub_date": "2025-01-01"},
		"relationships": {
			"blog": {"data": {"type": "blog", "id": "1"}},
			"authors": {"data": [{"type": "author", "id": "1"}, {"type": "author", "id": "2"}]},
			"comments": {"data": []}
		}
	}}`

	rec, err := ParseRecord([]byte(body), reg, camelFormats)
	require.NoError(t, err)

	assert.Equal(t, example.Entry, rec.Type)
	assert.Equal(t, "9", rec.ID)
	assert.Empty(t, rec.Discriminator)
	assert.Equal(t, map[string]any{"headline": "New", "body_text": "Fresh", "pub_date": "2025-01-01"}, rec.Attributes)
	assert.Equal(t, map[string][]domain.Ref{
		"blog":        {{Type: example.Blog, ID: "1"}},
		"authors":     {{Type: example.Author, ID: "1"}, {Type: example.Author, ID: "2"}},
		"comment_set": {},
	}, rec.Refs)
}

func TestParseRecord_NumbersStayExact(t *testing.T) {
	reg := newRegistry(t)
	body := `{"data": {"type": "taggedItem", "id": "3", "attributes": {"tag": 12345678901234567890}}}`

	rec, err := ParseRecord([]byte(body), reg, camelFormats)
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), rec.Attributes["tag"])
}

func TestParseRecord_Subtype(t *testing.T) {
	reg := newRegistry(t)

	rec, err := ParseRecord([]byte(`{"data": {
		"type": "artProject", "id": "4",
		"attributes": {"topic": "Glass", "artist": "Mira"}
	}}`), reg, camelFormats)
	require.NoError(t, err)

	assert.Equal(t, example.Project, rec.Type)
	assert.Equal(t, example.KindArt, rec.Discriminator)
	assert.Equal(t, map[string]any{"topic": "Glass", "artist": "Mira"}, rec.Attributes)
}

func TestParseRecord_PolymorphicReference(t *testing.T) {
	reg := newRegistry(t)

	rec, err := ParseRecord([]byte(`{"data": {
		"type": "company", "id": "2",
		"relationships": {
			"currentProject": {"data": {"type": "researchProject", "id": "2"}},
			"futureProjects": {"data": [{"type": "project", "id": "1"}]}
		}
	}}`), reg, camelFormats)
	require.NoError(t, err)

	assert.Equal(t, []domain.Ref{{Type: example.Project, ID: "2"}}, rec.Refs["current_project"])
	assert.Equal(t, []domain.Ref{{Type: example.Project, ID: "1"}}, rec.Refs["future_projects"])
}

func TestParseRecord_NullToOne(t *testing.T) {
	reg := newRegistry(t)

	rec, err := ParseRecord([]byte(`{"data": {"type": "comment", "id": "8",
		"relationships": {"author": {"data": null}}}}`), reg, camelFormats)
	require.NoError(t, err)
	assert.Equal(t, []domain.Ref{}, rec.Refs["author"])
}

func TestParseRecord_Rejects(t *testing.T) {
	reg := newRegistry(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"data": `},
		{"no data", `{"meta": {}}`},
		{"no id", `{"data": {"type": "entry"}}`},
		{"unknown type", `{"data": {"type": "widget", "id": "1"}}`},
		{"polymorphic base", `{"data": {"type": "project", "id": "1"}}`},
		{"unknown attribute", `{"data": {"type": "entry", "id": "1", "attributes": {"mood": "happy"}}}`},
		{"computed attribute", `{"data": {"type": "entry", "id": "1", "attributes": {"bodyFormat": "md"}}}`},
		{"sibling subtype attribute", `{"data": {"type": "artProject", "id": "1", "attributes": {"supervisor": "x"}}}`},
		{"unknown relationship", `{"data": {"type": "entry", "id": "1", "relationships": {"editor": {"data": null}}}}`},
		{"resolver relationship", `{"data": {"type": "entry", "id": "1",
			"relationships": {"suggested": {"data": []}}}}`},
		{"array for to-one", `{"data": {"type": "comment", "id": "1",
			"relationships": {"author": {"data": [{"type": "author", "id": "1"}]}}}}`},
		{"object for to-many", `{"data": {"type": "entry", "id": "1",
			"relationships": {"authors": {"data": {"type": "author", "id": "1"}}}}}`},
		{"null for to-many", `{"data": {"type": "entry", "id": "1",
			"relationships": {"authors": {"data": null}}}}`},
		{"wrong target", `{"data": {"type": "comment", "id": "1",
			"relationships": {"author": {"data": {"type": "blog", "id": "1"}}}}}`},
		{"identifier without id", `{"data": {"type": "comment", "id": "1",
			"relationships": {"author": {"data": {"type": "author"}}}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseRecord([]byte(tt.body), reg, camelFormats)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

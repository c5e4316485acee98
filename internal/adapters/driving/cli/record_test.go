package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/example"
)

func TestSeedCmd(t *testing.T) {
	store := setupServices(t, false)

	out, _, err := execute(t, nil, "seed")

	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 18 records")
	n, err := store.Count(context.Background(), domain.Query{Type: example.Entry})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSeedCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, nil, "seed")

	assert.EqualError(t, err, "record store not configured")
}

func TestRecordPutCmd_Stdin(t *testing.T) {
	store := setupServices(t, false)
	body := `{"data":{"type":"taggedItem","id":"3","attributes":{"tag":"sql"}}}`

	out, _, err := execute(t, strings.NewReader(body), "record", "put", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "Stored TaggedItem/3")
	rec, err := store.Get(context.Background(), example.TaggedItem, "3")
	require.NoError(t, err)
	assert.Equal(t, "sql", rec.Attributes["tag"])
}

func TestRecordPutCmd_File(t *testing.T) {
	setupServices(t, true)
	path := filepath.Join(t.TempDir(), "project.json")
	body := `{"data":{"type":"artProject","id":"9","attributes":{"topic":"Glass","artist":"Ana Ruiz"}}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	out, _, err := execute(t, nil, "record", "put", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored Project/9")

	out, _, err = execute(t, nil, "project", "artProject", "9", "--format", "jsonapi")
	require.NoError(t, err)
	assert.Contains(t, out, `"artist":"Ana Ruiz"`)
}

func TestRecordPutCmd_Invalid(t *testing.T) {
	setupServices(t, false)

	_, _, err := execute(t, strings.NewReader(`{"data":{"type":"widget","id":"1"}}`), "record", "put", "-")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordPutCmd_MissingFile(t *testing.T) {
	setupServices(t, false)

	_, _, err := execute(t, nil, "record", "put", filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecordDeleteCmd(t *testing.T) {
	store := setupServices(t, true)

	out, _, err := execute(t, nil, "record", "delete", "taggedItem", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted taggedItem 2")
	_, err = store.Get(context.Background(), example.TaggedItem, "2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, nil, "record", "delete", "taggedItem", "2")

	assert.EqualError(t, err, "record service not configured")
}

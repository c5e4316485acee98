package services

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/schema"
	"github.com/custodia-labs/projector/internal/example"
)

// fixedYear is the year of the fake clock driving the blog copyright.
const fixedYear = 2025

func newRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(fixedYear, time.June, 1, 12, 0, 0, 0, time.UTC))
	reg, err := example.NewRegistry(clock)
	require.NoError(t, err)
	return reg
}

// newSeeded returns the example registry and a memory store with the demo dataset.
func newSeeded(t *testing.T) (*schema.Registry, *memory.RecordStore) {
	t.Helper()
	store := memory.NewRecordStore()
	_, err := example.Seed(context.Background(), store)
	require.NoError(t, err)
	return newRegistry(t), store
}

func newTestProjector(t *testing.T) (*Projector, *memory.RecordStore) {
	t.Helper()
	reg, store := newSeeded(t)
	return NewProjector(reg, store, ProjectorOptions{
		Keys:  domain.KeyFormatCamelize,
		Types: domain.KeyFormatCamelize,
	}), store
}

func load(t *testing.T, store *memory.RecordStore, typ string, ids ...string) []domain.Record {
	t.Helper()
	out := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := store.Get(context.Background(), typ, id)
		require.NoError(t, err)
		out = append(out, *rec)
	}
	return out
}

// included returns the included resources of the given projected type.
func included(doc *domain.Document, typ string) []domain.Resource {
	var out []domain.Resource
	for _, res := range doc.Included {
		if res.Type == typ {
			out = append(out, res)
		}
	}
	return out
}

func identities(resources []domain.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, res := range resources {
		out = append(out, res.Type+"/"+res.ID)
	}
	return out
}

package example

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/core/domain"
)

func TestNewRegistry(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)

	assert.Len(t, reg.Names(), 10)
	art, ok := reg.Lookup(ArtProject)
	require.True(t, ok)
	assert.Equal(t, Project, art.Base)
	assert.Equal(t, "/projects", art.Path)
}

func TestCopyrightFollowsClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2031, time.January, 2, 0, 0, 0, 0, time.UTC))
	reg, err := NewRegistry(clock)
	require.NoError(t, err)

	blog, _ := reg.Lookup(Blog)
	require.Len(t, blog.Computed, 1)

	year, err := blog.Computed[0].Compute(context.Background(), &domain.Record{Type: Blog, ID: "1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2031, year)

	clock.Advance(366 * 24 * time.Hour)
	year, err = blog.Computed[0].Compute(context.Background(), &domain.Record{Type: Blog, ID: "1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2032, year)
}

func TestRecordsAreConsistent(t *testing.T) {
	reg, err := NewRegistry(nil)
	require.NoError(t, err)

	records := Records()
	known := make(map[string]bool, len(records))
	for _, rec := range records {
		known[rec.Ref().Key()] = true
	}

	for _, rec := range records {
		_, ok := reg.Lookup(rec.Type)
		require.True(t, ok, "type %s", rec.Type)
		for field, refs := range rec.Refs {
			for _, ref := range refs {
				assert.True(t, known[ref.Key()], "%s.%s points at missing %s", rec.Ref().Key(), field, ref.Key())
			}
		}
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()

	n, err := Seed(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(Records()), n)

	count, err := store.Count(ctx, domain.Query{Type: Entry})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	art, err := store.Count(ctx, domain.Query{Type: Project, Discriminators: []string{KindArt}})
	require.NoError(t, err)
	assert.Equal(t, 2, art)
}

func TestSuggestedExcludesSelf(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRecordStore()
	_, err := Seed(ctx, store)
	require.NoError(t, err)

	refs, err := suggested(ctx, &domain.Record{Type: Entry, ID: "2"}, store)
	require.NoError(t, err)
	assert.Equal(t, []domain.Ref{{Type: Entry, ID: "1"}, {Type: Entry, ID: "3"}}, refs)

	refs, err = featured(ctx, &domain.Record{Type: Entry, ID: "1"}, store)
	require.NoError(t, err)
	assert.Equal(t, []domain.Ref{{Type: Entry, ID: "2"}}, refs)

	_, err = featured(ctx, &domain.Record{Type: Entry, ID: "1"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

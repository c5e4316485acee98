package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/core/services"
	"github.com/custodia-labs/projector/internal/example"
)

// newTestServer wires real services over a seeded memory store.
func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()

	reg, err := example.NewRegistry(clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	store := memory.NewRecordStore()
	_, err = example.Seed(context.Background(), store)
	require.NoError(t, err)

	promReg := prometheus.NewRegistry()
	settings := services.NewSettingsService(memory.NewConfigStore())
	ports := &Ports{
		Projection: services.NewProjectionService(reg, store, settings, services.NewMetrics(promReg)),
		Schema:     services.NewSchemaService(reg, settings),
	}

	server, err := NewServer(ports, WithGatherer(promReg))
	require.NoError(t, err)
	return server, promReg
}

func strPtr(s string) *string {
	return &s
}

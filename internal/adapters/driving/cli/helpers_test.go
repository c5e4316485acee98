package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/core/services"
	"github.com/custodia-labs/projector/internal/example"
)

// setupServices installs real services over a memory store, seeded with the
// example dataset when seed is true.
func setupServices(t *testing.T, seed bool) *memory.RecordStore {
	t.Helper()

	reg, err := example.NewRegistry(clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	store := memory.NewRecordStore()
	if seed {
		_, err = example.Seed(context.Background(), store)
		require.NoError(t, err)
	}

	promReg := prometheus.NewRegistry()
	settings := services.NewSettingsService(memory.NewConfigStore())
	SetServices(&Services{
		Projection: services.NewProjectionService(reg, store, settings, services.NewMetrics(promReg)),
		Schema:     services.NewSchemaService(reg, settings),
		Settings:   settings,
		Records:    services.NewRecordService(reg, store, settings),
		Store:      store,
		Gatherer:   promReg,
	})
	t.Cleanup(func() { SetServices(nil) })
	return store
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so runs do not leak
// values or Changed state into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/logger"
)

func TestRootCmd_Commands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"project", "types", "describe", "seed", "record", "settings", "mcp", "tui", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "data-dir", "config-dir", "memory"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInitialise_PassesOptions(t *testing.T) {
	SetServices(nil)
	var got Options
	SetInitializer(func(opts Options) (*Services, func(), error) {
		got = opts
		return &Services{}, nil, nil
	})
	defer SetInitializer(nil)

	_, _, err := execute(t, nil, "--data-dir", "/tmp/data", "--config-dir", "/tmp/cfg", "--memory", "types")

	// Services from the initializer are empty.
	assert.EqualError(t, err, "schema service not configured")
	assert.Equal(t, Options{DataDir: "/tmp/data", ConfigDir: "/tmp/cfg", Memory: true}, got)
}

func TestInitialise_Error(t *testing.T) {
	boom := errors.New("boom")
	SetInitializer(func(Options) (*Services, func(), error) {
		return nil, nil, boom
	})
	defer SetInitializer(nil)

	_, _, err := execute(t, nil, "types")

	assert.ErrorIs(t, err, boom)
}

func TestInitialise_SkippedForVersion(t *testing.T) {
	called := false
	SetInitializer(func(Options) (*Services, func(), error) {
		called = true
		return &Services{}, nil, nil
	})
	defer SetInitializer(nil)

	_, _, err := execute(t, nil, "version")

	require.NoError(t, err)
	assert.False(t, called)
}

func TestInitialise_Verbose(t *testing.T) {
	var logs bytes.Buffer
	logger.SetOutput(&logs)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()
	setupServices(t, false)

	_, _, err := execute(t, nil, "--verbose", "types")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())

	logger.Debug("probe")
	assert.Contains(t, logs.String(), "probe")
}

func TestExecute_RunsCleanupAndPrintsErrors(t *testing.T) {
	cleaned := false
	SetInitializer(func(Options) (*Services, func(), error) {
		return &Services{}, func() { cleaned = true }, nil
	})
	defer SetInitializer(nil)

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"seed"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetOut(nil)
		resetFlags(rootCmd)
	}()

	err := Execute(context.Background())

	require.Error(t, err)
	assert.True(t, cleaned)
	assert.Contains(t, stderr.String(), "Error: record store not configured")
}

func TestExecute_ReportedErrorsPrintOnce(t *testing.T) {
	setupServices(t, true)

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"project", "entry", "99"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetOut(nil)
		resetFlags(rootCmd)
	}()

	err := Execute(context.Background())

	assert.ErrorIs(t, err, ErrReported)
	assert.NotContains(t, stderr.String(), "Error:")
	assert.Contains(t, stderr.String(), `"errors"`)
}

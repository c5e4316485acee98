// Package cli provides the cobra command tree for projector.
// It is a driving adapter: every command talks to core services through
// driving ports wired in by main.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services wired by main.
var (
	projectionService driving.ProjectionService
	schemaService     driving.SchemaService
	settingsService   driving.SettingsService
	recordService     driving.RecordService
	recordStore       driven.RecordStore
	configWatcher     driven.ConfigWatcher
	gatherer          prometheus.Gatherer
)

// Services holds everything the commands need.
type Services struct {
	Projection driving.ProjectionService
	Schema     driving.SchemaService
	Settings   driving.SettingsService
	Records    driving.RecordService

	// Store is written to directly by seed.
	Store driven.RecordStore

	// Watcher reports config file changes while serving. May be nil.
	Watcher driven.ConfigWatcher

	// Gatherer backs the /metrics endpoint. May be nil.
	Gatherer prometheus.Gatherer
}

// SetServices installs the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	projectionService = s.Projection
	schemaService = s.Schema
	settingsService = s.Settings
	recordService = s.Records
	recordStore = s.Store
	configWatcher = s.Watcher
	gatherer = s.Gatherer
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Options are the global flags that decide how services are built.
type Options struct {
	DataDir   string
	ConfigDir string
	Memory    bool
}

// Initializer builds the services for a command run. The returned cleanup
// function is called once the command finishes.
type Initializer func(opts Options) (*Services, func(), error)

var (
	initializer Initializer
	cleanup     func()
)

// SetInitializer registers the function that builds services before a
// command runs. Without one, services set via SetServices are used as is.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// ErrReported marks an error that a command already printed.
var ErrReported = errors.New("error already reported")

// skipInit is the annotation that lets a command run without services.
const skipInit = "skip-init"

var (
	verbose   bool
	dataDir   string
	configDir string
	useMemory bool
)

var rootCmd = &cobra.Command{
	Use:   "projector",
	Short: "Project stored records into JSON:API documents",
	Long: `projector turns stored records into JSON:API compound documents.

Resource types are declared in a schema registry. Records are loaded from
a SQLite database (or memory), projected with their relationships, and
rendered as JSON:API with included resources, links, and meta.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initialise,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the record database (default ~/.projector/data)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory holding config.toml (default ~/.projector)")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "use an in-memory store preloaded with the example dataset")
}

func initialise(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if initializer == nil || cmd.Annotations[skipInit] == "true" {
		return nil
	}

	done := logger.Timed("initialise services")
	defer done()

	svc, finish, err := initializer(Options{DataDir: dataDir, ConfigDir: configDir, Memory: useMemory})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(svc)
	cleanup = finish
	return nil
}

// Execute runs the root command under ctx and prints any unreported error.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	if err != nil && !errors.Is(err, ErrReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/services"
)

// formatAuto picks pretty output for terminals and compact output otherwise.
const formatAuto = "auto"

var (
	projectInclude  string
	projectPage     int
	projectPageSize int
	projectFormat   string
)

var projectCmd = &cobra.Command{
	Use:   "project <type> [id]",
	Short: "Project records as a JSON:API document",
	Long: `Project one resource, or one page of a collection, as a JSON:API document.

The type may be given as declared (Entry) or as rendered (entry). Without
--include the type's default includes apply; --include "" includes nothing.

Examples:
  projector project entry 1
  projector project entry 1 --include comments.author,tags
  projector project project --page 2 --page-size 1`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runProject,
}

func init() {
	projectCmd.Flags().StringVarP(&projectInclude, "include", "i", "", "comma separated relationship paths to include")
	projectCmd.Flags().IntVar(&projectPage, "page", 1, "collection page number")
	projectCmd.Flags().IntVar(&projectPageSize, "page-size", 0, "collection page size (0 = configured default)")
	projectCmd.Flags().StringVarP(&projectFormat, "format", "f", formatAuto, "output format: auto, jsonapi, or pretty")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, args []string) error {
	if projectionService == nil {
		return errors.New("projection service not configured")
	}

	settings := currentSettings()
	format := resolveFormat(cmd.OutOrStdout(), projectFormat)
	if err := services.CheckFormat(settings, format); err != nil {
		return err
	}

	req := driving.ProjectionRequest{
		Type: args[0],
		Page: domain.Page{Number: projectPage, Size: projectPageSize},
	}
	if len(args) == 2 {
		req.ID = args[1]
	}
	if cmd.Flags().Changed("include") {
		req.Include = domain.Include(projectInclude)
	}

	doc, err := projectionService.Project(cmd.Context(), req)
	if doc != nil {
		if rerr := services.Render(cmd.OutOrStdout(), doc, format); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		return reportError(cmd, err, settings, format)
	}
	return nil
}

// reportError renders err to stderr using the configured error mapping.
func reportError(cmd *cobra.Command, err error, settings *domain.AppSettings, format string) error {
	if rerr := services.RenderError(cmd.ErrOrStderr(), err, settings.Errors.Mapping, format); rerr != nil {
		return fmt.Errorf("reporting %v: %w", err, rerr)
	}
	return fmt.Errorf("%w: %w", ErrReported, err)
}

// resolveFormat turns "auto" into pretty for terminals and jsonapi otherwise.
func resolveFormat(w io.Writer, format string) string {
	if format != formatAuto {
		return format
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return domain.FormatPretty
	}
	return domain.FormatJSONAPI
}

// currentSettings returns the configured settings, or defaults.
func currentSettings() *domain.AppSettings {
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil && settings != nil {
			return settings
		}
	}
	defaults := domain.DefaultAppSettings()
	return &defaults
}

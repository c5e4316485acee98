package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage projection settings",
	Long: `View and change pagination, key formatting, rendering, error, and link settings.

Settings live in config.toml inside the config directory. PROJECTOR_*
environment variables override the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Validate and persist one setting.

Keys:
  ` + strings.Join(services.SettingKeys, "\n  ") + `

List values are comma separated.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	for _, key := range services.SettingKeys {
		cmd.Printf("  %-24s %s\n", key, settingValue(settings, key))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

// settingValue renders one setting for display.
func settingValue(settings *domain.AppSettings, key string) string {
	switch key {
	case services.KeyPageSize:
		return strconv.Itoa(settings.Pagination.PageSize)
	case services.KeyMaxPageSize:
		return strconv.Itoa(settings.Pagination.MaxPageSize)
	case services.KeyFormatKeys:
		return settings.Format.Keys.String()
	case services.KeyFormatTypes:
		return settings.Format.Types.String()
	case services.KeyRenderFormat:
		return strings.Join(settings.Render.Formats, ",")
	case services.KeyParseFormat:
		return strings.Join(settings.Render.ParseFormats, ",")
	case services.KeyErrorMapping:
		return settings.Errors.Mapping
	case services.KeyLinksBaseURL:
		if settings.Links.BaseURL == "" {
			return "(none)"
		}
		return settings.Links.BaseURL
	}
	return ""
}

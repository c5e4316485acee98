package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPageSize     = "pagination.page_size"
	KeyMaxPageSize  = "pagination.max_page_size"
	KeyFormatKeys   = "format.keys"
	KeyFormatTypes  = "format.types"
	KeyRenderFormat = "render.formats"
	KeyParseFormat  = "parse.formats"
	KeyErrorMapping = "errors.mapping"
	KeyLinksBaseURL = "links.base_url"
)

// SettingKeys lists every key Set accepts, in display order.
var SettingKeys = []string{
	KeyPageSize, KeyMaxPageSize, KeyFormatKeys, KeyFormatTypes,
	KeyRenderFormat, KeyParseFormat, KeyErrorMapping, KeyLinksBaseURL,
}

// SettingsService manages projection settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil function.
	_ = v.RegisterValidation("keyformat", func(fl validator.FieldLevel) bool {
		return domain.KeyFormat(fl.Field().String()).IsValid()
	})

	return &SettingsService{
		configStore: configStore,
		validate:    v,
	}
}

// Get retrieves current settings. Missing or invalid values fall back to
// defaults so a broken config file never stops projections.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Pagination: domain.PaginationSettings{
			PageSize:    s.getInt(KeyPageSize, defaults.Pagination.PageSize),
			MaxPageSize: s.getInt(KeyMaxPageSize, defaults.Pagination.MaxPageSize),
		},
		Format: domain.FormatSettings{
			Keys:  s.getKeyFormat(KeyFormatKeys, defaults.Format.Keys),
			Types: s.getKeyFormat(KeyFormatTypes, defaults.Format.Types),
		},
		Render: domain.RenderSettings{
			Formats:      s.getStringSlice(KeyRenderFormat, defaults.Render.Formats),
			ParseFormats: s.getStringSlice(KeyParseFormat, defaults.Render.ParseFormats),
		},
		Errors: domain.ErrorSettings{
			Mapping: s.getString(KeyErrorMapping, defaults.Errors.Mapping),
		},
		Links: domain.LinkSettings{
			BaseURL: strings.TrimRight(s.configStore.GetString(KeyLinksBaseURL), "/"),
		},
	}

	if err := s.Validate(settings); err != nil {
		return &defaults, nil
	}
	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyPageSize, settings.Pagination.PageSize},
		{KeyMaxPageSize, settings.Pagination.MaxPageSize},
		{KeyFormatKeys, settings.Format.Keys.String()},
		{KeyFormatTypes, settings.Format.Types.String()},
		{KeyRenderFormat, settings.Render.Formats},
		{KeyParseFormat, settings.Render.ParseFormats},
		{KeyErrorMapping, settings.Errors.Mapping},
		{KeyLinksBaseURL, settings.Links.BaseURL},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set validates a single key against the current settings and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyPageSize, KeyMaxPageSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		if key == KeyPageSize {
			settings.Pagination.PageSize = n
		} else {
			settings.Pagination.MaxPageSize = n
		}
	case KeyFormatKeys:
		settings.Format.Keys = domain.KeyFormat(value)
	case KeyFormatTypes:
		settings.Format.Types = domain.KeyFormat(value)
	case KeyRenderFormat:
		settings.Render.Formats = splitList(value)
	case KeyParseFormat:
		settings.Render.ParseFormats = splitList(value)
	case KeyErrorMapping:
		settings.Errors.Mapping = value
	case KeyLinksBaseURL:
		settings.Links.BaseURL = strings.TrimRight(value, "/")
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Validate checks settings against their constraints.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q (value %v)",
				domain.ErrInvalidInput, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// GetDefaults returns the default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return append([]string(nil), defaultVal...)
	}
	return val
}

func (s *SettingsService) getKeyFormat(key string, defaultVal domain.KeyFormat) domain.KeyFormat {
	val := domain.KeyFormat(s.configStore.GetString(key))
	if !val.IsValid() {
		return defaultVal
	}
	return val
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package domain

// KeyFormat selects how member keys and type names are spelled in output.
type KeyFormat string

// Available key formats.
const (
	// KeyFormatAsDeclared leaves names exactly as declared in the schema.
	KeyFormatAsDeclared KeyFormat = "as-declared"

	// KeyFormatCamelize renders body_text as bodyText.
	KeyFormatCamelize KeyFormat = "camelize"

	// KeyFormatDasherize renders body_text as body-text.
	KeyFormatDasherize KeyFormat = "dasherize"

	// KeyFormatUnderscore renders bodyText as body_text.
	KeyFormatUnderscore KeyFormat = "underscore"

	// KeyFormatCapitalize renders body_text as BodyText.
	KeyFormatCapitalize KeyFormat = "capitalize"
)

// IsValid returns true if the key format is recognised.
func (f KeyFormat) IsValid() bool {
	switch f {
	case KeyFormatAsDeclared, KeyFormatCamelize, KeyFormatDasherize,
		KeyFormatUnderscore, KeyFormatCapitalize:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f KeyFormat) String() string {
	return string(f)
}

// Render formats.
const (
	// FormatJSONAPI is compact application/vnd.api+json output.
	FormatJSONAPI = "jsonapi"

	// FormatPretty is indented JSON:API output for terminals.
	FormatPretty = "pretty"
)

// Error mappings.
const (
	// ErrorMappingJSONAPI renders failures as JSON:API error documents.
	ErrorMappingJSONAPI = "jsonapi"

	// ErrorMappingPlain renders failures as a single message line.
	ErrorMappingPlain = "plain"
)

// Page limits.
const (
	DefaultPageSize    = 5
	DefaultMaxPageSize = 100
)

// AppSettings holds the projection settings consumed from the host environment.
type AppSettings struct {
	Pagination PaginationSettings
	Format     FormatSettings
	Render     RenderSettings
	Errors     ErrorSettings
	Links      LinkSettings
}

// PaginationSettings configures collection responses.
type PaginationSettings struct {
	PageSize    int `validate:"min=1,ltefield=MaxPageSize"`
	MaxPageSize int `validate:"min=1"`
}

// FormatSettings configures key and type name spelling.
type FormatSettings struct {
	Keys  KeyFormat `validate:"keyformat"`
	Types KeyFormat `validate:"keyformat"`
}

// RenderSettings lists the enabled render and parse formats.
type RenderSettings struct {
	Formats      []string `validate:"min=1,dive,oneof=jsonapi pretty"`
	ParseFormats []string `validate:"dive,oneof=jsonapi"`
}

// ErrorSettings selects the error-reporting mapping.
type ErrorSettings struct {
	Mapping string `validate:"oneof=jsonapi plain"`
}

// LinkSettings configures generated links.
type LinkSettings struct {
	// BaseURL is prefixed to every generated link. Empty yields relative links.
	BaseURL string `validate:"omitempty,url"`
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pagination: PaginationSettings{
			PageSize:    DefaultPageSize,
			MaxPageSize: DefaultMaxPageSize,
		},
		Format: FormatSettings{
			Keys:  KeyFormatCamelize,
			Types: KeyFormatCamelize,
		},
		Render: RenderSettings{
			Formats:      []string{FormatJSONAPI, FormatPretty},
			ParseFormats: []string{FormatJSONAPI},
		},
		Errors: ErrorSettings{Mapping: ErrorMappingJSONAPI},
	}
}

// RenderEnabled reports whether a render format is enabled.
func (s *AppSettings) RenderEnabled(format string) bool {
	for _, f := range s.Render.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ParseEnabled reports whether a parse format is enabled.
func (s *AppSettings) ParseEnabled(format string) bool {
	for _, f := range s.Render.ParseFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Page selects one page of a collection. Zero values mean defaults.
type Page struct {
	Number int
	Size   int
}

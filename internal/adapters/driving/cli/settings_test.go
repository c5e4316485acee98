package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/services"
)

func TestSettingsCmd_Show(t *testing.T) {
	setupServices(t, false)

	out, _, err := execute(t, nil, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Regexp(t, `pagination\.page_size\s+5`, out)
	assert.Regexp(t, `format\.keys\s+camelize`, out)
	assert.Regexp(t, `links\.base_url\s+\(none\)`, out)
}

func TestSettingsCmd_Set(t *testing.T) {
	setupServices(t, false)

	out, _, err := execute(t, nil, "settings", "set", "format.keys", "dasherize")
	require.NoError(t, err)
	assert.Contains(t, out, "Set format.keys")

	out, _, err = execute(t, nil, "settings", "show")
	require.NoError(t, err)
	assert.Regexp(t, `format\.keys\s+dasherize`, out)
}

func TestSettingsCmd_SetRejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "nope", "1"},
		{"not a number", services.KeyPageSize, "many"},
		{"above max", services.KeyPageSize, "1000"},
		{"unknown key format", services.KeyFormatKeys, "shout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupServices(t, false)

			_, _, err := execute(t, nil, "settings", "set", tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, _, err := execute(t, nil, "settings", "show")

	assert.EqualError(t, err, "settings service not configured")
}

func TestSettingValue(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Links.BaseURL = "https://api.example.com"

	assert.Equal(t, "100", settingValue(&settings, services.KeyMaxPageSize))
	assert.Equal(t, "jsonapi,pretty", settingValue(&settings, services.KeyRenderFormat))
	assert.Equal(t, "https://api.example.com", settingValue(&settings, services.KeyLinksBaseURL))
	assert.Empty(t, settingValue(&settings, "nope"))
}

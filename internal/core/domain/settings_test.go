package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFormat_IsValid(t *testing.T) {
	tests := []struct {
		format   KeyFormat
		expected bool
	}{
		{KeyFormatAsDeclared, true},
		{KeyFormatCamelize, true},
		{KeyFormatDasherize, true},
		{KeyFormatUnderscore, true},
		{KeyFormatCapitalize, true},
		{"", false},
		{"snake", false},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.IsValid())
		})
	}
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 5, s.Pagination.PageSize)
	assert.Equal(t, 100, s.Pagination.MaxPageSize)
	assert.Equal(t, KeyFormatCamelize, s.Format.Keys)
	assert.Equal(t, KeyFormatCamelize, s.Format.Types)
	assert.True(t, s.RenderEnabled(FormatJSONAPI))
	assert.True(t, s.RenderEnabled(FormatPretty))
	assert.False(t, s.RenderEnabled("browsable"))
	assert.True(t, s.ParseEnabled(FormatJSONAPI))
	assert.Equal(t, ErrorMappingJSONAPI, s.Errors.Mapping)
}

func TestLessID(t *testing.T) {
	assert.True(t, LessID("2", "10"))
	assert.False(t, LessID("10", "2"))
	assert.True(t, LessID("a", "b"))
	assert.False(t, LessID("1", "1"))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/example"
)

func TestParseInclude(t *testing.T) {
	reg := newRegistry(t)
	entry, ok := reg.Lookup(example.Entry)
	require.True(t, ok)

	tests := []struct {
		name    string
		raw     string
		paths   []string
		fields  map[string]bool
		invalid []string
	}{
		{name: "empty", raw: "", fields: map[string]bool{}},
		{name: "single", raw: "authors", paths: []string{"authors"}, fields: map[string]bool{}},
		{
			name:   "nested and formatted",
			raw:    "comments.author.bio, tags",
			paths:  []string{"comments.author.bio", "tags"},
			fields: map[string]bool{},
		},
		{
			name:   "shared prefix merges",
			raw:    "comments,comments.author",
			paths:  []string{"comments.author"},
			fields: map[string]bool{},
		},
		{
			name:    "not includable",
			raw:     "blog,authors",
			paths:   []string{"authors"},
			fields:  map[string]bool{},
			invalid: []string{"blog"},
		},
		{
			name:    "invalid tail drops whole path",
			raw:     "comments.author.nope",
			fields:  map[string]bool{},
			invalid: []string{"comments.author.nope"},
		},
		{
			name:    "duplicates reported once",
			raw:     "nope,nope,,nope",
			fields:  map[string]bool{},
			invalid: []string{"nope"},
		},
		{
			name:    "empty segment",
			raw:     "comments..author",
			fields:  map[string]bool{},
			invalid: []string{"comments..author"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseInclude(tt.raw, entry, reg, domain.KeyFormatCamelize)

			assert.Equal(t, tt.paths, parsed.Tree.Paths())
			assert.Equal(t, tt.fields, parsed.Fields)
			assert.Equal(t, tt.invalid, parsed.Invalid)
		})
	}
}

func TestParseInclude_PolymorphicTarget(t *testing.T) {
	reg := newRegistry(t)
	company, _ := reg.Lookup(example.Company)

	parsed := ParseInclude("currentProject,futureProjects", company, reg, domain.KeyFormatCamelize)

	assert.Empty(t, parsed.Invalid)
	assert.Equal(t, []string{"current_project", "future_projects"}, parsed.Tree.Paths())
}

func TestDefaultInclude(t *testing.T) {
	reg := newRegistry(t)
	entry, _ := reg.Lookup(example.Entry)
	blog, _ := reg.Lookup(example.Blog)

	assert.Equal(t, []string{"comments"}, DefaultInclude(entry).Tree.Paths())
	assert.Empty(t, DefaultInclude(blog).Tree)
}

func TestVisibility(t *testing.T) {
	reg := newRegistry(t)
	entry, _ := reg.Lookup(example.Entry)

	hidden := NewVisibility(ParseInclude("", entry, reg, domain.KeyFormatCamelize))
	assert.True(t, hidden.Shows("headline", false))
	assert.False(t, hidden.Shows("featured", true))

	shown := NewVisibility(ParseInclude("comments.entry.featured", entry, reg, domain.KeyFormatCamelize))
	assert.True(t, shown.Shows("featured", true))
}

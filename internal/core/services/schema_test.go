package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/projector/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/example"
)

func TestSchemaService_List(t *testing.T) {
	svc := NewSchemaService(newRegistry(t), nil)

	list := svc.List()
	require.NotEmpty(t, list)

	byName := make(map[string]int)
	for i, sum := range list {
		byName[sum.Name] = i
	}
	project := list[byName[example.Project]]
	assert.Equal(t, "project", project.Type)
	assert.Equal(t, "/projects", project.Path)
	assert.Equal(t, 2, project.Subtypes)

	art := list[byName[example.ArtProject]]
	assert.Equal(t, "artProject", art.Type)
	assert.Equal(t, "project", art.Base)

	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Name, list[i].Name)
	}
}

func TestSchemaService_Describe(t *testing.T) {
	svc := NewSchemaService(newRegistry(t), nil)

	desc, err := svc.Describe("entry")
	require.NoError(t, err)

	assert.Equal(t, example.Entry, desc.Name)
	assert.Equal(t, []string{"comments"}, desc.DefaultIncludes)

	fields := make(map[string]string)
	for _, f := range desc.Attributes {
		fields[f.Key] = f.Placement
	}
	assert.Equal(t, "attributes", fields["bodyText"])
	assert.Equal(t, "meta", fields["bodyFormat"])

	rels := make(map[string]bool)
	for _, r := range desc.Relationships {
		rels[r.Name] = r.Computed
		if r.Name == "featured" {
			assert.True(t, r.Gated)
			assert.Equal(t, "entry", r.Target)
		}
		if r.Name == "blog" {
			assert.False(t, r.Includable)
		}
	}
	assert.True(t, rels["suggested"])
	assert.False(t, rels["authors"])
}

func TestSchemaService_DescribePolymorphic(t *testing.T) {
	store := memory.NewConfigStoreWith(map[string]any{KeyFormatTypes: "dasherize"})
	svc := NewSchemaService(newRegistry(t), NewSettingsService(store))

	desc, err := svc.Describe("project")
	require.NoError(t, err)

	assert.Equal(t, example.Discriminator, desc.Discriminator)
	assert.Equal(t, map[string]string{
		example.KindArt:      "art-project",
		example.KindResearch: "research-project",
	}, desc.SubtypeNames)
}

func TestSchemaService_DescribeUnknown(t *testing.T) {
	svc := NewSchemaService(newRegistry(t), nil)

	_, err := svc.Describe("Widget")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

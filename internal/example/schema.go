package example

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/core/schema"
)

// Type names.
const (
	Blog            = "Blog"
	Entry           = "Entry"
	Author          = "Author"
	AuthorBio       = "AuthorBio"
	Comment         = "Comment"
	TaggedItem      = "TaggedItem"
	Project         = "Project"
	ArtProject      = "ArtProject"
	ResearchProject = "ResearchProject"
	Company         = "Company"
)

// Discriminator is the stored column that selects a project subtype.
const Discriminator = "polymorphic_ctype"

// Discriminator values.
const (
	KindArt      = "art"
	KindResearch = "research"
)

// NewRegistry builds the example schema. clock drives the blog copyright year.
func NewRegistry(clock clockwork.Clock) (*schema.Registry, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return schema.NewRegistry(Types(clock)...)
}

// Types returns the example resource type declarations.
func Types(clock clockwork.Clock) []schema.ResourceType {
	return []schema.ResourceType{
		{
			Name:       TaggedItem,
			Path:       "/tags",
			Attributes: []schema.Attribute{{Name: "tag"}},
		},
		{
			Name:       Blog,
			Path:       "/blogs",
			Attributes: []schema.Attribute{{Name: "name"}, {Name: "url"}},
			Computed: []schema.Computed{{
				Name:      "copyright",
				Placement: schema.InMeta,
				Compute: func(context.Context, *domain.Record, driven.RecordReader) (any, error) {
					return clock.Now().Year(), nil
				},
			}},
			Relationships: []schema.Relationship{
				{Name: "tags", Target: TaggedItem, ToMany: true, Includable: true},
			},
			RootMeta: func(bool) map[string]any {
				return map[string]any{"api_docs": "/docs/api/blogs"}
			},
		},
		{
			Name: Entry,
			Path: "/entries",
			Attributes: []schema.Attribute{
				{Name: "headline"},
				{Name: "body_text"},
				{Name: "pub_date"},
				{Name: "mod_date"},
			},
			Computed: []schema.Computed{{
				Name:      "body_format",
				Placement: schema.InMeta,
				Compute: func(context.Context, *domain.Record, driven.RecordReader) (any, error) {
					return "text", nil
				},
			}},
			Relationships: []schema.Relationship{
				{Name: "blog", Target: Blog},
				{Name: "authors", Target: Author, ToMany: true, Includable: true},
				{Name: "comments", Target: Comment, ToMany: true, Source: "comment_set", Includable: true},
				{Name: "featured", Target: Entry, Resolve: featured, Includable: true, Gated: true},
				{
					Name:        "suggested",
					Target:      Entry,
					ToMany:      true,
					Resolve:     suggested,
					Includable:  true,
					RelatedLink: "/entries/{id}/suggested",
					SelfLink:    "/entries/{id}/relationships/suggested",
				},
				{Name: "tags", Target: TaggedItem, ToMany: true, Includable: true},
			},
			DefaultIncludes: []string{"comments"},
		},
		{
			Name:       Author,
			Path:       "/authors",
			Attributes: []schema.Attribute{{Name: "name"}, {Name: "email"}},
			Relationships: []schema.Relationship{
				{Name: "bio", Target: AuthorBio, Includable: true},
			},
		},
		{
			Name:       AuthorBio,
			Path:       "/author-bios",
			Attributes: []schema.Attribute{{Name: "body"}},
			Relationships: []schema.Relationship{
				{Name: "author", Target: Author},
			},
		},
		{
			Name:       Comment,
			Path:       "/comments",
			Attributes: []schema.Attribute{{Name: "body"}},
			Relationships: []schema.Relationship{
				{Name: "entry", Target: Entry, Includable: true},
				{Name: "author", Target: Author, Includable: true},
			},
		},
		{
			Name: Project,
			Path: "/projects",
			Attributes: []schema.Attribute{{Name: "topic"}},
			Polymorphic: &schema.Polymorphic{
				Discriminator: Discriminator,
				Subtypes: map[string]string{
					KindArt:      ArtProject,
					KindResearch: ResearchProject,
				},
			},
		},
		{
			Name:       ArtProject,
			Attributes: []schema.Attribute{{Name: "topic"}, {Name: "artist"}},
		},
		{
			Name:       ResearchProject,
			Attributes: []schema.Attribute{{Name: "topic"}, {Name: "supervisor"}},
		},
		{
			Name:       Company,
			Path:       "/companies",
			Attributes: []schema.Attribute{{Name: "name"}},
			Relationships: []schema.Relationship{
				{Name: "current_project", Target: Project, Includable: true},
				{Name: "future_projects", Target: Project, ToMany: true, Includable: true},
			},
		},
	}
}

// suggested lists every other entry.
func suggested(ctx context.Context, rec *domain.Record, store driven.RecordReader) ([]domain.Ref, error) {
	return otherEntries(ctx, rec, store, 0)
}

// featured picks the first other entry, if any.
func featured(ctx context.Context, rec *domain.Record, store driven.RecordReader) ([]domain.Ref, error) {
	return otherEntries(ctx, rec, store, 1)
}

func otherEntries(ctx context.Context, rec *domain.Record, store driven.RecordReader, limit int) ([]domain.Ref, error) {
	if store == nil {
		return nil, fmt.Errorf("listing entries: %w", domain.ErrNotImplemented)
	}
	others, err := store.List(ctx, domain.Query{
		Type:       Entry,
		ExcludeIDs: []string{rec.ID},
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	refs := make([]domain.Ref, 0, len(others))
	for _, other := range others {
		refs = append(refs, other.Ref())
	}
	return refs, nil
}

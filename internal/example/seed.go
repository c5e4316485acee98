package example

import (
	"context"
	"fmt"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
)

// Records returns the demo dataset. Every call returns fresh values.
func Records() []domain.Record {
	return []domain.Record{
		record(TaggedItem, "1", attrs{"tag": "programming"}, nil),
		record(TaggedItem, "2", attrs{"tag": "go"}, nil),

		record(Blog, "1", attrs{"name": "Some Blog", "url": "https://blog.example.com"},
			refs{"tags": {{Type: TaggedItem, ID: "1"}, {Type: TaggedItem, ID: "2"}}}),
		record(Blog, "2", attrs{"name": "Other Blog", "url": "https://other.example.com"},
			refs{"tags": {}}),

		record(Author, "1", attrs{"name": "Alice Moreau", "email": "alice@example.com"},
			refs{"bio": {{Type: AuthorBio, ID: "1"}}}),
		record(Author, "2", attrs{"name": "Bram Osei", "email": "bram@example.com"},
			refs{"bio": {{Type: AuthorBio, ID: "2"}}}),
		record(AuthorBio, "1", attrs{"body": "Writes about compilers."},
			refs{"author": {{Type: Author, ID: "1"}}}),
		record(AuthorBio, "2", attrs{"body": "Writes about storage engines."},
			refs{"author": {{Type: Author, ID: "2"}}}),

		record(Entry, "1", attrs{
			"headline":  "Projecting resources",
			"body_text": "Schemas drive the output.",
			"pub_date":  "2024-03-01",
			"mod_date":  "2024-03-02",
		}, refs{
			"blog":        {{Type: Blog, ID: "1"}},
			"authors":     {{Type: Author, ID: "1"}},
			"comment_set": {{Type: Comment, ID: "1"}, {Type: Comment, ID: "2"}},
			"tags":        {{Type: TaggedItem, ID: "1"}},
		}),
		record(Entry, "2", attrs{
			"headline":  "Compound documents",
			"body_text": "Included resources are unique.",
			"pub_date":  "2024-04-10",
			"mod_date":  nil,
		}, refs{
			"blog":        {{Type: Blog, ID: "1"}},
			"authors":     {{Type: Author, ID: "1"}, {Type: Author, ID: "2"}},
			"comment_set": {{Type: Comment, ID: "3"}},
			"tags":        {{Type: TaggedItem, ID: "1"}, {Type: TaggedItem, ID: "2"}},
		}),
		record(Entry, "3", attrs{
			"headline":  "Polymorphic projects",
			"body_text": "Discriminators select subtypes.",
			"pub_date":  "2024-05-20",
			"mod_date":  nil,
		}, refs{
			"blog":        {{Type: Blog, ID: "2"}},
			"authors":     {{Type: Author, ID: "2"}},
			"comment_set": {},
			"tags":        {},
		}),

		record(Comment, "1", attrs{"body": "Clear write-up."},
			refs{"entry": {{Type: Entry, ID: "1"}}, "author": {{Type: Author, ID: "2"}}}),
		record(Comment, "2", attrs{"body": "What about sparse fieldsets?"},
			refs{"entry": {{Type: Entry, ID: "1"}}, "author": {{Type: Author, ID: "2"}}}),
		record(Comment, "3", attrs{"body": "Dedup works."},
			refs{"entry": {{Type: Entry, ID: "2"}}, "author": {{Type: Author, ID: "1"}}}),

		project("1", KindArt, attrs{"topic": "Sculpture", "artist": "Ines Varga"}),
		project("2", KindResearch, attrs{"topic": "Protein folding", "supervisor": "Dr. Lund"}),
		project("3", KindArt, attrs{"topic": "Murals", "artist": "Teo Park"}),

		record(Company, "1", attrs{"name": "Acme"}, refs{
			"current_project": {{Type: Project, ID: "1"}},
			"future_projects": {{Type: Project, ID: "2"}, {Type: Project, ID: "3"}},
		}),
	}
}

// Seed saves the demo dataset into store, replacing existing records.
func Seed(ctx context.Context, store driven.RecordStore) (int, error) {
	records := Records()
	for i := range records {
		if err := store.Save(ctx, &records[i]); err != nil {
			return i, fmt.Errorf("seeding %s: %w", records[i].Ref().Key(), err)
		}
	}
	return len(records), nil
}

type (
	attrs map[string]any
	refs  map[string][]domain.Ref
)

func record(typ, id string, a attrs, r refs) domain.Record {
	return domain.Record{Type: typ, ID: id, Attributes: a, Refs: r}
}

func project(id, kind string, a attrs) domain.Record {
	return domain.Record{Type: Project, ID: id, Discriminator: kind, Attributes: a}
}

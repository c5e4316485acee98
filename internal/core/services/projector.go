package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/core/schema"
)

// ProjectorOptions controls how projected names and links are spelled.
type ProjectorOptions struct {
	// Keys formats attribute, relationship, and resource meta keys.
	Keys domain.KeyFormat

	// Types formats resource type names.
	Types domain.KeyFormat

	// BaseURL prefixes generated links.
	BaseURL string
}

// Projector turns records into JSON:API documents.
// It holds no per-request state and is safe for concurrent use.
type Projector struct {
	registry *schema.Registry
	store    driven.RecordReader
	opts     ProjectorOptions
}

// NewProjector creates a projector over an immutable registry.
// store may be nil when no computed field, resolver, polymorphic reference,
// or inclusion needs to read records.
func NewProjector(registry *schema.Registry, store driven.RecordReader, opts ProjectorOptions) *Projector {
	return &Projector{registry: registry, store: store, opts: opts}
}

// Project projects records of typeName into a document.
//
// When many is false the document carries at most one primary resource.
// When the include parameter was not given, the type's default includes
// apply. Invalid include paths yield a *domain.IncludeError together with
// a document built from the valid paths. Every other failure returns a nil
// document.
func (p *Projector) Project(
	ctx context.Context,
	records []domain.Record,
	many bool,
	typeName string,
	inc domain.InclusionRequest,
) (*domain.Document, error) {
	root, ok := p.registry.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, typeName)
	}
	if !many && len(records) > 1 {
		return nil, fmt.Errorf("%w: %d records for a single resource document", domain.ErrInvalidInput, len(records))
	}

	parsed := DefaultInclude(root)
	if inc.Given {
		parsed = ParseInclude(inc.Raw, root, p.registry, p.opts.Keys)
	}

	run := &projection{
		Projector: p,
		ctx:       ctx,
		visible:   NewVisibility(parsed),
		loaded:    make(map[string]*domain.Record),
		refs:      make(map[string][]domain.Ref),
		seen:      make(map[string]bool),
	}

	doc := &domain.Document{Many: many}
	concrete := make([]*schema.ResourceType, len(records))
	for i := range records {
		rec := &records[i]
		t, err := p.registry.Resolve(root, rec)
		if err != nil {
			return nil, err
		}
		res, err := run.resource(rec, t)
		if err != nil {
			return nil, err
		}
		run.loaded[rec.Ref().Key()] = rec
		run.seen[identity(t, rec)] = true
		concrete[i] = t
		doc.Data = append(doc.Data, res)
	}

	for i := range records {
		if err := run.expand(&records[i], concrete[i], parsed.Tree); err != nil {
			return nil, err
		}
	}
	doc.Included = run.included

	if root.RootMeta != nil {
		if meta := root.RootMeta(many); len(meta) > 0 {
			doc.Meta = make(map[string]any, len(meta))
			for k, v := range meta {
				doc.Meta[k] = v
			}
		}
	}

	if len(parsed.Invalid) > 0 {
		return doc, &domain.IncludeError{Paths: parsed.Invalid}
	}
	return doc, nil
}

// TypeName spells a declared type name in the configured type format.
func (p *Projector) TypeName(name string) string {
	return FormatName(name, p.opts.Types)
}

func (p *Projector) key(name string) string {
	return FormatName(name, p.opts.Keys)
}

func (p *Projector) link(template, id string) string {
	return p.opts.BaseURL + strings.ReplaceAll(template, "{id}", id)
}

// projection is the state of one Project call.
type projection struct {
	*Projector
	ctx      context.Context
	visible  Visibility
	loaded   map[string]*domain.Record
	refs     map[string][]domain.Ref
	seen     map[string]bool
	included []domain.Resource
}

func identity(t *schema.ResourceType, rec *domain.Record) string {
	return t.Name + "/" + rec.ID
}

// resource builds the resource object for rec using the concrete type t.
func (run *projection) resource(rec *domain.Record, t *schema.ResourceType) (domain.Resource, error) {
	res := domain.Resource{Type: run.TypeName(t.Name), ID: rec.ID}

	discriminator := ""
	if t.Base != "" {
		if base, ok := run.registry.Lookup(t.Base); ok && base.Polymorphic != nil {
			discriminator = base.Polymorphic.Discriminator
		}
	}

	attrs := make(map[string]any)
	for _, a := range t.Attributes {
		if a.Name == discriminator || !run.visible.Shows(a.Name, a.Gated) {
			continue
		}
		v, _ := rec.Attr(a.Name)
		attrs[run.key(a.Name)] = v
	}

	meta := make(map[string]any)
	for _, c := range t.Computed {
		if !run.visible.Shows(c.Name, c.Gated) {
			continue
		}
		v, err := c.Compute(run.ctx, rec, run.store)
		if err != nil {
			return domain.Resource{}, &domain.ComputeError{Type: t.Name, ID: rec.ID, Field: c.Name, Err: err}
		}
		if c.Placement == schema.InMeta {
			meta[run.key(c.Name)] = v
		} else {
			attrs[run.key(c.Name)] = v
		}
	}

	rels := make(map[string]domain.Relationship)
	for i := range t.Relationships {
		rel := &t.Relationships[i]
		if !run.visible.Shows(rel.Name, rel.Gated) {
			continue
		}
		obj, err := run.relationship(rec, t, rel)
		if err != nil {
			return domain.Resource{}, err
		}
		rels[run.key(rel.Name)] = obj
	}

	if len(attrs) > 0 {
		res.Attributes = attrs
	}
	if len(meta) > 0 {
		res.Meta = meta
	}
	if len(rels) > 0 {
		res.Relationships = rels
	}
	if t.Path != "" {
		res.Links = map[string]string{"self": run.opts.BaseURL + t.Path + "/" + rec.ID}
	}
	return res, nil
}

func (run *projection) relationship(
	rec *domain.Record,
	t *schema.ResourceType,
	rel *schema.Relationship,
) (domain.Relationship, error) {
	refs, err := run.refsFor(rec, t, rel)
	if err != nil {
		return domain.Relationship{}, err
	}

	obj := domain.Relationship{ToMany: rel.ToMany}
	if rel.ToMany {
		obj.Many = make([]domain.Identifier, 0, len(refs))
		for _, ref := range refs {
			id, err := run.identify(ref)
			if err != nil {
				return domain.Relationship{}, err
			}
			obj.Many = append(obj.Many, id)
		}
		obj.Meta = map[string]any{"count": len(refs)}
	} else if len(refs) > 0 {
		id, err := run.identify(refs[0])
		if err != nil {
			return domain.Relationship{}, err
		}
		obj.One = &id
	}

	if rel.SelfLink != "" || rel.RelatedLink != "" {
		obj.Links = make(map[string]string, 2)
		if rel.SelfLink != "" {
			obj.Links["self"] = run.link(rel.SelfLink, rec.ID)
		}
		if rel.RelatedLink != "" {
			obj.Links["related"] = run.link(rel.RelatedLink, rec.ID)
		}
	}
	return obj, nil
}

// refsFor returns the refs of a relationship, running its resolver once
// per record within this projection.
func (run *projection) refsFor(
	rec *domain.Record,
	t *schema.ResourceType,
	rel *schema.Relationship,
) ([]domain.Ref, error) {
	memo := identity(t, rec) + "#" + rel.Name
	if refs, ok := run.refs[memo]; ok {
		return refs, nil
	}

	var refs []domain.Ref
	if rel.Resolve != nil {
		resolved, err := rel.Resolve(run.ctx, rec, run.store)
		if err != nil {
			return nil, &domain.ComputeError{Type: t.Name, ID: rec.ID, Field: rel.Name, Err: err}
		}
		refs = resolved
	} else {
		refs = rec.Refs[rel.SourceField()]
	}

	if !rel.ToMany && len(refs) > 1 {
		refs = refs[:1]
	}
	normalised := make([]domain.Ref, len(refs))
	for i, ref := range refs {
		if ref.Type == "" {
			ref.Type = rel.Target
		}
		normalised[i] = ref
	}

	run.refs[memo] = normalised
	return normalised, nil
}

// identify returns the resource identifier for a ref, resolving
// polymorphic bases to their concrete subtype.
func (run *projection) identify(ref domain.Ref) (domain.Identifier, error) {
	t, err := run.concrete(ref)
	if err != nil {
		return domain.Identifier{}, err
	}
	return domain.Identifier{Type: run.TypeName(t.Name), ID: ref.ID}, nil
}

func (run *projection) concrete(ref domain.Ref) (*schema.ResourceType, error) {
	t, ok := run.registry.Lookup(ref.Type)
	if !ok {
		return nil, fmt.Errorf("%w: reference to unregistered type %q", domain.ErrDataIntegrity, ref.Type)
	}
	if !t.IsPolymorphic() {
		return t, nil
	}
	rec, err := run.load(ref)
	if err != nil {
		return nil, err
	}
	return run.registry.Resolve(t, rec)
}

// load reads a referenced record through the store, once per projection.
func (run *projection) load(ref domain.Ref) (*domain.Record, error) {
	if rec, ok := run.loaded[ref.Key()]; ok {
		return rec, nil
	}
	if run.store == nil {
		return nil, fmt.Errorf("%w: no record store to load %s", domain.ErrNotImplemented, ref.Key())
	}

	rec, err := run.store.Get(run.ctx, ref.Type, ref.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %q is referenced but missing", domain.ErrDataIntegrity, ref.Type, ref.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ref.Key(), err)
	}
	run.loaded[ref.Key()] = rec
	return rec, nil
}

// expand adds the related resources named by tree to the included set and
// recurses into each subtree. Nothing outside the tree is expanded.
func (run *projection) expand(rec *domain.Record, t *schema.ResourceType, tree domain.IncludeTree) error {
	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rel, ok := t.Relationship(name)
		if !ok {
			// Declared on a sibling subtype of a polymorphic base.
			continue
		}
		refs, err := run.refsFor(rec, t, rel)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			related, err := run.load(ref)
			if err != nil {
				return err
			}
			relType, err := run.concrete(ref)
			if err != nil {
				return err
			}
			if key := identity(relType, related); !run.seen[key] {
				res, err := run.resource(related, relType)
				if err != nil {
					return err
				}
				run.seen[key] = true
				run.included = append(run.included, res)
			}
			if err := run.expand(related, relType, tree.Child(name)); err != nil {
				return err
			}
		}
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/schema"
	"github.com/custodia-labs/projector/internal/logger"
)

// Ensure ProjectionService implements the interface.
var _ driving.ProjectionService = (*ProjectionService)(nil)

// ProjectionService loads records from the store and projects them.
type ProjectionService struct {
	registry *schema.Registry
	store    driven.RecordReader
	settings driving.SettingsService
	metrics  *Metrics
}

// NewProjectionService creates a new projection service.
// settings and metrics may be nil; defaults apply and nothing is recorded.
func NewProjectionService(
	registry *schema.Registry,
	store driven.RecordReader,
	settings driving.SettingsService,
	metrics *Metrics,
) *ProjectionService {
	return &ProjectionService{
		registry: registry,
		store:    store,
		settings: settings,
		metrics:  metrics,
	}
}

// Project loads the requested records and projects them.
func (s *ProjectionService) Project(ctx context.Context, req driving.ProjectionRequest) (*domain.Document, error) {
	start := time.Now()
	label := "unknown"
	doc, err := s.project(ctx, req, &label)
	s.metrics.Observe(label, doc, err, time.Since(start))

	if err != nil {
		logger.Debug("projection of %s %q failed: %v", req.Type, req.ID, err)
	} else {
		logger.Debug("projected %s %q: %d primary, %d included", req.Type, req.ID, len(doc.Data), len(doc.Included))
	}
	return doc, err
}

// project does the work of Project; label receives the resolved type name
// so metrics never carry caller-supplied strings.
func (s *ProjectionService) project(
	ctx context.Context,
	req driving.ProjectionRequest,
	label *string,
) (*domain.Document, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	settings := s.currentSettings()
	t, err := LookupType(s.registry, req.Type, settings.Format.Types)
	if err != nil {
		return nil, err
	}
	*label = t.Name

	projector := NewProjector(s.registry, s.store, ProjectorOptions{
		Keys:    settings.Format.Keys,
		Types:   settings.Format.Types,
		BaseURL: settings.Links.BaseURL,
	})

	if req.ID != "" {
		rec, err := s.get(ctx, t, req.ID)
		if err != nil {
			return nil, err
		}
		return projector.Project(ctx, []domain.Record{*rec}, false, t.Name, req.Include)
	}

	page := normalisePage(req.Page, settings.Pagination)
	q := s.query(t)

	count, err := s.store.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("counting %s: %w", t.Name, err)
	}
	if pages := pageCount(count, page.Size); page.Number > pages {
		return nil, fmt.Errorf("%w: page %d of %d", domain.ErrNotFound, page.Number, pages)
	}

	q.Offset = (page.Number - 1) * page.Size
	q.Limit = page.Size
	records, err := s.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.Name, err)
	}

	doc, err := projector.Project(ctx, records, true, t.Name, req.Include)
	if doc != nil {
		paginate(doc, t.Path, page, settings.Pagination.PageSize, count, req.Include, settings.Links.BaseURL)
	}
	return doc, err
}

// get loads one record. Subtypes are stored under their polymorphic base,
// so the record must also resolve to the requested subtype.
func (s *ProjectionService) get(ctx context.Context, t *schema.ResourceType, id string) (*domain.Record, error) {
	storedAs := t.Name
	if t.Base != "" {
		storedAs = t.Base
	}

	rec, err := s.store.Get(ctx, storedAs, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrNotFound, t.Name, id)
		}
		return nil, fmt.Errorf("loading %s %q: %w", t.Name, id, err)
	}

	if t.Base != "" {
		base, _ := s.registry.Lookup(t.Base)
		concrete, err := s.registry.Resolve(base, rec)
		if err != nil {
			return nil, err
		}
		if concrete.Name != t.Name {
			return nil, fmt.Errorf("%w: %s %q", domain.ErrNotFound, t.Name, id)
		}
	}
	return rec, nil
}

// query selects a type's records; subtypes filter their base by discriminator.
func (s *ProjectionService) query(t *schema.ResourceType) domain.Query {
	if t.Base == "" {
		return domain.Query{Type: t.Name}
	}
	q := domain.Query{Type: t.Base}
	if base, ok := s.registry.Lookup(t.Base); ok && base.Polymorphic != nil {
		for disc, name := range base.Polymorphic.Subtypes {
			if name == t.Name {
				q.Discriminators = append(q.Discriminators, disc)
			}
		}
		sort.Strings(q.Discriminators)
	}
	return q
}

func (s *ProjectionService) currentSettings() domain.AppSettings {
	if s.settings == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := s.settings.Get()
	if err != nil || settings == nil {
		logger.Warn("using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}

// LookupType finds a type by declared name or by its name in the type format.
func LookupType(registry *schema.Registry, name string, types domain.KeyFormat) (*schema.ResourceType, error) {
	if t, ok := registry.Lookup(name); ok {
		return t, nil
	}
	for _, declared := range registry.Names() {
		if FormatName(declared, types) == name {
			t, _ := registry.Lookup(declared)
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, name)
}

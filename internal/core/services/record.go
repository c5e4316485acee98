package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/schema"
	"github.com/custodia-labs/projector/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService parses incoming resource documents and stores them.
type RecordService struct {
	registry *schema.Registry
	store    driven.RecordStore
	settings driving.SettingsService
}

// NewRecordService creates a new record service. settings may be nil.
func NewRecordService(registry *schema.Registry, store driven.RecordStore, settings driving.SettingsService) *RecordService {
	return &RecordService{registry: registry, store: store, settings: settings}
}

// Put parses a JSON:API resource document and saves the record.
func (s *RecordService) Put(ctx context.Context, body []byte) (*domain.Record, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	settings := domain.DefaultAppSettings()
	if s.settings != nil {
		if current, err := s.settings.Get(); err == nil && current != nil {
			settings = *current
		}
	}
	if !settings.ParseEnabled(domain.FormatJSONAPI) {
		return nil, fmt.Errorf("%w: parsing %s is disabled", domain.ErrUnsupportedFormat, domain.FormatJSONAPI)
	}

	rec, err := ParseRecord(body, s.registry, settings.Format)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving %s: %w", rec.Ref().Key(), err)
	}
	logger.Debug("stored %s", rec.Ref().Key())
	return rec, nil
}

// Delete removes a record. Subtype names resolve to their base.
func (s *RecordService) Delete(ctx context.Context, typeName, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}

	types := domain.DefaultAppSettings().Format.Types
	if s.settings != nil {
		if current, err := s.settings.Get(); err == nil && current != nil {
			types = current.Format.Types
		}
	}
	t, err := LookupType(s.registry, typeName, types)
	if err != nil {
		return err
	}
	storedAs := t.Name
	if t.Base != "" {
		storedAs = t.Base
	}
	return s.store.Delete(ctx, storedAs, id)
}

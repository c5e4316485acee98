package services

import (
	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driving"
	"github.com/custodia-labs/projector/internal/core/schema"
)

// Ensure SchemaService implements the interface.
var _ driving.SchemaService = (*SchemaService)(nil)

// SchemaService describes registered types using the configured formats.
type SchemaService struct {
	registry *schema.Registry
	settings driving.SettingsService
}

// NewSchemaService creates a new schema service. settings may be nil.
func NewSchemaService(registry *schema.Registry, settings driving.SettingsService) *SchemaService {
	return &SchemaService{registry: registry, settings: settings}
}

// List returns a summary of every registered type, sorted by name.
func (s *SchemaService) List() []driving.TypeSummary {
	formats := s.formats()
	names := s.registry.Names()
	out := make([]driving.TypeSummary, 0, len(names))
	for _, name := range names {
		t, _ := s.registry.Lookup(name)
		out = append(out, s.summary(t, formats))
	}
	return out
}

// Describe returns the fields, relationships, and polymorphism of a type.
func (s *SchemaService) Describe(typeName string) (*driving.TypeDescription, error) {
	formats := s.formats()
	t, err := LookupType(s.registry, typeName, formats.Types)
	if err != nil {
		return nil, err
	}

	desc := &driving.TypeDescription{
		TypeSummary:     s.summary(t, formats),
		Attributes:      make([]driving.FieldDescription, 0, len(t.Attributes)+len(t.Computed)),
		Relationships:   make([]driving.RelationshipDescription, 0, len(t.Relationships)),
		DefaultIncludes: append([]string(nil), t.DefaultIncludes...),
	}

	for _, a := range t.Attributes {
		desc.Attributes = append(desc.Attributes, driving.FieldDescription{
			Name:      a.Name,
			Key:       FormatName(a.Name, formats.Keys),
			Placement: schema.InAttributes.String(),
			Gated:     a.Gated,
		})
	}
	for _, c := range t.Computed {
		desc.Attributes = append(desc.Attributes, driving.FieldDescription{
			Name:      c.Name,
			Key:       FormatName(c.Name, formats.Keys),
			Computed:  true,
			Placement: c.Placement.String(),
			Gated:     c.Gated,
		})
	}
	for _, rel := range t.Relationships {
		desc.Relationships = append(desc.Relationships, driving.RelationshipDescription{
			Name:       rel.Name,
			Key:        FormatName(rel.Name, formats.Keys),
			Target:     FormatName(rel.Target, formats.Types),
			ToMany:     rel.ToMany,
			Computed:   rel.Resolve != nil,
			Includable: rel.Includable,
			Gated:      rel.Gated,
		})
	}

	if t.IsPolymorphic() {
		desc.Discriminator = t.Polymorphic.Discriminator
		desc.SubtypeNames = make(map[string]string, len(t.Polymorphic.Subtypes))
		for disc, name := range t.Polymorphic.Subtypes {
			desc.SubtypeNames[disc] = FormatName(name, formats.Types)
		}
	}
	return desc, nil
}

func (s *SchemaService) summary(t *schema.ResourceType, formats domain.FormatSettings) driving.TypeSummary {
	sum := driving.TypeSummary{
		Name: t.Name,
		Type: FormatName(t.Name, formats.Types),
		Path: t.Path,
	}
	if t.Base != "" {
		sum.Base = FormatName(t.Base, formats.Types)
	}
	if t.IsPolymorphic() {
		sum.Subtypes = len(t.Polymorphic.Subtypes)
	}
	return sum
}

func (s *SchemaService) formats() domain.FormatSettings {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil && settings != nil {
			return settings.Format
		}
	}
	return domain.DefaultAppSettings().Format
}

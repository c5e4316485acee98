package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/schema"
)

type wireDocument struct {
	Data *wireResource `json:"data"`
}

type wireResource struct {
	Type          string                      `json:"type"`
	ID            string                      `json:"id"`
	Attributes    map[string]any              `json:"attributes"`
	Relationships map[string]wireRelationship `json:"relationships"`
}

type wireRelationship struct {
	Data json.RawMessage `json:"data"`
}

// ParseRecord parses a JSON:API resource document into a record.
//
// Type names and member keys may be spelled as declared or in the
// configured formats. Unknown types, attributes and relationships, as well
// as writes to computed fields, are rejected with domain.ErrInvalidInput.
// Subtype records are stored under their polymorphic base.
func ParseRecord(body []byte, registry *schema.Registry, formats domain.FormatSettings) (*domain.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc wireDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: malformed document: %v", domain.ErrInvalidInput, err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("%w: document has no primary data", domain.ErrInvalidInput)
	}
	if doc.Data.ID == "" {
		return nil, fmt.Errorf("%w: resource id is required", domain.ErrInvalidInput)
	}

	t, err := LookupType(registry, doc.Data.Type, formats.Types)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if t.IsPolymorphic() {
		return nil, fmt.Errorf("%w: %s is polymorphic, give a concrete subtype", domain.ErrInvalidInput, t.Name)
	}

	rec := &domain.Record{
		Type:       t.Name,
		ID:         doc.Data.ID,
		Attributes: make(map[string]any, len(doc.Data.Attributes)),
		Refs:       make(map[string][]domain.Ref, len(doc.Data.Relationships)),
	}
	if t.Base != "" {
		rec.Type = t.Base
		rec.Discriminator = discriminatorFor(registry, t)
	}

	for key, value := range doc.Data.Attributes {
		name, err := attributeName(t, key, formats.Keys)
		if err != nil {
			return nil, err
		}
		rec.Attributes[name] = value
	}

	for key, wire := range doc.Data.Relationships {
		rel, ok := matchRelationship(registry, t, key, formats.Keys)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no relationship %q", domain.ErrInvalidInput, t.Name, key)
		}
		if rel.Resolve != nil {
			return nil, fmt.Errorf("%w: relationship %q is computed", domain.ErrInvalidInput, rel.Name)
		}
		refs, err := parseLinkage(wire.Data, rel, registry, formats.Types)
		if err != nil {
			return nil, err
		}
		rec.Refs[rel.SourceField()] = refs
	}
	return rec, nil
}

func attributeName(t *schema.ResourceType, key string, keys domain.KeyFormat) (string, error) {
	for _, a := range t.Attributes {
		if matches(a.Name, key, keys) {
			return a.Name, nil
		}
	}
	for _, c := range t.Computed {
		if matches(c.Name, key, keys) {
			return "", fmt.Errorf("%w: attribute %q is computed", domain.ErrInvalidInput, c.Name)
		}
	}
	return "", fmt.Errorf("%w: %s has no attribute %q", domain.ErrInvalidInput, t.Name, key)
}

// parseLinkage decodes relationship data: null, one identifier, or an array.
func parseLinkage(
	raw json.RawMessage,
	rel *schema.Relationship,
	registry *schema.Registry,
	types domain.KeyFormat,
) ([]domain.Ref, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		if rel.ToMany {
			return nil, fmt.Errorf("%w: relationship %q needs an array", domain.ErrInvalidInput, rel.Name)
		}
		return []domain.Ref{}, nil
	}

	var ids []domain.Identifier
	if trimmed[0] == '[' {
		if !rel.ToMany {
			return nil, fmt.Errorf("%w: relationship %q is to-one", domain.ErrInvalidInput, rel.Name)
		}
		if err := json.Unmarshal(trimmed, &ids); err != nil {
			return nil, fmt.Errorf("%w: relationship %q: %v", domain.ErrInvalidInput, rel.Name, err)
		}
	} else {
		if rel.ToMany {
			return nil, fmt.Errorf("%w: relationship %q needs an array", domain.ErrInvalidInput, rel.Name)
		}
		var id domain.Identifier
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return nil, fmt.Errorf("%w: relationship %q: %v", domain.ErrInvalidInput, rel.Name, err)
		}
		ids = []domain.Identifier{id}
	}

	refs := make([]domain.Ref, 0, len(ids))
	for _, id := range ids {
		if id.ID == "" {
			return nil, fmt.Errorf("%w: relationship %q has an identifier without id", domain.ErrInvalidInput, rel.Name)
		}
		target, err := LookupType(registry, id.Type, types)
		if err != nil {
			return nil, fmt.Errorf("%w: relationship %q: %v", domain.ErrInvalidInput, rel.Name, err)
		}
		if target.Name != rel.Target && target.Base != rel.Target {
			return nil, fmt.Errorf("%w: relationship %q targets %s, not %s",
				domain.ErrInvalidInput, rel.Name, rel.Target, target.Name)
		}
		stored := target.Name
		if target.Base != "" {
			stored = target.Base
		}
		refs = append(refs, domain.Ref{Type: stored, ID: id.ID})
	}
	return refs, nil
}

// discriminatorFor returns the smallest discriminator mapped to subtype t.
func discriminatorFor(registry *schema.Registry, t *schema.ResourceType) string {
	base, ok := registry.Lookup(t.Base)
	if !ok || base.Polymorphic == nil {
		return ""
	}
	var discs []string
	for disc, name := range base.Polymorphic.Subtypes {
		if name == t.Name {
			discs = append(discs, disc)
		}
	}
	if len(discs) == 0 {
		return ""
	}
	sort.Strings(discs)
	return discs[0]
}

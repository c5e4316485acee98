package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/projector/internal/core/domain"
)

// Registry is an immutable set of resource types keyed by name.
type Registry struct {
	types map[string]*ResourceType
	names []string
}

// NewRegistry validates the declarations and builds a registry.
// Subtypes inherit every base relationship they do not redeclare.
func NewRegistry(types ...ResourceType) (*Registry, error) {
	r := &Registry{types: make(map[string]*ResourceType, len(types))}

	for i := range types {
		t := cloneType(types[i])
		if t.Name == "" {
			return nil, fmt.Errorf("%w: resource type without a name", domain.ErrInvalidInput)
		}
		if _, dup := r.types[t.Name]; dup {
			return nil, fmt.Errorf("%w: resource type %q declared twice", domain.ErrInvalidInput, t.Name)
		}
		if err := checkFieldNames(t); err != nil {
			return nil, err
		}
		r.types[t.Name] = t
		r.names = append(r.names, t.Name)
	}
	sort.Strings(r.names)

	if err := r.linkSubtypes(); err != nil {
		return nil, err
	}
	if err := r.checkRelationships(); err != nil {
		return nil, err
	}
	if err := r.checkDefaultIncludes(); err != nil {
		return nil, err
	}
	return r, nil
}

// Lookup returns the named type. The returned value must not be modified.
func (r *Registry) Lookup(name string) (*ResourceType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns all registered type names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Resolve returns the concrete descriptor a record must be projected with.
// For a polymorphic base the record's discriminator selects the subtype;
// an unknown discriminator is a *domain.DiscriminatorError.
func (r *Registry) Resolve(declared *ResourceType, rec *domain.Record) (*ResourceType, error) {
	if !declared.IsPolymorphic() {
		return declared, nil
	}
	// Records may already be stored under their concrete subtype.
	if t, ok := r.types[rec.Type]; ok && t.Base == declared.Name {
		return t, nil
	}
	name, ok := declared.Polymorphic.Subtypes[rec.Discriminator]
	if !ok {
		return nil, &domain.DiscriminatorError{Type: declared.Name, ID: rec.ID, Discriminator: rec.Discriminator}
	}
	return r.types[name], nil
}

// Subtypes returns the concrete subtypes of a polymorphic base, sorted by name.
func (r *Registry) Subtypes(t *ResourceType) []*ResourceType {
	if !t.IsPolymorphic() {
		return nil
	}
	out := make([]*ResourceType, 0, len(t.Polymorphic.Subtypes))
	for _, name := range t.Polymorphic.Subtypes {
		out = append(out, r.types[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindRelationship looks a relationship up on t and, for polymorphic
// bases, on each of its subtypes.
func (r *Registry) FindRelationship(t *ResourceType, name string) (*Relationship, bool) {
	if rel, ok := t.Relationship(name); ok {
		return rel, true
	}
	for _, sub := range r.Subtypes(t) {
		if rel, ok := sub.Relationship(name); ok {
			return rel, true
		}
	}
	return nil, false
}

func (r *Registry) linkSubtypes() error {
	for _, name := range r.names {
		base := r.types[name]
		if base.Polymorphic == nil {
			continue
		}
		for disc, subName := range base.Polymorphic.Subtypes {
			sub, ok := r.types[subName]
			if !ok {
				return fmt.Errorf("%w: %s subtype %q for discriminator %q is not registered",
					domain.ErrInvalidInput, base.Name, subName, disc)
			}
			if sub.Polymorphic != nil {
				return fmt.Errorf("%w: subtype %q cannot itself be polymorphic", domain.ErrInvalidInput, subName)
			}
			if sub.Base != "" && sub.Base != base.Name {
				return fmt.Errorf("%w: subtype %q belongs to both %q and %q",
					domain.ErrInvalidInput, subName, sub.Base, base.Name)
			}
			sub.Base = base.Name
		}
	}

	// Inherit after every Base is known so the result is order independent.
	for _, name := range r.names {
		sub := r.types[name]
		if sub.Base == "" {
			continue
		}
		base := r.types[sub.Base]
		for _, rel := range base.Relationships {
			if _, declared := sub.Relationship(rel.Name); !declared {
				sub.Relationships = append(sub.Relationships, rel)
			}
		}
		if sub.Path == "" {
			sub.Path = base.Path
		}
	}
	return nil
}

func (r *Registry) checkRelationships() error {
	for _, name := range r.names {
		t := r.types[name]
		for _, rel := range t.Relationships {
			if _, ok := r.types[rel.Target]; !ok {
				return fmt.Errorf("%w: %s.%s targets unknown type %q",
					domain.ErrInvalidInput, t.Name, rel.Name, rel.Target)
			}
		}
	}
	return nil
}

func (r *Registry) checkDefaultIncludes() error {
	for _, name := range r.names {
		t := r.types[name]
		for _, path := range t.DefaultIncludes {
			cur := t
			for _, seg := range strings.Split(path, ".") {
				rel, ok := r.FindRelationship(cur, seg)
				if !ok || !rel.Includable {
					return fmt.Errorf("%w: %s default include %q is not includable",
						domain.ErrInvalidInput, t.Name, path)
				}
				cur = r.types[rel.Target]
			}
		}
	}
	return nil
}

func checkFieldNames(t *ResourceType) error {
	seen := make(map[string]bool)
	check := func(name string) error {
		if name == "" {
			return fmt.Errorf("%w: %s declares a field without a name", domain.ErrInvalidInput, t.Name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %s declares field %q twice", domain.ErrInvalidInput, t.Name, name)
		}
		seen[name] = true
		return nil
	}
	for _, a := range t.Attributes {
		if err := check(a.Name); err != nil {
			return err
		}
	}
	for _, c := range t.Computed {
		if c.Compute == nil {
			return fmt.Errorf("%w: %s computed field %q has no function", domain.ErrInvalidInput, t.Name, c.Name)
		}
		if err := check(c.Name); err != nil {
			return err
		}
	}
	for _, rel := range t.Relationships {
		if err := check(rel.Name); err != nil {
			return err
		}
	}
	if t.Polymorphic != nil && seen[t.Polymorphic.Discriminator] {
		return fmt.Errorf("%w: %s exposes its discriminator %q as a field",
			domain.ErrInvalidInput, t.Name, t.Polymorphic.Discriminator)
	}
	return nil
}

// cloneType copies the slices and maps of a declaration so callers
// cannot mutate a registered type through their own value.
func cloneType(t ResourceType) *ResourceType {
	c := t
	c.Base = ""
	c.Attributes = append([]Attribute(nil), t.Attributes...)
	c.Computed = append([]Computed(nil), t.Computed...)
	c.Relationships = append([]Relationship(nil), t.Relationships...)
	c.DefaultIncludes = append([]string(nil), t.DefaultIncludes...)
	if t.Polymorphic != nil {
		p := Polymorphic{
			Discriminator: t.Polymorphic.Discriminator,
			Subtypes:      make(map[string]string, len(t.Polymorphic.Subtypes)),
		}
		for k, v := range t.Polymorphic.Subtypes {
			p.Subtypes[k] = v
		}
		c.Polymorphic = &p
	}
	return &c
}

package schema

import (
	"context"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/ports/driven"
)

// Placement selects where a computed field is rendered.
type Placement int

const (
	// InAttributes renders the value inside the resource's attributes.
	InAttributes Placement = iota

	// InMeta renders the value inside the resource's meta.
	InMeta
)

// String returns the placement name.
func (p Placement) String() string {
	if p == InMeta {
		return "meta"
	}
	return "attributes"
}

// ComputeFunc derives a value from a record at projection time.
type ComputeFunc func(ctx context.Context, rec *domain.Record, store driven.RecordReader) (any, error)

// ResolveFunc derives relationship references from a record at projection time.
type ResolveFunc func(ctx context.Context, rec *domain.Record, store driven.RecordReader) ([]domain.Ref, error)

// RootMetaFunc contributes top-level meta when the type is the document root.
type RootMetaFunc func(many bool) map[string]any

// Attribute is a stored attribute field.
type Attribute struct {
	Name string

	// Gated fields are hidden unless their name is part of the include parameter.
	Gated bool
}

// Computed is a field whose value is derived rather than stored.
type Computed struct {
	Name      string
	Placement Placement
	Compute   ComputeFunc
	Gated     bool
}

// Relationship is a link from a resource to one or many others.
type Relationship struct {
	Name string

	// Target is the related resource type. It may be a polymorphic base.
	Target string

	// ToMany renders the linkage as an array.
	ToMany bool

	// Source names the record's stored ref field. Defaults to Name.
	Source string

	// Resolve computes the refs instead of reading Source.
	Resolve ResolveFunc

	// Includable allows the relationship in include paths.
	Includable bool

	// Gated relationships are hidden unless named in the include parameter.
	Gated bool

	// RelatedLink and SelfLink are link templates; "{id}" is replaced by
	// the owning record's id.
	RelatedLink string
	SelfLink    string
}

// SourceField returns the stored ref field the relationship reads.
func (r *Relationship) SourceField() string {
	if r.Source != "" {
		return r.Source
	}
	return r.Name
}

// Polymorphic declares a closed set of concrete subtypes.
type Polymorphic struct {
	// Discriminator is the stored column holding the subtype tag.
	// It is never rendered.
	Discriminator string

	// Subtypes maps discriminator values to subtype names.
	Subtypes map[string]string
}

// ResourceType describes one kind of resource.
type ResourceType struct {
	Name string

	// Path is the collection endpoint, e.g. "/entries". Used for links.
	Path string

	Attributes    []Attribute
	Computed      []Computed
	Relationships []Relationship

	// DefaultIncludes apply when the caller supplies no include parameter.
	DefaultIncludes []string

	RootMeta RootMetaFunc

	// Polymorphic is set on polymorphic bases.
	Polymorphic *Polymorphic

	// Base names the polymorphic base of a subtype. Filled in by NewRegistry.
	Base string
}

// Relationship returns the relationship declared under name.
func (t *ResourceType) Relationship(name string) (*Relationship, bool) {
	for i := range t.Relationships {
		if t.Relationships[i].Name == name {
			return &t.Relationships[i], true
		}
	}
	return nil, false
}

// HasAttribute reports whether name is a declared attribute.
func (t *ResourceType) HasAttribute(name string) bool {
	for _, a := range t.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// IsPolymorphic reports whether the type is a polymorphic base.
func (t *ResourceType) IsPolymorphic() bool {
	return t.Polymorphic != nil && len(t.Polymorphic.Subtypes) > 0
}

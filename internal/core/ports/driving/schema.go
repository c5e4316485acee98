package driving

// SchemaService describes the registered resource types.
type SchemaService interface {
	// List returns a summary of every registered type, sorted by name.
	List() []TypeSummary

	// Describe returns the full description of one type.
	// Returns domain.ErrUnsupportedType for unknown names.
	Describe(typeName string) (*TypeDescription, error)
}

// TypeSummary is a one-line view of a resource type.
type TypeSummary struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Path     string `json:"path,omitempty"`
	Base     string `json:"base,omitempty"`
	Subtypes int    `json:"subtypes,omitempty"`
}

// FieldDescription describes an attribute or computed field.
type FieldDescription struct {
	Name      string `json:"name"`
	Key       string `json:"key"`
	Computed  bool   `json:"computed,omitempty"`
	Placement string `json:"placement"`
	Gated     bool   `json:"gated,omitempty"`
}

// RelationshipDescription describes a relationship field.
type RelationshipDescription struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	Target     string `json:"target"`
	ToMany     bool   `json:"to_many"`
	Computed   bool   `json:"computed,omitempty"`
	Includable bool   `json:"includable"`
	Gated      bool   `json:"gated,omitempty"`
}

// TypeDescription is the full view of a resource type.
type TypeDescription struct {
	TypeSummary
	Attributes      []FieldDescription        `json:"attributes"`
	Relationships   []RelationshipDescription `json:"relationships"`
	DefaultIncludes []string                  `json:"default_includes,omitempty"`
	Discriminator   string                    `json:"discriminator,omitempty"`
	SubtypeNames    map[string]string         `json:"subtype_names,omitempty"`
}

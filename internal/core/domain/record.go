package domain

// Ref is a typed pointer from one record to another.
// Type may name a polymorphic base; the engine resolves the concrete subtype.
type Ref struct {
	Type string
	ID   string
}

// Key returns the identity used for deduplication.
func (r Ref) Key() string {
	return r.Type + "/" + r.ID
}

// Record is one stored instance of a resource type.
// Records are owned by the record store; the engine only reads them.
type Record struct {
	// Type is the resource type the record was stored under.
	// For polymorphic records this is usually the base type.
	Type string

	// ID is the primary key, unique within Type.
	ID string

	// Discriminator selects the concrete subtype of a polymorphic record.
	// Empty for non-polymorphic types.
	Discriminator string

	// Attributes holds stored attribute values keyed by declared name.
	Attributes map[string]any

	// Refs holds stored relationship references keyed by field name.
	// To-one fields hold zero or one element.
	Refs map[string][]Ref
}

// Ref returns the record's own identity.
func (r *Record) Ref() Ref {
	return Ref{Type: r.Type, ID: r.ID}
}

// Attr returns an attribute value and whether it was stored.
func (r *Record) Attr(name string) (any, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}

// Query selects records of a single type from a record store.
type Query struct {
	// Type is the resource type to list.
	Type string

	// ExcludeIDs are skipped.
	ExcludeIDs []string

	// Discriminators, when set, keep only records whose discriminator is listed.
	Discriminators []string

	// Offset skips this many records after ordering by ID.
	Offset int

	// Limit caps the number of records. Zero means no limit.
	Limit int
}

// LessID orders ids so that numeric ids sort naturally ("2" before "10").
func LessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

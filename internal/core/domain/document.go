package domain

import "encoding/json"

// Identifier is a JSON:API resource identifier object.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship is a JSON:API relationship object.
// Exactly one of One or Many is meaningful, selected by ToMany.
type Relationship struct {
	// ToMany selects array rendering of data.
	ToMany bool

	// One is the to-one linkage; nil renders as null.
	One *Identifier

	// Many is the to-many linkage; nil renders as an empty array.
	Many []Identifier

	// Links holds "self" and "related" links when declared.
	Links map[string]string

	// Meta holds relationship level meta such as "count".
	Meta map[string]any
}

// MarshalJSON renders data as null, an object, or an array.
func (r Relationship) MarshalJSON() ([]byte, error) {
	out := struct {
		Data  any               `json:"data"`
		Links map[string]string `json:"links,omitempty"`
		Meta  map[string]any    `json:"meta,omitempty"`
	}{Links: r.Links, Meta: r.Meta}

	switch {
	case r.ToMany && r.Many == nil:
		out.Data = []Identifier{}
	case r.ToMany:
		out.Data = r.Many
	case r.One != nil:
		out.Data = r.One
	}
	return json.Marshal(out)
}

// Resource is a JSON:API resource object.
type Resource struct {
	Type          string                  `json:"type"`
	ID            string                  `json:"id"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
	Links         map[string]string       `json:"links,omitempty"`
	Meta          map[string]any          `json:"meta,omitempty"`
}

// Identifier returns the resource's identifier object.
func (r *Resource) Identifier() Identifier {
	return Identifier{Type: r.Type, ID: r.ID}
}

// Document is a projected JSON:API document.
type Document struct {
	// Many selects array rendering of primary data.
	Many bool

	// Data is the primary data. A single-resource document holds at most one element.
	Data []Resource

	// Included holds linked resources, unique by type and id.
	Included []Resource

	// Meta is top-level, non-resource metadata.
	Meta map[string]any

	// Links holds top-level links such as pagination.
	Links map[string]*string
}

// MarshalJSON renders the document envelope.
func (d Document) MarshalJSON() ([]byte, error) {
	out := struct {
		Data     any                `json:"data"`
		Included []Resource         `json:"included,omitempty"`
		Meta     map[string]any     `json:"meta,omitempty"`
		Links    map[string]*string `json:"links,omitempty"`
	}{Included: d.Included, Meta: d.Meta, Links: d.Links}

	switch {
	case d.Many && d.Data == nil:
		out.Data = []Resource{}
	case d.Many:
		out.Data = d.Data
	case len(d.Data) > 0:
		out.Data = d.Data[0]
	}
	return json.Marshal(out)
}

// ErrorSource points at the part of the request that caused an error.
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// ErrorObject is a JSON:API error object.
type ErrorObject struct {
	ID     string       `json:"id,omitempty"`
	Status string       `json:"status"`
	Code   string       `json:"code,omitempty"`
	Title  string       `json:"title,omitempty"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
}

// ErrorDocument is a JSON:API document carrying only errors.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

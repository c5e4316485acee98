package services

import (
	"strings"

	"github.com/custodia-labs/projector/internal/core/domain"
	"github.com/custodia-labs/projector/internal/core/schema"
)

// ParsedInclude is the validated form of an include parameter.
type ParsedInclude struct {
	// Tree holds the relationship paths to expand, by declared name.
	Tree domain.IncludeTree

	// Fields are include-gated attributes or computed fields the caller
	// named as the last segment of a path. They are shown, not expanded.
	Fields map[string]bool

	// Invalid are the offending paths, exactly as the caller wrote them.
	Invalid []string
}

// ParseInclude parses a comma separated list of dotted relationship paths.
//
// Segments may be spelled as declared or in the keys format. A path whose
// segments are not declared, or not includable, is reported in Invalid and
// left out of the tree; the remaining paths are unaffected.
func ParseInclude(
	raw string,
	root *schema.ResourceType,
	registry *schema.Registry,
	keys domain.KeyFormat,
) ParsedInclude {
	parsed := ParsedInclude{Tree: domain.IncludeTree{}, Fields: map[string]bool{}}
	reported := make(map[string]bool)

	for _, entry := range strings.Split(raw, ",") {
		path := strings.TrimSpace(entry)
		if path == "" {
			continue
		}
		segments, field, ok := resolvePath(path, root, registry, keys)
		if !ok {
			if !reported[path] {
				reported[path] = true
				parsed.Invalid = append(parsed.Invalid, path)
			}
			continue
		}
		if field != "" {
			parsed.Fields[field] = true
		}
		if len(segments) > 0 {
			parsed.Tree.Add(segments...)
		}
	}
	return parsed
}

// DefaultInclude builds the parsed form of a type's default includes.
func DefaultInclude(t *schema.ResourceType) ParsedInclude {
	parsed := ParsedInclude{Tree: domain.IncludeTree{}, Fields: map[string]bool{}}
	for _, path := range t.DefaultIncludes {
		parsed.Tree.Add(strings.Split(path, ".")...)
	}
	return parsed
}

// resolvePath maps a dotted path onto declared relationship names. The last
// segment may instead name an include-gated attribute or computed field.
func resolvePath(
	path string,
	root *schema.ResourceType,
	registry *schema.Registry,
	keys domain.KeyFormat,
) (segments []string, field string, ok bool) {
	parts := strings.Split(path, ".")
	segments = make([]string, 0, len(parts))
	cur := root

	for i, seg := range parts {
		rel, found := matchRelationship(registry, cur, seg, keys)
		if !found {
			if i == len(parts)-1 {
				if name, gated := matchGatedField(registry, cur, seg, keys); gated {
					return segments, name, true
				}
			}
			return nil, "", false
		}
		if !rel.Includable {
			return nil, "", false
		}
		segments = append(segments, rel.Name)
		cur, _ = registry.Lookup(rel.Target)
	}
	return segments, "", true
}

func candidates(registry *schema.Registry, t *schema.ResourceType) []*schema.ResourceType {
	return append([]*schema.ResourceType{t}, registry.Subtypes(t)...)
}

func matches(declared, seg string, keys domain.KeyFormat) bool {
	return declared == seg || FormatName(declared, keys) == seg
}

func matchRelationship(
	registry *schema.Registry,
	t *schema.ResourceType,
	seg string,
	keys domain.KeyFormat,
) (*schema.Relationship, bool) {
	if seg == "" {
		return nil, false
	}
	for _, c := range candidates(registry, t) {
		for i := range c.Relationships {
			if matches(c.Relationships[i].Name, seg, keys) {
				return &c.Relationships[i], true
			}
		}
	}
	return nil, false
}

func matchGatedField(
	registry *schema.Registry,
	t *schema.ResourceType,
	seg string,
	keys domain.KeyFormat,
) (string, bool) {
	for _, c := range candidates(registry, t) {
		for _, a := range c.Attributes {
			if a.Gated && matches(a.Name, seg, keys) {
				return a.Name, true
			}
		}
		for _, f := range c.Computed {
			if f.Gated && matches(f.Name, seg, keys) {
				return f.Name, true
			}
		}
	}
	return "", false
}

// Visibility decides which include-gated fields a single projection shows.
// It is built per projection call and never stored on the schema.
type Visibility struct {
	requested map[string]bool
}

// NewVisibility collects every relationship name in the include tree plus
// the gated fields the caller named.
func NewVisibility(parsed ParsedInclude) Visibility {
	requested := parsed.Tree.Names()
	for name := range parsed.Fields {
		requested[name] = true
	}
	return Visibility{requested: requested}
}

// Shows reports whether a field with the given name and gating is visible.
func (v Visibility) Shows(name string, gated bool) bool {
	return !gated || v.requested[name]
}

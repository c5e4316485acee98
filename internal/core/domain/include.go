package domain

import "sort"

// InclusionRequest is the caller's "include" parameter.
type InclusionRequest struct {
	// Raw is the comma separated list of dotted relationship paths.
	Raw string

	// Given is false when the parameter was absent, which lets a
	// resource type apply its default includes.
	Given bool
}

// Include builds an InclusionRequest for an explicitly supplied parameter.
func Include(raw string) InclusionRequest {
	return InclusionRequest{Raw: raw, Given: true}
}

// IncludeTree is a parsed set of inclusion paths.
// Each key is a relationship name; its value is the subtree to expand
// inside the related resources.
type IncludeTree map[string]IncludeTree

// Has reports whether name is requested at this level.
func (t IncludeTree) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// Child returns the subtree under name, or nil.
func (t IncludeTree) Child(name string) IncludeTree {
	return t[name]
}

// Add merges a path of segments into the tree.
func (t IncludeTree) Add(segments ...string) {
	node := t
	for _, seg := range segments {
		next, ok := node[seg]
		if !ok || next == nil {
			next = IncludeTree{}
			node[seg] = next
		}
		node = next
	}
}

// Names returns every relationship name that appears anywhere in the tree.
func (t IncludeTree) Names() map[string]bool {
	names := make(map[string]bool)
	var walk func(IncludeTree)
	walk = func(n IncludeTree) {
		for name, child := range n {
			names[name] = true
			walk(child)
		}
	}
	walk(t)
	return names
}

// Paths returns the dotted leaf paths of the tree, sorted.
func (t IncludeTree) Paths() []string {
	var paths []string
	var walk func(prefix string, n IncludeTree)
	walk = func(prefix string, n IncludeTree) {
		for name, child := range n {
			p := name
			if prefix != "" {
				p = prefix + "." + name
			}
			if len(child) == 0 {
				paths = append(paths, p)
				continue
			}
			walk(p, child)
		}
	}
	walk("", t)
	sort.Strings(paths)
	return paths
}

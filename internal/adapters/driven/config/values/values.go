// Package values converts loosely typed configuration values.
//
// TOML decodes integers as int64 and arrays as []any, environment overlays
// produce strings, and callers set native Go values. The helpers accept all
// of these shapes so every ConfigStore answers typed getters the same way.
package values

import (
	"sort"
	"strconv"
	"strings"
)

// String returns v as a string, or "" when it is not one.
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// Int returns v as an int, or 0 when it cannot be read as one.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// Bool returns v as a bool, or false when it cannot be read as one.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		return false
	}
}

// StringSlice returns v as a string slice. Strings are split on commas.
func StringSlice(v any) []string {
	switch s := v.(type) {
	case []string:
		return append([]string(nil), s...)
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

// Flatten converts nested maps to dot-notation keys.
// {"a": {"b": 1}} becomes {"a.b": 1}.
func Flatten(m map[string]any, prefix string) map[string]any {
	out := make(map[string]any)
	for key, value := range m {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range Flatten(nested, full) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}

// Nest is the inverse of Flatten. A key that is both a value and a table
// prefix keeps the value under its full dotted name.
func Nest(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	// Shorter keys first so tables are created before their members.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	out := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		table := out
		placed := true
		for _, part := range parts[:len(parts)-1] {
			next, exists := table[part]
			if !exists {
				child := make(map[string]any)
				table[part] = child
				table = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				placed = false
				break
			}
			table = child
		}
		if placed {
			if _, clash := table[parts[len(parts)-1]].(map[string]any); !clash {
				table[parts[len(parts)-1]] = flat[key]
				continue
			}
		}
		out[key] = flat[key]
	}
	return out
}

// Package config holds the value handling shared by the ConfigStore adapters.
package config

import (
	"sort"
	"strings"
)

// Values is a flat map of dot separated keys to decoded values.
type Values map[string]any

// Flatten converts nested maps to dot-notation keys.
// E.g., {"storage": {"driver": "s3"}} becomes {"storage.driver": "s3"}.
func Flatten(m map[string]any) Values {
	out := make(Values)
	flatten(out, m, "")
	return out
}

func flatten(out Values, m map[string]any, prefix string) {
	for key, value := range m {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(out, nested, full)
			continue
		}
		out[full] = value
	}
}

// Nest is the inverse of Flatten, used when writing TOML back out.
func (v Values) Nest() map[string]any {
	root := make(map[string]any)
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		node := root
		parts := strings.Split(k, ".")
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = v[k]
	}
	return root
}

// String returns the string at key or "".
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Int returns the integer at key or 0.
// TOML integers decode as int64; JSON numbers as float64.
func (v Values) Int(key string) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Bool returns the bool at key or false.
func (v Values) Bool(key string) bool {
	b, _ := v[key].(bool)
	return b
}

// StringSlice returns the strings at key, skipping non-string items.
func (v Values) StringSlice(key string) []string {
	switch s := v[key].(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

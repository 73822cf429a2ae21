package layer

import (
	"reflect"
	"sort"
	"strings"
)

// SplitPath splits a dotted setting path, dropping empty segments.
func SplitPath(path string) []string {
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Merge folds src into dst and returns dst. Tables present on both sides are
// merged recursively; any other src value replaces the dst value.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, sv := range src {
		sm, srcTable := sv.(map[string]any)
		dm, dstTable := dst[key].(map[string]any)
		if srcTable && dstTable {
			dst[key] = Merge(dm, sm)
			continue
		}
		dst[key] = cloneValue(sv)
	}
	return dst
}

// Lookup returns the value at a dotted path.
func Lookup(data map[string]any, path string) (any, bool) {
	parts := SplitPath(path)
	if data == nil || len(parts) == 0 {
		return nil, false
	}
	var cur any = data
	for _, part := range parts {
		table, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = table[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Assign stores value at a dotted path, creating intermediate tables.
// It reports false when the path is empty or crosses a non-table value.
func Assign(data map[string]any, path string, value any) bool {
	parts := SplitPath(path)
	if data == nil || len(parts) == 0 {
		return false
	}
	table := data
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
			return false
		}
		table = child
	}
	table[parts[len(parts)-1]] = value
	return true
}

// Remove deletes the value at a dotted path and reports whether it existed.
func Remove(data map[string]any, path string) bool {
	parts := SplitPath(path)
	if len(parts) == 0 {
		return false
	}
	parent := parts[:len(parts)-1]
	table := data
	if len(parent) > 0 {
		v, ok := Lookup(data, strings.Join(parent, "."))
		if !ok {
			return false
		}
		if table, ok = v.(map[string]any); !ok {
			return false
		}
	}
	key := parts[len(parts)-1]
	if _, ok := table[key]; !ok {
		return false
	}
	delete(table, key)
	return true
}

// Flatten maps every leaf of data to its dotted path.
func Flatten(data map[string]any) map[string]any {
	out := make(map[string]any)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if child, ok := v.(map[string]any); ok {
				walk(key, child)
				continue
			}
			out[key] = v
		}
	}
	walk("", data)
	return out
}

// Diff returns the sorted dotted paths whose values differ between old and
// new, including paths present on one side only.
func Diff(old, new map[string]any) []string {
	a, b := Flatten(old), Flatten(new)
	var changed []string
	for path, nv := range b {
		if ov, ok := a[path]; !ok || !reflect.DeepEqual(ov, nv) {
			changed = append(changed, path)
		}
	}
	for path := range a {
		if _, ok := b[path]; !ok {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}

// Clone deep-copies a configuration map.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Clone(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return v
	}
}

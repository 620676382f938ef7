// Package values provides nested access, comparison, and cloning utilities
// for decoded JSON payloads (map[string]any / []any trees).
package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Get resolves a dot-separated path against data. Map keys are matched
// directly; numeric segments index into arrays. The second return reports
// whether the full path resolved.
func Get(data any, path string) (any, bool) {
	if path == "" {
		return data, true
	}

	current := data

	for _, segment := range strings.Split(path, ".") {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[segment]
			if !ok {
				return nil, false
			}

			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}

			current = v[idx]
		default:
			return nil, false
		}
	}

	return current, true
}

// Set writes value at a dot-separated path, creating intermediate maps as
// needed. The root must be a map; intermediate non-map values are replaced.
func Set(data any, path string, value any) error {
	root, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set %q: root is %T, not an object", path, data)
	}

	segments := strings.Split(path, ".")
	current := root

	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}

		current = next
	}

	current[segments[len(segments)-1]] = value

	return nil
}

// Delete removes the value at a dot-separated path. Missing intermediate
// segments are a no-op.
func Delete(data any, path string) {
	root, ok := data.(map[string]any)
	if !ok {
		return
	}

	segments := strings.Split(path, ".")
	current := root

	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			return
		}

		current = next
	}

	delete(current, segments[len(segments)-1])
}

package query

import (
	"strings"
	"time"
)

// Compile translates a raw client condition object into a backend-native
// filter using the resource's mapping table.
//
// For every mapping entry the source path is read from the raw condition.
// Absent or nil values are skipped (and scrubbed from the passthrough
// remainder). Present values run through the entry's Transform, get wrapped
// by the target's operator tag, and are written at the target path. Range
// tags ($range, $dateRange) expand 2-element arrays into {$gte, $lte}.
//
// With onlyMapped=false the compiled output is deep-merged over whatever
// remains unconsumed in the raw condition, letting resources accept ad-hoc
// backend-shaped filters alongside declared ones. With onlyMapped=true only
// declared fields survive; the mapping table is then the sole sanitization
// boundary between client input and the store.
//
// Compile is pure: it never mutates raw and compiling the same input twice
// yields identical output.
func Compile(raw map[string]any, table Table, onlyMapped bool) map[string]any {
	remainder := deepCopyMap(raw)
	compiled := map[string]any{}

	for _, m := range table {
		value, ok := lookupPath(remainder, m.Source)
		deletePath(remainder, m.Source)
		if !ok || value == nil {
			continue
		}
		if m.Transform != nil {
			value = m.Transform(value)
			if value == nil {
				continue
			}
		}

		field, op := splitOperator(m.Target)
		switch op {
		case "":
			// No tag: the (possibly transformed) value is written verbatim.
		case "$range":
			pair, ok := asPair(value)
			if !ok {
				continue
			}
			value = map[string]any{"$gte": pair[0], "$lte": pair[1]}
		case "$dateRange":
			pair, ok := asPair(value)
			if !ok {
				continue
			}
			from, okFrom := asTime(pair[0])
			to, okTo := asTime(pair[1])
			if !okFrom || !okTo {
				continue
			}
			value = map[string]any{"$gte": from, "$lte": to}
		default:
			value = map[string]any{op: value}
		}

		writePath(compiled, field, value)
	}

	if onlyMapped {
		return compiled
	}
	return deepMerge(remainder, compiled)
}

// lookupPath resolves a "/"-separated path inside nested maps.
func lookupPath(m map[string]any, path string) (any, bool) {
	segments := strings.Split(path, PathSeparator)
	current := any(m)
	for _, seg := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// writePath writes value at a "/"-separated path, creating intermediate maps.
// When both the existing and the new value at the final segment are maps they
// are merged, so several mapping entries may contribute operators to the same
// backend field (e.g. separate $gte and $lte entries).
func writePath(m map[string]any, path string, value any) {
	segments := strings.Split(path, PathSeparator)
	node := m
	for _, seg := range segments[:len(segments)-1] {
		next, ok := node[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[seg] = next
		}
		node = next
	}
	last := segments[len(segments)-1]
	existing, haveExisting := node[last].(map[string]any)
	incoming, incomingIsMap := value.(map[string]any)
	if haveExisting && incomingIsMap {
		node[last] = deepMerge(existing, incoming)
		return
	}
	node[last] = value
}

// deletePath removes a "/"-separated path, pruning ancestor maps the
// deletion leaves empty. An empty subdocument surviving into the passthrough
// remainder would act as an exact-equality clause against the store and
// match almost nothing.
func deletePath(m map[string]any, path string) {
	deleteSegments(m, strings.Split(path, PathSeparator))
}

func deleteSegments(node map[string]any, segments []string) {
	if len(segments) == 1 {
		delete(node, segments[0])
		return
	}
	next, ok := node[segments[0]].(map[string]any)
	if !ok {
		return
	}
	deleteSegments(next, segments[1:])
	if len(next) == 0 {
		delete(node, segments[0])
	}
}

// deepMerge returns base with overlay merged over it; overlay wins on
// conflicts, nested maps merge recursively. Neither input is mutated.
func deepMerge(base, overlay map[string]any) map[string]any {
	out := deepCopyMap(base)
	for key, value := range overlay {
		if existing, ok := out[key].(map[string]any); ok {
			if incoming, ok := value.(map[string]any); ok {
				out[key] = deepMerge(existing, incoming)
				continue
			}
		}
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = deepCopyValue(value)
	}
	return out
}

func deepCopyValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return deepCopyMap(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}

// asPair normalizes 2-element slices of any element type to []any.
func asPair(v any) ([]any, bool) {
	switch typed := v.(type) {
	case []any:
		if len(typed) == 2 {
			return typed, true
		}
	case []string:
		if len(typed) == 2 {
			return []any{typed[0], typed[1]}, true
		}
	case []int:
		if len(typed) == 2 {
			return []any{typed[0], typed[1]}, true
		}
	case []float64:
		if len(typed) == 2 {
			return []any{typed[0], typed[1]}, true
		}
	case []time.Time:
		if len(typed) == 2 {
			return []any{typed[0], typed[1]}, true
		}
	}
	return nil, false
}

// asTime coerces the date representations the wire actually produces:
// time.Time, RFC3339 or date-only strings, and epoch milliseconds.
func asTime(v any) (time.Time, bool) {
	switch typed := v.(type) {
	case time.Time:
		return typed, true
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, typed); err == nil {
				return t, true
			}
		}
	case float64:
		return time.UnixMilli(int64(typed)).UTC(), true
	case int64:
		return time.UnixMilli(typed).UTC(), true
	case int:
		return time.UnixMilli(int64(typed)).UTC(), true
	}
	return time.Time{}, false
}

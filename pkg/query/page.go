package query

import (
	"math"
	"strconv"
)

// MaxPageSize caps the page size a client may request. Anything above it
// invalidates the whole page object rather than being clamped.
const MaxPageSize = 500

// Page is a validated, store-ready pagination window. Current is 0-based;
// the wire format is 1-based.
type Page struct {
	Current int
	Size    int
}

// Sort maps field names to a normalized direction: 1 ascending, -1 descending.
type Sort map[string]int

// NormalizePage validates untrusted pagination input and converts it to the
// internal 0-based form.
//
// The input is expected to look like {"current": 1, "size": 20} with 1-based
// current and 1..MaxPageSize size. Numeric strings are accepted because query
// parameters arrive as strings. Any violation (wrong type, current < 1,
// size out of range, fractional numbers) yields nil, never a clamped guess.
// Callers treat nil as "no pagination" only where that is their documented
// contract.
func NormalizePage(raw any) *Page {
	object, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	current, ok := asInt(object["current"])
	if !ok || current < 1 {
		return nil
	}
	size, ok := asInt(object["size"])
	if !ok || size < 1 || size > MaxPageSize {
		return nil
	}
	return &Page{Current: current - 1, Size: size}
}

// NormalizeSort validates an untrusted sort object. Accepted directions are
// 1, -1, "asc", "desc", "ASC" and "DESC". A single invalid entry invalidates
// the whole sort (fail closed to "no explicit order"); an empty object is
// also nil.
func NormalizeSort(raw any) Sort {
	object, ok := raw.(map[string]any)
	if !ok || len(object) == 0 {
		return nil
	}
	sort := make(Sort, len(object))
	for field, direction := range object {
		normalized, ok := asDirection(direction)
		if !ok {
			return nil
		}
		sort[field] = normalized
	}
	return sort
}

func asDirection(v any) (int, bool) {
	switch typed := v.(type) {
	case string:
		switch typed {
		case "asc", "ASC":
			return 1, true
		case "desc", "DESC":
			return -1, true
		}
	default:
		if n, ok := asInt(v); ok && (n == 1 || n == -1) {
			return n, true
		}
	}
	return 0, false
}

// asInt accepts the integer encodings JSON bodies and query strings produce.
func asInt(v any) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, true
	case int32:
		return int(typed), true
	case int64:
		return int(typed), true
	case float64:
		if typed != math.Trunc(typed) {
			return 0, false
		}
		return int(typed), true
	case string:
		n, err := strconv.Atoi(typed)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

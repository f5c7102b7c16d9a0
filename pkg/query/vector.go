package query

import "fmt"

// MatchKind selects how a vector-index condition matches its value.
type MatchKind int

const (
	// MatchValue - exact match against a single value.
	MatchValue MatchKind = iota
	// MatchAny - match if the field equals any of the given values (IN).
	MatchAny
)

// VectorMapping declares one entry of a resource's vector-index query
// surface. It is the sibling of Mapping for the second filter grammar: the
// same logical conditions compile to a different shape for the vector store.
type VectorMapping struct {
	Source string
	Target string
	Kind   MatchKind
}

// VectorTable is declared once per resource, like Table.
type VectorTable []VectorMapping

// Validate checks the table at resource-registration time.
func (t VectorTable) Validate() error {
	for i, m := range t {
		if err := validatePath(m.Source); err != nil {
			return fmt.Errorf("vector mapping[%d]: invalid source %q: %w", i, m.Source, err)
		}
		if m.Target == "" {
			return fmt.Errorf("vector mapping[%d]: empty target", i)
		}
		if m.Kind != MatchValue && m.Kind != MatchAny {
			return fmt.Errorf("vector mapping[%d]: unknown match kind %d", i, m.Kind)
		}
	}
	return nil
}

// VectorCondition is a backend-neutral match clause. The vector store
// adapter converts it to its native condition type.
type VectorCondition struct {
	Key   string
	Kind  MatchKind
	Value any
}

// CompileVector translates a raw client condition object into neutral
// vector-index conditions. Absent and nil values are skipped; only declared
// sources are ever read, so unmapped client input cannot reach the index.
// Output order follows table order.
//
// For MatchAny entries a scalar value is promoted to a one-element list, so
// clients may send either "genre": "essay" or "genre": ["essay", "poem"].
func CompileVector(raw map[string]any, table VectorTable) []VectorCondition {
	var conditions []VectorCondition
	for _, m := range table {
		value, ok := lookupPath(raw, m.Source)
		if !ok || value == nil {
			continue
		}
		if m.Kind == MatchAny {
			value = asList(value)
		}
		conditions = append(conditions, VectorCondition{Key: m.Target, Kind: m.Kind, Value: value})
	}
	return conditions
}

func asList(v any) []any {
	switch typed := v.(type) {
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for i, s := range typed {
			out[i] = s
		}
		return out
	case []int64:
		out := make([]any, len(typed))
		for i, n := range typed {
			out[i] = n
		}
		return out
	default:
		return []any{v}
	}
}

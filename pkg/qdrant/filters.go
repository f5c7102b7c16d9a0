package qdrant

import (
	"context"
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/inkstone/contentcore/pkg/query"
)

// Search is Query with neutral conditions: it converts compiled vector
// conditions to native ones and runs the similarity query. Callers above the
// storage layer use this and never touch protobuf condition types.
func (c *Client) Search(ctx context.Context, vector []float32, conditions []query.VectorCondition, topK int, withPayload bool) ([]ScoredPoint, error) {
	converted, err := Conditions(conditions)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, vector, converted, topK, withPayload)
}

// Conditions converts compiled vector conditions into native Qdrant
// conditions. The result plugs straight into a Query call and is combined
// with AND logic.
//
// Unsupported value types are rejected rather than dropped, so a filter can
// never silently widen to the whole collection.
func Conditions(conditions []query.VectorCondition) ([]*qdrant.Condition, error) {
	if len(conditions) == 0 {
		return nil, nil
	}

	out := make([]*qdrant.Condition, 0, len(conditions))
	for _, c := range conditions {
		converted, err := toCondition(c)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func toCondition(c query.VectorCondition) (*qdrant.Condition, error) {
	switch c.Kind {
	case query.MatchValue:
		return matchValue(c.Key, c.Value)
	case query.MatchAny:
		return matchAny(c.Key, c.Value)
	default:
		return nil, fmt.Errorf("[Qdrant] unsupported match kind %d for field '%s'", c.Kind, c.Key)
	}
}

func matchValue(key string, value any) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(key, v), nil
	case bool:
		return qdrant.NewMatchBool(key, v), nil
	case int:
		return qdrant.NewMatchInt(key, int64(v)), nil
	case int32:
		return qdrant.NewMatchInt(key, int64(v)), nil
	case int64:
		return qdrant.NewMatchInt(key, v), nil
	case float64:
		if v == float64(int64(v)) {
			return qdrant.NewMatchInt(key, int64(v)), nil
		}
		return nil, fmt.Errorf("[Qdrant] field '%s': fractional values cannot be matched exactly", key)
	default:
		return nil, fmt.Errorf("[Qdrant] field '%s': unsupported match value type %T", key, value)
	}
}

func matchAny(key string, value any) (*qdrant.Condition, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("[Qdrant] field '%s': match-any requires a list, got %T", key, value)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("[Qdrant] field '%s': match-any requires at least one value", key)
	}

	switch items[0].(type) {
	case string:
		keywords := make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("[Qdrant] field '%s': mixed types in match-any list", key)
			}
			keywords[i] = s
		}
		return qdrant.NewMatchKeywords(key, keywords...), nil
	case int, int32, int64, float64:
		ints := make([]int64, len(items))
		for i, item := range items {
			n, ok := asInt64(item)
			if !ok {
				return nil, fmt.Errorf("[Qdrant] field '%s': mixed types in match-any list", key)
			}
			ints[i] = n
		}
		return qdrant.NewMatchInts(key, ints...), nil
	default:
		return nil, fmt.Errorf("[Qdrant] field '%s': unsupported match-any value type %T", key, items[0])
	}
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

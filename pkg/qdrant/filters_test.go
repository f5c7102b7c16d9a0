package qdrant

import (
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/require"

	"github.com/inkstone/contentcore/pkg/query"
)

func TestConditionsMatchValue(t *testing.T) {
	conditions, err := Conditions([]query.VectorCondition{
		{Key: "genre", Kind: query.MatchValue, Value: "argument"},
		{Key: "status", Kind: query.MatchValue, Value: true},
		{Key: "grade", Kind: query.MatchValue, Value: int64(9)},
	})
	require.NoError(t, err)
	require.Equal(t, []*qdrant.Condition{
		qdrant.NewMatch("genre", "argument"),
		qdrant.NewMatchBool("status", true),
		qdrant.NewMatchInt("grade", 9),
	}, conditions)
}

func TestConditionsMatchValueNumericCoercion(t *testing.T) {
	// JSON decoding hands over float64 for whole numbers.
	conditions, err := Conditions([]query.VectorCondition{
		{Key: "grade", Kind: query.MatchValue, Value: float64(7)},
	})
	require.NoError(t, err)
	require.Equal(t, []*qdrant.Condition{qdrant.NewMatchInt("grade", 7)}, conditions)

	_, err = Conditions([]query.VectorCondition{
		{Key: "grade", Kind: query.MatchValue, Value: 7.5},
	})
	require.Error(t, err)
}

func TestConditionsMatchAny(t *testing.T) {
	conditions, err := Conditions([]query.VectorCondition{
		{Key: "writingMethods", Kind: query.MatchAny, Value: []any{"contrast", "metaphor"}},
		{Key: "grade", Kind: query.MatchAny, Value: []any{float64(7), int64(8)}},
	})
	require.NoError(t, err)
	require.Equal(t, []*qdrant.Condition{
		qdrant.NewMatchKeywords("writingMethods", "contrast", "metaphor"),
		qdrant.NewMatchInts("grade", 7, 8),
	}, conditions)
}

func TestConditionsRejectBadInput(t *testing.T) {
	cases := []query.VectorCondition{
		{Key: "f", Kind: query.MatchAny, Value: "not-a-list"},
		{Key: "f", Kind: query.MatchAny, Value: []any{}},
		{Key: "f", Kind: query.MatchAny, Value: []any{"a", int64(1)}},
		{Key: "f", Kind: query.MatchValue, Value: map[string]any{}},
	}
	for _, c := range cases {
		_, err := Conditions([]query.VectorCondition{c})
		require.Error(t, err, "condition %+v", c)
	}
}

func TestConditionsEmpty(t *testing.T) {
	conditions, err := Conditions(nil)
	require.NoError(t, err)
	require.Nil(t, conditions)
}

func TestPointIDString(t *testing.T) {
	id, err := pointIDString(qdrant.NewID("0d4cf1a2-9a2e-4c1f-8e7a-1b2c3d4e5f60"))
	require.NoError(t, err)
	require.Equal(t, "0d4cf1a2-9a2e-4c1f-8e7a-1b2c3d4e5f60", id)

	id, err = pointIDString(qdrant.NewIDNum(42))
	require.NoError(t, err)
	require.Equal(t, "42", id)

	_, err = pointIDString(nil)
	require.Error(t, err)
}

func TestDecodePayloadRoundTrip(t *testing.T) {
	payload := map[string]any{
		"title":  "spring",
		"status": true,
		"grade":  int64(9),
		"score":  0.5,
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"k": "v"},
	}

	decoded := decodePayload(qdrant.NewValueMap(payload))
	require.Equal(t, payload, decoded)
}

package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileVector_ValueAndAnyKinds(t *testing.T) {
	table := VectorTable{
		{Source: "status", Target: "status", Kind: MatchValue},
		{Source: "genre", Target: "genre", Kind: MatchAny},
		{Source: "writingMethods", Target: "writingMethods", Kind: MatchAny},
	}
	raw := map[string]any{
		"status":         true,
		"genre":          []any{"essay", "poem"},
		"writingMethods": "metaphor", // scalar promoted to a list
	}
	got := CompileVector(raw, table)
	require.Equal(t, []VectorCondition{
		{Key: "status", Kind: MatchValue, Value: true},
		{Key: "genre", Kind: MatchAny, Value: []any{"essay", "poem"}},
		{Key: "writingMethods", Kind: MatchAny, Value: []any{"metaphor"}},
	}, got)
}

func TestCompileVector_SkipsAbsentAndUnmapped(t *testing.T) {
	table := VectorTable{
		{Source: "status", Target: "status", Kind: MatchValue},
	}
	raw := map[string]any{
		"status":  nil,
		"dropped": "never read",
	}
	require.Empty(t, CompileVector(raw, table))
}

func TestCompileVector_StringSlicePromotion(t *testing.T) {
	table := VectorTable{{Source: "sync", Target: "sync", Kind: MatchAny}}
	got := CompileVector(map[string]any{"sync": []string{"g1", "g2"}}, table)
	require.Equal(t, []VectorCondition{
		{Key: "sync", Kind: MatchAny, Value: []any{"g1", "g2"}},
	}, got)
}

func TestVectorTableValidate(t *testing.T) {
	require.NoError(t, VectorTable{{Source: "a", Target: "a", Kind: MatchValue}}.Validate())
	require.Error(t, VectorTable{{Source: "", Target: "a", Kind: MatchValue}}.Validate())
	require.Error(t, VectorTable{{Source: "a", Target: "", Kind: MatchValue}}.Validate())
	require.Error(t, VectorTable{{Source: "a", Target: "a", Kind: MatchKind(9)}}.Validate())
}

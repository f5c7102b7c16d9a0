package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCompile_ScalarEquality(t *testing.T) {
	table := Table{{Source: "genre", Target: "genre"}}
	got := Compile(map[string]any{"genre": "essay"}, table, true)
	require.Equal(t, map[string]any{"genre": "essay"}, got)
}

func TestCompile_OperatorSuffixWrapsValue(t *testing.T) {
	table := Table{
		{Source: "title", Target: "title/$regex"},
		{Source: "writingMethods", Target: "writingMethods/$in"},
	}
	raw := map[string]any{
		"title":          "spring",
		"writingMethods": []any{"metaphor", "contrast"},
	}
	got := Compile(raw, table, true)
	require.Equal(t, map[string]any{
		"title":          map[string]any{"$regex": "spring"},
		"writingMethods": map[string]any{"$in": []any{"metaphor", "contrast"}},
	}, got)
}

func TestCompile_RangeExpansion(t *testing.T) {
	table := Table{{Source: "age", Target: "age/$range"}}
	got := Compile(map[string]any{"age": []any{18, 30}}, table, true)
	require.Equal(t, map[string]any{
		"age": map[string]any{"$gte": 18, "$lte": 30},
	}, got)
}

func TestCompile_DateRangeExpansion(t *testing.T) {
	table := Table{{Source: "createdAt", Target: "createdAt/$dateRange"}}
	raw := map[string]any{
		"createdAt": []any{"2025-01-01T00:00:00Z", "2025-06-30T23:59:59Z"},
	}
	got := Compile(raw, table, true)

	bounds, ok := got["createdAt"].(map[string]any)
	require.True(t, ok)
	from, ok := bounds["$gte"].(time.Time)
	require.True(t, ok)
	to, ok := bounds["$lte"].(time.Time)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), from)
	require.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), to)
}

func TestCompile_DateRangeFromEpochMillis(t *testing.T) {
	table := Table{{Source: "updatedAt", Target: "updatedAt/$dateRange"}}
	raw := map[string]any{"updatedAt": []any{float64(0), float64(86400000)}}
	got := Compile(raw, table, true)

	bounds := got["updatedAt"].(map[string]any)
	require.Equal(t, time.UnixMilli(0).UTC(), bounds["$gte"])
	require.Equal(t, time.UnixMilli(86400000).UTC(), bounds["$lte"])
}

func TestCompile_MalformedRangeIsSkipped(t *testing.T) {
	table := Table{{Source: "age", Target: "age/$range"}}
	got := Compile(map[string]any{"age": []any{18}}, table, true)
	require.Empty(t, got)

	got = Compile(map[string]any{"age": "eighteen"}, table, true)
	require.Empty(t, got)
}

func TestCompile_AbsentAndNilSourcesAreSkipped(t *testing.T) {
	table := Table{
		{Source: "title", Target: "title/$regex"},
		{Source: "genre", Target: "genre"},
	}
	got := Compile(map[string]any{"genre": nil}, table, true)
	require.Empty(t, got)
}

func TestCompile_TransformRunsBeforeWrite(t *testing.T) {
	table := Table{{
		Source: "gradeLevel",
		Target: "gradeLevel",
		Transform: func(v any) any {
			return map[string]any{"$lte": v}
		},
	}}
	got := Compile(map[string]any{"gradeLevel": 7}, table, true)
	require.Equal(t, map[string]any{"gradeLevel": map[string]any{"$lte": 7}}, got)
}

func TestCompile_TransformMayReturnDisjunction(t *testing.T) {
	// One logical "search box" matching either of two physical fields.
	table := Table{{
		Source: "search",
		Target: "$or",
		Transform: func(v any) any {
			return []any{
				map[string]any{"title": map[string]any{"$regex": v}},
				map[string]any{"content": map[string]any{"$regex": v}},
			}
		},
	}}
	got := Compile(map[string]any{"search": "autumn"}, table, true)
	require.Equal(t, map[string]any{"$or": []any{
		map[string]any{"title": map[string]any{"$regex": "autumn"}},
		map[string]any{"content": map[string]any{"$regex": "autumn"}},
	}}, got)
}

func TestCompile_EntriesMergeOnSharedTarget(t *testing.T) {
	table := Table{
		{Source: "minAge", Target: "age/$gte"},
		{Source: "maxAge", Target: "age/$lte"},
	}
	got := Compile(map[string]any{"minAge": 18, "maxAge": 30}, table, true)
	require.Equal(t, map[string]any{
		"age": map[string]any{"$gte": 18, "$lte": 30},
	}, got)
}

func TestCompile_NestedSourcePath(t *testing.T) {
	table := Table{{Source: "user/address/city", Target: "city"}}
	raw := map[string]any{
		"user": map[string]any{"address": map[string]any{"city": "Chengdu"}},
	}
	got := Compile(raw, table, true)
	require.Equal(t, map[string]any{"city": "Chengdu"}, got)
}

func TestCompile_NestedSourcePrunedFromPassthrough(t *testing.T) {
	// Consuming a nested source must not leave an empty parent husk behind:
	// {user: {address: {}}} would be an exact-subdocument equality clause.
	table := Table{{Source: "user/address/city", Target: "city"}}
	raw := map[string]any{
		"user":   map[string]any{"address": map[string]any{"city": "Chengdu"}},
		"status": true,
	}
	got := Compile(raw, table, false)
	require.Equal(t, map[string]any{"city": "Chengdu", "status": true}, got)
}

func TestCompile_NestedSourcePruningKeepsSiblings(t *testing.T) {
	// Pruning stops at the first ancestor that still carries other keys.
	table := Table{{Source: "user/address/city", Target: "city"}}
	raw := map[string]any{
		"user": map[string]any{
			"address": map[string]any{"city": "Chengdu"},
			"role":    "editor",
		},
	}
	got := Compile(raw, table, false)
	require.Equal(t, map[string]any{
		"city": "Chengdu",
		"user": map[string]any{"role": "editor"},
	}, got)
}

func TestCompile_PassthroughKeepsUnmappedKeys(t *testing.T) {
	table := Table{{Source: "title", Target: "title/$regex"}}
	raw := map[string]any{
		"title":  "spring",
		"status": true,
	}
	got := Compile(raw, table, false)
	require.Equal(t, map[string]any{
		"title":  map[string]any{"$regex": "spring"},
		"status": true,
	}, got)
}

func TestCompile_OnlyMappedDropsUnmappedKeys(t *testing.T) {
	table := Table{{Source: "title", Target: "title/$regex"}}
	raw := map[string]any{
		"title":  "spring",
		"status": true,
	}
	got := Compile(raw, table, true)
	require.Equal(t, map[string]any{"title": map[string]any{"$regex": "spring"}}, got)
}

func TestCompile_ConsumedSourceNeverLeaksIntoPassthrough(t *testing.T) {
	// The mapped key moves, it must not also survive under its wire name.
	table := Table{{Source: "name", Target: "username/$regex"}}
	got := Compile(map[string]any{"name": "mo"}, table, false)
	_, leaked := got["name"]
	require.False(t, leaked)
	require.Equal(t, map[string]any{"$regex": "mo"}, got["username"])
}

func TestCompile_IsPureAndIdempotent(t *testing.T) {
	table := Table{
		{Source: "title", Target: "title/$regex"},
		{Source: "createdAt", Target: "createdAt/$dateRange"},
	}
	raw := map[string]any{
		"title":     "spring",
		"createdAt": []any{"2025-01-01", "2025-02-01"},
		"status":    true,
	}
	first := Compile(raw, table, false)
	second := Compile(raw, table, false)
	require.Equal(t, first, second)

	// Input must be untouched, including the consumed keys.
	require.Equal(t, map[string]any{
		"title":     "spring",
		"createdAt": []any{"2025-01-01", "2025-02-01"},
		"status":    true,
	}, raw)
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		wantErr bool
	}{
		{"valid", Table{{Source: "title", Target: "title/$regex"}}, false},
		{"empty source", Table{{Source: "", Target: "title"}}, true},
		{"empty target", Table{{Source: "title", Target: ""}}, true},
		{"empty segment", Table{{Source: "user//city", Target: "city"}}, true},
		{"operator not last", Table{{Source: "a", Target: "$in/field"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want *Page
	}{
		{"first page", map[string]any{"current": 1, "size": 20}, &Page{Current: 0, Size: 20}},
		{"third page", map[string]any{"current": float64(3), "size": float64(50)}, &Page{Current: 2, Size: 50}},
		{"numeric strings", map[string]any{"current": "2", "size": "10"}, &Page{Current: 1, Size: 10}},
		{"max size", map[string]any{"current": 1, "size": 500}, &Page{Current: 0, Size: 500}},
		{"zero current", map[string]any{"current": 0, "size": 20}, nil},
		{"negative current", map[string]any{"current": -1, "size": 20}, nil},
		{"oversized", map[string]any{"current": 1, "size": 600}, nil},
		{"zero size", map[string]any{"current": 1, "size": 0}, nil},
		{"fractional", map[string]any{"current": 1.5, "size": 20}, nil},
		{"non-numeric", map[string]any{"current": "one", "size": 20}, nil},
		{"missing size", map[string]any{"current": 1}, nil},
		{"not an object", "page=1", nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizePage(tt.raw))
		})
	}
}

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Sort
	}{
		{"numeric directions", map[string]any{"createdAt": -1, "title": 1}, Sort{"createdAt": -1, "title": 1}},
		{"json numbers", map[string]any{"createdAt": float64(-1)}, Sort{"createdAt": -1}},
		{"lowercase tokens", map[string]any{"a": "asc", "b": "desc"}, Sort{"a": 1, "b": -1}},
		{"uppercase tokens", map[string]any{"a": "ASC", "b": "DESC"}, Sort{"a": 1, "b": -1}},
		{"one bad entry fails all", map[string]any{"a": "desc", "b": "sideways"}, nil},
		{"out-of-range number", map[string]any{"a": 2}, nil},
		{"empty object", map[string]any{}, nil},
		{"not an object", []any{"createdAt"}, nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeSort(tt.raw))
		})
	}
}

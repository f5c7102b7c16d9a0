package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var essaySchema = Definition{
	Collection: "model-essay",
	Fields: []Field{
		{Name: "uid", Unique: true, Immutable: true},
		{Name: "title", Required: true, MaxLength: 10},
		{Name: "from", Enum: []string{"UGC", "PGC"}},
		{Name: "createdUser", Immutable: true},
		{Name: "status"},
	},
}

func TestDefinitionValidate(t *testing.T) {
	require.NoError(t, essaySchema.Validate())

	require.Error(t, Definition{}.Validate())
	require.Error(t, Definition{
		Collection: "x",
		Fields:     []Field{{Name: "a"}, {Name: "a"}},
	}.Validate())
	require.Error(t, Definition{
		Collection: "x",
		Fields:     []Field{{Name: ""}},
	}.Validate())
	require.Error(t, Definition{
		Collection: "x",
		Fields:     []Field{{Name: "a", MaxLength: -1}},
	}.Validate())
}

func TestDefinitionKeyLists(t *testing.T) {
	require.Equal(t, []string{"uid", "createdUser"}, essaySchema.ImmutableKeys())
	require.Equal(t, []string{"uid"}, essaySchema.UniqueKeys())
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name      string
		doc       Document
		wantField string
	}{
		{"valid", Document{"uid": "u1", "title": "short", "from": "UGC"}, ""},
		{"missing required", Document{"uid": "u1"}, "title"},
		{"empty required", Document{"uid": "u1", "title": ""}, "title"},
		{"too long", Document{"title": "this title is far too long"}, "title"},
		{"bad enum", Document{"title": "ok", "from": "BOT"}, "from"},
		{"nil optional", Document{"title": "ok", "from": nil}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := essaySchema.ValidateDocument(tt.doc)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			require.True(t, IsValidation(err))
			var storeErr *StoreError
			require.ErrorAs(t, err, &storeErr)
			require.Equal(t, []string{tt.wantField}, storeErr.Fields)
			// The declared constraint travels with the error.
			require.Contains(t, storeErr.Constraints, tt.wantField)
		})
	}
}

func TestStripImmutable(t *testing.T) {
	patch := Document{
		"uid":         "never",
		"createdUser": "never",
		"title":       "new title",
		"status":      false,
	}
	got := essaySchema.stripImmutable(patch)
	require.Equal(t, Document{"title": "new title", "status": false}, got)

	// The original patch is untouched.
	require.Contains(t, patch, "uid")
}

func TestConstraints(t *testing.T) {
	got := essaySchema.Constraints([]string{"uid", "unknown"})
	require.Len(t, got, 1)
	require.True(t, got["uid"].Unique)
}

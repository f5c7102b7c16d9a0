package mongodb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestTranslateError(t *testing.T) {
	require.NoError(t, TranslateError(nil))
	require.ErrorIs(t, TranslateError(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	require.ErrorIs(t, TranslateError(dup), ErrDuplicateKey)

	unknown := errors.New("socket closed")
	require.Equal(t, unknown, TranslateError(unknown))
}

func TestDuplicateKeyFields(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: contentcore.model-essay index: uid_1 dup key: { uid: "abc" }`,
	}}}
	require.Equal(t, []string{"uid"}, DuplicateKeyFields(dup))

	compound := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: contentcore.tags index: key_1_scope_-1 dup key: { key: "a", scope: "b" }`,
	}}}
	require.Equal(t, []string{"key", "scope"}, DuplicateKeyFields(compound))

	require.Nil(t, DuplicateKeyFields(errors.New("not a dup")))
}

func TestDuplicateKeyFields_UnderscoredNames(t *testing.T) {
	// Field names containing underscores must not be split on them.
	single := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: contentcore.model-essay index: created_at_1 dup key: { created_at: 0 }`,
	}}}
	require.Equal(t, []string{"created_at"}, DuplicateKeyFields(single))

	compound := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: contentcore.model-essay index: uid_1_created_at_-1 dup key: { uid: "abc", created_at: 0 }`,
	}}}
	require.Equal(t, []string{"uid", "created_at"}, DuplicateKeyFields(compound))
}

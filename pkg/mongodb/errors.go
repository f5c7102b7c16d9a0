package mongodb

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Common database error types that can be used by consumers of this package.
// These provide a standardized set of errors that abstract away the
// underlying driver-specific error details.
var (
	// ErrNotFound is returned when a query doesn't find any matching documents
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique index
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrInvalidDocument is returned when a document cannot be marshaled or
	// violates server-side validation
	ErrInvalidDocument = errors.New("invalid document")
)

// TranslateError converts driver-specific errors into standardized application
// errors, allowing callers to handle them in a store-agnostic way.
// If an error doesn't match any known type, it's returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	}

	var marshalErr mongo.MarshalError
	if errors.As(err, &marshalErr) {
		return ErrInvalidDocument
	}

	return err
}

// DuplicateKeyFields extracts the field names of the violated unique index
// from a duplicate-key error. The server reports the index name in the form
// "index: uid_1 dup key: ...", so the field list is recovered from the index
// name by stripping direction suffixes. Returns nil when err is not a
// duplicate-key error or the name cannot be parsed.
func DuplicateKeyFields(err error) []string {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}

	var writeErr mongo.WriteException
	if !errors.As(err, &writeErr) {
		return nil
	}

	for _, we := range writeErr.WriteErrors {
		if fields := parseIndexFields(we.Message); len(fields) > 0 {
			return fields
		}
	}
	return nil
}

// parseIndexFields pulls field names out of "... index: title_1_genre_-1 dup key ...".
// Field names may themselves contain underscores (created_at_1), so a name is
// everything accumulated since the previous direction segment, not a single
// underscore-delimited token.
func parseIndexFields(message string) []string {
	const marker = "index: "
	idx := strings.Index(message, marker)
	if idx < 0 {
		return nil
	}
	name := message[idx+len(marker):]
	if end := strings.IndexAny(name, " \t"); end >= 0 {
		name = name[:end]
	}

	var fields []string
	var pending []string
	for _, part := range strings.Split(name, "_") {
		if part == "1" || part == "-1" {
			if len(pending) > 0 {
				fields = append(fields, strings.Join(pending, "_"))
				pending = nil
			}
			continue
		}
		pending = append(pending, part)
	}
	// Custom-named indexes carry no direction suffix at all.
	if len(pending) > 0 {
		fields = append(fields, strings.Join(pending, "_"))
	}
	return fields
}

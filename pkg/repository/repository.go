package repository

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inkstone/contentcore/pkg/mongodb"
	"github.com/inkstone/contentcore/pkg/query"
)

// Document is the schema-flexible record shape of the primary store.
type Document = map[string]any

// Logger defines the interface for logging operations in the repository
// package. This interface allows the package to use any logging
// implementation that conforms to these methods.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Result is the paged outcome of Find and Aggregate: one page of documents
// plus the total match count across all pages.
type Result struct {
	Items []Document `json:"items"`
	Total int64      `json:"total"`
}

// UpdateStats reports how many documents an update matched and changed.
type UpdateStats struct {
	Matched  int64
	Modified int64
}

// Repository is a typed CRUD facade over one collection of the primary
// document store. Every store error it returns is a *StoreError; native
// driver errors never cross this boundary.
type Repository struct {
	coll   *mongo.Collection
	schema Definition
	logger Logger
}

// NewRepository validates the schema, binds the collection, and returns the
// repository. Schema problems are registration-time errors, so they fail the
// constructor rather than a later request.
func NewRepository(client *mongodb.Client, schema Definition, logger Logger) (*Repository, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Repository{
		coll:   client.Collection(schema.Collection),
		schema: schema,
		logger: logger,
	}, nil
}

// Schema returns the declared schema of this repository's collection.
func (r *Repository) Schema() Definition {
	return r.schema
}

// EnsureIndexes creates a unique index for every field declared Unique.
// Safe to call at every startup; index creation is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	unique := r.schema.UniqueKeys()
	if len(unique) == 0 {
		return nil
	}

	models := make([]mongo.IndexModel, 0, len(unique))
	for _, field := range unique {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("ensure indexes on %s: %w", r.schema.Collection, err)
	}

	r.logger.Debug("unique indexes ensured", nil, map[string]interface{}{
		"collection": r.schema.Collection,
		"fields":     unique,
	})
	return nil
}

// Save inserts a new document after validating it against the declared
// schema. Uniqueness violations come back as a conflict StoreError carrying
// the colliding fields and their constraints.
func (r *Repository) Save(ctx context.Context, doc Document) (Document, error) {
	if err := r.schema.ValidateDocument(doc); err != nil {
		return nil, err
	}
	if _, err := r.coll.InsertOne(ctx, bson.M(doc)); err != nil {
		return nil, r.wrapError(err)
	}
	return doc, nil
}

// FindOne returns the first document matching filter, or nil when nothing
// matches. Absence is not an error for lookups; updates are stricter.
func (r *Repository) FindOne(ctx context.Context, filter Document, projection Document) (Document, error) {
	opts := options.FindOne().SetProjection(toProjection(projection))

	var doc Document
	err := r.coll.FindOne(ctx, toFilter(filter), opts).Decode(&doc)
	if err != nil {
		if mongodb.TranslateError(err) == mongodb.ErrNotFound {
			return nil, nil
		}
		return nil, r.wrapError(err)
	}
	return doc, nil
}

// Find returns the matching documents plus the total match count. A nil page
// returns every match (sorted but unlimited); that is the documented contract
// for "no pagination".
func (r *Repository) Find(ctx context.Context, filter Document, page *query.Page, sortBy query.Sort, projection Document) (*Result, error) {
	opts := options.Find().SetProjection(toProjection(projection))
	if sortBy != nil {
		opts.SetSort(toSortDocument(sortBy))
	}
	if page != nil {
		opts.SetSkip(int64(page.Current) * int64(page.Size))
		opts.SetLimit(int64(page.Size))
	}

	cursor, err := r.coll.Find(ctx, toFilter(filter), opts)
	if err != nil {
		return nil, r.wrapError(err)
	}
	items := []Document{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, r.wrapError(err)
	}

	total, err := r.coll.CountDocuments(ctx, toFilter(filter))
	if err != nil {
		return nil, r.wrapError(err)
	}
	return &Result{Items: items, Total: total}, nil
}

// UpdateOne applies a partial update to the first matching document.
// Immutable fields are stripped here, centrally, before the $set is built.
func (r *Repository) UpdateOne(ctx context.Context, filter Document, update Document) (*UpdateStats, error) {
	res, err := r.coll.UpdateOne(ctx, toFilter(filter), bson.M{"$set": bson.M(r.schema.stripImmutable(update))})
	if err != nil {
		return nil, r.wrapError(err)
	}
	return &UpdateStats{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// UpdateMany applies a partial update to every matching document, with the
// same immutable-field stripping as UpdateOne.
func (r *Repository) UpdateMany(ctx context.Context, filter Document, update Document) (*UpdateStats, error) {
	res, err := r.coll.UpdateMany(ctx, toFilter(filter), bson.M{"$set": bson.M(r.schema.stripImmutable(update))})
	if err != nil {
		return nil, r.wrapError(err)
	}
	return &UpdateStats{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

// DeleteMany removes every matching document and returns how many went away.
func (r *Repository) DeleteMany(ctx context.Context, filter Document) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, toFilter(filter))
	if err != nil {
		return 0, r.wrapError(err)
	}
	return res.DeletedCount, nil
}

// wrapError translates a native driver error into the StoreError taxonomy,
// enriching conflicts with the colliding fields' declared constraints.
func (r *Repository) wrapError(err error) error {
	translated := mongodb.TranslateError(err)
	switch translated {
	case mongodb.ErrNotFound:
		return &StoreError{Kind: KindNotFound, Reason: "no matching document", Err: err}
	case mongodb.ErrDuplicateKey:
		fields := mongodb.DuplicateKeyFields(err)
		return &StoreError{
			Kind:        KindConflict,
			Fields:      fields,
			Constraints: r.schema.Constraints(fields),
			Reason:      "duplicate value for unique field",
			Err:         err,
		}
	case mongodb.ErrInvalidDocument:
		return &StoreError{Kind: KindValidation, Reason: "document rejected by store", Err: err}
	default:
		return &StoreError{Kind: KindInternal, Reason: translated.Error(), Err: err}
	}
}

func toFilter(filter Document) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}

// toProjection defaults to hiding the store-internal _id; documents carry
// their own external identifier.
func toProjection(projection Document) bson.M {
	if projection == nil {
		return bson.M{"_id": 0}
	}
	return bson.M(projection)
}

// toSortDocument renders a normalized sort as an ordered document. Map
// iteration order is unspecified, so keys are emitted alphabetically to keep
// queries deterministic.
func toSortDocument(sortBy query.Sort) bson.D {
	keys := make([]string, 0, len(sortBy))
	for key := range sortBy {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, key := range keys {
		doc = append(doc, bson.E{Key: key, Value: sortBy[key]})
	}
	return doc
}

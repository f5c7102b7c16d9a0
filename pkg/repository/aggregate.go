package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/inkstone/contentcore/pkg/query"
)

// Aggregate runs a single faceted query that returns one page of projected,
// sorted documents together with the total match count: one round trip, no
// separate count query.
//
// extraStages are spliced in between the $match and the $facet split, which
// is where join/reshape stages (e.g. $lookup resolving reference keys to
// display names) belong: they run once against the matched set and their
// output feeds both facets.
//
// A zero-match query yields {Items: [], Total: 0}; the missing count facet is
// normalized away so callers never see an absent total.
func (r *Repository) Aggregate(ctx context.Context, filter Document, projection Document, page *query.Page, sortBy query.Sort, extraStages []bson.D) (*Result, error) {
	pipeline := buildFacetPipeline(filter, projection, page, sortBy, extraStages)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, r.wrapError(err)
	}

	var rows []facetRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, r.wrapError(err)
	}
	if len(rows) == 0 {
		return &Result{Items: []Document{}, Total: 0}, nil
	}

	row := rows[0]
	if row.Items == nil {
		row.Items = []Document{}
	}
	return &Result{Items: row.Items, Total: normalizeTotal(row.Total)}, nil
}

type facetRow struct {
	Items []Document `bson:"items"`
	Total any        `bson:"total"`
}

// buildFacetPipeline assembles the aggregation pipeline:
//
//	$match -> extraStages... -> $facet{items, total} -> $project(total: $arrayElemAt)
//
// Kept separate from Aggregate so the exact query shape is unit-testable
// without a live store.
func buildFacetPipeline(filter Document, projection Document, page *query.Page, sortBy query.Sort, extraStages []bson.D) mongo.Pipeline {
	itemStages := []bson.D{}
	if projection != nil {
		itemStages = append(itemStages, bson.D{{Key: "$project", Value: bson.M(projection)}})
	}
	if sortBy != nil {
		itemStages = append(itemStages, bson.D{{Key: "$sort", Value: toSortDocument(sortBy)}})
	}
	if page != nil {
		itemStages = append(itemStages,
			bson.D{{Key: "$skip", Value: int64(page.Current) * int64(page.Size)}},
			bson.D{{Key: "$limit", Value: int64(page.Size)}},
		)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: toFilter(filter)}},
	}
	pipeline = append(pipeline, extraStages...)
	pipeline = append(pipeline,
		bson.D{{Key: "$facet", Value: bson.M{
			"items": itemStages,
			"total": []bson.D{{{Key: "$count", Value: "count"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"items": 1,
			"total": bson.M{"$arrayElemAt": bson.A{"$total.count", 0}},
		}}},
	)
	return pipeline
}

// normalizeTotal copes with the numeric types the facet count can decode to,
// and with its absence on zero matches.
func normalizeTotal(v any) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

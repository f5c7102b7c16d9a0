package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inkstone/contentcore/pkg/query"
)

func TestBuildFacetPipeline_FullShape(t *testing.T) {
	filter := Document{"status": true}
	projection := Document{"vector": 0}
	page := &query.Page{Current: 2, Size: 20}
	sortBy := query.Sort{"createdAt": -1}
	lookup := bson.D{{Key: "$lookup", Value: bson.M{
		"from":         "tags",
		"localField":   "genre",
		"foreignField": "key",
		"as":           "genreInfo",
	}}}

	pipeline := buildFacetPipeline(filter, projection, page, sortBy, []bson.D{lookup})

	require.Len(t, pipeline, 4)
	require.Equal(t, "$match", pipeline[0][0].Key)
	require.Equal(t, "$lookup", pipeline[1][0].Key)
	require.Equal(t, "$facet", pipeline[2][0].Key)
	require.Equal(t, "$project", pipeline[3][0].Key)

	facet, ok := pipeline[2][0].Value.(bson.M)
	require.True(t, ok)
	itemStages, ok := facet["items"].([]bson.D)
	require.True(t, ok)
	// project, sort, skip, limit, in that order.
	require.Len(t, itemStages, 4)
	require.Equal(t, "$project", itemStages[0][0].Key)
	require.Equal(t, "$sort", itemStages[1][0].Key)
	require.Equal(t, "$skip", itemStages[2][0].Key)
	require.Equal(t, int64(40), itemStages[2][0].Value)
	require.Equal(t, "$limit", itemStages[3][0].Key)
	require.Equal(t, int64(20), itemStages[3][0].Value)
}

func TestBuildFacetPipeline_NoPageNoSort(t *testing.T) {
	pipeline := buildFacetPipeline(nil, nil, nil, nil, nil)

	require.Len(t, pipeline, 3)
	require.Equal(t, "$match", pipeline[0][0].Key)
	require.Equal(t, bson.M{}, pipeline[0][0].Value)

	facet := pipeline[1][0].Value.(bson.M)
	require.Empty(t, facet["items"].([]bson.D))
}

func TestBuildFacetPipeline_TotalExtraction(t *testing.T) {
	pipeline := buildFacetPipeline(nil, nil, nil, nil, nil)
	project := pipeline[2][0].Value.(bson.M)
	require.Equal(t, bson.M{"$arrayElemAt": bson.A{"$total.count", 0}}, project["total"])
}

func TestNormalizeTotal(t *testing.T) {
	require.Equal(t, int64(7), normalizeTotal(int32(7)))
	require.Equal(t, int64(7), normalizeTotal(int64(7)))
	require.Equal(t, int64(7), normalizeTotal(7))
	require.Equal(t, int64(7), normalizeTotal(float64(7)))
	// Zero matches produce no count facet at all.
	require.Equal(t, int64(0), normalizeTotal(nil))
}

func TestToSortDocumentIsDeterministic(t *testing.T) {
	sortBy := query.Sort{"b": 1, "a": -1, "c": 1}
	require.Equal(t, bson.D{
		{Key: "a", Value: -1},
		{Key: "b", Value: 1},
		{Key: "c", Value: 1},
	}, toSortDocument(sortBy))
}

package qdrant

import (
	"context"
	"fmt"
	"log"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Point is one vector with its payload, keyed by the document uid.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// ScoredPoint is a similarity search hit.
type ScoredPoint struct {
	ID      string
	Score   float32
	Payload map[string]any
}

const scrollPageSize = 1000

// EnsureCollection verifies the configured collection exists and creates it
// (cosine distance, configured dimensions) plus its payload indexes if missing.
//
// It's safe to call this multiple times — if the collection already exists,
// the function exits early. This pattern simplifies startup logic for services
// that bootstrap their own Qdrant collections.
func (c *Client) EnsureCollection(ctx context.Context) error {
	name := c.cfg.Collection

	exists, err := c.api.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to check collection '%s': %w", name, err)
	}
	if exists {
		log.Printf("[Qdrant] Collection '%s' already exists", name)
		return nil
	}

	log.Printf("[Qdrant] Collection '%s' not found, creating it...", name)

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(c.cfg.Dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	}
	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	for _, idx := range c.cfg.PayloadIndexes {
		fieldType, err := fieldTypeFromSchema(idx.Schema)
		if err != nil {
			return fmt.Errorf("[Qdrant] payload index '%s': %w", idx.Field, err)
		}
		wait := true
		_, err = c.api.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: name,
			FieldName:      idx.Field,
			FieldType:      fieldType.Enum(),
			Wait:           &wait,
		})
		if err != nil {
			return fmt.Errorf("[Qdrant] failed to index payload field '%s': %w", idx.Field, err)
		}
	}

	log.Printf("[Qdrant] Created collection '%s' with %d payload indexes",
		name, len(c.cfg.PayloadIndexes))
	return nil
}

// Upsert writes points (insert or overwrite by id) and waits for persistence.
func (c *Client) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	converted := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		converted = append(converted, &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: c.cfg.Collection,
		Points:         converted,
		Wait:           &wait,
	}

	if _, err := c.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] upsert failed: %w", err)
	}

	log.Printf("[Qdrant] Upserted %d points (collection=%s)", len(points), c.cfg.Collection)
	return nil
}

// Delete removes points from the collection by their ids.
func (c *Client) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	wait := true
	req := &qdrant.DeletePoints{
		CollectionName: c.cfg.Collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: toPointIDs(ids)},
			},
		},
		Wait: &wait,
	}

	resp, err := c.api.Delete(ctx, req)
	if err != nil {
		return fmt.Errorf("[Qdrant] delete failed: %w", err)
	}

	log.Printf("[Qdrant] Delete completed (status=%s, collection=%s)",
		resp.Status.String(), c.cfg.Collection)
	return nil
}

// SetPayload merges the given payload fields into every listed point.
// Vectors and payload fields not named in the patch are left untouched.
func (c *Client) SetPayload(ctx context.Context, ids []string, payload map[string]any) error {
	if len(ids) == 0 || len(payload) == 0 {
		return nil
	}

	wait := true
	req := &qdrant.SetPayloadPoints{
		CollectionName: c.cfg.Collection,
		Payload:        qdrant.NewValueMap(payload),
		PointsSelector: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: toPointIDs(ids)},
			},
		},
		Wait: &wait,
	}

	if _, err := c.api.SetPayload(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] set payload failed: %w", err)
	}

	log.Printf("[Qdrant] Patched payload on %d points (collection=%s)", len(ids), c.cfg.Collection)
	return nil
}

// Query performs a similarity search against the collection.
//
// Conditions are combined with AND logic. Results come back ordered by
// descending similarity score, with payloads attached when withPayload is set.
func (c *Client) Query(ctx context.Context, vector []float32, conditions []*qdrant.Condition, topK int, withPayload bool) ([]ScoredPoint, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("[Qdrant] query vector cannot be empty")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("[Qdrant] topK must be greater than 0")
	}

	limit := uint64(topK)
	req := &qdrant.QueryPoints{
		CollectionName: c.cfg.Collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(withPayload),
	}
	if len(conditions) > 0 {
		req.Filter = &qdrant.Filter{Must: conditions}
	}

	resp, err := c.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] query failed: %w", err)
	}

	results := make([]ScoredPoint, 0, len(resp))
	for _, r := range resp {
		id, err := pointIDString(r.Id)
		if err != nil {
			return nil, err
		}
		results = append(results, ScoredPoint{
			ID:      id,
			Score:   r.Score,
			Payload: decodePayload(r.Payload),
		})
	}

	log.Printf("[Qdrant] Query returned %d results (collection=%s)", len(results), c.cfg.Collection)
	return results, nil
}

// ListPointIDs scrolls the whole collection and returns every point id.
// Vectors and payloads are not fetched, so the scan stays cheap even for
// large collections.
func (c *Client) ListPointIDs(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		offset *qdrant.PointId
	)

	limit := uint32(scrollPageSize)
	for {
		resp, err := c.api.GetPointsClient().Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: c.cfg.Collection,
			Limit:          &limit,
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(false),
			WithVectors:    qdrant.NewWithVectors(false),
		})
		if err != nil {
			return nil, fmt.Errorf("[Qdrant] scroll failed: %w", err)
		}

		for _, p := range resp.Result {
			id, err := pointIDString(p.Id)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}

		if resp.NextPageOffset == nil {
			break
		}
		offset = resp.NextPageOffset
	}

	return ids, nil
}

func fieldTypeFromSchema(schema string) (qdrant.FieldType, error) {
	switch schema {
	case "keyword":
		return qdrant.FieldType_FieldTypeKeyword, nil
	case "bool":
		return qdrant.FieldType_FieldTypeBool, nil
	case "integer":
		return qdrant.FieldType_FieldTypeInteger, nil
	case "float":
		return qdrant.FieldType_FieldTypeFloat, nil
	case "datetime":
		return qdrant.FieldType_FieldTypeDatetime, nil
	case "uuid":
		return qdrant.FieldType_FieldTypeUuid, nil
	default:
		return 0, fmt.Errorf("unsupported payload index schema '%s'", schema)
	}
}

package syncer

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/inkstone/contentcore/pkg/query"
	"github.com/inkstone/contentcore/pkg/repository"
)

// SearchRequest describes one similarity search.
type SearchRequest struct {
	// Text is embedded into the query vector when Vector is not given.
	Text string

	// Vector is the query embedding. Optional when Text is set.
	Vector []float32

	// Conditions filter candidates on the vector side before scoring.
	Conditions []query.VectorCondition

	// TopK caps the number of hits.
	TopK int

	// Hydrate fetches the full documents from the primary store. When false,
	// hits carry only the point payload.
	Hydrate bool

	// Projection narrows hydrated documents. It must keep the id field, which
	// hydration needs to match hits back to documents. Ignored unless Hydrate
	// is set.
	Projection repository.Document

	// ExtraStages are spliced into the hydration aggregate, e.g. lookups
	// resolving reference keys to display names.
	ExtraStages []bson.D
}

// SearchHit is one similarity result, ordered by descending score.
type SearchHit struct {
	ID       string
	Score    float32
	Payload  map[string]any
	Document repository.Document
}

// SimilaritySearch embeds the query when needed, runs the filtered vector
// query, and optionally hydrates the hits from the primary store.
//
// Hydration preserves the index's score order. Hits whose document has
// vanished from the primary store are dropped and logged; the index is
// best-effort and may briefly trail deletions.
func (s *Syncer) SimilaritySearch(ctx context.Context, req SearchRequest) (_ []SearchHit, err error) {
	ctx, span := s.startSpan(ctx, "sync.search")
	defer func() { s.endSpan(span, err) }()

	vector := req.Vector
	if len(vector) == 0 {
		if req.Text == "" {
			s.recorder.ObserveSyncOp("search", "failed")
			return nil, fmt.Errorf("similarity search requires either a query text or a query vector")
		}
		vector, err = s.embed(ctx, req.Text)
		if err != nil {
			s.recorder.ObserveSyncOp("search", "failed")
			return nil, &ProviderError{Op: "search", Err: err}
		}
	}

	topK := req.TopK
	if topK <= 0 {
		topK = 10
	}

	callCtx, cancel := s.opCtx(ctx)
	defer cancel()
	scored, err := s.index.Search(callCtx, vector, req.Conditions, topK, !req.Hydrate)
	if err != nil {
		s.recorder.ObserveSyncOp("search", "failed")
		return nil, err
	}

	hits := make([]SearchHit, 0, len(scored))
	for _, point := range scored {
		hits = append(hits, SearchHit{ID: point.ID, Score: point.Score, Payload: point.Payload})
	}

	if req.Hydrate && len(hits) > 0 {
		hits, err = s.hydrate(ctx, hits, req.Projection, req.ExtraStages)
		if err != nil {
			s.recorder.ObserveSyncOp("search", "failed")
			return nil, err
		}
	}

	s.recorder.ObserveSyncOp("search", "ok")
	return hits, nil
}

// hydrate attaches primary-store documents to the hits, keeping score order.
func (s *Syncer) hydrate(ctx context.Context, hits []SearchHit, projection repository.Document, extraStages []bson.D) ([]SearchHit, error) {
	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.ID
	}

	result, err := s.repo.Aggregate(ctx,
		repository.Document{s.cfg.IDField: map[string]any{"$in": ids}},
		projection, nil, nil, extraStages)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]repository.Document, len(result.Items))
	for _, doc := range result.Items {
		if uid, ok := s.uidOf(doc); ok {
			byID[uid] = doc
		}
	}

	hydrated := make([]SearchHit, 0, len(hits))
	for _, hit := range hits {
		doc, ok := byID[hit.ID]
		if !ok {
			s.logger.Debug("search hit has no primary document, dropping", nil, map[string]interface{}{
				"uid": hit.ID,
			})
			continue
		}
		hit.Document = doc
		hydrated = append(hydrated, hit)
	}
	return hydrated, nil
}

package syncer

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/inkstone/contentcore/pkg/qdrant"
	"github.com/inkstone/contentcore/pkg/repository"
)

// Save dispatches on the presence of the external identifier: documents
// without one are created, documents with one are updated.
func (s *Syncer) Save(ctx context.Context, doc repository.Document) (repository.Document, error) {
	if _, ok := s.uidOf(doc); ok {
		return s.Update(ctx, doc)
	}
	return s.Create(ctx, doc)
}

// Create inserts the document into the primary store, embeds its semantic
// text, and upserts the vector point.
//
// The primary insert happens first; if the embedding or index write then
// fails, the insert is compensated with a retried delete so no unsearchable
// orphan remains. When even the compensation keeps failing, a
// CompensationError reports the possible orphan.
func (s *Syncer) Create(ctx context.Context, doc repository.Document) (_ repository.Document, err error) {
	ctx, span := s.startSpan(ctx, "sync.create")
	defer func() { s.endSpan(span, err) }()

	doc = mergeDocuments(doc, nil)
	uid, ok := s.uidOf(doc)
	if !ok {
		uid = uuid.NewString()
		doc[s.cfg.IDField] = uid
	}

	saved, err := s.repo.Save(ctx, doc)
	if err != nil {
		s.recorder.ObserveSyncOp("create", "failed")
		return nil, err
	}

	if err := s.indexDocument(ctx, uid, saved); err != nil {
		return nil, s.compensateCreate(ctx, uid, err)
	}

	s.recorder.ObserveSyncOp("create", "ok")
	s.logger.Debug("document created and indexed", nil, map[string]interface{}{
		"uid": uid,
	})
	return saved, nil
}

// Update applies a partial update keyed by the external identifier.
//
// The document must already exist; updates never create. Re-embedding runs
// only when the patch carries new semantic content, otherwise the index gets
// a cheap payload patch. An index failure keeps the primary write and
// surfaces as PartialSyncError, since retrying the same update converges.
//
// Two concurrent updates to the same document can interleave between the
// read and the write; the last primary write wins and the index follows it.
func (s *Syncer) Update(ctx context.Context, patch repository.Document) (_ repository.Document, err error) {
	ctx, span := s.startSpan(ctx, "sync.update")
	defer func() { s.endSpan(span, err) }()

	uid, ok := s.uidOf(patch)
	if !ok {
		s.recorder.ObserveSyncOp("update", "failed")
		return nil, &repository.StoreError{
			Kind:   repository.KindValidation,
			Fields: []string{s.cfg.IDField},
			Reason: fmt.Sprintf("update requires a non-empty %q", s.cfg.IDField),
		}
	}
	filter := repository.Document{s.cfg.IDField: uid}

	existing, err := s.repo.FindOne(ctx, filter, nil)
	if err != nil {
		s.recorder.ObserveSyncOp("update", "failed")
		return nil, err
	}
	if existing == nil {
		s.recorder.ObserveSyncOp("update", "failed")
		return nil, &repository.StoreError{
			Kind:   repository.KindNotFound,
			Fields: []string{s.cfg.IDField},
			Reason: fmt.Sprintf("no document with %s %q", s.cfg.IDField, uid),
		}
	}

	merged := mergeDocuments(existing, patch)

	if _, err := s.repo.UpdateOne(ctx, filter, patch); err != nil {
		s.recorder.ObserveSyncOp("update", "failed")
		return nil, err
	}

	if s.semanticChange(patch) {
		err = s.indexDocument(ctx, uid, merged)
	} else {
		err = s.patchIndexPayload(ctx, []string{uid}, patch)
	}
	if err != nil {
		s.recorder.ObserveSyncOp("update", "partial")
		s.logger.Warn("primary store updated but vector index was not", err, map[string]interface{}{
			"uid": uid,
		})
		return merged, &PartialSyncError{Op: "update", UID: uid, Err: err}
	}

	s.recorder.ObserveSyncOp("update", "ok")
	return merged, nil
}

// DeleteByIDs removes the listed documents from the primary store and their
// points from the vector index. Primary deletion is authoritative; an index
// failure is reported as PartialSyncError but the documents stay gone.
func (s *Syncer) DeleteByIDs(ctx context.Context, ids []string) (_ int64, err error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, span := s.startSpan(ctx, "sync.delete")
	defer func() { s.endSpan(span, err) }()

	deleted, err := s.repo.DeleteMany(ctx, repository.Document{s.cfg.IDField: map[string]any{"$in": ids}})
	if err != nil {
		s.recorder.ObserveSyncOp("delete", "failed")
		return 0, err
	}

	callCtx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := s.index.Delete(callCtx, ids); err != nil {
		s.recorder.ObserveSyncOp("delete", "partial")
		s.logger.Warn("documents deleted but vector points remain", err, map[string]interface{}{
			"ids": ids,
		})
		return deleted, &PartialSyncError{Op: "delete", UID: fmt.Sprint(ids), Err: err}
	}

	s.recorder.ObserveSyncOp("delete", "ok")
	return deleted, nil
}

// PatchByIDs applies one non-semantic patch to many documents at once, then
// mirrors the payload fields onto the matching points.
//
// Semantic fields are rejected outright: a bulk patch cannot re-embed each
// document individually, and silently skipping the embedding would desync
// search results from stored content.
func (s *Syncer) PatchByIDs(ctx context.Context, ids []string, patch repository.Document) (_ *repository.UpdateStats, err error) {
	if len(ids) == 0 {
		return &repository.UpdateStats{}, nil
	}
	ctx, span := s.startSpan(ctx, "sync.patch")
	defer func() { s.endSpan(span, err) }()
	if named := s.semanticFieldsIn(patch); len(named) > 0 {
		s.recorder.ObserveSyncOp("patch", "failed")
		return nil, &repository.StoreError{
			Kind:   repository.KindValidation,
			Fields: named,
			Reason: "semantic fields cannot be bulk-patched, update documents individually",
		}
	}

	stats, err := s.repo.UpdateMany(ctx, repository.Document{s.cfg.IDField: map[string]any{"$in": ids}}, patch)
	if err != nil {
		s.recorder.ObserveSyncOp("patch", "failed")
		return nil, err
	}

	if err := s.patchIndexPayload(ctx, ids, patch); err != nil {
		s.recorder.ObserveSyncOp("patch", "partial")
		s.logger.Warn("documents patched but vector payloads were not", err, map[string]interface{}{
			"ids": ids,
		})
		return stats, &PartialSyncError{Op: "patch", UID: fmt.Sprint(ids), Err: err}
	}

	s.recorder.ObserveSyncOp("patch", "ok")
	return stats, nil
}

// indexDocument embeds the document's semantic text and upserts its point
// with the mirrored payload.
func (s *Syncer) indexDocument(ctx context.Context, uid string, doc repository.Document) error {
	vector, err := s.embed(ctx, s.semanticText(doc))
	if err != nil {
		return fmt.Errorf("embed document %q: %w", uid, err)
	}

	callCtx, cancel := s.opCtx(ctx)
	defer cancel()
	if err := s.index.Upsert(callCtx, []qdrant.Point{{
		ID:      uid,
		Vector:  vector,
		Payload: s.payloadSubset(doc),
	}}); err != nil {
		return fmt.Errorf("upsert point %q: %w", uid, err)
	}
	return nil
}

// patchIndexPayload mirrors the payload fields present in the patch onto the
// listed points. A patch touching no payload fields is a no-op on the index.
func (s *Syncer) patchIndexPayload(ctx context.Context, ids []string, patch repository.Document) error {
	payload := s.payloadSubset(patch)
	if len(payload) == 0 {
		return nil
	}

	callCtx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.index.SetPayload(callCtx, ids, payload)
}

// compensateCreate rolls a fresh insert back after a failed index write.
// The delete is retried with exponential backoff; if it keeps failing the
// caller learns that an orphan may remain.
func (s *Syncer) compensateCreate(ctx context.Context, uid string, cause error) error {
	policy := backoff.NewExponentialBackOff()
	if s.cfg.CompensationBackoff > 0 {
		policy.InitialInterval = s.cfg.CompensationBackoff
	}

	err := backoff.Retry(func() error {
		_, deleteErr := s.repo.DeleteMany(ctx, repository.Document{s.cfg.IDField: uid})
		return deleteErr
	}, backoff.WithContext(backoff.WithMaxRetries(policy, s.cfg.CompensationRetries), ctx))

	if err != nil {
		s.recorder.ObserveSyncOp("create", "failed")
		s.recorder.ObserveCompensation("failed")
		s.logger.Error("compensating delete exhausted retries, orphan may remain", err, map[string]interface{}{
			"uid":   uid,
			"cause": cause.Error(),
		})
		return &CompensationError{UID: uid, Cause: cause, Err: err}
	}

	s.recorder.ObserveSyncOp("create", "failed")
	s.recorder.ObserveCompensation("ok")
	s.logger.Warn("create rolled back after index failure", cause, map[string]interface{}{
		"uid": uid,
	})
	return &ProviderError{Op: "create", UID: uid, Err: cause}
}

package syncer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/inkstone/contentcore/pkg/repository"
)

// ReconcileReport summarizes one consistency sweep between the two stores.
type ReconcileReport struct {
	// PrimaryCount is how many documents the primary store held.
	PrimaryCount int

	// IndexCount is how many points the vector index held.
	IndexCount int

	// OrphansRemoved are point ids that had no primary document and were
	// deleted from the index.
	OrphansRemoved []string

	// MissingFromIndex are document ids with no point. They are reported,
	// not repaired: re-indexing needs the full document and an embedding
	// call, which the sweep deliberately avoids.
	MissingFromIndex []string
}

// Reconcile compares the primary store's ids against the index's point ids,
// removes orphaned points, and reports documents the index is missing.
//
// Both listings run concurrently. The sweep is safe to run while writes are
// in flight; at worst it deletes a point that a concurrent create is about
// to write, which the create's own upsert then restores on retry.
func (s *Syncer) Reconcile(ctx context.Context) (_ *ReconcileReport, err error) {
	ctx, span := s.startSpan(ctx, "sync.reconcile")
	defer func() { s.endSpan(span, err) }()

	var (
		primaryIDs []string
		pointIDs   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.repo.Find(gctx, nil, nil, nil,
			repository.Document{s.cfg.IDField: 1, "_id": 0})
		if err != nil {
			return err
		}
		for _, doc := range result.Items {
			if uid, ok := s.uidOf(doc); ok {
				primaryIDs = append(primaryIDs, uid)
			}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pointIDs, err = s.index.ListPointIDs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.recorder.ObserveSyncOp("reconcile", "failed")
		return nil, err
	}

	primary := make(map[string]struct{}, len(primaryIDs))
	for _, id := range primaryIDs {
		primary[id] = struct{}{}
	}
	indexed := make(map[string]struct{}, len(pointIDs))
	for _, id := range pointIDs {
		indexed[id] = struct{}{}
	}

	report := &ReconcileReport{
		PrimaryCount: len(primaryIDs),
		IndexCount:   len(pointIDs),
	}
	for _, id := range pointIDs {
		if _, ok := primary[id]; !ok {
			report.OrphansRemoved = append(report.OrphansRemoved, id)
		}
	}
	for _, id := range primaryIDs {
		if _, ok := indexed[id]; !ok {
			report.MissingFromIndex = append(report.MissingFromIndex, id)
		}
	}

	if len(report.OrphansRemoved) > 0 {
		callCtx, cancel := s.opCtx(ctx)
		defer cancel()
		if err := s.index.Delete(callCtx, report.OrphansRemoved); err != nil {
			s.recorder.ObserveSyncOp("reconcile", "partial")
			return report, &PartialSyncError{Op: "reconcile", Err: err}
		}
	}
	if len(report.MissingFromIndex) > 0 {
		s.logger.Warn("documents missing from vector index", nil, map[string]interface{}{
			"count": len(report.MissingFromIndex),
			"ids":   report.MissingFromIndex,
		})
	}

	s.recorder.ObserveSyncOp("reconcile", "ok")
	s.logger.Info("reconcile sweep finished", nil, map[string]interface{}{
		"primary": report.PrimaryCount,
		"indexed": report.IndexCount,
		"orphans": len(report.OrphansRemoved),
		"missing": len(report.MissingFromIndex),
	})
	return report, nil
}

// Package syncer keeps a primary-store collection and its vector-index
// mirror consistent, using a best-effort saga rather than transactions.
//
// The primary store is the source of truth. Creates are compensated: a
// failed index write triggers a retried delete of the fresh insert, so a
// document is either fully searchable or absent. Updates and deletes are
// not compensated; a failed index write surfaces as PartialSyncError and an
// idempotent retry of the same operation converges the index. Reconcile
// sweeps up whatever drift remains.
//
// Embedding calls are the expensive part, so updates re-embed only when the
// patch actually carries new semantic content; everything else travels as a
// payload patch on the existing point.
package syncer

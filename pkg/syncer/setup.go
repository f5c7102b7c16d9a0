package syncer

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/inkstone/contentcore/pkg/qdrant"
	"github.com/inkstone/contentcore/pkg/query"
	"github.com/inkstone/contentcore/pkg/repository"
)

//
// ──────────────────────────────────────────────────────────────
//   SYNCHRONIZATION SERVICE
// ──────────────────────────────────────────────────────────────
//
// The syncer keeps one primary-store collection and its vector-index mirror
// consistent. The primary store is the source of truth; the index is a
// best-effort replica used for similarity search and vector-side filtering.
//
// Responsibilities:
//   • Create with compensation: a failed index write rolls the primary
//     insert back so no orphan remains.
//   • Update without compensation: the primary write is kept and an
//     idempotent retry converges the index.
//   • Selective re-embedding: only changes to semantic fields pay for an
//     embedding call; everything else is a payload patch.
//   • Similarity search with primary-store hydration.
//   • Reconciliation between the two stores.
//

// Repository is the slice of the primary-store repository the syncer uses.
type Repository interface {
	Save(ctx context.Context, doc repository.Document) (repository.Document, error)
	FindOne(ctx context.Context, filter repository.Document, projection repository.Document) (repository.Document, error)
	Find(ctx context.Context, filter repository.Document, page *query.Page, sortBy query.Sort, projection repository.Document) (*repository.Result, error)
	UpdateOne(ctx context.Context, filter repository.Document, update repository.Document) (*repository.UpdateStats, error)
	UpdateMany(ctx context.Context, filter repository.Document, update repository.Document) (*repository.UpdateStats, error)
	DeleteMany(ctx context.Context, filter repository.Document) (int64, error)
	Aggregate(ctx context.Context, filter repository.Document, projection repository.Document, page *query.Page, sortBy query.Sort, extraStages []bson.D) (*repository.Result, error)
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex is the slice of the vector index client the syncer uses.
type VectorIndex interface {
	Upsert(ctx context.Context, points []qdrant.Point) error
	Delete(ctx context.Context, ids []string) error
	SetPayload(ctx context.Context, ids []string, payload map[string]any) error
	Search(ctx context.Context, vector []float32, conditions []query.VectorCondition, topK int, withPayload bool) ([]qdrant.ScoredPoint, error)
	ListPointIDs(ctx context.Context) ([]string, error)
}

// Logger defines the interface for logging operations in the syncer package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Recorder receives operation outcomes for monitoring.
type Recorder interface {
	ObserveSyncOp(op, status string)
	ObserveCompensation(status string)
	ObserveEmbeddingCall(status string, seconds float64)
}

// Tracer opens spans around synchronization operations. Optional; a nil
// tracer degrades to noop spans.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span)
	RecordErrorOnSpan(span traceSpan.Span, err error)
}

// Syncer coordinates a repository, an embedding provider, and a vector index
// for one collection.
type Syncer struct {
	repo     Repository
	embedder Embedder
	index    VectorIndex
	cfg      Config
	logger   Logger
	recorder Recorder
	tracer   Tracer
}

// NewSyncer validates the config and returns the service. tracer may be nil.
func NewSyncer(repo Repository, embedder Embedder, index VectorIndex, cfg Config, logger Logger, recorder Recorder, tracer Tracer) (*Syncer, error) {
	if cfg.IDField == "" {
		cfg.IDField = "uid"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Syncer{
		repo:     repo,
		embedder: embedder,
		index:    index,
		cfg:      cfg,
		logger:   logger,
		recorder: recorder,
		tracer:   tracer,
	}, nil
}

// opCtx bounds a collaborator call with the configured timeout.
func (s *Syncer) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

// startSpan opens a span when a tracer is configured. Without one, the span
// already on the context (possibly noop) is reused so callers can defer
// endSpan unconditionally.
func (s *Syncer) startSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	if s.tracer == nil {
		return ctx, traceSpan.SpanFromContext(ctx)
	}
	return s.tracer.StartSpan(ctx, name)
}

func (s *Syncer) endSpan(span traceSpan.Span, err error) {
	if err != nil && s.tracer != nil {
		s.tracer.RecordErrorOnSpan(span, err)
	}
	if s.tracer != nil {
		span.End()
	}
}

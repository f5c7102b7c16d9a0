package syncer

import (
	"go.uber.org/fx"

	"github.com/inkstone/contentcore/pkg/embedding"
	"github.com/inkstone/contentcore/pkg/logger"
	"github.com/inkstone/contentcore/pkg/metrics"
	"github.com/inkstone/contentcore/pkg/qdrant"
	"github.com/inkstone/contentcore/pkg/repository"
	"github.com/inkstone/contentcore/pkg/tracer"
)

// SyncerParams defines the dependencies for the synchronization service.
type SyncerParams struct {
	fx.In

	Config     Config
	Repository *repository.Repository
	Embedding  *embedding.Client
	Index      *qdrant.Client
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
	Tracer     *tracer.Tracer `optional:"true"`
}

// FXModule defines the Fx module for the syncer package.
var FXModule = fx.Module("syncer",
	fx.Provide(
		NewSyncerFromParams,
	),
)

// NewSyncerFromParams adapts the container's concrete clients to the
// service's collaborator interfaces.
func NewSyncerFromParams(p SyncerParams) (*Syncer, error) {
	// A typed nil must not become a non-nil interface value.
	var tr Tracer
	if p.Tracer != nil {
		tr = p.Tracer
	}
	return NewSyncer(p.Repository, p.Embedding, p.Index, p.Config, p.Logger, p.Metrics, tr)
}

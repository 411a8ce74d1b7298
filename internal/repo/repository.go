package repo

import (
	"context"

	"github.com/hamed0406/archivemon/internal/domain"
)

// ObservationStore is the port every storage adapter implements. Record
// appends unconditionally; observations are never mutated or removed.
// HistoryFor returns an empty history for names it has never seen — the
// store is agnostic to the registry.
type ObservationStore interface {
	Record(ctx context.Context, obs domain.Observation) error
	HistoryFor(ctx context.Context, endpointName string) (domain.History, error)
}

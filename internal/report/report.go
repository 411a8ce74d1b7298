package report

import (
	"context"
	"fmt"
	"time"

	"github.com/hamed0406/archivemon/internal/domain"
	"github.com/hamed0406/archivemon/internal/registry"
	"github.com/hamed0406/archivemon/internal/repo"
	"github.com/hamed0406/archivemon/internal/stats"
)

// Generate assembles a status report from already-recorded state. It never
// probes: requesting a report with zero prior checks yields unknown/no-data
// entries, not an error. Entries follow registry order.
func Generate(ctx context.Context, reg *registry.Registry, store repo.ObservationStore) (domain.Report, error) {
	rep := domain.Report{GeneratedAt: time.Now().UTC()}
	for _, ep := range reg.Endpoints() {
		h, err := store.HistoryFor(ctx, ep.Name)
		if err != nil {
			return domain.Report{}, fmt.Errorf("history for %q: %w", ep.Name, err)
		}
		snap := stats.Summarize(h)
		switch snap.LastStatus {
		case domain.StatusUp:
			rep.UpCount++
		case domain.StatusDown:
			rep.DownCount++
		default:
			rep.UnknownCount++
		}
		rep.Entries = append(rep.Entries, domain.ReportEntry{Endpoint: ep, Stats: snap})
	}
	return rep, nil
}

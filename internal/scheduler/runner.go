package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/archivemon/internal/probe"
	"github.com/hamed0406/archivemon/internal/registry"
	"github.com/hamed0406/archivemon/internal/repo"
)

// CycleSummary is what a check cycle reports back: how many endpoints were
// probed and how many of those probes succeeded.
type CycleSummary struct {
	Checked   int `json:"checked"`
	Succeeded int `json:"succeeded"`
}

// Runner executes check cycles: one probe per registered endpoint, every
// observation recorded, no retries within a cycle.
type Runner struct {
	Logger      *zap.Logger
	Registry    *registry.Registry
	Store       repo.ObservationStore
	Prober      probe.Prober
	Timeout     time.Duration
	Concurrency int
}

func NewRunner(
	logger *zap.Logger,
	reg *registry.Registry,
	store repo.ObservationStore,
	prober probe.Prober,
	timeout time.Duration,
	concurrency int,
) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		Logger:      logger,
		Registry:    reg,
		Store:       store,
		Prober:      prober,
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// RunCycle probes every endpoint exactly once. Probes run concurrently up
// to Concurrency; each gets its own timeout context, and a slow or dead
// endpoint never aborts the rest of the cycle.
func (r *Runner) RunCycle(ctx context.Context) CycleSummary {
	endpoints := r.Registry.Endpoints()

	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	sum := CycleSummary{}

	for _, ep := range endpoints {
		ep := ep
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()

			obs := r.Prober.Probe(cctx, ep)

			if err := r.Store.Record(ctx, obs); err != nil {
				r.Logger.Warn("record_error",
					zap.String("endpoint", ep.Name),
					zap.String("url", ep.URL),
					zap.Error(err),
				)
			} else {
				r.Logger.Debug("endpoint_checked",
					zap.String("endpoint", ep.Name),
					zap.String("url", ep.URL),
					zap.Bool("success", obs.Success),
					zap.String("error_kind", string(obs.ErrorKind)),
				)
			}

			mu.Lock()
			sum.Checked++
			if obs.Success {
				sum.Succeeded++
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	r.Logger.Info("cycle_done",
		zap.Int("checked", sum.Checked),
		zap.Int("succeeded", sum.Succeeded),
	)
	return sum
}

// Loop runs an immediate cycle, then one per interval tick until the
// context is cancelled. An interval of 0 disables the loop; cycle
// scheduling is otherwise an operator concern.
func (r *Runner) Loop(ctx context.Context, interval time.Duration) {
	if interval == 0 {
		r.Logger.Info("check_loop_disabled")
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	r.RunCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("check_loop_stopped")
			return
		case <-t.C:
			r.RunCycle(ctx)
		}
	}
}

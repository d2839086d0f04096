package clock

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultTickInterval is how often the runner persists the snapshot while a
// half is running.
const DefaultTickInterval = time.Second

// Runner drives the periodic tick for one store. It persists the snapshot
// on every tick while a half is running and stays quiet otherwise. The
// goroutine is tied to the context passed to Start and must be stopped when
// the match session unmounts; Stop blocks until it has exited, so no timer
// outlives its session.
type Runner struct {
	store    *Store
	clock    clockwork.Clock
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRunner builds a runner for the store. A zero interval uses
// DefaultTickInterval; a nil clock uses the store's clock.
func NewRunner(store *Store, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		store:    store,
		clock:    store.clock,
		interval: interval,
	}
}

// Start launches the tick loop. Calling Start twice without Stop is a bug
// and panics via the closed channel; sessions own exactly one runner.
func (r *Runner) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := r.clock.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				if !r.store.Running() {
					continue
				}
				if err := r.store.Persist(ctx); err != nil {
					log.Ctx(ctx).Warn().
						Err(err).
						Str("match_id", r.store.matchID).
						Msg("Clock tick persist failed")
				}
			}
		}
	}()
}

// Stop cancels the tick loop and waits for it to exit.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
	r.cancel = nil
}

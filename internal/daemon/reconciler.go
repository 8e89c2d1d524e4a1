package daemon

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reconciler periodically asks for a full window tree rebuild so that state
// missed through dropped or reordered events cannot persist.
type Reconciler struct {
	interval time.Duration
	request  func() bool
	log      zerolog.Logger
}

// NewReconciler returns a reconciler calling request every interval. A
// non-positive interval yields a reconciler whose Run only waits for ctx.
func NewReconciler(interval time.Duration, request func() bool, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		interval: interval,
		request:  request,
		log:      log,
	}
}

// Run blocks until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info().Dur("interval", r.interval).Msg("reconciler started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

func (r *Reconciler) reconcile() {
	// Keep the daemon alive if the request hook misbehaves.
	defer func() {
		if err := recover(); err != nil {
			r.log.Error().Interface("panic", err).Msg("reconciler panic recovered")
		}
	}()

	if !r.request() {
		r.log.Warn().Msg("reconciler: rebuild request not delivered")
		return
	}
	r.log.Debug().Msg("reconciler: rebuild requested")
}

// Package daemon owns the tracking goroutine and publishes its results for
// the rest of the process.
package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/1broseidon/seamless/internal/platform"
	"github.com/1broseidon/seamless/internal/seamless"
)

// Tracker is the part of *seamless.Tracker the runner drives.
type Tracker interface {
	Init(observer seamless.Observer) error
	Start() error
	Stop()
	Close()
	NextEvent() error
	Interrupt() bool
	RebuildWindowTree()
	Rects() []platform.Extent
	Windows() []seamless.WindowInfo
}

// Config holds runner settings.
type Config struct {
	// ReconcileInterval schedules periodic full rebuilds; 0 disables them.
	ReconcileInterval time.Duration
	Logger            zerolog.Logger
}

// Runner runs a Tracker's event loop and accepts rebuild requests from
// other goroutines.
type Runner struct {
	tracker  Tracker
	store    *Store
	log      zerolog.Logger
	interval time.Duration

	rebuild chan struct{}
	running sync.Mutex
}

// NewRunner wraps tracker. The tracker must not have been initialised.
func NewRunner(cfg Config, tracker Tracker) *Runner {
	id := uuid.NewString()
	return &Runner{
		tracker:  tracker,
		store:    NewStore(id),
		log:      cfg.Logger.With().Str("instance", id).Logger(),
		interval: cfg.ReconcileInterval,
		rebuild:  make(chan struct{}, 1),
	}
}

// Snapshot returns the latest published state.
func (r *Runner) Snapshot() Snapshot {
	return r.store.Current()
}

// RequestRebuild queues a full window tree rebuild and wakes the tracking
// goroutine. Requests made while one is pending are merged. It reports
// whether the tracking goroutine was woken.
func (r *Runner) RequestRebuild() bool {
	select {
	case r.rebuild <- struct{}{}:
	default:
	}
	return r.tracker.Interrupt()
}

// Run initialises and starts the tracker and processes events on the calling
// goroutine until ctx is cancelled or the connection is lost. The tracker is
// stopped and closed before Run returns.
func (r *Runner) Run(ctx context.Context) error {
	if !r.running.TryLock() {
		return errors.New("runner already running")
	}
	defer r.running.Unlock()

	if err := r.tracker.Init(seamless.ObserverFunc(r.publish)); err != nil {
		return errors.Wrap(err, "initialise tracker")
	}
	defer r.tracker.Close()

	if err := r.tracker.Start(); err != nil {
		return errors.Wrap(err, "start tracker")
	}
	r.store.SetEnabled(true)
	r.log.Info().Msg("tracking started")

	var wg sync.WaitGroup
	loopDone := make(chan struct{})
	wg.Add(2)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			r.tracker.Interrupt()
		case <-loopDone:
		}
	}()
	reconcileCtx, cancelReconcile := context.WithCancel(ctx)
	go func() {
		defer wg.Done()
		NewReconciler(r.interval, r.RequestRebuild, r.log).Run(reconcileCtx)
	}()

	err := r.loop(ctx)

	close(loopDone)
	cancelReconcile()
	wg.Wait()

	r.tracker.Stop()
	r.store.SetEnabled(false)
	r.log.Info().Msg("tracking stopped")
	return err
}

func (r *Runner) loop(ctx context.Context) error {
	for ctx.Err() == nil {
		select {
		case <-r.rebuild:
			r.log.Debug().Msg("rebuilding window tree")
			r.tracker.RebuildWindowTree()
		default:
		}

		if err := r.tracker.NextEvent(); err != nil {
			if errors.Is(err, platform.ErrConnectionClosed) {
				r.log.Error().Err(err).Msg("lost connection to the display")
			}
			return errors.Wrap(err, "wait for window event")
		}
	}
	return nil
}

// publish runs on the tracking goroutine after every successful refresh.
func (r *Runner) publish() {
	r.store.Publish(r.tracker.Rects(), r.tracker.Windows())
	r.log.Debug().Int("rects", len(r.tracker.Rects())).Msg("visible rectangles published")
}

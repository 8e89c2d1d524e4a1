// Package seamless tracks the visible regions of top-level windows and
// publishes them as a flat list of absolute screen rectangles.
//
// A Tracker is driven by one goroutine that calls NextEvent in a loop. All
// registry work happens on that goroutine; only Interrupt and Enabled may
// be called from elsewhere.
package seamless

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/1broseidon/seamless/internal/logger"
	"github.com/1broseidon/seamless/internal/platform"
)

var (
	ErrAlreadyInitialized = errors.New("seamless tracker already initialized")
	ErrConnection         = errors.New("failed to connect to the windowing system")
	ErrNotInitialized     = errors.New("seamless tracker not initialized")
	ErrTooManyRects       = errors.New("visible rectangle list too large")
)

// Observer is told after every refresh of the published rectangles. Notify
// runs on the tracking goroutine and should read Rects, not block.
type Observer interface {
	Notify()
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func()

func (f ObserverFunc) Notify() { f() }

// OpenFunc establishes the windowing-system connection.
type OpenFunc func() (platform.WindowSystem, error)

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithMaxRects caps the published list; 0 means no limit.
func WithMaxRects(n int) Option {
	return func(t *Tracker) { t.maxRects = n }
}

// Tracker keeps a registry of visible top-level windows consistent with the
// windowing system and publishes their visible rectangles.
type Tracker struct {
	open     OpenFunc
	log      zerolog.Logger
	maxRects int

	connMu      sync.Mutex
	ws          platform.WindowSystem
	observer    Observer
	initialized bool

	enabled       atomic.Bool
	changed       bool
	supportsShape bool

	windows *Registry
	rects   []platform.Extent
}

// New returns an uninitialized tracker that will connect with open.
func New(open OpenFunc, opts ...Option) *Tracker {
	t := &Tracker{
		open:    open,
		log:     logger.WithComponent("tracker"),
		windows: NewRegistry(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init connects to the windowing system. It fails with ErrAlreadyInitialized
// on a second call and with an error wrapping ErrConnection if the
// connection cannot be opened.
func (t *Tracker) Init(observer Observer) error {
	t.connMu.Lock()
	defer t.connMu.Unlock()

	if t.initialized {
		t.log.Error().Msg("attempt to initialise the tracker twice")
		return ErrAlreadyInitialized
	}
	ws, err := t.open()
	if err != nil {
		t.log.Error().Err(err).Msg("failed to acquire a connection to the display")
		// Both the sentinel and the cause must match errors.Is, which
		// pkg/errors cannot express.
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if observer == nil {
		observer = ObserverFunc(func() {})
	}
	t.ws = ws
	t.observer = observer
	t.initialized = true
	return nil
}

// Start enables tracking: it subscribes to hierarchy changes on the root and
// enumerates the current top-level windows.
func (t *Tracker) Start() error {
	if !t.initialized || t.ws == nil {
		return ErrNotInitialized
	}
	t.supportsShape = t.ws.QueryShapeExtension()
	if err := t.ws.SelectSubstructureEvents(true); err != nil {
		return errors.Wrap(err, "failed to monitor the client list")
	}
	t.enabled.Store(true)
	t.RebuildWindowTree()
	t.log.Info().
		Bool("shape", t.supportsShape).
		Int("windows", t.windows.Len()).
		Msg("seamless tracking started")
	return nil
}

// Stop disables tracking, unsubscribes from hierarchy changes and forgets
// every tracked window. The last published rectangles stay readable.
func (t *Tracker) Stop() {
	if !t.initialized || t.ws == nil {
		return
	}
	t.enabled.Store(false)
	if err := t.ws.SelectSubstructureEvents(false); err != nil {
		t.log.Warn().Err(err).Msg("failed to stop monitoring the client list")
	}
	t.freeWindowTree()
	t.log.Info().Msg("seamless tracking stopped")
}

// Close releases the windowing-system connection. Call it after the
// tracking goroutine has returned. It waits for an Interrupt in progress;
// later Start, Stop and NextEvent calls fail or do nothing.
func (t *Tracker) Close() {
	t.connMu.Lock()
	defer t.connMu.Unlock()
	if t.ws != nil {
		t.ws.Close()
		t.ws = nil
	}
}

// Enabled reports whether tracking is active. Safe from any goroutine.
func (t *Tracker) Enabled() bool {
	return t.enabled.Load()
}

// NextEvent publishes fresh rectangles and notifies the observer if anything
// changed since the previous call, then blocks for one windowing-system event
// and applies it. It returns an error only if the connection is unusable.
func (t *Tracker) NextEvent() error {
	if t.ws == nil {
		return ErrNotInitialized
	}

	if t.changed {
		if err := t.updateRects(); err != nil {
			t.log.Warn().Err(err).Msg("failed to refresh visible rectangles")
		} else {
			t.observer.Notify()
		}
	}
	t.changed = false

	ev, err := t.ws.WaitForEvent()
	if err != nil {
		return err
	}
	t.dispatch(ev)
	return nil
}

func (t *Tracker) dispatch(ev platform.Event) {
	t.log.Debug().Stringer("event", ev.Kind).Uint32("window", uint32(ev.Window)).Msg("event")
	switch ev.Kind {
	case platform.EventConfigure:
		t.doConfigureEvent(ev.Window)
	case platform.EventMap:
		t.doMapEvent(ev.Window)
	case platform.EventShape:
		t.doShapeEvent(ev.Window)
	case platform.EventUnmap:
		t.doUnmapEvent(ev.Window)
	}
}

// doConfigureEvent refreshes the geometry of a tracked window, and its shape
// if it already has one.
func (t *Tracker) doConfigureEvent(id platform.WindowID) {
	info, ok := t.windows.Find(id)
	if !ok {
		return
	}
	attrs, err := t.ws.Attributes(id)
	if err != nil {
		t.log.Debug().Err(err).Uint32("window", uint32(id)).Msg("configured window vanished")
		return
	}
	info.setBounds(attrs.Bounds)
	if info.HasShape {
		info.replaceShape(t.shapeRegions(id))
	}
	t.changed = true
}

func (t *Tracker) doMapEvent(id platform.WindowID) {
	if _, ok := t.windows.Find(id); ok {
		return
	}
	t.addClientWindow(id)
	t.changed = true
}

func (t *Tracker) doShapeEvent(id platform.WindowID) {
	info, ok := t.windows.Find(id)
	if !ok {
		return
	}
	info.HasShape = true
	info.replaceShape(t.shapeRegions(id))
	t.changed = true
}

func (t *Tracker) doUnmapEvent(id platform.WindowID) {
	info, ok := t.windows.Remove(id)
	if !ok {
		return
	}
	t.freeWindow(info)
	t.changed = true
}

// Interrupt wakes a NextEvent blocked in its wait, without touching any
// tracker state. It may be called from any goroutine and reports whether
// the wake-up was sent. The connection lock is held for the whole send so
// Close cannot release the connection underneath it.
func (t *Tracker) Interrupt() bool {
	t.connMu.Lock()
	defer t.connMu.Unlock()
	if t.ws == nil {
		return false
	}
	if err := t.ws.SendWakeup(); err != nil {
		t.log.Warn().Err(err).Msg("failed to interrupt event wait")
		return false
	}
	return true
}

// Rects returns the most recently published rectangles. The slice is
// replaced, never modified, on refresh; callers must not modify it.
func (t *Tracker) Rects() []platform.Extent {
	return t.rects
}

// RectCount returns len(Rects()).
func (t *Tracker) RectCount() int {
	return len(t.rects)
}

// Registry exposes the live registry. Only the tracking goroutine may use it.
func (t *Tracker) Registry() *Registry {
	return t.windows
}

// Windows returns a copy of every tracked record in registry order.
func (t *Tracker) Windows() []WindowInfo {
	out := make([]WindowInfo, 0, t.windows.Len())
	_ = t.windows.ForEach(func(w *WindowInfo) error {
		cp := *w
		cp.ShapeRegions = append([]platform.Rect(nil), w.ShapeRegions...)
		out = append(out, cp)
		return nil
	})
	return out
}

// Find returns a copy of the record for id.
func (t *Tracker) Find(id platform.WindowID) (WindowInfo, bool) {
	info, ok := t.windows.Find(id)
	if !ok {
		return WindowInfo{}, false
	}
	cp := *info
	cp.ShapeRegions = append([]platform.Rect(nil), info.ShapeRegions...)
	return cp, true
}

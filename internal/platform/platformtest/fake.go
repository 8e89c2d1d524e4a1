// Package platformtest provides an in-memory WindowSystem for tests.
package platformtest

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/1broseidon/seamless/internal/platform"
)

// RootID is the root window of every FakeWindowSystem.
const RootID platform.WindowID = 1

// FakeWindow describes a window in the fake hierarchy.
type FakeWindow struct {
	ID     platform.WindowID
	Parent platform.WindowID // 0 means the root
	Bounds platform.Rect
	Mapped bool
	// Client is the window carrying client state; 0 means the window itself.
	Client      platform.WindowID
	Types       []string
	NormalHints bool
	// Shape is the bounding region relative to the window origin. Nil means
	// the default region, which equals the bounding box.
	Shape []platform.Rect

	AttrErr  bool
	ShapeErr bool
}

// FakeWindowSystem implements platform.WindowSystem over an in-memory tree
// and a buffered event queue.
type FakeWindowSystem struct {
	mu             sync.Mutex
	windows        map[platform.WindowID]*FakeWindow
	children       map[platform.WindowID][]platform.WindowID
	shapeSupported bool
	substructure   bool
	shapeSelected  map[platform.WindowID]bool
	wakeups        int
	wakeErr        error
	closed         bool
	closeCount     int
	disconnected   bool

	events    chan platform.Event
	closeOnce sync.Once
}

var _ platform.WindowSystem = (*FakeWindowSystem)(nil)

// New returns an empty fake display. Shape support is enabled.
func New() *FakeWindowSystem {
	return &FakeWindowSystem{
		windows:        make(map[platform.WindowID]*FakeWindow),
		children:       make(map[platform.WindowID][]platform.WindowID),
		shapeSupported: true,
		shapeSelected:  make(map[platform.WindowID]bool),
		events:         make(chan platform.Event, 256),
	}
}

// SetShapeSupported toggles the SHAPE extension.
func (f *FakeWindowSystem) SetShapeSupported(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shapeSupported = ok
}

// SetWakeupError makes SendWakeup fail with err.
func (f *FakeWindowSystem) SetWakeupError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wakeErr = err
}

// AddWindow inserts w at the top of its parent's stacking order.
func (f *FakeWindowSystem) AddWindow(w FakeWindow) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w.Parent == 0 {
		w.Parent = RootID
	}
	cp := w
	cp.Types = append([]string(nil), w.Types...)
	cp.Shape = copyRects(w.Shape)
	f.windows[w.ID] = &cp
	f.children[w.Parent] = append(f.children[w.Parent], w.ID)
}

// RemoveWindow deletes a window from the hierarchy.
func (f *FakeWindowSystem) RemoveWindow(id platform.WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	if !ok {
		return
	}
	delete(f.windows, id)
	siblings := f.children[w.Parent]
	for i, s := range siblings {
		if s == id {
			f.children[w.Parent] = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
}

// Configure moves or resizes a window and queues a configure event.
func (f *FakeWindowSystem) Configure(id platform.WindowID, bounds platform.Rect) {
	f.update(id, func(w *FakeWindow) { w.Bounds = bounds })
	f.Push(platform.Event{Kind: platform.EventConfigure, Window: id})
}

// Map marks a window mapped and queues a map event.
func (f *FakeWindowSystem) Map(id platform.WindowID) {
	f.update(id, func(w *FakeWindow) { w.Mapped = true })
	f.Push(platform.Event{Kind: platform.EventMap, Window: id})
}

// Unmap marks a window unmapped and queues an unmap event.
func (f *FakeWindowSystem) Unmap(id platform.WindowID) {
	f.update(id, func(w *FakeWindow) { w.Mapped = false })
	f.Push(platform.Event{Kind: platform.EventUnmap, Window: id})
}

// Reshape replaces a window's bounding region and queues a shape event.
func (f *FakeWindowSystem) Reshape(id platform.WindowID, regions []platform.Rect) {
	f.update(id, func(w *FakeWindow) { w.Shape = copyRects(regions) })
	f.Push(platform.Event{Kind: platform.EventShape, Window: id})
}

// Mutate edits a window without queuing an event.
func (f *FakeWindowSystem) Mutate(id platform.WindowID, fn func(w *FakeWindow)) {
	f.update(id, fn)
}

func (f *FakeWindowSystem) update(id platform.WindowID, fn func(w *FakeWindow)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.windows[id]; ok {
		fn(w)
	}
}

// Push queues an arbitrary event. Events pushed after Close or Disconnect
// are dropped.
func (f *FakeWindowSystem) Push(ev platform.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || f.disconnected {
		return
	}
	f.events <- ev
}

// Pending returns the number of queued events.
func (f *FakeWindowSystem) Pending() int {
	return len(f.events)
}

// SubstructureSelected reports whether root hierarchy events are selected.
func (f *FakeWindowSystem) SubstructureSelected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.substructure
}

// ShapeSelected reports whether shape events are selected for id.
func (f *FakeWindowSystem) ShapeSelected(id platform.WindowID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shapeSelected[id]
}

// Wakeups returns the number of successful SendWakeup calls.
func (f *FakeWindowSystem) Wakeups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wakeups
}

// Closed reports whether Close was called, and how many times.
func (f *FakeWindowSystem) Closed() (bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed, f.closeCount
}

func (f *FakeWindowSystem) Root() platform.WindowID {
	return RootID
}

func (f *FakeWindowSystem) QueryShapeExtension() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shapeSupported
}

func (f *FakeWindowSystem) SelectSubstructureEvents(enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.substructure = enable
	return nil
}

func (f *FakeWindowSystem) SelectShapeEvents(id platform.WindowID, enable bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.windows[id]; !ok {
		return errors.Errorf("BadWindow: %d", id)
	}
	if enable {
		f.shapeSelected[id] = true
	} else {
		delete(f.shapeSelected, id)
	}
	return nil
}

func (f *FakeWindowSystem) QueryTree(id platform.WindowID) ([]platform.WindowID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.windows[id]; !ok && id != RootID {
		return nil, errors.Errorf("BadWindow: %d", id)
	}
	return append([]platform.WindowID(nil), f.children[id]...), nil
}

func (f *FakeWindowSystem) ClientWindow(id platform.WindowID) platform.WindowID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.windows[id]; ok && w.Client != 0 {
		return w.Client
	}
	return id
}

func (f *FakeWindowSystem) WindowTypes(id platform.WindowID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	if !ok {
		return nil, errors.Errorf("BadWindow: %d", id)
	}
	if len(w.Types) == 0 {
		return nil, errors.New("property _NET_WM_WINDOW_TYPE not set")
	}
	return append([]string(nil), w.Types...), nil
}

func (f *FakeWindowSystem) Attributes(id platform.WindowID) (platform.Attributes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	if !ok || w.AttrErr {
		return platform.Attributes{}, errors.Errorf("BadWindow: %d", id)
	}
	return platform.Attributes{Bounds: w.Bounds, Mapped: w.Mapped}, nil
}

func (f *FakeWindowSystem) HasNormalHints(id platform.WindowID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	return ok && w.NormalHints
}

func (f *FakeWindowSystem) ShapeRectangles(id platform.WindowID) ([]platform.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	if !ok || w.ShapeErr {
		return nil, errors.Errorf("BadWindow: %d", id)
	}
	if w.Shape == nil {
		return []platform.Rect{{Width: w.Bounds.Width, Height: w.Bounds.Height}}, nil
	}
	return copyRects(w.Shape), nil
}

func (f *FakeWindowSystem) WaitForEvent() (platform.Event, error) {
	ev, ok := <-f.events
	if !ok {
		return platform.Event{}, platform.ErrConnectionClosed
	}
	return ev, nil
}

// SendWakeup queues a wake-up event. Like an xgb connection, it panics once
// the client side has been closed.
func (f *FakeWindowSystem) SendWakeup() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		panic("platformtest: SendWakeup on a closed connection")
	}
	if f.wakeErr != nil {
		return f.wakeErr
	}
	if f.disconnected {
		return platform.ErrConnectionClosed
	}
	f.wakeups++
	f.events <- platform.Event{Kind: platform.EventWakeup}
	return nil
}

// Disconnect simulates the server going away: a blocked WaitForEvent and
// later SendWakeup calls return platform.ErrConnectionClosed.
func (f *FakeWindowSystem) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnected = true
	f.closeOnce.Do(func() { close(f.events) })
}

// Close releases the client side of the connection. Any later SendWakeup
// panics.
func (f *FakeWindowSystem) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.closeCount++
	f.closeOnce.Do(func() { close(f.events) })
}

func copyRects(in []platform.Rect) []platform.Rect {
	if in == nil {
		return nil
	}
	out := make([]platform.Rect, len(in))
	copy(out, in)
	return out
}

package seamless

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/seamless/internal/platform"
	"github.com/1broseidon/seamless/internal/platform/platformtest"
)

type notifyCounter struct{ n int }

func (c *notifyCounter) Notify() { c.n++ }

func appWindow(id platform.WindowID, x, y, w, h int) platformtest.FakeWindow {
	return platformtest.FakeWindow{
		ID:          id,
		Bounds:      platform.Rect{X: x, Y: y, Width: w, Height: h},
		Mapped:      true,
		NormalHints: true,
		Types:       []string{"_NET_WM_WINDOW_TYPE_NORMAL"},
	}
}

func newTracker(t *testing.T, fake *platformtest.FakeWindowSystem, opts ...Option) (*Tracker, *notifyCounter) {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	tr := New(func() (platform.WindowSystem, error) { return fake, nil }, opts...)
	obs := &notifyCounter{}
	if err := tr.Init(obs); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return tr, obs
}

func startTracker(t *testing.T, fake *platformtest.FakeWindowSystem, opts ...Option) (*Tracker, *notifyCounter) {
	t.Helper()
	tr, obs := newTracker(t, fake, opts...)
	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return tr, obs
}

// pump dispatches every queued event, then runs one more NextEvent so that
// pending changes are published. The extra iteration consumes a wake-up.
func pump(t *testing.T, tr *Tracker, fake *platformtest.FakeWindowSystem) {
	t.Helper()
	for fake.Pending() > 0 {
		if err := tr.NextEvent(); err != nil {
			t.Fatalf("NextEvent: %v", err)
		}
	}
	fake.Push(platform.Event{Kind: platform.EventWakeup})
	if err := tr.NextEvent(); err != nil {
		t.Fatalf("NextEvent: %v", err)
	}
}

func assertRects(t *testing.T, got []platform.Extent, want ...platform.Extent) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d rects %v, got %v", len(want), want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rect %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTracker_PublishesBoundingBoxOfPlainWindow(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 10, 20, 100, 50))

	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), platform.Extent{Left: 10, Top: 20, Right: 110, Bottom: 70})
	if tr.RectCount() != 1 {
		t.Fatalf("expected RectCount 1, got %d", tr.RectCount())
	}
	if obs.n != 1 {
		t.Fatalf("expected 1 notification, got %d", obs.n)
	}
	if !fake.SubstructureSelected() {
		t.Fatalf("expected root substructure events to be selected")
	}
	if !fake.ShapeSelected(10) {
		t.Fatalf("expected shape events to be selected for window 10")
	}
}

func TestTracker_PublishesShapeRegions(t *testing.T) {
	fake := platformtest.New()
	w := appWindow(10, 10, 20, 100, 50)
	w.Shape = []platform.Rect{{Width: 40, Height: 50}, {X: 40, Width: 60, Height: 50}}
	fake.AddWindow(w)

	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)

	assertRects(t, tr.Rects(),
		platform.Extent{Left: 10, Top: 20, Right: 50, Bottom: 70},
		platform.Extent{Left: 50, Top: 20, Right: 110, Bottom: 70},
	)
	info, ok := tr.Find(10)
	if !ok || !info.HasShape || len(info.ShapeRegions) != 2 {
		t.Fatalf("expected shaped record with 2 regions, got %+v", info)
	}
}

func TestTracker_SingleRegionEqualToBoxIsUnshaped(t *testing.T) {
	fake := platformtest.New()
	w := appWindow(10, 0, 0, 100, 50)
	w.Shape = []platform.Rect{{Width: 100, Height: 50}}
	fake.AddWindow(w)

	tr, _ := startTracker(t, fake)
	info, ok := tr.Find(10)
	if !ok {
		t.Fatalf("expected window to be tracked")
	}
	if info.HasShape || info.ShapeRegions != nil {
		t.Fatalf("expected unshaped record, got %+v", info)
	}
}

func TestTracker_EnumerationFilters(t *testing.T) {
	fake := platformtest.New()

	desktop := appWindow(2, 0, 0, 1920, 1080)
	desktop.Types = []string{platform.WindowTypeDesktop}
	fake.AddWindow(desktop)

	// Desktop type in second position does not exclude.
	secondary := appWindow(3, 0, 0, 10, 10)
	secondary.Types = []string{"_NET_WM_WINDOW_TYPE_NORMAL", platform.WindowTypeDesktop}
	fake.AddWindow(secondary)

	unmapped := appWindow(4, 0, 0, 10, 10)
	unmapped.Mapped = false
	fake.AddWindow(unmapped)

	noHints := appWindow(5, 0, 0, 10, 10)
	noHints.NormalHints = false
	fake.AddWindow(noHints)

	broken := appWindow(6, 0, 0, 10, 10)
	broken.AttrErr = true
	fake.AddWindow(broken)

	untyped := appWindow(7, 0, 0, 10, 10)
	untyped.Types = nil
	fake.AddWindow(untyped)

	tr, _ := startTracker(t, fake)

	var tracked []platform.WindowID
	for _, w := range tr.Windows() {
		tracked = append(tracked, w.Handle)
	}
	if len(tracked) != 2 || tracked[0] != 3 || tracked[1] != 7 {
		t.Fatalf("expected windows [3 7] tracked, got %v", tracked)
	}
}

func TestTracker_FrameUsesClientHintsAndFrameGeometry(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(platformtest.FakeWindow{
		ID:     20,
		Bounds: platform.Rect{X: 5, Y: 5, Width: 210, Height: 130},
		Mapped: true,
		Client: 21,
	})
	fake.AddWindow(platformtest.FakeWindow{
		ID:          21,
		Parent:      20,
		Bounds:      platform.Rect{X: 5, Y: 25, Width: 200, Height: 100},
		Mapped:      true,
		NormalHints: true,
	})

	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), platform.Extent{Left: 5, Top: 5, Right: 215, Bottom: 135})
	if _, ok := tr.Find(21); ok {
		t.Fatalf("client window must not be tracked on its own")
	}

	// A desktop-typed client excludes its frame.
	fake2 := platformtest.New()
	fake2.AddWindow(platformtest.FakeWindow{ID: 30, Bounds: platform.Rect{Width: 10, Height: 10}, Mapped: true, Client: 31})
	fake2.AddWindow(platformtest.FakeWindow{ID: 31, Parent: 30, Mapped: true, NormalHints: true, Types: []string{platform.WindowTypeDesktop}})
	tr2, _ := startTracker(t, fake2)
	if tr2.Registry().Len() != 0 {
		t.Fatalf("expected desktop frame to be skipped")
	}
}

func TestTracker_UnmapRemovesWindow(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 10, 20, 100, 50))
	fake.AddWindow(appWindow(11, 300, 300, 10, 10))

	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)

	fake.Unmap(10)
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), platform.Extent{Left: 300, Top: 300, Right: 310, Bottom: 310})
	if _, ok := tr.Find(10); ok {
		t.Fatalf("expected window 10 to be removed")
	}
	if fake.ShapeSelected(10) {
		t.Fatalf("expected shape events to be deselected for window 10")
	}
	if obs.n != 2 {
		t.Fatalf("expected 2 notifications, got %d", obs.n)
	}
}

func TestTracker_ConfigureUpdatesGeometry(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 10, 20, 100, 50))

	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)
	before := tr.Registry()
	rec, _ := before.Find(10)

	fake.Configure(10, platform.Rect{X: 50, Y: 60, Width: 30, Height: 40})
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), platform.Extent{Left: 50, Top: 60, Right: 80, Bottom: 100})
	after, _ := tr.Registry().Find(10)
	if after != rec {
		t.Fatalf("expected record to be updated in place")
	}
}

func TestTracker_ConfigureRefreshesShapeOnlyWhenShaped(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 0, 0, 100, 50))

	tr, _ := startTracker(t, fake)

	// Shape changes without a shape event are not picked up by configure on
	// an unshaped window.
	fake.Mutate(10, func(w *platformtest.FakeWindow) {
		w.Shape = []platform.Rect{{Width: 10, Height: 10}}
	})
	fake.Configure(10, platform.Rect{X: 1, Y: 1, Width: 100, Height: 50})
	pump(t, tr, fake)
	assertRects(t, tr.Rects(), platform.Extent{Left: 1, Top: 1, Right: 101, Bottom: 51})

	fake.Reshape(10, []platform.Rect{{Width: 20, Height: 20}})
	pump(t, tr, fake)
	assertRects(t, tr.Rects(), platform.Extent{Left: 1, Top: 1, Right: 21, Bottom: 21})

	fake.Mutate(10, func(w *platformtest.FakeWindow) {
		w.Shape = []platform.Rect{{Width: 5, Height: 5}, {X: 10, Width: 5, Height: 5}}
	})
	fake.Configure(10, platform.Rect{X: 100, Y: 100, Width: 100, Height: 50})
	pump(t, tr, fake)
	assertRects(t, tr.Rects(),
		platform.Extent{Left: 100, Top: 100, Right: 105, Bottom: 105},
		platform.Extent{Left: 110, Top: 100, Right: 115, Bottom: 105},
	)
}

func TestTracker_ShapeEventWithNoRegionsHidesWindow(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 0, 0, 100, 50))

	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)

	fake.Reshape(10, []platform.Rect{})
	pump(t, tr, fake)

	if tr.RectCount() != 0 {
		t.Fatalf("expected no rects for empty shape, got %v", tr.Rects())
	}
	info, _ := tr.Find(10)
	if !info.HasShape {
		t.Fatalf("expected HasShape after shape event")
	}
}

func TestTracker_MapAddsEligibleWindow(t *testing.T) {
	fake := platformtest.New()
	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)
	if obs.n != 1 || tr.RectCount() != 0 {
		t.Fatalf("expected initial empty publish, got n=%d rects=%v", obs.n, tr.Rects())
	}

	w := appWindow(10, 0, 0, 10, 10)
	w.Mapped = false
	fake.AddWindow(w)
	fake.Map(10)
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), platform.Extent{Right: 10, Bottom: 10})
	if obs.n != 2 {
		t.Fatalf("expected 2 notifications, got %d", obs.n)
	}

	// Mapping an already tracked window changes nothing.
	fake.Map(10)
	pump(t, tr, fake)
	if obs.n != 2 {
		t.Fatalf("expected no notification for duplicate map, got %d", obs.n)
	}
	if tr.Registry().Len() != 1 {
		t.Fatalf("expected 1 tracked window, got %d", tr.Registry().Len())
	}
}

func TestTracker_EventsForUnknownWindowsDoNotNotify(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 0, 0, 10, 10))
	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)

	fake.Push(platform.Event{Kind: platform.EventConfigure, Window: 99})
	fake.Push(platform.Event{Kind: platform.EventShape, Window: 99})
	fake.Push(platform.Event{Kind: platform.EventUnmap, Window: 99})
	fake.Push(platform.Event{Kind: platform.EventOther})
	pump(t, tr, fake)

	if obs.n != 1 {
		t.Fatalf("expected no further notifications, got %d", obs.n)
	}
}

func TestTracker_RebuildIsIdempotent(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 10, 20, 100, 50))
	w := appWindow(11, 0, 0, 100, 50)
	w.Shape = []platform.Rect{{Width: 40, Height: 50}, {X: 40, Width: 60, Height: 50}}
	fake.AddWindow(w)

	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)
	first := append([]platform.Extent(nil), tr.Rects()...)

	tr.RebuildWindowTree()
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), first...)
	if obs.n != 2 {
		t.Fatalf("expected rebuild to notify, got %d", obs.n)
	}
}

func TestTracker_WithoutShapeExtension(t *testing.T) {
	fake := platformtest.New()
	fake.SetShapeSupported(false)
	w := appWindow(10, 0, 0, 100, 50)
	w.Shape = []platform.Rect{{Width: 10, Height: 10}, {X: 20, Width: 10, Height: 10}}
	fake.AddWindow(w)

	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), platform.Extent{Right: 100, Bottom: 50})
	if fake.ShapeSelected(10) {
		t.Fatalf("expected no shape selection without the extension")
	}
}

func TestTracker_InitErrors(t *testing.T) {
	fake := platformtest.New()
	tr, _ := newTracker(t, fake)
	if err := tr.Init(nil); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}

	cause := errors.New("no display")
	failing := New(func() (platform.WindowSystem, error) { return nil, cause }, WithLogger(zerolog.Nop()))
	err := failing.Init(nil)
	if !errors.Is(err, ErrConnection) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrConnection wrapping cause, got %v", err)
	}
	if err := failing.Start(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from Start, got %v", err)
	}
	if err := failing.NextEvent(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from NextEvent, got %v", err)
	}
	if failing.Interrupt() {
		t.Fatalf("expected Interrupt to fail without a connection")
	}
}

func TestTracker_NilObserverIsAllowed(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 0, 0, 10, 10))
	tr := New(func() (platform.WindowSystem, error) { return fake, nil }, WithLogger(zerolog.Nop()))
	if err := tr.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := tr.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	pump(t, tr, fake)
	if tr.RectCount() != 1 {
		t.Fatalf("expected 1 rect, got %d", tr.RectCount())
	}
}

func TestTracker_MaxRectsKeepsPreviousList(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 0, 0, 10, 10))

	tr, obs := startTracker(t, fake, WithMaxRects(2))
	pump(t, tr, fake)
	assertRects(t, tr.Rects(), platform.Extent{Right: 10, Bottom: 10})

	w := appWindow(11, 20, 0, 30, 10)
	w.Shape = []platform.Rect{{Width: 5, Height: 5}, {X: 10, Width: 5, Height: 5}}
	w.Mapped = false
	fake.AddWindow(w)
	fake.Map(11)
	pump(t, tr, fake)

	assertRects(t, tr.Rects(), platform.Extent{Right: 10, Bottom: 10})
	if obs.n != 1 {
		t.Fatalf("expected failed refresh to skip notification, got %d", obs.n)
	}

	fake.Unmap(10)
	pump(t, tr, fake)
	assertRects(t, tr.Rects(),
		platform.Extent{Left: 20, Top: 0, Right: 25, Bottom: 5},
		platform.Extent{Left: 30, Top: 0, Right: 35, Bottom: 5},
	)
}

func TestTracker_StopForgetsWindowsButKeepsRects(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 0, 0, 10, 10))

	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)
	tr.Stop()

	if tr.Enabled() {
		t.Fatalf("expected tracker to be disabled")
	}
	if fake.SubstructureSelected() {
		t.Fatalf("expected root events to be deselected")
	}
	if fake.ShapeSelected(10) {
		t.Fatalf("expected shape events to be deselected")
	}
	if tr.Registry().Len() != 0 {
		t.Fatalf("expected empty registry")
	}
	if tr.RectCount() != 1 {
		t.Fatalf("expected last published rects to survive Stop")
	}

	tr.Close()
	if closed, n := fake.Closed(); !closed || n != 1 {
		t.Fatalf("expected one Close, got closed=%v n=%d", closed, n)
	}
	tr.Close()
	if _, n := fake.Closed(); n != 1 {
		t.Fatalf("expected Close to be idempotent, got %d", n)
	}
}

func TestTracker_InterruptWakesBlockedWait(t *testing.T) {
	fake := platformtest.New()
	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)

	done := make(chan error, 1)
	go func() { done <- tr.NextEvent() }()

	select {
	case <-done:
		t.Fatalf("NextEvent returned without an event")
	case <-time.After(20 * time.Millisecond):
	}

	if !tr.Interrupt() {
		t.Fatalf("expected Interrupt to succeed")
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("NextEvent: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("NextEvent not woken by Interrupt")
	}
	if fake.Wakeups() != 1 {
		t.Fatalf("expected 1 wakeup, got %d", fake.Wakeups())
	}

	fake.SetWakeupError(errors.New("broken pipe"))
	if tr.Interrupt() {
		t.Fatalf("expected Interrupt to report failure")
	}
}

func TestTracker_ConnectionClosed(t *testing.T) {
	fake := platformtest.New()
	tr, _ := startTracker(t, fake)
	pump(t, tr, fake)

	fake.Disconnect()
	if err := tr.NextEvent(); !errors.Is(err, platform.ErrConnectionClosed) {
		t.Fatalf("expected ErrConnectionClosed, got %v", err)
	}
}

func TestTracker_InterruptLeavesStateUntouched(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 10, 20, 100, 50))
	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)
	before := tr.Windows()
	notified := obs.n

	if !tr.Interrupt() {
		t.Fatalf("expected Interrupt to succeed")
	}
	if err := tr.NextEvent(); err != nil {
		t.Fatalf("NextEvent: %v", err)
	}
	// The next iteration would publish if the wake-up had marked a change.
	fake.Push(platform.Event{Kind: platform.EventOther})
	if err := tr.NextEvent(); err != nil {
		t.Fatalf("NextEvent: %v", err)
	}

	if obs.n != notified {
		t.Fatalf("expected no notification from a wake-up, got %d more", obs.n-notified)
	}
	after := tr.Windows()
	if len(after) != len(before) || after[0].Handle != before[0].Handle || after[0].Bounds() != before[0].Bounds() {
		t.Fatalf("expected registry unchanged, before %+v after %+v", before, after)
	}
	assertRects(t, tr.Rects(), platform.Extent{Left: 10, Top: 20, Right: 110, Bottom: 70})
}

func TestTracker_ShapeQueryFailures(t *testing.T) {
	fake := platformtest.New()
	failing := appWindow(10, 0, 0, 100, 50)
	failing.Shape = []platform.Rect{{Width: 10, Height: 10}, {X: 20, Width: 10, Height: 10}}
	failing.ShapeErr = true
	fake.AddWindow(failing)

	shaped := appWindow(11, 200, 0, 100, 50)
	shaped.Shape = []platform.Rect{{Width: 10, Height: 10}, {X: 20, Width: 10, Height: 10}}
	fake.AddWindow(shaped)

	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)

	// A failed query at enumeration falls back to the bounding box.
	info, _ := tr.Find(10)
	if info.HasShape || info.ShapeRegions != nil {
		t.Fatalf("expected unshaped record after failed query, got %+v", info)
	}
	assertRects(t, tr.Rects(),
		platform.Extent{Left: 0, Top: 0, Right: 100, Bottom: 50},
		platform.Extent{Left: 200, Top: 0, Right: 210, Bottom: 10},
		platform.Extent{Left: 220, Top: 0, Right: 230, Bottom: 10},
	)

	// A failed query on a shape event still marks the window shaped, with
	// no visible regions.
	fake.Reshape(10, []platform.Rect{{Width: 5, Height: 5}})
	pump(t, tr, fake)
	info, _ = tr.Find(10)
	if !info.HasShape || len(info.ShapeRegions) != 0 {
		t.Fatalf("expected shaped record with no regions, got %+v", info)
	}
	if obs.n != 2 {
		t.Fatalf("expected shape event to notify, got %d", obs.n)
	}

	// A failed query on configure empties a shaped window's regions.
	fake.Mutate(11, func(w *platformtest.FakeWindow) { w.ShapeErr = true })
	fake.Configure(11, platform.Rect{X: 300, Y: 0, Width: 100, Height: 50})
	pump(t, tr, fake)
	info, _ = tr.Find(11)
	if !info.HasShape || len(info.ShapeRegions) != 0 || info.X != 300 {
		t.Fatalf("expected moved shaped record with no regions, got %+v", info)
	}
	if tr.RectCount() != 0 {
		t.Fatalf("expected no rects, got %v", tr.Rects())
	}
}

func TestTracker_ConfigureOfVanishedWindowKeepsRecord(t *testing.T) {
	fake := platformtest.New()
	fake.AddWindow(appWindow(10, 10, 20, 100, 50))
	fake.AddWindow(appWindow(11, 300, 300, 10, 10))
	tr, obs := startTracker(t, fake)
	pump(t, tr, fake)

	fake.Mutate(10, func(w *platformtest.FakeWindow) { w.AttrErr = true })
	fake.Configure(10, platform.Rect{X: 50, Y: 50, Width: 10, Height: 10})
	fake.RemoveWindow(11)
	fake.Push(platform.Event{Kind: platform.EventConfigure, Window: 11})
	pump(t, tr, fake)

	if obs.n != 1 {
		t.Fatalf("expected failed configures not to notify, got %d", obs.n)
	}
	info, ok := tr.Find(10)
	if !ok || info.X != 10 || info.Y != 20 {
		t.Fatalf("expected stale geometry to be kept, got %+v ok=%v", info, ok)
	}
	if _, ok := tr.Find(11); !ok {
		t.Fatalf("expected window 11 to stay tracked until unmapped")
	}
	assertRects(t, tr.Rects(),
		platform.Extent{Left: 10, Top: 20, Right: 110, Bottom: 70},
		platform.Extent{Left: 300, Top: 300, Right: 310, Bottom: 310},
	)
}

func TestTracker_InterruptRacesClose(t *testing.T) {
	for i := 0; i < 20; i++ {
		fake := platformtest.New()
		tr, _ := startTracker(t, fake)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for j := 0; j < 50; j++ {
					tr.Interrupt()
				}
			}()
		}
		close(start)
		tr.Stop()
		tr.Close()
		wg.Wait()

		if tr.Interrupt() {
			t.Fatalf("expected Interrupt to fail after Close")
		}
	}
}

func TestTracker_UseAfterClose(t *testing.T) {
	fake := platformtest.New()
	tr, _ := startTracker(t, fake)
	tr.Stop()
	tr.Close()

	if err := tr.Start(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from Start after Close, got %v", err)
	}
	tr.Stop()
	if err := tr.NextEvent(); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from NextEvent after Close, got %v", err)
	}
}

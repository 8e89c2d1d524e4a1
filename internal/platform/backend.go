package platform

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrConnectionClosed is returned by WaitForEvent after the connection is gone.
var ErrConnectionClosed = errors.New("windowing system connection closed")

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region as origin and size. Window bounds use
// root coordinates; shape regions are relative to the window origin.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Extent is an absolute screen rectangle given by its edges. Y grows towards
// the bottom of the screen, so Top < Bottom for any non-empty extent.
type Extent struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Offset translates r by (dx, dy) and returns it as an Extent.
func (r Rect) Offset(dx, dy int) Extent {
	return Extent{
		Left:   dx + r.X,
		Top:    dy + r.Y,
		Right:  dx + r.X + r.Width,
		Bottom: dy + r.Y + r.Height,
	}
}

func (e Extent) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", e.Left, e.Top, e.Right, e.Bottom)
}

// Attributes is the subset of window state the tracker relies on.
type Attributes struct {
	Bounds Rect
	Mapped bool
}

// EventKind classifies windowing-system events.
type EventKind int

const (
	EventOther EventKind = iota
	EventConfigure
	EventMap
	EventUnmap
	EventShape
	EventWakeup
)

func (k EventKind) String() string {
	switch k {
	case EventConfigure:
		return "configure"
	case EventMap:
		return "map"
	case EventUnmap:
		return "unmap"
	case EventShape:
		return "shape"
	case EventWakeup:
		return "wakeup"
	default:
		return "other"
	}
}

// Event is a single windowing-system event reduced to what the tracker needs.
type Event struct {
	Kind   EventKind
	Window WindowID
}

// WindowSystem abstracts the connection to the windowing system. A
// WindowSystem is driven by a single goroutine, except SendWakeup, which
// may be called from any goroutine.
type WindowSystem interface {
	Root() WindowID
	// QueryShapeExtension reports whether non-rectangular window shapes are supported.
	QueryShapeExtension() bool
	// SelectSubstructureEvents turns hierarchy notifications on the root on or off.
	SelectSubstructureEvents(enable bool) error
	// SelectShapeEvents turns shape-change notifications for a window on or off.
	SelectShapeEvents(id WindowID, enable bool) error
	QueryTree(id WindowID) ([]WindowID, error)
	// ClientWindow resolves a root child to the window carrying client state.
	// It returns id itself when no better candidate exists.
	ClientWindow(id WindowID) WindowID
	WindowTypes(id WindowID) ([]string, error)
	Attributes(id WindowID) (Attributes, error)
	HasNormalHints(id WindowID) bool
	ShapeRectangles(id WindowID) ([]Rect, error)
	// WaitForEvent blocks until the next event arrives.
	WaitForEvent() (Event, error)
	// SendWakeup delivers an EventWakeup to the pending WaitForEvent.
	SendWakeup() error
	Close()
}

// Well-known window type names.
const (
	WindowTypeDesktop = "_NET_WM_WINDOW_TYPE_DESKTOP"
)

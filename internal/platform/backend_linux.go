//go:build linux

package platform

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/1broseidon/seamless/internal/x11"
)

// LinuxBackend wraps an X11 connection behind the WindowSystem interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ WindowSystem = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// OpenDisplay opens a new X11 connection to display and wraps it.
func OpenDisplay(display string) (WindowSystem, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, err
	}
	return &LinuxBackend{conn: conn}, nil
}

func (b *LinuxBackend) Root() WindowID {
	return WindowID(b.conn.Root)
}

func (b *LinuxBackend) QueryShapeExtension() bool {
	return b.conn.ShapeSupported()
}

func (b *LinuxBackend) SelectSubstructureEvents(enable bool) error {
	return b.conn.SelectRootSubstructure(enable)
}

func (b *LinuxBackend) SelectShapeEvents(id WindowID, enable bool) error {
	return b.conn.SelectShapeInput(xproto.Window(id), enable)
}

func (b *LinuxBackend) QueryTree(id WindowID) ([]WindowID, error) {
	children, err := b.conn.Children(xproto.Window(id))
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, len(children))
	for i, child := range children {
		out[i] = WindowID(child)
	}
	return out, nil
}

func (b *LinuxBackend) ClientWindow(id WindowID) WindowID {
	return WindowID(b.conn.ClientWindow(xproto.Window(id)))
}

func (b *LinuxBackend) WindowTypes(id WindowID) ([]string, error) {
	return b.conn.WindowTypes(xproto.Window(id))
}

func (b *LinuxBackend) Attributes(id WindowID) (Attributes, error) {
	st, err := b.conn.GetWindowState(xproto.Window(id))
	if err != nil {
		return Attributes{}, err
	}
	return Attributes{
		Bounds: Rect{X: st.X, Y: st.Y, Width: st.Width, Height: st.Height},
		Mapped: st.Mapped,
	}, nil
}

func (b *LinuxBackend) HasNormalHints(id WindowID) bool {
	return b.conn.HasNormalHints(xproto.Window(id))
}

func (b *LinuxBackend) ShapeRectangles(id WindowID) ([]Rect, error) {
	rects, err := b.conn.BoundingShape(xproto.Window(id))
	if err != nil {
		return nil, err
	}
	out := make([]Rect, len(rects))
	for i, r := range rects {
		out[i] = Rect{X: int(r.X), Y: int(r.Y), Width: int(r.Width), Height: int(r.Height)}
	}
	return out, nil
}

func (b *LinuxBackend) WaitForEvent() (Event, error) {
	typ, win, err := b.conn.NextEvent()
	if err != nil {
		if errors.Is(err, x11.ErrClosed) {
			return Event{}, ErrConnectionClosed
		}
		return Event{}, err
	}
	return Event{Kind: eventKind(typ), Window: WindowID(win)}, nil
}

func (b *LinuxBackend) SendWakeup() error {
	if err := b.conn.SendWakeup(); err != nil {
		if errors.Is(err, x11.ErrClosed) {
			return errors.Wrap(ErrConnectionClosed, err.Error())
		}
		return err
	}
	return nil
}

// Close disconnects from the X server.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func eventKind(t x11.EventType) EventKind {
	switch t {
	case x11.ConfigureEvent:
		return EventConfigure
	case x11.MapEvent:
		return EventMap
	case x11.UnmapEvent:
		return EventUnmap
	case x11.ShapeEvent:
		return EventShape
	case x11.WakeupEvent:
		return EventWakeup
	default:
		return EventOther
	}
}

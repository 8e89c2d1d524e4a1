package x11

import (
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/pkg/errors"
)

// ErrClosed is returned by NextEvent once the connection has gone away.
var ErrClosed = errors.New("x11 connection closed")

// EventType is the reduced set of X events the tracker dispatches on.
type EventType int

const (
	OtherEvent EventType = iota
	ConfigureEvent
	MapEvent
	UnmapEvent
	ShapeEvent
	WakeupEvent
)

// NextEvent blocks for the next X event and reduces it to a type and the
// window it concerns. Protocol errors delivered through the event queue are
// reported as OtherEvent; the tracker re-validates on every path.
func (c *Connection) NextEvent() (EventType, xproto.Window, error) {
	ev, xerr := c.xc.WaitForEvent()
	if ev == nil && xerr == nil {
		c.markLost()
		return OtherEvent, 0, ErrClosed
	}
	if xerr != nil {
		c.log.Debug().Str("error", xerr.Error()).Msg("asynchronous X error")
		return OtherEvent, 0, nil
	}

	switch e := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		return ConfigureEvent, e.Window, nil
	case xproto.MapNotifyEvent:
		return MapEvent, e.Window, nil
	case xproto.UnmapNotifyEvent:
		return UnmapEvent, e.Window, nil
	case shape.NotifyEvent:
		return ShapeEvent, e.AffectedWindow, nil
	case xproto.ClientMessageEvent:
		if e.Window == c.wake && e.Type == c.wakeAtom {
			return WakeupEvent, e.Window, nil
		}
	}
	return OtherEvent, 0, nil
}

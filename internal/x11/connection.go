package x11

import (
	"sync"
	"sync/atomic"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/1broseidon/seamless/internal/logger"
)

// WakeupAtomName tags the ClientMessage used to unblock WaitForEvent.
const WakeupAtomName = "_SEAMLESS_WAKEUP"

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	xc *xgb.Conn

	// wake is an unmapped InputOnly window owned by this connection. Events
	// sent to it with an empty mask come back to us and to nobody else.
	wake     xproto.Window
	wakeAtom xproto.Atom

	shapeOnce sync.Once
	hasShape  bool

	// mu guards the request side of the xgb connection. xgb panics on
	// requests once its request channel is closed, which happens on Close
	// and, inside xgb, after a read error.
	mu     sync.RWMutex
	closed bool
	// lost is set from the event loop without mu, which a wake-up blocked
	// on a dead server may still hold.
	lost atomic.Bool

	log zerolog.Logger
}

// NewConnection connects to the X server named by display (empty means
// $DISPLAY) and creates the wake-up window.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
		xc:    xu.Conn(),
		log:   logger.WithComponent("x11"),
	}
	if err := c.createWakeWindow(); err != nil {
		xu.Conn().Close()
		return nil, err
	}
	return c, nil
}

func (c *Connection) createWakeWindow() error {
	atom, err := xprop.Atm(c.XUtil, WakeupAtomName)
	if err != nil {
		return errors.Wrapf(err, "failed to intern %s", WakeupAtomName)
	}

	wid, err := xproto.NewWindowId(c.XUtil.Conn())
	if err != nil {
		return errors.Wrap(err, "failed to allocate wake-up window id")
	}
	err = xproto.CreateWindowChecked(
		c.XUtil.Conn(),
		0, // depth must be 0 for InputOnly
		wid,
		c.Root,
		-1, -1, 1, 1, 0,
		xproto.WindowClassInputOnly,
		0, // CopyFromParent
		0, nil,
	).Check()
	if err != nil {
		return errors.Wrap(err, "failed to create wake-up window")
	}

	c.wake = wid
	c.wakeAtom = atom
	return nil
}

// ShapeSupported initialises the SHAPE extension once and reports whether
// the server provides it.
func (c *Connection) ShapeSupported() bool {
	c.shapeOnce.Do(func() {
		if err := shape.Init(c.XUtil.Conn()); err != nil {
			c.log.Info().Err(err).Msg("SHAPE extension unavailable")
			return
		}
		c.hasShape = true
	})
	return c.hasShape
}

// SelectRootSubstructure sets or clears SubstructureNotify on the root window.
func (c *Connection) SelectRootSubstructure(enable bool) error {
	var mask uint32
	if enable {
		mask = xproto.EventMaskSubstructureNotify
	}
	err := xproto.ChangeWindowAttributesChecked(
		c.XUtil.Conn(),
		c.Root,
		xproto.CwEventMask,
		[]uint32{mask},
	).Check()
	if err != nil {
		return errors.Wrap(err, "failed to set root event mask")
	}
	return nil
}

// SendWakeup posts a zeroed, tagged ClientMessage to the wake-up window.
// Safe to call from any goroutine; Close waits for a send in progress. It
// returns ErrClosed once the connection is closed or lost.
func (c *Connection) SendWakeup() (err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed || c.lost.Load() {
		return ErrClosed
	}
	// The server may drop the connection before NextEvent notices.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrClosed, "wake-up after connection loss: %v", r)
		}
	}()

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.wake,
		Type:   c.wakeAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	err = xproto.SendEventChecked(
		c.xc,
		false,
		c.wake,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
	if err != nil {
		return errors.Wrap(err, "failed to send wake-up event")
	}
	return nil
}

// Close destroys the wake-up window and disconnects from the X server. It
// is a no-op after the first call, and skips the X requests if the
// connection was already lost.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.lost.Load() {
		return
	}
	if c.wake != 0 {
		xproto.DestroyWindow(c.xc, c.wake)
	}
	c.xc.Close()
}

// markLost records that xgb has shut the connection down on its own.
func (c *Connection) markLost() {
	c.lost.Store(true)
}


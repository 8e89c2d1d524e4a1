package x11

import (
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/pkg/errors"
)

// WindowState is the geometry and map state of a window.
type WindowState struct {
	X      int
	Y      int
	Width  int
	Height int
	Mapped bool
}

// Children returns the direct children of a window in stacking order.
func (c *Connection) Children(windowID xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query tree of window %d", windowID)
	}
	return tree.Children, nil
}

// GetWindowState returns the window's map state and its geometry relative to
// its parent. For children of the root this is the absolute position.
func (c *Connection) GetWindowState(windowID xproto.Window) (WindowState, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return WindowState{}, errors.Wrapf(err, "failed to get attributes of window %d", windowID)
	}
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return WindowState{}, errors.Wrapf(err, "failed to get geometry of window %d", windowID)
	}

	return WindowState{
		X:      int(geom.X),
		Y:      int(geom.Y),
		Width:  int(geom.Width),
		Height: int(geom.Height),
		Mapped: attrs.MapState != xproto.MapStateUnmapped,
	}, nil
}

// ClientWindow finds the window below windowID that carries WM_STATE, i.e.
// the application window inside any window manager frames. It returns
// windowID when windowID has WM_STATE itself or when no child does.
func (c *Connection) ClientWindow(windowID xproto.Window) xproto.Window {
	if c.hasWMState(windowID) {
		return windowID
	}
	if found, ok := c.findClientBelow(windowID); ok {
		return found
	}
	return windowID
}

// findClientBelow searches breadth-first, checking every child of a level
// before descending.
func (c *Connection) findClientBelow(windowID xproto.Window) (xproto.Window, bool) {
	children, err := c.Children(windowID)
	if err != nil {
		return 0, false
	}
	for _, child := range children {
		if c.hasWMState(child) {
			return child, true
		}
	}
	for _, child := range children {
		if found, ok := c.findClientBelow(child); ok {
			return found, true
		}
	}
	return 0, false
}

func (c *Connection) hasWMState(windowID xproto.Window) bool {
	reply, err := xprop.GetProperty(c.XUtil, windowID, "WM_STATE")
	return err == nil && reply != nil && reply.Format != 0
}

// WindowTypes returns the _NET_WM_WINDOW_TYPE names of a window in
// preference order.
func (c *Connection) WindowTypes(windowID xproto.Window) ([]string, error) {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get window type of window %d", windowID)
	}
	return types, nil
}

// HasNormalHints reports whether the window sets WM_NORMAL_HINTS.
func (c *Connection) HasNormalHints(windowID xproto.Window) bool {
	_, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	return err == nil
}

// SelectShapeInput turns ShapeNotify events for a window on or off.
func (c *Connection) SelectShapeInput(windowID xproto.Window, enable bool) error {
	if err := shape.SelectInputChecked(c.XUtil.Conn(), windowID, enable).Check(); err != nil {
		return errors.Wrapf(err, "failed to select shape input on window %d", windowID)
	}
	return nil
}

// BoundingShape returns the rectangles of a window's bounding region,
// relative to the window origin.
func (c *Connection) BoundingShape(windowID xproto.Window) ([]xproto.Rectangle, error) {
	reply, err := shape.GetRectangles(c.XUtil.Conn(), windowID, shape.SkBounding).Reply()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get shape rectangles of window %d", windowID)
	}
	return reply.Rectangles, nil
}

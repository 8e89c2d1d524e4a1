package seamless

import "github.com/1broseidon/seamless/internal/platform"

// RebuildWindowTree drops every tracked window and walks the root again.
// It always marks the registry changed.
func (t *Tracker) RebuildWindowTree() {
	t.freeWindowTree()
	t.addClients(t.ws.Root())
	t.changed = true
	t.log.Debug().Int("windows", t.windows.Len()).Msg("window tree rebuilt")
}

// addClients offers every child of root to addClientWindow.
func (t *Tracker) addClients(root platform.WindowID) {
	children, err := t.ws.QueryTree(root)
	if err != nil {
		t.log.Warn().Err(err).Uint32("root", uint32(root)).Msg("failed to list root children")
		return
	}
	for _, child := range children {
		t.addClientWindow(child)
	}
}

// addClientWindow tracks id if it is a mapped application top-level. The
// window type and size hints are read from the client window inside any
// frame; geometry and shape come from id itself.
func (t *Tracker) addClientWindow(id platform.WindowID) bool {
	client := t.ws.ClientWindow(id)
	l := t.log.With().Uint32("window", uint32(id)).Uint32("client", uint32(client)).Logger()

	if t.isVirtualRoot(client) {
		l.Debug().Msg("skipping desktop window")
		return false
	}
	attrs, err := t.ws.Attributes(id)
	if err != nil {
		l.Debug().Err(err).Msg("skipping window without attributes")
		return false
	}
	if !attrs.Mapped {
		return false
	}
	if !t.ws.HasNormalHints(client) {
		l.Debug().Msg("skipping window without size hints")
		return false
	}

	info := &WindowInfo{Handle: id}
	info.setBounds(attrs.Bounds)
	if t.supportsShape {
		if err := t.ws.SelectShapeEvents(id, true); err != nil {
			l.Debug().Err(err).Msg("failed to select shape events")
		}
		info.ShapeRegions, info.HasShape = t.queryShape(id, attrs.Bounds)
	}

	if !t.windows.Add(info) {
		return false
	}
	l.Debug().
		Int("x", info.X).Int("y", info.Y).
		Int("width", info.Width).Int("height", info.Height).
		Bool("shaped", info.HasShape).
		Msg("tracking window")
	return true
}

// isVirtualRoot reports whether the first window type of id is the desktop
// type, as set by file managers drawing the desktop background.
func (t *Tracker) isVirtualRoot(id platform.WindowID) bool {
	types, err := t.ws.WindowTypes(id)
	if err != nil || len(types) == 0 {
		return false
	}
	return types[0] == platform.WindowTypeDesktop
}

// freeWindowTree empties the registry, releasing every record.
func (t *Tracker) freeWindowTree() {
	t.windows.RemoveAll(t.freeWindow)
}

// freeWindow unsubscribes shape events for a detached record and drops its
// shape buffer.
func (t *Tracker) freeWindow(info *WindowInfo) {
	if t.supportsShape {
		if err := t.ws.SelectShapeEvents(info.Handle, false); err != nil {
			t.log.Debug().Err(err).Uint32("window", uint32(info.Handle)).Msg("failed to deselect shape events")
		}
	}
	if !info.release() {
		t.log.Warn().Uint32("window", uint32(info.Handle)).Msg("window record released twice")
	}
}

package seamless

import "github.com/1broseidon/seamless/internal/platform"

// WindowInfo is the tracked geometry and shape of one top-level window.
type WindowInfo struct {
	Handle platform.WindowID
	// HasShape is false when the visible area is exactly the bounding box.
	HasShape bool
	X        int
	Y        int
	Width    int
	Height   int
	// ShapeRegions are relative to (X, Y) and only meaningful when HasShape
	// is set. The slice is replaced as a whole, never edited in place.
	ShapeRegions []platform.Rect

	released bool
}

// Bounds returns the bounding box in root coordinates.
func (w *WindowInfo) Bounds() platform.Rect {
	return platform.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

func (w *WindowInfo) setBounds(r platform.Rect) {
	w.X, w.Y, w.Width, w.Height = r.X, r.Y, r.Width, r.Height
}

// replaceShape swaps in a freshly queried region list.
func (w *WindowInfo) replaceShape(regions []platform.Rect) {
	w.ShapeRegions = regions
}

// release drops the shape buffer. It reports false if the record had
// already been released.
func (w *WindowInfo) release() bool {
	if w.released {
		return false
	}
	w.released = true
	w.ShapeRegions = nil
	return true
}

// Registry is the set of tracked windows keyed by handle. Iteration follows
// insertion order. A Registry is not safe for concurrent use.
type Registry struct {
	byID  map[platform.WindowID]*WindowInfo
	order []*WindowInfo
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[platform.WindowID]*WindowInfo)}
}

// Add inserts info. It returns false and leaves the registry unchanged if
// the handle is already present.
func (r *Registry) Add(info *WindowInfo) bool {
	if _, ok := r.byID[info.Handle]; ok {
		return false
	}
	r.byID[info.Handle] = info
	r.order = append(r.order, info)
	return true
}

// Find returns the record for id.
func (r *Registry) Find(id platform.WindowID) (*WindowInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// Remove detaches the record for id and hands it to the caller.
func (r *Registry) Remove(id platform.WindowID) (*WindowInfo, bool) {
	info, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	delete(r.byID, id)
	for i, w := range r.order {
		if w == info {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return info, true
}

// ForEach calls fn for every record in insertion order, stopping at the
// first error. fn must not add or remove records.
func (r *Registry) ForEach(fn func(*WindowInfo) error) error {
	for _, w := range r.order {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAll detaches every record, passing each to cleanup, and leaves the
// registry empty.
func (r *Registry) RemoveAll(cleanup func(*WindowInfo)) {
	detached := r.order
	r.order = nil
	r.byID = make(map[platform.WindowID]*WindowInfo)
	for _, w := range detached {
		if cleanup != nil {
			cleanup(w)
		}
	}
}

// Len returns the number of tracked windows.
func (r *Registry) Len() int {
	return len(r.order)
}

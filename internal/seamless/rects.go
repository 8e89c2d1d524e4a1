package seamless

import (
	"github.com/pkg/errors"

	"github.com/1broseidon/seamless/internal/platform"
)

// buildRects flattens the registry into absolute rectangles: the bounding
// box of every unshaped window, and each shape region of shaped windows
// offset by the window origin. limit > 0 caps the list size.
func buildRects(reg *Registry, reserve, limit int) ([]platform.Extent, error) {
	if limit > 0 && reserve > limit {
		reserve = limit
	}
	rects := make([]platform.Extent, 0, reserve)

	err := reg.ForEach(func(w *WindowInfo) error {
		n := 1
		if w.HasShape {
			n = len(w.ShapeRegions)
		}
		if limit > 0 && len(rects)+n > limit {
			return errors.Wrapf(ErrTooManyRects, "window %d needs %d more, limit %d", w.Handle, len(rects)+n-limit, limit)
		}

		if !w.HasShape {
			rects = append(rects, w.Bounds().Offset(0, 0))
			return nil
		}
		for _, r := range w.ShapeRegions {
			rects = append(rects, r.Offset(w.X, w.Y))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rects, nil
}

// updateRects rebuilds the published list. On failure the previous list
// is kept as is.
func (t *Tracker) updateRects() error {
	rects, err := buildRects(t.windows, 2*len(t.rects), t.maxRects)
	if err != nil {
		return err
	}
	t.rects = rects
	return nil
}

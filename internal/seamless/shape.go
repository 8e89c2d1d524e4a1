package seamless

import "github.com/1broseidon/seamless/internal/platform"

// queryShape fetches the bounding region of a window and decides whether it
// is worth tracking. A single region covering exactly the bounding box
// counts as no shape. Query failures degrade to no shape.
func (t *Tracker) queryShape(id platform.WindowID, bounds platform.Rect) ([]platform.Rect, bool) {
	regions := t.shapeRegions(id)
	if !isShaped(regions, bounds) {
		return nil, false
	}
	return regions, true
}

// shapeRegions returns the current bounding region of a window, or nil if
// it cannot be read.
func (t *Tracker) shapeRegions(id platform.WindowID) []platform.Rect {
	regions, err := t.ws.ShapeRectangles(id)
	if err != nil {
		t.log.Debug().Err(err).Uint32("window", uint32(id)).Msg("shape query failed")
		return nil
	}
	return regions
}

func isShaped(regions []platform.Rect, bounds platform.Rect) bool {
	switch len(regions) {
	case 0:
		return false
	case 1:
		return regions[0] != platform.Rect{Width: bounds.Width, Height: bounds.Height}
	default:
		return true
	}
}

package daemon

import (
	"sync"
	"time"

	"github.com/1broseidon/seamless/internal/platform"
	"github.com/1broseidon/seamless/internal/seamless"
)

// WindowSummary is the published view of one tracked window.
type WindowSummary struct {
	ID      uint32 `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Shaped  bool   `json:"shaped"`
	Regions int    `json:"regions"`
}

// Snapshot is a copy of the tracker output that other goroutines may read.
type Snapshot struct {
	InstanceID string            `json:"instance_id"`
	Enabled    bool              `json:"enabled"`
	Version    uint64            `json:"version"`
	StartedAt  time.Time         `json:"started_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Rects      []platform.Extent `json:"rects"`
	Windows    []WindowSummary   `json:"windows"`
}

// Store holds the latest Snapshot. Publish is called from the tracking
// goroutine; Current from anywhere.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewStore returns an empty store stamped with the daemon instance id.
func NewStore(instanceID string) *Store {
	s := &Store{now: time.Now}
	s.snap = Snapshot{
		InstanceID: instanceID,
		StartedAt:  s.now(),
		Rects:      []platform.Extent{},
		Windows:    []WindowSummary{},
	}
	return s
}

// Publish records a fresh rectangle list and window set and bumps the
// version.
func (s *Store) Publish(rects []platform.Extent, windows []seamless.WindowInfo) {
	summaries := make([]WindowSummary, 0, len(windows))
	for _, w := range windows {
		regions := 0
		if w.HasShape {
			regions = len(w.ShapeRegions)
		}
		summaries = append(summaries, WindowSummary{
			ID:      uint32(w.Handle),
			X:       w.X,
			Y:       w.Y,
			Width:   w.Width,
			Height:  w.Height,
			Shaped:  w.HasShape,
			Regions: regions,
		})
	}
	copied := append(make([]platform.Extent, 0, len(rects)), rects...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Version++
	s.snap.UpdatedAt = s.now()
	s.snap.Rects = copied
	s.snap.Windows = summaries
}

// SetEnabled records whether tracking is running.
func (s *Store) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Enabled = enabled
}

// Current returns the latest snapshot. Its slices are never modified after
// publication, so the caller may keep them.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

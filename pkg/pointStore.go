package actar

import (
	"fmt"
	"math"

	"golang.org/x/exp/slices"
)

// PointStore owns the hits of the event being processed and the
// permutation that puts them in canonical (x, y, z) order. A store is reused
// from one event to the next; every Load replaces its content.
type PointStore struct {
	eventID int64
	hits    []Hit
	order   []HitIndex
}

func NewPointStore() *PointStore {
	return &PointStore{eventID: -1}
}

// Load replaces the stored batch and sorts it. Events with non-finite
// coordinates are rejected and leave the store empty.
func (s *PointStore) Load(batch EventBatch) error {
	s.Reset()
	for i, hit := range batch.Hits {
		if axis := nonFiniteAxis(hit); axis != "" {
			return &ErrNonFiniteHit{EventID: batch.EventID, Index: i, Axis: axis}
		}
	}

	s.eventID = batch.EventID
	s.hits = make([]Hit, len(batch.Hits))
	copy(s.hits, batch.Hits)
	s.order = make([]HitIndex, len(s.hits))
	for i := range s.order {
		s.order[i] = HitIndex(i)
	}
	slices.SortFunc(s.order, func(a, b HitIndex) int {
		return compareHits(s.hits[a], s.hits[b])
	})

	if configuration.Verbosity > 2 {
		for position, idx := range s.order {
			hit := s.hits[idx]
			message := fmt.Sprintf("Event %d: sorted %d -> hit %d (%g, %g, %g)", s.eventID, position, idx, hit.X, hit.Y, hit.Z)
			logger.Info(message, "pointStore")
		}
	}
	return nil
}

// Reset drops the current batch. Slices returned before the reset are not
// reused by the store, but indices into them no longer refer to its content.
func (s *PointStore) Reset() {
	s.eventID = -1
	s.hits = nil
	s.order = nil
}

// CanonicalOrder returns the hit indices sorted by x, then y, then z.
// Hits with identical coordinates are adjacent.
func (s *PointStore) CanonicalOrder() []HitIndex {
	return s.order
}

func (s *PointStore) Hits() []Hit {
	return s.hits
}

func (s *PointStore) Hit(i HitIndex) Hit {
	return s.hits[i]
}

func (s *PointStore) Len() int {
	return len(s.hits)
}

func (s *PointStore) EventID() int64 {
	return s.eventID
}

// CellID returns the voxel of hit i on the given grid. Only used for
// diagnostics; chain building works on coordinates.
func (s *PointStore) CellID(i HitIndex, geometry Geometry) (int, int, int) {
	hit := s.hits[i]
	ix := int(math.Floor(hit.X / geometry.PitchX))
	iy := int(math.Floor(hit.Y / geometry.PitchY))
	iz := int(math.Floor(hit.Z / geometry.PitchZ))
	return ix, iy, iz
}

// compareHits orders by x, then y, then z. Coordinates are compared exactly.
func compareHits(a, b Hit) int {
	if a.X != b.X {
		if a.X < b.X {
			return -1
		}
		return 1
	}
	if a.Y != b.Y {
		if a.Y < b.Y {
			return -1
		}
		return 1
	}
	if a.Z != b.Z {
		if a.Z < b.Z {
			return -1
		}
		return 1
	}
	return 0
}

func samePosition(a, b Hit) bool {
	return compareHits(a, b) == 0
}

func nonFiniteAxis(hit Hit) string {
	switch {
	case math.IsNaN(hit.X) || math.IsInf(hit.X, 0):
		return "x"
	case math.IsNaN(hit.Y) || math.IsInf(hit.Y, 0):
		return "y"
	case math.IsNaN(hit.Z) || math.IsInf(hit.Z, 0):
		return "z"
	}
	return ""
}

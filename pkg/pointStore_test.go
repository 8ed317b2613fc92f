package actar

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitAt(x, y, z float64) Hit {
	return Hit{X: x, Y: y, Z: z, Edep: 1}
}

func TestCanonicalOrderSortsXThenYThenZ(t *testing.T) {
	hits := []Hit{
		hitAt(0.06, 0, 0),
		hitAt(0, 0.05, 0),
		hitAt(0, 0, 0.03),
		hitAt(0, 0, 0),
		hitAt(0.03, -0.05, 0.09),
	}
	store := NewPointStore()
	require.NoError(t, store.Load(EventBatch{EventID: 7, Hits: hits}))

	assert.Equal(t, []HitIndex{3, 2, 1, 4, 0}, store.CanonicalOrder())
	assert.Equal(t, int64(7), store.EventID())
	assert.Equal(t, 5, store.Len())
}

func TestCanonicalOrderIsLexicographic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	hits := make([]Hit, 500)
	for i := range hits {
		// coarse grid so that ties on x and y are frequent
		hits[i] = hitAt(float64(rng.Intn(5))*DefaultPitchX, float64(rng.Intn(5))*DefaultPitchY, float64(rng.Intn(5))*DefaultPitchZ)
	}
	store := NewPointStore()
	require.NoError(t, store.Load(EventBatch{EventID: 1, Hits: hits}))

	order := store.CanonicalOrder()
	require.Len(t, order, len(hits))
	seen := make(map[HitIndex]bool)
	for i, idx := range order {
		seen[idx] = true
		if i == 0 {
			continue
		}
		assert.LessOrEqual(t, compareHits(store.Hit(order[i-1]), store.Hit(idx)), 0, "position %d", i)
	}
	assert.Len(t, seen, len(hits))
}

func TestDuplicatesAreContiguous(t *testing.T) {
	hits := []Hit{
		hitAt(0.03, 0, 0),
		hitAt(0, 0, 0),
		hitAt(0.06, 0, 0),
		hitAt(0.03, 0, 0),
	}
	store := NewPointStore()
	require.NoError(t, store.Load(EventBatch{Hits: hits}))

	order := store.CanonicalOrder()
	assert.Equal(t, HitIndex(1), order[0])
	assert.ElementsMatch(t, []HitIndex{0, 3}, order[1:3])
	assert.Equal(t, HitIndex(2), order[3])
}

func TestLoadReplacesPreviousBatch(t *testing.T) {
	store := NewPointStore()
	require.NoError(t, store.Load(EventBatch{EventID: 1, Hits: []Hit{hitAt(1, 1, 1), hitAt(0, 0, 0), hitAt(2, 2, 2)}}))
	first := store.Hits()

	require.NoError(t, store.Load(EventBatch{EventID: 2, Hits: []Hit{hitAt(5, 5, 5)}}))
	assert.Equal(t, int64(2), store.EventID())
	assert.Equal(t, []HitIndex{0}, store.CanonicalOrder())
	// the slice handed out for the first event is left untouched
	assert.Equal(t, hitAt(1, 1, 1), first[0])
}

func TestLoadRejectsNonFiniteCoordinates(t *testing.T) {
	store := NewPointStore()
	err := store.Load(EventBatch{EventID: 3, Hits: []Hit{hitAt(0, 0, 0), hitAt(0, math.NaN(), 0)}})

	var nonFinite *ErrNonFiniteHit
	require.ErrorAs(t, err, &nonFinite)
	assert.Equal(t, 1, nonFinite.Index)
	assert.Equal(t, "y", nonFinite.Axis)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.CanonicalOrder())

	err = store.Load(EventBatch{EventID: 4, Hits: []Hit{hitAt(0, 0, math.Inf(-1))}})
	require.ErrorAs(t, err, &nonFinite)
	assert.Equal(t, "z", nonFinite.Axis)
}

func TestResetEmptiesStore(t *testing.T) {
	store := NewPointStore()
	require.NoError(t, store.Load(EventBatch{EventID: 9, Hits: []Hit{hitAt(0, 0, 0)}}))
	store.Reset()
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int64(-1), store.EventID())
}

func TestCellID(t *testing.T) {
	store := NewPointStore()
	require.NoError(t, store.Load(EventBatch{Hits: []Hit{hitAt(0.065, -0.01, 0.31)}}))

	ix, iy, iz := store.CellID(0, DefaultGeometry())
	assert.Equal(t, 2, ix)
	assert.Equal(t, -1, iy)
	assert.Equal(t, 10, iz)
}

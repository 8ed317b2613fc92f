package actar

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultBuilder() *ChainBuilder {
	return NewChainBuilder(DefaultGeometry(), DefaultMinPointsPerEvent, 0)
}

// buildChains loads hits into a fresh store and runs the default builder.
func buildChains(t *testing.T, hits []Hit) ([]Chain, BuildStats) {
	t.Helper()
	store := NewPointStore()
	require.NoError(t, store.Load(EventBatch{EventID: 1, Hits: hits}))
	return defaultBuilder().BuildWithStats(store.CanonicalOrder(), store.Hits())
}

func TestStraightLineFormsOneChain(t *testing.T) {
	hits := []Hit{
		hitAt(0.06, 0.10, 0.06),
		hitAt(0, 0, 0),
		hitAt(0.03, 0.05, 0.03),
	}
	chains, stats := buildChains(t, hits)

	want := []Chain{{ID: 0, Members: []HitIndex{1, 2, 0}}}
	if diff := cmp.Diff(want, chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, stats.Chains)
	assert.Equal(t, NotRejected, stats.Rejected)
}

func TestDisjointPairsFormTwoChains(t *testing.T) {
	hits := []Hit{
		hitAt(1, 1, 1),
		hitAt(0, 0, 0),
		hitAt(1.03, 1, 1),
		hitAt(0.03, 0, 0),
	}
	chains, _ := buildChains(t, hits)

	want := []Chain{
		{ID: 0, Members: []HitIndex{1, 3}},
		{ID: 1, Members: []HitIndex{0, 2}},
	}
	if diff := cmp.Diff(want, chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
}

func TestTooFewPointsGivesNoChains(t *testing.T) {
	chains, stats := buildChains(t, []Hit{hitAt(0, 0, 0), hitAt(0.03, 0, 0)})
	assert.Empty(t, chains)
	assert.Equal(t, TooFewPoints, stats.Rejected)
	assert.Equal(t, 2, stats.Points)

	chains, stats = buildChains(t, nil)
	assert.Empty(t, chains)
	assert.Equal(t, TooFewPoints, stats.Rejected)
}

func TestBelowMinimumForAnyThreshold(t *testing.T) {
	for minPoints := 1; minPoints <= 6; minPoints++ {
		builder := NewChainBuilder(DefaultGeometry(), minPoints, 0)
		for n := 0; n < minPoints; n++ {
			hits := make([]Hit, n)
			order := make([]HitIndex, n)
			for i := range hits {
				hits[i] = hitAt(float64(i)*DefaultPitchX, 0, 0)
				order[i] = HitIndex(i)
			}
			assert.Empty(t, builder.Build(order, hits), "min %d, n %d", minPoints, n)
		}
	}
}

func TestTooManyPointsGivesNoChains(t *testing.T) {
	builder := NewChainBuilder(DefaultGeometry(), 1, 3)
	hits := []Hit{hitAt(0, 0, 0), hitAt(0.03, 0, 0), hitAt(0.06, 0, 0), hitAt(0.09, 0, 0)}
	order := []HitIndex{0, 1, 2, 3}

	chains, stats := builder.BuildWithStats(order, hits)
	assert.Empty(t, chains)
	assert.Equal(t, TooManyPoints, stats.Rejected)

	chains = builder.Build(order[:3], hits)
	require.Len(t, chains, 1)
	assert.Equal(t, 3, chains[0].Len())
}

func TestHitJoinsEveryNeighbouringChain(t *testing.T) {
	hits := []Hit{
		hitAt(0, 0, 0),       // seeds chain 0
		hitAt(0, 0.10, 0),    // too far in y, seeds chain 1
		hitAt(0.03, 0.05, 0), // neighbours both seeds
		hitAt(0.06, 0.05, 0), // neighbours the shared last member
		hitAt(0.5, 0, 0),     // isolated
	}
	chains, stats := buildChains(t, hits)

	want := []Chain{
		{ID: 0, Members: []HitIndex{0, 2, 3}},
		{ID: 1, Members: []HitIndex{1, 2, 3}},
		{ID: 2, Members: []HitIndex{4}},
	}
	if diff := cmp.Diff(want, chains); diff != "" {
		t.Errorf("chains mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, stats.SharedAttachments)
}

func TestSameChainsRegardlessOfInputOrder(t *testing.T) {
	hits := []Hit{
		hitAt(0, 0, 0),
		hitAt(0, 0.10, 0),
		hitAt(0.03, 0.05, 0),
		hitAt(0.06, 0.05, 0),
		hitAt(0.5, 0, 0),
	}
	reference, _ := buildChains(t, hits)
	positions := func(chains []Chain, hits []Hit) [][]Hit {
		var out [][]Hit
		for _, chain := range chains {
			var members []Hit
			for _, idx := range chain.Members {
				members = append(members, hits[idx])
			}
			out = append(out, members)
		}
		return out
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		shuffled := append([]Hit(nil), hits...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		chains, _ := buildChains(t, shuffled)
		if diff := cmp.Diff(positions(reference, hits), positions(chains, shuffled)); diff != "" {
			t.Fatalf("chains depend on input order (-want +got):\n%s", diff)
		}
	}
}

func TestDuplicatePositionIsSkipped(t *testing.T) {
	first := hitAt(0, 0, 0)
	second := hitAt(0, 0, 0)
	second.Edep = 5
	hits := []Hit{first, hitAt(0.03, 0, 0), second}

	chains, stats := buildChains(t, hits)
	require.Len(t, chains, 1)
	assert.Equal(t, 1, stats.Duplicates)

	members := chains[0].Members
	require.Len(t, members, 2)
	assert.Contains(t, []HitIndex{0, 2}, members[0])
	assert.Equal(t, HitIndex(1), members[1])
}

func TestDuplicatesNeverSeedChains(t *testing.T) {
	hits := []Hit{hitAt(1, 1, 1), hitAt(1, 1, 1), hitAt(1, 1, 1), hitAt(5, 5, 5)}
	chains, stats := buildChains(t, hits)

	require.Len(t, chains, 2)
	assert.Equal(t, 2, stats.Duplicates)
	for _, chain := range chains {
		assert.Equal(t, 1, chain.Len())
	}
}

func TestIsNeighbour(t *testing.T) {
	builder := defaultBuilder()
	origin := hitAt(0, 0, 0)

	cases := []struct {
		name string
		hit  Hit
		want bool
	}{
		{"same position", hitAt(0, 0, 0), true},
		{"one pitch in x", hitAt(0.03, 0, 0), true},
		{"diagonal", hitAt(0.03, 0.05, 0.03), true},
		{"inside one and a half pitches", hitAt(0.044, -0.074, 0.044), true},
		{"two pitches in x", hitAt(0.06, 0, 0), false},
		{"two pitches in y", hitAt(0, 0.10, 0), false},
		{"two pitches in z", hitAt(0, 0, -0.06), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, builder.IsNeighbour(origin, tc.hit))
		})
	}
}

func TestIsNeighbourIsSymmetric(t *testing.T) {
	builder := defaultBuilder()
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		a := hitAt(rng.Float64()*0.2, rng.Float64()*0.2, rng.Float64()*0.2)
		b := hitAt(rng.Float64()*0.2, rng.Float64()*0.2, rng.Float64()*0.2)
		require.Equal(t, builder.IsNeighbour(a, b), builder.IsNeighbour(b, a))
	}
}

func TestChainsAreNeverEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	hits := make([]Hit, 300)
	for i := range hits {
		hits[i] = hitAt(float64(rng.Intn(20))*DefaultPitchX, float64(rng.Intn(20))*DefaultPitchY, float64(rng.Intn(4))*DefaultPitchZ)
	}
	chains, stats := buildChains(t, hits)

	require.NotEmpty(t, chains)
	assert.Equal(t, len(chains), stats.Chains)
	for i, chain := range chains {
		assert.Equal(t, i, chain.ID)
		assert.NotEmpty(t, chain.Members)
	}
}

func TestRejectReasonString(t *testing.T) {
	assert.Equal(t, "none", NotRejected.String())
	assert.Equal(t, "too_few_points", TooFewPoints.String())
	assert.Equal(t, "too_many_points", TooManyPoints.String())
	assert.Equal(t, "unknown", RejectReason(42).String())
}

package actar

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ChainSummary condenses a chain for the output file: deposited energy,
// energy-weighted centroid and bounding box.
type ChainSummary struct {
	EventID int64
	ChainID int
	NHits   int
	Edep    float64
	X, Y, Z float64
	Min     [3]float64
	Max     [3]float64
}

func SummarizeChain(eventID int64, chain Chain, hits []Hit) ChainSummary {
	n := chain.Len()
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	edeps := make([]float64, n)
	for i, idx := range chain.Members {
		hit := hits[idx]
		xs[i], ys[i], zs[i] = hit.X, hit.Y, hit.Z
		edeps[i] = hit.Edep
	}

	summary := ChainSummary{
		EventID: eventID,
		ChainID: chain.ID,
		NHits:   n,
		Edep:    floats.Sum(edeps),
		Min:     [3]float64{floats.Min(xs), floats.Min(ys), floats.Min(zs)},
		Max:     [3]float64{floats.Max(xs), floats.Max(ys), floats.Max(zs)},
	}

	// Without deposited energy the centroid falls back to the plain mean.
	weights := edeps
	if summary.Edep <= 0 {
		weights = nil
	}
	summary.X = stat.Mean(xs, weights)
	summary.Y = stat.Mean(ys, weights)
	summary.Z = stat.Mean(zs, weights)
	return summary
}

func SummarizeChains(eventID int64, chains []Chain, hits []Hit) []ChainSummary {
	summaries := make([]ChainSummary, len(chains))
	for i, chain := range chains {
		summaries[i] = SummarizeChain(eventID, chain, hits)
	}
	return summaries
}

package actar

import (
	"fmt"
	"math"
)

// Chain is a group of hits connected by successive neighbour tests.
// Members are kept in attachment order and a chain is never empty.
type Chain struct {
	ID      int
	Members []HitIndex
}

// Last returns the most recently attached member.
func (c *Chain) Last() HitIndex {
	return c.Members[len(c.Members)-1]
}

func (c *Chain) Len() int {
	return len(c.Members)
}

type RejectReason int

const (
	NotRejected RejectReason = iota
	TooFewPoints
	TooManyPoints
)

func (r RejectReason) String() string {
	switch r {
	case NotRejected:
		return "none"
	case TooFewPoints:
		return "too_few_points"
	case TooManyPoints:
		return "too_many_points"
	default:
		return "unknown"
	}
}

// BuildStats describes one pass of the chain builder.
type BuildStats struct {
	Points     int
	Duplicates int
	Chains     int
	// SharedAttachments counts the extra chains a hit joined beyond the
	// first one.
	SharedAttachments int
	Rejected          RejectReason
}

type ChainBuilder struct {
	Geometry  Geometry
	MinPoints int
	// MaxPoints disables the upper limit when zero.
	MaxPoints int
}

func NewChainBuilder(geometry Geometry, minPoints int, maxPoints int) *ChainBuilder {
	return &ChainBuilder{
		Geometry:  geometry,
		MinPoints: minPoints,
		MaxPoints: maxPoints,
	}
}

// IsNeighbour reports whether two hits lie within one and a half pitches of
// each other along every axis.
func (b *ChainBuilder) IsNeighbour(p, q Hit) bool {
	return math.Abs(p.X-q.X) <= 1.5*b.Geometry.PitchX &&
		math.Abs(p.Y-q.Y) <= 1.5*b.Geometry.PitchY &&
		math.Abs(p.Z-q.Z) <= 1.5*b.Geometry.PitchZ
}

func (b *ChainBuilder) Build(order []HitIndex, hits []Hit) []Chain {
	chains, _ := b.BuildWithStats(order, hits)
	return chains
}

// BuildWithStats walks the hits in canonical order once. A hit equal in
// position to the previous one is dropped. Any other hit is compared with
// the last member of every chain, newest chain first, and appended to all
// chains it neighbours; if it neighbours none it seeds a new chain.
func (b *ChainBuilder) BuildWithStats(order []HitIndex, hits []Hit) ([]Chain, BuildStats) {
	stats := BuildStats{Points: len(order)}
	if len(order) < b.MinPoints {
		stats.Rejected = TooFewPoints
		return nil, stats
	}
	if b.MaxPoints > 0 && len(order) > b.MaxPoints {
		stats.Rejected = TooManyPoints
		return nil, stats
	}
	if len(order) == 0 {
		return nil, stats
	}

	chains := []Chain{newChain(0, order[0])}
	for i := 1; i < len(order); i++ {
		idx := order[i]
		hit := hits[idx]
		if samePosition(hit, hits[order[i-1]]) {
			stats.Duplicates++
			if configuration.Verbosity > 2 {
				message := fmt.Sprintf("Skipping hit %d, same position as hit %d", idx, order[i-1])
				logger.Info(message, "chains")
			}
			continue
		}

		attached := 0
		for c := len(chains) - 1; c >= 0; c-- {
			if b.IsNeighbour(hits[chains[c].Last()], hit) {
				chains[c].Members = append(chains[c].Members, idx)
				attached++
			}
		}
		if attached == 0 {
			chains = append(chains, newChain(len(chains), idx))
			continue
		}
		stats.SharedAttachments += attached - 1
	}

	stats.Chains = len(chains)
	return chains, stats
}

func newChain(id int, seed HitIndex) Chain {
	return Chain{ID: id, Members: []HitIndex{seed}}
}

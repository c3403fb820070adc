package game

import "github.com/vovakirdan/handflap/internal/core"

// Snapshot is a read-only copy of everything the renderer draws.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Score     int
	AvatarX   float64
	AvatarY   float64
	Velocity  float64
	AvatarBox core.Rect
	Smoothed  float64
	Pairs     []Pair // oldest first
}

// Snapshot returns the current game snapshot. The pair slice is a copy.
func (g *Game) Snapshot() Snapshot {
	pairs := make([]Pair, len(g.pairs))
	copy(pairs, g.pairs)

	return Snapshot{
		Tick:      g.tick,
		Phase:     g.phase,
		Score:     g.score,
		AvatarX:   g.avatar.X,
		AvatarY:   g.avatar.Y,
		Velocity:  g.avatar.Velocity,
		AvatarBox: g.avatar.Rect(),
		Smoothed:  g.filter.Value(),
		Pairs:     pairs,
	}
}

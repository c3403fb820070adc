package game

import "github.com/vovakirdan/handflap/internal/core"

// firstHit returns the index of the first pair whose top or bottom pipe
// intersects box, or -1. The scan stops at the first hit.
func firstHit(box core.Rect, pairs []Pair) int {
	for i, p := range pairs {
		if box.Intersects(p.Top) || box.Intersects(p.Bottom) {
			return i
		}
	}
	return -1
}

package game

import (
	"time"

	"golang.org/x/exp/rand"
)

// Random supplies uniformly distributed integers in [0, n).
type Random interface {
	Intn(n int) int
}

// NewRandom returns a seeded generator. A zero seed seeds from the clock.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(uint64(seed)))
}

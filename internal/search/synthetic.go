package search

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Synthetic supplies placeholder values for metrics the search API does not
// provide. Growth and confidence produced here are not measurements.
type Synthetic interface {
	// Growth returns a growth string in the form "+N%" with N in [10, 60)
	Growth() string
	// Confidence returns a value in [0.6, 1.0)
	Confidence() float64
}

// RandomSynthetic is the default Synthetic, backed by a seeded PRNG
type RandomSynthetic struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSynthetic creates a RandomSynthetic. A zero seed uses the clock.
func NewRandomSynthetic(seed int64) *RandomSynthetic {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomSynthetic{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomSynthetic) Growth() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("+%d%%", r.rng.Intn(50)+10)
}

func (r *RandomSynthetic) Confidence() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()*0.4 + 0.6
}

// FixedSynthetic always returns the same values
type FixedSynthetic struct {
	GrowthValue     string
	ConfidenceValue float64
}

func (f FixedSynthetic) Growth() string {
	return f.GrowthValue
}

func (f FixedSynthetic) Confidence() float64 {
	return f.ConfidenceValue
}

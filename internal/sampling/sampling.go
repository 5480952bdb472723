// Package sampling holds the randomizing helpers used to build quiz rounds.
// Every function takes the generator explicitly so tests can seed it;
// a nil generator falls back to the process-wide source.
package sampling

import (
	"math/rand"
	"sync"
	"time"
)

// NewRand returns a generator seeded with seed, or with the current time when seed is 0.
// The returned generator is safe for concurrent use.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(&lockedSource{src: rand.NewSource(seed)})
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// Shuffle returns a uniformly shuffled copy of s. The input is left untouched.
func Shuffle[T any](r *rand.Rand, s []T) []T {
	shuffled := make([]T, len(s))
	copy(shuffled, s)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := Intn(r, i+1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// SampleDistinct draws up to count elements without replacement from the
// elements of pool for which exclude returns false. When fewer elements
// survive the filter, all of them are returned in random order.
func SampleDistinct[T any](r *rand.Rand, pool []T, count int, exclude func(T) bool) []T {
	if count <= 0 {
		return []T{}
	}

	filtered := make([]T, 0, len(pool))
	for _, x := range pool {
		if exclude != nil && exclude(x) {
			continue
		}
		filtered = append(filtered, x)
	}

	picked := make([]T, 0, min(count, len(filtered)))
	for len(picked) < count && len(filtered) > 0 {
		idx := Intn(r, len(filtered))
		picked = append(picked, filtered[idx])

		// Swap-remove; order of the remaining candidates does not matter.
		last := len(filtered) - 1
		filtered[idx] = filtered[last]
		filtered = filtered[:last]
	}

	return picked
}

// Intn returns a uniform int in [0, n) from r or the global source.
func Intn(r *rand.Rand, n int) int {
	if r == nil {
		return rand.Intn(n)
	}
	return r.Intn(n)
}

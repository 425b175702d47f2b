// internal/puzzle/rng.go
//
// Deterministic pseudo-random numbers for daily boards.
//
// Rand is mulberry32: a 32-bit state advanced by a fixed constant and mixed
// with multiply-xor-shift steps. All arithmetic is uint32 with wraparound, so
// the sequence for a given seed is bit-identical on every platform (and to
// the browser client, which runs the same function).

package puzzle

// Rand is a seeded mulberry32 generator. Not safe for concurrent use.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// Float64 returns the next value in [0, 1).
func (r *Rand) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// Intn returns floor(Float64() * n), a value in [0, n). n must be > 0.
func (r *Rand) Intn(n int) int {
	return int(r.Float64() * float64(n))
}

// Shuffle permutes s in place with Fisher–Yates, drawing one value from r
// per swap, walking from the end of the slice to the front.
func Shuffle[T any](s []T, r *Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

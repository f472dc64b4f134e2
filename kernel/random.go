package kernel

// defaultSeed replaces a zero seed, which would keep xorshift at zero forever.
const defaultSeed = 0x123456789abcdef0

// XorShift64 is a fast PRNG.
type XorShift64 struct {
	state uint64
}

// NewXorShift64 returns a generator seeded with seed. A zero seed is
// replaced by a fixed non-zero one.
func NewXorShift64(seed uint64) *XorShift64 {
	state := seed
	if state == 0 {
		state = defaultSeed
	}

	return &XorShift64{state: state}
}

// Next advances the state and returns the next 64-bit value.
func (rng *XorShift64) Next() uint64 {
	state := rng.state
	state ^= state >> 12
	state ^= state << 25
	state ^= state >> 27
	rng.state = state

	return state * 0x2545F4914F6CDD1D
}

// Random returns an N x N matrix of digits 0-9. The same seed always
// yields the same matrix.
func Random(n int, seed uint64) *Matrix {
	m := New(n)
	rng := NewXorShift64(seed)

	for i := range m.Data {
		m.Data[i] = int64(rng.Next() % 10)
	}

	return m
}

// SeedFor derives an independent seed for the idx-th matrix of a run.
func SeedFor(base uint64, idx int) uint64 {
	mixed := uint64(idx)
	seed := base ^ (mixed * 0x9E3779B97F4A7C15) ^ 0xD1B54A32D192ED03
	if seed == 0 {
		seed = defaultSeed
	}

	return seed
}

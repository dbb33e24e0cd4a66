package game

// Rand is the random source used to seed new rounds
type Rand interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// XorShift is a xorshift64 generator; small enough for microcontroller targets
type XorShift struct {
	state uint64
}

// NewXorShift seeds a generator; a zero seed is replaced since xorshift sticks at zero
func NewXorShift(seed uint64) *XorShift {
	if seed == 0 {
		seed = 1
	}
	return &XorShift{state: seed}
}

func (r *XorShift) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *XorShift) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

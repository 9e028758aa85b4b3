package prng

// Splittable deterministic random streams.
// A Key is an opaque immutable value; Split derives independent child
// keys without any shared or global state. Every sampling site must
// use its own child key and never reuse one across two draws.

const goldenGamma uint64 = 0x9e3779b97f4a7c15

// Key identifies one random stream. The zero value is a valid key.
type Key struct {
	hi uint64
	lo uint64
}

// NewKey derives a key from a 64 bit seed.
func NewKey(seed uint64) Key {
	return Key{
		hi: mix(seed),
		lo: mix(seed + goldenGamma),
	}
}

// SplitMix64 finalizer, same constants used for deterministic
// seed derivation elsewhere in the ecosystem.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Fold derives the i-th child key. Pure: the same (key, i) pair
// always yields the same child, and the parent is left untouched.
func (k Key) Fold(i uint64) Key {
	return Key{
		hi: mix(k.hi ^ (goldenGamma * (i + 1))),
		lo: mix(k.lo + goldenGamma*(i+1)),
	}
}

// Split derives n independent child keys.
func (k Key) Split(n int) []Key {
	children := make([]Key, n)
	for i := 0; i < n; i++ {
		children[i] = k.Fold(uint64(i))
	}
	return children
}

// Uint64 is the single draw of the stream. Consuming more than one
// value from the same key is a misuse; split first.
func (k Key) Uint64() uint64 {
	return mix(k.hi ^ mix(k.lo))
}

// Float64 draws a uniform value in [0, 1).
func (k Key) Float64() float64 {
	return float64(k.Uint64()>>11) / (1 << 53)
}

// Bernoulli draws a fair coin.
func (k Key) Bernoulli() bool {
	return k.Uint64()&1 == 1
}

// Uintn draws a uniform integer in [0, n). n must be positive.
func (k Key) Uintn(n int) int {
	return int(k.Uint64() % uint64(n))
}

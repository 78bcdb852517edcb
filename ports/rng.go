package ports

// NoiseSource supplies non-deterministic samples for offline formula search.
// *math/rand/v2.Rand satisfies it.
type NoiseSource interface {
	// Float64 returns a sample in [0,1)
	Float64() float64
}

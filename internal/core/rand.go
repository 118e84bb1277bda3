package core

// Rand is the random source consumed by the engine.
// *math/rand.Rand satisfies it; tests substitute a seeded source or a stub.
type Rand interface {
	// Intn returns a uniform value in [0, n). n must be positive.
	Intn(n int) int
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
}

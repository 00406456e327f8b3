package random

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/tabletoprandom/random Source

// Source is the randomness consumed by dice and decks.
// Every die or deck owns its Source so that seeding one never affects another.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int

	// Shuffle pseudo-randomizes the order of n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// Config for a random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// Rand is a seeded Source backed by math/rand
type Rand struct {
	seed   int64
	random *rand.Rand
}

// New creates a new random source
func New(cfg *Config) *Rand {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Rand{
		seed:   seed,
		random: rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with
func (r *Rand) Seed() int64 {
	return r.seed
}

// Intn returns a value in [0, n)
func (r *Rand) Intn(n int) int {
	return r.random.Intn(n)
}

// Shuffle randomizes the order of n elements
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.random.Shuffle(n, swap)
}

// Int63 returns a non-negative pseudo-random 63-bit integer.
// Used to derive seeds for child sources.
func (r *Rand) Int63() int64 {
	return r.random.Int63()
}

// Derive returns a new independent source seeded from this one.
// The derived seed is never zero so it is always honored by New.
func (r *Rand) Derive() *Rand {
	seed := r.Int63()
	for seed == 0 {
		seed = r.Int63()
	}
	return New(&Config{Seed: seed})
}

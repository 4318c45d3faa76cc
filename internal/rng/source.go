// Package rng provides injectable randomness for the selection engine.
//
// A Source hands out a fresh *rand.Rand per call, so one engine value can
// serve concurrent requests without sharing generator state.
package rng

import "math/rand"

// Source returns a new generator for a single engine call.
type Source func() *rand.Rand

// Seeded returns a Source whose generators all start from seed, making
// every call reproducible.
func Seeded(seed int64) Source {
	return func() *rand.Rand {
		return rand.New(rand.NewSource(seed))
	}
}

// Random returns a Source seeded from the process-wide generator.
func Random() Source {
	return func() *rand.Rand {
		return rand.New(rand.NewSource(rand.Int63()))
	}
}

// OrRandom returns s, or Random() when s is nil.
func OrRandom(s Source) Source {
	if s == nil {
		return Random()
	}
	return s
}

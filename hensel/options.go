// SPDX-License-Identifier: MIT

// Package hensel: functional options for digit-expansion codes.
//
// The only moving part an Expansion needs is the source of the free seed
// digits used by Hensel lifting. Options make that dependency explicit so
// inversion is reproducible under test.
package hensel

const (
	panicNilRandomSource = "hensel: WithRandomSource: source must not be nil"
	panicLiftingLimit    = "hensel: WithLiftingLimit: limit must be > 0"
)

// Option configures an Expansion.
type Option func(*options)

// options holds the resolved configuration. A nil src means "a fresh
// deterministic SeededSource(0) per inversion".
type options struct {
	src          RandomSource
	liftingLimit int // 0 ⇒ derived from the exponent
}

// WithRandomSource injects the source of seed digits for Hensel lifting.
// Panics on nil (programmer error).
func WithRandomSource(src RandomSource) Option {
	if src == nil {
		panic(panicNilRandomSource)
	}
	return func(o *options) { o.src = src }
}

// WithSeed is shorthand for WithRandomSource(NewSeededSource(seed)).
// Seed 0 selects the package default seed.
func WithSeed(seed int64) Option {
	src := NewSeededSource(seed)
	return func(o *options) { o.src = src }
}

// WithLiftingLimit overrides the iteration cap of Hensel lifting.
// Panics when limit <= 0.
func WithLiftingLimit(limit int) Option {
	if limit <= 0 {
		panic(panicLiftingLimit)
	}
	return func(o *options) { o.liftingLimit = limit }
}

func gatherOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

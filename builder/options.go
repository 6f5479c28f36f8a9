// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// builderConfig aggregates the knobs used by constructors. It is passed by
// value, so constructors cannot leak changes to each other.
type builderConfig struct {
	directed bool
	rng      *rand.Rand // nil means no randomness
	weightFn WeightFn
}

func newBuilderConfig(directed bool, opts ...BuilderOption) builderConfig {
	cfg := builderConfig{directed: directed, weightFn: DefaultWeightFn}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// BuilderOption customizes constructors. Option constructors panic on
// meaningless input; constructors themselves return errors.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic constructors.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new seeded *rand.Rand.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn overrides the per-edge weight generator.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

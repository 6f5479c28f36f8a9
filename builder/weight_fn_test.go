package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/bspapsp/builder"
	"github.com/stretchr/testify/assert"
)

func TestWeightFnConstructorsPanic(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"ConstantWeightFn_negative", func() { builder.ConstantWeightFn(-1) }},
		{"ConstantWeightFn_inf", func() { builder.ConstantWeightFn(math.Inf(1)) }},
		{"UniformWeightFn_minNegative", func() { builder.UniformWeightFn(-1, 5) }},
		{"UniformWeightFn_maxLessThanMin", func() { builder.UniformWeightFn(5, 4) }},
		{"WithWeightFn_nil", func() { builder.WithWeightFn(nil) }},
		{"WithRand_nil", func() { builder.WithRand(nil) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, tc.fn)
		})
	}
}

func TestWeightFnBehavior(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, builder.DefaultEdgeWeight, builder.DefaultWeightFn(rng))
	assert.Equal(t, 2.5, builder.ConstantWeightFn(2.5)(rng))
	assert.Equal(t, builder.DefaultEdgeWeight, builder.UniformWeightFn(3, 9)(nil))
	assert.Equal(t, 4.0, builder.UniformWeightFn(4, 4)(rng))

	uniform := builder.UniformWeightFn(3, 9)
	tenths := builder.TenthsWeightFn(3, 9)
	for i := 0; i < 100; i++ {
		w := uniform(rng)
		assert.True(t, w >= 3 && w < 9, "uniform %v", w)

		w = tenths(rng)
		assert.True(t, w >= 3 && w <= 9, "tenths %v", w)
		assert.InDelta(t, math.Round(w*10), w*10, 1e-9)
	}
}

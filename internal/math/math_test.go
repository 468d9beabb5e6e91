package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatVec(t *testing.T) {

	type test struct {
		m      [][]float64
		v      []float64
		output []float64
	}

	tests := map[string]test{
		"identity": {
			m:      [][]float64{{1, 0}, {0, 1}},
			v:      []float64{3, 5},
			output: []float64{3, 5},
		},
		"rect": {
			m:      [][]float64{{1, 2, 3}, {4, 5, 6}},
			v:      []float64{1, 1, 1},
			output: []float64{6, 15},
		},
		"zero": {
			m:      ZerosMat(2, 3),
			v:      []float64{1, 2, 3},
			output: []float64{0, 0},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, MatVec(tt.m, tt.v))
		})
	}
}

func TestMatTVec(t *testing.T) {
	m := [][]float64{{1, 2}, {3, 4}, {5, 6}}
	v := []float64{1, 1, 1}
	assert.Equal(t, []float64{9, 12}, MatTVec(m, v))
}

func TestOuter(t *testing.T) {
	res := Outer([]float64{1, 2}, []float64{3, 4, 5})
	assert.Equal(t, [][]float64{{3, 4, 5}, {6, 8, 10}}, res)
}

func TestArgMax(t *testing.T) {

	type test struct {
		input  []float64
		output int
	}

	tests := map[string]test{
		"simple": {
			input:  []float64{0.1, 0.7, 0.2},
			output: 1,
		},
		"first": {
			input:  []float64{0.9, 0.05, 0.05},
			output: 0,
		},
		// on ties the lowest index wins
		"tie": {
			input:  []float64{0.5, 0.5, 0.0},
			output: 0,
		},
		"all-equal": {
			input:  []float64{1, 1, 1},
			output: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.output, ArgMax(tt.input))
		})
	}
}

func TestClipByNorm(t *testing.T) {
	g := []float64{3, 4}
	ClipByNorm(g, 1)
	assert.InDelta(t, 0.6, g[0], 1e-9)
	assert.InDelta(t, 0.8, g[1], 1e-9)

	// within the norm the gradient is untouched
	g = []float64{0.3, 0.4}
	ClipByNorm(g, 1)
	assert.Equal(t, []float64{0.3, 0.4}, g)
}

func TestClipMatByNorm(t *testing.T) {
	g := [][]float64{{3, 0}, {0, 4}}
	ClipMatByNorm(g, 1)
	assert.InDelta(t, 0.6, g[0][0], 1e-9)
	assert.InDelta(t, 0.8, g[1][1], 1e-9)
}

func TestSign(t *testing.T) {
	assert.Equal(t, 1.0, Sign(0.5))
	assert.Equal(t, -1.0, Sign(-0.5))
	assert.Equal(t, 0.0, Sign(0))
}

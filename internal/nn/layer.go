package nn

import (
	"fmt"
	"math"
	"math/rand"

	seedmath "github.com/seedling-ml/seedling/internal/math"
)

// Param is a trainable parameter vector with its accumulated gradient.
type Param struct {
	Value []float64
	Grad  []float64
}

// layer is one stage of the network stack.
// backward consumes the gradient with respect to the layer output
// and returns the gradient with respect to the layer input.
type layer interface {
	forward(x [][]float64, train bool) [][]float64
	backward(grad [][]float64) [][]float64
	params() []*Param
}

// dense is a fully connected layer with an activation function.
// Weights use He initialization, biases start at zero.
type dense struct {
	spec LayerSpec
	in   int

	w [][]float64 // [units][in]
	b []float64

	dw [][]float64
	db []float64

	// caches of the last forward pass
	x   [][]float64
	pre [][]float64
}

func newDense(in int, spec LayerSpec, rng *rand.Rand) *dense {
	w := make([][]float64, spec.Units)
	scale := math.Sqrt(2.0 / float64(in))
	for i := range w {
		w[i] = make([]float64, in)
		for j := range w[i] {
			w[i][j] = rng.NormFloat64() * scale
		}
	}
	return &dense{
		spec: spec,
		in:   in,
		w:    w,
		b:    seedmath.Zeros(spec.Units),
		dw:   seedmath.ZerosMat(spec.Units, in),
		db:   seedmath.Zeros(spec.Units),
	}
}

func (d *dense) forward(x [][]float64, train bool) [][]float64 {
	if len(x) > 0 && len(x[0]) != d.in {
		panic(fmt.Sprintf("dense layer expects %d inputs, got %d", d.in, len(x[0])))
	}
	d.x = x
	d.pre = make([][]float64, len(x))
	out := make([][]float64, len(x))
	for s := range x {
		d.pre[s] = seedmath.Add(seedmath.MatVec(d.w, x[s]), d.b)
		switch d.spec.Activation {
		case Softmax:
			out[s] = softmax(d.pre[s])
		default:
			out[s] = relu(d.pre[s])
		}
	}
	return out
}

func (d *dense) backward(grad [][]float64) [][]float64 {
	for i := range d.dw {
		for j := range d.dw[i] {
			d.dw[i][j] = 0
		}
		d.db[i] = 0
	}

	dx := make([][]float64, len(grad))
	for s := range grad {
		var dpre []float64
		switch d.spec.Activation {
		case Softmax:
			// the softmax derivative is folded into the cross-entropy delta
			dpre = grad[s]
		default:
			dpre = seedmath.Hadamard(grad[s], reluPrime(d.pre[s]))
		}
		for i := range d.w {
			for j := range d.w[i] {
				d.dw[i][j] += dpre[i] * d.x[s][j]
			}
			d.db[i] += dpre[i]
		}
		dx[s] = seedmath.MatTVec(d.w, dpre)
	}

	// weight penalties enter once per batch
	if d.spec.L1 > 0 || d.spec.L2 > 0 {
		for i := range d.w {
			for j := range d.w[i] {
				d.dw[i][j] += d.spec.L1*seedmath.Sign(d.w[i][j]) + 2*d.spec.L2*d.w[i][j]
			}
		}
	}
	return dx
}

func (d *dense) params() []*Param {
	res := make([]*Param, 0, len(d.w)+1)
	for i := range d.w {
		res = append(res, &Param{Value: d.w[i], Grad: d.dw[i]})
	}
	res = append(res, &Param{Value: d.b, Grad: d.db})
	return res
}

// dropout randomly silences units while training and rescales the survivors,
// so that the expected activation stays unchanged and no correction
// is needed at inference time.
type dropout struct {
	rate float64
	rng  *rand.Rand
	mask [][]float64
}

func newDropout(rate float64, rng *rand.Rand) *dropout {
	return &dropout{rate: rate, rng: rng}
}

func (d *dropout) forward(x [][]float64, train bool) [][]float64 {
	if !train {
		d.mask = nil
		return x
	}
	keep := 1 - d.rate
	d.mask = make([][]float64, len(x))
	out := make([][]float64, len(x))
	for s := range x {
		d.mask[s] = make([]float64, len(x[s]))
		out[s] = make([]float64, len(x[s]))
		for j := range x[s] {
			if d.rng.Float64() >= d.rate {
				d.mask[s][j] = 1 / keep
				out[s][j] = x[s][j] / keep
			}
		}
	}
	return out
}

func (d *dropout) backward(grad [][]float64) [][]float64 {
	if d.mask == nil {
		return grad
	}
	dx := make([][]float64, len(grad))
	for s := range grad {
		dx[s] = seedmath.Hadamard(grad[s], d.mask[s])
	}
	return dx
}

func (d *dropout) params() []*Param {
	return nil
}

package nn

import (
	"math"
)

// adam is the adaptive gradient optimizer of the network.
// It keeps exponential moving averages of the gradients and their squares
// per parameter and corrects both for their zero initialization.
type adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64

	t int
	m [][]float64
	v [][]float64
}

func newAdam(cfg Config) *adam {
	return &adam{
		lr:    cfg.LearningRate,
		beta1: cfg.Beta1,
		beta2: cfg.Beta2,
		eps:   cfg.Epsilon,
	}
}

// step applies one Adam update to the given parameters.
// The parameter slice must be the same on every call.
func (a *adam) step(params []*Param) {
	if a.m == nil {
		a.m = make([][]float64, len(params))
		a.v = make([][]float64, len(params))
		for i, p := range params {
			a.m[i] = make([]float64, len(p.Value))
			a.v[i] = make([]float64, len(p.Value))
		}
	}
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))
	for i, p := range params {
		for j, g := range p.Grad {
			a.m[i][j] = a.beta1*a.m[i][j] + (1-a.beta1)*g
			a.v[i][j] = a.beta2*a.v[i][j] + (1-a.beta2)*g*g
			mhat := a.m[i][j] / c1
			vhat := a.v[i][j] / c2
			p.Value[j] -= a.lr * mhat / (math.Sqrt(vhat) + a.eps)
		}
	}
}

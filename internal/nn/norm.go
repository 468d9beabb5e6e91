package nn

import (
	"math"

	seedmath "github.com/seedling-ml/seedling/internal/math"
)

const (
	normMomentum = 0.9
	normEpsilon  = 1e-5
)

// batchNorm standardizes layer activations over the batch while training,
// with a learnable gain and shift per unit.
// Running statistics accumulated during training are used at inference,
// where no batch is available to normalize against.
type batchNorm struct {
	dim int

	gamma []float64
	beta  []float64

	dgamma []float64
	dbeta  []float64

	runMean []float64
	runVar  []float64

	// caches of the last training forward pass
	xhat [][]float64
	std  []float64
}

func newBatchNorm(dim int) *batchNorm {
	bn := &batchNorm{
		dim:     dim,
		gamma:   make([]float64, dim),
		beta:    seedmath.Zeros(dim),
		dgamma:  seedmath.Zeros(dim),
		dbeta:   seedmath.Zeros(dim),
		runMean: seedmath.Zeros(dim),
		runVar:  make([]float64, dim),
	}
	for j := range bn.gamma {
		bn.gamma[j] = 1
		bn.runVar[j] = 1
	}
	return bn
}

func (bn *batchNorm) forward(x [][]float64, train bool) [][]float64 {
	out := make([][]float64, len(x))
	if !train {
		bn.xhat = nil
		for s := range x {
			out[s] = make([]float64, bn.dim)
			for j := 0; j < bn.dim; j++ {
				xhat := (x[s][j] - bn.runMean[j]) / math.Sqrt(bn.runVar[j]+normEpsilon)
				out[s][j] = bn.gamma[j]*xhat + bn.beta[j]
			}
		}
		return out
	}

	m := float64(len(x))
	mean := seedmath.Zeros(bn.dim)
	variance := seedmath.Zeros(bn.dim)
	for j := 0; j < bn.dim; j++ {
		for s := range x {
			mean[j] += x[s][j]
		}
		mean[j] /= m
		for s := range x {
			d := x[s][j] - mean[j]
			variance[j] += d * d
		}
		variance[j] /= m
	}

	bn.std = make([]float64, bn.dim)
	bn.xhat = make([][]float64, len(x))
	for s := range x {
		bn.xhat[s] = make([]float64, bn.dim)
		out[s] = make([]float64, bn.dim)
	}
	for j := 0; j < bn.dim; j++ {
		bn.std[j] = math.Sqrt(variance[j] + normEpsilon)
		for s := range x {
			bn.xhat[s][j] = (x[s][j] - mean[j]) / bn.std[j]
			out[s][j] = bn.gamma[j]*bn.xhat[s][j] + bn.beta[j]
		}
		bn.runMean[j] = normMomentum*bn.runMean[j] + (1-normMomentum)*mean[j]
		bn.runVar[j] = normMomentum*bn.runVar[j] + (1-normMomentum)*variance[j]
	}
	return out
}

func (bn *batchNorm) backward(grad [][]float64) [][]float64 {
	m := float64(len(grad))
	dx := make([][]float64, len(grad))
	for s := range grad {
		dx[s] = make([]float64, bn.dim)
	}
	for j := 0; j < bn.dim; j++ {
		bn.dgamma[j] = 0
		bn.dbeta[j] = 0
		sumDxhat := 0.0
		sumDxhatXhat := 0.0
		for s := range grad {
			bn.dgamma[j] += grad[s][j] * bn.xhat[s][j]
			bn.dbeta[j] += grad[s][j]
			dxhat := grad[s][j] * bn.gamma[j]
			sumDxhat += dxhat
			sumDxhatXhat += dxhat * bn.xhat[s][j]
		}
		for s := range grad {
			dxhat := grad[s][j] * bn.gamma[j]
			dx[s][j] = (m*dxhat - sumDxhat - bn.xhat[s][j]*sumDxhatXhat) / (m * bn.std[j])
		}
	}
	return dx
}

func (bn *batchNorm) params() []*Param {
	return []*Param{
		{Value: bn.gamma, Grad: bn.dgamma},
		{Value: bn.beta, Grad: bn.dbeta},
	}
}

package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

func relu(v []float64) []float64 {
	res := make([]float64, len(v))
	for i, x := range v {
		if x > 0 {
			res[i] = x
		}
	}
	return res
}

// reluPrime is the derivative of relu with respect to the pre-activation.
func reluPrime(pre []float64) []float64 {
	res := make([]float64, len(pre))
	for i, x := range pre {
		if x > 0 {
			res[i] = 1
		}
	}
	return res
}

// softmax computes the normalized exponential of the vector.
// The maximum is subtracted first to keep the exponentials from overflowing.
func softmax(v []float64) []float64 {
	res := make([]float64, len(v))
	max := floats.Max(v)
	sum := 0.0
	for i, x := range v {
		res[i] = math.Exp(x - max)
		sum += res[i]
	}
	floats.Scale(1/sum, res)
	return res
}

package math

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Zeros returns a zero vector of the given size.
func Zeros(n int) []float64 {
	return make([]float64, n)
}

// ZerosMat returns a zero matrix of the given dimensions.
func ZerosMat(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

// Dot returns the inner product of the given vectors.
// NOTE : the vectors are assumed to have the same size
func Dot(a, b []float64) float64 {
	return floats.Dot(a, b)
}

// MatVec multiplies the matrix with the given vector.
func MatVec(m [][]float64, v []float64) []float64 {
	res := make([]float64, len(m))
	for i := range m {
		res[i] = floats.Dot(m[i], v)
	}
	return res
}

// MatTVec multiplies the transpose of the matrix with the given vector,
// without materialising the transpose.
func MatTVec(m [][]float64, v []float64) []float64 {
	if len(m) == 0 {
		return nil
	}
	res := make([]float64, len(m[0]))
	for i := range m {
		for j := range m[i] {
			res[j] += m[i][j] * v[i]
		}
	}
	return res
}

// Outer returns the outer product of the given vectors.
func Outer(a, b []float64) [][]float64 {
	res := make([][]float64, len(a))
	for i := range a {
		res[i] = make([]float64, len(b))
		for j := range b {
			res[i][j] = a[i] * b[j]
		}
	}
	return res
}

// Hadamard returns the element-wise product of the given vectors.
func Hadamard(a, b []float64) []float64 {
	res := make([]float64, len(a))
	for i := range a {
		res[i] = a[i] * b[i]
	}
	return res
}

// Add returns the element-wise sum of the given vectors.
func Add(a, b []float64) []float64 {
	res := make([]float64, len(a))
	copy(res, a)
	floats.Add(res, b)
	return res
}

// Sub returns the element-wise difference of the given vectors.
func Sub(a, b []float64) []float64 {
	res := make([]float64, len(a))
	copy(res, a)
	floats.Sub(res, b)
	return res
}

// Scale returns the vector multiplied by the given scalar.
func Scale(s float64, v []float64) []float64 {
	res := make([]float64, len(v))
	copy(res, v)
	floats.Scale(s, res)
	return res
}

// ArgMax returns the index of the largest element.
// NOTE : on ties the lowest index wins
func ArgMax(v []float64) int {
	return floats.MaxIdx(v)
}

// Sign returns -1, 0 or 1 depending on the sign of the value.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// ClipByNorm scales the gradient vector down if its L2 norm exceeds the given maximum.
func ClipByNorm(grad []float64, maxNorm float64) {
	norm := floats.Norm(grad, 2)
	if norm > maxNorm {
		floats.Scale(maxNorm/norm, grad)
	}
}

// ClipMatByNorm scales the gradient matrix down if its global L2 norm exceeds the given maximum.
func ClipMatByNorm(grad [][]float64, maxNorm float64) {
	total := 0.0
	for _, row := range grad {
		for _, g := range row {
			total += g * g
		}
	}
	total = math.Sqrt(total)
	if total > maxNorm {
		scale := maxNorm / total
		for _, row := range grad {
			floats.Scale(scale, row)
		}
	}
}

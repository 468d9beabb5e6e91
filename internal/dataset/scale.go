package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features with mean/deviation statistics.
// The statistics are fitted on the training partition only and applied
// identically to any partition, so no test information leaks into training.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes per-feature mean and standard deviation over the given table.
func FitScaler(t *Table) (*Scaler, error) {
	if len(t.Rows) < 2 {
		return nil, fmt.Errorf("need at least 2 rows to fit a scaler, got %d", len(t.Rows))
	}
	s := &Scaler{
		Mean: make([]float64, NumFeatures),
		Std:  make([]float64, NumFeatures),
	}
	column := make([]float64, len(t.Rows))
	for j := 0; j < NumFeatures; j++ {
		for i, row := range t.Rows {
			column[i] = row.Features[j]
		}
		s.Mean[j] = stat.Mean(column, nil)
		s.Std[j] = stat.StdDev(column, nil)
	}
	return s, nil
}

// Transform returns the standardized feature matrix of the given table.
// A zero-deviation feature is mapped to 0.
func (s *Scaler) Transform(t *Table) [][]float64 {
	x := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		x[i] = make([]float64, NumFeatures)
		for j, f := range row.Features {
			if s.Std[j] == 0 {
				continue
			}
			x[i][j] = (f - s.Mean[j]) / s.Std[j]
		}
	}
	return x
}

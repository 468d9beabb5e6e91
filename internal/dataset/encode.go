package dataset

import (
	"fmt"

	seedmath "github.com/seedling-ml/seedling/internal/math"
)

// Encoder maps categorical labels to one-hot vectors and back.
// The enumeration order of the classes is fixed at construction.
type Encoder struct {
	classes []string
	index   map[string]int
}

// NewEncoder creates an encoder for the given class enumeration.
func NewEncoder(classes []string) *Encoder {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &Encoder{classes: classes, index: index}
}

// Classes returns the class enumeration of the encoder.
func (e *Encoder) Classes() []string {
	return e.classes
}

// Index returns the class index for the given label.
func (e *Encoder) Index(label string) (int, error) {
	i, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("unseen label %q", label)
	}
	return i, nil
}

// OneHot encodes the given label as a one-hot vector.
func (e *Encoder) OneHot(label string) ([]float64, error) {
	i, err := e.Index(label)
	if err != nil {
		return nil, err
	}
	v := make([]float64, len(e.classes))
	v[i] = 1
	return v, nil
}

// Decode returns the label for the given score vector picking the arg-max index.
// NOTE : on ties the lowest index wins
func (e *Encoder) Decode(v []float64) string {
	return e.classes[seedmath.ArgMax(v)]
}

// Labels one-hot encodes the labels of all rows of the given table.
func (e *Encoder) Labels(t *Table) ([][]float64, error) {
	y := make([][]float64, len(t.Rows))
	for i, row := range t.Rows {
		v, err := e.OneHot(row.Label)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		y[i] = v
	}
	return y, nil
}

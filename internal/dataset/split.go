package dataset

import (
	"math/rand"
)

// Split partitions the table rows into disjoint train and test tables.
// The rows are shuffled with the given seed before the cut,
// so the same seed always produces the same partition.
func (t *Table) Split(ratio float64, seed int64) (train, test *Table) {
	rng := rand.New(rand.NewSource(seed))

	idx := rng.Perm(len(t.Rows))
	cut := int(float64(len(t.Rows)) * ratio)

	train = &Table{Rows: make([]Row, 0, cut), Classes: t.Classes}
	test = &Table{Rows: make([]Row, 0, len(t.Rows)-cut), Classes: t.Classes}

	for i, j := range idx {
		if i < cut {
			train.Rows = append(train.Rows, t.Rows[j])
		} else {
			test.Rows = append(test.Rows, t.Rows[j])
		}
	}
	return train, test
}

package eval

import (
	"fmt"
	"strings"
)

// Binary is the 2x2 outcome table of a single class
// treated as a one-vs-rest binary problem.
type Binary struct {
	TP, FP, FN, TN int
}

// Confusion tabulates predicted against actual classes.
type Confusion struct {
	Classes []string
	// Counts is indexed by [actual][predicted]
	Counts [][]int
}

// NewConfusion creates an empty confusion matrix over the given classes.
func NewConfusion(classes []string) *Confusion {
	counts := make([][]int, len(classes))
	for i := range counts {
		counts[i] = make([]int, len(classes))
	}
	return &Confusion{Classes: classes, Counts: counts}
}

// Add records one outcome.
func (c *Confusion) Add(actual, predicted int) {
	c.Counts[actual][predicted]++
}

// Total returns the number of recorded outcomes.
func (c *Confusion) Total() int {
	total := 0
	for i := range c.Counts {
		for j := range c.Counts[i] {
			total += c.Counts[i][j]
		}
	}
	return total
}

// Accuracy returns the fraction of outcomes on the diagonal.
func (c *Confusion) Accuracy() float64 {
	if c.Total() == 0 {
		return 0
	}
	hits := 0
	for i := range c.Counts {
		hits += c.Counts[i][i]
	}
	return float64(hits) / float64(c.Total())
}

// PerClass reduces the matrix to the 2x2 table of the given class.
// The four cells always sum up to the total number of outcomes.
func (c *Confusion) PerClass(class int) Binary {
	var b Binary
	for i := range c.Counts {
		for j := range c.Counts[i] {
			switch {
			case i == class && j == class:
				b.TP += c.Counts[i][j]
			case i == class:
				b.FN += c.Counts[i][j]
			case j == class:
				b.FP += c.Counts[i][j]
			default:
				b.TN += c.Counts[i][j]
			}
		}
	}
	return b
}

// String renders the per-class 2x2 tables as nested integer arrays.
func (c *Confusion) String() string {
	var sb strings.Builder
	for i, class := range c.Classes {
		b := c.PerClass(i)
		fmt.Fprintf(&sb, "%s [[%d %d] [%d %d]]\n", class, b.TN, b.FP, b.FN, b.TP)
	}
	return sb.String()
}

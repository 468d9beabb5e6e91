package baseline

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"
)

// Forest is a random-forest comparator trained on the same split as the network.
// It implements the same prediction surface, so the evaluation and the
// confusion matrix of the lesson apply to it unchanged.
type Forest struct {
	trees   int
	classes int
	forest  *randomforest.Forest
}

// NewForest creates an untrained forest of the given size.
func NewForest(trees, classes int) *Forest {
	return &Forest{trees: trees, classes: classes}
}

// Fit grows the forest on the given samples and class indices.
func (f *Forest) Fit(x [][]float64, classes []int) error {
	if len(x) == 0 {
		return fmt.Errorf("empty training set")
	}
	if len(x) != len(classes) {
		return fmt.Errorf("got %d samples but %d labels", len(x), len(classes))
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: classes}
	forest.Train(f.trees)
	f.forest = forest
	log.Info().
		Int("trees", f.trees).
		Int("samples", len(x)).
		Floats64("importance", forest.FeatureImportance).
		Msg("forest baseline trained")
	return nil
}

// Predict returns the vote distribution over classes per sample.
func (f *Forest) Predict(x [][]float64) [][]float64 {
	res := make([][]float64, len(x))
	for i := range x {
		votes := f.forest.Vote(x[i])
		// pad in case a class never got a vote
		res[i] = make([]float64, f.classes)
		copy(res[i], votes)
		total := 0.0
		for _, v := range res[i] {
			total += v
		}
		if total > 0 {
			for j := range res[i] {
				res[i][j] /= total
			}
		}
	}
	return res
}

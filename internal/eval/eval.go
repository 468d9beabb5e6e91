package eval

import (
	"fmt"

	"github.com/rs/zerolog/log"

	seedmath "github.com/seedling-ml/seedling/internal/math"
	"github.com/seedling-ml/seedling/internal/metrics"
	"github.com/seedling-ml/seedling/internal/nn"
)

// Predictor produces a class distribution per sample.
type Predictor interface {
	Predict(x [][]float64) [][]float64
}

// Result is the outcome of evaluating a trained model on held-out data.
type Result struct {
	Loss      float64
	Accuracy  float64
	Confusion *Confusion
}

// Evaluate runs the model on the held-out samples and builds the confusion matrix.
// Predicted distributions become hard labels through arg-max,
// with the lowest index winning on ties.
func Evaluate(model Predictor, classes []string, x, y [][]float64) (*Result, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("empty evaluation set")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("got %d samples but %d labels", len(x), len(y))
	}

	p := model.Predict(x)
	confusion := NewConfusion(classes)
	for s := range p {
		confusion.Add(seedmath.ArgMax(y[s]), seedmath.ArgMax(p[s]))
	}

	res := &Result{
		Loss:      nn.CrossEntropy(p, y),
		Accuracy:  confusion.Accuracy(),
		Confusion: confusion,
	}

	metrics.Observer.Observe(metrics.TestSubset, res.Loss, res.Accuracy)
	log.Info().
		Int("samples", len(x)).
		Float64("loss", res.Loss).
		Float64("accuracy", res.Accuracy).
		Msg("evaluation complete")

	return res, nil
}

package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/rs/zerolog/log"

	seedmath "github.com/seedling-ml/seedling/internal/math"
	"github.com/seedling-ml/seedling/internal/metrics"
)

// Epoch summarises one full pass over the training set.
type Epoch struct {
	Epoch    int
	Loss     float64
	Accuracy float64
}

// Network is a fixed-topology feedforward stack of dense layers
// with optional normalization and dropout stages between them.
// It is trained with Adam on the categorical cross-entropy loss.
// All randomness (weight init, shuffling, dropout) comes from one
// seeded source, so the same Config always trains to the same state.
type Network struct {
	cfg    Config
	layers []layer
	ps     []*Param
	opt    *adam
	rng    *rand.Rand
}

// New builds an untrained network from the given config.
func New(cfg Config) (*Network, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid network config: %w", err)
	}
	n := &Network{
		cfg: cfg,
		opt: newAdam(cfg),
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
	in := cfg.Inputs
	for _, spec := range cfg.Layers {
		n.layers = append(n.layers, newDense(in, spec, n.rng))
		if spec.BatchNorm {
			n.layers = append(n.layers, newBatchNorm(spec.Units))
		}
		if spec.Dropout > 0 {
			n.layers = append(n.layers, newDropout(spec.Dropout, n.rng))
		}
		in = spec.Units
	}
	for _, l := range n.layers {
		n.ps = append(n.ps, l.params()...)
	}
	return n, nil
}

// Outputs returns the width of the output layer.
func (n *Network) Outputs() int {
	return n.cfg.Layers[len(n.cfg.Layers)-1].Units
}

func (n *Network) forward(x [][]float64, train bool) [][]float64 {
	out := x
	for _, l := range n.layers {
		out = l.forward(out, train)
	}
	return out
}

// Predict runs the forward pass with dropout disabled and
// returns the class distribution per sample.
func (n *Network) Predict(x [][]float64) [][]float64 {
	return n.forward(x, false)
}

// Fit trains the network on the given samples and one-hot labels.
// Every epoch shuffles the training set, cuts it into batches of
// Config.BatchSize and applies one Adam update per batch.
// Training always runs the full epoch count, there is no early stopping.
// The returned history holds the aggregate loss and accuracy per epoch.
func (n *Network) Fit(x, y [][]float64) ([]Epoch, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("empty training set")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("got %d samples but %d labels", len(x), len(y))
	}
	if len(y[0]) != n.Outputs() {
		return nil, fmt.Errorf("labels have %d classes but the network outputs %d", len(y[0]), n.Outputs())
	}

	history := make([]Epoch, 0, n.cfg.Epochs)
	for epoch := 1; epoch <= n.cfg.Epochs; epoch++ {
		idx := n.rng.Perm(len(x))
		loss := 0.0
		correct := 0
		for start := 0; start < len(idx); start += n.cfg.BatchSize {
			end := start + n.cfg.BatchSize
			if end > len(idx) {
				end = len(idx)
			}
			xb := make([][]float64, 0, end-start)
			yb := make([][]float64, 0, end-start)
			for _, j := range idx[start:end] {
				xb = append(xb, x[j])
				yb = append(yb, y[j])
			}

			out := n.forward(xb, true)
			loss += CrossEntropy(out, yb) * float64(len(xb))
			correct += countHits(out, yb)

			// the cross-entropy delta with respect to the softmax input
			grad := make([][]float64, len(out))
			for s := range out {
				grad[s] = seedmath.Scale(1/float64(len(out)), seedmath.Sub(out[s], yb[s]))
			}
			for i := len(n.layers) - 1; i >= 0; i-- {
				grad = n.layers[i].backward(grad)
			}
			n.opt.step(n.ps)
		}

		e := Epoch{
			Epoch:    epoch,
			Loss:     loss / float64(len(x)),
			Accuracy: float64(correct) / float64(len(x)),
		}
		history = append(history, e)

		metrics.Observer.CountEpoch(metrics.TrainSubset)
		metrics.Observer.Observe(metrics.TrainSubset, e.Loss, e.Accuracy)
		log.Info().
			Int("epoch", e.Epoch).
			Float64("loss", e.Loss).
			Float64("accuracy", e.Accuracy).
			Msg("epoch complete")
	}
	return history, nil
}

// CrossEntropy returns the mean categorical cross-entropy
// of the predicted distributions against the one-hot labels.
func CrossEntropy(p, y [][]float64) float64 {
	loss := 0.0
	for s := range p {
		for j := range p[s] {
			if y[s][j] > 0 {
				loss -= y[s][j] * math.Log(p[s][j]+1e-12)
			}
		}
	}
	return loss / float64(len(p))
}

func countHits(p, y [][]float64) int {
	hits := 0
	for s := range p {
		if seedmath.ArgMax(p[s]) == seedmath.ArgMax(y[s]) {
			hits++
		}
	}
	return hits
}

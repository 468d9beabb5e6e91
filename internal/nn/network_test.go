package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// blobs generates n samples clustered around one centre per class.
func blobs(n int, seed int64) (x, y [][]float64) {
	rng := rand.New(rand.NewSource(seed))
	centres := [][]float64{
		{0, 0, 0, 0},
		{3, 3, 3, 3},
		{-3, 3, -3, 3},
	}
	for i := 0; i < n; i++ {
		c := i % len(centres)
		sample := make([]float64, 4)
		for j := range sample {
			sample[j] = centres[c][j] + rng.NormFloat64()*0.3
		}
		label := make([]float64, len(centres))
		label[c] = 1
		x = append(x, sample)
		y = append(y, label)
	}
	return x, y
}

func TestConfigValidate(t *testing.T) {

	type test struct {
		mutate func(c *Config)
		valid  bool
	}

	tests := map[string]test{
		"default": {
			mutate: func(c *Config) {},
			valid:  true,
		},
		"no-inputs": {
			mutate: func(c *Config) { c.Inputs = 0 },
		},
		"no-layers": {
			mutate: func(c *Config) { c.Layers = nil },
		},
		"zero-units": {
			mutate: func(c *Config) { c.Layers[0].Units = 0 },
		},
		"unknown-activation": {
			mutate: func(c *Config) { c.Layers[0].Activation = "tanh" },
		},
		"bad-dropout": {
			mutate: func(c *Config) { c.Layers[0].Dropout = 1 },
		},
		"relu-output": {
			mutate: func(c *Config) { c.Layers[len(c.Layers)-1].Activation = ReLU },
		},
		"zero-batch": {
			mutate: func(c *Config) { c.BatchSize = 0 },
		},
		"zero-epochs": {
			mutate: func(c *Config) { c.Epochs = 0 },
		},
		"zero-rate": {
			mutate: func(c *Config) { c.LearningRate = 0 },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPredictDistribution(t *testing.T) {
	net, err := New(DefaultConfig())
	assert.NoError(t, err)

	x, _ := blobs(21, 1)
	p := net.Predict(x)
	assert.Equal(t, len(x), len(p))
	for _, dist := range p {
		assert.Equal(t, 3, len(dist))
		sum := 0.0
		for _, v := range dist {
			assert.True(t, v >= 0)
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-9)
	}
}

func TestFitHistory(t *testing.T) {
	cfg := DefaultConfig()
	net, err := New(cfg)
	assert.NoError(t, err)

	x, y := blobs(150, 2)
	history, err := net.Fit(x, y)
	assert.NoError(t, err)

	assert.Equal(t, cfg.Epochs, len(history))
	for _, e := range history {
		assert.True(t, e.Accuracy >= 0 && e.Accuracy <= 1)
		assert.False(t, math.IsNaN(e.Loss))
		assert.False(t, math.IsInf(e.Loss, 0))
	}
}

func TestFitLearnsSeparableClusters(t *testing.T) {
	cfg := DefaultConfig()
	// strip the regularization noise and give the optimizer room to converge
	for i := range cfg.Layers {
		cfg.Layers[i].BatchNorm = false
		cfg.Layers[i].Dropout = 0
	}
	cfg.Epochs = 200
	cfg.LearningRate = 0.01

	net, err := New(cfg)
	assert.NoError(t, err)

	x, y := blobs(150, 3)
	history, err := net.Fit(x, y)
	assert.NoError(t, err)

	final := history[len(history)-1]
	assert.True(t, final.Accuracy > 0.7, "accuracy = %v", final.Accuracy)
	assert.True(t, final.Loss < history[0].Loss)
}

func TestFitDeterminism(t *testing.T) {
	x, y := blobs(150, 4)

	run := func() ([]Epoch, [][]float64) {
		net, err := New(DefaultConfig())
		assert.NoError(t, err)
		history, err := net.Fit(x, y)
		assert.NoError(t, err)
		return history, net.Predict(x)
	}

	h1, p1 := run()
	h2, p2 := run()

	// same seed, same weights, same history, bit for bit
	assert.Equal(t, h1, h2)
	assert.Equal(t, p1, p2)
}

func TestFitErrors(t *testing.T) {
	net, err := New(DefaultConfig())
	assert.NoError(t, err)

	x, y := blobs(10, 5)

	_, err = net.Fit(nil, nil)
	assert.Error(t, err)

	_, err = net.Fit(x, y[:5])
	assert.Error(t, err)

	_, err = net.Fit(x, [][]float64{{1, 0}, {0, 1}, {1, 0}, {0, 1}, {1, 0}, {0, 1}, {1, 0}, {0, 1}, {1, 0}, {0, 1}})
	assert.Error(t, err)
}

func TestCrossEntropy(t *testing.T) {
	// perfect prediction has (near) zero loss
	assert.InDelta(t, 0, CrossEntropy([][]float64{{1, 0, 0}}, [][]float64{{1, 0, 0}}), 1e-9)
	// uniform prediction of 3 classes costs log(3)
	assert.InDelta(t, math.Log(3), CrossEntropy([][]float64{{1. / 3, 1. / 3, 1. / 3}}, [][]float64{{0, 1, 0}}), 1e-9)
}

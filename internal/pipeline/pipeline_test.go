package pipeline

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

var labels = []string{"setosa", "versicolor", "virginica"}

func synthetic(t *testing.T, n int) string {
	t.Helper()
	rng := rand.New(rand.NewSource(21))
	path := filepath.Join(t.TempDir(), "table.csv")
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()
	for i := 0; i < n; i++ {
		c := i % len(labels)
		fmt.Fprintf(f, "%.3f,%.3f,%.3f,%.3f,%s\n",
			float64(c)+rng.NormFloat64()*0.2,
			float64(c)+rng.NormFloat64()*0.2,
			float64(c)*2+rng.NormFloat64()*0.2,
			float64(c)*2+rng.NormFloat64()*0.2,
			labels[c])
	}
	return path
}

func TestRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.File = synthetic(t, 150)
	cfg.Baseline.Enabled = false

	report, err := Run(cfg)
	assert.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, labels, report.Classes)
	assert.Equal(t, cfg.Network.Epochs, len(report.History))

	final := report.History[len(report.History)-1]
	assert.True(t, final.Accuracy >= 0 && final.Accuracy <= 1)

	assert.Equal(t, 38, report.Network.Confusion.Total())
	assert.True(t, report.Network.Accuracy >= 0 && report.Network.Accuracy <= 1)
}

func TestRunDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.File = synthetic(t, 150)
	cfg.Baseline.Enabled = false

	first, err := Run(cfg)
	assert.NoError(t, err)
	second, err := Run(cfg)
	assert.NoError(t, err)

	// same seed, same data, same outcome
	assert.Equal(t, first.History, second.History)
	assert.Equal(t, first.Network.Accuracy, second.Network.Accuracy)
	assert.Equal(t, first.Network.Confusion.Counts, second.Network.Confusion.Counts)
}

func TestRunWithBaselines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.File = synthetic(t, 150)
	cfg.Baseline.Trees = 20

	report, err := Run(cfg)
	assert.NoError(t, err)

	assert.NotNil(t, report.Forest)
	assert.True(t, report.Forest.Accuracy >= 0 && report.Forest.Accuracy <= 1)
	assert.True(t, report.KNNAccuracy >= 0 && report.KNNAccuracy <= 1)
}

func TestRunStageErrors(t *testing.T) {

	type test struct {
		mutate func(t *testing.T, cfg *Config)
		stage  string
	}

	tests := map[string]test{
		"missing-file": {
			mutate: func(t *testing.T, cfg *Config) {
				cfg.Data.File = "nope.csv"
			},
			stage: "data preparation",
		},
		"missing-class": {
			mutate: func(t *testing.T, cfg *Config) {
				path := filepath.Join(t.TempDir(), "two.csv")
				f, err := os.Create(path)
				assert.NoError(t, err)
				defer f.Close()
				for i := 0; i < 20; i++ {
					fmt.Fprintf(f, "%d,%d,%d,%d,%s\n", i, i, i, i, labels[i%2])
				}
				cfg.Data.File = path
			},
			stage: "data preparation",
		},
		"bad-topology": {
			mutate: func(t *testing.T, cfg *Config) {
				cfg.Network.Layers = nil
			},
			stage: "model definition",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Data.File = synthetic(t, 30)
			cfg.Baseline.Enabled = false
			tt.mutate(t, &cfg)

			_, err := Run(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.stage)
		})
	}
}

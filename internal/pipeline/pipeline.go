package pipeline

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/seedling-ml/seedling/internal/baseline"
	"github.com/seedling-ml/seedling/internal/dataset"
	"github.com/seedling-ml/seedling/internal/eval"
	"github.com/seedling-ml/seedling/internal/nn"
)

// DataConfig locates the source table and fixes the split.
type DataConfig struct {
	// File is the csv table with the labeled samples
	File string `json:"file"`
	// Header skips the first line of the file
	Header bool `json:"header"`
	// Split is the training proportion of the partition
	Split float64 `json:"split"`
	// Seed fixes the shuffle of the partition
	Seed int64 `json:"seed"`
}

// BaselineConfig describes the classic comparators run next to the network.
type BaselineConfig struct {
	Enabled    bool `json:"enabled"`
	Trees      int  `json:"trees"`
	Neighbours int  `json:"neighbours"`
}

// Config is the full configuration of one training run.
type Config struct {
	Data     DataConfig     `json:"data"`
	Network  nn.Config      `json:"network"`
	Baseline BaselineConfig `json:"baseline"`
}

// DefaultConfig returns the illustrative run configuration of the lesson :
// 75/25 split and the default network topology.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			File:   "data/iris.csv",
			Header: false,
			Split:  0.75,
			Seed:   42,
		},
		Network: nn.DefaultConfig(),
		Baseline: BaselineConfig{
			Enabled:    true,
			Trees:      100,
			Neighbours: 3,
		},
	}
}

// Report is the outcome of one run.
type Report struct {
	// ID identifies the run in logs and metrics
	ID string
	// Classes is the label enumeration of the source table
	Classes []string
	// History holds the per-epoch training loss and accuracy
	History []nn.Epoch
	// Network is the held-out evaluation of the trained network
	Network *eval.Result
	// Forest is the held-out evaluation of the random-forest comparator, if enabled
	Forest *eval.Result
	// KNNAccuracy is the held-out accuracy of the knn comparator, if enabled
	KNNAccuracy float64
}

// Run executes the pipeline once : prepare the data, train the network,
// evaluate on the held-out partition and, if enabled, run the comparators.
// The stages are strictly sequential and any error aborts the run,
// there are no retries and no partial results.
func Run(cfg Config) (*Report, error) {
	report := &Report{ID: uuid.New().String()}
	runLog := log.With().Str("run", report.ID).Logger()

	// data preparation
	table, err := dataset.Load(cfg.Data.File, cfg.Data.Header)
	if err != nil {
		return nil, fmt.Errorf("data preparation: %w", err)
	}
	if len(table.Classes) != dataset.NumClasses {
		return nil, fmt.Errorf("data preparation: expected %d classes, got %v", dataset.NumClasses, table.Classes)
	}
	report.Classes = table.Classes

	train, test := table.Split(cfg.Data.Split, cfg.Data.Seed)
	scaler, err := dataset.FitScaler(train)
	if err != nil {
		return nil, fmt.Errorf("data preparation: %w", err)
	}
	x, xt := scaler.Transform(train), scaler.Transform(test)

	encoder := dataset.NewEncoder(table.Classes)
	y, err := encoder.Labels(train)
	if err != nil {
		return nil, fmt.Errorf("data preparation: %w", err)
	}
	yt, err := encoder.Labels(test)
	if err != nil {
		return nil, fmt.Errorf("data preparation: %w", err)
	}
	runLog.Info().
		Int("train", len(train.Rows)).
		Int("test", len(test.Rows)).
		Msg("data prepared")

	// model definition and training
	network, err := nn.New(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("model definition: %w", err)
	}
	report.History, err = network.Fit(x, y)
	if err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}

	// evaluation
	report.Network, err = eval.Evaluate(network, table.Classes, xt, yt)
	if err != nil {
		return nil, fmt.Errorf("evaluation: %w", err)
	}

	if cfg.Baseline.Enabled {
		if err := runBaselines(cfg, report, encoder, train, x, xt, yt); err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}
	}

	runLog.Info().
		Float64("accuracy", report.Network.Accuracy).
		Msg("run complete")
	return report, nil
}

func runBaselines(cfg Config, report *Report, encoder *dataset.Encoder, train *dataset.Table, x, xt, yt [][]float64) error {
	classes := make([]int, len(train.Rows))
	for i, row := range train.Rows {
		c, err := encoder.Index(row.Label)
		if err != nil {
			return err
		}
		classes[i] = c
	}

	forest := baseline.NewForest(cfg.Baseline.Trees, dataset.NumClasses)
	if err := forest.Fit(x, classes); err != nil {
		return err
	}
	res, err := eval.Evaluate(forest, report.Classes, xt, yt)
	if err != nil {
		return err
	}
	report.Forest = res

	knnAccuracy, err := baseline.KNN(cfg.Data.File, cfg.Data.Header, cfg.Baseline.Neighbours, 1-cfg.Data.Split)
	if err != nil {
		return err
	}
	report.KNNAccuracy = knnAccuracy
	return nil
}

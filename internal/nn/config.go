package nn

import (
	"fmt"
)

// Activation names an activation function of a dense layer.
type Activation string

const (
	// ReLU is the rectified linear activation.
	ReLU Activation = "relu"
	// Softmax is the normalized exponential activation producing a distribution over classes.
	Softmax Activation = "softmax"
)

// LayerSpec describes one dense layer of the stack.
// BatchNorm and Dropout apply after the activation of the layer they are set on.
type LayerSpec struct {
	Units      int        `json:"units"`
	Activation Activation `json:"activation"`
	L1         float64    `json:"l1"`
	L2         float64    `json:"l2"`
	BatchNorm  bool       `json:"batch_norm"`
	Dropout    float64    `json:"dropout"`
}

// Config defines the topology and the training hyper-parameters of the network.
// The defaults mirror the illustrative classifier of the lesson,
// they are exposed here to keep the example independently testable.
type Config struct {
	// Inputs is the feature dimension of the samples
	Inputs int `json:"inputs"`
	// Layers is the ordered stack of dense layers
	Layers []LayerSpec `json:"layers"`
	// BatchSize defines the size of the mini batches per epoch
	BatchSize int `json:"batch_size"`
	// Epochs defines the fixed number of passes over the training set
	Epochs int `json:"epochs"`
	// LearningRate defines the Adam step size
	LearningRate float64 `json:"learning_rate"`
	// Beta1 and Beta2 define the Adam moment decay rates
	Beta1 float64 `json:"beta_1"`
	Beta2 float64 `json:"beta_2"`
	// Epsilon keeps the Adam update numerically stable
	Epsilon float64 `json:"epsilon"`
	// Seed drives weight init, shuffling and dropout for reproducible runs
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the illustrative topology and hyper-parameters :
// dense layers of 10, 7, 5 rectified units with small L1/L2 penalties,
// normalization and a 0.3 dropout after the first two,
// and a softmax output layer over the 3 classes,
// trained with Adam on batches of 7 for 10 epochs.
func DefaultConfig() Config {
	return Config{
		Inputs: 4,
		Layers: []LayerSpec{
			{Units: 10, Activation: ReLU, L1: 1e-5, L2: 1e-4, BatchNorm: true, Dropout: 0.3},
			{Units: 7, Activation: ReLU, L1: 1e-5, L2: 1e-4, BatchNorm: true, Dropout: 0.3},
			{Units: 5, Activation: ReLU, L1: 1e-5, L2: 1e-4},
			{Units: 3, Activation: Softmax},
		},
		BatchSize:    7,
		Epochs:       10,
		LearningRate: 0.001,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
		Seed:         42,
	}
}

func (c Config) validate() error {
	if c.Inputs <= 0 {
		return fmt.Errorf("inputs must be positive, got %d", c.Inputs)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("network needs at least one layer")
	}
	for i, l := range c.Layers {
		if l.Units <= 0 {
			return fmt.Errorf("layer %d units must be positive, got %d", i, l.Units)
		}
		switch l.Activation {
		case ReLU, Softmax:
		default:
			return fmt.Errorf("layer %d has unknown activation %q", i, l.Activation)
		}
		if l.Dropout < 0 || l.Dropout >= 1 {
			return fmt.Errorf("layer %d dropout must be in [0,1), got %v", i, l.Dropout)
		}
	}
	if last := c.Layers[len(c.Layers)-1]; last.Activation != Softmax {
		return fmt.Errorf("output layer must use softmax, got %q", last.Activation)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive, got %v", c.LearningRate)
	}
	return nil
}

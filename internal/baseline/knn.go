package baseline

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/knn"
)

// KNN runs a k-nearest-neighbours classifier over the source table
// and returns its test accuracy.
// It reads the csv on its own since golearn brings its own table format,
// the split proportion matches the one used for the network.
func KNN(path string, header bool, neighbours int, testRatio float64) (float64, error) {
	data, err := base.ParseCSVToInstances(path, header)
	if err != nil {
		return 0, fmt.Errorf("could not parse dataset for knn baseline: %w", err)
	}

	cls := knn.NewKnnClassifier("euclidean", "linear", neighbours)
	train, test := base.InstancesTrainTestSplit(data, testRatio)
	if err := cls.Fit(train); err != nil {
		return 0, fmt.Errorf("could not fit knn baseline: %w", err)
	}
	predictions, err := cls.Predict(test)
	if err != nil {
		return 0, fmt.Errorf("could not predict with knn baseline: %w", err)
	}
	confusion, err := evaluation.GetConfusionMatrix(test, predictions)
	if err != nil {
		return 0, fmt.Errorf("could not build knn confusion matrix: %w", err)
	}

	accuracy := evaluation.GetAccuracy(confusion)
	log.Info().
		Int("neighbours", neighbours).
		Float64("accuracy", accuracy).
		Msg("knn baseline evaluated")
	return accuracy, nil
}

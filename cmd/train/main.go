package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seedling-ml/seedling/infra/config"
	"github.com/seedling-ml/seedling/internal/metrics"
	"github.com/seedling-ml/seedling/internal/pipeline"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	var (
		configFile = flag.String("config", "", "run config file, overrides infra/config/train.json")
		file       = flag.String("file", "", "dataset file, overrides the config")
		seed       = flag.Int64("seed", -1, "run seed, overrides the config")
		port       = flag.Int("metrics", 0, "expose the prometheus collectors on this port")
	)
	flag.Parse()

	cfg := pipeline.DefaultConfig()
	if *configFile != "" {
		config.MustLoadFile(*configFile, &cfg)
	} else if _, err := os.Stat("infra/config/train.json"); err == nil {
		config.MustLoad("train", &cfg)
	}
	if *file != "" {
		cfg.Data.File = *file
	}
	if *seed >= 0 {
		cfg.Data.Seed = *seed
		cfg.Network.Seed = *seed
	}

	if *port > 0 {
		go func() {
			if err := metrics.Serve(*port); err != nil {
				log.Error().Err(err).Msg("could not serve metrics")
			}
		}()
	}

	report, err := pipeline.Run(cfg)
	if err != nil {
		panic(fmt.Sprintf("training run failed : %+v", err))
	}

	for _, e := range report.History {
		fmt.Printf("epoch %2d : loss %.4f accuracy %.4f\n", e.Epoch, e.Loss, e.Accuracy)
	}
	fmt.Printf("test : loss %.4f accuracy %.4f\n", report.Network.Loss, report.Network.Accuracy)
	fmt.Print(report.Network.Confusion)
	if report.Forest != nil {
		fmt.Printf("forest baseline : accuracy %.4f\n", report.Forest.Accuracy)
		fmt.Print(report.Forest.Confusion)
		fmt.Printf("knn baseline : accuracy %.4f\n", report.KNNAccuracy)
	}
}

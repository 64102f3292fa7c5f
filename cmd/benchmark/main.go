package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/drakos74/seismic-bench/infra/config"
	"github.com/drakos74/seismic-bench/internal/benchmark"
	"github.com/drakos74/seismic-bench/internal/metrics"
	"github.com/drakos74/seismic-bench/internal/storage/file/json"
	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	configFile := flag.String("config", "", "json config of the benchmark grid (defaults to infra/config/benchmark.json)")
	root := flag.String("root", "", "root directory of the simulated samples (overrides the config)")
	out := flag.String("out", "benchmark", "directory for the output tables")
	trial := flag.Int("trial", -1, "compare only the given trial")
	workers := flag.Int("workers", 0, "number of samples compared in parallel (overrides the config)")
	port := flag.Int("metrics-port", 0, "port to expose prometheus metrics on")
	debug := flag.Bool("debug", false, "enable debug logs")
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var cfg benchmark.Config
	if *configFile == "" {
		config.MustLoad("benchmark", &cfg)
	} else if _, err := config.Load(*configFile, &cfg); err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	if *root != "" {
		cfg.Root = *root
	}
	if *trial >= 0 {
		cfg.OnlyTrial = trial
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *port > 0 {
		metrics.Serve(ctx, *port)
	}

	store, err := json.BlobShard(*out, "runs")("results")
	if err != nil {
		log.Fatal().Err(err).Msg("could not create storage")
	}
	runner := benchmark.NewRunner(cfg).WithStorage(store)
	results, err := runner.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("run", runner.ID()).Msg("benchmark failed")
	}

	if err := write(filepath.Join(*out, "reads.csv"), func(f *os.File) error {
		return results.WriteReads(f)
	}); err != nil {
		log.Fatal().Err(err).Msg("could not write reads table")
	}
	for order := 1; order <= cfg.MaxClusters; order++ {
		order := order
		path := filepath.Join(*out, fmt.Sprintf("proportions-c%d.csv", order))
		if err := write(path, func(f *os.File) error {
			return results.WriteProportions(f, order)
		}); err != nil {
			log.Fatal().Err(err).Int("order", order).Msg("could not write proportions table")
		}
	}

	for _, s := range results.Summarise() {
		log.Info().
			Str("library", s.Library).
			Int("order", s.Order).
			Str("proportions", s.Proportions).
			Int("reads-bin", s.ReadsBin).
			Int("missing", s.Missing).
			Int("compared", s.Compared).
			Float64("observed-clusters", s.ObservedClusters.Mean()).
			Float64("mutation-rmsd", s.MutationRMSD.Mean()).
			Float64("mutation-rmsd-sd", s.MutationRMSD.SampleStDev()).
			Float64("mutation-corr", s.MutationCorr.Mean()).
			Float64("proportion-rmsd", s.ProportionRMSD.Mean()).
			Msg("summary")
	}
}

func write(path string, exec func(f *os.File) error) error {
	f, err := table.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := exec(f); err != nil {
		return err
	}
	log.Info().Str("file", path).Msg("written")
	return nil
}

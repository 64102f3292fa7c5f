package main

import (
	"flag"
	"os"

	"github.com/drakos74/seismic-bench/internal/cluster"
	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// replicates correlates the mutation rates of every cluster of one replicate
// with every cluster of the other.
func main() {

	rep1 := flag.String("rep1", "", "per-position table of the first replicate")
	rep2 := flag.String("rep2", "", "per-position table of the second replicate")
	order := flag.Int("order", 0, "number of clusters to compare (defaults to the largest in the tables)")
	out := flag.String("out", "", "output csv (defaults to stdout)")
	flag.Parse()

	if *rep1 == "" || *rep2 == "" {
		flag.Usage()
		os.Exit(2)
	}

	mus1 := load(*rep1, *order)
	mus2 := load(*rep2, *order)

	corr, err := cluster.CorrelationMatrix(mus1, mus2)
	if err != nil {
		log.Fatal().Err(err).Msg("could not correlate replicates")
	}

	w := os.Stdout
	if *out != "" {
		f, err := table.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create output")
		}
		defer f.Close()
		w = f
	}
	err = table.WriteMatrix(w, "Cluster", table.Labels(mus1.K()), table.Labels(mus2.K()), corr)
	if err != nil {
		log.Fatal().Err(err).Msg("could not write correlations")
	}
}

func load(path string, order int) cluster.Set {
	t, err := table.LoadPositions(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("could not load table")
	}
	if order == 0 {
		order = t.MaxOrder()
	}
	mus, err := table.ObservedMutationRatesOf(t, order)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Int("order", order).Msg("could not extract mutation rates")
	}
	log.Info().Str("file", path).Int("order", order).Int("positions", mus.Len()).Msg("loaded")
	return mus
}

package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	rnamath "github.com/drakos74/seismic-bench/internal/math"
	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// correlations compares the mutated ratio of several samples against a reference sample.
func main() {

	out := flag.String("out", "", "output csv (defaults to stdout)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		log.Fatal().Msg("usage: correlations [-out file] <reference table> <table> ...")
	}

	ref := ratio(args[0])
	rows := make([][]string, 0, len(args)-1)
	for _, path := range args[1:] {
		corr := rnamath.CalcPearsonCorr(ref, ratio(path))
		log.Info().Str("sample", sampleOf(path)).Float64("corr", corr).Msg("correlation")
		rows = append(rows, []string{sampleOf(path), rnamath.Format(corr)})
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
	if err := table.WriteRecords(w, []string{"Sample", "Correlation"}, rows); err != nil {
		log.Fatal().Err(err).Msg("could not write correlations")
	}
}

func ratio(path string) []float64 {
	t, err := table.LoadPositions(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("could not load table")
	}
	r, err := table.MutatedRatio(t, 1, 1)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("could not compute mutated ratio")
	}
	return r
}

// sampleOf names the sample from its table path, i.e. <sample>/table/<ref>/<section>/<file>,
// falling back to the file name.
func sampleOf(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i := len(parts) - 1; i > 0; i-- {
		if parts[i] == "table" {
			return parts[i-1]
		}
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

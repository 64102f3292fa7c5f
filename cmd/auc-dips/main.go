package main

import (
	"flag"
	"strconv"

	"github.com/drakos74/seismic-bench/internal/auc"
	rnamath "github.com/drakos74/seismic-bench/internal/math"
	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// auc-dips calls the dips of an AUC-ROC profile and compares the AUC-ROC near a site to the rest.
func main() {

	aucFile := flag.String("auc", "", "per-position AUC-ROC table")
	out := flag.String("out", "auc", "prefix of the output tables")
	topline := flag.Float64("topline", 0.95, "AUC-ROC separating tops from dips")
	site := flag.Int("site", 12338, "position of the site of interest")
	upstream := flag.Int("upstream", 100, "positions upstream of the site counted as near it")
	downstream := flag.Int("downstream", 0, "positions downstream of the site counted as near it")
	bins := flag.Int("bins", 100, "number of histogram bins over [0, 1]")
	flag.Parse()

	if *aucFile == "" {
		flag.Usage()
		log.Fatal().Msg("no auc table given")
	}

	series, err := table.LoadSeries(*aucFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *aucFile).Msg("could not load auc table")
	}

	areas := auc.DipAreas(series, *topline)
	rows := make([][]string, len(areas))
	for i, a := range areas {
		rows[i] = []string{
			strconv.Itoa(a.Range.End5),
			strconv.Itoa(a.Range.End3),
			strconv.Itoa(a.Range.Width()),
			rnamath.Format(a.Area),
		}
	}
	if err := write(*out+"-dips.csv", []string{"End5", "End3", "Width", "Area"}, rows); err != nil {
		log.Fatal().Err(err).Msg("could not write dip areas")
	}

	dividers := auc.Bins(0, 1, *bins)
	region := auc.Range{End5: *site - *upstream, End3: *site + *downstream}
	in, outside, err := auc.Histograms(series, dividers, region)
	if err != nil {
		log.Fatal().Err(err).Msg("could not compute histograms")
	}
	rows = make([][]string, len(in))
	for i := range in {
		rows[i] = []string{
			rnamath.Format(dividers[i]),
			rnamath.Format(dividers[i+1]),
			rnamath.Format(in[i]),
			rnamath.Format(outside[i]),
		}
	}
	if err := write(*out+"-hist.csv", []string{"Lower", "Upper", "Near", "Away"}, rows); err != nil {
		log.Fatal().Err(err).Msg("could not write histograms")
	}

	log.Info().
		Int("positions", series.Len()).
		Int("ranges", len(areas)).
		Int("end5", region.End5).
		Int("end3", region.End3).
		Msg("done")
}

func write(path string, header []string, rows [][]string) error {
	f, err := table.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return table.WriteRecords(f, header, rows)
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"

	"github.com/drakos74/seismic-bench/infra/config"
	"github.com/drakos74/seismic-bench/internal/ct"
	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// diagram is the arc layout of one structure.
type diagram struct {
	Title  string   `json:"title"`
	Aspect float64  `json:"aspect"`
	Arcs   []ct.Arc `json:"arcs"`
	Colors []string `json:"colors,omitempty"`
	// Lines connect the main row to the folded-back row.
	Lines []ct.Line `json:"lines,omitempty"`
}

// fold-check reports the fraction of structures in every ct file containing all pairs of each model.
func main() {

	pairsFile := flag.String("pairs", "", "json file mapping model names to lists of [5', 3'] pairs")
	arcsFile := flag.String("arcs", "", "write the arc diagram of every structure to this json file")
	ratio := flag.Float64("ratio", 1, "height of the widest arc relative to half the diagram width")
	target := flag.String("target", "", "target region end5:end3 for colouring pairs")
	corrFile := flag.String("corr", "", "per-position correlation table for colouring pairs")
	threshold := flag.Float64("threshold", 0, "correlation at or below which a pair to the target is supported")
	section := flag.String("section", "", "section end5:end3 drawn on the main row, folding the rest back")
	mainRow := flag.String("main", "", "positions end5:end3 whose pairs are drawn on the folded layout")
	upper := flag.Float64("upper", 2, "height of the folded-back row")
	flatness := flag.Float64("flatness", 0.001, "height to width ratio of arcs on the folded layout")
	flag.Parse()

	if *pairsFile == "" || flag.NArg() == 0 {
		log.Fatal().Msg("usage: fold-check -pairs <json> <ct file> ...")
	}

	models := loadModels(*pairsFile)
	models["all"] = models.Union()

	diagrams := make([]diagram, 0)
	color := colorer(*target, *corrFile, *threshold)
	for _, path := range flag.Args() {
		structures, err := ct.Load(path)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("could not load structures")
		}
		for _, name := range models.Names() {
			fraction := ct.FractionFolded(structures, models[name])
			log.Info().
				Str("file", path).
				Str("model", name).
				Int("structures", len(structures)).
				Float64("fraction", fraction).
				Msg("fraction folded")
			fmt.Printf("%s\t%s\t%v\n", path, name, fraction)
		}
		if *arcsFile == "" {
			continue
		}
		for _, s := range structures {
			var d diagram
			if *section != "" && *mainRow != "" {
				d = folded(s, parseRange(*section), parseRange(*mainRow), *upper, *flatness)
			} else {
				aspect := ct.ArcAspect(1, float64(s.Len()), *ratio)
				d = diagram{
					Title:  s.Title,
					Aspect: aspect,
					Arcs:   ct.Arcs(s, 0, aspect),
				}
			}
			if color != nil {
				for _, a := range d.Arcs {
					d.Colors = append(d.Colors, color(a.Pair).String())
				}
			}
			diagrams = append(diagrams, d)
		}
	}

	if *arcsFile != "" {
		b, err := json.MarshalIndent(diagrams, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("could not encode arcs")
		}
		if err := ioutil.WriteFile(*arcsFile, b, 0644); err != nil {
			log.Fatal().Err(err).Str("file", *arcsFile).Msg("could not write arcs")
		}
	}
}

func loadModels(path string) ct.Models {
	raw := make(map[string][][2]int)
	if _, err := config.Load(path, &raw); err != nil {
		log.Fatal().Err(err).Msg("could not load pairs")
	}
	models := make(ct.Models, len(raw))
	for name, pairs := range raw {
		for _, p := range pairs {
			models[name] = append(models[name], ct.NewPair(p[0], p[1]))
		}
	}
	return models
}

func colorer(target, corrFile string, threshold float64) func(p ct.Pair) ct.Color {
	if target == "" || corrFile == "" {
		return nil
	}
	r := parseRange(target)
	corr, err := table.LoadSeries(corrFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", corrFile).Msg("could not load correlations")
	}
	return func(p ct.Pair) ct.Color {
		return ct.ColorPair(p, r, corr.At, threshold)
	}
}

func parseRange(s string) ct.Range {
	var r ct.Range
	if _, err := fmt.Sscanf(s, "%d:%d", &r.End5, &r.End3); err != nil {
		log.Fatal().Err(err).Str("range", s).Msg("invalid range")
	}
	return r
}

// folded lays out the pairs of the main row with the downstream partners folded back above the section.
func folded(s ct.Structure, section, row ct.Range, upper, flatness float64) diagram {
	fb, pairs, err := ct.NewFoldBack(s, section, row, upper)
	if err != nil {
		log.Fatal().Err(err).Str("structure", s.Title).Msg("could not fold back")
	}
	lo, hi := fb.Limits()
	arcs, lines := fb.Layout(pairs, flatness)
	return diagram{
		Title:  s.Title,
		Aspect: ct.ArcAspect(lo, hi, 1),
		Arcs:   arcs,
		Lines:  lines,
	}
}

package benchmark

import (
	rnamath "github.com/drakos74/seismic-bench/internal/math"
)

// Group identifies the samples summarised together.
type Group struct {
	Library     string
	Order       int
	Proportions string
	ReadsBin    int
}

// Summary aggregates the records of a group over the trials.
type Summary struct {
	Group
	Samples          int
	Missing          int
	Compared         int
	ObservedClusters *rnamath.Stats
	MutationRMSD     *rnamath.Stats
	MutationCorr     *rnamath.Stats
	ProportionRMSD   *rnamath.Stats
}

func newSummary(g Group) *Summary {
	return &Summary{
		Group:            g,
		ObservedClusters: rnamath.NewStats(),
		MutationRMSD:     rnamath.NewStats(),
		MutationCorr:     rnamath.NewStats(),
		ProportionRMSD:   rnamath.NewStats(),
	}
}

func (s *Summary) push(r Record) {
	s.Samples++
	if r.Missing {
		s.Missing++
		return
	}
	s.ObservedClusters.Push(float64(r.ObservedClusters))
	if !r.Compared {
		return
	}
	s.Compared++
	s.MutationRMSD.Push(float64(r.MutationRMSD))
	s.MutationCorr.Push(float64(r.MutationCorr))
	s.ProportionRMSD.Push(float64(r.ProportionRMSD))
}

// Summarise groups the records by library, order, proportions and number of reads, in grid order.
func (r Results) Summarise() []*Summary {
	index := make(map[Group]*Summary)
	summaries := make([]*Summary, 0)
	for _, rec := range r.Records {
		g := Group{
			Library:     rec.Library,
			Order:       rec.ExpectedClusters,
			Proportions: rec.ExpectedProportions,
			ReadsBin:    rec.NumReadsBin,
		}
		s, ok := index[g]
		if !ok {
			s = newSummary(g)
			index[g] = s
			summaries = append(summaries, s)
		}
		s.push(rec)
	}
	return summaries
}

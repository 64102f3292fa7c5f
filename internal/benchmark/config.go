package benchmark

import (
	"fmt"
)

// Library is a simulated sequencing library of a reference of the given length.
type Library struct {
	Length int    `json:"length"`
	Name   string `json:"name"`
}

// Config describes the grid of simulated samples to compare.
type Config struct {
	MaxClusters     int       `json:"max_clusters"`
	ProportionNames []string  `json:"proportion_names"`
	Libraries       []Library `json:"libraries"`
	NumReads        []int     `json:"num_reads"`
	NumTrials       int       `json:"num_trials"`
	// OnlyTrial restricts the grid to a single trial.
	OnlyTrial *int   `json:"only_trial,omitempty"`
	Root      string `json:"root"`
	Workers   int    `json:"workers"`
}

// Validate checks that the grid is not empty.
func (c Config) Validate() error {
	if c.MaxClusters < 1 {
		return fmt.Errorf("max clusters must be positive but was %d", c.MaxClusters)
	}
	if len(c.ProportionNames) == 0 {
		return fmt.Errorf("no proportion names")
	}
	if len(c.Libraries) == 0 {
		return fmt.Errorf("no libraries")
	}
	if len(c.NumReads) == 0 {
		return fmt.Errorf("no read counts")
	}
	if c.NumTrials < 1 {
		return fmt.Errorf("num trials must be positive but was %d", c.NumTrials)
	}
	if c.OnlyTrial != nil && (*c.OnlyTrial < 0 || *c.OnlyTrial >= c.NumTrials) {
		return fmt.Errorf("trial %d is outside [0,%d)", *c.OnlyTrial, c.NumTrials)
	}
	return nil
}

// Orders lists the expected number of clusters.
func (c Config) Orders() []int {
	oo := make([]int, c.MaxClusters)
	for i := range oo {
		oo[i] = i + 1
	}
	return oo
}

// Proportions lists the proportion sets simulated for the given order, numbered from 1.
// A single cluster has only one.
func (c Config) Proportions(order int) []int {
	n := len(c.ProportionNames)
	if order <= 1 && n > 1 {
		n = 1
	}
	pp := make([]int, n)
	for i := range pp {
		pp[i] = i + 1
	}
	return pp
}

// Trials lists the trials to include.
func (c Config) Trials() []int {
	if c.OnlyTrial != nil {
		return []int{*c.OnlyTrial}
	}
	tt := make([]int, c.NumTrials)
	for i := range tt {
		tt[i] = i
	}
	return tt
}

// Sample is one point of the grid.
type Sample struct {
	Index    int
	Order    int
	Props    int
	PropName string
	Library  Library
	Trial    int
	ReadsBin int
	Reads    int
}

// Name is the name of the simulated sample.
func (s Sample) Name() string {
	return SampleName(s.Order, s.Props, s.Library.Name, s.Reads)
}

// Ref is the name of the simulated reference.
func (s Sample) Ref() string {
	return RefName(s.Library.Length, s.Trial)
}

func (s Sample) String() string {
	return fmt.Sprintf("%s/%s", s.Name(), s.Ref())
}

// Samples enumerates the grid by order, proportions, library, trial and number of reads.
func (c Config) Samples() []Sample {
	samples := make([]Sample, 0)
	for _, order := range c.Orders() {
		for _, props := range c.Proportions(order) {
			for _, lib := range c.Libraries {
				for _, trial := range c.Trials() {
					for i, reads := range c.NumReads {
						samples = append(samples, Sample{
							Index:    len(samples),
							Order:    order,
							Props:    props,
							PropName: c.ProportionNames[props-1],
							Library:  lib,
							Trial:    trial,
							ReadsBin: i + 1,
							Reads:    reads,
						})
					}
				}
			}
		}
	}
	return samples
}

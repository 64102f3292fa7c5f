package benchmark

import (
	"fmt"
	"path/filepath"
)

const (
	MaskStep    = "mask"
	ClusterStep = "cluster"
)

// SampleName formats the name of a simulated sample.
func SampleName(order, props int, library string, reads int) string {
	return fmt.Sprintf("c%d-%d-%s-n%d", order, props, library, reads)
}

// RefName formats the name of a simulated reference. Trial 0 has no suffix.
func RefName(length, trial int) string {
	if trial == 0 {
		return fmt.Sprintf("ref-%d", length)
	}
	return fmt.Sprintf("ref-%d-%d", length, trial)
}

// Layout locates the input files of the simulated samples under a root directory.
type Layout struct {
	Root string
}

func (l Layout) join(elem ...string) string {
	return filepath.Join(append([]string{l.Root}, elem...)...)
}

// MutsParamFile is the table of the simulated mutation rates.
func (l Layout) MutsParamFile(s Sample) string {
	return l.join("sim", "params", s.Ref(), "full", fmt.Sprintf("c%d.muts.csv", s.Order))
}

// ClustsParamFile is the table of the simulated cluster proportions.
func (l Layout) ClustsParamFile(s Sample) string {
	return l.join("clusts", fmt.Sprintf("c%d-%d.csv", s.Order, s.Props))
}

func (l Layout) tableDir(s Sample) string {
	return l.join("sim", "samples", s.Name(), "table", s.Ref(), "full")
}

// PosTableFile is the table of the observed counts per position.
func (l Layout) PosTableFile(s Sample) string {
	return filepath.Join(l.tableDir(s), "clust-per-pos.csv")
}

// ClustTableFile is the table of the observed counts per cluster.
func (l Layout) ClustTableFile(s Sample) string {
	return filepath.Join(l.tableDir(s), "clust-freq.csv")
}

// ReportFile is the report written by the given step.
func (l Layout) ReportFile(step string, s Sample) string {
	return l.join("sim", "samples", s.Name(), step, s.Ref(), "full", fmt.Sprintf("%s-report.json", step))
}

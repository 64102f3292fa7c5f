package benchmark

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	rnamath "github.com/drakos74/seismic-bench/internal/math"
	"github.com/drakos74/seismic-bench/internal/storage"
	"github.com/drakos74/seismic-bench/internal/table"
)

// Record is the outcome of comparing one sample.
type Record struct {
	Index               int    `json:"index"`
	Sample              string `json:"sample"`
	Ref                 string `json:"ref"`
	ReferenceLength     int    `json:"reference_length"`
	Trial               int    `json:"trial"`
	ExpectedClusters    int    `json:"expected_clusters"`
	ExpectedProportions string `json:"expected_proportions"`
	NumReadsBin         int    `json:"num_reads_bin"`
	NumReads            int    `json:"num_reads"`
	NumUniqReads        int    `json:"num_uniq_reads"`
	Library             string `json:"library"`
	ObservedClusters    int    `json:"observed_clusters"`
	// Missing is set when any input of the sample could not be found.
	Missing bool `json:"missing"`
	// Compared is set when the observed clusters could be matched to the expected ones.
	Compared       bool             `json:"compared"`
	Assignment     []int            `json:"assignment,omitempty"`
	MutationRMSD   storage.Number   `json:"mutation_rmsd"`
	MutationNorm   storage.Number   `json:"mutation_norm"`
	MutationCorr   storage.Number   `json:"mutation_corr"`
	ProportionRMSD storage.Number   `json:"proportion_rmsd"`
	ProportionNorm storage.Number   `json:"proportion_norm"`
	Proportions    []storage.Number `json:"proportions,omitempty"`
}

func newRecord(s Sample) Record {
	nan := storage.Number(math.NaN())
	return Record{
		Index:               s.Index,
		Sample:              s.Name(),
		Ref:                 s.Ref(),
		ReferenceLength:     s.Library.Length,
		Trial:               s.Trial,
		ExpectedClusters:    s.Order,
		ExpectedProportions: s.PropName,
		NumReadsBin:         s.ReadsBin,
		Library:             s.Library.Name,
		MutationRMSD:        nan,
		MutationNorm:        nan,
		MutationCorr:        nan,
		ProportionRMSD:      nan,
		ProportionNorm:      nan,
	}
}

// LogNumReads is the decimal logarithm of the number of reads kept.
func (r Record) LogNumReads() float64 {
	return rnamath.Log10(float64(r.NumReads))
}

// ReadsHeader is the header of the table of all compared samples.
var ReadsHeader = []string{
	"ReferenceLength",
	"Trial",
	"ExpectedClusters",
	"ExpectedProportions",
	"NumReadsBin",
	"NumReads",
	"LogNumReads",
	"NumUniqReads",
	"Library",
	"ObservedClusters",
	"MutationRMSD",
	"MutationCorr",
	"ProportionRMSD",
}

func (r Record) fields() []string {
	return []string{
		strconv.Itoa(r.ReferenceLength),
		strconv.Itoa(r.Trial),
		strconv.Itoa(r.ExpectedClusters),
		r.ExpectedProportions,
		strconv.Itoa(r.NumReadsBin),
		strconv.Itoa(r.NumReads),
		rnamath.Format(r.LogNumReads()),
		strconv.Itoa(r.NumUniqReads),
		r.Library,
		strconv.Itoa(r.ObservedClusters),
		rnamath.Format(float64(r.MutationRMSD)),
		rnamath.Format(float64(r.MutationCorr)),
		rnamath.Format(float64(r.ProportionRMSD)),
	}
}

// Results are the records of a run in grid order.
type Results struct {
	Run     string   `json:"run"`
	Records []Record `json:"records"`
}

func (r *Results) sort() {
	sort.Slice(r.Records, func(i, j int) bool {
		return r.Records[i].Index < r.Records[j].Index
	})
}

// Found returns the records of the samples with all inputs present.
func (r Results) Found() []Record {
	rr := make([]Record, 0, len(r.Records))
	for _, rec := range r.Records {
		if !rec.Missing {
			rr = append(rr, rec)
		}
	}
	return rr
}

// Compared returns the records of the given order whose clusters were matched.
func (r Results) Compared(order int) []Record {
	rr := make([]Record, 0)
	for _, rec := range r.Records {
		if rec.Compared && rec.ExpectedClusters == order {
			rr = append(rr, rec)
		}
	}
	return rr
}

// Missing counts the samples with missing inputs.
func (r Results) Missing() int {
	return len(r.Records) - len(r.Found())
}

// WriteReads writes one row per sample with all inputs present.
func (r Results) WriteReads(w io.Writer) error {
	found := r.Found()
	rows := make([][]string, len(found))
	for i, rec := range found {
		rows[i] = rec.fields()
	}
	return table.WriteRecords(w, ReadsHeader, rows)
}

// WriteProportions writes one row per compared sample of the given order,
// along with the observed proportion of every cluster.
func (r Results) WriteProportions(w io.Writer, order int) error {
	header := append([]string{}, ReadsHeader...)
	for k := 1; k <= order; k++ {
		header = append(header, fmt.Sprintf("Cluster %d", k))
	}
	compared := r.Compared(order)
	rows := make([][]string, len(compared))
	for i, rec := range compared {
		if len(rec.Proportions) != order {
			return fmt.Errorf("sample '%s' has %d proportions for order %d", rec.Sample, len(rec.Proportions), order)
		}
		row := rec.fields()
		for _, p := range rec.Proportions {
			row = append(row, rnamath.Format(float64(p)))
		}
		rows[i] = row
	}
	return table.WriteRecords(w, header, rows)
}

package benchmark

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/drakos74/seismic-bench/internal/cluster"
	"github.com/drakos74/seismic-bench/internal/concurrent"
	"github.com/drakos74/seismic-bench/internal/metrics"
	"github.com/drakos74/seismic-bench/internal/report"
	"github.com/drakos74/seismic-bench/internal/storage"
	"github.com/drakos74/seismic-bench/internal/table"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	kind         = "sample"
	resultLabel  = "result"
	resultsLabel = "results"
)

// Runner compares every sample of the grid against its simulation parameters.
type Runner struct {
	run     string
	config  Config
	layout  Layout
	engine  cluster.Engine
	store   storage.Persistence
	metrics *metrics.Metrics
}

// NewRunner creates a new runner for the given config.
func NewRunner(config Config) *Runner {
	return &Runner{
		run:     uuid.New().String(),
		config:  config,
		layout:  Layout{Root: config.Root},
		engine:  cluster.NewEngine(),
		store:   storage.NewDiscard("void"),
		metrics: metrics.Observer,
	}
}

// WithEngine sets the engine used for the comparisons.
func (r *Runner) WithEngine(e cluster.Engine) *Runner {
	r.engine = e
	return r
}

// WithStorage sets where the records are persisted.
func (r *Runner) WithStorage(s storage.Persistence) *Runner {
	r.store = s
	return r
}

// WithMetrics sets the metrics the comparisons are counted on.
func (r *Runner) WithMetrics(m *metrics.Metrics) *Runner {
	r.metrics = m
	return r
}

// WithRun sets the run id instead of a random one.
func (r *Runner) WithRun(run string) *Runner {
	r.run = run
	return r
}

// ID returns the run id.
func (r *Runner) ID() string {
	return r.run
}

// Run compares all samples of the grid.
// Samples with missing inputs are recorded as such and do not stop the run.
func (r *Runner) Run(ctx context.Context) (Results, error) {
	if err := r.config.Validate(); err != nil {
		return Results{}, fmt.Errorf("invalid config: %w", err)
	}
	samples := r.config.Samples()
	records := make([]Record, len(samples))
	progress := concurrent.NewProgress(r.run, len(samples), len(r.config.NumReads))

	workers := r.config.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	log.Info().
		Str("run", r.run).
		Str("root", r.config.Root).
		Int("samples", len(samples)).
		Int("workers", workers).
		Msg("starting benchmark")

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range samples {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := r.process(s)
			if err != nil {
				r.metrics.Increment(kind, metrics.Failed)
				return fmt.Errorf("could not process sample '%s': %w", s, err)
			}
			records[i] = rec
			if err := r.store.Store(storage.Key{
				Run:    r.run,
				Sample: fmt.Sprintf("%s_%s", rec.Sample, rec.Ref),
				Label:  resultLabel,
			}, rec); err != nil {
				return fmt.Errorf("could not store sample '%s': %w", s, err)
			}
			progress.Track()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Results{}, err
	}

	results := Results{Run: r.run, Records: records}
	results.sort()
	if err := r.store.Store(storage.Key{Run: r.run, Label: resultsLabel}, results); err != nil {
		return Results{}, fmt.Errorf("could not store results: %w", err)
	}

	log.Info().
		Str("run", r.run).
		Int("samples", len(records)).
		Int("missing", results.Missing()).
		Msg("finished benchmark")
	return results, nil
}

func missing(err error) bool {
	return errors.Is(err, table.MissingFileErr)
}

// process compares a single sample.
// Missing inputs mark the record as missing and are not errors.
func (r *Runner) process(s Sample) (Record, error) {
	start := time.Now()
	defer r.metrics.Observe(kind, start)

	rec := newRecord(s)
	err := r.fill(s, &rec)
	if missing(err) {
		log.Warn().Err(err).Str("sample", s.String()).Msg("missing input")
		rec.Missing = true
		r.metrics.Increment(kind, metrics.Missing)
		return rec, nil
	}
	if err != nil {
		return Record{}, err
	}
	if rec.Compared {
		r.metrics.Increment(kind, metrics.Compared)
	} else {
		r.metrics.Increment(kind, metrics.Skipped)
	}
	return rec, nil
}

func (r *Runner) fill(s Sample, rec *Record) error {
	mask, err := report.Load(r.layout.ReportFile(MaskStep, s))
	if err != nil {
		return err
	}
	rec.NumReads, err = mask.Int(report.NumReadsKept)
	if err != nil {
		return err
	}
	clust, err := report.Load(r.layout.ReportFile(ClusterStep, s))
	if err != nil {
		return err
	}
	rec.NumUniqReads, err = clust.Int(report.NumUniqReadsKept)
	if err != nil {
		return err
	}
	rec.ObservedClusters, err = clust.Int(report.NumClusters)
	if err != nil {
		return err
	}
	if rec.ObservedClusters != s.Order {
		log.Debug().
			Str("sample", s.String()).
			Int("expected", s.Order).
			Int("observed", rec.ObservedClusters).
			Msg("cluster count differs")
		return nil
	}

	expectedMus, observedMus, err := r.mutationRates(s)
	if err != nil {
		return err
	}
	expectedPis, observedPis, err := r.proportions(s)
	if err != nil {
		return err
	}
	result, ok, err := r.engine.CompareWithProportions(expectedMus, observedMus, expectedPis, observedPis)
	if err != nil {
		return fmt.Errorf("could not compare clusters: %w", err)
	}
	if !ok {
		log.Warn().
			Str("sample", s.String()).
			Int("expected", expectedMus.K()).
			Int("observed", observedMus.K()).
			Msg("cluster tables differ in size")
		return nil
	}
	rec.Compared = true
	rec.Assignment = result.Assignment
	rec.MutationRMSD = storage.Number(result.MutationRMSD)
	rec.MutationNorm = storage.Number(result.MutationNorm)
	rec.MutationCorr = storage.Number(result.MutationCorr)
	rec.ProportionRMSD = storage.Number(result.ProportionRMSD)
	rec.ProportionNorm = storage.Number(result.ProportionNorm)
	rec.Proportions = storage.Numbers(result.Proportions)
	return nil
}

func (r *Runner) mutationRates(s Sample) (expected, observed cluster.Set, err error) {
	params, err := table.LoadPositions(r.layout.MutsParamFile(s))
	if err != nil {
		return
	}
	expected, err = table.ExpectedMutationRates(params)
	if err != nil {
		return
	}
	counts, err := table.LoadPositions(r.layout.PosTableFile(s))
	if err != nil {
		return
	}
	observed, err = table.ObservedMutationRates(counts)
	return
}

func (r *Runner) proportions(s Sample) (expected, observed []float64, err error) {
	params, err := table.LoadClusters(r.layout.ClustsParamFile(s))
	if err != nil {
		return
	}
	expected, err = table.ExpectedProportions(params)
	if err != nil {
		return
	}
	counts, err := table.LoadClusters(r.layout.ClustTableFile(s))
	if err != nil {
		return
	}
	observed, err = table.ObservedProportions(counts)
	return
}

// Package batch validates many files concurrently with bounded parallelism.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	vperrors "github.com/five82/vidprep/internal/errors"
	"github.com/five82/vidprep/internal/ffprobe"
	"github.com/five82/vidprep/internal/filter"
	"github.com/five82/vidprep/internal/logging"
	"github.com/five82/vidprep/internal/validation"
)

// Prober produces normalized metadata for one file.
type Prober interface {
	Probe(ctx context.Context, path string) (*ffprobe.Metadata, error)
}

// Observer receives per-unit progress. Calls may arrive from several
// goroutines at once.
type Observer interface {
	UnitStarted(index int, path string)
	UnitDone(report *validation.Report, elapsed time.Duration)
}

// Options configures a batch run.
type Options struct {
	// ID names the batch in logs and the summary. A random UUID is used when empty.
	ID         string
	Filters    []filter.Spec
	MaxWorkers int
	OnlyErrors bool
	Logger     *logging.Logger
}

// Validate reports configuration errors without starting any work.
func (o Options) Validate() error {
	_, err := o.build()
	return err
}

func (o Options) build() ([]filter.Filter, error) {
	if o.MaxWorkers < 1 {
		return nil, vperrors.NewConfigError(fmt.Sprintf("max workers must be at least 1, got %d", o.MaxWorkers), nil)
	}
	filters, err := filter.BuildAll(o.Filters)
	if err != nil {
		return nil, vperrors.NewConfigError("invalid filter configuration", err)
	}
	return filters, nil
}

// Summary is the outcome of a batch. Reports are in input order.
type Summary struct {
	ID        string               `json:"id"`
	Reports   []*validation.Report `json:"reports"`
	Total     int                  `json:"total"`
	Passed    int                  `json:"passed"`
	Failed    int                  `json:"failed"`
	Abandoned int                  `json:"abandoned"`
	Cancelled bool                 `json:"cancelled"`
	Elapsed   time.Duration        `json:"elapsed_ns"`
}

// Errors flattens every report's failed checks, in report order.
func (s *Summary) Errors() []validation.CheckError {
	var errs []validation.CheckError
	for _, r := range s.Reports {
		errs = append(errs, r.Errors()...)
	}
	return errs
}

// HasFailures reports whether any file failed a check or could not be checked.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}

// Run probes and checks every input. A probe failure only affects its own
// file: it is recorded in that file's report and the other files carry on.
// The returned error is non-nil only for configuration problems, which are
// detected before any file is touched.
//
// When ctx is cancelled, in-flight probes are killed and files that did not
// finish get a cancelled report. The partial summary is returned with a nil
// error and Cancelled set.
func Run(ctx context.Context, prober Prober, inputs []string, opts Options, obs Observer) (*Summary, error) {
	filters, err := opts.build()
	if err != nil {
		return nil, err
	}
	if prober == nil {
		return nil, vperrors.NewConfigError("no prober configured", nil)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	if obs == nil {
		obs = nopObserver{}
	}

	start := time.Now()
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	summary := &Summary{ID: id, Reports: []*validation.Report{}}
	if len(inputs) == 0 {
		return summary, nil
	}

	log.Info("batch started", "id", summary.ID, "files", len(inputs), "workers", opts.MaxWorkers, "filters", len(filters))

	// Each unit writes only its own slot.
	slots := make([]*validation.Report, len(inputs))

	var g errgroup.Group
	g.SetLimit(opts.MaxWorkers)

	for i, path := range inputs {
		if ctx.Err() != nil {
			break
		}
		// Go blocks while MaxWorkers units are running.
		g.Go(func() error {
			slots[i] = runUnit(ctx, prober, filters, i, path, obs, log)
			return nil
		})
	}
	_ = g.Wait()

	for i, r := range slots {
		if r == nil {
			r = validation.NewReport(inputs[i], i)
			r.Fail(vperrors.NewCancelledError())
			slots[i] = r
		}
	}

	summary.Total = len(slots)
	for _, r := range slots {
		switch {
		case r.Passed():
			summary.Passed++
		case r.Abandoned():
			summary.Abandoned++
			summary.Failed++
		default:
			summary.Failed++
		}
	}
	summary.Cancelled = summary.Abandoned > 0

	if opts.OnlyErrors {
		for _, r := range slots {
			if r.HasErrors() {
				summary.Reports = append(summary.Reports, r)
			}
		}
	} else {
		summary.Reports = slots
	}
	summary.Elapsed = time.Since(start)

	log.Info("batch complete",
		"id", summary.ID,
		"total", summary.Total,
		"passed", summary.Passed,
		"failed", summary.Failed,
		"abandoned", summary.Abandoned,
		"cancelled", summary.Cancelled,
		"elapsed", summary.Elapsed.Round(time.Millisecond),
	)
	return summary, nil
}

func runUnit(ctx context.Context, prober Prober, filters []filter.Filter, index int, path string, obs Observer, log *logging.Logger) *validation.Report {
	start := time.Now()
	obs.UnitStarted(index, path)
	log.Debug("validating file", "index", index, "path", path)

	report := validation.NewReport(path, index)
	if ctx.Err() != nil {
		report.Fail(vperrors.NewCancelledError())
		obs.UnitDone(report, time.Since(start))
		return report
	}

	m, err := prober.Probe(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			err = vperrors.NewCancelledError()
		}
		report.Fail(err)
		if !report.Abandoned() {
			log.Warn("probe failed", "path", path, "error", err)
		}
	} else {
		report.Metadata = m
		for _, f := range filters {
			report.Record(f.Apply(m))
		}
	}

	elapsed := time.Since(start)
	log.Debug("file done", "index", index, "path", path, "passed", report.Passed(), "elapsed", elapsed.Round(time.Millisecond))
	obs.UnitDone(report, elapsed)
	return report
}

type nopObserver struct{}

func (nopObserver) UnitStarted(int, string) {}

func (nopObserver) UnitDone(*validation.Report, time.Duration) {}

// Observers fans callbacks out to several observers in order.
type Observers []Observer

func (o Observers) UnitStarted(index int, path string) {
	for _, obs := range o {
		obs.UnitStarted(index, path)
	}
}

func (o Observers) UnitDone(report *validation.Report, elapsed time.Duration) {
	for _, obs := range o {
		obs.UnitDone(report, elapsed)
	}
}

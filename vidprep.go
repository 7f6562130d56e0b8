// Package vidprep validates video files before they enter a machine-learning
// pipeline.
//
// Each file is probed once with ffprobe and the normalized metadata is run
// through a list of quality-gate checks. Batches run with bounded
// parallelism; a file that cannot be probed is reported as a failure without
// affecting the rest of the batch, and results always come back in input
// order.
//
// Basic usage:
//
//	v, err := vidprep.New(vidprep.WithProbeTimeout(10 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	filters, err := v.ParseFilters([]string{"missing_video", "resolution:640x480", "duration:5"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := v.ValidateVideos(ctx, []string{"a.mp4", "b.mp4"}, filters, 4, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, e := range summary.Errors() {
//	    fmt.Printf("%s: %s: %s\n", e.File, e.Check, e.Message)
//	}
package vidprep

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/five82/vidprep/internal/batch"
	"github.com/five82/vidprep/internal/config"
	"github.com/five82/vidprep/internal/discovery"
	"github.com/five82/vidprep/internal/ffprobe"
	"github.com/five82/vidprep/internal/filter"
	"github.com/five82/vidprep/internal/logging"
	"github.com/five82/vidprep/internal/metrics"
	"github.com/five82/vidprep/internal/reporter"
	"github.com/five82/vidprep/internal/util"
	"github.com/five82/vidprep/internal/validation"
)

// Re-exported types.
type (
	Metadata       = ffprobe.Metadata
	VideoStream    = ffprobe.VideoStream
	AudioStream    = ffprobe.AudioStream
	RawProbeResult = ffprobe.RawProbeResult
	FilterResult   = filter.Result
	Filter         = filter.Filter
	Spec           = filter.Spec
	Params         = filter.Params
	Report         = validation.Report
	CheckError     = validation.CheckError
	UnitFailure    = validation.UnitFailure
	Session        = validation.Session
	Summary        = batch.Summary
	Reporter       = reporter.Reporter
	Logger         = logging.Logger
	Metrics        = metrics.Collector
	Profile        = config.Profile
)

// Check names.
const (
	FilterMissingVideo = filter.NameMissingVideo
	FilterMissingAudio = filter.NameMissingAudio
	FilterResolution   = filter.NameResolution
	FilterDuration     = filter.NameDuration
	FilterCodecs       = filter.NameCodecs
)

// Threshold profiles.
const (
	ProfileDefault = config.ProfileDefault
	ProfileHD      = config.ProfileHD
	ProfileLenient = config.ProfileLenient
)

// ErrNotProbed is returned by Session.Metadata before a successful Run.
var ErrNotProbed = validation.ErrNotProbed

// ParseProfile converts a profile name to a Profile value.
// Valid values are "default", "hd" and "lenient" (case-insensitive).
func ParseProfile(s string) (Profile, error) {
	return config.ParseProfile(s)
}

// Validator is the main entry point. It is safe for concurrent use.
type Validator struct {
	config   *config.Config
	prober   *ffprobe.Prober
	reporter reporter.Reporter
	logger   *logging.Logger
	metrics  *metrics.Collector
}

type options struct {
	cfg      *config.Config
	reporter reporter.Reporter
	logger   *logging.Logger
	metrics  *metrics.Collector
}

// Option configures the validator.
type Option func(*options)

// New creates a new Validator with the given options.
func New(opts ...Option) (*Validator, error) {
	o := &options{cfg: config.NewConfig()}
	for _, opt := range opts {
		opt(o)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	if o.reporter == nil {
		o.reporter = reporter.NullReporter{}
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	return &Validator{
		config:   o.cfg,
		prober:   ffprobe.NewProber(o.cfg.FFprobePath, o.cfg.ProbeTimeout),
		reporter: o.reporter,
		logger:   o.logger,
		metrics:  o.metrics,
	}, nil
}

// WithFFprobePath sets the ffprobe executable.
func WithFFprobePath(path string) Option {
	return func(o *options) {
		o.cfg.FFprobePath = path
	}
}

// WithProbeTimeout bounds each ffprobe invocation.
func WithProbeTimeout(d time.Duration) Option {
	return func(o *options) {
		o.cfg.ProbeTimeout = d
	}
}

// WithMaxWorkers sets the default worker count used by Validate.
func WithMaxWorkers(n int) Option {
	return func(o *options) {
		o.cfg.MaxWorkers = n
	}
}

// WithOnlyErrors makes Validate keep only reports with failures.
func WithOnlyErrors() Option {
	return func(o *options) {
		o.cfg.OnlyErrors = true
	}
}

// WithProfile applies a threshold profile to parameterless checks.
func WithProfile(p Profile) Option {
	return func(o *options) {
		o.cfg.ApplyProfile(p)
	}
}

// WithMinResolution sets the bounds used by a parameterless resolution check.
func WithMinResolution(width, height int) Option {
	return func(o *options) {
		o.cfg.MinWidth = width
		o.cfg.MinHeight = height
	}
}

// WithMinDuration sets the minimum used by a parameterless duration check.
func WithMinDuration(seconds float64) Option {
	return func(o *options) {
		o.cfg.MinDurationSecs = seconds
	}
}

// WithAllowedCodecs sets the list used by a parameterless codecs check.
func WithAllowedCodecs(codecs ...string) Option {
	return func(o *options) {
		o.cfg.AllowedCodecs = append([]string(nil), codecs...)
	}
}

// WithDefaultFilters sets the checks Validate runs.
func WithDefaultFilters(names ...string) Option {
	return func(o *options) {
		o.cfg.DefaultFilters = append([]string(nil), names...)
	}
}

// WithReporter sends progress events to rep.
func WithReporter(rep Reporter) Option {
	return func(o *options) {
		o.reporter = rep
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records batch metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	return metrics.New()
}

// ParseFilters parses check specs such as "resolution:640x480". Checks named
// without parameters take the configured thresholds. An empty list yields
// the configured default checks.
func (v *Validator) ParseFilters(list []string) ([]Spec, error) {
	if len(list) == 0 {
		list = v.config.DefaultFilters
	}
	specs, err := filter.ParseAll(list, filter.Defaults{
		MinWidth:   v.config.MinWidth,
		MinHeight:  v.config.MinHeight,
		MinSeconds: v.config.MinDurationSecs,
		Allowed:    v.config.AllowedCodecs,
	})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

// ValidateVideos probes and checks every input with at most maxWorkers
// probes in flight. The summary holds one report per input in input order,
// or only the failing reports when onlyErrors is set. The error is non-nil
// only for invalid configuration. Cancelling ctx returns a partial summary.
func (v *Validator) ValidateVideos(ctx context.Context, inputs []string, filters []Spec, maxWorkers int, onlyErrors bool) (*Summary, error) {
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.String()
	}

	opts := batch.Options{
		ID:         uuid.NewString(),
		Filters:    filters,
		MaxWorkers: maxWorkers,
		OnlyErrors: onlyErrors,
		Logger:     v.logger,
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if len(inputs) > 0 {
		v.reporter.BatchStarted(reporter.BatchStartInfo{
			ID:         opts.ID,
			TotalFiles: len(inputs),
			Workers:    maxWorkers,
			Filters:    names,
			Hostname:   util.Host().Hostname,
		})
	}

	observers := batch.Observers{newProgressObserver(v.reporter, len(inputs))}
	if v.metrics != nil {
		observers = append(observers, v.metrics)
	}

	summary, err := batch.Run(ctx, v.prober, inputs, opts, observers)
	if err != nil {
		return nil, err
	}

	if v.metrics != nil && summary.Total > 0 {
		v.metrics.BatchDone(summary.Cancelled)
	}
	if summary.Total > 0 {
		v.reporter.BatchComplete(batchSummary(summary))
	}
	return summary, nil
}

// Validate runs the configured default checks with the configured worker
// count and OnlyErrors setting.
func (v *Validator) Validate(ctx context.Context, inputs []string) (*Summary, error) {
	filters, err := v.ParseFilters(nil)
	if err != nil {
		return nil, err
	}
	return v.ValidateVideos(ctx, inputs, filters, v.config.MaxWorkers, v.config.OnlyErrors)
}

// Open starts a single-file session. Nothing is probed until Session.Run.
func (v *Validator) Open(path string) *Session {
	return validation.NewSession(v.prober, path)
}

// Probe returns normalized metadata for one file.
func (v *Validator) Probe(ctx context.Context, path string) (*Metadata, error) {
	return v.prober.Probe(ctx, path)
}

// ProbeRaw returns the parsed ffprobe output for one file.
func (v *Validator) ProbeRaw(ctx context.Context, path string) (*RawProbeResult, error) {
	return v.prober.Run(ctx, path)
}

// Inspect probes one file and sends a summary of it to the reporter.
func (v *Validator) Inspect(ctx context.Context, path string) (*Metadata, error) {
	m, err := v.prober.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	v.reporter.ProbeResult(probeSummary(path, m))
	return m, nil
}

// CheckFFprobe reports whether the configured ffprobe can be found.
func (v *Validator) CheckFFprobe() error {
	return v.prober.Check()
}

// MaxWorkers returns the configured default worker count.
func (v *Validator) MaxWorkers() int {
	return v.config.MaxWorkers
}

// FindVideos finds video files directly inside dir, sorted by name.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}

// FindVideosRecursive finds video files anywhere under dir, sorted by path.
func FindVideosRecursive(dir string) ([]string, error) {
	res, err := discovery.Find(dir, discovery.Options{Recursive: true}, nil)
	if err != nil {
		return nil, err
	}
	return res.Files, nil
}

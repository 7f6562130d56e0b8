package validation

import (
	"context"
	"errors"

	"github.com/five82/vidprep/internal/ffprobe"
	"github.com/five82/vidprep/internal/filter"
)

// ErrNotProbed is returned by Session.Metadata before a successful Run.
var ErrNotProbed = errors.New("file has not been probed")

// RawProber runs the probe tool for one file. This interface allows sessions
// to be tested without ffprobe installed.
type RawProber interface {
	Run(ctx context.Context, path string) (*ffprobe.RawProbeResult, error)
}

// Session checks one file interactively: probe once, then apply checks one
// at a time. Every check is recorded into the session's report and results
// accumulate for the life of the session. A Session is not safe for
// concurrent use.
type Session struct {
	prober RawProber
	report *Report

	raw      *ffprobe.RawProbeResult
	metadata *ffprobe.Metadata
}

// NewSession creates a session for path.
func NewSession(prober RawProber, path string) *Session {
	return &Session{prober: prober, report: NewReport(path, 0)}
}

// Path returns the file the session checks.
func (s *Session) Path() string {
	return s.report.Path
}

// Run probes the file. The raw result is cached and later calls return it
// without probing again. A failed probe is not cached.
func (s *Session) Run(ctx context.Context) (*ffprobe.RawProbeResult, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	raw, err := s.prober.Run(ctx, s.report.Path)
	if err != nil {
		return nil, err
	}
	s.raw = raw
	return raw, nil
}

// Metadata returns the normalized metadata, computing it on first use.
func (s *Session) Metadata() (*ffprobe.Metadata, error) {
	if s.raw == nil {
		return nil, ErrNotProbed
	}
	if s.metadata == nil {
		s.metadata = ffprobe.Normalize(s.raw)
		s.report.Metadata = s.metadata
	}
	return s.metadata, nil
}

// Apply evaluates f, records the result and reports whether it passed.
func (s *Session) Apply(f filter.Filter) bool {
	m, err := s.Metadata()
	if err != nil {
		s.report.Record(filter.Result{
			Check:   f.Name(),
			Passed:  false,
			Message: "file has not been probed",
		})
		return false
	}
	res := f.Apply(m)
	s.report.Record(res)
	return res.Passed
}

func (s *Session) FilterMissingVideo() bool {
	return s.Apply(filter.MissingVideo())
}

func (s *Session) FilterMissingAudio() bool {
	return s.Apply(filter.MissingAudio())
}

func (s *Session) FilterResolution(minWidth, minHeight int) bool {
	return s.Apply(filter.Resolution(minWidth, minHeight))
}

func (s *Session) FilterDuration(minSeconds float64) bool {
	return s.Apply(filter.Duration(minSeconds))
}

func (s *Session) FilterCodecs(allowed ...string) bool {
	return s.Apply(filter.Codecs(allowed...))
}

// ExportErrors returns every failed check recorded so far.
func (s *Session) ExportErrors() []CheckError {
	return s.report.Errors()
}

// Report returns the session's report.
func (s *Session) Report() *Report {
	return s.report
}

package vidprep

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/vidprep/internal/batch"
	"github.com/five82/vidprep/internal/ffprobe"
	"github.com/five82/vidprep/internal/reporter"
	"github.com/five82/vidprep/internal/util"
	"github.com/five82/vidprep/internal/validation"
)

// progressObserver turns batch callbacks into reporter events. Callbacks
// arrive from worker goroutines and are serialized here.
type progressObserver struct {
	mu        sync.Mutex
	rep       reporter.Reporter
	total     int
	completed int
}

func newProgressObserver(rep reporter.Reporter, total int) *progressObserver {
	return &progressObserver{rep: rep, total: total}
}

func (o *progressObserver) UnitStarted(int, string) {}

func (o *progressObserver) UnitDone(r *validation.Report, elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.completed++
	o.rep.FileValidated(fileResult(r, o.completed, o.total, elapsed))
}

func fileResult(r *validation.Report, completed, total int, elapsed time.Duration) reporter.FileResult {
	var failures []reporter.CheckFailure
	for _, e := range r.Errors() {
		failures = append(failures, reporter.CheckFailure{Check: e.Check, Message: e.Message})
	}
	return reporter.FileResult{
		Index:      r.Index,
		Completed:  completed,
		TotalFiles: total,
		Path:       r.Path,
		Passed:     r.Passed(),
		Abandoned:  r.Abandoned(),
		Failures:   failures,
		Elapsed:    elapsed,
	}
}

func batchSummary(s *batch.Summary) reporter.BatchSummary {
	errs := s.Errors()
	records := make([]reporter.ErrorRecord, len(errs))
	for i, e := range errs {
		records[i] = reporter.ErrorRecord{File: e.File, Check: e.Check, Message: e.Message}
	}
	return reporter.BatchSummary{
		ID:        s.ID,
		Total:     s.Total,
		Passed:    s.Passed,
		Failed:    s.Failed,
		Abandoned: s.Abandoned,
		Cancelled: s.Cancelled,
		Elapsed:   s.Elapsed,
		Errors:    records,
	}
}

func probeSummary(path string, m *ffprobe.Metadata) reporter.ProbeSummary {
	s := reporter.ProbeSummary{
		Path:     path,
		Format:   m.FormatName,
		Duration: util.FormatOptionalDuration(m.Duration),
		Size:     "unknown",
		BitRate:  util.FormatBitRate(m.BitRate),
		HasVideo: m.HasVideo(),
		HasAudio: m.HasAudio(),
	}
	if s.Format == "" {
		s.Format = "unknown"
	}
	if m.SizeBytes > 0 {
		s.Size = util.FormatBytes(uint64(m.SizeBytes))
	}
	if m.HasVideo() {
		s.Video = fmt.Sprintf("%s, %s", m.Video.CodecName, util.FormatResolution(m.Video.Width, m.Video.Height))
	}
	if m.HasAudio() {
		s.Audio = m.Audio.CodecName
	}
	return s
}

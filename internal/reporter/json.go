package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JSONReporter outputs one JSON event per line. Every event carries a unique
// event_id, and batch events carry the batch ID.
type JSONReporter struct {
	writer  io.Writer
	mu      sync.Mutex
	batchID string
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(event map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event["event_id"] = uuid.NewString()
	event["timestamp"] = r.timestamp()
	if r.batchID != "" {
		event["batch_id"] = r.batchID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.mu.Lock()
	r.batchID = info.ID
	r.mu.Unlock()

	r.write(map[string]any{
		"type":        "batch_started",
		"total_files": info.TotalFiles,
		"workers":     info.Workers,
		"filters":     info.Filters,
		"hostname":    info.Hostname,
	})
}

func (r *JSONReporter) FileValidated(result FileResult) {
	failures := make([]map[string]string, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = map[string]string{"check": f.Check, "message": f.Message}
	}

	r.write(map[string]any{
		"type":        "file_validated",
		"index":       result.Index,
		"completed":   result.Completed,
		"total_files": result.TotalFiles,
		"path":        result.Path,
		"passed":      result.Passed,
		"abandoned":   result.Abandoned,
		"failures":    failures,
		"elapsed_ms":  result.Elapsed.Milliseconds(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	errs := make([]map[string]string, len(summary.Errors))
	for i, e := range summary.Errors {
		errs[i] = map[string]string{"file": e.File, "check": e.Check, "message": e.Message}
	}

	r.write(map[string]any{
		"type":       "batch_complete",
		"total":      summary.Total,
		"passed":     summary.Passed,
		"failed":     summary.Failed,
		"abandoned":  summary.Abandoned,
		"cancelled":  summary.Cancelled,
		"elapsed_ms": summary.Elapsed.Milliseconds(),
		"errors":     errs,
	})

	r.mu.Lock()
	r.batchID = ""
	r.mu.Unlock()
}

func (r *JSONReporter) ProbeResult(summary ProbeSummary) {
	r.write(map[string]any{
		"type":      "probe_result",
		"path":      summary.Path,
		"format":    summary.Format,
		"duration":  summary.Duration,
		"size":      summary.Size,
		"bit_rate":  summary.BitRate,
		"video":     summary.Video,
		"audio":     summary.Audio,
		"has_video": summary.HasVideo,
		"has_audio": summary.HasAudio,
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]any{
		"type":    "warning",
		"message": message,
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]any{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
	})
}

// Verbose messages are for humans and are not emitted as events.
func (r *JSONReporter) Verbose(string) {}

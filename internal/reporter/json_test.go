package reporter

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func decodeEvents(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var events []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var ev map[string]any
		if err := json.Unmarshal(sc.Bytes(), &ev); err != nil {
			t.Fatalf("line %q is not JSON: %v", sc.Text(), err)
		}
		events = append(events, ev)
	}
	return events
}

func TestJSONReporter_BatchEvents(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)

	r.BatchStarted(BatchStartInfo{ID: "batch-1", TotalFiles: 2, Workers: 2, Filters: []string{"missing_audio"}})
	r.FileValidated(FileResult{Index: 1, Completed: 1, TotalFiles: 2, Path: "b.mp4",
		Failures: []CheckFailure{{Check: "missing_audio", Message: "no audio stream found"}},
		Elapsed:  25 * time.Millisecond,
	})
	r.Verbose("not an event")
	r.BatchComplete(BatchSummary{ID: "batch-1", Total: 2, Passed: 1, Failed: 1,
		Errors: []ErrorRecord{{File: "b.mp4", Check: "missing_audio", Message: "no audio stream found"}},
	})
	r.Warning("after batch")

	events := decodeEvents(t, &buf)
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	wantTypes := []string{"batch_started", "file_validated", "batch_complete", "warning"}
	seen := map[string]bool{}
	for i, ev := range events {
		if ev["type"] != wantTypes[i] {
			t.Errorf("event %d type = %v, want %s", i, ev["type"], wantTypes[i])
		}
		id, _ := ev["event_id"].(string)
		if id == "" || seen[id] {
			t.Errorf("event %d has missing or duplicate event_id %q", i, id)
		}
		seen[id] = true
	}

	for _, ev := range events[:3] {
		if ev["batch_id"] != "batch-1" {
			t.Errorf("%v: batch_id = %v, want batch-1", ev["type"], ev["batch_id"])
		}
	}
	if _, ok := events[3]["batch_id"]; ok {
		t.Error("warning after batch still carries batch_id")
	}

	file := events[1]
	if file["path"] != "b.mp4" || file["passed"] != false || file["elapsed_ms"] != float64(25) {
		t.Errorf("file_validated = %v", file)
	}
	failures, _ := file["failures"].([]any)
	if len(failures) != 1 {
		t.Errorf("failures = %v, want one entry", file["failures"])
	}

	errs, _ := events[2]["errors"].([]any)
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one entry", events[2]["errors"])
	}
	rec := errs[0].(map[string]any)
	if rec["file"] != "b.mp4" || rec["check"] != "missing_audio" {
		t.Errorf("error record = %v", rec)
	}
}

func TestJSONReporter_ProbeResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporterWithWriter(&buf)
	r.ProbeResult(ProbeSummary{Path: "a.mp4", Video: "h264 1280x720", HasVideo: true})

	events := decodeEvents(t, &buf)
	if len(events) != 1 || events[0]["type"] != "probe_result" || events[0]["has_video"] != true {
		t.Errorf("events = %v", events)
	}
}

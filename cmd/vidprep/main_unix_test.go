//go:build unix

package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeFFprobe writes a script that serves the 720p fixture and fails for
// paths containing "corrupt".
func fakeFFprobe(t *testing.T) string {
	t.Helper()
	fixture, err := filepath.Abs(filepath.Join("..", "..", "internal", "ffprobe", "testdata", "video_720p_h264_aac.json"))
	if err != nil {
		t.Fatal(err)
	}
	script := `#!/bin/sh
for last; do :; done
case "$last" in
*corrupt*) echo "moov atom not found" >&2; exit 1 ;;
esac
cat '` + fixture + `'
`
	path := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func videoDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestValidateCmd_AllPass(t *testing.T) {
	dir := videoDir(t, "a.mp4", "b.mkv")
	out, err := execute(t, "validate", "--no-log", "--json", "--ffprobe", fakeFFprobe(t),
		"-i", dir, "-f", "missing_video", "-f", "resolution:640x480")
	if err != nil {
		t.Fatalf("validate error = %v\n%s", err, out)
	}

	var last map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		last = nil
		if err := json.Unmarshal(sc.Bytes(), &last); err != nil {
			t.Fatalf("bad event %q: %v", sc.Text(), err)
		}
	}
	if last["type"] != "batch_complete" || last["passed"] != float64(2) {
		t.Errorf("last event = %v", last)
	}
}

func TestValidateCmd_Failures(t *testing.T) {
	dir := videoDir(t, "a.mp4", "corrupt.mp4")
	metrics := filepath.Join(t.TempDir(), "vidprep.prom")
	logDir := t.TempDir()

	_, err := execute(t, "validate", "--json", "--ffprobe", fakeFFprobe(t),
		"--log-dir", logDir, "--metrics-file", metrics, "--workers", "2", dir)
	if code := exitCode(err); code != exitFailures {
		t.Fatalf("exit code = %d (%v), want %d", code, err, exitFailures)
	}

	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), `vidprep_files_total{outcome="probe_error"} 1`) {
		t.Errorf("metrics file missing probe_error count:\n%s", data)
	}

	logs, err := filepath.Glob(filepath.Join(logDir, "vidprep_validate_run_*.log"))
	if err != nil || len(logs) != 1 {
		t.Errorf("log files = %v (%v), want one", logs, err)
	}
}

func TestProbeCmd_Raw(t *testing.T) {
	dir := videoDir(t, "a.mp4")
	out, err := execute(t, "probe", "--raw", "--ffprobe", fakeFFprobe(t), filepath.Join(dir, "a.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	var raw struct {
		Streams []map[string]any `json:"streams"`
	}
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(raw.Streams) != 2 {
		t.Errorf("streams = %d, want 2", len(raw.Streams))
	}
}

func TestProbeCmd_JSONSummary(t *testing.T) {
	dir := videoDir(t, "a.mp4")
	out, err := execute(t, "probe", "--json", "--ffprobe", fakeFFprobe(t), filepath.Join(dir, "a.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &ev); err != nil {
		t.Fatalf("output is not a JSON event: %v\n%s", err, out)
	}
	if ev["type"] != "probe_result" || ev["has_video"] != true {
		t.Errorf("event = %v", ev)
	}
}

func TestValidateCmd_EventsFile(t *testing.T) {
	dir := videoDir(t, "a.mp4")
	events := filepath.Join(t.TempDir(), "events.ndjson")

	if _, err := execute(t, "validate", "--no-log", "--ffprobe", fakeFFprobe(t), "--events-file", events, dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(events)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("events = %d lines, want 3:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[1], `"type":"file_validated"`) {
		t.Errorf("second event = %s", lines[1])
	}
}

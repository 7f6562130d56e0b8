package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	vperrors "github.com/five82/vidprep/internal/errors"
	"github.com/five82/vidprep/internal/logging"
	"github.com/five82/vidprep/internal/reporter"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"failures", errFailures, exitFailures},
		{"usage", usageError(errors.New("bad flag")), exitUsage},
		{"other", errors.New("boom"), exitFailures},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName+" version "+appVersion) {
		t.Errorf("output = %q", out)
	}
}

func TestValidateCmd_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no inputs", []string{"validate", "--no-log"}},
		{"unknown flag", []string{"validate", "--bogus"}},
		{"unknown filter", []string{"validate", "--no-log", "-i", "a.mp4", "-f", "sharpness"}},
		{"bad filter params", []string{"validate", "--no-log", "-i", "a.mp4", "-f", "resolution:wide"}},
		{"bad profile", []string{"validate", "--no-log", "-i", "a.mp4", "--profile", "ultra"}},
		{"zero workers", []string{"validate", "--no-log", "-i", "a.mp4", "--workers", "0"}},
		{"zero timeout", []string{"validate", "--no-log", "-i", "a.mp4", "--probe-timeout", "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if code := exitCode(err); code != exitUsage {
				t.Errorf("exit code = %d (%v), want %d", code, err, exitUsage)
			}
		})
	}
}

func TestResolveInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "A.MKV", "notes.txt", filepath.Join("sub", "c.mov")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	single := filepath.Join(dir, "b.mp4")

	files, err := resolveInputs([]string{dir, single}, false, logging.Discard(), reporter.NullReporter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "A.MKV"), single}
	if strings.Join(files, "|") != strings.Join(want, "|") {
		t.Errorf("files = %v, want %v", files, want)
	}

	files, err = resolveInputs([]string{dir}, true, logging.Discard(), reporter.NullReporter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Errorf("recursive files = %v, want 3", files)
	}
}

func TestResolveInputs_Errors(t *testing.T) {
	empty := t.TempDir()
	_, err := resolveInputs([]string{empty}, false, logging.Discard(), reporter.NullReporter{})
	if !vperrors.IsKind(err, vperrors.KindNoFilesFound) {
		t.Errorf("empty dir error = %v, want NoFilesFound", err)
	}

	_, err = resolveInputs([]string{filepath.Join(empty, "missing.mp4")}, false, logging.Discard(), reporter.NullReporter{})
	if exitCode(err) != exitUsage {
		t.Errorf("missing path error = %v, want usage error", err)
	}
}

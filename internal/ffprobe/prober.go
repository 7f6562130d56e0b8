package ffprobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	vperrors "github.com/five82/vidprep/internal/errors"
)

const (
	// DefaultBinary is the probe executable looked up on PATH.
	DefaultBinary = "ffprobe"

	// DefaultTimeout bounds one probe when the Prober has none configured.
	DefaultTimeout = 30 * time.Second

	// waitDelay bounds how long Wait blocks on output pipes after the process is killed.
	waitDelay = 2 * time.Second

	// maxStderr caps the diagnostic text carried in a ProbeError.
	maxStderr = 2048
)

// ErrNotFound is returned by Check when the probe binary is not on PATH.
var ErrNotFound = errors.New("ffprobe not found on PATH")

// Prober runs ffprobe as a bounded subprocess. The zero value uses
// DefaultBinary and DefaultTimeout. A Prober holds no per-file state and is
// safe for concurrent use.
type Prober struct {
	Binary  string
	Timeout time.Duration
}

// NewProber creates a prober for the given binary and per-file timeout.
func NewProber(binary string, timeout time.Duration) *Prober {
	return &Prober{Binary: binary, Timeout: timeout}
}

func (p *Prober) binary() string {
	if p == nil || p.Binary == "" {
		return DefaultBinary
	}
	return p.Binary
}

func (p *Prober) timeout() time.Duration {
	if p == nil || p.Timeout <= 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

// Check verifies the probe binary can be found.
func (p *Prober) Check() error {
	if _, err := exec.LookPath(p.binary()); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, p.binary())
	}
	return nil
}

// Run executes ffprobe for path and returns the parsed report.
//
// Errors are a ProbeError when the tool is missing, exits non-zero, or prints
// unparseable output; a ProbeTimeout when the run exceeds the configured bound;
// and a cancellation error when ctx is done first. The probe is never retried.
func (p *Prober) Run(ctx context.Context, path string) (*RawProbeResult, error) {
	if ctx.Err() != nil {
		return nil, vperrors.NewCancelledError()
	}

	bin := p.binary()
	limit := p.timeout()

	runCtx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	cmd := exec.CommandContext(runCtx, bin,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	if err := cmd.Run(); err != nil {
		switch {
		case ctx.Err() != nil:
			return nil, vperrors.NewCancelledError()
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			return nil, vperrors.NewProbeTimeoutError(path, limit)
		}
		return nil, vperrors.NewProbeError(path, vperrors.WrapExecError(bin, err, trimStderr(stderr.String())))
	}

	raw, err := ParseOutput(stdout.Bytes())
	if err != nil {
		return nil, vperrors.NewProbeError(path, err)
	}
	return raw, nil
}

// Probe runs ffprobe for path and returns normalized metadata.
func (p *Prober) Probe(ctx context.Context, path string) (*Metadata, error) {
	raw, err := p.Run(ctx, path)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

func trimStderr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		s = s[len(s)-maxStderr:]
	}
	return s
}

package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/five82/vidprep/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu          sync.Mutex
	out         io.Writer
	progressOut io.Writer
	progress    *progressbar.ProgressBar
	verbose     bool
	cyan        *color.Color
	green       *color.Color
	yellow      *color.Color
	red         *color.Color
	magenta     *color.Color
	faint       *color.Color
	bold        *color.Color
}

// NewTerminalReporter creates a terminal reporter writing to stdout, with
// the progress bar on stderr.
func NewTerminalReporter(verbose bool) *TerminalReporter {
	return newTerminalReporter(os.Stdout, os.Stderr, verbose)
}

// NewTerminalReporterWithWriter creates a terminal reporter that writes text
// to w and draws no progress bar.
func NewTerminalReporterWithWriter(w io.Writer, verbose bool) *TerminalReporter {
	return newTerminalReporter(w, io.Discard, verbose)
}

func newTerminalReporter(out, progressOut io.Writer, verbose bool) *TerminalReporter {
	return &TerminalReporter{
		out:         out,
		progressOut: progressOut,
		verbose:     verbose,
		cyan:        color.New(color.FgCyan, color.Bold),
		green:       color.New(color.FgGreen),
		yellow:      color.New(color.FgYellow, color.Bold),
		red:         color.New(color.FgRed, color.Bold),
		magenta:     color.New(color.FgMagenta),
		faint:       color.New(color.Faint),
		bold:        color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

// clearProgress must be called with r.mu held.
func (r *TerminalReporter) clearProgress() {
	if r.progress != nil {
		_ = r.progress.Clear()
	}
}

// finishProgress must be called with r.mu held.
func (r *TerminalReporter) finishProgress() {
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishProgress()

	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, "VALIDATION")
	r.printLabel(8, "Files:", fmt.Sprint(info.TotalFiles))
	r.printLabel(8, "Workers:", fmt.Sprint(info.Workers))
	r.printLabel(8, "Checks:", strings.Join(info.Filters, ", "))
	if r.verbose && info.Hostname != "" {
		r.printLabel(8, "Host:", info.Hostname)
	}
	_, _ = fmt.Fprintln(r.out)

	r.progress = progressbar.NewOptions(
		info.TotalFiles,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.progressOut),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Probing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) FileValidated(result FileResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !result.Passed || r.verbose {
		r.clearProgress()
		r.printFile(result)
	}

	if r.progress != nil {
		_ = r.progress.Add(1)
		r.progress.Describe(util.GetFilename(result.Path))
	}
}

func (r *TerminalReporter) printFile(result FileResult) {
	name := util.GetFilename(result.Path)
	switch {
	case result.Passed:
		_, _ = fmt.Fprintf(r.out, "  %s %s %s\n", r.green.Sprint("✓"), name,
			r.faint.Sprint(util.FormatElapsed(result.Elapsed)))
	case result.Abandoned:
		_, _ = fmt.Fprintf(r.out, "  %s %s %s\n", r.yellow.Sprint("-"), name, r.faint.Sprint("(cancelled)"))
	default:
		_, _ = fmt.Fprintf(r.out, "  %s %s\n", r.red.Sprint("✗"), name)
		for _, f := range result.Failures {
			_, _ = fmt.Fprintf(r.out, "      %s %s: %s\n", r.magenta.Sprint("›"), f.Check, f.Message)
		}
	}
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finishProgress()

	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, "SUMMARY")
	if summary.Failed == 0 {
		_, _ = fmt.Fprintf(r.out, "  %s\n", color.New(color.FgGreen, color.Bold).Sprintf("All %d files passed", summary.Total))
	} else {
		_, _ = fmt.Fprintf(r.out, "  %s\n", r.bold.Sprintf("%d of %d files passed", summary.Passed, summary.Total))
	}
	_, _ = fmt.Fprintf(r.out, "  Passed: %s, failed: %s",
		r.green.Sprint(summary.Passed),
		r.red.Sprint(summary.Failed-summary.Abandoned))
	if summary.Abandoned > 0 {
		_, _ = fmt.Fprintf(r.out, ", not checked: %s", r.yellow.Sprint(summary.Abandoned))
	}
	_, _ = fmt.Fprintln(r.out)
	_, _ = fmt.Fprintf(r.out, "  Time: %s\n", util.FormatElapsed(summary.Elapsed))

	if summary.Cancelled {
		_, _ = fmt.Fprintf(r.out, "  %s\n", r.yellow.Sprint("Batch was cancelled; results are partial"))
	}
}

func (r *TerminalReporter) ProbeResult(summary ProbeSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.out)
	_, _ = r.cyan.Fprintln(r.out, "VIDEO")
	const w = 9
	r.printLabel(w, "File:", summary.Path)
	r.printLabel(w, "Format:", summary.Format)
	r.printLabel(w, "Duration:", summary.Duration)
	r.printLabel(w, "Size:", summary.Size)
	r.printLabel(w, "Bitrate:", summary.BitRate)
	if summary.HasVideo {
		r.printLabel(w, "Video:", summary.Video)
	} else {
		r.printLabel(w, "Video:", r.faint.Sprint("none"))
	}
	if summary.HasAudio {
		r.printLabel(w, "Audio:", summary.Audio)
	} else {
		r.printLabel(w, "Audio:", r.faint.Sprint("none"))
	}
}

func (r *TerminalReporter) Warning(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearProgress()
	_, _ = r.yellow.Fprintf(r.out, "WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearProgress()
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	if !r.verbose {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearProgress()
	_, _ = fmt.Fprintf(r.out, "  %s\n", r.faint.Sprint(message))
}

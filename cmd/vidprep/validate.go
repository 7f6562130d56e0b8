package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/vidprep"
	"github.com/five82/vidprep/internal/config"
	"github.com/five82/vidprep/internal/logging"
	"github.com/five82/vidprep/internal/reporter"
)

// validateArgs holds the parsed flags for the validate command.
type validateArgs struct {
	inputs       []string
	filters      []string
	workers      int
	onlyErrors   bool
	recursive    bool
	probeTimeout time.Duration
	ffprobePath  string
	profile      string
	jsonOutput   bool
	metricsFile  string
	eventsFile   string
	logDir       string
	noLog        bool
	verbose      bool
}

func newValidateCmd() *cobra.Command {
	var va validateArgs

	cmd := &cobra.Command{
		Use:   "validate [flags] [PATH...]",
		Short: "Probe video files and check them against quality rules",
		Long: `Probe video files and check them against quality rules.

Filters are given as NAME or NAME:PARAMS and run in the order given:
  missing_video            fail when there is no video stream
  missing_audio            fail when there is no audio stream
  resolution[:WxH]         fail below the minimum width or height
  duration[:SECONDS]       fail below the minimum duration
  codecs[:c1,c2,...]       fail when the video codec is not listed

Without -f, all five run with the thresholds of --profile.
Exit status is 1 when any file fails and 2 on invalid arguments.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			va.inputs = append(va.inputs, args...)
			return runValidate(cmd, va)
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&va.inputs, "input", "i", nil, "Input video file or directory (repeatable)")
	f.StringArrayVarP(&va.filters, "filter", "f", nil, "Filter to apply, e.g. resolution:640x480 (repeatable)")
	f.IntVarP(&va.workers, "workers", "w", config.AutoWorkers(), "Number of files probed in parallel")
	f.BoolVar(&va.onlyErrors, "only-errors", false, "Report only files that failed a check")
	f.BoolVarP(&va.recursive, "recursive", "r", false, "Descend into subdirectories of input directories")
	f.DurationVar(&va.probeTimeout, "probe-timeout", config.DefaultProbeTimeout, "Upper bound on each ffprobe run")
	f.StringVar(&va.ffprobePath, "ffprobe", config.DefaultFFprobePath, "ffprobe executable")
	f.StringVar(&va.profile, "profile", string(config.ProfileDefault), "Threshold profile (default, hd, lenient)")
	f.BoolVar(&va.jsonOutput, "json", false, "Emit newline-delimited JSON events")
	f.StringVar(&va.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file when done")
	f.StringVar(&va.eventsFile, "events-file", "", "Also write JSON events to this file")
	f.StringVarP(&va.logDir, "log-dir", "l", "", "Log directory (defaults to the user cache directory)")
	f.BoolVar(&va.noLog, "no-log", false, "Disable log file creation")
	f.BoolVarP(&va.verbose, "verbose", "v", false, "Enable verbose output for troubleshooting")

	return cmd
}

func runValidate(cmd *cobra.Command, va validateArgs) error {
	if len(va.inputs) == 0 {
		return usageError(fmt.Errorf("at least one input is required (-i/--input)"))
	}

	profile, err := vidprep.ParseProfile(va.profile)
	if err != nil {
		return usageError(err)
	}

	logger, err := logging.Setup(resolveLogDir(va.logDir), va.verbose, va.noLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer func() { _ = logger.Close() }()
	logging.SetGlobal(logger)

	var rep reporter.Reporter
	if va.jsonOutput {
		rep = reporter.NewJSONReporterWithWriter(cmd.OutOrStdout())
	} else {
		rep = reporter.NewTerminalReporter(va.verbose)
	}
	if va.eventsFile != "" {
		events, err := os.Create(va.eventsFile)
		if err != nil {
			return fmt.Errorf("failed to create events file: %w", err)
		}
		defer func() { _ = events.Close() }()
		rep = reporter.NewCompositeReporter(rep, reporter.NewJSONReporterWithWriter(events))
	}

	m := vidprep.NewMetrics()
	v, err := vidprep.New(
		vidprep.WithFFprobePath(va.ffprobePath),
		vidprep.WithProbeTimeout(va.probeTimeout),
		vidprep.WithMaxWorkers(va.workers),
		vidprep.WithProfile(profile),
		vidprep.WithReporter(rep),
		vidprep.WithLogger(logger),
		vidprep.WithMetrics(m),
	)
	if err != nil {
		return usageError(fmt.Errorf("invalid configuration: %w", err))
	}

	filters, err := v.ParseFilters(va.filters)
	if err != nil {
		return usageError(err)
	}

	if err := v.CheckFFprobe(); err != nil {
		rep.Error(reporter.ReporterError{
			Title:      "ffprobe not available",
			Message:    err.Error(),
			Suggestion: "Install FFmpeg or pass --ffprobe with the full path",
		})
		return usageError(err)
	}

	files, err := resolveInputs(va.inputs, va.recursive, logger, rep)
	if err != nil {
		return err
	}
	logging.Info("resolved inputs", "files", len(files), "profile", profile.String())
	if logger.FilePath() != "" {
		rep.Verbose(fmt.Sprintf("Log file: %s", logger.FilePath()))
	}

	summary, err := v.ValidateVideos(cmd.Context(), files, filters, va.workers, va.onlyErrors)
	if err != nil {
		return usageError(err)
	}

	if va.metricsFile != "" {
		if err := m.WriteTextfile(va.metricsFile); err != nil {
			logging.Warn("failed to write metrics", "path", va.metricsFile, "error", err)
			rep.Warning(fmt.Sprintf("failed to write metrics: %v", err))
		}
	}

	if summary.HasFailures() {
		return errFailures
	}
	return nil
}

// resolveLogDir returns dir, or a vidprep directory under the user cache
// directory when dir is empty.
func resolveLogDir(dir string) string {
	if dir != "" {
		return dir
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName, "logs")
	}
	return filepath.Join(cache, appName, "logs")
}

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Setup creates a logger that writes to a timestamped file in logDir.
// It returns a discarding logger when noLog is set.
func Setup(logDir string, verbose, noLog bool) (*Logger, error) {
	if noLog {
		return Discard(), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filePath := filepath.Join(logDir, fmt.Sprintf("vidprep_validate_run_%s.log", timestamp))

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	l := &Logger{
		Logger:   slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})),
		file:     file,
		filePath: filePath,
	}

	l.Info("vidprep starting", "log_file", filePath, "debug", verbose)
	return l, nil
}

// Package discovery finds video files to validate.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	vperrors "github.com/five82/vidprep/internal/errors"
	"github.com/five82/vidprep/internal/logging"
	"github.com/five82/vidprep/internal/util"
)

// Options controls directory traversal.
type Options struct {
	// Recursive descends into subdirectories. Hidden directories are skipped.
	Recursive bool
}

// Result contains the files found and how many entries were passed over.
type Result struct {
	Files        []string
	SkippedCount int
}

// FindVideoFiles finds video files directly inside inputDir, sorted by name.
func FindVideoFiles(inputDir string) ([]string, error) {
	res, err := Find(inputDir, Options{}, nil)
	if err != nil {
		return nil, err
	}
	return res.Files, nil
}

// Find lists video files under inputDir. Paths are sorted case-insensitively
// so batch order is stable across runs. It returns a NoFilesFound error when
// nothing matches.
func Find(inputDir string, opts Options, log *logging.Logger) (*Result, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, vperrors.NewIOError(fmt.Sprintf("directory does not exist: %s", inputDir), err)
	}
	if !info.IsDir() {
		return nil, vperrors.NewIOError(fmt.Sprintf("%s is not a directory", inputDir), nil)
	}

	res := &Result{}
	walkErr := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == inputDir {
				return nil
			}
			if !opts.Recursive || util.IsHidden(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if util.IsHidden(path) {
			return nil
		}
		if d.Type().IsRegular() && util.HasVideoExtension(path) {
			res.Files = append(res.Files, path)
		} else {
			res.SkippedCount++
		}
		return nil
	})
	if walkErr != nil {
		return nil, vperrors.NewIOError(fmt.Sprintf("cannot read directory %s", inputDir), walkErr)
	}

	if len(res.Files) == 0 {
		return nil, vperrors.NewNoFilesFoundError(inputDir)
	}

	sort.Slice(res.Files, func(i, j int) bool {
		return strings.ToLower(res.Files[i]) < strings.ToLower(res.Files[j])
	})

	if log != nil {
		logDiscoveredFiles(res, log)
	}
	return res, nil
}

// logDiscoveredFiles logs the first 5 discovered files plus a count.
func logDiscoveredFiles(res *Result, log *logging.Logger) {
	log.Info("discovered video files", "count", len(res.Files), "skipped", res.SkippedCount)

	for _, f := range res.Files[:min(5, len(res.Files))] {
		log.Debug("discovered", "file", filepath.Base(f))
	}
	if len(res.Files) > 5 {
		log.Debug("discovered more", "remaining", len(res.Files)-5)
	}
}

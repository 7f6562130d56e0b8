package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/five82/vidprep/internal/discovery"
	vperrors "github.com/five82/vidprep/internal/errors"
	"github.com/five82/vidprep/internal/logging"
	"github.com/five82/vidprep/internal/reporter"
	"github.com/five82/vidprep/internal/util"
)

// resolveInputs expands directories into the video files they contain and
// keeps files as given. The order of the arguments is preserved and a path
// named twice is validated once.
func resolveInputs(inputs []string, recursive bool, log *logging.Logger, rep reporter.Reporter) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, in := range inputs {
		path, err := filepath.Abs(in)
		if err != nil {
			return nil, usageError(fmt.Errorf("invalid input path %s: %w", in, err))
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, usageError(fmt.Errorf("input path does not exist: %s", in))
		}

		if !info.IsDir() {
			if !util.IsVideoFile(path) {
				rep.Warning(fmt.Sprintf("%s does not look like a video file", in))
			}
			add(path)
			continue
		}

		res, err := discovery.Find(path, discovery.Options{Recursive: recursive}, log)
		if vperrors.IsKind(err, vperrors.KindNoFilesFound) {
			rep.Warning(fmt.Sprintf("no video files found in %s", in))
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, f := range res.Files {
			add(f)
		}
	}

	if len(files) == 0 {
		return nil, vperrors.NewNoFilesFoundError(fmt.Sprint(inputs))
	}
	return files, nil
}

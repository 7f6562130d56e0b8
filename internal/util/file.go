package util

import (
	"os"
	"path/filepath"
	"strings"
)

// VideoExtensions is the set of file extensions treated as video containers.
var VideoExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
	".webm": true,
	".avi":  true,
	".wmv":  true,
	".flv":  true,
	".ts":   true,
	".m2ts": true,
	".mpg":  true,
	".mpeg": true,
	".ogv":  true,
	".3gp":  true,
}

// HasVideoExtension reports whether path ends in a known video extension.
// Case is ignored and the file is not touched.
func HasVideoExtension(path string) bool {
	return VideoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsVideoFile reports whether path is an existing regular file with a video extension.
func IsVideoFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return HasVideoExtension(path)
}

// GetFilename returns the filename from a path.
func GetFilename(path string) string {
	return filepath.Base(path)
}

// IsHidden reports whether the base name of path starts with a dot.
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

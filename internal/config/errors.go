// Package config provides configuration types and defaults for vidprep.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidProfile indicates an unknown profile name was provided.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidWorkers indicates a worker count below one.
	ErrInvalidWorkers = errors.New("worker count out of range")

	// ErrInvalidTimeout indicates a non-positive probe timeout.
	ErrInvalidTimeout = errors.New("probe timeout must be positive")

	// ErrInvalidResolution indicates a negative minimum width or height.
	ErrInvalidResolution = errors.New("minimum resolution out of range")

	// ErrInvalidDuration indicates a negative or non-finite minimum duration.
	ErrInvalidDuration = errors.New("minimum duration out of range")

	// ErrNoCodecs indicates an empty allowed codec list.
	ErrNoCodecs = errors.New("allowed codec list is empty")

	// ErrNoFFprobe indicates an empty ffprobe path.
	ErrNoFFprobe = errors.New("ffprobe path is empty")
)

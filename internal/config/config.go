package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"
)

// Default constants
const (
	// DefaultFFprobePath is the probe binary looked up on PATH.
	DefaultFFprobePath = "ffprobe"

	// DefaultProbeTimeout bounds a single ffprobe invocation.
	DefaultProbeTimeout = 30 * time.Second

	// MaxDefaultWorkers caps the auto-detected worker count. Probing is I/O bound
	// and more processes than this mostly contend on the disk.
	MaxDefaultWorkers = 8

	// DefaultMinWidth is the minimum frame width accepted by the resolution check.
	DefaultMinWidth = 224

	// DefaultMinHeight is the minimum frame height accepted by the resolution check.
	DefaultMinHeight = 224

	// DefaultMinDurationSecs is the minimum duration accepted by the duration check.
	DefaultMinDurationSecs = 1.0

	// HDPresetMinWidth and HDPresetMinHeight are the bounds for the hd profile.
	HDPresetMinWidth  = 1280
	HDPresetMinHeight = 720

	// HDPresetMinDurationSecs is the minimum duration for the hd profile.
	HDPresetMinDurationSecs = 5.0

	// LenientMinWidth and LenientMinHeight are the bounds for the lenient profile.
	LenientMinWidth  = 64
	LenientMinHeight = 64

	// LenientMinDurationSecs is the minimum duration for the lenient profile.
	LenientMinDurationSecs = 0.5
)

// DefaultAllowedCodecs lists the video codecs accepted by the codec check.
var DefaultAllowedCodecs = []string{"h264", "hevc", "vp9", "av1", "mpeg4"}

// Profile represents a named group of check thresholds.
type Profile string

const (
	ProfileDefault Profile = "default"
	ProfileHD      Profile = "hd"
	ProfileLenient Profile = "lenient"
)

// ParseProfile parses a string into a Profile.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "default":
		return ProfileDefault, nil
	case "hd":
		return ProfileHD, nil
	case "lenient":
		return ProfileLenient, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: default, hd, lenient", ErrInvalidProfile, s)
	}
}

// String returns the string representation of the profile.
func (p Profile) String() string {
	return string(p)
}

// ProfileValues contains bundled thresholds for a profile.
type ProfileValues struct {
	MinWidth        int
	MinHeight       int
	MinDurationSecs float64
}

// GetProfileValues returns the values for a given profile.
func GetProfileValues(p Profile) ProfileValues {
	switch p {
	case ProfileHD:
		return ProfileValues{
			MinWidth:        HDPresetMinWidth,
			MinHeight:       HDPresetMinHeight,
			MinDurationSecs: HDPresetMinDurationSecs,
		}
	case ProfileLenient:
		return ProfileValues{
			MinWidth:        LenientMinWidth,
			MinHeight:       LenientMinHeight,
			MinDurationSecs: LenientMinDurationSecs,
		}
	default:
		return ProfileValues{
			MinWidth:        DefaultMinWidth,
			MinHeight:       DefaultMinHeight,
			MinDurationSecs: DefaultMinDurationSecs,
		}
	}
}

// Config holds all configuration for a validation run.
type Config struct {
	// Probe settings
	FFprobePath  string
	ProbeTimeout time.Duration

	// Batch settings
	MaxWorkers int
	OnlyErrors bool

	// Check thresholds used when a filter is given without parameters
	MinWidth        int
	MinHeight       int
	MinDurationSecs float64
	AllowedCodecs   []string

	// Filters applied when the caller names none, in order
	DefaultFilters []string

	// Selected profile (optional)
	Profile *Profile
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		FFprobePath:     DefaultFFprobePath,
		ProbeTimeout:    DefaultProbeTimeout,
		MaxWorkers:      AutoWorkers(),
		MinWidth:        DefaultMinWidth,
		MinHeight:       DefaultMinHeight,
		MinDurationSecs: DefaultMinDurationSecs,
		AllowedCodecs:   append([]string(nil), DefaultAllowedCodecs...),
		DefaultFilters:  []string{"missing_video", "missing_audio", "resolution", "duration", "codecs"},
	}
}

// AutoWorkers returns the default worker count for this host.
func AutoWorkers() int {
	return max(1, min(runtime.NumCPU(), MaxDefaultWorkers))
}

// ApplyProfile applies the given profile's thresholds to the config.
func (c *Config) ApplyProfile(p Profile) {
	values := GetProfileValues(p)
	c.Profile = &p
	c.MinWidth = values.MinWidth
	c.MinHeight = values.MinHeight
	c.MinDurationSecs = values.MinDurationSecs
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FFprobePath) == "" {
		return ErrNoFFprobe
	}

	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.ProbeTimeout)
	}

	if c.MaxWorkers < 1 {
		return fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidWorkers, c.MaxWorkers)
	}

	if c.MinWidth < 0 || c.MinHeight < 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidResolution, c.MinWidth, c.MinHeight)
	}

	if c.MinDurationSecs < 0 || math.IsNaN(c.MinDurationSecs) || math.IsInf(c.MinDurationSecs, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidDuration, c.MinDurationSecs)
	}

	if len(c.AllowedCodecs) == 0 {
		return ErrNoCodecs
	}

	return nil
}

// Package filter provides the quality-gate checks applied to probed metadata.
//
// Every check is a pure function of its parameters and the metadata it is
// given. A check never returns an error: inapplicable input (for example a
// resolution check on a file with no video stream) is a failing Result with
// a message saying why.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/five82/vidprep/internal/ffprobe"
)

// Check names.
const (
	NameMissingVideo = "missing_video"
	NameMissingAudio = "missing_audio"
	NameResolution   = "resolution"
	NameDuration     = "duration"
	NameCodecs       = "codecs"
)

// Result is the outcome of one check.
type Result struct {
	Check   string `json:"check"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// Filter evaluates one check against metadata.
type Filter interface {
	Name() string
	Apply(m *ffprobe.Metadata) Result
}

// Func adapts a named function to the Filter interface.
type Func struct {
	name string
	fn   func(m *ffprobe.Metadata) Result
}

// NewFunc creates a Filter from a name and check function.
func NewFunc(name string, fn func(m *ffprobe.Metadata) Result) Func {
	return Func{name: name, fn: fn}
}

func (f Func) Name() string { return f.name }

func (f Func) Apply(m *ffprobe.Metadata) Result {
	return f.fn(m)
}

func pass(check string) Result {
	return Result{Check: check, Passed: true}
}

func fail(check, format string, args ...any) Result {
	return Result{Check: check, Passed: false, Message: fmt.Sprintf(format, args...)}
}

// MissingVideo passes iff a video stream is present.
func MissingVideo() Filter {
	return NewFunc(NameMissingVideo, func(m *ffprobe.Metadata) Result {
		if !m.HasVideo() {
			return fail(NameMissingVideo, "no video stream found")
		}
		return pass(NameMissingVideo)
	})
}

// MissingAudio passes iff an audio stream is present.
func MissingAudio() Filter {
	return NewFunc(NameMissingAudio, func(m *ffprobe.Metadata) Result {
		if !m.HasAudio() {
			return fail(NameMissingAudio, "no audio stream found")
		}
		return pass(NameMissingAudio)
	})
}

// Resolution passes when the video stream is at least minWidth x minHeight.
// Bounds are inclusive.
func Resolution(minWidth, minHeight int) Filter {
	return NewFunc(NameResolution, func(m *ffprobe.Metadata) Result {
		if !m.HasVideo() {
			return fail(NameResolution, "no video stream found to check resolution")
		}
		w, h := m.Video.Width, m.Video.Height
		if w < minWidth || h < minHeight {
			return fail(NameResolution, "resolution %dx%d is below minimum %dx%d", w, h, minWidth, minHeight)
		}
		return pass(NameResolution)
	})
}

// Duration passes when the reported duration is at least minSeconds.
// A duration equal to minSeconds passes.
func Duration(minSeconds float64) Filter {
	return NewFunc(NameDuration, func(m *ffprobe.Metadata) Result {
		if m == nil || m.Duration == nil {
			return fail(NameDuration, "duration not reported by probe")
		}
		if d := *m.Duration; d < minSeconds {
			return fail(NameDuration, "duration %.3fs is below minimum %.3fs", d, minSeconds)
		}
		return pass(NameDuration)
	})
}

// Codecs passes when the video codec is one of allowed. Matching ignores case.
func Codecs(allowed ...string) Filter {
	set := make(map[string]struct{}, len(allowed))
	names := make([]string, 0, len(allowed))
	for _, c := range allowed {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, dup := set[c]; !dup {
			set[c] = struct{}{}
			names = append(names, c)
		}
	}
	slices.Sort(names)
	list := strings.Join(names, ", ")

	return NewFunc(NameCodecs, func(m *ffprobe.Metadata) Result {
		if !m.HasVideo() {
			return fail(NameCodecs, "no video stream found to check codec")
		}
		codec := strings.ToLower(m.Video.CodecName)
		if _, ok := set[codec]; !ok {
			return fail(NameCodecs, "video codec %q is not allowed (allowed: %s)", m.Video.CodecName, list)
		}
		return pass(NameCodecs)
	})
}

// ApplyAll evaluates filters in order and returns their results in the same order.
func ApplyAll(m *ffprobe.Metadata, filters []Filter) []Result {
	results := make([]Result, 0, len(filters))
	for _, f := range filters {
		results = append(results, f.Apply(m))
	}
	return results
}

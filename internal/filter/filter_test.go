package filter

import (
	"reflect"
	"strings"
	"testing"

	"github.com/five82/vidprep/internal/ffprobe"
)

func ptr(f float64) *float64 { return &f }

func fullMetadata() *ffprobe.Metadata {
	return &ffprobe.Metadata{
		Video:    &ffprobe.VideoStream{CodecName: "h264", Width: 1280, Height: 720},
		Audio:    &ffprobe.AudioStream{CodecName: "aac"},
		Duration: ptr(30),
	}
}

func audioOnly() *ffprobe.Metadata {
	return &ffprobe.Metadata{
		Audio:    &ffprobe.AudioStream{CodecName: "mp3"},
		Duration: ptr(180),
	}
}

func TestMissingVideo(t *testing.T) {
	if r := MissingVideo().Apply(fullMetadata()); !r.Passed {
		t.Errorf("MissingVideo on video file = %+v, want pass", r)
	}

	r := MissingVideo().Apply(audioOnly())
	if r.Passed {
		t.Fatal("MissingVideo on audio-only file passed")
	}
	if r.Check != NameMissingVideo {
		t.Errorf("Check = %q, want %q", r.Check, NameMissingVideo)
	}
	if r.Message == "" {
		t.Error("Message is empty for failing check")
	}
}

func TestMissingAudio(t *testing.T) {
	if r := MissingAudio().Apply(fullMetadata()); !r.Passed {
		t.Errorf("MissingAudio on file with audio = %+v, want pass", r)
	}

	m := fullMetadata()
	m.Audio = nil
	if r := MissingAudio().Apply(m); r.Passed {
		t.Error("MissingAudio without audio stream passed")
	}
}

func TestResolution(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		minW      int
		minH      int
		wantPass  bool
		wantInMsg string
	}{
		{"above bounds", 1920, 1080, 640, 480, true, ""},
		{"exactly at bounds", 640, 480, 640, 480, true, ""},
		{"width below", 639, 480, 640, 480, false, "639x480"},
		{"height below", 640, 479, 640, 480, false, "below minimum 640x480"},
		{"tiny", 100, 100, 224, 224, false, "100x100"},
		{"zero bounds", 1, 1, 0, 0, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fullMetadata()
			m.Video.Width, m.Video.Height = tt.w, tt.h

			r := Resolution(tt.minW, tt.minH).Apply(m)
			if r.Passed != tt.wantPass {
				t.Errorf("Passed = %v, want %v (%s)", r.Passed, tt.wantPass, r.Message)
			}
			if tt.wantInMsg != "" && !strings.Contains(r.Message, tt.wantInMsg) {
				t.Errorf("Message = %q, want it to contain %q", r.Message, tt.wantInMsg)
			}
		})
	}
}

func TestResolution_NoVideoStream(t *testing.T) {
	r := Resolution(640, 480).Apply(audioOnly())
	if r.Passed {
		t.Fatal("Resolution without video stream passed")
	}
	if !strings.Contains(r.Message, "video stream") {
		t.Errorf("Message = %q, want it to name the missing video stream", r.Message)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration *float64
		min      float64
		wantPass bool
	}{
		{"long enough", ptr(10.5), 1, true},
		{"boundary passes", ptr(5), 5, true},
		{"just below", ptr(4.999), 5, false},
		{"short", ptr(0.5), 1, false},
		{"missing duration", nil, 1, false},
		{"missing duration with zero minimum", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fullMetadata()
			m.Duration = tt.duration

			r := Duration(tt.min).Apply(m)
			if r.Passed != tt.wantPass {
				t.Errorf("Passed = %v, want %v (%s)", r.Passed, tt.wantPass, r.Message)
			}
			if r.Check != NameDuration {
				t.Errorf("Check = %q, want %q", r.Check, NameDuration)
			}
		})
	}
}

func TestCodecs(t *testing.T) {
	tests := []struct {
		name     string
		codec    string
		allowed  []string
		wantPass bool
	}{
		{"allowed", "h264", []string{"h264", "hevc"}, true},
		{"case insensitive codec", "H264", []string{"h264"}, true},
		{"case insensitive allowed", "hevc", []string{"HEVC"}, true},
		{"not allowed", "mpeg2video", []string{"h264", "hevc"}, false},
		{"blank entries ignored", "vp9", []string{"", " vp9 "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fullMetadata()
			m.Video.CodecName = tt.codec

			r := Codecs(tt.allowed...).Apply(m)
			if r.Passed != tt.wantPass {
				t.Errorf("Passed = %v, want %v (%s)", r.Passed, tt.wantPass, r.Message)
			}
		})
	}
}

func TestCodecs_NoVideoStream(t *testing.T) {
	r := Codecs("h264").Apply(audioOnly())
	if r.Passed {
		t.Fatal("Codecs without video stream passed")
	}
	if !strings.Contains(r.Message, "video stream") {
		t.Errorf("Message = %q, want it to name the missing video stream", r.Message)
	}
}

func TestFilters_NilMetadata(t *testing.T) {
	for _, f := range []Filter{MissingVideo(), MissingAudio(), Resolution(1, 1), Duration(0), Codecs("h264")} {
		r := f.Apply(nil)
		if r.Passed {
			t.Errorf("%s passed on nil metadata", f.Name())
		}
	}
}

func TestFilters_Deterministic(t *testing.T) {
	filters := []Filter{
		MissingVideo(), MissingAudio(), Resolution(640, 480), Duration(5), Codecs("hevc"),
	}
	for _, m := range []*ffprobe.Metadata{fullMetadata(), audioOnly()} {
		for _, f := range filters {
			first := f.Apply(m)
			for i := 0; i < 5; i++ {
				if got := f.Apply(m); got != first {
					t.Errorf("%s: call %d = %+v, first = %+v", f.Name(), i, got, first)
				}
			}
		}
	}
}

func TestFilters_DoNotMutate(t *testing.T) {
	m := fullMetadata()
	before := *m
	beforeVideo := *m.Video
	beforeDur := *m.Duration

	ApplyAll(m, []Filter{MissingVideo(), MissingAudio(), Resolution(4000, 4000), Duration(100), Codecs("av1")})

	if m.Video != before.Video || *m.Video != beforeVideo || *m.Duration != beforeDur {
		t.Error("filters mutated metadata")
	}
}

func TestApplyAll_PreservesOrder(t *testing.T) {
	results := ApplyAll(fullMetadata(), []Filter{Duration(60), MissingVideo(), Codecs("vp9")})

	var names []string
	for _, r := range results {
		names = append(names, r.Check)
	}
	want := []string{NameDuration, NameMissingVideo, NameCodecs}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
	if results[0].Passed || !results[1].Passed || results[2].Passed {
		t.Errorf("results = %+v", results)
	}
}

func TestApplyAll_OrderInsensitiveOutcome(t *testing.T) {
	a := ApplyAll(audioOnly(), []Filter{MissingVideo(), Duration(5)})
	b := ApplyAll(audioOnly(), []Filter{Duration(5), MissingVideo()})

	if a[0] != b[1] || a[1] != b[0] {
		t.Errorf("outcome depends on order: %+v vs %+v", a, b)
	}
}

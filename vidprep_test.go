package vidprep

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/five82/vidprep/internal/config"
	vperrors "github.com/five82/vidprep/internal/errors"
)

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"zero workers", []Option{WithMaxWorkers(0)}, config.ErrInvalidWorkers},
		{"zero timeout", []Option{WithProbeTimeout(0)}, config.ErrInvalidTimeout},
		{"negative resolution", []Option{WithMinResolution(-1, 10)}, config.ErrInvalidResolution},
		{"negative duration", []Option{WithMinDuration(-1)}, config.ErrInvalidDuration},
		{"no codecs", []Option{WithAllowedCodecs()}, config.ErrNoCodecs},
		{"empty ffprobe", []Option{WithFFprobePath(" ")}, config.ErrNoFFprobe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseFilters(t *testing.T) {
	v, err := New(WithMinResolution(320, 240), WithMinDuration(2), WithAllowedCodecs("av1"))
	if err != nil {
		t.Fatal(err)
	}

	specs, err := v.ParseFilters([]string{"resolution", "duration", "codecs", "resolution:640x480"})
	if err != nil {
		t.Fatalf("ParseFilters() error = %v", err)
	}
	got := make([]string, len(specs))
	for i, s := range specs {
		got[i] = s.String()
	}
	want := []string{"resolution:320x240", "duration:2", "codecs:av1", "resolution:640x480"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("specs = %v, want %v", got, want)
	}
}

func TestParseFilters_Defaults(t *testing.T) {
	v, err := New(WithProfile(ProfileHD))
	if err != nil {
		t.Fatal(err)
	}

	specs, err := v.ParseFilters(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 5 {
		t.Fatalf("len(specs) = %d, want all five checks", len(specs))
	}
	if specs[2].String() != "resolution:1280x720" || specs[3].String() != "duration:5" {
		t.Errorf("hd profile not applied: %v, %v", specs[2], specs[3])
	}
}

func TestParseFilters_Unknown(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := v.ParseFilters([]string{"sharpness"}); err == nil {
		t.Error("ParseFilters() accepted an unknown check")
	}
}

func TestValidateVideos_InvalidWorkers(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatal(err)
	}
	_, err = v.ValidateVideos(context.Background(), []string{"a.mp4"}, nil, 0, false)
	if !vperrors.IsKind(err, vperrors.KindConfig) {
		t.Errorf("error = %v, want config error", err)
	}
}

func TestValidateVideos_Empty(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatal(err)
	}
	summary, err := v.ValidateVideos(context.Background(), nil, nil, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 0 || len(summary.Reports) != 0 {
		t.Errorf("summary = %+v, want empty", summary)
	}
}

func TestOpen_NotProbed(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatal(err)
	}
	s := v.Open("a.mp4")
	if _, err := s.Metadata(); !errors.Is(err, ErrNotProbed) {
		t.Errorf("Metadata() error = %v, want ErrNotProbed", err)
	}
}

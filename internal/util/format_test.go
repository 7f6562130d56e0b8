package util

import (
	"math"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{5 * 1024 * 1024, "5.00 MiB"},
		{1024 * 1024 * 1024 * 2, "2.00 GiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBytes(tt.bytes); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59.9, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{-1, "??:??:??"},
		{math.NaN(), "??:??:??"},
		{math.Inf(1), "??:??:??"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatOptionalDuration(t *testing.T) {
	if got := FormatOptionalDuration(nil); got != "unknown" {
		t.Errorf("FormatOptionalDuration(nil) = %q", got)
	}
	d := 30.016
	if got := FormatOptionalDuration(&d); got != "00:00:30 (30.016s)" {
		t.Errorf("FormatOptionalDuration(30.016) = %q", got)
	}
}

func TestFormatBitRate(t *testing.T) {
	tests := []struct {
		bps  int64
		want string
	}{
		{0, "unknown"},
		{-5, "unknown"},
		{800, "800 b/s"},
		{128000, "128.0 kb/s"},
		{1397333, "1.40 Mb/s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatBitRate(tt.bps); got != tt.want {
				t.Errorf("FormatBitRate(%d) = %q, want %q", tt.bps, got, tt.want)
			}
		})
	}
}

func TestFormatResolution(t *testing.T) {
	if got := FormatResolution(1920, 1080); got != "1920x1080" {
		t.Errorf("FormatResolution() = %q", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1234567 * time.Nanosecond, "1ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90*time.Second + 400*time.Millisecond, "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatElapsed(tt.d); got != tt.want {
				t.Errorf("FormatElapsed(%s) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

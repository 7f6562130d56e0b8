// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"encoding/json"
	"strconv"
	"strings"

	vperrors "github.com/five82/vidprep/internal/errors"
)

// RawProbeResult is the ffprobe JSON report for one file. Numeric format fields
// stay as the strings ffprobe emits.
type RawProbeResult struct {
	Format  RawFormat   `json:"format"`
	Streams []RawStream `json:"streams"`
}

// RawFormat is the container section of the ffprobe report.
type RawFormat struct {
	Filename   string            `json:"filename"`
	NbStreams  int               `json:"nb_streams"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags,omitempty"`
}

// RawStream is one entry of the ffprobe streams array.
type RawStream struct {
	Index       int               `json:"index"`
	CodecType   string            `json:"codec_type"`
	CodecName   string            `json:"codec_name"`
	Profile     string            `json:"profile,omitempty"`
	Width       int64             `json:"width,omitempty"`
	Height      int64             `json:"height,omitempty"`
	PixFmt      string            `json:"pix_fmt,omitempty"`
	Channels    int               `json:"channels,omitempty"`
	Duration    string            `json:"duration,omitempty"`
	Disposition StreamDisposition `json:"disposition"`
}

// StreamDisposition contains the stream disposition flags vidprep inspects.
type StreamDisposition struct {
	Default     int `json:"default"`
	AttachedPic int `json:"attached_pic"`
}

// VideoStream is the normalized view of the primary video stream.
type VideoStream struct {
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// AudioStream is the normalized view of the primary audio stream.
type AudioStream struct {
	CodecName string `json:"codec_name"`
}

// Metadata is the normalized, read-only view of a probe result. A nil Video or
// Audio means the container has no such stream; a nil Duration means ffprobe
// did not report a usable one.
type Metadata struct {
	Video      *VideoStream `json:"video_stream"`
	Audio      *AudioStream `json:"audio_stream"`
	Duration   *float64     `json:"duration_seconds"`
	FormatName string       `json:"format_name,omitempty"`
	SizeBytes  int64        `json:"size_bytes,omitempty"`
	BitRate    int64        `json:"bit_rate,omitempty"`
}

// HasVideo reports whether a video stream is present.
func (m *Metadata) HasVideo() bool { return m != nil && m.Video != nil }

// HasAudio reports whether an audio stream is present.
func (m *Metadata) HasAudio() bool { return m != nil && m.Audio != nil }

// ParseOutput decodes ffprobe JSON output.
func ParseOutput(data []byte) (*RawProbeResult, error) {
	var result RawProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, vperrors.NewJSONParseError("failed to parse ffprobe output", err)
	}
	return &result, nil
}

// Normalize derives Metadata from a raw probe result. The first video stream
// that is not an attached picture and the first audio stream are used.
func Normalize(raw *RawProbeResult) *Metadata {
	m := &Metadata{}
	if raw == nil {
		return m
	}

	m.FormatName = raw.Format.FormatName
	m.SizeBytes = parseInt64(raw.Format.Size)
	m.BitRate = parseInt64(raw.Format.BitRate)
	if d, ok := parseDuration(raw.Format.Duration); ok {
		m.Duration = &d
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			if m.Video != nil || s.Disposition.AttachedPic == 1 {
				continue
			}
			m.Video = &VideoStream{
				CodecName: s.CodecName,
				Width:     int(max(s.Width, 0)),
				Height:    int(max(s.Height, 0)),
			}
			// Some containers (raw streams, certain MKVs) only report duration per stream.
			if m.Duration == nil {
				if d, ok := parseDuration(s.Duration); ok {
					m.Duration = &d
				}
			}
		case "audio":
			if m.Audio == nil {
				m.Audio = &AudioStream{CodecName: s.CodecName}
			}
		}
	}

	return m
}

func parseDuration(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return 0, false
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || d != d || d < 0 {
		return 0, false
	}
	return d, true
}

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrUnknownFilter indicates a filter name that is not registered.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrInvalidParams indicates filter parameters that cannot be used.
	ErrInvalidParams = errors.New("invalid filter parameters")
)

// legacyPrefix is accepted on names for compatibility with method-style
// names such as "filter_resolution".
const legacyPrefix = "filter_"

// Params holds the parameters used by the parameterized checks.
type Params struct {
	MinWidth   int      `json:"min_width,omitempty"`
	MinHeight  int      `json:"min_height,omitempty"`
	MinSeconds float64  `json:"min_seconds,omitempty"`
	Allowed    []string `json:"allowed,omitempty"`
}

// Spec names one configured check. Specs are plain values and are shared
// read-only between batch workers.
type Spec struct {
	Name   string `json:"name"`
	Params Params `json:"params"`
}

// String renders s in the syntax Parse accepts.
func (s Spec) String() string {
	switch s.Name {
	case NameResolution:
		return fmt.Sprintf("%s:%dx%d", s.Name, s.Params.MinWidth, s.Params.MinHeight)
	case NameDuration:
		return fmt.Sprintf("%s:%s", s.Name, strconv.FormatFloat(s.Params.MinSeconds, 'f', -1, 64))
	case NameCodecs:
		return fmt.Sprintf("%s:%s", s.Name, strings.Join(s.Params.Allowed, ","))
	default:
		return s.Name
	}
}

// Build returns the Filter s describes.
func (s Spec) Build() (Filter, error) {
	switch s.Name {
	case NameMissingVideo:
		return MissingVideo(), nil
	case NameMissingAudio:
		return MissingAudio(), nil
	case NameResolution:
		if s.Params.MinWidth < 0 || s.Params.MinHeight < 0 {
			return nil, fmt.Errorf("%w: %s needs non-negative bounds, got %dx%d",
				ErrInvalidParams, s.Name, s.Params.MinWidth, s.Params.MinHeight)
		}
		return Resolution(s.Params.MinWidth, s.Params.MinHeight), nil
	case NameDuration:
		sec := s.Params.MinSeconds
		if sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
			return nil, fmt.Errorf("%w: %s needs a non-negative minimum, got %v", ErrInvalidParams, s.Name, sec)
		}
		return Duration(sec), nil
	case NameCodecs:
		if len(s.Params.Allowed) == 0 {
			return nil, fmt.Errorf("%w: %s needs at least one allowed codec", ErrInvalidParams, s.Name)
		}
		return Codecs(s.Params.Allowed...), nil
	default:
		return nil, fmt.Errorf("%w: %q, valid options: %s", ErrUnknownFilter, s.Name, strings.Join(Names(), ", "))
	}
}

// Names lists the registered check names in display order.
func Names() []string {
	return []string{NameMissingVideo, NameMissingAudio, NameResolution, NameDuration, NameCodecs}
}

// Defaults supplies parameters for checks named without arguments.
type Defaults struct {
	MinWidth   int
	MinHeight  int
	MinSeconds float64
	Allowed    []string
}

// Parse turns "name" or "name:args" into a Spec. Argument forms:
//
//	resolution:640x480
//	duration:5      (seconds; a trailing "s" is accepted)
//	codecs:h264,hevc
//
// Parameterized checks given without arguments take their values from d.
func Parse(s string, d Defaults) (Spec, error) {
	raw := strings.TrimSpace(s)
	name, args, hasArgs := strings.Cut(raw, ":")
	if !hasArgs {
		name, args, hasArgs = strings.Cut(raw, "=")
	}
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), legacyPrefix)
	args = strings.TrimSpace(args)

	spec := Spec{Name: name}
	switch name {
	case NameMissingVideo, NameMissingAudio:
		if hasArgs && args != "" {
			return Spec{}, fmt.Errorf("%w: %s takes no arguments, got %q", ErrInvalidParams, name, args)
		}
	case NameResolution:
		spec.Params.MinWidth, spec.Params.MinHeight = d.MinWidth, d.MinHeight
		if args != "" {
			w, h, err := parseResolution(args)
			if err != nil {
				return Spec{}, err
			}
			spec.Params.MinWidth, spec.Params.MinHeight = w, h
		}
	case NameDuration:
		spec.Params.MinSeconds = d.MinSeconds
		if args != "" {
			sec, err := strconv.ParseFloat(strings.TrimSuffix(args, "s"), 64)
			if err != nil {
				return Spec{}, fmt.Errorf("%w: duration %q is not a number of seconds", ErrInvalidParams, args)
			}
			spec.Params.MinSeconds = sec
		}
	case NameCodecs:
		spec.Params.Allowed = append([]string(nil), d.Allowed...)
		if args != "" {
			spec.Params.Allowed = splitList(args)
		}
	default:
		return Spec{}, fmt.Errorf("%w: %q, valid options: %s", ErrUnknownFilter, name, strings.Join(Names(), ", "))
	}

	// Run the same checks Build applies so bad input fails at parse time.
	if _, err := spec.Build(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// ParseAll parses each entry in order.
func ParseAll(list []string, d Defaults) ([]Spec, error) {
	specs := make([]Spec, 0, len(list))
	for _, s := range list {
		spec, err := Parse(s, d)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// BuildAll builds every spec, stopping at the first error.
func BuildAll(specs []Spec) ([]Filter, error) {
	filters := make([]Filter, 0, len(specs))
	for i, s := range specs {
		f, err := s.Build()
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i+1, err)
		}
		filters = append(filters, f)
	}
	return filters, nil
}

func parseResolution(s string) (int, int, error) {
	sep := "x"
	if strings.Contains(s, ",") {
		sep = ","
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), sep)
	if !ok {
		return 0, 0, fmt.Errorf("%w: resolution %q must look like 640x480", ErrInvalidParams, s)
	}
	w, errW := strconv.Atoi(strings.TrimSpace(ws))
	h, errH := strconv.Atoi(strings.TrimSpace(hs))
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("%w: resolution %q must look like 640x480", ErrInvalidParams, s)
	}
	return w, h, nil
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	return fields
}

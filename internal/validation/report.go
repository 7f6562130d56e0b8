// Package validation collects check results for a single file.
package validation

import (
	"encoding/json"
	"fmt"

	vperrors "github.com/five82/vidprep/internal/errors"
	"github.com/five82/vidprep/internal/ffprobe"
	"github.com/five82/vidprep/internal/filter"
)

// Synthetic check names recorded when a file could not be checked at all.
const (
	CheckProbe     = "probe"
	CheckCancelled = "cancelled"
)

// CheckError is one failed check, as exported to callers.
type CheckError struct {
	File    string `json:"file"`
	Check   string `json:"check"`
	Message string `json:"message"`
}

// UnitFailure describes why a file produced no metadata.
type UnitFailure struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (f *UnitFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *UnitFailure) Unwrap() error {
	return f.Err
}

// NewUnitFailure classifies err. Errors that carry no kind are treated as
// probe errors.
func NewUnitFailure(err error) *UnitFailure {
	kind, ok := vperrors.KindOf(err)
	if !ok {
		kind = vperrors.KindProbe
	}
	return &UnitFailure{Kind: kind.Slug(), Message: vperrors.Detail(err), Err: err}
}

// Report is the ordered record of check outcomes for one file. Results only
// ever grow. A Report is owned by the unit of work that produced it.
type Report struct {
	Path     string            `json:"path"`
	Index    int               `json:"index"`
	Metadata *ffprobe.Metadata `json:"metadata,omitempty"`
	Results  []filter.Result   `json:"results"`
	Failure  *UnitFailure      `json:"failure,omitempty"`
}

// NewReport creates an empty report for the file at position index of a batch.
func NewReport(path string, index int) *Report {
	return &Report{Path: path, Index: index, Results: []filter.Result{}}
}

// Record appends a result. Passing results are kept too.
func (r *Report) Record(res filter.Result) {
	r.Results = append(r.Results, res)
}

// Fail marks the report as having no usable metadata and records a synthetic
// failing result so the failure shows up in Errors.
func (r *Report) Fail(err error) {
	f := NewUnitFailure(err)
	check := CheckProbe
	if f.Kind == vperrors.KindCancelled.Slug() {
		check = CheckCancelled
	}
	r.Failure = f
	r.Record(filter.Result{Check: check, Passed: false, Message: f.Error()})
}

// Errors returns the failed results in the order they were recorded.
func (r *Report) Errors() []CheckError {
	var errs []CheckError
	for _, res := range r.Results {
		if !res.Passed {
			errs = append(errs, CheckError{File: r.Path, Check: res.Check, Message: res.Message})
		}
	}
	return errs
}

// HasErrors reports whether any recorded result failed.
func (r *Report) HasErrors() bool {
	for _, res := range r.Results {
		if !res.Passed {
			return true
		}
	}
	return false
}

// Passed reports whether the file was checked and every check passed.
func (r *Report) Passed() bool {
	return r.Failure == nil && !r.HasErrors()
}

// Abandoned reports whether the file was never checked because the batch
// was cancelled.
func (r *Report) Abandoned() bool {
	return r.Failure != nil && r.Failure.Kind == vperrors.KindCancelled.Slug()
}

// ExportJSON renders Errors as a JSON array. A clean report yields "[]".
func (r *Report) ExportJSON() ([]byte, error) {
	errs := r.Errors()
	if errs == nil {
		errs = []CheckError{}
	}
	data, err := json.MarshalIndent(errs, "", "  ")
	if err != nil {
		return nil, vperrors.NewJSONParseError("failed to encode errors", err)
	}
	return data, nil
}

// Package validation checks candidate faces before they reach meshing.
//
// Checks run in tiers, the way a shape moves from structure to geometry:
// structural checks first, geometric checks only for faces that passed them,
// and advisory warnings last. Only Validate can produce a Validated value, so
// code that takes one knows the checks ran.
package validation

import (
	"fmt"
	"strings"

	"github.com/chazu/facet/pkg/logging"
	"github.com/chazu/facet/pkg/objects"
	"github.com/samber/lo"
)

// Config holds the tolerances used by the checks.
type Config struct {
	// DistinctMinDistance is the minimum distance between two points for
	// them to count as distinct.
	DistinctMinDistance float64 `json:"distinct_min_distance"`

	// IdenticalMaxDistance is the maximum distance between two points for
	// them to count as identical, used where two forms of the same point are
	// compared.
	IdenticalMaxDistance float64 `json:"identical_max_distance"`
}

// DefaultConfig returns the default tolerances.
func DefaultConfig() Config {
	return Config{
		DistinctMinDistance:  5e-7,
		IdenticalMaxDistance: 5e-14,
	}
}

// Severity indicates whether a finding rejects the shape or is advisory.
type Severity int

const (
	SeverityError   Severity = iota // rejects the shape
	SeverityWarning                 // advisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation finding.
type Finding struct {
	Face     int      // index of the face in the shape
	Cycle    int      // index into the face's AllCycles order, -1 for face-level findings
	Message  string   // human-readable description
	Severity Severity // error or warning
}

func (f Finding) String() string {
	if f.Cycle < 0 {
		return fmt.Sprintf("[%s] face %d: %s", f.Severity, f.Face, f.Message)
	}
	return fmt.Sprintf("[%s] face %d cycle %d: %s", f.Severity, f.Face, f.Cycle, f.Message)
}

// Result bundles errors and warnings from all tiers.
type Result struct {
	Errors   []Finding
	Warnings []Finding
}

// OK reports whether the result has no errors.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Error is returned by Validate when a shape has error findings.
type Error struct {
	Findings []Finding
}

func (e *Error) Error() string {
	msgs := lo.Map(e.Findings, func(f Finding, _ int) string { return f.String() })
	return "validation: " + strings.Join(msgs, "; ")
}

// Validated wraps a value that passed validation.
type Validated[T any] struct {
	value T
}

// Value returns the validated value.
func (v Validated[T]) Value() T {
	return v.value
}

// Check runs every tier against the faces and returns all findings. It never
// modifies the faces.
func Check(faces []objects.Face, cfg Config) Result {
	var result Result
	for i, face := range faces {
		// Tier 1: structure.
		errs := checkStructure(i, face, cfg)
		result.Errors = append(result.Errors, errs...)
		if len(errs) > 0 {
			continue
		}

		// Tier 2: geometry, only for structurally sound faces.
		errs = checkGeometry(i, face, cfg)
		result.Errors = append(result.Errors, errs...)
		if len(errs) > 0 {
			continue
		}

		// Tier 3: advisory.
		result.Warnings = append(result.Warnings, checkAdvisory(i, face)...)
	}
	return result
}

// Validate checks the faces and, if they pass, returns them wrapped as
// validated. Warnings are logged; errors are returned as *Error.
func Validate(faces []objects.Face, cfg Config) (Validated[[]objects.Face], error) {
	result := Check(faces, cfg)
	for _, w := range result.Warnings {
		logging.Logger().Warn("validation warning", "face", w.Face, "cycle", w.Cycle, "message", w.Message)
	}
	if !result.OK() {
		return Validated[[]objects.Face]{}, &Error{Findings: result.Errors}
	}

	validated := lo.Map(faces, func(f objects.Face, _ int) objects.Face { return f.Clone() })
	logging.Logger().Debug("validated shape", "faces", len(validated))
	return Validated[[]objects.Face]{value: validated}, nil
}

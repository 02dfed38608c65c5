// Package diag provides centralized error code definitions for the
// statics. Codes are stable small integers partitioned by subsystem; they
// are the only part of the diagnostic stream downstream tools may match
// on.
package diag

import (
	"fmt"
	"sort"

	"github.com/sunholo/smlcheck/internal/hir"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Code identifies one error condition. The 5xxx block belongs to the
// statics.
type Code int

const (
	// Undefined indicates a name lookup failed.
	Undefined Code = 5001

	// Duplicate indicates a binding conflicts in the same environment
	// layer.
	Duplicate Code = 5002

	// HeadMismatch indicates unification found disagreeing head
	// constructors.
	HeadMismatch Code = 5003

	// Circularity indicates the occurs check failed.
	Circularity Code = 5004

	// RecordLabelMismatch indicates record unification with unequal
	// label sets.
	RecordLabelMismatch Code = 5005

	// OverloadResolution indicates an overload constraint admits no
	// basic type.
	OverloadResolution Code = 5006

	// EqualityType indicates a non-equality type was used where an
	// equality type is required.
	EqualityType Code = 5007

	// ValueRestriction indicates a non-generalizable top-level type
	// variable escaped.
	ValueRestriction Code = 5008

	// SignatureMatch indicates enrichment failed during signature
	// matching.
	SignatureMatch Code = 5009

	// Realization indicates a signature type specification lacks a
	// counterpart in the matched structure.
	Realization Code = 5010

	// Disallowed indicates use of a path marked disallowed by
	// configuration.
	Disallowed Code = 5011

	// ConArity indicates a constructor pattern, or a type constructor,
	// with the wrong number of arguments.
	ConArity Code = 5012

	// OrPatBindings indicates the alternatives of an or-pattern bind
	// different names.
	OrPatBindings Code = 5013
)

// Info describes one error code.
type Info struct {
	Code        Code
	Phase       string
	Category    string
	Description string
}

// Registry maps every code to its information.
var Registry = map[Code]Info{
	Undefined:           {Undefined, "statics", "scope", "Undefined name"},
	Duplicate:           {Duplicate, "statics", "scope", "Duplicate binding"},
	HeadMismatch:        {HeadMismatch, "statics", "unification", "Type mismatch"},
	Circularity:         {Circularity, "statics", "unification", "Circular type"},
	RecordLabelMismatch: {RecordLabelMismatch, "statics", "unification", "Record label mismatch"},
	OverloadResolution:  {OverloadResolution, "statics", "overload", "Overload resolution failed"},
	EqualityType:        {EqualityType, "statics", "equality", "Not an equality type"},
	ValueRestriction:    {ValueRestriction, "statics", "generalization", "Value restriction"},
	SignatureMatch:      {SignatureMatch, "statics", "modules", "Signature mismatch"},
	Realization:         {Realization, "statics", "modules", "Cannot realize signature"},
	Disallowed:          {Disallowed, "statics", "config", "Disallowed path"},
	ConArity:            {ConArity, "statics", "pattern", "Constructor argument mismatch"},
	OrPatBindings:       {OrPatBindings, "statics", "pattern", "Or-pattern binding mismatch"},
}

// GetInfo returns information about a code.
func GetInfo(code Code) (Info, bool) {
	info, ok := Registry[code]
	return info, ok
}

// IsStaticsCode reports whether the code belongs to the statics block.
func IsStaticsCode(code Code) bool {
	return code >= 5000 && code < 6000
}

// Error is one diagnostic. Message text is human-readable and not part
// of the stable surface; Code is.
type Error struct {
	Range    hir.Range
	Code     Code
	Severity Severity
	Message  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%d..%d: %s[%d]: %s", e.Range.Start, e.Range.End, e.Severity, e.Code, e.Message)
}

// SortErrors orders diagnostics by range start, then end, then code, then
// message. Elaboration emits in deterministic order already; sorting is
// for callers that merge streams from several units.
func SortErrors(errs []Error) {
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := errs[i], errs[j]
		if a.Range.Start != b.Range.Start {
			return a.Range.Start < b.Range.Start
		}
		if a.Range.End != b.Range.End {
			return a.Range.End < b.Range.End
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
}

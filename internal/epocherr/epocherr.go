// Package epocherr defines the error taxonomy shared by every layer of
// the core: SiteData/TaskData loading, scenario simulation, grid
// generation, and CSV output. Callers distinguish kinds with IsKind, or
// by extracting the *Error with errors.As and inspecting Error.Kind.
package epocherr

import "fmt"

// Kind is one of the five error categories from spec.md §7.
type Kind string

const (
	// KindInvalidSiteData marks structural/length mismatches at SiteData
	// load time. Fatal for any simulation using that site.
	KindInvalidSiteData Kind = "invalid_site_data"
	// KindInvalidTaskData marks out-of-range indices or incoherent
	// component combinations in a single scenario. Surfaced per scenario;
	// the worker records it, skips LeagueTable insertion, and continues.
	KindInvalidTaskData Kind = "invalid_task_data"
	// KindInvalidParamRange marks a malformed grid axis. Fatal at
	// TaskGenerator construction time.
	KindInvalidParamRange Kind = "invalid_param_range"
	// KindNumericFailure marks NaN/Inf detected in computed metrics.
	// Recorded as a failed scenario; never retried.
	KindNumericFailure Kind = "numeric_failure"
	// KindIoError marks a CSV write failure. Fatal for exhaustive
	// logging; non-fatal for the core search (logged, output disabled).
	KindIoError Kind = "io_error"
)

// Error wraps an underlying cause with a taxonomy Kind and a short
// message. It implements Unwrap so errors.Is/As work against the
// wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs an Error wrapping an existing cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// IsKind reports whether the first *Error found along err's Unwrap
// chain carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ee, ok := err.(*Error); ok {
			e = ee
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}

package tour

import "fmt"

// Kind classifies a rejection.
type Kind int

const (
	// FormatError marks malformed lines: wrong header text, wrong token
	// count or type, or an unexpected end of input.
	FormatError Kind = iota

	// ConsistencyError marks duplicated or missing identifiers and count
	// mismatches between the declared and observed sites or days.
	ConsistencyError

	// RangeError marks numeric fields outside their valid domain.
	RangeError

	// FeasibilityError marks candidate tours that violate the visiting rules.
	FeasibilityError
)

func (k Kind) String() string {
	switch k {
	case FormatError:
		return "format"
	case ConsistencyError:
		return "consistency"
	case RangeError:
		return "range"
	case FeasibilityError:
		return "feasibility"
	default:
		return "unknown"
	}
}

// Error is a terminal rejection of a problem text or of a candidate tour.
// There are no warnings: any violation rejects the whole input.
//
// Line is the 1-based input line that triggered the rejection, counting
// blank lines, or 0 when the error is not attributable to a single line
// (post-scan cross-checks and all scorer errors).
type Error struct {
	Kind Kind
	Line int
	Msg  string
}

// Error returns the user-facing message; callers surface it verbatim.
func (e *Error) Error() string { return e.Msg }

func errorf(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Msg: fmt.Sprintf(format, args...)}
}

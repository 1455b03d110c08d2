package optimizer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies a failure raised while driving the suite (spec §7):
// a malformed recipe is recoverable and names the offending character; a
// broken pass precondition is fatal and names the pass and the invariant;
// an analyzer rejection surfaces the analyzer's own diagnostics unchanged.
type ErrorKind int

const (
	// ConfigurationError means the recipe literal itself was invalid: an
	// unknown abbreviation, or an unbalanced or nested parenthesis.
	ConfigurationError ErrorKind = iota
	// PreconditionError means a pass's declared precondition did not hold
	// on its input. Not recoverable: the caller is looking at a driver
	// bug, not a bad program.
	PreconditionError
	// AnalyzerRejection means the external analyzer refused to
	// re-establish AnalysisInfo over the optimized code.
	AnalyzerRejection
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration error"
	case PreconditionError:
		return "precondition violation"
	case AnalyzerRejection:
		return "analyzer rejection"
	default:
		return "unknown error"
	}
}

// Error is the error type every exported entry point in this package
// returns. Cause carries the underlying *recipe.ParseError,
// pass.PreconditionViolation, or analyzer error, wrapped with
// github.com/pkg/errors so a caller can still unwrap the original
// diagnostics intact.
type Error struct {
	Kind  ErrorKind
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("irsuite: %s: %s", e.Kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

func newConfigurationError(cause error) *Error {
	return &Error{Kind: ConfigurationError, cause: errors.Wrap(cause, "invalid recipe")}
}

func newPreconditionError(cause error) *Error {
	return &Error{Kind: PreconditionError, cause: errors.Wrap(cause, "pass precondition")}
}

func newAnalyzerRejection(cause error) *Error {
	return &Error{Kind: AnalyzerRejection, cause: errors.Wrap(cause, "analyzer rejected optimized code")}
}

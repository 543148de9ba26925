package auth

// Decision is the outcome of an admin authorization check. It is an
// explicit enum rather than a boolean so callers cannot accidentally
// treat a denial as truthy.
type Decision int

const (
	// DecisionUnauthenticated means the credential was missing, malformed or wrong.
	DecisionUnauthenticated Decision = iota
	// DecisionLockedOut means the identity exceeded the failure threshold
	// and is denied regardless of credential validity.
	DecisionLockedOut
	// DecisionAllowed means the request may proceed.
	DecisionAllowed
)

// String returns the log-friendly name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionAllowed:
		return "allowed"
	case DecisionLockedOut:
		return "locked_out"
	default:
		return "unauthenticated"
	}
}

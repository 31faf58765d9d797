package auth

import "labtrack/internal/domain/user"

// Outcome tags the variant held by a Result
type Outcome int

const (
	OutcomeAuthenticated Outcome = iota + 1
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Rejection reasons. They are logged server-side only.
const (
	ReasonUnknownEmail      = "no user with that email"
	ReasonPasswordIncorrect = "password incorrect"
)

// Result is the outcome of a credential check. User is set only when
// Outcome is OutcomeAuthenticated, Reason only when OutcomeRejected.
type Result struct {
	Outcome Outcome
	User    *user.User
	Reason  string
}

// Authenticated builds a successful Result
func Authenticated(u *user.User) Result {
	return Result{Outcome: OutcomeAuthenticated, User: u}
}

// Rejected builds a failed Result carrying reason
func Rejected(reason string) Result {
	return Result{Outcome: OutcomeRejected, Reason: reason}
}

// OK reports whether the credentials were accepted
func (r Result) OK() bool {
	return r.Outcome == OutcomeAuthenticated && r.User != nil
}

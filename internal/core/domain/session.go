package domain

// Status represents the lifecycle state of the client session.
type Status string

const (
	StatusAnonymous     Status = "anonymous"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusError         Status = "error"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[Status][]Status{
	StatusAnonymous:     {StatusLoading},
	StatusLoading:       {StatusAuthenticated, StatusError, StatusAnonymous},
	StatusAuthenticated: {StatusLoading, StatusAnonymous},
	StatusError:         {StatusLoading, StatusAnonymous},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Session is a point-in-time snapshot of the authentication state.
//
// Invariants (checked by Valid):
//   - authenticated implies both User and Token are present.
//   - anonymous implies both are absent.
type Session struct {
	Status    Status `json:"status"`
	User      *User  `json:"user,omitempty"`
	Token     string `json:"-"`
	LastError string `json:"last_error,omitempty"`
}

// Valid reports whether the snapshot satisfies the status/user/token invariants.
func (s Session) Valid() bool {
	switch s.Status {
	case StatusAuthenticated:
		return s.User != nil && s.Token != ""
	case StatusAnonymous:
		return s.User == nil && s.Token == ""
	case StatusLoading, StatusError:
		return s.User == nil
	default:
		return false
	}
}

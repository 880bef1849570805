package domain

import "errors"

var ErrInvalidTransition = errors.New("invalid session transition")
var ErrNoSession = errors.New("no active session")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrBackendUnavailable = errors.New("backend unavailable")
var ErrRequestRejected = errors.New("request rejected by backend")
var ErrItemNotFound = errors.New("inventory item not found")

// BackendError pairs a domain sentinel with the human-readable message the
// backend (or transport) reported. Error() yields the message so it can be
// shown to the operator verbatim; Unwrap keeps errors.Is working against the
// sentinel.
type BackendError struct {
	Err     error
	Message string
}

func (e *BackendError) Error() string { return e.Message }

func (e *BackendError) Unwrap() error { return e.Err }

// ErrorMessage extracts the user-facing message for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return err.Error()
}

package service

import "github.com/stoqkeep/inventory-console/internal/core/domain"

// Decision is the outcome of guarding a protected navigation target.
type Decision int

const (
	// DecisionRender allows the protected content through.
	DecisionRender Decision = iota
	// DecisionRedirectLogin bounces the request to the login page.
	DecisionRedirectLogin
	// DecisionShowLoading shows a neutral placeholder while the session resolves.
	DecisionShowLoading
)

// Guard maps session state to a navigation decision. It is stateless and
// idempotent: safe to apply independently to every request.
func Guard(s domain.Session) Decision {
	switch s.Status {
	case domain.StatusLoading:
		return DecisionShowLoading
	case domain.StatusAuthenticated:
		return DecisionRender
	default:
		return DecisionRedirectLogin
	}
}

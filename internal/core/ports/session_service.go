package ports

import (
	"context"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

// SessionService is the single source of truth for authentication state.
type SessionService interface {
	// Snapshot returns the current session state. Safe to call on every request.
	Snapshot() domain.Session
	// Resolve turns a persisted token into a live session at boot. It runs at
	// most once per process; later calls are no-ops.
	Resolve(ctx context.Context)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Logout transitions to anonymous synchronously; the backend notification
	// is fire-and-forget.
	Logout(ctx context.Context)
	// ClearError drops the stored error message without changing status.
	ClearError()
}

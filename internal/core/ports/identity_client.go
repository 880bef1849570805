package ports

import (
	"context"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

// Credentials is the user+token pair returned by the identity endpoints.
type Credentials struct {
	Token string
	User  *domain.User
}

// IdentityClient talks to the backend's auth endpoints. The bearer token is
// passed explicitly; the client holds no session state of its own.
type IdentityClient interface {
	// CurrentUser resolves a persisted token into a live user. A rejected or
	// expired token surfaces as domain.ErrNoSession.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Credentials, error)
	Register(ctx context.Context, username, email, password string) (*Credentials, error)
	// Logout asks the backend to invalidate the token server-side.
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error
}

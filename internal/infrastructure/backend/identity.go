package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

// IdentityClient implements ports.IdentityClient over the backend's /auth
// endpoints.
type IdentityClient struct {
	*Client
}

// NewIdentityClient wraps a shared backend client.
func NewIdentityClient(c *Client) *IdentityClient {
	return &IdentityClient{Client: c}
}

type authPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type userPayload struct {
	User *domain.User `json:"user"`
}

// CurrentUser resolves a bearer token into a user. Every failure collapses to
// domain.ErrNoSession: a token the backend will not vouch for means "logged
// out", never a fatal error.
func (c *IdentityClient) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var payload userPayload
	if err := c.do(ctx, "current_user", http.MethodGet, "/auth/me", token, nil, &payload); err != nil {
		return nil, &domain.BackendError{Err: domain.ErrNoSession, Message: domain.ErrorMessage(err)}
	}
	if payload.User == nil {
		return nil, &domain.BackendError{Err: domain.ErrNoSession, Message: "empty session response"}
	}
	return payload.User, nil
}

// Login exchanges credentials for a token+user pair.
func (c *IdentityClient) Login(ctx context.Context, email, password string) (*ports.Credentials, error) {
	body := map[string]string{"email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", "", body, &payload); err != nil {
		return nil, credentialError(err)
	}
	return credentials(payload)
}

// Register creates an account and returns the signed-in credentials.
func (c *IdentityClient) Register(ctx context.Context, username, email, password string) (*ports.Credentials, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var payload authPayload
	if err := c.do(ctx, "register", http.MethodPost, "/auth/register", "", body, &payload); err != nil {
		return nil, credentialError(err)
	}
	return credentials(payload)
}

// Logout notifies the backend; the caller ignores the result by contract.
func (c *IdentityClient) Logout(ctx context.Context, token string) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", token, nil, nil)
}

// ChangePassword rotates the operator's password.
func (c *IdentityClient) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.do(ctx, "change_password", http.MethodPut, "/auth/change-password", token, body, nil)
}

// credentialError re-tags backend rejections of a login/register attempt as
// ErrInvalidCredentials while leaving transport failures untouched. Both end
// up in the same "error" session status either way.
func credentialError(err error) error {
	if errors.Is(err, domain.ErrBackendUnavailable) {
		return err
	}
	return &domain.BackendError{Err: domain.ErrInvalidCredentials, Message: domain.ErrorMessage(err)}
}

func credentials(payload authPayload) (*ports.Credentials, error) {
	if payload.Token == "" || payload.User == nil {
		return nil, &domain.BackendError{Err: domain.ErrInvalidCredentials, Message: "malformed auth response"}
	}
	return &ports.Credentials{Token: payload.Token, User: payload.User}, nil
}

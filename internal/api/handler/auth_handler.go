package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

// AuthHandler serves the anonymous shell (login/register) plus logout and
// account settings.
type AuthHandler struct {
	sessions ports.SessionService
	identity ports.IdentityClient
}

func NewAuthHandler(sessions ports.SessionService, identity ports.IdentityClient) *AuthHandler {
	return &AuthHandler{sessions: sessions, identity: identity}
}

type loginForm struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username string `form:"username" validate:"required,min=3,max=30"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

type changePasswordForm struct {
	CurrentPassword string `form:"current_password" validate:"required"`
	NewPassword     string `form:"new_password"     validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

type loginPage struct {
	Error string
	Email string
}

type registerPage struct {
	Error    string
	Username string
	Email    string
}

type settingsPage struct {
	User  *domain.User
	Flash string
	Error string
}

// LoginPage renders the sign-in form. A fresh visit discards any error left
// over from an earlier failed attempt.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	h.sessions.ClearError()
	return c.Render(http.StatusOK, "login", loginPage{})
}

// Login authenticates the operator. On failure the form is re-rendered with
// the backend's message and the email preserved.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login", loginPage{Error: "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "login", loginPage{Error: err.Error(), Email: form.Email})
	}

	if _, err := h.sessions.Login(c.Request().Context(), form.Email, form.Password); err != nil {
		return c.Render(http.StatusUnauthorized, "login", loginPage{Error: domain.ErrorMessage(err), Email: form.Email})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPage renders the account creation form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	h.sessions.ClearError()
	return c.Render(http.StatusOK, "register", registerPage{})
}

// Register creates an account and signs the operator in. Uniqueness errors
// come straight from the backend.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register", registerPage{Error: "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "register", registerPage{
			Error: err.Error(), Username: form.Username, Email: form.Email,
		})
	}

	if _, err := h.sessions.Register(c.Request().Context(), form.Username, form.Email, form.Password); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "register", registerPage{
			Error: domain.ErrorMessage(err), Username: form.Username, Email: form.Email,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout ends the session locally and redirects to the login page. The
// backend notification happens in the background and its result is ignored.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, "/login")
}

// SettingsPage shows account information and the change-password form.
func (h *AuthHandler) SettingsPage(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "settings", settingsPage{User: s.User, Flash: c.QueryParam("flash")})
}

// ChangePassword rotates the operator's password via the backend.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form changePasswordForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "settings", settingsPage{User: s.User, Error: "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "settings", settingsPage{User: s.User, Error: err.Error()})
	}
	if form.NewPassword != form.ConfirmPassword {
		return c.Render(http.StatusUnprocessableEntity, "settings", settingsPage{User: s.User, Error: "new passwords do not match"})
	}

	if err := h.identity.ChangePassword(c.Request().Context(), s.Token, form.CurrentPassword, form.NewPassword); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "settings", settingsPage{User: s.User, Error: domain.ErrorMessage(err)})
	}
	return c.Redirect(http.StatusSeeOther, "/settings?flash=Password+changed+successfully")
}

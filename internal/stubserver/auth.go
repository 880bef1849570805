package stubserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type authData struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type userData struct {
	User *domain.User `json:"user"`
}

func (a *account) user() *domain.User {
	return &domain.User{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Username) < 3 || req.Email == "" || len(req.Password) < 6 {
		return fail(c, http.StatusBadRequest, "Username, email and a password of at least 6 characters are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Could not create account")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		return fail(c, http.StatusConflict, "An account with this email already exists")
	}

	role := domain.RoleStaff
	if len(s.accounts) == 0 {
		role = domain.RoleAdmin // first account runs the warehouse
	}
	acct := &account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	s.accounts[req.Email] = acct

	token, err := s.mintToken(acct)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Could not issue token")
	}
	return ok(c, http.StatusCreated, authData{Token: token, User: acct.user()})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}

	s.mu.Lock()
	acct := s.accounts[strings.ToLower(strings.TrimSpace(req.Email))]
	s.mu.Unlock()

	if acct == nil || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := s.mintToken(acct)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Could not issue token")
	}
	return ok(c, http.StatusOK, authData{Token: token, User: acct.user()})
}

func (s *Server) me(c echo.Context) error {
	acct := c.Get("account").(*account)
	return ok(c, http.StatusOK, userData{User: acct.user()})
}

func (s *Server) logout(c echo.Context) error {
	token := c.Get("token").(string)
	s.mu.Lock()
	s.revoked[token] = struct{}{}
	s.mu.Unlock()
	return ok(c, http.StatusOK, nil)
}

func (s *Server) changePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}
	if len(req.NewPassword) < 6 {
		return fail(c, http.StatusBadRequest, "New password must be at least 6 characters")
	}

	acct := c.Get("account").(*account)
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return fail(c, http.StatusUnauthorized, "Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Could not change password")
	}

	s.mu.Lock()
	acct.PasswordHash = string(hash)
	s.mu.Unlock()
	return ok(c, http.StatusOK, nil)
}

func (s *Server) mintToken(acct *account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      acct.ID,
		"username": acct.Username,
		"role":     acct.Role,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// auth validates the bearer token and injects the owning account into the
// request context.
func (s *Server) auth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return fail(c, http.StatusUnauthorized, "Missing authorization header")
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return fail(c, http.StatusUnauthorized, "Invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(s.secret), nil
			})
			if err != nil || !tkn.Valid {
				return fail(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			sub, _ := claims["sub"].(string)
			s.mu.Lock()
			_, dead := s.revoked[parts[1]]
			var acct *account
			for _, a := range s.accounts {
				if a.ID == sub {
					acct = a
					break
				}
			}
			s.mu.Unlock()
			if dead || acct == nil {
				return fail(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("account", acct)
			c.Set("token", parts[1])
			return next(c)
		}
	}
}

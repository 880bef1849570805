package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

// ctxSession extracts the session snapshot injected by the Guard middleware
// and fast-fails before any backend call: an authenticated snapshot proves
// the guard ran for this request.
func ctxSession(c echo.Context) (domain.Session, error) {
	s, _ := c.Get("session").(domain.Session)
	if s.Status != domain.StatusAuthenticated {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return s, nil
}

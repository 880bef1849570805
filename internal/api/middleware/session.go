package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stoqkeep/inventory-console/internal/core/ports"
	"github.com/stoqkeep/inventory-console/internal/core/service"
)

// SessionKey is the echo context key under which the session snapshot is
// stored for downstream handlers.
const SessionKey = "session"

// Guard protects a navigation target: it applies the route guard decision to
// every request independently, so no protected page can render once the
// session leaves the authenticated status.
func Guard(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Snapshot()
			switch service.Guard(s) {
			case service.DecisionShowLoading:
				return c.Render(http.StatusOK, "loading", nil)
			case service.DecisionRedirectLogin:
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			c.Set(SessionKey, s)
			return next(c)
		}
	}
}

// Anonymous wraps the login/register pages: signed-in operators are bounced
// to the dashboard, and the loading placeholder is shown while a persisted
// token is still being resolved.
func Anonymous(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Snapshot()
			switch service.Guard(s) {
			case service.DecisionShowLoading:
				return c.Render(http.StatusOK, "loading", nil)
			case service.DecisionRender:
				return c.Redirect(http.StatusSeeOther, "/")
			}
			c.Set(SessionKey, s)
			return next(c)
		}
	}
}

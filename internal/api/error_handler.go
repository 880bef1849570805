package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
	"github.com/stoqkeep/inventory-console/internal/core/service"
)

// errorPage is the data for the "error" template.
type errorPage struct {
	Status  int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends unmatched paths to the current shell's default page (dashboard
//     when authenticated, login otherwise, loading placeholder in between).
//   - Maps known domain errors to their appropriate pages and status codes.
//   - Logs unexpected errors internally without leaking details to the operator.
func NewHTTPErrorHandler(log zerolog.Logger, sessions ports.SessionService) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusNotFound {
				redirectHome(c, sessions)
				return
			}
			_ = c.Render(he.Code, "error", errorPage{Status: he.Code, Message: fmt.Sprintf("%v", he.Message)})
			return
		}

		switch {
		case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrNoSession):
			// Token went stale mid-use; the backend is the authority.
			_ = c.Redirect(http.StatusSeeOther, "/login")
			return
		case errors.Is(err, domain.ErrItemNotFound):
			_ = c.Render(http.StatusNotFound, "error", errorPage{Status: http.StatusNotFound, Message: "inventory item not found"})
			return
		case errors.Is(err, domain.ErrBackendUnavailable):
			_ = c.Render(http.StatusBadGateway, "error", errorPage{Status: http.StatusBadGateway, Message: domain.ErrorMessage(err)})
			return
		case errors.Is(err, domain.ErrRequestRejected):
			_ = c.Render(http.StatusUnprocessableEntity, "error", errorPage{Status: http.StatusUnprocessableEntity, Message: domain.ErrorMessage(err)})
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.Render(http.StatusInternalServerError, "error", errorPage{Status: http.StatusInternalServerError, Message: "internal server error"})
	}
}

// redirectHome lands the request on whichever shell the session allows.
func redirectHome(c echo.Context, sessions ports.SessionService) {
	switch service.Guard(sessions.Snapshot()) {
	case service.DecisionRender:
		_ = c.Redirect(http.StatusSeeOther, "/")
	case service.DecisionShowLoading:
		_ = c.Render(http.StatusOK, "loading", nil)
	default:
		_ = c.Redirect(http.StatusSeeOther, "/login")
	}
}

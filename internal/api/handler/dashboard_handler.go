package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
	"github.com/stoqkeep/inventory-console/internal/infrastructure/poller"
)

// DashboardHandler serves the default protected page: stat cards fed by the
// low-stock poller plus the inventory overview table.
type DashboardHandler struct {
	inventory ports.InventoryClient
	alerts    *poller.Poller
}

func NewDashboardHandler(inventory ports.InventoryClient, alerts *poller.Poller) *DashboardHandler {
	return &DashboardHandler{inventory: inventory, alerts: alerts}
}

type dashboardPage struct {
	User     *domain.User
	Result   *domain.ListResult
	Params   domain.ListParams
	LowCount int
	OutCount int
	Date     string
	Flash    string
	Error    string
}

// Dashboard renders the landing page.
func (h *DashboardHandler) Dashboard(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	params := listParams(c)
	snap := h.alerts.Snapshot()
	page := dashboardPage{
		User:     s.User,
		Params:   params,
		LowCount: snap.LowCount,
		OutCount: snap.OutCount,
		Date:     time.Now().Format("January 2, 2006"),
		Flash:    c.QueryParam("flash"),
	}

	result, err := h.inventory.List(c.Request().Context(), s.Token, params)
	if err != nil {
		page.Error = "Failed to load inventory"
		return c.Render(http.StatusOK, "dashboard", page)
	}
	page.Result = result
	return c.Render(http.StatusOK, "dashboard", page)
}

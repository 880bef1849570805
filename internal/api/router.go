package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/api/handler"
	"github.com/stoqkeep/inventory-console/internal/api/middleware"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
	"github.com/stoqkeep/inventory-console/internal/infrastructure/poller"
)

// Deps bundles everything the router needs.
type Deps struct {
	Sessions  ports.SessionService
	Identity  ports.IdentityClient
	Inventory ports.InventoryClient
	Backend   handler.Pinger
	Alerts    *poller.Poller
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The two shells are disjoint route groups: the anonymous one redirects
// signed-in operators away, the protected one applies the route guard to
// every request.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.Sessions)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("stoqkeep"))

	// --- Operational endpoints (no session required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	healthHandler := handler.NewHealthHandler(deps.Backend)
	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/healthz/ready", healthHandler.Readiness)
	e.FileFS("/static/app.css", "static/app.css", assets)

	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Identity)
	inventoryHandler := handler.NewInventoryHandler(deps.Inventory)
	dashboardHandler := handler.NewDashboardHandler(deps.Inventory, deps.Alerts)

	// --- Anonymous shell ---
	anon := e.Group("", middleware.Anonymous(deps.Sessions))
	anon.GET("/login", authHandler.LoginPage)
	anon.POST("/login", authHandler.Login)
	anon.GET("/register", authHandler.RegisterPage)
	anon.POST("/register", authHandler.Register)

	// --- Protected shell ---
	prot := e.Group("", middleware.Guard(deps.Sessions))
	prot.GET("/", dashboardHandler.Dashboard)
	prot.GET("/inventory", inventoryHandler.ListPage)
	prot.GET("/items/add", inventoryHandler.AddPage)
	prot.POST("/items/add", inventoryHandler.Create)
	prot.GET("/items/edit/:id", inventoryHandler.EditPage)
	prot.POST("/items/edit/:id", inventoryHandler.Update)
	prot.GET("/items/:id", inventoryHandler.DetailPage)
	prot.POST("/items/:id/delete", inventoryHandler.Delete)
	prot.POST("/items/:id/stock", inventoryHandler.AdjustStock)
	prot.GET("/settings", authHandler.SettingsPage)
	prot.POST("/settings/password", authHandler.ChangePassword)
	prot.POST("/logout", authHandler.Logout)

	return e
}

// Package stubserver is a development stand-in for the production Stoq-Keep
// backend API. It implements the wire contract the console consumes (auth,
// inventory CRUD, stock adjustment, low-stock alerts) against in-memory
// state, so the console can be run and tested without the real service.
package stubserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

// lowStockThreshold mirrors the production default: at or below this
// quantity an item counts as low stock.
const lowStockThreshold = 10

// Config captures the stub's runtime settings.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Server holds all in-memory state. Everything is lost on restart.
type Server struct {
	secret string
	ttl    time.Duration
	log    zerolog.Logger

	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	items    map[string]*domain.InventoryItem
	revoked  map[string]struct{} // tokens invalidated by logout
}

// New builds a stub server.
func New(cfg Config, log zerolog.Logger) *Server {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Server{
		secret:   cfg.JWTSecret,
		ttl:      ttl,
		log:      log,
		accounts: make(map[string]*account),
		items:    make(map[string]*domain.InventoryItem),
		revoked:  make(map[string]struct{}),
	}
}

// Router returns the Echo instance with all backend routes registered under
// the /api prefix the console expects.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	api := e.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.auth())
	authed.GET("/auth/me", s.me)
	authed.POST("/auth/logout", s.logout)
	authed.PUT("/auth/change-password", s.changePassword)

	authed.GET("/inventory", s.listItems)
	authed.POST("/inventory", s.createItem)
	authed.GET("/inventory/alerts/low-stock", s.lowStock)
	authed.GET("/inventory/:id", s.getItem)
	authed.PUT("/inventory/:id", s.updateItem)
	authed.DELETE("/inventory/:id", s.deleteItem)
	authed.PATCH("/inventory/:id/stock", s.adjustStock)

	return e
}

// --- Response envelope ---

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Success: true, Data: data})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, envelope{Success: false, Message: msg})
}

// stockStatus recomputes the derived status after every quantity change.
func stockStatus(quantity int) domain.StockStatus {
	switch {
	case quantity == 0:
		return domain.StockOutOfStock
	case quantity <= lowStockThreshold:
		return domain.StockLowStock
	default:
		return domain.StockInStock
	}
}

func notFound(c echo.Context) error {
	return fail(c, http.StatusNotFound, "Inventory item not found")
}

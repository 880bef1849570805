package stubserver

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
	"github.com/stoqkeep/inventory-console/internal/infrastructure/backend"
)

// newStack starts the stub backend and returns the console's own clients
// pointed at it, so the full wire contract is exercised end to end.
func newStack(t *testing.T) (*backend.IdentityClient, *backend.InventoryClient) {
	t.Helper()
	stub := New(Config{JWTSecret: "test-secret", TokenTTL: time.Hour}, zerolog.Nop())
	srv := httptest.NewServer(stub.Router())
	t.Cleanup(srv.Close)

	client := backend.NewClient(backend.Config{BaseURL: srv.URL + "/api"}, zerolog.Nop())
	return backend.NewIdentityClient(client), backend.NewInventoryClient(client)
}

func register(t *testing.T, identity *backend.IdentityClient, username, email string) *ports.Credentials {
	t.Helper()
	creds, err := identity.Register(context.Background(), username, email, "secret-1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return creds
}

func TestAuthFlow(t *testing.T) {
	identity, _ := newStack(t)

	creds := register(t, identity, "alice", "alice@example.com")
	if creds.User.Role != domain.RoleAdmin {
		t.Fatalf("first account should be admin, got %s", creds.User.Role)
	}

	// The second account is plain staff.
	second := register(t, identity, "bob", "bob@example.com")
	if second.User.Role != domain.RoleStaff {
		t.Fatalf("expected staff role, got %s", second.User.Role)
	}

	// Duplicate email rejected with the backend's message.
	if _, err := identity.Register(context.Background(), "mallory", "alice@example.com", "secret-1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected rejection for duplicate email, got %v", err)
	}

	// Fresh login and token resolution.
	login, err := identity.Login(context.Background(), "alice@example.com", "secret-1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	user, err := identity.CurrentUser(context.Background(), login.Token)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// Wrong password.
	if _, err := identity.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Logout revokes the token.
	if err := identity.Logout(context.Background(), login.Token); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := identity.CurrentUser(context.Background(), login.Token); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("revoked token still resolves: %v", err)
	}
}

func TestChangePasswordFlow(t *testing.T) {
	identity, _ := newStack(t)
	creds := register(t, identity, "alice", "alice@example.com")

	if err := identity.ChangePassword(context.Background(), creds.Token, "wrong", "next-secret"); err == nil {
		t.Fatalf("wrong current password accepted")
	}
	if err := identity.ChangePassword(context.Background(), creds.Token, "secret-1", "next-secret"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, err := identity.Login(context.Background(), "alice@example.com", "secret-1"); err == nil {
		t.Fatalf("old password still works")
	}
	if _, err := identity.Login(context.Background(), "alice@example.com", "next-secret"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestInventoryFlow(t *testing.T) {
	identity, inventory := newStack(t)
	creds := register(t, identity, "alice", "alice@example.com")
	ctx := context.Background()

	// Unauthenticated access is refused.
	if _, err := inventory.List(ctx, "", domain.ListParams{}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	item, err := inventory.Create(ctx, creds.Token, ports.ItemInput{
		Name: "Hex Bolt", Category: "Hardware", SKU: "bolt-01", Quantity: 50, Price: 0.25,
		Location: domain.Location{Warehouse: "Main"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if item.SKU != "BOLT-01" {
		t.Fatalf("SKU not normalised: %q", item.SKU)
	}
	if item.StockStatus != domain.StockInStock {
		t.Fatalf("expected in_stock at quantity 50, got %s", item.StockStatus)
	}

	// Duplicate SKU rejected.
	if _, err := inventory.Create(ctx, creds.Token, ports.ItemInput{
		Name: "Other Bolt", Category: "Hardware", SKU: "BOLT-01", Quantity: 1,
		Location: domain.Location{Warehouse: "Main"},
	}); !errors.Is(err, domain.ErrRequestRejected) {
		t.Fatalf("expected duplicate SKU rejection, got %v", err)
	}

	// Stock adjustment recomputes the derived status.
	adjusted, err := inventory.AdjustStock(ctx, creds.Token, item.ID, domain.AdjustSet, 3)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if adjusted.Quantity != 3 || adjusted.StockStatus != domain.StockLowStock {
		t.Fatalf("unexpected adjustment result: %+v", adjusted)
	}

	// Subtracting past zero clamps at zero.
	adjusted, err = inventory.AdjustStock(ctx, creds.Token, item.ID, domain.AdjustSubtract, 10)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if adjusted.Quantity != 0 || adjusted.StockStatus != domain.StockOutOfStock {
		t.Fatalf("expected clamped out_of_stock, got %+v", adjusted)
	}

	// The item now shows up in the low-stock alerts.
	low, err := inventory.LowStock(ctx, creds.Token)
	if err != nil {
		t.Fatalf("LowStock returned error: %v", err)
	}
	if len(low) != 1 || low[0].ID != item.ID {
		t.Fatalf("unexpected alerts: %+v", low)
	}

	if err := inventory.Delete(ctx, creds.Token, item.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := inventory.Get(ctx, creds.Token, item.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound after delete, got %v", err)
	}
}

func TestInventoryListFilters(t *testing.T) {
	identity, inventory := newStack(t)
	creds := register(t, identity, "alice", "alice@example.com")
	ctx := context.Background()

	seed := []ports.ItemInput{
		{Name: "Hex Bolt", Category: "Hardware", SKU: "BOLT-01", Quantity: 50, Location: domain.Location{Warehouse: "Main"}},
		{Name: "Wood Screw", Category: "Hardware", SKU: "SCRW-01", Quantity: 5, Location: domain.Location{Warehouse: "Main"}},
		{Name: "Label Roll", Category: "Office", SKU: "LABL-01", Quantity: 0, Location: domain.Location{Warehouse: "Annex"}},
	}
	for _, input := range seed {
		if _, err := inventory.Create(ctx, creds.Token, input); err != nil {
			t.Fatalf("seed %s: %v", input.SKU, err)
		}
	}

	result, err := inventory.List(ctx, creds.Token, domain.ListParams{Search: "bolt"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].SKU != "BOLT-01" {
		t.Fatalf("search failed: %+v", result.Items)
	}

	result, err = inventory.List(ctx, creds.Token, domain.ListParams{Category: "Hardware"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("category filter failed: %+v", result.Items)
	}

	result, err = inventory.List(ctx, creds.Token, domain.ListParams{Status: string(domain.StockOutOfStock)})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].SKU != "LABL-01" {
		t.Fatalf("status filter failed: %+v", result.Items)
	}

	result, err = inventory.List(ctx, creds.Token, domain.ListParams{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Pagination.TotalItems != 3 || result.Pagination.TotalPages != 2 || len(result.Items) != 1 {
		t.Fatalf("pagination window wrong: %+v", result.Pagination)
	}
}

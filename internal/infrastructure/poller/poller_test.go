package poller

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

type stubSessions struct {
	snap domain.Session
}

func (s *stubSessions) Snapshot() domain.Session { return s.snap }
func (s *stubSessions) Resolve(context.Context)  {}
func (s *stubSessions) Login(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}
func (s *stubSessions) Register(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}
func (s *stubSessions) Logout(context.Context) {}
func (s *stubSessions) ClearError()            {}

type stubInventory struct {
	lowStock    []domain.InventoryItem
	lowStockErr error
	calls       int
	gotToken    string
}

func (s *stubInventory) List(context.Context, string, domain.ListParams) (*domain.ListResult, error) {
	return nil, nil
}
func (s *stubInventory) Get(context.Context, string, string) (*domain.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventory) Create(context.Context, string, ports.ItemInput) (*domain.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventory) Update(context.Context, string, string, ports.ItemInput) (*domain.InventoryItem, error) {
	return nil, nil
}
func (s *stubInventory) Delete(context.Context, string, string) error { return nil }
func (s *stubInventory) AdjustStock(context.Context, string, string, domain.AdjustOp, int) (*domain.InventoryItem, error) {
	return nil, nil
}

func (s *stubInventory) LowStock(_ context.Context, token string) ([]domain.InventoryItem, error) {
	s.calls++
	s.gotToken = token
	return s.lowStock, s.lowStockErr
}

func authenticated() *stubSessions {
	return &stubSessions{snap: domain.Session{
		Status: domain.StatusAuthenticated,
		User:   &domain.User{ID: "u1", Username: "alice"},
		Token:  "tok",
	}}
}

func TestPoller_SkipsWhenNotAuthenticated(t *testing.T) {
	inventory := &stubInventory{}
	p := New(&stubSessions{snap: domain.Session{Status: domain.StatusAnonymous}}, inventory, 0, zerolog.Nop())

	p.poll(context.Background())

	if inventory.calls != 0 {
		t.Fatalf("poll hit the backend without a session")
	}
	if snap := p.Snapshot(); !snap.UpdatedAt.IsZero() {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestPoller_CountsLowAndOut(t *testing.T) {
	inventory := &stubInventory{lowStock: []domain.InventoryItem{
		{ID: "i1", Quantity: 0, StockStatus: domain.StockOutOfStock},
		{ID: "i2", Quantity: 3, StockStatus: domain.StockLowStock},
		{ID: "i3", Quantity: 7, StockStatus: domain.StockLowStock},
	}}
	p := New(authenticated(), inventory, 0, zerolog.Nop())

	p.poll(context.Background())

	if inventory.gotToken != "tok" {
		t.Fatalf("poll used token %q", inventory.gotToken)
	}
	snap := p.Snapshot()
	if snap.LowCount != 2 || snap.OutCount != 1 {
		t.Fatalf("got low=%d out=%d", snap.LowCount, snap.OutCount)
	}
	if len(snap.Items) != 3 || snap.UpdatedAt.IsZero() {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestPoller_KeepsSnapshotOnError(t *testing.T) {
	inventory := &stubInventory{lowStock: []domain.InventoryItem{{ID: "i1", Quantity: 2}}}
	p := New(authenticated(), inventory, 0, zerolog.Nop())

	p.poll(context.Background())
	inventory.lowStockErr = domain.ErrBackendUnavailable
	p.poll(context.Background())

	if snap := p.Snapshot(); snap.LowCount != 1 {
		t.Fatalf("failed poll wiped the last good snapshot: %+v", snap)
	}
}

func TestPoller_DiscardsAfterLogout(t *testing.T) {
	sessions := authenticated()
	inventory := &stubInventory{lowStock: []domain.InventoryItem{{ID: "i1", Quantity: 2}}}
	p := New(sessions, inventory, 0, zerolog.Nop())

	p.poll(context.Background())
	sessions.snap = domain.Session{Status: domain.StatusAnonymous}
	p.poll(context.Background())

	if snap := p.Snapshot(); snap.LowCount != 0 || len(snap.Items) != 0 {
		t.Fatalf("stale alerts survived logout: %+v", snap)
	}
}

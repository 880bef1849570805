package ports

import (
	"context"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

// ItemInput carries the editable fields of an inventory item. Validation and
// stock status computation happen on the backend.
type ItemInput struct {
	Name        string
	Description string
	Category    string
	SKU         string
	Quantity    int
	Price       float64
	Supplier    domain.Supplier
	Location    domain.Location
}

// InventoryClient talks to the backend's inventory endpoints.
type InventoryClient interface {
	List(ctx context.Context, token string, params domain.ListParams) (*domain.ListResult, error)
	Get(ctx context.Context, token, id string) (*domain.InventoryItem, error)
	Create(ctx context.Context, token string, input ItemInput) (*domain.InventoryItem, error)
	Update(ctx context.Context, token, id string, input ItemInput) (*domain.InventoryItem, error)
	Delete(ctx context.Context, token, id string) error
	AdjustStock(ctx context.Context, token, id string, op domain.AdjustOp, quantity int) (*domain.InventoryItem, error)
	LowStock(ctx context.Context, token string) ([]domain.InventoryItem, error)
}

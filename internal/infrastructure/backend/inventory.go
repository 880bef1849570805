package backend

import (
	"context"
	"net/http"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

// InventoryClient implements ports.InventoryClient over the backend's
// /inventory endpoints. It is a pass-through: filtering, validation, and stock
// status computation all happen server-side.
type InventoryClient struct {
	*Client
}

// NewInventoryClient wraps a shared backend client.
func NewInventoryClient(c *Client) *InventoryClient {
	return &InventoryClient{Client: c}
}

type itemPayload struct {
	Item *domain.InventoryItem `json:"inventoryItem"`
}

type lowStockPayload struct {
	Items []domain.InventoryItem `json:"lowStockItems"`
}

type itemBody struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	Price       float64         `json:"price"`
	Supplier    domain.Supplier `json:"supplier"`
	Location    domain.Location `json:"location"`
}

func encodeItem(input ports.ItemInput) itemBody {
	return itemBody{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		SKU:         input.SKU,
		Quantity:    input.Quantity,
		Price:       input.Price,
		Supplier:    input.Supplier,
		Location:    input.Location,
	}
}

func (c *InventoryClient) List(ctx context.Context, token string, params domain.ListParams) (*domain.ListResult, error) {
	var result domain.ListResult
	if err := c.do(ctx, "inventory_list", http.MethodGet, "/inventory"+query(params), token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *InventoryClient) Get(ctx context.Context, token, id string) (*domain.InventoryItem, error) {
	var payload itemPayload
	if err := c.do(ctx, "inventory_get", http.MethodGet, "/inventory/"+id, token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Item, nil
}

func (c *InventoryClient) Create(ctx context.Context, token string, input ports.ItemInput) (*domain.InventoryItem, error) {
	var payload itemPayload
	if err := c.do(ctx, "inventory_create", http.MethodPost, "/inventory", token, encodeItem(input), &payload); err != nil {
		return nil, err
	}
	return payload.Item, nil
}

func (c *InventoryClient) Update(ctx context.Context, token, id string, input ports.ItemInput) (*domain.InventoryItem, error) {
	var payload itemPayload
	if err := c.do(ctx, "inventory_update", http.MethodPut, "/inventory/"+id, token, encodeItem(input), &payload); err != nil {
		return nil, err
	}
	return payload.Item, nil
}

func (c *InventoryClient) Delete(ctx context.Context, token, id string) error {
	return c.do(ctx, "inventory_delete", http.MethodDelete, "/inventory/"+id, token, nil, nil)
}

func (c *InventoryClient) AdjustStock(ctx context.Context, token, id string, op domain.AdjustOp, quantity int) (*domain.InventoryItem, error) {
	body := map[string]any{"operation": op, "quantity": quantity}
	var payload itemPayload
	if err := c.do(ctx, "inventory_adjust", http.MethodPatch, "/inventory/"+id+"/stock", token, body, &payload); err != nil {
		return nil, err
	}
	return payload.Item, nil
}

func (c *InventoryClient) LowStock(ctx context.Context, token string) ([]domain.InventoryItem, error) {
	var payload lowStockPayload
	if err := c.do(ctx, "inventory_low_stock", http.MethodGet, "/inventory/alerts/low-stock", token, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

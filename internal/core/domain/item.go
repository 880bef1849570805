package domain

import "time"

// StockStatus is computed by the backend; the console only displays it.
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// Label returns the human-readable badge text for a stock status.
func (s StockStatus) Label() string {
	switch s {
	case StockLowStock:
		return "Low Stock"
	case StockOutOfStock:
		return "Out of Stock"
	default:
		return "In Stock"
	}
}

// AdjustOp is a stock adjustment operation applied by the backend.
type AdjustOp string

const (
	AdjustSet      AdjustOp = "set"
	AdjustAdd      AdjustOp = "add"
	AdjustSubtract AdjustOp = "subtract"
)

// Supplier identifies where an item is sourced from.
type Supplier struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Location pinpoints an item inside the warehouse.
type Location struct {
	Warehouse string `json:"warehouse"`
	Aisle     string `json:"aisle,omitempty"`
	Shelf     string `json:"shelf,omitempty"`
}

// InventoryItem is a stock record owned by the backend.
type InventoryItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category"`
	SKU         string      `json:"sku"`
	Quantity    int         `json:"quantity"`
	Price       float64     `json:"price"`
	Supplier    Supplier    `json:"supplier"`
	Location    Location    `json:"location"`
	StockStatus StockStatus `json:"stockStatus"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ListParams narrows an inventory listing.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Status   string
}

// Pagination describes the page window returned by a listing.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// ListResult is one page of inventory items plus its pagination window.
type ListResult struct {
	Items      []InventoryItem `json:"inventoryItems"`
	Pagination Pagination      `json:"pagination"`
}

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

func TestInventoryClient_List(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/inventory" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "10" || q.Get("search") != "bolt" || q.Get("status") != "low_stock" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"inventoryItems": []map[string]any{
				{"id": "i1", "name": "Hex Bolt", "sku": "BOLT-01", "quantity": 4, "stockStatus": "low_stock"},
			},
			"pagination": map[string]any{"currentPage": 2, "totalPages": 3, "totalItems": 21},
		})
	}))

	result, err := NewInventoryClient(client).List(context.Background(), "tok", domain.ListParams{
		Page: 2, Limit: 10, Search: "bolt", Status: "low_stock",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].SKU != "BOLT-01" {
		t.Fatalf("unexpected items: %+v", result.Items)
	}
	if result.Pagination.TotalItems != 21 || result.Pagination.CurrentPage != 2 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
}

func TestInventoryClient_Get_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, false, "Inventory item not found", nil)
	}))

	_, err := NewInventoryClient(client).Get(context.Background(), "tok", "missing")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestInventoryClient_Create(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/inventory" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["sku"] != "BOLT-01" {
			t.Errorf("unexpected body: %v", body)
		}
		loc, _ := body["location"].(map[string]any)
		if loc["warehouse"] != "Main" {
			t.Errorf("location not forwarded: %v", body["location"])
		}
		writeEnvelope(w, http.StatusCreated, true, "", map[string]any{
			"inventoryItem": map[string]any{"id": "i1", "name": "Hex Bolt", "sku": "BOLT-01", "stockStatus": "in_stock"},
		})
	}))

	item, err := NewInventoryClient(client).Create(context.Background(), "tok", ports.ItemInput{
		Name: "Hex Bolt", Category: "Hardware", SKU: "BOLT-01", Quantity: 50, Price: 0.25,
		Location: domain.Location{Warehouse: "Main"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if item.ID != "i1" || item.StockStatus != domain.StockInStock {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestInventoryClient_AdjustStock(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/inventory/i1/stock" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["operation"] != "add" || body["quantity"] != float64(5) {
			t.Errorf("unexpected body: %v", body)
		}
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"inventoryItem": map[string]any{"id": "i1", "quantity": 9, "stockStatus": "low_stock"},
		})
	}))

	item, err := NewInventoryClient(client).AdjustStock(context.Background(), "tok", "i1", domain.AdjustAdd, 5)
	if err != nil {
		t.Fatalf("AdjustStock returned error: %v", err)
	}
	if item.Quantity != 9 || item.StockStatus != domain.StockLowStock {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestInventoryClient_Delete_Unauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, false, "Invalid or expired token", nil)
	}))

	err := NewInventoryClient(client).Delete(context.Background(), "tok", "i1")
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestInventoryClient_LowStock(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/inventory/alerts/low-stock" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{
			"lowStockItems": []map[string]any{
				{"id": "i1", "quantity": 0, "stockStatus": "out_of_stock"},
				{"id": "i2", "quantity": 3, "stockStatus": "low_stock"},
			},
		})
	}))

	items, err := NewInventoryClient(client).LowStock(context.Background(), "tok")
	if err != nil {
		t.Fatalf("LowStock returned error: %v", err)
	}
	if len(items) != 2 || items[0].StockStatus != domain.StockOutOfStock {
		t.Fatalf("unexpected items: %+v", items)
	}
}

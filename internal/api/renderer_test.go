package api

import (
	"strings"
	"testing"
	"time"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

type authPageData struct {
	Error    string
	Username string
	Email    string
}

type tablePageData struct {
	User   *domain.User
	Result *domain.ListResult
	Params domain.ListParams
	Flash  string
	Error  string
}

type dashboardPageData struct {
	User     *domain.User
	Result   *domain.ListResult
	Params   domain.ListParams
	LowCount int
	OutCount int
	Date     string
	Flash    string
	Error    string
}

type itemPageData struct {
	User  *domain.User
	Item  *domain.InventoryItem
	Flash string
	Error string
}

type itemFormData struct {
	Name          string
	Description   string
	Category      string
	SKU           string
	Quantity      int
	Price         float64
	SupplierName  string
	SupplierEmail string
	SupplierPhone string
	Warehouse     string
	Aisle         string
	Shelf         string
}

type itemFormPageData struct {
	User   *domain.User
	Form   itemFormData
	Edit   bool
	ItemID string
	Error  string
}

type settingsPageData struct {
	User  *domain.User
	Flash string
	Error string
}

// Every page template must execute cleanly against the shape of data its
// handler passes; a field rename that breaks a template should fail here, not
// in front of the operator.
func TestRenderer_AllTemplates(t *testing.T) {
	r := NewRenderer()

	user := &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: domain.RoleAdmin}
	item := domain.InventoryItem{
		ID: "i1", Name: "Hex Bolt", Category: "Hardware", SKU: "BOLT-01",
		Quantity: 4, Price: 0.25, StockStatus: domain.StockLowStock,
		Supplier:  domain.Supplier{Name: "Acme"},
		Location:  domain.Location{Warehouse: "Main", Aisle: "3", Shelf: "B"},
		UpdatedAt: time.Now(),
	}
	result := &domain.ListResult{
		Items:      []domain.InventoryItem{item},
		Pagination: domain.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 21},
	}

	cases := []struct {
		name     string
		data     any
		contains string
	}{
		{"login", authPageData{Error: "Invalid email or password", Email: "alice@example.com"}, "Invalid email or password"},
		{"register", authPageData{}, "Create Account"},
		{"loading", nil, "spinner"},
		{"error", errorPage{Status: 404, Message: "inventory item not found"}, "404"},
		{"inventory", tablePageData{User: user, Result: result, Params: domain.ListParams{Search: "bolt"}}, "Hex Bolt"},
		{"inventory", tablePageData{User: user}, "unavailable"},
		{"dashboard", dashboardPageData{User: user, Result: result, LowCount: 2, OutCount: 1, Date: "January 2, 2026"}, "Low Stock Items"},
		{"item_detail", itemPageData{User: user, Item: &item}, "BOLT-01"},
		{"item_form", itemFormPageData{User: user, Form: itemFormData{Name: "Hex Bolt"}}, "Hex Bolt"},
		{"item_form", itemFormPageData{User: user, Form: itemFormData{Name: "Hex Bolt"}, Edit: true, ItemID: "i1"}, "Save Changes"},
		{"settings", settingsPageData{User: user, Flash: "Password changed successfully"}, "Password changed successfully"},
	}

	for _, tc := range cases {
		var sb strings.Builder
		if err := r.Render(&sb, tc.name, tc.data, nil); err != nil {
			t.Errorf("%s: render failed: %v", tc.name, err)
			continue
		}
		if !strings.Contains(sb.String(), tc.contains) {
			t.Errorf("%s: output missing %q", tc.name, tc.contains)
		}
	}
}

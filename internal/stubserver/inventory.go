package stubserver

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
)

type itemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	Price       float64         `json:"price"`
	Supplier    domain.Supplier `json:"supplier"`
	Location    domain.Location `json:"location"`
}

type adjustRequest struct {
	Operation string `json:"operation"`
	Quantity  int    `json:"quantity"`
}

type itemData struct {
	Item *domain.InventoryItem `json:"inventoryItem"`
}

type listData struct {
	Items      []domain.InventoryItem `json:"inventoryItems"`
	Pagination domain.Pagination      `json:"pagination"`
}

type lowStockData struct {
	Items []domain.InventoryItem `json:"lowStockItems"`
}

func (r itemRequest) validate() string {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return "Name is required"
	case strings.TrimSpace(r.SKU) == "":
		return "SKU is required"
	case strings.TrimSpace(r.Category) == "":
		return "Category is required"
	case strings.TrimSpace(r.Location.Warehouse) == "":
		return "Warehouse location is required"
	case r.Quantity < 0:
		return "Quantity cannot be negative"
	case r.Price < 0:
		return "Price cannot be negative"
	}
	return ""
}

func (s *Server) listItems(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	search := strings.ToLower(c.QueryParam("search"))
	category := c.QueryParam("category")
	status := c.QueryParam("status")

	s.mu.Lock()
	matched := make([]domain.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.SKU), search) {
			continue
		}
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if status != "" && string(item.StockStatus) != status {
			continue
		}
		matched = append(matched, *item)
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return ok(c, http.StatusOK, listData{
		Items: matched[start:end],
		Pagination: domain.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
		},
	})
}

func (s *Server) createItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.SKU == sku {
			return fail(c, http.StatusConflict, "An item with this SKU already exists")
		}
	}

	item := &domain.InventoryItem{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Category:    req.Category,
		SKU:         sku,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Supplier:    req.Supplier,
		Location:    req.Location,
		StockStatus: stockStatus(req.Quantity),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.items[item.ID] = item
	return ok(c, http.StatusCreated, itemData{Item: item})
}

func (s *Server) getItem(c echo.Context) error {
	s.mu.Lock()
	item, found := s.items[c.Param("id")]
	s.mu.Unlock()
	if !found {
		return notFound(c)
	}
	return ok(c, http.StatusOK, itemData{Item: item})
}

func (s *Server) updateItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item, found := s.items[c.Param("id")]
	if !found {
		return notFound(c)
	}

	item.Name = strings.TrimSpace(req.Name)
	item.Description = req.Description
	item.Category = req.Category
	item.SKU = strings.ToUpper(strings.TrimSpace(req.SKU))
	item.Quantity = req.Quantity
	item.Price = req.Price
	item.Supplier = req.Supplier
	item.Location = req.Location
	item.StockStatus = stockStatus(item.Quantity)
	item.UpdatedAt = time.Now().UTC()
	return ok(c, http.StatusOK, itemData{Item: item})
}

func (s *Server) deleteItem(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.items[c.Param("id")]; !found {
		return notFound(c)
	}
	delete(s.items, c.Param("id"))
	return ok(c, http.StatusOK, nil)
}

func (s *Server) adjustStock(c echo.Context) error {
	var req adjustRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid payload")
	}
	if req.Quantity < 0 {
		return fail(c, http.StatusBadRequest, "Quantity cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item, found := s.items[c.Param("id")]
	if !found {
		return notFound(c)
	}

	switch domain.AdjustOp(req.Operation) {
	case domain.AdjustSet:
		item.Quantity = req.Quantity
	case domain.AdjustAdd:
		item.Quantity += req.Quantity
	case domain.AdjustSubtract:
		item.Quantity -= req.Quantity
		if item.Quantity < 0 {
			item.Quantity = 0
		}
	default:
		return fail(c, http.StatusBadRequest, "Operation must be set, add, or subtract")
	}

	item.StockStatus = stockStatus(item.Quantity)
	item.UpdatedAt = time.Now().UTC()
	return ok(c, http.StatusOK, itemData{Item: item})
}

func (s *Server) lowStock(c echo.Context) error {
	s.mu.Lock()
	low := make([]domain.InventoryItem, 0)
	for _, item := range s.items {
		if item.Quantity <= lowStockThreshold {
			low = append(low, *item)
		}
	}
	s.mu.Unlock()

	sort.Slice(low, func(i, j int) bool { return low[i].Quantity < low[j].Quantity })
	return ok(c, http.StatusOK, lowStockData{Items: low})
}

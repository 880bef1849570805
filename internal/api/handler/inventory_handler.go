package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/stoqkeep/inventory-console/internal/core/domain"
	"github.com/stoqkeep/inventory-console/internal/core/ports"
)

const pageSize = 10

// InventoryHandler serves the item listing, detail, and editing pages. It is
// a thin pass-through: all validation beyond form shape, and all stock status
// computation, happen on the backend.
type InventoryHandler struct {
	inventory ports.InventoryClient
}

func NewInventoryHandler(inventory ports.InventoryClient) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type itemForm struct {
	Name          string  `form:"name"           validate:"required,max=100"`
	Description   string  `form:"description"    validate:"max=500"`
	Category      string  `form:"category"       validate:"required"`
	SKU           string  `form:"sku"            validate:"required,max=20"`
	Quantity      int     `form:"quantity"       validate:"gte=0"`
	Price         float64 `form:"price"          validate:"gte=0"`
	SupplierName  string  `form:"supplier_name"`
	SupplierEmail string  `form:"supplier_email" validate:"omitempty,email"`
	SupplierPhone string  `form:"supplier_phone"`
	Warehouse     string  `form:"warehouse"      validate:"required"`
	Aisle         string  `form:"aisle"`
	Shelf         string  `form:"shelf"`
}

// input converts the form into the backend payload. SKUs are normalised to
// upper case before submission.
func (f itemForm) input() ports.ItemInput {
	return ports.ItemInput{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		SKU:         strings.ToUpper(f.SKU),
		Quantity:    f.Quantity,
		Price:       f.Price,
		Supplier:    domain.Supplier{Name: f.SupplierName, Email: f.SupplierEmail, Phone: f.SupplierPhone},
		Location:    domain.Location{Warehouse: f.Warehouse, Aisle: f.Aisle, Shelf: f.Shelf},
	}
}

func formFromItem(item *domain.InventoryItem) itemForm {
	return itemForm{
		Name:          item.Name,
		Description:   item.Description,
		Category:      item.Category,
		SKU:           item.SKU,
		Quantity:      item.Quantity,
		Price:         item.Price,
		SupplierName:  item.Supplier.Name,
		SupplierEmail: item.Supplier.Email,
		SupplierPhone: item.Supplier.Phone,
		Warehouse:     item.Location.Warehouse,
		Aisle:         item.Location.Aisle,
		Shelf:         item.Location.Shelf,
	}
}

type adjustForm struct {
	Operation string `form:"operation" validate:"required,oneof=set add subtract"`
	Quantity  int    `form:"quantity"  validate:"gte=0"`
}

type inventoryPage struct {
	User   *domain.User
	Result *domain.ListResult
	Params domain.ListParams
	Flash  string
	Error  string
}

type itemPage struct {
	User  *domain.User
	Item  *domain.InventoryItem
	Flash string
	Error string
}

type itemFormPage struct {
	User   *domain.User
	Form   itemForm
	Edit   bool
	ItemID string
	Error  string
}

// listParams extracts the listing filters from the query string.
func listParams(c echo.Context) domain.ListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	return domain.ListParams{
		Page:     page,
		Limit:    pageSize,
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
	}
}

// ListPage renders the inventory table with search, filter, and pagination.
func (h *InventoryHandler) ListPage(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	params := listParams(c)
	page := inventoryPage{User: s.User, Params: params, Flash: c.QueryParam("flash")}

	result, err := h.inventory.List(c.Request().Context(), s.Token, params)
	if err != nil {
		page.Error = "Failed to load inventory"
		return c.Render(http.StatusOK, "inventory", page)
	}
	page.Result = result
	return c.Render(http.StatusOK, "inventory", page)
}

// DetailPage renders a single item plus the stock adjustment form.
func (h *InventoryHandler) DetailPage(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	item, err := h.inventory.Get(c.Request().Context(), s.Token, c.Param("id"))
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "item_detail", itemPage{
		User:  s.User,
		Item:  item,
		Flash: c.QueryParam("flash"),
		Error: c.QueryParam("err"),
	})
}

// AddPage renders an empty item form.
func (h *InventoryHandler) AddPage(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "item_form", itemFormPage{User: s.User})
}

// Create submits a new item to the backend.
func (h *InventoryHandler) Create(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	var form itemForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "item_form", itemFormPage{User: s.User, Error: "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "item_form", itemFormPage{User: s.User, Form: form, Error: err.Error()})
	}

	item, err := h.inventory.Create(c.Request().Context(), s.Token, form.input())
	if err != nil {
		return c.Render(http.StatusUnprocessableEntity, "item_form", itemFormPage{
			User: s.User, Form: form, Error: domain.ErrorMessage(err),
		})
	}
	return c.Redirect(http.StatusSeeOther, "/items/"+url.PathEscape(item.ID)+"?flash=Item+created")
}

// EditPage renders the form pre-filled with the item's current fields.
func (h *InventoryHandler) EditPage(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	item, err := h.inventory.Get(c.Request().Context(), s.Token, id)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "item_form", itemFormPage{User: s.User, Form: formFromItem(item), Edit: true, ItemID: id})
}

// Update submits edited fields to the backend.
func (h *InventoryHandler) Update(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	var form itemForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "item_form", itemFormPage{User: s.User, Edit: true, ItemID: id, Error: "invalid form submission"})
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusUnprocessableEntity, "item_form", itemFormPage{User: s.User, Form: form, Edit: true, ItemID: id, Error: err.Error()})
	}

	item, err := h.inventory.Update(c.Request().Context(), s.Token, id, form.input())
	if err != nil {
		return c.Render(http.StatusUnprocessableEntity, "item_form", itemFormPage{
			User: s.User, Form: form, Edit: true, ItemID: id, Error: domain.ErrorMessage(err),
		})
	}
	return c.Redirect(http.StatusSeeOther, "/items/"+url.PathEscape(item.ID)+"?flash=Item+updated")
}

// Delete removes an item and returns to the inventory list.
func (h *InventoryHandler) Delete(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.inventory.Delete(c.Request().Context(), s.Token, c.Param("id")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/inventory?flash=Item+deleted")
}

// AdjustStock applies a set/add/subtract operation to an item's quantity.
func (h *InventoryHandler) AdjustStock(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	var form adjustForm
	if err := c.Bind(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, "/items/"+url.PathEscape(id)+"?err=Enter+a+valid+quantity")
	}
	if err := c.Validate(&form); err != nil {
		return c.Redirect(http.StatusSeeOther, "/items/"+url.PathEscape(id)+"?err="+url.QueryEscape(err.Error()))
	}

	if _, err := h.inventory.AdjustStock(c.Request().Context(), s.Token, id, domain.AdjustOp(form.Operation), form.Quantity); err != nil {
		return c.Redirect(http.StatusSeeOther, "/items/"+url.PathEscape(id)+"?err="+url.QueryEscape(domain.ErrorMessage(err)))
	}
	return c.Redirect(http.StatusSeeOther, "/items/"+url.PathEscape(id)+"?flash=Stock+updated")
}

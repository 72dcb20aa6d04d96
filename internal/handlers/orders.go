package handlers

import (
	"net/http"
	"strconv"

	"northwind/internal/models"
	"northwind/internal/response"
	"northwind/internal/store"
)

// ListOrders returns orders with computed totals, optionally restricted
// to an inclusive order-date range. Invalid ranges are rejected before
// any storage access, seeding included.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if err := store.ValidateDateRange(start, end); err != nil {
		response.Err(w, err.Error(), 400)
		return
	}

	if err := h.seedOrders(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	items, err := h.Store.SearchOrders(start, end)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []models.Order{}
	}
	response.JSON(w, items)
}

// OrderDetails returns the line items of one order with per-line
// subtotals.
func (h *Handler) OrderDetails(w http.ResponseWriter, r *http.Request, id string) {
	orderID, err := strconv.Atoi(id)
	if err != nil {
		response.Err(w, "invalid order id", 400)
		return
	}
	items, err := h.Store.OrderDetails(orderID)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []models.OrderDetail{}
	}
	response.JSON(w, items)
}

// seedOrders seeds orders and everything they reference. OrdersIfEmpty
// ensures the status lookup rows itself before inserting.
func (h *Handler) seedOrders() error {
	if err := h.Seeder.CustomersIfEmpty(); err != nil {
		return err
	}
	if err := h.Seeder.ProductsIfEmpty(); err != nil {
		return err
	}
	return h.Seeder.OrdersIfEmpty()
}

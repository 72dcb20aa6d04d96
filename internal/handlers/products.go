package handlers

import (
	"database/sql"
	"net/http"

	"northwind/internal/models"
	"northwind/internal/response"
	"northwind/internal/store"
)

// ListProducts returns products matching the search or category query.
// A search term takes precedence over a category filter.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.ProductsIfEmpty(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	var (
		items []models.Product
		err   error
	)
	if search := r.URL.Query().Get("search"); search != "" {
		items, err = h.Store.SearchProducts(search)
	} else {
		items, err = h.Store.ProductsByCategory(r.URL.Query().Get("category"))
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []models.Product{}
	}
	response.JSON(w, items)
}

// ListCategories returns the distinct product categories plus the
// catch-all entry used by category filters.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.ProductsIfEmpty(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	categories, err := h.Store.ListCategories()
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	response.JSON(w, append([]string{store.AllCategories}, categories...))
}

type createProductRequest struct {
	models.Product
	Supplier string `json:"supplier"`
}

// CreateProduct adds a product, resolving the supplier company name to
// its id.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := response.DecodeBody(r, &req); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if req.Name == "" {
		response.Err(w, "product_name is required", 400)
		return
	}
	if req.ListPrice <= 0 {
		response.Err(w, "list_price must be positive", 400)
		return
	}
	if req.QtyPerUnit < 0 {
		response.Err(w, "quantity_per_unit must be non-negative", 400)
		return
	}

	supplierID, err := h.Store.SupplierIDByCompany(req.Supplier)
	if err == sql.ErrNoRows {
		response.Err(w, "unknown supplier", 400)
		return
	} else if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	id, err := h.Store.CreateProduct(req.Product, supplierID)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	req.Product.ID = id
	response.JSON(w, req.Product)
}

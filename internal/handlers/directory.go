package handlers

import (
	"net/http"

	"northwind/internal/models"
	"northwind/internal/response"
)

// ListCustomers returns customers matching the search query.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.CustomersIfEmpty(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	items, err := h.Store.SearchCustomers(r.URL.Query().Get("search"))
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []models.Customer{}
	}
	response.JSON(w, items)
}

// ListEmployees returns employees matching the filter query.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.EmployeesIfEmpty(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	items, err := h.Store.FilterEmployees(r.URL.Query().Get("filter"))
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []models.Employee{}
	}
	response.JSON(w, items)
}

// CreateEmployee adds an employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var e models.Employee
	if err := response.DecodeBody(r, &e); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if e.FirstName == "" || e.LastName == "" {
		response.Err(w, "first_name and last_name are required", 400)
		return
	}
	id, err := h.Store.CreateEmployee(e)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	e.ID = id
	response.JSON(w, e)
}

// ListSuppliers returns all suppliers ordered by company.
func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.SuppliersIfEmpty(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	items, err := h.Store.ListSuppliers()
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []models.Supplier{}
	}
	response.JSON(w, items)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"northwind/internal/models"
	"northwind/internal/response"
)

// Report runs the named report and writes it as JSON, CSV or Excel
// depending on the format query parameter.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.seedOrders(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	var (
		data    interface{}
		title   string
		headers []string
		rows    [][]string
		err     error
	)

	switch name {
	case "sales-by-category":
		title = "SalesByCategory"
		headers = []string{"Category", "Total Sales"}
		items, reportErr := h.Reports.SalesByCategory()
		err = reportErr
		if items == nil {
			items = []models.CategorySales{}
		}
		data = items
		for _, it := range items {
			rows = append(rows, []string{it.Key, fmt.Sprintf("%.2f", it.Total)})
		}
	case "sales-by-customer":
		title = "SalesByCustomer"
		headers = []string{"Customer", "Total Sales"}
		items, reportErr := h.Reports.SalesByCustomer()
		err = reportErr
		if items == nil {
			items = []models.CategorySales{}
		}
		data = items
		for _, it := range items {
			rows = append(rows, []string{it.Key, fmt.Sprintf("%.2f", it.Total)})
		}
	case "monthly-sales":
		title = "MonthlySales"
		headers = []string{"Month", "Total Sales"}
		items, reportErr := h.Reports.MonthlySales()
		err = reportErr
		if items == nil {
			items = []models.MonthlySales{}
		}
		data = items
		for _, it := range items {
			rows = append(rows, []string{it.Label, fmt.Sprintf("%.2f", it.Total)})
		}
	case "product-inventory":
		title = "ProductInventory"
		headers = []string{"Category", "Total Inventory"}
		items, reportErr := h.Reports.ProductInventory()
		err = reportErr
		if items == nil {
			items = []models.CategoryInventory{}
		}
		data = items
		for _, it := range items {
			rows = append(rows, []string{it.Category, strconv.Itoa(it.Quantity)})
		}
	case "warehouse-inventory":
		title = "WarehouseInventory"
		headers = []string{"Warehouse", "Category", "Product Count"}
		items, reportErr := h.Reports.WarehouseInventory()
		err = reportErr
		if items == nil {
			items = []models.WarehouseInventory{}
		}
		data = items
		for _, it := range items {
			rows = append(rows, []string{it.Warehouse, it.Category, strconv.Itoa(it.ProductCount)})
		}
	default:
		response.Err(w, "unknown report", 404)
		return
	}

	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		ExportCSV(w, name+".csv", headers, rows)
	case "xlsx":
		ExportExcel(w, title, headers, rows)
	default:
		response.JSON(w, data)
	}
}

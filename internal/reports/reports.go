// Package reports computes the aggregation reports over the order and
// product tables. Every sales figure uses the same line formula:
// quantity * unit_price * (1 - discount).
package reports

import (
	"database/sql"
	"fmt"

	"northwind/internal/models"
	"northwind/internal/schema"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

const warehousesDDL = `CREATE TABLE IF NOT EXISTS warehouses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	warehouse_name TEXT NOT NULL
)`

// Engine runs the aggregation reports against a single database handle.
type Engine struct {
	DB *sql.DB
}

func New(db *sql.DB) *Engine {
	return &Engine{DB: db}
}

// SalesByCategory totals revenue per product category, largest first.
// Rows with a null or empty category are dropped.
func (e *Engine) SalesByCategory() ([]models.CategorySales, error) {
	rows, err := e.DB.Query(`SELECT p.category, SUM(od.quantity * od.unit_price * (1 - od.discount)) AS total_sales
		FROM order_details od
		JOIN products p ON od.product_id = p.id
		GROUP BY p.category
		ORDER BY total_sales DESC`)
	if err != nil {
		return nil, fmt.Errorf("sales by category: %w", err)
	}
	defer rows.Close()
	return scanCategorySales(rows)
}

// SalesByCustomer totals revenue per customer company and returns the
// top ten.
func (e *Engine) SalesByCustomer() ([]models.CategorySales, error) {
	rows, err := e.DB.Query(`SELECT c.company, SUM(od.quantity * od.unit_price * (1 - od.discount)) AS total_sales
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		JOIN order_details od ON o.id = od.order_id
		GROUP BY c.company
		ORDER BY total_sales DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("sales by customer: %w", err)
	}
	defer rows.Close()
	return scanCategorySales(rows)
}

func scanCategorySales(rows *sql.Rows) ([]models.CategorySales, error) {
	var out []models.CategorySales
	for rows.Next() {
		var key sql.NullString
		var total float64
		if err := rows.Scan(&key, &total); err != nil {
			return nil, err
		}
		if !key.Valid || key.String == "" {
			continue
		}
		out = append(out, models.CategorySales{Key: key.String, Total: total})
	}
	return out, rows.Err()
}

// MonthlySales buckets revenue by calendar month in chronological
// order. Orders without a date are excluded.
func (e *Engine) MonthlySales() ([]models.MonthlySales, error) {
	rows, err := e.DB.Query(`SELECT CAST(strftime('%Y', o.order_date) AS INTEGER) AS year,
			CAST(strftime('%m', o.order_date) AS INTEGER) AS month,
			SUM(od.quantity * od.unit_price * (1 - od.discount)) AS total_sales
		FROM orders o
		JOIN order_details od ON o.id = od.order_id
		WHERE o.order_date IS NOT NULL
		GROUP BY year, month
		ORDER BY year, month`)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()

	var out []models.MonthlySales
	for rows.Next() {
		var m models.MonthlySales
		if err := rows.Scan(&m.Year, &m.Month, &m.Total); err != nil {
			return nil, err
		}
		if m.Month >= 1 && m.Month <= 12 {
			m.Label = fmt.Sprintf("%s %d", monthNames[m.Month-1], m.Year)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ProductInventory sums quantity_per_unit by category, largest first.
func (e *Engine) ProductInventory() ([]models.CategoryInventory, error) {
	rows, err := e.DB.Query(`SELECT category, SUM(quantity_per_unit) AS total_inventory
		FROM products
		GROUP BY category
		ORDER BY total_inventory DESC`)
	if err != nil {
		return nil, fmt.Errorf("product inventory: %w", err)
	}
	defer rows.Close()

	var out []models.CategoryInventory
	for rows.Next() {
		var category sql.NullString
		var qty int
		if err := rows.Scan(&category, &qty); err != nil {
			return nil, err
		}
		if !category.Valid || category.String == "" {
			continue
		}
		out = append(out, models.CategoryInventory{Category: category.String, Quantity: qty})
	}
	return out, rows.Err()
}

// WarehouseInventory counts products per warehouse and category. The
// warehouse dimension is created on first use: the warehouses table,
// the products.warehouse_id column, and a random assignment for any
// product not yet placed.
func (e *Engine) WarehouseInventory() ([]models.WarehouseInventory, error) {
	if err := e.ensureWarehouses(); err != nil {
		return nil, err
	}

	rows, err := e.DB.Query(`SELECT w.warehouse_name, p.category, COUNT(p.id) AS product_count
		FROM products p
		JOIN warehouses w ON p.warehouse_id = w.id
		GROUP BY w.warehouse_name, p.category
		ORDER BY w.warehouse_name, p.category`)
	if err != nil {
		return nil, fmt.Errorf("warehouse inventory: %w", err)
	}
	defer rows.Close()

	var out []models.WarehouseInventory
	for rows.Next() {
		var wi models.WarehouseInventory
		var category sql.NullString
		if err := rows.Scan(&wi.Warehouse, &category, &wi.ProductCount); err != nil {
			return nil, err
		}
		wi.Category = category.String
		out = append(out, wi)
	}
	return out, rows.Err()
}

func (e *Engine) ensureWarehouses() error {
	created, err := schema.EnsureTable(e.DB, "warehouses", warehousesDDL)
	if err != nil {
		return fmt.Errorf("ensure warehouses: %w", err)
	}
	if created {
		if _, err := e.DB.Exec(`INSERT INTO warehouses (warehouse_name) VALUES
			('North Warehouse'), ('South Warehouse'), ('East Warehouse'), ('West Warehouse')`); err != nil {
			return fmt.Errorf("seed warehouses: %w", err)
		}
	}

	if _, err := schema.EnsureColumn(e.DB, "products", "warehouse_id", "INTEGER"); err != nil {
		return fmt.Errorf("ensure warehouse_id: %w", err)
	}

	// Place any unassigned product in one of the four warehouses.
	if _, err := e.DB.Exec("UPDATE products SET warehouse_id = (ABS(RANDOM()) % 4) + 1 WHERE warehouse_id IS NULL"); err != nil {
		return fmt.Errorf("assign warehouses: %w", err)
	}
	return nil
}

package store

import (
	"fmt"

	"northwind/internal/models"
)

// AllCategories is the sentinel filter value meaning "no category
// filter".
const AllCategories = "All Categories"

// SearchProducts returns products whose name contains term, or every
// product when term is empty.
func (s *Store) SearchProducts(term string) ([]models.Product, error) {
	query := "SELECT id, product_name, COALESCE(category,''), list_price, quantity_per_unit FROM products"
	var args []interface{}
	if term != "" {
		query += " WHERE product_name LIKE ?"
		args = append(args, "%"+term+"%")
	}
	return s.queryProducts(query, args...)
}

// ProductsByCategory returns products with an exact category match. The
// AllCategories sentinel (or an empty category) disables the filter.
func (s *Store) ProductsByCategory(category string) ([]models.Product, error) {
	if category == "" || category == AllCategories {
		return s.SearchProducts("")
	}
	return s.queryProducts(
		"SELECT id, product_name, COALESCE(category,''), list_price, quantity_per_unit FROM products WHERE category = ?",
		category)
}

func (s *Store) queryProducts(query string, args ...interface{}) ([]models.Product, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.ListPrice, &p.QtyPerUnit); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListCategories returns the distinct non-empty product categories in
// alphabetic order.
func (s *Store) ListCategories() ([]string, error) {
	rows, err := s.DB.Query("SELECT DISTINCT category FROM products WHERE category IS NOT NULL AND category <> '' ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateProduct inserts a new product and returns its generated id.
func (s *Store) CreateProduct(p models.Product, supplierID int) (int, error) {
	res, err := s.DB.Exec(`INSERT INTO products (product_name, category, list_price, quantity_per_unit, supplier_id)
		VALUES (?, ?, ?, ?, ?)`, p.Name, p.Category, p.ListPrice, p.QtyPerUnit, supplierID)
	if err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

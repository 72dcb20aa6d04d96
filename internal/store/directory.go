package store

import (
	"fmt"
	"strings"

	"northwind/internal/models"
)

// SearchCustomers returns customers whose company, last name or first
// name contains term. An empty term returns every row.
func (s *Store) SearchCustomers(term string) ([]models.Customer, error) {
	query := "SELECT id, company, last_name, first_name, job_title, business_phone FROM customers"
	var args []interface{}
	if term != "" {
		query += " WHERE company LIKE ? OR last_name LIKE ? OR first_name LIKE ?"
		pattern := "%" + term + "%"
		args = append(args, pattern, pattern, pattern)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		var lastName, firstName string
		if err := rows.Scan(&c.ID, &c.Company, &lastName, &firstName, &c.ContactTitle, &c.Phone); err != nil {
			return nil, err
		}
		c.ContactName = firstName + " " + lastName
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// FilterEmployees returns employees whose first name, last name or city
// contains term, compared lower-cased. An empty term returns every row.
func (s *Store) FilterEmployees(term string) ([]models.Employee, error) {
	query := `SELECT id, first_name, last_name, address, city, state_province,
		zip_postal_code, home_phone, job_title, COALESCE(notes,'') FROM employees`
	var args []interface{}
	if term != "" {
		query += " WHERE LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(city) LIKE ?"
		pattern := "%" + strings.ToLower(term) + "%"
		args = append(args, pattern, pattern, pattern)
	}

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Address, &e.City,
			&e.Region, &e.PostalCode, &e.Phone, &e.JobTitle, &e.Notes); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// CreateEmployee inserts a new employee row and returns its generated id.
func (s *Store) CreateEmployee(e models.Employee) (int, error) {
	res, err := s.DB.Exec(`INSERT INTO employees (first_name, last_name, address, city, state_province,
		zip_postal_code, home_phone, job_title, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.FirstName, e.LastName, e.Address, e.City, e.Region, e.PostalCode, e.Phone, e.JobTitle, e.Notes)
	if err != nil {
		return 0, fmt.Errorf("create employee: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

// ListSuppliers returns the distinct supplier companies with their
// contact, ordered by company.
func (s *Store) ListSuppliers() ([]models.Supplier, error) {
	rows, err := s.DB.Query("SELECT id, company, last_name, first_name, job_title FROM suppliers ORDER BY company")
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		var sp models.Supplier
		if err := rows.Scan(&sp.ID, &sp.Company, &sp.LastName, &sp.FirstName, &sp.JobTitle); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, sp)
	}
	return suppliers, rows.Err()
}

// SupplierIDByCompany resolves a supplier company name to its id.
func (s *Store) SupplierIDByCompany(company string) (int, error) {
	var id int
	err := s.DB.QueryRow("SELECT id FROM suppliers WHERE company = ?", company).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

package store

import (
	"database/sql"
	"fmt"

	"northwind/internal/models"
)

// ListClients returns every client ordered by name. When inactiveOnly is
// set only clients marked inactive are returned.
func (s *Store) ListClients(inactiveOnly bool) ([]models.Client, error) {
	query := "SELECT id, name, email, COALESCE(phone,''), COALESCE(company,''), active, last_order_date FROM clients"
	if inactiveOnly {
		query += " WHERE active = 0"
	}
	query += " ORDER BY name"
	return s.queryClients(query)
}

// SearchClients returns clients whose name, company or email contains
// term, ordered by name. An empty term returns every row.
func (s *Store) SearchClients(term string) ([]models.Client, error) {
	if term == "" {
		return s.ListClients(false)
	}
	pattern := "%" + term + "%"
	return s.queryClients(`SELECT id, name, email, COALESCE(phone,''), COALESCE(company,''), active, last_order_date
		FROM clients WHERE name LIKE ? OR company LIKE ? OR email LIKE ? ORDER BY name`,
		pattern, pattern, pattern)
}

func (s *Store) queryClients(query string, args ...interface{}) ([]models.Client, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		var lastOrder sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Active, &lastOrder); err != nil {
			return nil, err
		}
		if lastOrder.Valid {
			c.LastOrderDate = &lastOrder.String
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// CreateClient inserts a new client and returns its generated id.
func (s *Store) CreateClient(c models.Client) (int, error) {
	res, err := s.DB.Exec("INSERT INTO clients (name, email, phone, company, active) VALUES (?, ?, ?, ?, ?)",
		c.Name, c.Email, c.Phone, c.Company, c.Active)
	if err != nil {
		return 0, fmt.Errorf("create client: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

// UpdateClient rewrites a client row and returns the affected row count.
func (s *Store) UpdateClient(c models.Client) (int, error) {
	res, err := s.DB.Exec("UPDATE clients SET name = ?, email = ?, phone = ?, company = ?, active = ? WHERE id = ?",
		c.Name, c.Email, c.Phone, c.Company, c.Active, c.ID)
	if err != nil {
		return 0, fmt.Errorf("update client: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// DeleteClient removes a client row and returns the affected row count.
// The delete does not cascade to any other table.
func (s *Store) DeleteClient(id int) (int, error) {
	res, err := s.DB.Exec("DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("delete client: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

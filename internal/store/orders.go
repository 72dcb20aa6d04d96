package store

import (
	"database/sql"
	"fmt"
	"time"

	"northwind/internal/models"
)

// orderSelect annotates each order with the discounted total of its line
// items via a correlated aggregate.
const orderSelect = `SELECT o.id, c.company, o.order_date, o.shipped_date, COALESCE(o.status_id, 0),
	COALESCE((SELECT SUM(od.quantity * od.unit_price * (1 - od.discount))
		FROM order_details od WHERE od.order_id = o.id), 0) AS total
	FROM orders o
	JOIN customers c ON o.customer_id = c.id`

// ValidateDateRange checks an order-search range without touching the
// database. Empty bounds mean no filter; present bounds must be
// YYYY-MM-DD dates with start not after end.
func ValidateDateRange(start, end string) error {
	if start == "" && end == "" {
		return nil
	}
	var from, to time.Time
	var err error
	if start != "" {
		if from, err = time.Parse("2006-01-02", start); err != nil {
			return ErrInvalidDate
		}
	}
	if end != "" {
		if to, err = time.Parse("2006-01-02", end); err != nil {
			return ErrInvalidDate
		}
	}
	if start != "" && end != "" && from.After(to) {
		return ErrInvalidDateRange
	}
	return nil
}

// SearchOrders returns orders within the inclusive [start, end] date
// range, newest first. Empty bounds disable the filter; a malformed
// bound or a start after end is rejected before any query is issued.
func (s *Store) SearchOrders(start, end string) ([]models.Order, error) {
	if err := ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	query := orderSelect
	var args []interface{}
	if start != "" && end != "" {
		query += " WHERE o.order_date BETWEEN ? AND ?"
		args = append(args, start, end)
	}
	query += " ORDER BY o.order_date DESC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		var orderDate, shippedDate sql.NullString
		if err := rows.Scan(&o.ID, &o.Company, &orderDate, &shippedDate, &o.StatusID, &o.Total); err != nil {
			return nil, err
		}
		o.OrderDate = orderDate.String
		if shippedDate.Valid {
			o.ShippedDate = &shippedDate.String
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// OrderDetails returns the line items of one order joined to their
// products, each with its discounted subtotal.
func (s *Store) OrderDetails(orderID int) ([]models.OrderDetail, error) {
	rows, err := s.DB.Query(`SELECT od.order_id, od.product_id, p.product_name, od.unit_price, od.quantity, od.discount,
		(od.quantity * od.unit_price * (1 - od.discount)) AS subtotal
		FROM order_details od
		JOIN products p ON od.product_id = p.id
		WHERE od.order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("order details: %w", err)
	}
	defer rows.Close()

	var details []models.OrderDetail
	for rows.Next() {
		var d models.OrderDetail
		if err := rows.Scan(&d.OrderID, &d.ProductID, &d.ProductName, &d.UnitPrice, &d.Quantity, &d.Discount, &d.Subtotal); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// Package store holds the parameterized read queries and the thin CRUD
// facade. Every operation takes its rows from an explicit *sql.DB handle
// and returns typed slices; callers decide how to render them.
package store

import (
	"database/sql"
	"errors"
)

// ErrInvalidDateRange is returned when an order search is asked for a
// range whose start falls after its end. The check runs before any SQL
// is issued.
var ErrInvalidDateRange = errors.New("start date must not be after end date")

// ErrInvalidDate is returned when a date-range bound is not in the
// YYYY-MM-DD format the order dates are stored in.
var ErrInvalidDate = errors.New("dates must use the YYYY-MM-DD format")

// Store executes the catalog of queries against one database handle.
type Store struct {
	DB *sql.DB
}

// New returns a Store bound to db.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

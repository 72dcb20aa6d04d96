// Package schema owns table creation. Base tables are created by an
// explicit Migrate pass at startup; tables and columns that the original
// dataset may lack (warehouses, products.warehouse_id, clients) are
// materialized lazily through EnsureTable/EnsureColumn.
package schema

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate creates the base tables and indexes. Safe to run repeatedly.
func Migrate(db *sql.DB) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			last_name TEXT DEFAULT '',
			first_name TEXT DEFAULT '',
			job_title TEXT DEFAULT '',
			business_phone TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			address TEXT DEFAULT '',
			city TEXT DEFAULT '',
			state_province TEXT DEFAULT '',
			zip_postal_code TEXT DEFAULT '',
			home_phone TEXT DEFAULT '',
			job_title TEXT DEFAULT '',
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			last_name TEXT DEFAULT '',
			first_name TEXT DEFAULT '',
			job_title TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_name TEXT NOT NULL,
			category TEXT,
			list_price REAL NOT NULL CHECK(list_price > 0),
			quantity_per_unit INTEGER DEFAULT 0 CHECK(quantity_per_unit >= 0),
			supplier_id INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS orders_status (
			id INTEGER PRIMARY KEY,
			status_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			customer_id INTEGER NOT NULL,
			order_date DATE,
			shipped_date DATE,
			status_id INTEGER,
			FOREIGN KEY (customer_id) REFERENCES customers(id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_details (
			order_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL CHECK(quantity >= 1),
			unit_price REAL NOT NULL,
			discount REAL DEFAULT 0 CHECK(discount >= 0 AND discount <= 1),
			PRIMARY KEY (order_id, product_id),
			FOREIGN KEY (order_id) REFERENCES orders(id),
			FOREIGN KEY (product_id) REFERENCES products(id)
		)`,
	}
	for _, t := range tables {
		if _, err := db.Exec(t); err != nil {
			return fmt.Errorf("migration error: %w\nSQL: %s", err, t)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date)",
		"CREATE INDEX IF NOT EXISTS idx_order_details_order_id ON order_details(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_details_product_id ON order_details(product_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_customers_company ON customers(company)",
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("index creation: %w\nSQL: %s", err, idx)
		}
	}
	return nil
}

// missingTable reports whether err is the driver's "relation not found"
// class of error. Other probe failures (connectivity, syntax) must not be
// mistaken for a missing table.
func missingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

func missingColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such column")
}

// EnsureTable probes for name with a bounded read and creates it from ddl
// if the probe fails with a missing-table error. A probe failure of any
// other class is returned to the caller. The ddl should use
// CREATE TABLE IF NOT EXISTS so that two callers racing on the same table
// cannot fail each other.
func EnsureTable(db *sql.DB, name, ddl string) (created bool, err error) {
	probeErr := probe(db, "SELECT 1 FROM "+name+" LIMIT 1")
	if probeErr == nil {
		return false, nil
	}
	if !missingTable(probeErr) {
		return false, fmt.Errorf("probe %s: %w", name, probeErr)
	}
	if _, err := db.Exec(ddl); err != nil {
		// A concurrent guard may have won the race.
		if retry := probe(db, "SELECT 1 FROM "+name+" LIMIT 1"); retry == nil {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", name, err)
	}
	return true, nil
}

// probe runs a bounded read and reports any failure other than an empty
// result.
func probe(db *sql.DB, query string) error {
	var one any
	err := db.QueryRow(query).Scan(&one)
	if err == sql.ErrNoRows {
		return nil
	}
	return err
}

// EnsureColumn adds column to table when a probe shows it missing and
// reports whether it was added, so callers can back-fill fresh columns.
func EnsureColumn(db *sql.DB, table, column, ddlType string) (added bool, err error) {
	probeErr := probe(db, fmt.Sprintf("SELECT %s FROM %s LIMIT 1", column, table))
	if probeErr == nil {
		return false, nil
	}
	if !missingColumn(probeErr) {
		return false, fmt.Errorf("probe %s.%s: %w", table, column, probeErr)
	}
	if _, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, ddlType)); err != nil {
		if strings.Contains(err.Error(), "duplicate column") {
			return false, nil
		}
		return false, fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return true, nil
}

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"northwind/internal/models"
	"northwind/internal/schema"

	_ "modernc.org/sqlite"
)

// SetupTestDB creates an in-memory SQLite database for testing with
// foreign keys enabled and the base tables migrated.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	testDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { testDB.Close() })

	// Every pooled connection to :memory: would get its own database;
	// pin the pool to one so all queries see the same data.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := schema.Migrate(testDB); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	return testDB
}

// InsertCustomer inserts a customer row and returns its id.
func InsertCustomer(t *testing.T, db *sql.DB, company, lastName, firstName string) int {
	t.Helper()
	res, err := db.Exec("INSERT INTO customers (company, last_name, first_name) VALUES (?, ?, ?)",
		company, lastName, firstName)
	if err != nil {
		t.Fatalf("Failed to insert customer: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

// InsertProduct inserts a product row and returns its id.
func InsertProduct(t *testing.T, db *sql.DB, name, category string, listPrice float64, qtyPerUnit int) int {
	t.Helper()
	res, err := db.Exec("INSERT INTO products (product_name, category, list_price, quantity_per_unit) VALUES (?, ?, ?, ?)",
		name, category, listPrice, qtyPerUnit)
	if err != nil {
		t.Fatalf("Failed to insert product: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

// InsertOrder inserts an order row and returns its id.
func InsertOrder(t *testing.T, db *sql.DB, customerID int, orderDate string) int {
	t.Helper()
	res, err := db.Exec("INSERT INTO orders (customer_id, order_date, status_id) VALUES (?, ?, 1)",
		customerID, orderDate)
	if err != nil {
		t.Fatalf("Failed to insert order: %v", err)
	}
	id, _ := res.LastInsertId()
	return int(id)
}

// InsertOrderDetail inserts an order line.
func InsertOrderDetail(t *testing.T, db *sql.DB, orderID, productID, qty int, unitPrice, discount float64) {
	t.Helper()
	_, err := db.Exec("INSERT INTO order_details (order_id, product_id, quantity, unit_price, discount) VALUES (?, ?, ?, ?, ?)",
		orderID, productID, qty, unitPrice, discount)
	if err != nil {
		t.Fatalf("Failed to insert order detail: %v", err)
	}
}

// JSONRequest creates an HTTP request with a JSON-encoded body.
func JSONRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertStatus checks that the HTTP status code matches expected.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// DecodeEnvelope decodes an API response envelope and extracts the data.
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var resp models.APIResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode API envelope: %v", err)
	}
	dataBytes, _ := json.Marshal(resp.Data)
	if err := json.Unmarshal(dataBytes, v); err != nil {
		t.Fatalf("Failed to decode data from envelope: %v", err)
	}
}

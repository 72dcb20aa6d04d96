package handlers

import (
	"database/sql"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"northwind/internal/models"
	"northwind/internal/reports"
	"northwind/internal/seed"
	"northwind/internal/store"
	"northwind/internal/testutil"
	"northwind/internal/websocket"
)

func setup(t *testing.T) (*sql.DB, *Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := New(store.New(db), reports.New(db), seed.New(db, 42), websocket.NewHub())
	return db, h
}

func TestListCustomersSeedsOnFirstRead(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.ListCustomers(w, httptest.NewRequest("GET", "/api/customers", nil))
	testutil.AssertStatus(t, w, 200)

	var customers []models.Customer
	testutil.DecodeEnvelope(t, w, &customers)
	if len(customers) != 10 {
		t.Errorf("Expected 10 seeded customers, got %d", len(customers))
	}
}

func TestListCustomersSearch(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.ListCustomers(w, httptest.NewRequest("GET", "/api/customers?search=Northwind", nil))
	testutil.AssertStatus(t, w, 200)

	var customers []models.Customer
	testutil.DecodeEnvelope(t, w, &customers)
	if len(customers) != 1 || customers[0].Company != "Northwind Traders" {
		t.Errorf("Expected single Northwind Traders match, got %+v", customers)
	}
}

func TestListOrdersRejectsInvertedRange(t *testing.T) {
	db, h := setup(t)

	w := httptest.NewRecorder()
	h.ListOrders(w, httptest.NewRequest("GET", "/api/orders?start=2026-03-01&end=2026-01-01", nil))
	testutil.AssertStatus(t, w, 400)

	// The rejection must happen before any storage access: no seeding
	// may have run on the fresh database.
	for _, table := range []string{"orders", "order_details", "customers", "products"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("Rejected request still wrote %d rows to %s", n, table)
		}
	}
}

func TestListOrdersRejectsMalformedDates(t *testing.T) {
	db, h := setup(t)

	w := httptest.NewRecorder()
	h.ListOrders(w, httptest.NewRequest("GET", "/api/orders?start=3/1/2026&end=2026-03-02", nil))
	testutil.AssertStatus(t, w, 400)

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&n); err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if n != 0 {
		t.Errorf("Rejected request still seeded %d orders", n)
	}
}

func TestListOrdersSeedsReferentially(t *testing.T) {
	db, h := setup(t)

	w := httptest.NewRecorder()
	h.ListOrders(w, httptest.NewRequest("GET", "/api/orders", nil))
	testutil.AssertStatus(t, w, 200)

	var orders []models.Order
	testutil.DecodeEnvelope(t, w, &orders)
	if len(orders) != 15 {
		t.Fatalf("Expected 15 seeded orders, got %d", len(orders))
	}

	var orphans int
	if err := db.QueryRow(`SELECT COUNT(*) FROM orders o
		LEFT JOIN customers c ON o.customer_id = c.id WHERE c.id IS NULL`).Scan(&orphans); err != nil {
		t.Fatalf("orphan check: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Seeded orders reference %d missing customers", orphans)
	}

	// Details endpoint serves the generated lines.
	w = httptest.NewRecorder()
	h.OrderDetails(w, httptest.NewRequest("GET", "/api/orders/1/details", nil), strconv.Itoa(orders[0].ID))
	testutil.AssertStatus(t, w, 200)
	var details []models.OrderDetail
	testutil.DecodeEnvelope(t, w, &details)
	if len(details) == 0 {
		t.Error("Expected line items for a seeded order")
	}
}

func TestCreateProductValidation(t *testing.T) {
	_, h := setup(t)

	// Seed suppliers so a valid request can resolve one.
	w := httptest.NewRecorder()
	h.ListSuppliers(w, httptest.NewRequest("GET", "/api/suppliers", nil))
	testutil.AssertStatus(t, w, 200)

	cases := []struct {
		name string
		body map[string]interface{}
		want int
	}{
		{"missing name", map[string]interface{}{"list_price": 5.0, "supplier": "Exotic Liquids"}, 400},
		{"zero price", map[string]interface{}{"product_name": "Test", "list_price": 0.0, "supplier": "Exotic Liquids"}, 400},
		{"unknown supplier", map[string]interface{}{"product_name": "Test", "list_price": 5.0, "supplier": "Nope"}, 400},
		{"valid", map[string]interface{}{"product_name": "Test", "category": "Beverages", "list_price": 5.0, "quantity_per_unit": 2, "supplier": "Exotic Liquids"}, 200},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		h.CreateProduct(w, testutil.JSONRequest("POST", "/api/products", tc.body))
		if w.Code != tc.want {
			t.Errorf("%s: expected status %d, got %d (%s)", tc.name, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestClientLifecycle(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.CreateClient(w, testutil.JSONRequest("POST", "/api/clients", map[string]interface{}{
		"name": "Test Person", "email": "test@example.com", "company": "Test Co", "active": true,
	}))
	testutil.AssertStatus(t, w, 200)
	var created models.Client
	testutil.DecodeEnvelope(t, w, &created)
	if created.ID == 0 {
		t.Fatal("Expected created client to carry an id")
	}

	w = httptest.NewRecorder()
	h.UpdateClient(w, testutil.JSONRequest("PUT", "/api/clients/x", map[string]interface{}{
		"name": "Renamed", "email": "test@example.com",
	}), strconv.Itoa(created.ID))
	testutil.AssertStatus(t, w, 200)

	w = httptest.NewRecorder()
	h.UpdateClient(w, testutil.JSONRequest("PUT", "/api/clients/99999", map[string]interface{}{
		"name": "Ghost", "email": "ghost@example.com",
	}), "99999")
	testutil.AssertStatus(t, w, 404)

	w = httptest.NewRecorder()
	h.DeleteClient(w, httptest.NewRequest("DELETE", "/api/clients/x", nil), strconv.Itoa(created.ID))
	testutil.AssertStatus(t, w, 200)

	w = httptest.NewRecorder()
	h.DeleteClient(w, httptest.NewRequest("DELETE", "/api/clients/x", nil), strconv.Itoa(created.ID))
	testutil.AssertStatus(t, w, 404)
}

func TestClientValidation(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.CreateClient(w, testutil.JSONRequest("POST", "/api/clients", map[string]interface{}{"name": "No Email"}))
	testutil.AssertStatus(t, w, 400)

	w = httptest.NewRecorder()
	h.UpdateClient(w, httptest.NewRequest("PUT", "/api/clients/abc", nil), "abc")
	testutil.AssertStatus(t, w, 400)
}

func TestReportJSON(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.Report(w, httptest.NewRequest("GET", "/api/reports/sales-by-category", nil), "sales-by-category")
	testutil.AssertStatus(t, w, 200)

	var items []models.CategorySales
	testutil.DecodeEnvelope(t, w, &items)
	if len(items) == 0 {
		t.Error("Expected seeded sales data in report")
	}
	for i := 1; i < len(items); i++ {
		if items[i].Total > items[i-1].Total {
			t.Errorf("Report totals not descending at position %d", i)
		}
	}
}

func TestReportCSVExport(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.Report(w, httptest.NewRequest("GET", "/api/reports/monthly-sales?format=csv", nil), "monthly-sales")
	testutil.AssertStatus(t, w, 200)

	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv content type, got %q", ct)
	}
	firstLine := strings.SplitN(w.Body.String(), "\n", 2)[0]
	if strings.TrimSpace(firstLine) != "Month,Total Sales" {
		t.Errorf("Unexpected CSV header line %q", firstLine)
	}
}

func TestReportXLSXExport(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.Report(w, httptest.NewRequest("GET", "/api/reports/warehouse-inventory?format=xlsx", nil), "warehouse-inventory")
	testutil.AssertStatus(t, w, 200)

	want := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if ct := w.Header().Get("Content-Type"); ct != want {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected non-empty workbook body")
	}
}

func TestUnknownReport(t *testing.T) {
	_, h := setup(t)

	w := httptest.NewRecorder()
	h.Report(w, httptest.NewRequest("GET", "/api/reports/nope", nil), "nope")
	testutil.AssertStatus(t, w, 404)
}

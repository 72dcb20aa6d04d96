package reports

import (
	"database/sql"
	"testing"

	"northwind/internal/testutil"
)

func seedSales(t *testing.T, db *sql.DB) {
	t.Helper()
	c1 := testutil.InsertCustomer(t, db, "Company A", "Cencini", "Andrew")
	c2 := testutil.InsertCustomer(t, db, "Company B", "Kotas", "Jan")
	chai := testutil.InsertProduct(t, db, "Chai", "Beverages", 18.00, 10)
	konbu := testutil.InsertProduct(t, db, "Konbu", "Seafood", 6.00, 24)

	o1 := testutil.InsertOrder(t, db, c1, "2026-01-10")
	testutil.InsertOrderDetail(t, db, o1, chai, 2, 10.00, 0.10) // 18.00
	testutil.InsertOrderDetail(t, db, o1, konbu, 1, 6.00, 0)    // 6.00

	o2 := testutil.InsertOrder(t, db, c2, "2026-02-05")
	testutil.InsertOrderDetail(t, db, o2, chai, 1, 18.00, 0) // 18.00
}

func TestSalesByCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedSales(t, db)

	eng := New(db)
	items, err := eng.SalesByCategory()
	if err != nil {
		t.Fatalf("SalesByCategory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(items))
	}
	// Beverages 36.00 outsells Seafood 6.00, so it comes first.
	if items[0].Key != "Beverages" || items[0].Total != 36.00 {
		t.Errorf("Expected Beverages 36.00 first, got %s %.2f", items[0].Key, items[0].Total)
	}
	if items[1].Key != "Seafood" || items[1].Total != 6.00 {
		t.Errorf("Expected Seafood 6.00 second, got %s %.2f", items[1].Key, items[1].Total)
	}
}

func TestSalesByCategorySkipsUncategorized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	c := testutil.InsertCustomer(t, db, "Company A", "Cencini", "Andrew")
	p := testutil.InsertProduct(t, db, "Mystery", "", 5.00, 1)
	o := testutil.InsertOrder(t, db, c, "2026-01-10")
	testutil.InsertOrderDetail(t, db, o, p, 1, 5.00, 0)

	items, err := New(db).SalesByCategory()
	if err != nil {
		t.Fatalf("SalesByCategory: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected uncategorized sales to be dropped, got %+v", items)
	}
}

func TestSalesByCustomerTopTen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	p := testutil.InsertProduct(t, db, "Chai", "Beverages", 18.00, 10)
	for i := 0; i < 12; i++ {
		c := testutil.InsertCustomer(t, db, string(rune('A'+i))+" Co", "Last", "First")
		o := testutil.InsertOrder(t, db, c, "2026-01-10")
		testutil.InsertOrderDetail(t, db, o, p, i+1, 10.00, 0)
	}

	items, err := New(db).SalesByCustomer()
	if err != nil {
		t.Fatalf("SalesByCustomer: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("Expected top 10 customers, got %d", len(items))
	}
	// Highest spender bought 12 units at 10.00.
	if items[0].Total != 120.00 {
		t.Errorf("Expected top customer total 120.00, got %.2f", items[0].Total)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Total > items[i-1].Total {
			t.Errorf("Totals not descending at position %d", i)
		}
	}
}

func TestMonthlySalesChronology(t *testing.T) {
	db := testutil.SetupTestDB(t)
	c := testutil.InsertCustomer(t, db, "Company A", "Cencini", "Andrew")
	p := testutil.InsertProduct(t, db, "Chai", "Beverages", 18.00, 10)

	for _, date := range []string{"2025-12-20", "2026-01-05", "2026-01-25", "2026-02-14"} {
		o := testutil.InsertOrder(t, db, c, date)
		testutil.InsertOrderDetail(t, db, o, p, 1, 10.00, 0)
	}
	// Dateless orders are excluded from the report.
	if _, err := db.Exec("INSERT INTO orders (customer_id, order_date, status_id) VALUES (?, NULL, 1)", c); err != nil {
		t.Fatalf("insert dateless order: %v", err)
	}

	items, err := New(db).MonthlySales()
	if err != nil {
		t.Fatalf("MonthlySales: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 month buckets, got %d", len(items))
	}

	wantLabels := []string{"Dec 2025", "Jan 2026", "Feb 2026"}
	wantTotals := []float64{10.00, 20.00, 10.00}
	for i, item := range items {
		if item.Label != wantLabels[i] {
			t.Errorf("Bucket %d: expected label %q, got %q", i, wantLabels[i], item.Label)
		}
		if item.Total != wantTotals[i] {
			t.Errorf("Bucket %d: expected total %.2f, got %.2f", i, wantTotals[i], item.Total)
		}
	}
}

func TestProductInventory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.InsertProduct(t, db, "Chai", "Beverages", 18.00, 10)
	testutil.InsertProduct(t, db, "Chang", "Beverages", 19.00, 24)
	testutil.InsertProduct(t, db, "Konbu", "Seafood", 6.00, 12)

	items, err := New(db).ProductInventory()
	if err != nil {
		t.Fatalf("ProductInventory: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(items))
	}
	if items[0].Category != "Beverages" || items[0].Quantity != 34 {
		t.Errorf("Expected Beverages 34 first, got %s %d", items[0].Category, items[0].Quantity)
	}
}

func TestWarehouseInventoryMaterializesDimension(t *testing.T) {
	db := testutil.SetupTestDB(t)
	for i := 0; i < 8; i++ {
		testutil.InsertProduct(t, db, "Product", "Beverages", 10.00, 1)
	}

	eng := New(db)
	items, err := eng.WarehouseInventory()
	if err != nil {
		t.Fatalf("WarehouseInventory: %v", err)
	}

	var warehouses int
	if err := db.QueryRow("SELECT COUNT(*) FROM warehouses").Scan(&warehouses); err != nil {
		t.Fatalf("count warehouses: %v", err)
	}
	if warehouses != 4 {
		t.Errorf("Expected exactly 4 warehouses, got %d", warehouses)
	}

	var unassigned int
	if err := db.QueryRow("SELECT COUNT(*) FROM products WHERE warehouse_id IS NULL").Scan(&unassigned); err != nil {
		t.Fatalf("count unassigned: %v", err)
	}
	if unassigned != 0 {
		t.Errorf("Expected every product placed, %d still unassigned", unassigned)
	}

	total := 0
	for _, item := range items {
		total += item.ProductCount
	}
	if total != 8 {
		t.Errorf("Expected counts to cover all 8 products, got %d", total)
	}

	// Second run must not duplicate the fixed warehouses.
	if _, err := eng.WarehouseInventory(); err != nil {
		t.Fatalf("Second WarehouseInventory: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM warehouses").Scan(&warehouses); err != nil || warehouses != 4 {
		t.Errorf("Expected 4 warehouses after rerun, got %d (err %v)", warehouses, err)
	}
}

// Package seed populates empty tables with internally-consistent sample
// data. Fixture tables (customers, employees, suppliers, products,
// clients) load fixed literal rows; orders are generated pseudo-randomly
// but referentially valid. Seeding is advisory: a failure leaves reads
// working against whatever rows made it in.
package seed

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"northwind/internal/schema"
)

// Seeder writes sample rows through an explicit DB handle. The random
// source is injected so seeded order data is reproducible under test.
type Seeder struct {
	DB  *sql.DB
	rng *rand.Rand
}

// New returns a Seeder drawing randomness from the given seed.
func New(db *sql.DB, rngSeed int64) *Seeder {
	return &Seeder{DB: db, rng: rand.New(rand.NewSource(rngSeed))}
}

func (s *Seeder) count(table string) (int, error) {
	var n int
	if err := s.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// CustomersIfEmpty loads the fixed customer catalog when the table holds
// no rows.
func (s *Seeder) CustomersIfEmpty() error {
	n, err := s.count("customers")
	if err != nil || n > 0 {
		return err
	}
	customers := [][4]string{
		{"Northwind Traders", "Freehafer", "Nancy", "Sales Representative"},
		{"Company A", "Cencini", "Andrew", "Vice President, Sales"},
		{"Company B", "Kotas", "Jan", "Sales Representative"},
		{"Company C", "Sergienko", "Mariya", "Sales Representative"},
		{"Company D", "Thorpe", "Steven", "Sales Manager"},
		{"Company E", "Neipper", "Michael", "Sales Representative"},
		{"Company F", "Zare", "Robert", "Sales Representative"},
		{"Company G", "Giussani", "Laura", "Sales Coordinator"},
		{"Company H", "Hellung-Larsen", "Anne", "Sales Representative"},
		{"Company I", "Litton", "Tim", "Sales Representative"},
	}
	for _, c := range customers {
		_, err := s.DB.Exec(`INSERT INTO customers (company, last_name, first_name, job_title, business_phone)
			VALUES (?, ?, ?, ?, ?)`, c[0], c[1], c[2], c[3], "(123)555-0100")
		if err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
	}
	log.Printf("seeded %d customers", len(customers))
	return nil
}

// EmployeesIfEmpty loads the fixed employee roster when the table holds
// no rows.
func (s *Seeder) EmployeesIfEmpty() error {
	n, err := s.count("employees")
	if err != nil || n > 0 {
		return err
	}
	employees := [][9]string{
		{"Nancy", "Davolio", "507 - 20th Ave. E. Apt. 2A", "Seattle", "WA", "98122", "(206) 555-9857", "Sales Representative", "Education includes a BA in psychology from Colorado State University."},
		{"Andrew", "Fuller", "908 W. Capital Way", "Tacoma", "WA", "98401", "(206) 555-9482", "Vice President, Sales", "Andrew received his BTS commercial and a Ph.D. in international marketing from the University of Dallas."},
		{"Janet", "Leverling", "722 Moss Bay Blvd.", "Kirkland", "WA", "98033", "(206) 555-3412", "Sales Representative", "Janet has a BS degree in chemistry from Boston College."},
		{"Margaret", "Peacock", "4110 Old Redmond Rd.", "Redmond", "WA", "98052", "(206) 555-8122", "Sales Representative", "Margaret holds a BA in English literature from Concordia College."},
		{"Steven", "Buchanan", "14 Garrett Hill", "London", "UK", "SW1 8JR", "(71) 555-4848", "Sales Manager", "Steven Buchanan graduated from St. Andrews University, Scotland, with a BSC degree."},
		{"Michael", "Suyama", "Coventry House Miner Rd.", "London", "UK", "EC2 7JR", "(71) 555-7773", "Sales Representative", "Michael is a graduate of Sussex University (MA, economics)."},
		{"Robert", "King", "Edgeham Hollow Winchester Way", "London", "UK", "RG1 9SP", "(71) 555-5598", "Sales Representative", "Robert King completed his degree in English at the University of Michigan."},
		{"Laura", "Callahan", "4726 - 11th Ave. N.E.", "Seattle", "WA", "98105", "(206) 555-1189", "Inside Sales Coordinator", "Laura received a BA in psychology from the University of Washington."},
		{"Anne", "Dodsworth", "7 Houndstooth Rd.", "London", "UK", "WG2 7LT", "(71) 555-4444", "Sales Representative", "Anne has a BA degree in English from St. Lawrence College."},
	}
	for _, e := range employees {
		_, err := s.DB.Exec(`INSERT INTO employees (first_name, last_name, address, city, state_province,
			zip_postal_code, home_phone, job_title, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e[0], e[1], e[2], e[3], e[4], e[5], e[6], e[7], e[8])
		if err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
	}
	log.Printf("seeded %d employees", len(employees))
	return nil
}

// SuppliersIfEmpty loads the fixed supplier catalog when the table holds
// no rows.
func (s *Seeder) SuppliersIfEmpty() error {
	n, err := s.count("suppliers")
	if err != nil || n > 0 {
		return err
	}
	suppliers := [][4]string{
		{"Exotic Liquids", "Schmitt", "Elizabeth", "Purchasing Representative"},
		{"New Orleans Cajun Delights", "Lebihan", "Laurence", "Owner"},
		{"Grandma Kelly's Homestead", "Roel", "Patricia", "Sales Agent"},
		{"Tokyo Traders", "Hashimoto", "Yoshi", "Marketing Manager"},
		{"Cooperativa de Quesos 'Las Cabras'", "Saavedra", "Antonio", "Marketing Representative"},
		{"Mayumi's", "Ohno", "Mayumi", "Sales Representative"},
		{"Pavlova, Ltd.", "Pavlova", "Ian", "Marketing Assistant"},
		{"Specialty Biscuits, Ltd.", "Brown", "Wendy", "Order Administrator"},
		{"PB Knäckebröd AB", "Jansson", "Lars", "Owner"},
		{"Refrescos Americanas LTDA", "Fernandez", "Carlos", "Sales Agent"},
	}
	for _, sp := range suppliers {
		_, err := s.DB.Exec(`INSERT INTO suppliers (company, last_name, first_name, job_title)
			VALUES (?, ?, ?, ?)`, sp[0], sp[1], sp[2], sp[3])
		if err != nil {
			return fmt.Errorf("seed suppliers: %w", err)
		}
	}
	log.Printf("seeded %d suppliers", len(suppliers))
	return nil
}

type productFixture struct {
	name     string
	category string
	price    float64
	qty      int
}

var productCatalog = []productFixture{
	{"Chai", "Beverages", 18.00, 10},
	{"Chang", "Beverages", 19.00, 24},
	{"Aniseed Syrup", "Condiments", 10.00, 12},
	{"Chef Anton's Cajun Seasoning", "Condiments", 22.00, 48},
	{"Grandma's Boysenberry Spread", "Condiments", 25.00, 12},
	{"Uncle Bob's Organic Dried Pears", "Produce", 30.00, 12},
	{"Northwoods Cranberry Sauce", "Condiments", 40.00, 12},
	{"Mishi Kobe Niku", "Meat/Poultry", 97.00, 18},
	{"Ikura", "Seafood", 31.00, 12},
	{"Queso Cabrales", "Dairy Products", 21.00, 12},
	{"Queso Manchego La Pastora", "Dairy Products", 38.00, 12},
	{"Konbu", "Seafood", 6.00, 24},
	{"Tofu", "Produce", 23.25, 20},
	{"Genen Shouyu", "Condiments", 15.50, 24},
	{"Pavlova", "Confections", 17.45, 32},
	{"Alice Mutton", "Meat/Poultry", 39.00, 20},
	{"Carnarvon Tigers", "Seafood", 62.50, 16},
	{"Teatime Chocolate Biscuits", "Confections", 9.20, 10},
	{"Sir Rodney's Marmalade", "Confections", 81.00, 30},
	{"Sir Rodney's Scones", "Confections", 10.00, 24},
}

// ProductsIfEmpty loads the fixed product catalog when the table holds no
// rows, seeding suppliers first so the supplier reference resolves.
func (s *Seeder) ProductsIfEmpty() error {
	n, err := s.count("products")
	if err != nil || n > 0 {
		return err
	}
	if err := s.SuppliersIfEmpty(); err != nil {
		return err
	}
	var supplierID int
	if err := s.DB.QueryRow("SELECT id FROM suppliers LIMIT 1").Scan(&supplierID); err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("seed products: %w", err)
	}
	for _, p := range productCatalog {
		_, err := s.DB.Exec(`INSERT INTO products (product_name, category, list_price, quantity_per_unit, supplier_id)
			VALUES (?, ?, ?, ?, ?)`, p.name, p.category, p.price, p.qty, supplierID)
		if err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}
	log.Printf("seeded %d products", len(productCatalog))
	return nil
}

// clientsDDL matches the lazily-created clients table.
const clientsDDL = `CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	company TEXT,
	active INTEGER DEFAULT 1,
	last_order_date DATE
)`

// ClientsIfEmpty guarantees the clients table exists and carries its
// sample rows.
func (s *Seeder) ClientsIfEmpty() error {
	if _, err := schema.EnsureTable(s.DB, "clients", clientsDDL); err != nil {
		return err
	}
	n, err := s.count("clients")
	if err != nil || n > 0 {
		return err
	}
	clients := []struct {
		name, email, phone, company string
		active                      bool
	}{
		{"John Doe", "john.doe@example.com", "555-1234", "ABC Company", true},
		{"Jane Smith", "jane.smith@example.com", "555-5678", "XYZ Corporation", true},
		{"Bob Johnson", "bob.johnson@example.com", "555-9012", "Acme Inc.", false},
	}
	for _, c := range clients {
		_, err := s.DB.Exec(`INSERT INTO clients (name, email, phone, company, active)
			VALUES (?, ?, ?, ?, ?)`, c.name, c.email, c.phone, c.company, c.active)
		if err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
	}
	log.Printf("seeded %d clients", len(clients))
	return nil
}

// EnsureOrderStatuses populates the fixed status lookup rows.
func (s *Seeder) EnsureOrderStatuses() error {
	n, err := s.count("orders_status")
	if err != nil || n > 0 {
		return err
	}
	for i, name := range []string{"New", "Approved", "Shipped", "Closed"} {
		if _, err := s.DB.Exec("INSERT INTO orders_status (id, status_name) VALUES (?, ?)", i+1, name); err != nil {
			return fmt.Errorf("seed order statuses: %w", err)
		}
	}
	return nil
}

// OrdersIfEmpty generates 15 sample orders with 1-5 line items each when
// the orders table is empty. Customer and product references are drawn
// from existing rows; if either table is empty the call logs and returns
// without writing. A failed insert aborts the remaining generation,
// keeping whatever was already written.
func (s *Seeder) OrdersIfEmpty() error {
	n, err := s.count("orders")
	if err != nil || n > 0 {
		return err
	}

	customerIDs, err := s.loadCustomerIDs()
	if err != nil {
		return err
	}
	if len(customerIDs) == 0 {
		log.Printf("no customers found, skipping order seeding")
		return nil
	}
	productIDs, prices, err := s.loadProductPrices()
	if err != nil {
		return err
	}
	if len(productIDs) == 0 {
		log.Printf("no products found, skipping order seeding")
		return nil
	}
	if err := s.EnsureOrderStatuses(); err != nil {
		return err
	}

	today := time.Now()
	for i := 0; i < 15; i++ {
		customerID := customerIDs[s.rng.Intn(len(customerIDs))]
		orderDate := today.AddDate(0, 0, -s.rng.Intn(60))
		var shippedDate any
		if s.rng.Intn(2) == 0 {
			shippedDate = orderDate.AddDate(0, 0, s.rng.Intn(5)+1).Format("2006-01-02")
		}
		statusID := s.rng.Intn(4) + 1

		res, err := s.DB.Exec(`INSERT INTO orders (customer_id, order_date, shipped_date, status_id)
			VALUES (?, ?, ?, ?)`, customerID, orderDate.Format("2006-01-02"), shippedDate, statusID)
		if err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
		orderID, err := res.LastInsertId()
		if err != nil || orderID == 0 {
			log.Printf("no generated id for seeded order, skipping line items")
			continue
		}

		numLines := s.rng.Intn(5) + 1
		used := map[int]bool{}
		for j := 0; j < numLines; j++ {
			if len(used) == len(productIDs) {
				break
			}
			var productID int
			for {
				productID = productIDs[s.rng.Intn(len(productIDs))]
				if !used[productID] {
					break
				}
			}
			used[productID] = true

			quantity := s.rng.Intn(10) + 1
			discount := math.Round(s.rng.Float64()*0.2*100) / 100

			_, err := s.DB.Exec(`INSERT INTO order_details (order_id, product_id, quantity, unit_price, discount)
				VALUES (?, ?, ?, ?, ?)`, orderID, productID, quantity, prices[productID], discount)
			if err != nil {
				return fmt.Errorf("seed order %d line %d: %w", orderID, j+1, err)
			}
		}
	}
	log.Printf("seeded 15 orders with line items")
	return nil
}

func (s *Seeder) loadCustomerIDs() ([]int, error) {
	rows, err := s.DB.Query("SELECT id FROM customers LIMIT 10")
	if err != nil {
		return nil, fmt.Errorf("load customer ids: %w", err)
	}
	defer rows.Close()
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Seeder) loadProductPrices() ([]int, map[int]float64, error) {
	rows, err := s.DB.Query("SELECT id, list_price FROM products LIMIT 20")
	if err != nil {
		return nil, nil, fmt.Errorf("load product prices: %w", err)
	}
	defer rows.Close()
	var ids []int
	prices := map[int]float64{}
	for rows.Next() {
		var id int
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		prices[id] = price
	}
	return ids, prices, rows.Err()
}

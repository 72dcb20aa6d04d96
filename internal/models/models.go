package models

// APIResponse is the standard JSON envelope for all API responses.
type APIResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
}

type Customer struct {
	ID           int    `json:"id"`
	Company      string `json:"company"`
	ContactName  string `json:"contact_name"`
	ContactTitle string `json:"contact_title"`
	Phone        string `json:"phone"`
}

type Employee struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	JobTitle   string `json:"job_title"`
	Notes      string `json:"notes,omitempty"`
}

type Supplier struct {
	ID        int    `json:"id"`
	Company   string `json:"company"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	JobTitle  string `json:"job_title"`
}

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"product_name"`
	Category    string  `json:"category"`
	ListPrice   float64 `json:"list_price"`
	QtyPerUnit  int     `json:"quantity_per_unit"`
	WarehouseID *int    `json:"warehouse_id,omitempty"`
}

// Order is one row of the order search result, annotated with the
// discounted total over its line items.
type Order struct {
	ID          int     `json:"id"`
	Company     string  `json:"company"`
	OrderDate   string  `json:"order_date"`
	ShippedDate *string `json:"shipped_date"`
	StatusID    int     `json:"status_id"`
	Total       float64 `json:"total"`
}

// OrderDetail is one line item joined to its product, with the
// discounted subtotal quantity*unit_price*(1-discount).
type OrderDetail struct {
	OrderID     int     `json:"order_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Discount    float64 `json:"discount"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderStatus struct {
	ID   int    `json:"id"`
	Name string `json:"status_name"`
}

type Warehouse struct {
	ID   int    `json:"id"`
	Name string `json:"warehouse_name"`
}

type Client struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Company       string  `json:"company"`
	Active        bool    `json:"active"`
	LastOrderDate *string `json:"last_order_date"`
}

// CategorySales is a sales-by-category or sales-by-customer report row.
type CategorySales struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// MonthlySales is one month of the monthly sales report, keyed "Jan 2026".
type MonthlySales struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// CategoryInventory is a product-inventory report row.
type CategoryInventory struct {
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

// WarehouseInventory is a (warehouse, category) product count.
type WarehouseInventory struct {
	Warehouse    string `json:"warehouse"`
	Category     string `json:"category"`
	ProductCount int    `json:"product_count"`
}

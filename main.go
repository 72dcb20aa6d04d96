package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"northwind/internal/handlers"
	"northwind/internal/reports"
	"northwind/internal/seed"
	"northwind/internal/store"
	"northwind/internal/websocket"
)

func main() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg := loadConfig("northwind.yml")

	port := flag.Int("port", cfg.Port, "HTTP port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	rngSeed := flag.Int64("seed", cfg.Seed, "Seed for generated order fixtures (0 = current time)")
	flag.Parse()

	db, err := initDB(*dbPath)
	if err != nil {
		log.Fatal("DB init failed:", err)
	}

	seedVal := *rngSeed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
	}

	st := store.New(db)
	eng := reports.New(db)
	seeder := seed.New(db, seedVal)
	hub := websocket.NewHub()
	h := handlers.New(st, eng, seeder, hub)

	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		websocket.HandleWebSocket(hub, w, r)
	})

	// API routes - using a simple router
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		path := strings.TrimPrefix(r.URL.Path, "/api/")
		path = strings.TrimSuffix(path, "/")
		parts := strings.Split(path, "/")

		switch {
		// Customers
		case parts[0] == "customers" && len(parts) == 1 && r.Method == "GET":
			h.ListCustomers(w, r)

		// Employees
		case parts[0] == "employees" && len(parts) == 1 && r.Method == "GET":
			h.ListEmployees(w, r)
		case parts[0] == "employees" && len(parts) == 1 && r.Method == "POST":
			h.CreateEmployee(w, r)

		// Suppliers
		case parts[0] == "suppliers" && len(parts) == 1 && r.Method == "GET":
			h.ListSuppliers(w, r)

		// Products
		case parts[0] == "products" && len(parts) == 1 && r.Method == "GET":
			h.ListProducts(w, r)
		case parts[0] == "products" && len(parts) == 1 && r.Method == "POST":
			h.CreateProduct(w, r)
		case parts[0] == "categories" && len(parts) == 1 && r.Method == "GET":
			h.ListCategories(w, r)

		// Orders
		case parts[0] == "orders" && len(parts) == 1 && r.Method == "GET":
			h.ListOrders(w, r)
		case parts[0] == "orders" && len(parts) == 3 && parts[2] == "details" && r.Method == "GET":
			h.OrderDetails(w, r, parts[1])

		// Clients
		case parts[0] == "clients" && len(parts) == 1 && r.Method == "GET":
			h.ListClients(w, r)
		case parts[0] == "clients" && len(parts) == 1 && r.Method == "POST":
			h.CreateClient(w, r)
		case parts[0] == "clients" && len(parts) == 2 && r.Method == "PUT":
			h.UpdateClient(w, r, parts[1])
		case parts[0] == "clients" && len(parts) == 2 && r.Method == "DELETE":
			h.DeleteClient(w, r, parts[1])

		// Reports
		case parts[0] == "reports" && len(parts) == 2 && r.Method == "GET":
			h.Report(w, r, parts[1])

		default:
			w.WriteHeader(404)
			json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
		}
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Northwind server starting on http://localhost%s", addr)
	log.Fatal(http.ListenAndServe(addr, logging(mux)))
}

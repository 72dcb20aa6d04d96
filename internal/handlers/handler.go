// Package handlers implements the HTTP API. Read endpoints seed their
// backing tables on first use so a fresh database serves data
// immediately.
package handlers

import (
	"northwind/internal/reports"
	"northwind/internal/seed"
	"northwind/internal/store"
	"northwind/internal/websocket"
)

// Handler holds dependencies for the API handlers.
type Handler struct {
	Store   *store.Store
	Reports *reports.Engine
	Seeder  *seed.Seeder
	Hub     *websocket.Hub
}

func New(st *store.Store, eng *reports.Engine, sd *seed.Seeder, hub *websocket.Hub) *Handler {
	return &Handler{Store: st, Reports: eng, Seeder: sd, Hub: hub}
}

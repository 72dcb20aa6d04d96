package handlers

import (
	"net/http"
	"strconv"

	"northwind/internal/models"
	"northwind/internal/response"
)

// ListClients returns clients, optionally restricted to inactive ones
// or matched against a search term.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.ClientsIfEmpty(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	q := r.URL.Query()
	var (
		items []models.Client
		err   error
	)
	if search := q.Get("search"); search != "" {
		items, err = h.Store.SearchClients(search)
	} else {
		items, err = h.Store.ListClients(q.Get("inactive") == "true")
	}
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if items == nil {
		items = []models.Client{}
	}
	response.JSON(w, items)
}

// CreateClient adds a client and broadcasts the change.
func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	if err := h.Seeder.ClientsIfEmpty(); err != nil {
		response.Err(w, err.Error(), 500)
		return
	}

	var c models.Client
	if err := response.DecodeBody(r, &c); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if c.Name == "" || c.Email == "" {
		response.Err(w, "name and email are required", 400)
		return
	}

	id, err := h.Store.CreateClient(c)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	c.ID = id
	h.Hub.BroadcastChange("client", "create", id)
	response.JSON(w, c)
}

// UpdateClient rewrites a client and broadcasts the change.
func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request, id string) {
	clientID, err := strconv.Atoi(id)
	if err != nil {
		response.Err(w, "invalid client id", 400)
		return
	}

	var c models.Client
	if err := response.DecodeBody(r, &c); err != nil {
		response.Err(w, "invalid body", 400)
		return
	}
	if c.Name == "" || c.Email == "" {
		response.Err(w, "name and email are required", 400)
		return
	}
	c.ID = clientID

	n, err := h.Store.UpdateClient(c)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if n == 0 {
		response.Err(w, "not found", 404)
		return
	}
	h.Hub.BroadcastChange("client", "update", clientID)
	response.JSON(w, c)
}

// DeleteClient removes a client and broadcasts the change. The delete
// does not touch any other table.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request, id string) {
	clientID, err := strconv.Atoi(id)
	if err != nil {
		response.Err(w, "invalid client id", 400)
		return
	}

	n, err := h.Store.DeleteClient(clientID)
	if err != nil {
		response.Err(w, err.Error(), 500)
		return
	}
	if n == 0 {
		response.Err(w, "not found", 404)
		return
	}
	h.Hub.BroadcastChange("client", "delete", clientID)
	response.JSON(w, map[string]string{"status": "deleted"})
}

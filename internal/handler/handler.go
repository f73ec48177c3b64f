// Package handler exposes the storefront over HTTP. It is a thin shell: it
// parses requests, delegates to the store, and renders results or mapped
// domain errors. No business rule lives here.
package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/retail-store-challenge/internal/domain/store"
)

// Handler serves the storefront API from a single store instance.
type Handler struct {
	store *store.Store
}

// New constructs a Handler around the given store.
func New(s *store.Store) *Handler {
	return &Handler{store: s}
}

// Register attaches the API routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/inventory", h.Inventory)
	mux.HandleFunc("POST /api/order", h.PlaceOrder)
}

// writeJSON writes the encoded body with the given status.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes a {code, message} error body.
func writeError(w http.ResponseWriter, status int, message string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(status)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
	writeJSON(w, status, &e)
}

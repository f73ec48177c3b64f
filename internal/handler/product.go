package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/retail-store-challenge/internal/domain/product"
)

// ListProducts renders the currently active products in catalog order.
func (h *Handler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	var e jx.Encoder
	e.ArrStart()
	for _, p := range h.store.ActiveProducts() {
		encodeProduct(&e, p)
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}

// Inventory renders the total quantity across the whole catalog, inactive
// products included.
func (h *Handler) Inventory(w http.ResponseWriter, _ *http.Request) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("total_quantity")
	e.Int(h.store.TotalQuantity())
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.ObjStart()
	e.FieldStart("name")
	e.Str(p.Name())
	e.FieldStart("price")
	e.RawStr(p.Price().String())
	e.FieldStart("quantity")
	e.Int(p.Quantity())
	e.FieldStart("active")
	e.Bool(p.IsActive())
	if promo := p.Promotion(); promo != nil {
		e.FieldStart("promotion")
		e.Str(promo.Name())
	}
	if lim, ok := p.(*product.Limited); ok {
		e.FieldStart("max_per_order")
		e.Int(lim.Max())
	}
	e.ObjEnd()
}

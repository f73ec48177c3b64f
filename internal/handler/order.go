package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/retail-store-challenge/internal/domain/product"
	"github.com/xenking/retail-store-challenge/internal/domain/store"
)

// orderItem is one line of an order request, referencing a product by name.
type orderItem struct {
	Product  string
	Quantity int
}

// PlaceOrder decodes the order request, resolves product names against the
// catalog, places the order, and renders the total or a mapped error.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body")
		return
	}

	items, err := decodeOrderRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := make([]store.Line, len(items))
	for i, item := range items {
		p, err := h.store.FindProduct(item.Product)
		if err != nil {
			h.writeOrderError(w, r, errors.Wrapf(err, "product %q", item.Product))
			return
		}
		lines[i] = store.Line{Product: p, Quantity: item.Quantity}
	}

	total, err := h.store.Order(lines)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(uuid.New().String())
	e.FieldStart("total")
	e.RawStr(total.String())
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range items {
		e.ObjStart()
		e.FieldStart("product")
		e.Str(item.Product)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
	writeJSON(w, http.StatusCreated, &e)
}

// decodeOrderRequest parses {"items": [{"product": ..., "quantity": ...}]}.
func decodeOrderRequest(body []byte) ([]orderItem, error) {
	var items []orderItem
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "items" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			var item orderItem
			if err := d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "product":
					item.Product, err = d.Str()
				case "quantity":
					item.Quantity, err = d.Int()
				default:
					err = d.Skip()
				}
				return err
			}); err != nil {
				return err
			}
			items = append(items, item)
			return nil
		})
	}); err != nil {
		return nil, errors.Wrap(err, "malformed order request")
	}
	return items, nil
}

// writeOrderError maps domain errors to HTTP responses. Validation failures
// are 400, unknown products 404, inactive products 409, and stock or
// purchase-limit shortfalls 422. Anything else is an opaque 500.
func (h *Handler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrEmptyOrder),
		errors.Is(err, store.ErrInvalidProduct),
		errors.Is(err, product.ErrNonPositiveAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.writeTypedOrderError(w, r, err)
	}
}

func (h *Handler) writeTypedOrderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		inactive *product.InactiveProductError
		stock    *product.OutOfStockError
		limit    *product.PurchaseLimitError
	)
	switch {
	case errors.As(err, &inactive):
		writeError(w, http.StatusConflict, inactive.Error())
	case errors.As(err, &stock):
		writeError(w, http.StatusUnprocessableEntity, stock.Error())
	case errors.As(err, &limit):
		writeError(w, http.StatusUnprocessableEntity, limit.Error())
	default:
		zctx.From(r.Context()).Error("place order", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/retail-store-challenge/internal/domain/product"
	"github.com/xenking/retail-store-challenge/internal/domain/promotion"
	"github.com/xenking/retail-store-challenge/internal/domain/store"
)

type productResp struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Active      bool            `json:"active"`
	Promotion   string          `json:"promotion"`
	MaxPerOrder int             `json:"max_per_order"`
}

type orderResp struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
	Items []struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

type errorResp struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newTestMux(t *testing.T) (*http.ServeMux, *store.Store) {
	t.Helper()

	widget, err := product.NewStandard("Widget", decimal.NewFromInt(10), 5)
	require.NoError(t, err)
	gadget, err := product.NewStandard("Gadget", decimal.NewFromInt(20), 10)
	require.NoError(t, err)
	gadget.SetPromotion(promotion.NewSecondHalfPrice("Second Half price!"))
	soldOut, err := product.NewStandard("Sold Out", decimal.NewFromInt(5), 0)
	require.NoError(t, err)
	shipping, err := product.NewLimited("Shipping", decimal.NewFromInt(10), 250, 1)
	require.NoError(t, err)

	st := store.New(widget, gadget, soldOut, shipping)

	mux := http.NewServeMux()
	New(st).Register(mux)
	return mux, st
}

func doRequest(mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestListProducts(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(mux, http.MethodGet, "/api/products", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var products []productResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 3, "inactive products must be excluded")

	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, 5, products[0].Quantity)
	assert.Equal(t, "Second Half price!", products[1].Promotion)
	assert.Equal(t, 1, products[2].MaxPerOrder)
}

func TestInventory(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(mux, http.MethodGet, "/api/inventory", "")

	require.Equal(t, http.StatusOK, rec.Code)
	// 5 + 10 + 0 + 250, the sold-out product still counts.
	assert.JSONEq(t, `{"total_quantity": 265}`, rec.Body.String())
}

func TestPlaceOrder(t *testing.T) {
	mux, st := newTestMux(t)

	rec := doRequest(mux, http.MethodPost, "/api/order",
		`{"items": [{"product": "Widget", "quantity": 2}, {"product": "Gadget", "quantity": 3}]}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp orderResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	// 2*10 + (2*20 + 10) = 70
	assert.True(t, decimal.NewFromInt(70).Equal(resp.Total), "got %s", resp.Total)
	require.Len(t, resp.Items, 2)

	widget, err := st.FindProduct("Widget")
	require.NoError(t, err)
	assert.Equal(t, 3, widget.Quantity())
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(mux, http.MethodPost, "/api/order",
		`{"items": [{"product": "Missing", "quantity": 1}]}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Missing")
}

func TestPlaceOrder_OutOfStock(t *testing.T) {
	mux, st := newTestMux(t)

	rec := doRequest(mux, http.MethodPost, "/api/order",
		`{"items": [{"product": "Widget", "quantity": 3}, {"product": "Widget", "quantity": 4}]}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	widget, err := st.FindProduct("Widget")
	require.NoError(t, err)
	assert.Equal(t, 5, widget.Quantity(), "rejected order must not touch stock")
}

func TestPlaceOrder_PurchaseLimit(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doRequest(mux, http.MethodPost, "/api/order",
		`{"items": [{"product": "Shipping", "quantity": 2}]}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp errorResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "limited to 1")
}

func TestPlaceOrder_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed JSON", body: `{not json`, want: http.StatusBadRequest},
		{name: "empty items", body: `{"items": []}`, want: http.StatusBadRequest},
		{name: "zero quantity", body: `{"items": [{"product": "Widget", "quantity": 0}]}`, want: http.StatusBadRequest},
	}

	mux, _ := newTestMux(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(mux, http.MethodPost, "/api/order", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/retail-store-challenge/db"
	"github.com/xenking/retail-store-challenge/internal/domain/product"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	st, err := Load(db.DefaultCatalog)
	require.NoError(t, err)

	active := st.ActiveProducts()
	require.Len(t, active, 5)

	// Catalog order is preserved.
	assert.Equal(t, "MacBook Air M2", active[0].Name())
	assert.Equal(t, "Shipping", active[4].Name())

	license, err := st.FindProduct("Windows License")
	require.NoError(t, err)
	_, ok := license.(*product.NonStocked)
	assert.True(t, ok, "license must be non-stocked")
	require.NotNil(t, license.Promotion())
	assert.Equal(t, "30% off!", license.Promotion().Name())

	shipping, err := st.FindProduct("Shipping")
	require.NoError(t, err)
	lim, ok := shipping.(*product.Limited)
	require.True(t, ok, "shipping must be limited")
	assert.Equal(t, 1, lim.Max())
}

func TestLoad_VariantsAndPromotions(t *testing.T) {
	doc := []byte(`[
		{"name": "Widget", "price": 9.99, "quantity": 3},
		{"name": "License", "kind": "non_stocked", "price": 120,
		 "promotion": {"name": "15% off", "type": "percent", "percent": 15}},
		{"name": "Delivery", "kind": "limited", "price": 5, "quantity": 10, "max_per_order": 2,
		 "promotion": {"name": "Second half", "type": "second_half_price"}}
	]`)

	st, err := Load(doc)
	require.NoError(t, err)

	widget, err := st.FindProduct("Widget")
	require.NoError(t, err)
	assert.IsType(t, &product.Standard{}, widget)
	assert.True(t, decimal.RequireFromString("9.99").Equal(widget.Price()))
	assert.Equal(t, 3, widget.Quantity())
	assert.Nil(t, widget.Promotion())

	delivery, err := st.FindProduct("Delivery")
	require.NoError(t, err)
	require.NotNil(t, delivery.Promotion())
	assert.Equal(t, "Second half", delivery.Promotion().Name())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "malformed JSON", doc: `{not json`, want: "parse catalog JSON"},
		{name: "unknown kind", doc: `[{"name": "X", "kind": "digital", "price": 1}]`, want: "unsupported product kind"},
		{name: "unknown promotion", doc: `[{"name": "X", "price": 1, "quantity": 1, "promotion": {"name": "p", "type": "bogus"}}]`, want: "unsupported promotion type"},
		{name: "invalid product", doc: `[{"name": "", "price": 1, "quantity": 1}]`, want: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/retail-store-challenge/internal/domain/promotion"
)

func newStandard(t *testing.T, name string, price string, quantity int) *Standard {
	t.Helper()
	p, err := NewStandard(name, decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	return p
}

func TestNewStandard_Validation(t *testing.T) {
	tests := []struct {
		name     string
		pname    string
		price    string
		quantity int
		wantErr  error
	}{
		{name: "empty name", pname: "", price: "10", quantity: 1, wantErr: ErrEmptyName},
		{name: "blank name", pname: "   ", price: "10", quantity: 1, wantErr: ErrEmptyName},
		{name: "negative price", pname: "Widget", price: "-10", quantity: 1, wantErr: ErrNegativePrice},
		{name: "negative quantity", pname: "Widget", price: "10", quantity: -5, wantErr: ErrNegativeQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStandard(tt.pname, decimal.RequireFromString(tt.price), tt.quantity)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewStandard_ActivationFollowsStock(t *testing.T) {
	p := newStandard(t, "MacBook Air M2", "1450", 100)
	assert.True(t, p.IsActive())

	empty := newStandard(t, "Sold Out", "10", 0)
	assert.False(t, empty.IsActive())
}

func TestStandard_BuyReducesQuantityAndPrices(t *testing.T) {
	p := newStandard(t, "Bose Earbuds", "250", 10)

	total, err := p.Buy(2)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(total), "got %s", total)
	assert.Equal(t, 8, p.Quantity())
	assert.True(t, p.IsActive())
}

func TestStandard_BuyAppliesPromotion(t *testing.T) {
	p := newStandard(t, "Pixel 7", "10", 10)
	p.SetPromotion(promotion.NewThirdOneFree("third one free"))

	total, err := p.Buy(3)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(total), "got %s", total)
	assert.Equal(t, 7, p.Quantity())
}

func TestStandard_BuyOutOfStock(t *testing.T) {
	p := newStandard(t, "Pixel 7", "500", 5)

	_, err := p.Buy(10)

	var oosErr *OutOfStockError
	require.ErrorAs(t, err, &oosErr)
	assert.Equal(t, "Pixel 7", oosErr.Name)
	assert.Equal(t, 10, oosErr.Requested)
	assert.Equal(t, 5, oosErr.Available)
	assert.Equal(t, 5, p.Quantity(), "failed buy must not mutate stock")
}

func TestStandard_BuyNonPositiveAmount(t *testing.T) {
	p := newStandard(t, "Pixel 7", "500", 5)

	for _, amount := range []int{0, -3} {
		_, err := p.Buy(amount)
		require.ErrorIs(t, err, ErrNonPositiveAmount)
	}
	assert.Equal(t, 5, p.Quantity())
}

func TestStandard_DeactivatesAtZero(t *testing.T) {
	p := newStandard(t, "Pixel 7", "500", 1)

	_, err := p.Buy(1)

	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity())
	assert.False(t, p.IsActive())

	_, err = p.Buy(1)
	var inactiveErr *InactiveProductError
	require.ErrorAs(t, err, &inactiveErr)
}

func TestStandard_SetQuantity(t *testing.T) {
	p := newStandard(t, "Pixel 7", "500", 5)

	require.ErrorIs(t, p.SetQuantity(-1), ErrNegativeQuantity)
	assert.Equal(t, 5, p.Quantity())

	require.NoError(t, p.SetQuantity(0))
	assert.False(t, p.IsActive())

	require.NoError(t, p.SetQuantity(3))
	assert.True(t, p.IsActive())
	assert.Equal(t, 3, p.Quantity())
}

func TestStandard_ActivateDeactivateIdempotent(t *testing.T) {
	p := newStandard(t, "Pixel 7", "500", 5)

	p.Deactivate()
	p.Deactivate()
	assert.False(t, p.IsActive())

	p.Activate()
	p.Activate()
	assert.True(t, p.IsActive())
}

func TestNonStocked(t *testing.T) {
	p, err := NewNonStocked("Windows License", decimal.NewFromInt(125))
	require.NoError(t, err)

	assert.True(t, p.IsActive())
	assert.Equal(t, 0, p.Quantity())

	total, err := p.Buy(4)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(total), "got %s", total)
	assert.Equal(t, 0, p.Quantity(), "quantity stays pinned to zero")
	assert.True(t, p.IsActive())

	_, err = p.Buy(0)
	require.ErrorIs(t, err, ErrNonPositiveAmount)

	require.ErrorIs(t, p.SetQuantity(10), ErrStockNotTracked)
}

func TestNonStocked_Describe(t *testing.T) {
	p, err := NewNonStocked("Windows License", decimal.NewFromInt(125))
	require.NoError(t, err)
	assert.Contains(t, p.Describe(), "Non-stocked")
}

func TestLimited_CapHonoredRegardlessOfStock(t *testing.T) {
	p, err := NewLimited("Shipping", decimal.NewFromInt(10), 250, 1)
	require.NoError(t, err)

	total, err := p.Buy(1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(total), "got %s", total)
	assert.Equal(t, 249, p.Quantity())

	_, err = p.Buy(2)
	var limitErr *PurchaseLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 2, limitErr.Requested)
	assert.Equal(t, 1, limitErr.Max)
	assert.Equal(t, 249, p.Quantity(), "failed buy must not mutate stock")
}

func TestLimited_Validation(t *testing.T) {
	_, err := NewLimited("Shipping", decimal.NewFromInt(10), 250, 0)
	require.ErrorIs(t, err, ErrNonPositiveLimit)
}

func TestLimited_Describe(t *testing.T) {
	p, err := NewLimited("Shipping", decimal.NewFromInt(10), 250, 1)
	require.NoError(t, err)
	assert.Contains(t, p.Describe(), "Max per order: 1")
}

// Package product defines the sellable catalog entries and their purchase
// rules. Three variants share the Product contract: Standard items with
// finite stock, NonStocked items with unlimited availability, and Limited
// items with a per-order purchase cap.
package product

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/retail-store-challenge/internal/domain/promotion"
)

// Product is a sellable catalog entry. CheckPurchase validates a purchase
// without side effects; Buy commits it and returns the charged total.
// Implementations are not safe for concurrent use: callers that serve
// concurrent orders must serialize access (the store does).
type Product interface {
	Name() string
	Price() decimal.Decimal
	Quantity() int
	IsActive() bool
	Activate()
	Deactivate()
	SetQuantity(quantity int) error
	Promotion() promotion.Promotion
	SetPromotion(p promotion.Promotion)
	CheckPurchase(amount int) error
	Buy(amount int) (decimal.Decimal, error)
	Describe() string
}

// totalFor prices amount units, applying promo when one is attached.
func totalFor(price decimal.Decimal, promo promotion.Promotion, amount int) decimal.Decimal {
	if promo != nil {
		return promo.Apply(price, amount)
	}
	return price.Mul(decimal.NewFromInt(int64(amount)))
}

package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/retail-store-challenge/internal/domain/promotion"
)

var _ Product = (*NonStocked)(nil)

// NonStocked represents an item with unlimited availability, such as a
// software license. Its quantity is pinned to zero and carries no stock
// meaning: purchases never decrement it and never deactivate the product.
type NonStocked struct {
	name   string
	price  decimal.Decimal
	active bool
	promo  promotion.Promotion
}

// NewNonStocked validates the inputs and returns an always-purchasable
// product with no stock tracking.
func NewNonStocked(name string, price decimal.Decimal) (*NonStocked, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &NonStocked{name: name, price: price, active: true}, nil
}

func (n *NonStocked) Name() string           { return n.name }
func (n *NonStocked) Price() decimal.Decimal { return n.price }
func (n *NonStocked) Quantity() int          { return 0 }
func (n *NonStocked) IsActive() bool         { return n.active }
func (n *NonStocked) Activate()              { n.active = true }
func (n *NonStocked) Deactivate()            { n.active = false }

func (n *NonStocked) Promotion() promotion.Promotion     { return n.promo }
func (n *NonStocked) SetPromotion(p promotion.Promotion) { n.promo = p }

// SetQuantity always fails: quantity is pinned to zero.
func (n *NonStocked) SetQuantity(int) error {
	return ErrStockNotTracked
}

func (n *NonStocked) CheckPurchase(amount int) error {
	if !n.active {
		return &InactiveProductError{Name: n.name}
	}
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// Buy prices amount units without touching stock or activation state.
func (n *NonStocked) Buy(amount int) (decimal.Decimal, error) {
	if err := n.CheckPurchase(amount); err != nil {
		return decimal.Zero, err
	}
	return totalFor(n.price, n.promo, amount), nil
}

func (n *NonStocked) Describe() string {
	return fmt.Sprintf("%s, Price: $%s, Non-stocked%s",
		n.name, n.price, promoSuffix(n.promo))
}

package product

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/retail-store-challenge/internal/domain/promotion"
)

var _ Product = (*Standard)(nil)

// Standard is a stock-tracked product. It deactivates automatically when its
// quantity reaches zero and reactivates only through Activate or SetQuantity.
type Standard struct {
	name     string
	price    decimal.Decimal
	quantity int
	active   bool
	promo    promotion.Promotion
}

// NewStandard validates the inputs and returns a stock-tracked product.
// A product created with zero quantity starts inactive.
func NewStandard(name string, price decimal.Decimal, quantity int) (*Standard, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	return &Standard{
		name:     name,
		price:    price,
		quantity: quantity,
		active:   quantity > 0,
	}, nil
}

func (s *Standard) Name() string           { return s.name }
func (s *Standard) Price() decimal.Decimal { return s.price }
func (s *Standard) Quantity() int          { return s.quantity }
func (s *Standard) IsActive() bool         { return s.active }
func (s *Standard) Activate()              { s.active = true }
func (s *Standard) Deactivate()            { s.active = false }

func (s *Standard) Promotion() promotion.Promotion     { return s.promo }
func (s *Standard) SetPromotion(p promotion.Promotion) { s.promo = p }

// SetQuantity replaces the stock level. Setting zero deactivates the
// product; setting a positive quantity reactivates it.
func (s *Standard) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	s.quantity = quantity
	s.active = quantity > 0
	return nil
}

// CheckPurchase reports whether Buy(amount) would succeed, without mutating
// the product.
func (s *Standard) CheckPurchase(amount int) error {
	if !s.active {
		return &InactiveProductError{Name: s.name}
	}
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if amount > s.quantity {
		return &OutOfStockError{Name: s.name, Requested: amount, Available: s.quantity}
	}
	return nil
}

// Buy purchases amount units: it prices them (applying any attached
// promotion), decrements the stock, and deactivates the product when the
// stock reaches zero.
func (s *Standard) Buy(amount int) (decimal.Decimal, error) {
	if err := s.CheckPurchase(amount); err != nil {
		return decimal.Zero, err
	}
	total := totalFor(s.price, s.promo, amount)
	s.quantity -= amount
	if s.quantity == 0 {
		s.active = false
	}
	return total, nil
}

func (s *Standard) Describe() string {
	return fmt.Sprintf("%s, Price: $%s, Quantity: %d%s",
		s.name, s.price, s.quantity, promoSuffix(s.promo))
}

func promoSuffix(p promotion.Promotion) string {
	if p == nil {
		return ""
	}
	return ", Promotion: " + p.Name()
}

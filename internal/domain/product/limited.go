package product

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var _ Product = (*Limited)(nil)

// Limited is a stock-tracked product with a per-order purchase cap. The cap
// is checked before the standard stock rules.
type Limited struct {
	Standard
	max int
}

// NewLimited validates the inputs and returns a capped product. The cap
// applies to the combined quantity of one order, not to total stock.
func NewLimited(name string, price decimal.Decimal, quantity, max int) (*Limited, error) {
	if max <= 0 {
		return nil, ErrNonPositiveLimit
	}
	std, err := NewStandard(name, price, quantity)
	if err != nil {
		return nil, err
	}
	return &Limited{Standard: *std, max: max}, nil
}

// Max returns the per-order purchase cap.
func (l *Limited) Max() int { return l.max }

func (l *Limited) CheckPurchase(amount int) error {
	if amount > l.max {
		return &PurchaseLimitError{Name: l.name, Requested: amount, Max: l.max}
	}
	return l.Standard.CheckPurchase(amount)
}

func (l *Limited) Buy(amount int) (decimal.Decimal, error) {
	if amount > l.max {
		return decimal.Zero, &PurchaseLimitError{Name: l.name, Requested: amount, Max: l.max}
	}
	return l.Standard.Buy(amount)
}

func (l *Limited) Describe() string {
	return fmt.Sprintf("%s, Price: $%s, Quantity: %d, Max per order: %d%s",
		l.name, l.price, l.quantity, l.max, promoSuffix(l.promo))
}

// Package promotion implements the pricing strategies that can be attached
// to catalog products. A promotion is a pure function of the unit price and
// the purchased quantity; it never mutates the product or itself.
package promotion

import (
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Promotion computes the total charged for a quantity of units at the given
// unit price. Implementations must be stateless per call: the same inputs
// always yield the same total.
type Promotion interface {
	Name() string
	Apply(price decimal.Decimal, quantity int) decimal.Decimal
}

// PercentDiscount reduces the line total by a fixed percentage.
type PercentDiscount struct {
	name    string
	percent decimal.Decimal
}

// NewPercentDiscount creates a percentage discount. Percent is expressed as
// a number between 0 and 100.
func NewPercentDiscount(name string, percent decimal.Decimal) *PercentDiscount {
	return &PercentDiscount{name: name, percent: percent}
}

func (p *PercentDiscount) Name() string { return p.name }

// Apply returns price * quantity * (1 - percent/100).
func (p *PercentDiscount) Apply(price decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	subtotal := price.Mul(decimal.NewFromInt(int64(quantity)))
	return subtotal.Mul(hundred.Sub(p.percent)).Div(hundred)
}

// SecondHalfPrice bills every second unit at half price: for quantity q,
// ceil(q/2) units are charged in full and floor(q/2) at half price.
type SecondHalfPrice struct {
	name string
}

// NewSecondHalfPrice creates a second-item-half-price promotion.
func NewSecondHalfPrice(name string) *SecondHalfPrice {
	return &SecondHalfPrice{name: name}
}

func (p *SecondHalfPrice) Name() string { return p.name }

func (p *SecondHalfPrice) Apply(price decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	full := decimal.NewFromInt(int64((quantity + 1) / 2))
	half := decimal.NewFromInt(int64(quantity / 2))
	return price.Mul(full).Add(price.Div(two).Mul(half))
}

// ThirdOneFree gives one unit free for every three purchased.
type ThirdOneFree struct {
	name string
}

// NewThirdOneFree creates a buy-two-get-one-free promotion.
func NewThirdOneFree(name string) *ThirdOneFree {
	return &ThirdOneFree{name: name}
}

func (p *ThirdOneFree) Name() string { return p.name }

func (p *ThirdOneFree) Apply(price decimal.Decimal, quantity int) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	paid := quantity - quantity/3
	return price.Mul(decimal.NewFromInt(int64(paid)))
}

package product

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for constructor and mutation validation.
var (
	ErrEmptyName         = errors.New("product name must not be empty")
	ErrNegativePrice     = errors.New("product price must not be negative")
	ErrNegativeQuantity  = errors.New("product quantity must not be negative")
	ErrNonPositiveAmount = errors.New("purchase amount must be greater than 0")
	ErrNonPositiveLimit  = errors.New("purchase limit must be greater than 0")
	ErrStockNotTracked   = errors.New("non-stocked products do not track quantity")
)

// OutOfStockError indicates a purchase request exceeding available stock.
type OutOfStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("not enough stock for %q: requested %d, available %d",
		e.Name, e.Requested, e.Available)
}

// InactiveProductError indicates a purchase attempt on a deactivated product.
type InactiveProductError struct {
	Name string
}

func (e *InactiveProductError) Error() string {
	return fmt.Sprintf("product %q is not active", e.Name)
}

// PurchaseLimitError indicates an order line exceeding a limited product's
// per-order maximum.
type PurchaseLimitError struct {
	Name      string
	Requested int
	Max       int
}

func (e *PurchaseLimitError) Error() string {
	return fmt.Sprintf("purchase of %q limited to %d per order, requested %d",
		e.Name, e.Max, e.Requested)
}

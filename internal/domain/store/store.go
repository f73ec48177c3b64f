// Package store implements the catalog aggregate and the order engine.
package store

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/retail-store-challenge/internal/domain/product"
)

var (
	// ErrInvalidProduct is returned when a nil product is added to the catalog.
	ErrInvalidProduct = errors.New("only products can be added to the catalog")
	// ErrProductNotFound is returned when a product is absent from the catalog.
	ErrProductNotFound = errors.New("product not found in catalog")
	// ErrEmptyOrder is returned when an order contains no lines.
	ErrEmptyOrder = errors.New("order must contain at least one line")
)

// Line is one (product, quantity) pair within an order. A product may appear
// in more than one line of the same order.
type Line struct {
	Product  product.Product
	Quantity int
}

// Store holds an ordered catalog of products and processes orders against
// it. The store does not own promotions: products merely reference them.
//
// All operations take the store mutex, making the stock-check-then-decrement
// sequence of an order atomic under concurrent callers.
type Store struct {
	mu      sync.Mutex
	catalog []product.Product
}

// New creates a store with the given initial catalog, preserving order.
func New(products ...product.Product) *Store {
	s := &Store{catalog: make([]product.Product, 0, len(products))}
	s.catalog = append(s.catalog, products...)
	return s
}

// AddProduct appends a product to the catalog.
func (s *Store) AddProduct(p product.Product) error {
	if p == nil {
		return ErrInvalidProduct
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = append(s.catalog, p)
	return nil
}

// RemoveProduct removes the given product from the catalog. It returns
// ErrProductNotFound when the product is not present.
func (s *Store) RemoveProduct(p product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.catalog {
		if existing == p {
			s.catalog = append(s.catalog[:i], s.catalog[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

// FindProduct returns the first catalog product with the given name.
func (s *Store) FindProduct(name string) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.catalog {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

// TotalQuantity sums the quantities of all catalog products, active or not.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, p := range s.catalog {
		total += p.Quantity()
	}
	return total
}

// ActiveProducts returns a fresh slice of the currently active products in
// catalog order. The result is never cached: it always reflects the latest
// activation state.
func (s *Store) ActiveProducts() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := make([]product.Product, 0, len(s.catalog))
	for _, p := range s.catalog {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// Order processes a multi-line order with all-or-nothing semantics: every
// line is validated against current stock before any purchase is committed,
// so no catalog state changes are observable when any line fails.
//
// Demand is aggregated per product during validation, so duplicate lines for
// the same product are checked against their combined availability. Lines
// are then committed in order and their totals summed; the result is rounded
// to 2 decimal places.
func (s *Store) Order(lines []Line) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(lines) == 0 {
		return decimal.Zero, ErrEmptyOrder
	}

	// Validation pass: cumulative demand per product, no mutation.
	demand := make(map[product.Product]int, len(lines))
	for _, ln := range lines {
		if ln.Product == nil {
			return decimal.Zero, ErrInvalidProduct
		}
		if ln.Quantity <= 0 {
			return decimal.Zero, product.ErrNonPositiveAmount
		}
		demand[ln.Product] += ln.Quantity
		if err := ln.Product.CheckPurchase(demand[ln.Product]); err != nil {
			return decimal.Zero, err
		}
	}

	// Commit pass: cannot fail after validation while the mutex is held.
	total := decimal.Zero
	for _, ln := range lines {
		lineTotal, err := ln.Product.Buy(ln.Quantity)
		if err != nil {
			return decimal.Zero, errors.Wrapf(err, "buy %q", ln.Product.Name())
		}
		total = total.Add(lineTotal)
	}
	return total.Round(2), nil
}

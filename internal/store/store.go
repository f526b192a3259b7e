// Package store owns the catalog and executes multi-line orders as a single
// validate-then-commit transaction.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
	"github.com/F-Fleron-G/bestbuy2/internal/product"
)

// Line is one entry of an order.
type Line struct {
	Product  product.Product
	Quantity int
}

// Request is an order line that names its product instead of holding it.
type Request struct {
	Name     string
	Quantity int
}

// ReceiptLine is the charged amount for one order line.
type ReceiptLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Promotion string
}

// Receipt describes a committed order.
type Receipt struct {
	OrderID uuid.UUID
	Lines   []ReceiptLine
	Total   decimal.Decimal
}

// Store holds an ordered product collection. One mutex covers every
// operation, so an order's validation and commit can't interleave with
// another order on the same products.
type Store struct {
	mu       sync.Mutex
	products []product.Product
}

// New creates a store holding products in the given order.
func New(products ...product.Product) *Store {
	s := &Store{products: make([]product.Product, 0, len(products))}
	s.products = append(s.products, products...)
	return s
}

// Products returns the active products in catalog order.
func (s *Store) Products() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// AllProducts returns every product, active or not, in catalog order.
func (s *Store) AllProducts() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]product.Product, len(s.products))
	copy(all, s.products)
	return all
}

// Product returns the first product with the given name.
func (s *Store) Product(name string) (product.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.lookup(name)
	return p, p != nil
}

// Catalog returns display snapshots of the active products.
func (s *Store) Catalog() []product.Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]product.Info, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			infos = append(infos, p.Info())
		}
	}
	return infos
}

// TotalQuantity sums tracked stock over all products, inactive ones
// included. Stock-exempt products contribute 0.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, p := range s.products {
		total += p.Quantity()
	}
	return total
}

// AddProduct appends p to the catalog. Duplicate names are not rejected.
func (s *Store) AddProduct(p product.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(s.products, p)
}

// RemoveProduct removes p by identity and reports whether it was present.
func (s *Store) RemoveProduct(p product.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, candidate := range s.products {
		if candidate == p {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

// Order buys every line and returns the grand total. If any line fails
// validation no product is changed.
func (s *Store) Order(lines []Line) (decimal.Decimal, error) {
	receipt, err := s.PlaceOrder(lines)
	if err != nil {
		return decimal.Zero, err
	}
	return receipt.Total, nil
}

// PlaceOrder is Order returning the full receipt.
func (s *Store) PlaceOrder(lines []Line) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(lines)
}

// PlaceNamedOrder resolves product names and places the order under the
// same lock, so a product can't be removed between lookup and purchase.
func (s *Store) PlaceNamedOrder(requests []Request) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, 0, len(requests))
	for _, r := range requests {
		p := s.lookup(r.Name)
		if p == nil {
			return nil, commerce.NewErrorf(commerce.KindProductNotFound, "Product %q not found", r.Name)
		}
		lines = append(lines, Line{Product: p, Quantity: r.Quantity})
	}
	return s.commit(lines)
}

func (s *Store) lookup(name string) product.Product {
	for _, p := range s.products {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// commit validates every line, then buys every line. Callers hold s.mu.
func (s *Store) commit(lines []Line) (*Receipt, error) {
	if err := validate(lines); err != nil {
		return nil, err
	}

	receipt := &Receipt{
		OrderID: commerce.NewOrderID(),
		Lines:   make([]ReceiptLine, 0, len(lines)),
		Total:   decimal.Zero,
	}
	for _, line := range lines {
		total, err := line.Product.Buy(line.Quantity)
		if err != nil {
			// validate proved every line; reaching here means a product
			// was mutated outside the store.
			return nil, fmt.Errorf("committing %s after validation: %w", line.Product.Name(), err)
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ProductID: line.Product.ID(),
			Name:      line.Product.Name(),
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price(),
			Total:     total,
			Promotion: promotionName(line.Product),
		})
		receipt.Total = receipt.Total.Add(total)
	}
	return receipt, nil
}

// validate checks every line without mutating anything. Lines repeating a
// product are checked against the stock left after the earlier lines.
func validate(lines []Line) error {
	requested := make(map[product.Product]int, len(lines))

	for i, line := range lines {
		p := line.Product
		if p == nil {
			return commerce.NewErrorf(commerce.KindProductNotFound, "Order line %d has no product", i+1)
		}
		if line.Quantity <= 0 {
			return commerce.NewErrorf(commerce.KindInvalidQuantity,
				"Invalid quantity %d for %s: quantity must be positive", line.Quantity, p.Name())
		}
		if !p.IsActive() {
			return commerce.NewErrorf(commerce.KindProductInactive, "%s is not available", p.Name())
		}
		if p.StockTracked() {
			wanted := requested[p] + line.Quantity
			if wanted > p.Quantity() {
				return commerce.NewErrorf(commerce.KindInsufficientStock,
					"Insufficient stock for %s: available %d, requested %d", p.Name(), p.Quantity(), wanted)
			}
			requested[p] = wanted
		}
		if _, err := p.Quote(line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func promotionName(p product.Product) string {
	if promo := p.Promotion(); promo != nil {
		return promo.Name()
	}
	return ""
}

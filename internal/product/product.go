// Package product provides the sellable item variants of the storefront.
package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
	"github.com/F-Fleron-G/bestbuy2/internal/promotion"
)

// Kind names a product variant.
type Kind string

const (
	KindStandard  Kind = "standard"
	KindUnlimited Kind = "unlimited"
	KindCapped    Kind = "capped"
)

// Error message constants for the product domain.
const (
	ErrMsgNameRequired        = "Product name is required"
	ErrMsgPriceNegative       = "Price cannot be negative"
	ErrMsgQuantityNegative    = "Quantity cannot be negative"
	ErrMsgQuantityPositive    = "Quantity must be positive"
	ErrMsgMaximumPositive     = "Maximum per order must be positive"
	ErrMsgQuantityUnsupported = "Quantity cannot be set on a non-stocked product"
)

// Product is a sellable catalog item. Implementations are not safe for
// concurrent use; a Store serializes access to the products it owns.
type Product interface {
	ID() uuid.UUID
	Name() string
	Price() decimal.Decimal

	// Quantity is the tracked stock. Stock-exempt products report 0.
	Quantity() int
	StockTracked() bool
	SetQuantity(quantity int) error

	IsActive() bool
	Activate()
	Deactivate()

	Promotion() promotion.Promotion
	SetPromotion(p promotion.Promotion)

	// Quote runs every check Buy runs and prices the line without
	// touching stock.
	Quote(quantity int) (decimal.Decimal, error)
	Buy(quantity int) (decimal.Decimal, error)

	Info() Info
}

var (
	_ Product = (*Standard)(nil)
	_ Product = (*Unlimited)(nil)
	_ Product = (*Capped)(nil)
)

// Info is a read-only snapshot of a product for display.
type Info struct {
	ID           uuid.UUID
	Kind         Kind
	Name         string
	Price        decimal.Decimal
	Quantity     int
	StockTracked bool
	MaxPerOrder  int // 0 when the product has no per-order ceiling
	Promotion    string
	Active       bool
}

// listing holds what every variant shares: identity, price and promotion.
type listing struct {
	id    uuid.UUID
	name  string
	price decimal.Decimal
	promo promotion.Promotion
}

func newListing(name string, price decimal.Decimal) (listing, error) {
	if err := commerce.RequireNotBlank(name, commerce.KindInvalidProductSpec, ErrMsgNameRequired); err != nil {
		return listing{}, err
	}
	if err := commerce.RequireNonNegativeAmount(price, commerce.KindInvalidProductSpec, ErrMsgPriceNegative); err != nil {
		return listing{}, err
	}
	return listing{id: commerce.ProductRoot(name), name: name, price: price}, nil
}

func (l *listing) ID() uuid.UUID                      { return l.id }
func (l *listing) Name() string                       { return l.name }
func (l *listing) Price() decimal.Decimal             { return l.price }
func (l *listing) Promotion() promotion.Promotion     { return l.promo }
func (l *listing) SetPromotion(p promotion.Promotion) { l.promo = p }

// lineTotal prices quantity units, through the promotion when one is set.
func (l *listing) lineTotal(quantity int) decimal.Decimal {
	if l.promo != nil {
		return l.promo.Total(l.price, quantity)
	}
	return l.price.Mul(commerce.Units(quantity))
}

func (l *listing) promotionName() string {
	if l.promo == nil {
		return ""
	}
	return l.promo.Name()
}

// stock tracks a finite quantity and the operator's active flag.
type stock struct {
	quantity int
	enabled  bool
}

func newStock(quantity int) (stock, error) {
	if err := commerce.RequireNonNegative(quantity, commerce.KindInvalidProductSpec, ErrMsgQuantityNegative); err != nil {
		return stock{}, err
	}
	return stock{quantity: quantity, enabled: true}, nil
}

func (s *stock) set(quantity int) error {
	if err := commerce.RequireNonNegative(quantity, commerce.KindInvalidQuantity, ErrMsgQuantityNegative); err != nil {
		return err
	}
	s.quantity = quantity
	if s.quantity == 0 {
		s.enabled = false
	}
	return nil
}

// active holds only while the flag is set and units remain.
func (s *stock) active() bool {
	return s.enabled && s.quantity > 0
}

func (s *stock) reserve(name string, quantity int) error {
	if quantity > s.quantity {
		return commerce.NewErrorf(commerce.KindInsufficientStock,
			"Insufficient stock for %s: available %d, requested %d", name, s.quantity, quantity)
	}
	return nil
}

func requirePurchasable(quantity int) error {
	if err := commerce.RequirePositive(quantity, commerce.KindInvalidQuantity, ErrMsgQuantityPositive); err != nil {
		return err
	}
	return nil
}

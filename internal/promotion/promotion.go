// Package promotion provides the pricing strategies that can be attached to
// products. A Promotion is a pure function of unit price and quantity; the
// same value may be shared by any number of products.
package promotion

import (
	"github.com/shopspring/decimal"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
)

// Kind tags a promotion strategy in configuration.
type Kind string

const (
	KindPercentDiscount Kind = "percent_discount"
	KindSecondHalfPrice Kind = "second_half_price"
	KindThirdOneFree    Kind = "third_one_free"
)

// Error message constants for the promotion domain.
const (
	ErrMsgNameRequired = "Promotion name is required"
	ErrMsgPercentRange = "Percentage must be 0-100"
	ErrMsgUnknownKind  = "Unknown promotion kind"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// Promotion turns a unit price and a quantity into a discounted line total.
// Callers guarantee quantity > 0.
type Promotion interface {
	Name() string
	Kind() Kind
	Total(unitPrice decimal.Decimal, quantity int) decimal.Decimal
}

// New builds a promotion from its configuration tag. percent is only read
// for KindPercentDiscount.
func New(kind Kind, name string, percent float64) (Promotion, error) {
	var (
		p   Promotion
		err error
	)
	switch kind {
	case KindPercentDiscount:
		p, err = NewPercentDiscount(name, percent)
	case KindSecondHalfPrice:
		p, err = NewSecondHalfPrice(name)
	case KindThirdOneFree:
		p, err = NewThirdOneFree(name)
	default:
		return nil, commerce.NewErrorf(commerce.KindInvalidProductSpec, "%s: %q", ErrMsgUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PercentDiscount takes a fixed percentage off every unit.
type PercentDiscount struct {
	name    string
	percent decimal.Decimal
}

// NewPercentDiscount fails unless 0 <= percent <= 100.
func NewPercentDiscount(name string, percent float64) (*PercentDiscount, error) {
	if err := commerce.RequireNotBlank(name, commerce.KindInvalidProductSpec, ErrMsgNameRequired); err != nil {
		return nil, err
	}
	p := commerce.Money(percent)
	if err := commerce.RequireBetween(p, decimal.Zero, hundred, commerce.KindInvalidProductSpec, ErrMsgPercentRange); err != nil {
		return nil, err
	}
	return &PercentDiscount{name: name, percent: p}, nil
}

func (d *PercentDiscount) Name() string { return d.name }
func (d *PercentDiscount) Kind() Kind   { return KindPercentDiscount }

// Percent returns the configured discount percentage.
func (d *PercentDiscount) Percent() decimal.Decimal { return d.percent }

// Total computes (price - price*percent/100) * quantity.
func (d *PercentDiscount) Total(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	discount := unitPrice.Mul(d.percent).Div(hundred)
	return unitPrice.Sub(discount).Mul(commerce.Units(quantity))
}

// SecondHalfPrice charges half price for every second unit.
type SecondHalfPrice struct {
	name string
}

func NewSecondHalfPrice(name string) (*SecondHalfPrice, error) {
	if err := commerce.RequireNotBlank(name, commerce.KindInvalidProductSpec, ErrMsgNameRequired); err != nil {
		return nil, err
	}
	return &SecondHalfPrice{name: name}, nil
}

func (s *SecondHalfPrice) Name() string { return s.name }
func (s *SecondHalfPrice) Kind() Kind   { return KindSecondHalfPrice }

// Total charges ceil(q/2) units in full and floor(q/2) units at half price.
func (s *SecondHalfPrice) Total(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	full := quantity/2 + quantity%2
	halves := quantity / 2
	return unitPrice.Mul(commerce.Units(full)).
		Add(unitPrice.Mul(half).Mul(commerce.Units(halves)))
}

// ThirdOneFree gives away every third unit.
type ThirdOneFree struct {
	name string
}

func NewThirdOneFree(name string) (*ThirdOneFree, error) {
	if err := commerce.RequireNotBlank(name, commerce.KindInvalidProductSpec, ErrMsgNameRequired); err != nil {
		return nil, err
	}
	return &ThirdOneFree{name: name}, nil
}

func (f *ThirdOneFree) Name() string { return f.name }
func (f *ThirdOneFree) Kind() Kind   { return KindThirdOneFree }

// Total charges for q - floor(q/3) units.
func (f *ThirdOneFree) Total(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	free := quantity / 3
	return unitPrice.Mul(commerce.Units(quantity - free))
}

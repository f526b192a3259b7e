package product

import (
	"github.com/shopspring/decimal"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
)

// Capped is a stock-tracked product that limits how many units a single
// order line may buy.
type Capped struct {
	listing
	stock
	maximum int
}

func NewCapped(name string, price decimal.Decimal, quantity, maxPerOrder int) (*Capped, error) {
	l, err := newListing(name, price)
	if err != nil {
		return nil, err
	}
	s, err := newStock(quantity)
	if err != nil {
		return nil, err
	}
	if err := commerce.RequirePositive(maxPerOrder, commerce.KindInvalidProductSpec, ErrMsgMaximumPositive); err != nil {
		return nil, err
	}
	return &Capped{listing: l, stock: s, maximum: maxPerOrder}, nil
}

func (p *Capped) MaxPerOrder() int   { return p.maximum }
func (p *Capped) Quantity() int      { return p.quantity }
func (p *Capped) StockTracked() bool { return true }
func (p *Capped) IsActive() bool     { return p.active() }
func (p *Capped) Activate()          { p.enabled = true }
func (p *Capped) Deactivate()        { p.enabled = false }

func (p *Capped) SetQuantity(quantity int) error {
	return p.set(quantity)
}

// Quote checks the per-order ceiling before stock.
func (p *Capped) Quote(quantity int) (decimal.Decimal, error) {
	if err := requirePurchasable(quantity); err != nil {
		return decimal.Zero, err
	}
	if quantity > p.maximum {
		return decimal.Zero, commerce.NewErrorf(commerce.KindLimitExceeded,
			"Cannot purchase more than %d units of %s at once", p.maximum, p.name)
	}
	if err := p.reserve(p.name, quantity); err != nil {
		return decimal.Zero, err
	}
	return p.lineTotal(quantity), nil
}

func (p *Capped) Buy(quantity int) (decimal.Decimal, error) {
	total, err := p.Quote(quantity)
	if err != nil {
		return decimal.Zero, err
	}
	if err := p.SetQuantity(p.quantity - quantity); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (p *Capped) Info() Info {
	return Info{
		ID:           p.id,
		Kind:         KindCapped,
		Name:         p.name,
		Price:        p.price,
		Quantity:     p.quantity,
		StockTracked: true,
		MaxPerOrder:  p.maximum,
		Promotion:    p.promotionName(),
		Active:       p.IsActive(),
	}
}

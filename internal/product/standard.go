package product

import (
	"github.com/shopspring/decimal"
)

// Standard is a stock-tracked product. Selling the last unit deactivates it.
type Standard struct {
	listing
	stock
}

// NewStandard creates a stock-tracked product.
func NewStandard(name string, price decimal.Decimal, quantity int) (*Standard, error) {
	l, err := newListing(name, price)
	if err != nil {
		return nil, err
	}
	s, err := newStock(quantity)
	if err != nil {
		return nil, err
	}
	return &Standard{listing: l, stock: s}, nil
}

func (p *Standard) Quantity() int      { return p.quantity }
func (p *Standard) StockTracked() bool { return true }
func (p *Standard) IsActive() bool     { return p.active() }
func (p *Standard) Activate()          { p.enabled = true }
func (p *Standard) Deactivate()        { p.enabled = false }

// SetQuantity replaces the stock level; zero deactivates the product.
func (p *Standard) SetQuantity(quantity int) error {
	return p.set(quantity)
}

func (p *Standard) Quote(quantity int) (decimal.Decimal, error) {
	if err := requirePurchasable(quantity); err != nil {
		return decimal.Zero, err
	}
	if err := p.reserve(p.name, quantity); err != nil {
		return decimal.Zero, err
	}
	return p.lineTotal(quantity), nil
}

// Buy prices quantity units and removes them from stock. Nothing changes
// when validation fails.
func (p *Standard) Buy(quantity int) (decimal.Decimal, error) {
	total, err := p.Quote(quantity)
	if err != nil {
		return decimal.Zero, err
	}
	if err := p.SetQuantity(p.quantity - quantity); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (p *Standard) Info() Info {
	return Info{
		ID:           p.id,
		Kind:         KindStandard,
		Name:         p.name,
		Price:        p.price,
		Quantity:     p.quantity,
		StockTracked: true,
		Promotion:    p.promotionName(),
		Active:       p.IsActive(),
	}
}

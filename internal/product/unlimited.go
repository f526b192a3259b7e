package product

import (
	"github.com/shopspring/decimal"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
)

// Unlimited is a stock-exempt product such as a licence or a service.
// Its quantity is never tracked and purchases never deplete it.
type Unlimited struct {
	listing
	enabled bool
}

func NewUnlimited(name string, price decimal.Decimal) (*Unlimited, error) {
	l, err := newListing(name, price)
	if err != nil {
		return nil, err
	}
	return &Unlimited{listing: l, enabled: true}, nil
}

func (p *Unlimited) Quantity() int      { return 0 }
func (p *Unlimited) StockTracked() bool { return false }
func (p *Unlimited) IsActive() bool     { return p.enabled }
func (p *Unlimited) Activate()          { p.enabled = true }
func (p *Unlimited) Deactivate()        { p.enabled = false }

// SetQuantity always fails.
func (p *Unlimited) SetQuantity(int) error {
	return commerce.NewError(commerce.KindUnsupportedOperation, ErrMsgQuantityUnsupported)
}

func (p *Unlimited) Quote(quantity int) (decimal.Decimal, error) {
	if err := requirePurchasable(quantity); err != nil {
		return decimal.Zero, err
	}
	return p.lineTotal(quantity), nil
}

func (p *Unlimited) Buy(quantity int) (decimal.Decimal, error) {
	return p.Quote(quantity)
}

func (p *Unlimited) Info() Info {
	return Info{
		ID:        p.id,
		Kind:      KindUnlimited,
		Name:      p.name,
		Price:     p.price,
		Promotion: p.promotionName(),
		Active:    p.enabled,
	}
}

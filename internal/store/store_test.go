package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
	"github.com/F-Fleron-G/bestbuy2/internal/product"
	"github.com/F-Fleron-G/bestbuy2/internal/promotion"
)

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func mustStandard(t *testing.T, name string, p int64, quantity int) *product.Standard {
	t.Helper()
	prod, err := product.NewStandard(name, price(p), quantity)
	require.NoError(t, err)
	return prod
}

func mustUnlimited(t *testing.T, name string, p int64) *product.Unlimited {
	t.Helper()
	prod, err := product.NewUnlimited(name, price(p))
	require.NoError(t, err)
	return prod
}

func mustCapped(t *testing.T, name string, p int64, quantity, limit int) *product.Capped {
	t.Helper()
	prod, err := product.NewCapped(name, price(p), quantity, limit)
	require.NoError(t, err)
	return prod
}

func TestProducts_OnlyActiveInCatalogOrder(t *testing.T) {
	mac := mustStandard(t, "MacBook Air M2", 1450, 100)
	earbuds := mustStandard(t, "Bose QuietComfort Earbuds", 250, 500)
	pixel := mustStandard(t, "Google Pixel 7", 500, 250)
	s := New(mac, earbuds, pixel)

	earbuds.Deactivate()

	active := s.Products()
	require.Len(t, active, 2)
	assert.Same(t, mac, active[0])
	assert.Same(t, pixel, active[1])
	assert.Len(t, s.AllProducts(), 3)

	infos := s.Catalog()
	require.Len(t, infos, 2)
	assert.Equal(t, "MacBook Air M2", infos[0].Name)
	assert.Equal(t, "Google Pixel 7", infos[1].Name)
}

func TestTotalQuantity(t *testing.T) {
	mac := mustStandard(t, "MacBook Air M2", 1450, 100)
	earbuds := mustStandard(t, "Bose QuietComfort Earbuds", 250, 500)
	license := mustUnlimited(t, "Windows License", 125)
	shipping := mustCapped(t, "Shipping", 10, 250, 1)
	s := New(mac, earbuds, license, shipping)

	assert.Equal(t, 850, s.TotalQuantity())

	earbuds.Deactivate()
	assert.Equal(t, 850, s.TotalQuantity(), "inactive products still count")

	assert.Equal(t, 0, New().TotalQuantity())
}

func TestAddRemoveProduct(t *testing.T) {
	mac := mustStandard(t, "MacBook Air M2", 1450, 100)
	other := mustStandard(t, "MacBook Air M2", 1450, 100)
	s := New()

	s.AddProduct(mac)
	assert.Len(t, s.Products(), 1)

	assert.False(t, s.RemoveProduct(other), "removal is by identity, not by name")
	assert.Len(t, s.Products(), 1)

	assert.True(t, s.RemoveProduct(mac))
	assert.Empty(t, s.Products())
	assert.False(t, s.RemoveProduct(mac))
}

func TestProduct_LookupByName(t *testing.T) {
	first := mustStandard(t, "Pixel", 500, 1)
	dup := mustStandard(t, "Pixel", 400, 1)
	s := New(first, dup)

	p, ok := s.Product("Pixel")
	require.True(t, ok)
	assert.Same(t, first, p)

	p, ok = s.Product("Nokia")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestPlaceOrder_SameNamedProductsShareIdentity(t *testing.T) {
	first := mustStandard(t, "Pixel", 500, 5)
	second := mustStandard(t, "Pixel", 400, 5)
	s := New(first, second)

	assert.Equal(t, first.ID(), second.ID())

	receipt, err := s.PlaceOrder([]Line{{Product: second, Quantity: 1}})
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, first.ID(), receipt.Lines[0].ProductID)
	assert.True(t, receipt.Lines[0].UnitPrice.Equal(price(400)), "unit price tells the entries apart")
	assert.Equal(t, 5, first.Quantity())
	assert.Equal(t, 4, second.Quantity())
}

func TestOrder_SumsLinesAndDecrementsStock(t *testing.T) {
	mac := mustStandard(t, "MacBook Air M2", 1450, 100)
	earbuds := mustStandard(t, "Bose QuietComfort Earbuds", 250, 500)
	s := New(mac, earbuds)

	total, err := s.Order([]Line{{mac, 1}, {earbuds, 2}})
	require.NoError(t, err)
	assert.True(t, total.Equal(price(1950)), "got %s", total)
	assert.Equal(t, 99, mac.Quantity())
	assert.Equal(t, 498, earbuds.Quantity())
}

func TestOrder_EmptyReturnsZero(t *testing.T) {
	s := New(mustStandard(t, "Pixel", 500, 1))

	total, err := s.Order(nil)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestOrder_FailureLeavesEveryProductUnchanged(t *testing.T) {
	mac := mustStandard(t, "MacBook Air M2", 1450, 100)
	pixel := mustStandard(t, "Google Pixel 7", 500, 5)
	s := New(mac, pixel)

	total, err := s.Order([]Line{{mac, 2}, {pixel, 10}})
	assert.ErrorIs(t, err, commerce.ErrInsufficientStock)
	assert.True(t, total.IsZero())
	assert.Equal(t, 100, mac.Quantity(), "first line must not be committed")
	assert.Equal(t, 5, pixel.Quantity())
}

func TestOrder_RejectsEachFailureKind(t *testing.T) {
	tests := []struct {
		name  string
		lines func(t *testing.T) []Line
		want  error
	}{
		{
			name: "zero quantity",
			lines: func(t *testing.T) []Line {
				return []Line{{mustStandard(t, "Pixel", 500, 5), 0}}
			},
			want: commerce.ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			lines: func(t *testing.T) []Line {
				return []Line{{mustUnlimited(t, "Windows License", 125), -3}}
			},
			want: commerce.ErrInvalidQuantity,
		},
		{
			name: "inactive product",
			lines: func(t *testing.T) []Line {
				p := mustStandard(t, "Pixel", 500, 5)
				p.Deactivate()
				return []Line{{p, 1}}
			},
			want: commerce.ErrProductInactive,
		},
		{
			name: "capped limit",
			lines: func(t *testing.T) []Line {
				return []Line{{mustCapped(t, "Shipping", 10, 250, 1), 2}}
			},
			want: commerce.ErrLimitExceeded,
		},
		{
			name: "missing product",
			lines: func(t *testing.T) []Line {
				return []Line{{nil, 1}}
			},
			want: commerce.ErrProductNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Order(tt.lines(t))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOrder_RepeatedProductCheckedCumulatively(t *testing.T) {
	pixel := mustStandard(t, "Google Pixel 7", 500, 5)
	mac := mustStandard(t, "MacBook Air M2", 1450, 10)
	s := New(pixel, mac)

	_, err := s.Order([]Line{{pixel, 3}, {mac, 1}, {pixel, 3}})
	assert.ErrorIs(t, err, commerce.ErrInsufficientStock)
	assert.Equal(t, 5, pixel.Quantity())
	assert.Equal(t, 10, mac.Quantity())

	total, err := s.Order([]Line{{pixel, 3}, {pixel, 2}})
	require.NoError(t, err)
	assert.True(t, total.Equal(price(2500)))
	assert.Equal(t, 0, pixel.Quantity())
	assert.False(t, pixel.IsActive())
}

func TestOrder_CappedLimitAppliesPerLine(t *testing.T) {
	shipping := mustCapped(t, "Shipping", 10, 250, 1)
	s := New(shipping)

	total, err := s.Order([]Line{{shipping, 1}, {shipping, 1}})
	require.NoError(t, err)
	assert.True(t, total.Equal(price(20)))
	assert.Equal(t, 248, shipping.Quantity())
}

func TestOrder_UnlimitedNeverDepletes(t *testing.T) {
	license := mustUnlimited(t, "Windows License", 125)
	s := New(license)

	total, err := s.Order([]Line{{license, 1000}})
	require.NoError(t, err)
	assert.True(t, total.Equal(price(125000)))
	assert.True(t, license.IsActive())
	assert.Len(t, s.Products(), 1)
}

func TestPlaceOrder_ReceiptLinesSumToTotal(t *testing.T) {
	mac := mustStandard(t, "MacBook Air M2", 1450, 100)
	half, err := promotion.NewSecondHalfPrice("Second Half price!")
	require.NoError(t, err)
	mac.SetPromotion(half)
	license := mustUnlimited(t, "Windows License", 125)
	s := New(mac, license)

	receipt, err := s.PlaceOrder([]Line{{mac, 2}, {license, 1}})
	require.NoError(t, err)

	require.Len(t, receipt.Lines, 2)
	assert.NotEqual(t, uuid.Nil, receipt.OrderID)
	assert.Equal(t, "MacBook Air M2", receipt.Lines[0].Name)
	assert.Equal(t, "Second Half price!", receipt.Lines[0].Promotion)
	assert.True(t, receipt.Lines[0].Total.Equal(price(2175)), "got %s", receipt.Lines[0].Total)
	assert.True(t, receipt.Lines[0].UnitPrice.Equal(price(1450)))
	assert.Equal(t, mac.ID(), receipt.Lines[0].ProductID)
	assert.Equal(t, "", receipt.Lines[1].Promotion)

	sum := decimal.Zero
	for _, l := range receipt.Lines {
		sum = sum.Add(l.Total)
	}
	assert.True(t, sum.Equal(receipt.Total))
	assert.True(t, receipt.Total.Equal(price(2300)))
}

func TestPlaceNamedOrder(t *testing.T) {
	mac := mustStandard(t, "MacBook Air M2", 1450, 100)
	s := New(mac)

	receipt, err := s.PlaceNamedOrder([]Request{{Name: "MacBook Air M2", Quantity: 2}})
	require.NoError(t, err)
	assert.True(t, receipt.Total.Equal(price(2900)))
	assert.Equal(t, 98, mac.Quantity())

	_, err = s.PlaceNamedOrder([]Request{
		{Name: "MacBook Air M2", Quantity: 1},
		{Name: "Nokia 3310", Quantity: 1},
	})
	assert.ErrorIs(t, err, commerce.ErrProductNotFound)
	assert.Equal(t, commerce.KindProductNotFound, commerce.KindOf(err))
	assert.Equal(t, 98, mac.Quantity())
}

func TestOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	pixel := mustStandard(t, "Google Pixel 7", 500, 50)
	s := New(pixel)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Order([]Line{{pixel, 1}}); err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, sold)
	assert.Equal(t, 0, s.TotalQuantity())
	assert.Empty(t, s.Products())
}

package commerce

import "github.com/shopspring/decimal"

// Money converts a float amount, as read from configuration or a wire
// format, into the decimal representation the engine computes with.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount)
}

// Units returns quantity as a decimal multiplier.
func Units(quantity int) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity))
}

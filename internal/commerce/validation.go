package commerce

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RequireNotBlank checks that a field has non-whitespace content.
func RequireNotBlank(field string, kind Kind, errMsg string) *Error {
	if strings.TrimSpace(field) == "" {
		return NewError(kind, errMsg)
	}
	return nil
}

// RequirePositive checks that a value is greater than zero.
func RequirePositive(value int, kind Kind, errMsg string) *Error {
	if value <= 0 {
		return NewError(kind, errMsg)
	}
	return nil
}

// RequireNonNegative checks that a value is zero or greater.
func RequireNonNegative(value int, kind Kind, errMsg string) *Error {
	if value < 0 {
		return NewError(kind, errMsg)
	}
	return nil
}

// RequireNonNegativeAmount checks that an amount is zero or greater.
func RequireNonNegativeAmount(value decimal.Decimal, kind Kind, errMsg string) *Error {
	if value.IsNegative() {
		return NewError(kind, errMsg)
	}
	return nil
}

// RequireBetween checks that lo <= value <= hi.
func RequireBetween(value, lo, hi decimal.Decimal, kind Kind, errMsg string) *Error {
	if value.LessThan(lo) || value.GreaterThan(hi) {
		return NewError(kind, errMsg)
	}
	return nil
}

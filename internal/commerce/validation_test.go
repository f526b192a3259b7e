package commerce

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequireNotBlank(t *testing.T) {
	if err := RequireNotBlank("MacBook", KindInvalidProductSpec, "error"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	for _, v := range []string{"", "   "} {
		err := RequireNotBlank(v, KindInvalidProductSpec, "name required")
		if err == nil {
			t.Fatalf("expected error for %q", v)
		}
		if err.Kind != KindInvalidProductSpec || err.Message != "name required" {
			t.Errorf("unexpected error %+v", err)
		}
	}
}

func TestRequirePositive(t *testing.T) {
	if err := RequirePositive(1, KindInvalidQuantity, "error"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := RequirePositive(0, KindInvalidQuantity, "error"); err == nil {
		t.Error("expected error on zero")
	}
	if err := RequirePositive(-3, KindInvalidQuantity, "error"); err == nil {
		t.Error("expected error on negative")
	}
}

func TestRequireNonNegative(t *testing.T) {
	if err := RequireNonNegative(0, KindInvalidQuantity, "error"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := RequireNonNegative(-1, KindInvalidQuantity, "error"); err == nil {
		t.Error("expected error on negative")
	}
}

func TestRequireNonNegativeAmount(t *testing.T) {
	if err := RequireNonNegativeAmount(decimal.Zero, KindInvalidProductSpec, "error"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := RequireNonNegativeAmount(Money(-0.01), KindInvalidProductSpec, "error"); err == nil {
		t.Error("expected error on negative amount")
	}
}

func TestRequireBetween(t *testing.T) {
	lo, hi := decimal.Zero, decimal.NewFromInt(100)
	for _, v := range []float64{0, 30, 100} {
		if err := RequireBetween(Money(v), lo, hi, KindInvalidProductSpec, "error"); err != nil {
			t.Errorf("expected nil for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{-1, 100.5} {
		if err := RequireBetween(Money(v), lo, hi, KindInvalidProductSpec, "error"); err == nil {
			t.Errorf("expected error for %v", v)
		}
	}
}

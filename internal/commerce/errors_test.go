package commerce

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewError_setsKindAndMessage(t *testing.T) {
	err := NewError(KindInvalidQuantity, "bad quantity")
	if err.Kind != KindInvalidQuantity {
		t.Errorf("expected KindInvalidQuantity, got %v", err.Kind)
	}
	if err.Message != "bad quantity" {
		t.Errorf("expected 'bad quantity', got %q", err.Message)
	}
}

func TestNewErrorf_formatsMessage(t *testing.T) {
	err := NewErrorf(KindInsufficientStock, "only %d of %s left", 3, "Pixel")
	if err.Error() != "only 3 of Pixel left" {
		t.Errorf("expected 'only 3 of Pixel left', got %q", err.Error())
	}
}

func TestError_Is_matchesOnKind(t *testing.T) {
	err := NewError(KindLimitExceeded, "too many")
	if !errors.Is(err, ErrLimitExceeded) {
		t.Error("expected errors.Is to match ErrLimitExceeded")
	}
	if errors.Is(err, ErrInsufficientStock) {
		t.Error("did not expect errors.Is to match ErrInsufficientStock")
	}
}

func TestError_Is_throughWrapping(t *testing.T) {
	err := fmt.Errorf("ordering: %w", NewError(KindProductInactive, "gone"))
	if !errors.Is(err, ErrProductInactive) {
		t.Error("expected wrapped error to match ErrProductInactive")
	}
	if KindOf(err) != KindProductInactive {
		t.Errorf("expected KindProductInactive, got %v", KindOf(err))
	}
}

func TestKindOf_foreignError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", got)
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Errorf("expected KindUnknown for nil, got %v", got)
	}
}

func TestKind_Status(t *testing.T) {
	tests := []struct {
		kind Kind
		want StatusCode
	}{
		{KindInvalidProductSpec, StatusInvalidArgument},
		{KindInvalidQuantity, StatusInvalidArgument},
		{KindInsufficientStock, StatusFailedPrecondition},
		{KindLimitExceeded, StatusFailedPrecondition},
		{KindUnsupportedOperation, StatusFailedPrecondition},
		{KindProductInactive, StatusFailedPrecondition},
		{KindProductNotFound, StatusNotFound},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.want {
			t.Errorf("%v.Status() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestStatusCode_String_returnsLabel(t *testing.T) {
	tests := []struct {
		code StatusCode
		want string
	}{
		{StatusInvalidArgument, "INVALID_ARGUMENT"},
		{StatusFailedPrecondition, "FAILED_PRECONDITION"},
		{StatusNotFound, "NOT_FOUND"},
		{StatusCode(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("StatusCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestKind_String(t *testing.T) {
	if KindInsufficientStock.String() != "INSUFFICIENT_STOCK" {
		t.Errorf("unexpected label %q", KindInsufficientStock.String())
	}
	if Kind(42).String() != "UNKNOWN" {
		t.Errorf("unexpected label %q", Kind(42).String())
	}
}

func TestParseKind_roundTrip(t *testing.T) {
	for k := KindInvalidProductSpec; k <= KindProductNotFound; k++ {
		if got := ParseKind(k.String()); got != k {
			t.Errorf("expected %v, got %v", k, got)
		}
	}
	if got := ParseKind("NOPE"); got != KindUnknown {
		t.Errorf("expected KindUnknown, got %v", got)
	}
}

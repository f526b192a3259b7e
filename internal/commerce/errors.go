// Package commerce holds the pieces shared by the storefront engine: the
// error taxonomy, input validation, money helpers and identities.
package commerce

import (
	"errors"
	"fmt"
)

// StatusCode is the category a rejection falls into at a transport boundary.
type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusFailedPrecondition
	StatusNotFound
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusFailedPrecondition:
		return "FAILED_PRECONDITION"
	case StatusNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Kind identifies why the engine rejected an operation.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidProductSpec
	KindInvalidQuantity
	KindInsufficientStock
	KindLimitExceeded
	KindUnsupportedOperation
	KindProductInactive
	KindProductNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidProductSpec:
		return "INVALID_PRODUCT_SPEC"
	case KindInvalidQuantity:
		return "INVALID_QUANTITY"
	case KindInsufficientStock:
		return "INSUFFICIENT_STOCK"
	case KindLimitExceeded:
		return "LIMIT_EXCEEDED"
	case KindUnsupportedOperation:
		return "UNSUPPORTED_OPERATION"
	case KindProductInactive:
		return "PRODUCT_INACTIVE"
	case KindProductNotFound:
		return "PRODUCT_NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// ParseKind is the inverse of Kind.String. Unrecognized labels yield
// KindUnknown.
func ParseKind(label string) Kind {
	for k := KindInvalidProductSpec; k <= KindProductNotFound; k++ {
		if k.String() == label {
			return k
		}
	}
	return KindUnknown
}

// Status maps a kind onto its transport category.
func (k Kind) Status() StatusCode {
	switch k {
	case KindInvalidProductSpec, KindInvalidQuantity:
		return StatusInvalidArgument
	case KindProductNotFound:
		return StatusNotFound
	default:
		return StatusFailedPrecondition
	}
}

// Error is returned whenever the engine rejects an operation.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind, so callers can
// write errors.Is(err, commerce.ErrInsufficientStock).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is matching. Only the Kind is compared.
var (
	ErrInvalidProductSpec   = &Error{Kind: KindInvalidProductSpec, Message: "invalid product spec"}
	ErrInvalidQuantity      = &Error{Kind: KindInvalidQuantity, Message: "invalid quantity"}
	ErrInsufficientStock    = &Error{Kind: KindInsufficientStock, Message: "insufficient stock"}
	ErrLimitExceeded        = &Error{Kind: KindLimitExceeded, Message: "limit exceeded"}
	ErrUnsupportedOperation = &Error{Kind: KindUnsupportedOperation, Message: "unsupported operation"}
	ErrProductInactive      = &Error{Kind: KindProductInactive, Message: "product inactive"}
	ErrProductNotFound      = &Error{Kind: KindProductNotFound, Message: "product not found"}
)

// NewError creates an Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewErrorf creates an Error with a formatted message.
func NewErrorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

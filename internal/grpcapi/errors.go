package grpcapi

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
)

// ErrorDomain tags the ErrorInfo detail attached to rejections.
const ErrorDomain = "bestbuy2.storefront"

// MapError converts an engine rejection to a gRPC status error carrying the
// kind as an ErrorInfo reason. Other errors become Internal.
func MapError(err error) error {
	var e *commerce.Error
	if !errors.As(err, &e) {
		return status.Errorf(codes.Internal, "internal error: %v", err)
	}

	var code codes.Code
	switch e.Kind.Status() {
	case commerce.StatusInvalidArgument:
		code = codes.InvalidArgument
	case commerce.StatusNotFound:
		code = codes.NotFound
	default:
		code = codes.FailedPrecondition
	}

	st := status.New(code, e.Message)
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: e.Kind.String(),
		Domain: ErrorDomain,
	})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// FromStatus recovers the engine error from a status produced by MapError.
// Statuses without a recognizable ErrorInfo are returned unchanged.
func FromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		if kind := commerce.ParseKind(info.GetReason()); kind != commerce.KindUnknown {
			return commerce.NewError(kind, st.Message())
		}
	}
	return err
}

package grpcapi

import (
	"context"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/F-Fleron-G/bestbuy2/internal/checkout"
	"github.com/F-Fleron-G/bestbuy2/internal/product"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

// Server implements StorefrontServer on top of a checkout service.
type Server struct {
	svc *checkout.Service
}

var _ StorefrontServer = (*Server)(nil)

func NewServer(svc *checkout.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	infos := s.svc.Catalog(ctx)
	products := make([]interface{}, 0, len(infos))
	for _, info := range infos {
		products = append(products, productFields(info))
	}
	out, err := structpb.NewStruct(map[string]interface{}{"products": products})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode catalog: %v", err)
	}
	return out, nil
}

func (s *Server) TotalQuantity(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	return wrapperspb.Int64(int64(s.svc.TotalQuantity(ctx))), nil
}

func (s *Server) PlaceOrder(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	requests, err := DecodeOrder(in)
	if err != nil {
		return nil, err
	}
	receipt, err := s.svc.PlaceOrder(ctx, requests)
	if err != nil {
		return nil, MapError(err)
	}
	out, err := structpb.NewStruct(receiptFields(receipt))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode receipt: %v", err)
	}
	return out, nil
}

// EncodeOrder builds a PlaceOrder request body.
func EncodeOrder(requests []checkout.Request) (*structpb.Struct, error) {
	lines := make([]interface{}, 0, len(requests))
	for _, r := range requests {
		lines = append(lines, map[string]interface{}{
			"product":  r.Name,
			"quantity": r.Quantity,
		})
	}
	return structpb.NewStruct(map[string]interface{}{"lines": lines})
}

// DecodeOrder reads a PlaceOrder request body. Malformed bodies fail with
// InvalidArgument before the store is consulted.
func DecodeOrder(in *structpb.Struct) ([]checkout.Request, error) {
	linesValue, ok := in.GetFields()["lines"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "order has no lines field")
	}
	list := linesValue.GetListValue()
	if list == nil {
		return nil, status.Error(codes.InvalidArgument, "lines must be a list")
	}

	requests := make([]checkout.Request, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		line := v.GetStructValue()
		if line == nil {
			return nil, status.Errorf(codes.InvalidArgument, "line %d must be an object", i+1)
		}
		name := line.GetFields()["product"].GetStringValue()
		if name == "" {
			return nil, status.Errorf(codes.InvalidArgument, "line %d has no product", i+1)
		}
		qv, ok := line.GetFields()["quantity"].GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "line %d has no numeric quantity", i+1)
		}
		q := qv.NumberValue
		if q != math.Trunc(q) || q > math.MaxInt32 || q < math.MinInt32 {
			return nil, status.Errorf(codes.InvalidArgument, "line %d quantity must be a whole number", i+1)
		}
		requests = append(requests, checkout.Request{Name: name, Quantity: int(q)})
	}
	return requests, nil
}

func productFields(info product.Info) map[string]interface{} {
	return map[string]interface{}{
		"id":            info.ID.String(),
		"kind":          string(info.Kind),
		"name":          info.Name,
		"price":         info.Price.String(),
		"quantity":      info.Quantity,
		"stock_tracked": info.StockTracked,
		"max_per_order": info.MaxPerOrder,
		"promotion":     info.Promotion,
	}
}

func receiptFields(r *store.Receipt) map[string]interface{} {
	lines := make([]interface{}, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, map[string]interface{}{
			"product_id": l.ProductID.String(),
			"name":       l.Name,
			"quantity":   l.Quantity,
			"unit_price": l.UnitPrice.String(),
			"total":      l.Total.String(),
			"promotion":  l.Promotion,
		})
	}
	return map[string]interface{}{
		"order_id": r.OrderID.String(),
		"lines":    lines,
		"total":    r.Total.String(),
	}
}

// Package grpcapi exposes the storefront over gRPC. Messages are protobuf
// well-known types, so the service is declared by hand instead of being
// generated.
package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "storefront.v1.Storefront"

const (
	methodListProducts  = "/" + ServiceName + "/ListProducts"
	methodTotalQuantity = "/" + ServiceName + "/TotalQuantity"
	methodPlaceOrder    = "/" + ServiceName + "/PlaceOrder"
)

// StorefrontServer is the server API for the Storefront service.
type StorefrontServer interface {
	ListProducts(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	TotalQuantity(context.Context, *emptypb.Empty) (*wrapperspb.Int64Value, error)
	PlaceOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterStorefrontServer registers srv on s.
func RegisterStorefrontServer(s grpc.ServiceRegistrar, srv StorefrontServer) {
	s.RegisterService(&StorefrontServiceDesc, srv)
}

// StorefrontServiceDesc describes the Storefront service for grpc.Server.
var StorefrontServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StorefrontServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "TotalQuantity", Handler: totalQuantityHandler},
		{MethodName: "PlaceOrder", Handler: placeOrderHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/v1/storefront.proto",
}

func listProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListProducts}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorefrontServer).ListProducts(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func totalQuantityHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServer).TotalQuantity(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodTotalQuantity}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorefrontServer).TotalQuantity(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func placeOrderHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorefrontServer).PlaceOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodPlaceOrder}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorefrontServer).PlaceOrder(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// StorefrontClient calls a remote Storefront service.
type StorefrontClient struct {
	cc grpc.ClientConnInterface
}

func NewStorefrontClient(cc grpc.ClientConnInterface) *StorefrontClient {
	return &StorefrontClient{cc: cc}
}

func (c *StorefrontClient) ListProducts(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodListProducts, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StorefrontClient) TotalQuantity(ctx context.Context, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, methodTotalQuantity, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StorefrontClient) PlaceOrder(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodPlaceOrder, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

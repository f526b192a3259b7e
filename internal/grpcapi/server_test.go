package grpcapi

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/F-Fleron-G/bestbuy2/internal/catalog"
	"github.com/F-Fleron-G/bestbuy2/internal/checkout"
	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
)

const bufSize = 1024 * 1024

type StorefrontSuite struct {
	suite.Suite
	listener *bufconn.Listener
	server   *grpc.Server
	conn     *grpc.ClientConn
	client   *StorefrontClient
	cancel   context.CancelFunc
	served   chan error
}

func (s *StorefrontSuite) SetupTest() {
	s.listener = bufconn.Listen(bufSize)
	svc := checkout.NewService(catalog.Default())
	s.server = NewGRPCServer(NewServer(svc), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.served = make(chan error, 1)
	go func() { s.served <- Serve(ctx, s.server, s.listener, zap.NewNop()) }()

	var err error
	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.client = NewStorefrontClient(s.conn)
}

func (s *StorefrontSuite) TearDownTest() {
	if s.conn != nil {
		s.conn.Close()
	}
	s.cancel()
	s.NoError(<-s.served)
	s.listener.Close()
}

func (s *StorefrontSuite) order(lines ...checkout.Request) (*structpb.Struct, error) {
	body, err := EncodeOrder(lines)
	s.Require().NoError(err)
	return s.client.PlaceOrder(context.Background(), body)
}

func (s *StorefrontSuite) TestListProducts() {
	out, err := s.client.ListProducts(context.Background())
	s.Require().NoError(err)

	products := out.GetFields()["products"].GetListValue().GetValues()
	s.Require().Len(products, 5)
	first := products[0].GetStructValue().GetFields()
	s.Equal("MacBook Air M2", first["name"].GetStringValue())
	s.Equal("1450", first["price"].GetStringValue())
	s.Equal(float64(100), first["quantity"].GetNumberValue())
	s.Equal("Second Half price!", first["promotion"].GetStringValue())
}

func (s *StorefrontSuite) TestTotalQuantity() {
	out, err := s.client.TotalQuantity(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(1100), out.GetValue())
}

func (s *StorefrontSuite) TestPlaceOrder() {
	out, err := s.order(
		checkout.Request{Name: "Bose QuietComfort Earbuds", Quantity: 3},
		checkout.Request{Name: "Windows License", Quantity: 1},
	)
	s.Require().NoError(err)

	s.Equal("587.5", out.GetFields()["total"].GetStringValue())
	s.NotEmpty(out.GetFields()["order_id"].GetStringValue())
	s.Len(out.GetFields()["lines"].GetListValue().GetValues(), 2)

	total, err := s.client.TotalQuantity(context.Background())
	s.Require().NoError(err)
	s.Equal(int64(1097), total.GetValue())
}

func (s *StorefrontSuite) TestPlaceOrder_RejectionsMapToCodes() {
	tests := []struct {
		name  string
		lines []checkout.Request
		code  codes.Code
		kind  error
	}{
		{"limit", []checkout.Request{{Name: "Shipping", Quantity: 2}}, codes.FailedPrecondition, commerce.ErrLimitExceeded},
		{"stock", []checkout.Request{{Name: "MacBook Air M2", Quantity: 101}}, codes.FailedPrecondition, commerce.ErrInsufficientStock},
		{"quantity", []checkout.Request{{Name: "Google Pixel 7", Quantity: 0}}, codes.InvalidArgument, commerce.ErrInvalidQuantity},
		{"unknown", []checkout.Request{{Name: "Nokia 3310", Quantity: 1}}, codes.NotFound, commerce.ErrProductNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.order(tt.lines...)
			s.Equal(tt.code, status.Code(err))
			s.ErrorIs(FromStatus(err), tt.kind)
		})
	}
}

func (s *StorefrontSuite) TestPlaceOrder_MalformedBody() {
	body, err := structpb.NewStruct(map[string]interface{}{
		"lines": []interface{}{map[string]interface{}{"product": "Google Pixel 7", "quantity": 1.5}},
	})
	s.Require().NoError(err)

	_, err = s.client.PlaceOrder(context.Background(), body)
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.client.PlaceOrder(context.Background(), &structpb.Struct{})
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *StorefrontSuite) TestHealth() {
	resp, err := grpc_health_v1.NewHealthClient(s.conn).Check(context.Background(),
		&grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	s.Require().NoError(err)
	s.Equal(grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestStorefrontSuite(t *testing.T) {
	defer goleak.VerifyNone(t)
	suite.Run(t, new(StorefrontSuite))
}

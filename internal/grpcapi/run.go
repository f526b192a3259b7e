package grpcapi

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
)

// NewGRPCServer builds a server with the Storefront service, the health
// service reporting SERVING, and reflection.
func NewGRPCServer(srv StorefrontServer, logger *zap.Logger) *grpc.Server {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(LoggingInterceptor(logger)))
	RegisterStorefrontServer(s, srv)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(s)
	return s
}

// LoggingInterceptor logs every unary call with its status code.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Warn("grpc call failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("grpc call", fields...)
		}
		return resp, err
	}
}

// Serve runs s on lis until ctx is cancelled, then stops gracefully.
func Serve(ctx context.Context, s *grpc.Server, lis net.Listener, logger *zap.Logger) error {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("shutting down gRPC server")
			s.GracefulStop()
		case <-done:
		}
	}()
	defer close(done)

	logger.Info("gRPC server started", zap.String("address", lis.Addr().String()))
	if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

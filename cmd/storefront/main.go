// Command storefront serves the catalog and order API over gRPC and HTTP.
package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/F-Fleron-G/bestbuy2/internal/catalog"
	"github.com/F-Fleron-G/bestbuy2/internal/checkout"
	"github.com/F-Fleron-G/bestbuy2/internal/config"
	"github.com/F-Fleron-G/bestbuy2/internal/events"
	"github.com/F-Fleron-G/bestbuy2/internal/grpcapi"
	"github.com/F-Fleron-G/bestbuy2/internal/httpapi"
	"github.com/F-Fleron-G/bestbuy2/internal/observability"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

func main() {
	base, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer base.Sync()

	if err := run(base); err != nil {
		base.Fatal("storefront stopped", zap.Error(err))
	}
}

func run(base *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tp, shutdownTelemetry, err := observability.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			base.Error("failed to shut down telemetry", zap.Error(err))
		}
	}()

	logger := base
	if cfg.TracingEnabled() {
		logger = observability.BridgeLogger(base)
	}

	st, err := loadStore(cfg)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaEnabled() {
		kp, err := events.DialKafka(cfg, tp)
		if err != nil {
			return err
		}
		publisher = kp
		logger.Info("publishing order events", zap.String("broker", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close publisher", zap.Error(err))
		}
	}()

	svc := checkout.NewService(st,
		checkout.WithLogger(logger),
		checkout.WithTracer(tp.Tracer(observability.InstrumentationScope)),
		checkout.WithPublisher(publisher),
	)

	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port %d: %w", cfg.GRPCPort, err)
	}
	httpLis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTPPort))
	if err != nil {
		grpcLis.Close()
		return fmt.Errorf("failed to listen on HTTP port %d: %w", cfg.HTTPPort, err)
	}

	grpcServer := grpcapi.NewGRPCServer(grpcapi.NewServer(svc), logger)
	httpHandler := httpapi.New(svc, logger).Router()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return grpcapi.Serve(gctx, grpcServer, grpcLis, logger) })
	g.Go(func() error { return httpapi.Serve(gctx, httpLis, httpHandler, logger) })

	logger.Info("storefront started",
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("products", len(st.AllProducts())),
	)
	return g.Wait()
}

func loadStore(cfg *config.Config) (*store.Store, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}
	st, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return st, nil
}


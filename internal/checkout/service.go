// Package checkout is the application service every transport goes
// through. It wraps the store with logging, tracing and order events.
package checkout

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/F-Fleron-G/bestbuy2/internal/commerce"
	"github.com/F-Fleron-G/bestbuy2/internal/events"
	"github.com/F-Fleron-G/bestbuy2/internal/observability"
	"github.com/F-Fleron-G/bestbuy2/internal/product"
	"github.com/F-Fleron-G/bestbuy2/internal/store"
)

// Span names.
const (
	SpanPlaceOrder    = "storefront.place_order"
	SpanListProducts  = "storefront.list_products"
	SpanTotalQuantity = "storefront.total_quantity"
)

// Request names a product and a quantity.
type Request = store.Request

// Service serves catalog queries and orders for one store.
type Service struct {
	store     *store.Store
	logger    *zap.Logger
	tracer    trace.Tracer
	publisher events.Publisher
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTracer sets the tracer. Defaults to the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithPublisher sets where OrderPlaced events go. Defaults to a no-op.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:     st,
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(observability.InstrumentationScope),
		publisher: events.NopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the wrapped store.
func (s *Service) Store() *store.Store { return s.store }

// Catalog returns the active products.
func (s *Service) Catalog(ctx context.Context) []product.Info {
	_, span := s.tracer.Start(ctx, SpanListProducts)
	defer span.End()

	infos := s.store.Catalog()
	span.SetAttributes(attribute.Int("catalog.size", len(infos)))
	return infos
}

// TotalQuantity returns the tracked stock across the whole catalog.
func (s *Service) TotalQuantity(ctx context.Context) int {
	_, span := s.tracer.Start(ctx, SpanTotalQuantity)
	defer span.End()

	total := s.store.TotalQuantity()
	span.SetAttributes(attribute.Int("inventory.total", total))
	return total
}

// Products returns the active products themselves, in catalog order.
func (s *Service) Products(ctx context.Context) []product.Product {
	_, span := s.tracer.Start(ctx, SpanListProducts)
	defer span.End()

	products := s.store.Products()
	span.SetAttributes(attribute.Int("catalog.size", len(products)))
	return products
}

// PlaceOrder resolves and buys every request as one order. The event is
// published after the store commits; a publish failure is logged and the
// receipt is still returned.
func (s *Service) PlaceOrder(ctx context.Context, requests []Request) (*store.Receipt, error) {
	return s.place(ctx, len(requests), func() (*store.Receipt, error) {
		return s.store.PlaceNamedOrder(requests)
	})
}

// OrderProducts is PlaceOrder for callers already holding the products,
// so same-named catalog entries can't be confused.
func (s *Service) OrderProducts(ctx context.Context, lines []store.Line) (*store.Receipt, error) {
	return s.place(ctx, len(lines), func() (*store.Receipt, error) {
		return s.store.PlaceOrder(lines)
	})
}

func (s *Service) place(ctx context.Context, lineCount int, commit func() (*store.Receipt, error)) (*store.Receipt, error) {
	ctx, span := s.tracer.Start(ctx, SpanPlaceOrder)
	defer span.End()

	span.SetAttributes(attribute.Int("order.lines", lineCount))

	receipt, err := commit()
	if err != nil {
		kind := commerce.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("order.rejection", kind.String()))
		s.logger.Warn("order rejected",
			zap.String("kind", kind.String()),
			zap.Int("lines", lineCount),
			zap.Error(err),
		)
		return nil, err
	}

	orderID := receipt.OrderID.String()
	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.String("order.total", receipt.Total.String()),
	)
	s.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.Int("lines", len(receipt.Lines)),
		zap.String("total", receipt.Total.String()),
	)

	if err := s.publisher.Publish(ctx, events.FromReceipt(receipt, s.now())); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to publish OrderPlaced event",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}

	span.SetStatus(codes.Ok, "")
	return receipt, nil
}

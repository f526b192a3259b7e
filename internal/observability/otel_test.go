package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/F-Fleron-G/bestbuy2/internal/config"
)

func TestSetup_WithoutEndpoint(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), &config.Config{})
	require.NoError(t, err)
	require.NotNil(t, tp)
	require.NotNil(t, shutdown)

	_, span := tp.Tracer(InstrumentationScope).Start(context.Background(), "noop")
	assert.True(t, span.SpanContext().IsValid(), "spans are still recorded locally")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestNewResource_FollowsSDKDefaultSchema(t *testing.T) {
	res, err := newResource()
	require.NoError(t, err)

	assert.Equal(t, resource.Default().SchemaURL(), res.SchemaURL())
	name, ok := res.Set().Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, config.ServiceName, name.AsString())
	version, ok := res.Set().Value(semconv.ServiceVersionKey)
	require.True(t, ok)
	assert.Equal(t, config.ServiceVersion, version.AsString())
}

func TestSetup_EnabledBuildsExporters(t *testing.T) {
	cfg := &config.Config{
		OtelEndpoint:   "localhost:4318",
		OtelAuthHeader: "Basic dGVzdA==",
	}

	tp, shutdown, err := Setup(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NoError(t, shutdown(context.Background()))
}

func TestBridgeLogger_KeepsBaseCore(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	logger := BridgeLogger(zap.New(core))
	logger.Info("order placed", zap.String("order_id", "abc"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "order placed", entry.Message)
	assert.Equal(t, "abc", entry.ContextMap()["order_id"])
}

func TestAuthHeaders(t *testing.T) {
	assert.Nil(t, authHeaders(&config.Config{}))
	assert.Equal(t, map[string]string{"Authorization": "Bearer x"},
		authHeaders(&config.Config{OtelAuthHeader: "Bearer x"}))
}

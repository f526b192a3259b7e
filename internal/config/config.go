// Package config reads the storefront's environment configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Service identity reported to tracing backends.
const (
	ServiceName    = "bestbuy2-storefront"
	ServiceVersion = "0.1.0"
)

// Kafka settings that do not vary between environments.
const (
	DefaultOrderTopic = "OrderPlaced"
	BatchTimeout      = 10 * time.Millisecond
)

// OpenTelemetry export settings.
const (
	TracesPath    = "/otlp/v1/traces"
	LogsPath      = "/otlp/v1/logs"
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

// Config holds what changes between environments. Empty KafkaBroker or
// OtelEndpoint turns the matching integration off.
type Config struct {
	GRPCPort       int
	HTTPPort       int
	CatalogFile    string
	KafkaBroker    string
	KafkaTopic     string
	OtelEndpoint   string
	OtelAuthHeader string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	grpcPort, err := portFromEnv("GRPC_PORT", 50301)
	if err != nil {
		return nil, err
	}
	httpPort, err := portFromEnv("HTTP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GRPCPort:       grpcPort,
		HTTPPort:       httpPort,
		CatalogFile:    os.Getenv("CATALOG_FILE"),
		KafkaBroker:    os.Getenv("KAFKA_BROKER"),
		KafkaTopic:     getEnvOrDefault("KAFKA_TOPIC", DefaultOrderTopic),
		OtelEndpoint:   os.Getenv("OTEL_ENDPOINT"),
		OtelAuthHeader: os.Getenv("OTEL_AUTH_HEADER"),
	}

	if cfg.GRPCPort == cfg.HTTPPort {
		return nil, fmt.Errorf("GRPC_PORT and HTTP_PORT must differ, both are %d", cfg.GRPCPort)
	}
	return cfg, nil
}

// KafkaEnabled reports whether order events go to a broker.
func (c *Config) KafkaEnabled() bool { return c.KafkaBroker != "" }

// TracingEnabled reports whether spans are exported.
func (c *Config) TracingEnabled() bool { return c.OtelEndpoint != "" }

func portFromEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s must be between 1 and 65535, got %d", key, port)
	}
	return port, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

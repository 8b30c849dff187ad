package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/amishk599/lexiroute/internal/config"
)

func TestInitTracing_NoEndpointIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitTracing(context.Background(), config.TracingConfig{ServiceName: "lexiroute"}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_WithEndpointInstallsProvider(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	// The gRPC exporter dials lazily, so no collector needs to be listening.
	shutdown, err := InitTracing(context.Background(), config.TracingConfig{
		Endpoint:    "localhost:4317",
		Insecure:    true,
		ServiceName: "lexiroute",
		SampleRate:  1,
	}, "dev")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.NotEqual(t, before, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestServiceResource(t *testing.T) {
	res := serviceResource("lexiroute", "1.2.3")

	assert.Equal(t, semconv.SchemaURL, res.SchemaURL())
	attrs := res.Attributes()
	assert.Contains(t, attrs, attribute.String("service.name", "lexiroute"))
	assert.Contains(t, attrs, attribute.String("service.version", "1.2.3"))
}

func TestSampler(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{1, "AlwaysOnSampler"},
		{1.5, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased"},
	}
	for _, tc := range cases {
		got := Sampler(tc.rate).Description()
		assert.True(t, strings.HasPrefix(got, tc.want), "rate %v: got %q", tc.rate, got)
	}
}

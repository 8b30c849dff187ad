// Package dispatch routes an analysis request to its provider adapter and
// normalizes the returned text.
package dispatch

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amishk599/lexiroute/internal/model"
	"github.com/amishk599/lexiroute/internal/normalize"
)

const tracerName = "github.com/amishk599/lexiroute/internal/dispatch"

// ProviderLookup resolves a provider identifier to its adapter.
type ProviderLookup interface {
	Lookup(providerID string) (model.ProviderAdapter, bool)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTracerProvider sets the provider used to create dispatch spans. The
// global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) {
		d.tracer = tp.Tracer(tracerName)
	}
}

// Dispatcher implements model.Analyzer. It holds no per-request state.
type Dispatcher struct {
	providers ProviderLookup
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given provider set. A nil logger
// discards output.
func NewDispatcher(providers ProviderLookup, logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Dispatcher{
		providers: providers,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch validates req, invokes the selected provider once and normalizes its
// output. The first failure is returned unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, req model.AnalysisRequest) (model.AnalysisResult, error) {
	ctx, span := d.tracer.Start(ctx, "dispatch.Analyze",
		trace.WithAttributes(
			attribute.String("provider", req.Provider),
			attribute.String("model", req.Model),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := d.dispatch(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.kind", string(model.KindOf(err))))
		d.logger.Debug("dispatch failed",
			"provider", req.Provider,
			"model", req.Model,
			"kind", model.KindOf(err),
			"error", err,
		)
		return model.AnalysisResult{}, err
	}

	span.SetAttributes(attribute.Int("keywords", len(result.Keywords)))
	d.logger.Debug("dispatch complete",
		"provider", req.Provider,
		"model", req.Model,
		"keywords", len(result.Keywords),
		"duration", time.Since(start),
	)
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, req model.AnalysisRequest) (model.AnalysisResult, error) {
	if req.APIKey == "" {
		return model.AnalysisResult{}, &model.ValidationError{Message: "API key is required"}
	}
	if req.Prompt == "" {
		return model.AnalysisResult{}, &model.ValidationError{Message: "Prompt is required"}
	}

	adapter, ok := d.providers.Lookup(req.Provider)
	if !ok {
		return model.AnalysisResult{}, &model.UnknownProviderError{Provider: req.Provider}
	}

	raw, err := adapter.Invoke(ctx, req.APIKey, req.Model, req.Prompt)
	if err != nil {
		return model.AnalysisResult{}, err
	}

	return normalize.Normalize(raw)
}

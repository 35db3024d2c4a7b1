package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/NetRider88/POSV2"

// Tracer provides OpenTelemetry tracing for the validation engine.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new engine tracer.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// StartImageCheckSpan starts a new span for one image fetch-and-measure
// operation.
func (t *Tracer) StartImageCheckSpan(ctx context.Context, url string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "posv2.image_check",
		trace.WithAttributes(
			attribute.String("posv2.image_url", url),
		),
	)
}

// EndImageCheckSpan ends an image check span with result attributes.
func (t *Tracer) EndImageCheckSpan(span trace.Span, valid bool, width, height int, errCount int) {
	span.SetAttributes(
		attribute.Bool("posv2.image_valid", valid),
		attribute.Int("posv2.image_width", width),
		attribute.Int("posv2.image_height", height),
		attribute.Int("posv2.image_errors", errCount),
	)
	span.End()
}

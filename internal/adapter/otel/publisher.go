package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dspatoulas/urid/internal/domain"
)

var _ domain.EventPublisher = (*TracingPublisher)(nil)

// TracingPublisher decorates a domain.EventPublisher with a span per publish.
// The span carries the same resource snapshot the event itself carries, so a
// trace can be correlated with the queued job without loading the resource.
type TracingPublisher struct {
	next   domain.EventPublisher
	tracer trace.Tracer
}

func NewTracingPublisher(next domain.EventPublisher) *TracingPublisher {
	return &TracingPublisher{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (p *TracingPublisher) Publish(ctx context.Context, event domain.Event, resource domain.Resource) error {
	attrs := []attribute.KeyValue{
		attribute.String("event.type", string(event)),
		attribute.String("resource.id", resource.ID.String()),
		attribute.String("resource.kind", resource.Kind()),
		attribute.String("resource.name", resource.Name),
		attribute.String("resource.status", string(resource.Status)),
	}

	ctx, span := p.tracer.Start(ctx, "EventPublisher.Publish", trace.WithAttributes(attrs...))
	defer span.End()

	if err := p.next.Publish(ctx, event, resource); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

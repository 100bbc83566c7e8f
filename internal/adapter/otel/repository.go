package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dspatoulas/urid"

	"github.com/dspatoulas/urid/internal/domain"
)

const tracerName = "github.com/dspatoulas/urid/internal/adapter/otel"

// TracingRepository wraps a domain.ResourceRepository with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
type TracingRepository struct {
	next   domain.ResourceRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRepository implements domain.ResourceRepository.
var _ domain.ResourceRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.ResourceRepository) *TracingRepository {
	return &TracingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRepository) Create(ctx context.Context, resource domain.Resource) error {
	ctx, span := r.tracer.Start(ctx, "ResourceRepository.Create",
		trace.WithAttributes(
			attribute.String("resource.id", resource.ID.String()),
			attribute.String("resource.kind", resource.Kind()),
			attribute.String("resource.name", resource.Name),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, resource)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRepository) GetByID(ctx context.Context, id urid.ResourceID) (domain.Resource, error) {
	ctx, span := r.tracer.Start(ctx, "ResourceRepository.GetByID",
		trace.WithAttributes(attribute.String("resource.id", id.String())),
	)
	defer span.End()

	resource, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resource, err
}

func (r *TracingRepository) GetByName(ctx context.Context, name string) (domain.Resource, error) {
	ctx, span := r.tracer.Start(ctx, "ResourceRepository.GetByName",
		trace.WithAttributes(attribute.String("resource.name", name)),
	)
	defer span.End()

	resource, err := r.next.GetByName(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return resource, err
}

func (r *TracingRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Resource, error) {
	ctx, span := r.tracer.Start(ctx, "ResourceRepository.List",
		trace.WithAttributes(
			attribute.Int("filter.limit", filter.Limit),
			attribute.Int("filter.offset", filter.Offset),
		),
	)
	defer span.End()

	if filter.Kind != nil {
		span.SetAttributes(attribute.String("filter.kind", *filter.Kind))
	}
	if filter.Status != nil {
		span.SetAttributes(attribute.String("filter.status", string(*filter.Status)))
	}

	resources, err := r.next.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(resources)))
	}
	return resources, err
}

func (r *TracingRepository) Update(ctx context.Context, resource domain.Resource) error {
	ctx, span := r.tracer.Start(ctx, "ResourceRepository.Update",
		trace.WithAttributes(
			attribute.String("resource.id", resource.ID.String()),
			attribute.String("resource.status", string(resource.Status)),
		),
	)
	defer span.End()

	err := r.next.Update(ctx, resource)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

package domain

import (
	"context"

	"github.com/dspatoulas/urid"
)

// ResourceRepository defines the persistence contract for resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource Resource) error
	GetByID(ctx context.Context, id urid.ResourceID) (Resource, error)
	GetByName(ctx context.Context, name string) (Resource, error)
	List(ctx context.Context, filter ListFilter) ([]Resource, error)
	Update(ctx context.Context, resource Resource) error
}

// ListFilter holds optional criteria for listing resources.
type ListFilter struct {
	Kind   *string
	Status *Status
	Limit  int
	Offset int
}

// EventPublisher defines the contract for emitting domain events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, resource Resource) error
}

// TransitionValidator defines the contract for lifecycle transition checks.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}

package app

import (
	"context"
	"fmt"

	"github.com/dspatoulas/urid"

	"github.com/dspatoulas/urid/internal/domain"
)

// RegistryService orchestrates resource registration and lifecycle operations.
type RegistryService struct {
	repo      domain.ResourceRepository
	publisher domain.EventPublisher
	validator domain.TransitionValidator
}

// NewRegistryService creates a service with the given adapters.
func NewRegistryService(repo domain.ResourceRepository, publisher domain.EventPublisher, validator domain.TransitionValidator) *RegistryService {
	return &RegistryService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
	}
}

// Register mints an identifier for the given kind, persists the resource,
// and publishes a registration event. The kind must be a valid 4-character
// resource type tag; urid.New enforces that.
func (s *RegistryService) Register(ctx context.Context, kind, name string) (domain.Resource, error) {
	// Check name uniqueness before minting.
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return domain.Resource{}, &domain.NameConflictError{Name: name}
	}

	id, err := urid.New(kind)
	if err != nil {
		return domain.Resource{}, fmt.Errorf("minting resource id: %w", err)
	}

	resource := domain.NewResource(id, name)

	if err := s.repo.Create(ctx, resource); err != nil {
		return domain.Resource{}, fmt.Errorf("creating resource: %w", err)
	}

	if err := s.publisher.Publish(ctx, domain.EventRegistered, resource); err != nil {
		return domain.Resource{}, fmt.Errorf("publishing registration event: %w", err)
	}

	return resource, nil
}

// GetByID returns a resource by its identifier.
func (s *RegistryService) GetByID(ctx context.Context, id urid.ResourceID) (domain.Resource, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByName returns a resource by its unique name.
func (s *RegistryService) GetByName(ctx context.Context, name string) (domain.Resource, error) {
	return s.repo.GetByName(ctx, name)
}

// List returns resources matching the given filter.
func (s *RegistryService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Resource, error) {
	return s.repo.List(ctx, filter)
}

// Transition applies a lifecycle event to a resource, changing its state.
func (s *RegistryService) Transition(ctx context.Context, id urid.ResourceID, event domain.Event) (domain.Resource, error) {
	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Resource{}, err
	}

	newStatus, err := s.validator.Apply(ctx, resource.Status, event)
	if err != nil {
		return domain.Resource{}, err
	}

	resource.Status = newStatus

	if err := s.repo.Update(ctx, resource); err != nil {
		return domain.Resource{}, fmt.Errorf("updating resource: %w", err)
	}

	if err := s.publisher.Publish(ctx, event, resource); err != nil {
		return domain.Resource{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return resource, nil
}

package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/dspatoulas/urid/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// EventJobArgs carries the data needed to process a domain event asynchronously.
// River serializes this as JSON into its job queue table. It includes a snapshot
// of the resource at the time the event was published, so the worker never needs
// to query the database. The identifier travels in its 30-character text form.
type EventJobArgs struct {
	Event      string `json:"event"`
	ResourceID string `json:"resource_id"`
	ResourceKind string `json:"kind"`
	Name       string `json:"name"`
	Status     string `json:"status"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (EventJobArgs) Kind() string { return "resource.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a domain event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, resource domain.Resource) error {
	_, err := p.client.Insert(ctx, EventJobArgs{
		Event:      string(event),
		ResourceID: resource.ID.String(),
		ResourceKind: resource.Kind(),
		Name:       resource.Name,
		Status:     string(resource.Status),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing event job: %w", err)
	}
	return nil
}

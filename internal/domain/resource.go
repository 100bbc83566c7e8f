package domain

import (
	"time"

	"github.com/dspatoulas/urid"
)

// Status represents the lifecycle state of a registered resource.
type Status string

const (
	StatusProvisioning Status = "provisioning"
	StatusActive       Status = "active"
	StatusArchived     Status = "archived"
	StatusPurged       Status = "purged"
)

// Event represents an action that triggers a state transition.
type Event string

const (
	// EventRegistered is publish-only: it announces a freshly minted
	// resource and moves no state, so it has no entry in Transitions.
	EventRegistered Event = "registered"

	EventActivate Event = "activate"
	EventArchive  Event = "archive"
	EventRestore  Event = "restore"
	EventPurge    Event = "purge"
)

// Transition defines a valid state change: an event moves a resource from Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions defines all valid state changes in the resource lifecycle.
// This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventActivate, Src: StatusProvisioning, Dst: StatusActive},
	{Event: EventArchive, Src: StatusActive, Dst: StatusArchived},
	{Event: EventRestore, Src: StatusArchived, Dst: StatusActive},
	{Event: EventPurge, Src: StatusArchived, Dst: StatusPurged},
}

// Resource is the core domain entity: a registered instance identified by a
// typed resource identifier. The kind (the 4-character tag) lives inside the
// ID and is never stored separately.
type Resource struct {
	ID        urid.ResourceID
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewResource creates a resource in the initial "provisioning" state.
func NewResource(id urid.ResourceID, name string) Resource {
	now := time.Now().UTC()
	return Resource{
		ID:        id,
		Name:      name,
		Status:    StatusProvisioning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Kind returns the resource type tag carried by the identifier.
func (r Resource) Kind() string {
	return r.ID.Resource()
}

package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dspatoulas/urid"

	"github.com/dspatoulas/urid/internal/app"
	"github.com/dspatoulas/urid/internal/domain"
)

// --- Mocks ---

type mockRepo struct {
	resources map[urid.ResourceID]domain.Resource
	names     map[string]domain.Resource
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		resources: make(map[urid.ResourceID]domain.Resource),
		names:     make(map[string]domain.Resource),
	}
}

func (m *mockRepo) Create(_ context.Context, r domain.Resource) error {
	m.resources[r.ID] = r
	m.names[r.Name] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id urid.ResourceID) (domain.Resource, error) {
	r, ok := m.resources[id]
	if !ok {
		return domain.Resource{}, domain.ErrResourceNotFound
	}
	return r, nil
}

func (m *mockRepo) GetByName(_ context.Context, name string) (domain.Resource, error) {
	r, ok := m.names[name]
	if !ok {
		return domain.Resource{}, domain.ErrResourceNotFound
	}
	return r, nil
}

func (m *mockRepo) List(_ context.Context, _ domain.ListFilter) ([]domain.Resource, error) {
	out := make([]domain.Resource, 0, len(m.resources))
	for _, r := range m.resources {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, r domain.Resource) error {
	m.resources[r.ID] = r
	m.names[r.Name] = r
	return nil
}

type mockPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	event    domain.Event
	resource domain.Resource
}

func (m *mockPublisher) Publish(_ context.Context, e domain.Event, r domain.Resource) error {
	m.events = append(m.events, publishedEvent{event: e, resource: r})
	return nil
}

// tableValidator walks domain.Transitions directly, keeping app tests
// independent of the FSM adapter.
type tableValidator struct{}

func (v *tableValidator) Apply(_ context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	for _, tr := range domain.Transitions {
		if tr.Event == event && tr.Src == current {
			return tr.Dst, nil
		}
	}
	return "", &domain.TransitionError{Event: event, Current: current}
}

func newService() (*app.RegistryService, *mockRepo, *mockPublisher) {
	repo := newMockRepo()
	pub := &mockPublisher{}
	return app.NewRegistryService(repo, pub, &tableValidator{}), repo, pub
}

// --- Tests ---

func TestRegister_Success(t *testing.T) {
	svc, repo, pub := newService()

	resource, err := svc.Register(context.Background(), "bckt", "primary-bucket")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resource.Name != "primary-bucket" {
		t.Errorf("Name = %q, want %q", resource.Name, "primary-bucket")
	}
	if resource.Status != domain.StatusProvisioning {
		t.Errorf("Status = %q, want %q", resource.Status, domain.StatusProvisioning)
	}
	if resource.Kind() != "BCKT" {
		t.Errorf("Kind() = %q, want %q (kind is uppercased at mint time)", resource.Kind(), "BCKT")
	}

	// Verify it was persisted.
	stored, err := repo.GetByID(context.Background(), resource.ID)
	if err != nil {
		t.Fatalf("resource not found in repo: %v", err)
	}
	if stored.Name != "primary-bucket" {
		t.Errorf("stored Name = %q, want %q", stored.Name, "primary-bucket")
	}

	// Verify event was published.
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	if pub.events[0].event != domain.EventRegistered {
		t.Errorf("event = %q, want %q", pub.events[0].event, domain.EventRegistered)
	}
}

func TestRegister_InvalidKind(t *testing.T) {
	svc, _, pub := newService()

	_, err := svc.Register(context.Background(), "BUCKET", "primary-bucket")

	var typeErr *urid.InvalidResourceTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected InvalidResourceTypeError, got %v", err)
	}
	if typeErr.Value != "BUCKET" {
		t.Errorf("Value = %q, want %q", typeErr.Value, "BUCKET")
	}
	if len(pub.events) != 0 {
		t.Errorf("no event should be published, got %d", len(pub.events))
	}
}

func TestRegister_DuplicateName(t *testing.T) {
	svc, _, _ := newService()

	if _, err := svc.Register(context.Background(), "BCKT", "primary-bucket"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), "VOLM", "primary-bucket")
	var nameErr *domain.NameConflictError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected NameConflictError, got %v", err)
	}
	if nameErr.Name != "primary-bucket" {
		t.Errorf("name = %q, want %q", nameErr.Name, "primary-bucket")
	}
}

func TestRegister_DistinctIDs(t *testing.T) {
	svc, _, _ := newService()

	a, err := svc.Register(context.Background(), "BCKT", "bucket-a")
	if err != nil {
		t.Fatalf("register a: %v", err)
	}
	b, err := svc.Register(context.Background(), "BCKT", "bucket-b")
	if err != nil {
		t.Fatalf("register b: %v", err)
	}

	if a.ID.Resource() != b.ID.Resource() {
		t.Errorf("kinds differ: %q vs %q", a.ID.Resource(), b.ID.Resource())
	}
	if a.ID == b.ID {
		t.Errorf("two registrations share an ID: %s", a.ID)
	}
}

func TestTransition_HappyPath(t *testing.T) {
	svc, _, _ := newService()

	resource, _ := svc.Register(context.Background(), "BCKT", "primary-bucket")

	// provisioning → active
	resource, err := svc.Transition(context.Background(), resource.ID, domain.EventActivate)
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if resource.Status != domain.StatusActive {
		t.Errorf("Status = %q, want %q", resource.Status, domain.StatusActive)
	}

	// active → archived
	resource, err = svc.Transition(context.Background(), resource.ID, domain.EventArchive)
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if resource.Status != domain.StatusArchived {
		t.Errorf("Status = %q, want %q", resource.Status, domain.StatusArchived)
	}

	// archived → active
	resource, err = svc.Transition(context.Background(), resource.ID, domain.EventRestore)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if resource.Status != domain.StatusActive {
		t.Errorf("Status = %q, want %q", resource.Status, domain.StatusActive)
	}
}

func TestTransition_InvalidEvent(t *testing.T) {
	svc, _, _ := newService()

	resource, _ := svc.Register(context.Background(), "BCKT", "primary-bucket")

	// Can't archive from provisioning.
	_, err := svc.Transition(context.Background(), resource.ID, domain.EventArchive)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Event != domain.EventArchive {
		t.Errorf("event = %q, want %q", trErr.Event, domain.EventArchive)
	}
	if trErr.Current != domain.StatusProvisioning {
		t.Errorf("current = %q, want %q", trErr.Current, domain.StatusProvisioning)
	}
}

func TestTransition_NotFound(t *testing.T) {
	svc, _, _ := newService()

	missing, err := urid.New("BCKT")
	if err != nil {
		t.Fatalf("minting id: %v", err)
	}

	_, err = svc.Transition(context.Background(), missing, domain.EventActivate)
	if !errors.Is(err, domain.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
}

package fsm_test

import (
	"context"
	"errors"
	"testing"

	adapter "github.com/dspatoulas/urid/internal/adapter/fsm"
	"github.com/dspatoulas/urid/internal/domain"
)

func TestValidator_AllTransitions(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, tr := range domain.Transitions {
		dst, err := v.Apply(ctx, tr.Src, tr.Event)
		if err != nil {
			t.Errorf("Apply(%q, %q) unexpected error: %v", tr.Src, tr.Event, err)
			continue
		}
		if dst != tr.Dst {
			t.Errorf("Apply(%q, %q) = %q, want %q", tr.Src, tr.Event, dst, tr.Dst)
		}
	}
}

func TestValidator_InvalidTransition(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	// Can't archive from "provisioning" state.
	_, err := v.Apply(ctx, domain.StatusProvisioning, domain.EventArchive)
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

func TestValidator_FullLifecycle(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	steps := []struct {
		from  domain.Status
		event domain.Event
		want  domain.Status
	}{
		{domain.StatusProvisioning, domain.EventActivate, domain.StatusActive},
		{domain.StatusActive, domain.EventArchive, domain.StatusArchived},
		{domain.StatusArchived, domain.EventRestore, domain.StatusActive},
		{domain.StatusActive, domain.EventArchive, domain.StatusArchived},
		{domain.StatusArchived, domain.EventPurge, domain.StatusPurged},
	}

	for _, step := range steps {
		got, err := v.Apply(ctx, step.from, step.event)
		if err != nil {
			t.Fatalf("Apply(%q, %q) error: %v", step.from, step.event, err)
		}
		if got != step.want {
			t.Errorf("Apply(%q, %q) = %q, want %q", step.from, step.event, got, step.want)
		}
	}
}

func TestValidator_PurgedIsTerminal(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, event := range []domain.Event{domain.EventActivate, domain.EventArchive, domain.EventRestore, domain.EventPurge} {
		_, err := v.Apply(ctx, domain.StatusPurged, event)
		var trErr *domain.TransitionError
		if !errors.As(err, &trErr) {
			t.Errorf("Apply(purged, %q) = %v, want TransitionError", event, err)
		}
	}
}

func TestValidator_RegisteredIsNotATransition(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	// The publish-only registration event must never move state.
	_, err := v.Apply(ctx, domain.StatusProvisioning, domain.EventRegistered)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Errorf("expected TransitionError, got %v", err)
	}
}

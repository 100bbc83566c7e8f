package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/dspatoulas/urid/internal/domain"
)

var _ domain.TransitionValidator = (*Validator)(nil)

// Validator checks lifecycle events against the domain transition table
// using a looplab state machine. The library tracks current state
// internally, so Apply builds a fresh machine seeded with the resource's
// status instead of sharing one across calls.
type Validator struct {
	events []loopfsm.EventDesc
}

func New() *Validator {
	return &Validator{events: eventTable()}
}

// eventTable renders domain.Transitions as looplab event descriptors.
// Each lifecycle event has a single destination status; source statuses
// are collected per event.
func eventTable() []loopfsm.EventDesc {
	index := make(map[domain.Event]int)
	var out []loopfsm.EventDesc

	for _, t := range domain.Transitions {
		i, ok := index[t.Event]
		if !ok {
			i = len(out)
			index[t.Event] = i
			out = append(out, loopfsm.EventDesc{Name: string(t.Event), Dst: string(t.Dst)})
		}
		out[i].Src = append(out[i].Src, string(t.Src))
	}
	return out
}

// Apply reports the status reached by firing event from current. Events the
// table does not allow from that status yield a domain.TransitionError.
func (v *Validator) Apply(ctx context.Context, current domain.Status, event domain.Event) (domain.Status, error) {
	machine := loopfsm.NewFSM(string(current), v.events, nil)

	err := machine.Event(ctx, string(event))
	if err == nil {
		return domain.Status(machine.Current()), nil
	}

	var invalidEvent loopfsm.InvalidEventError
	var noTransition loopfsm.NoTransitionError
	if errors.As(err, &invalidEvent) || errors.As(err, &noTransition) {
		return "", &domain.TransitionError{Event: event, Current: current}
	}
	return "", err
}

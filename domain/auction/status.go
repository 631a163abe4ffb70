package auction

import (
	"fmt"

	"github.com/x-xyz/goauction/domain"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusActive    Status = "ACTIVE"
	StatusEnded     Status = "ENDED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusEnded, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports statuses no transition leaves
func (s Status) IsTerminal() bool {
	return s == StatusEnded || s == StatusCancelled
}

// Transition is a named lifecycle step
type Transition string

const (
	TransitionStart  Transition = "start"
	TransitionEnd    Transition = "end"
	TransitionCancel Transition = "cancel"
)

type edge struct {
	from []Status
	to   Status
}

// transitions is the only place allowed status changes are declared
var transitions = map[Transition]edge{
	TransitionStart:  {from: []Status{StatusDraft}, to: StatusActive},
	TransitionEnd:    {from: []Status{StatusActive}, to: StatusEnded},
	TransitionCancel: {from: []Status{StatusDraft, StatusActive}, to: StatusCancelled},
}

// Apply returns the status reached from s through t, or an invalid state error
func (s Status) Apply(t Transition) (Status, error) {
	e, ok := transitions[t]
	if !ok {
		return s, domain.NewInvalidStateError(fmt.Sprintf("unknown transition %q", t))
	}
	for _, from := range e.from {
		if s == from {
			return e.to, nil
		}
	}
	return s, domain.NewInvalidStateError(fmt.Sprintf("cannot %s auction in status %s", t, s))
}

// Can reports whether t is allowed from s
func (s Status) Can(t Transition) bool {
	_, err := s.Apply(t)
	return err == nil
}

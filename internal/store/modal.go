package store

import (
	"context"
	"sync"
)

// Outcome is the resolution of a modal prompt.
type Outcome int

const (
	// Confirmed means the user took the confirm path.
	Confirmed Outcome = iota
	// Cancelled means the user took the cancel path.
	Cancelled
	// Dismissed means the prompt was superseded by a newer one before the
	// user answered. Callers treat it as a non-answer, distinct from an
	// explicit cancel.
	Dismissed
)

// ModalMode distinguishes confirm prompts from plain alerts.
type ModalMode string

const (
	ModeConfirm ModalMode = "confirm"
	ModeAlert   ModalMode = "alert"
)

// Modal is the renderable state of the active prompt.
type Modal struct {
	Title        string
	Message      string
	Mode         ModalMode
	ConfirmLabel string
	CancelLabel  string
}

// Decision is a single-resolution handle for a pending prompt. It resolves
// exactly once, through Resolve on the store or by being superseded.
type Decision struct {
	once    sync.Once
	done    chan struct{}
	outcome Outcome
}

func newDecision() *Decision {
	return &Decision{done: make(chan struct{})}
}

func (d *Decision) resolve(o Outcome) {
	d.once.Do(func() {
		d.outcome = o
		close(d.done)
	})
}

// Wait blocks until the prompt resolves or ctx expires.
func (d *Decision) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-d.done:
		return d.outcome, nil
	case <-ctx.Done():
		return Dismissed, ctx.Err()
	}
}

// ModalStore holds at most one pending prompt. Issuing a new prompt while
// one is outstanding resolves the prior handle as Dismissed and replaces the
// renderable state, so only one modal is ever visible.
type ModalStore struct {
	mu       sync.Mutex
	active   *Modal
	decision *Decision
}

// NewModalStore creates an empty modal store.
func NewModalStore() *ModalStore {
	return &ModalStore{}
}

// Confirm opens a confirm prompt and returns its decision handle.
func (s *ModalStore) Confirm(message, title string) *Decision {
	return s.open(Modal{
		Title:        title,
		Message:      message,
		Mode:         ModeConfirm,
		ConfirmLabel: "OK",
		CancelLabel:  "Cancel",
	})
}

// Alert opens an acknowledge-only prompt and returns its decision handle.
func (s *ModalStore) Alert(message, title string) *Decision {
	return s.open(Modal{
		Title:        title,
		Message:      message,
		Mode:         ModeAlert,
		ConfirmLabel: "OK",
	})
}

func (s *ModalStore) open(m Modal) *Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.decision != nil {
		s.decision.resolve(Dismissed)
	}
	d := newDecision()
	s.active = &m
	s.decision = d
	return d
}

// Resolve answers the active prompt and closes the modal. Resolving with no
// active prompt is a no-op.
func (s *ModalStore) Resolve(confirmed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.decision == nil {
		return
	}
	if confirmed {
		s.decision.resolve(Confirmed)
	} else {
		s.decision.resolve(Cancelled)
	}
	s.active = nil
	s.decision = nil
}

// Active returns the renderable prompt state, or nil when no modal is open.
func (s *ModalStore) Active() *Modal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	m := *s.active
	return &m
}

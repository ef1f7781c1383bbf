package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastKind classifies a toast for rendering.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
	ToastInfo    ToastKind = "info"
)

// Default lifetimes, matching the web client: errors linger a bit longer.
const (
	DefaultToastTTL = 3 * time.Second
	ErrorToastTTL   = 4 * time.Second
)

// Toast is one transient notification. A zero TTL means the toast stays
// until explicitly dismissed.
type Toast struct {
	ID      uuid.UUID
	Kind    ToastKind
	Title   string
	Message string
	TTL     time.Duration
}

// ToastStore keeps the ordered set of live toasts. Expired or dismissed
// toasts are removed; removal is idempotent so an expiry racing an explicit
// dismissal is harmless.
type ToastStore struct {
	mu     sync.Mutex
	toasts []Toast
	timers map[uuid.UUID]*time.Timer
}

// NewToastStore creates an empty toast store.
func NewToastStore() *ToastStore {
	return &ToastStore{timers: make(map[uuid.UUID]*time.Timer)}
}

// Add assigns the toast a unique id, defaults the kind to info, and appends
// it in insertion order. A positive TTL schedules autonomous removal. It
// returns the assigned id.
func (s *ToastStore) Add(t Toast) uuid.UUID {
	t.ID = uuid.New()
	if t.Kind == "" {
		t.Kind = ToastInfo
	}

	s.mu.Lock()
	s.toasts = append(s.toasts, t)
	if t.TTL > 0 {
		id := t.ID
		s.timers[id] = time.AfterFunc(t.TTL, func() { s.Remove(id) })
	}
	s.mu.Unlock()
	return t.ID
}

// Remove dismisses a toast. Removing an unknown or already-removed id is a
// no-op.
func (s *ToastStore) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			break
		}
	}
}

// List returns the live toasts in insertion order.
func (s *ToastStore) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// Success adds a success toast with the default lifetime.
func (s *ToastStore) Success(message string) uuid.UUID {
	return s.Add(Toast{Kind: ToastSuccess, Title: "Success", Message: message, TTL: DefaultToastTTL})
}

// Error adds an error toast; errors linger longer than the default.
func (s *ToastStore) Error(message string) uuid.UUID {
	return s.Add(Toast{Kind: ToastError, Title: "Error", Message: message, TTL: ErrorToastTTL})
}

// Warning adds a warning toast with the default lifetime.
func (s *ToastStore) Warning(message string) uuid.UUID {
	return s.Add(Toast{Kind: ToastWarning, Title: "Warning", Message: message, TTL: DefaultToastTTL})
}

// Info adds an info toast with the default lifetime.
func (s *ToastStore) Info(message string) uuid.UUID {
	return s.Add(Toast{Kind: ToastInfo, Title: "Info", Message: message, TTL: DefaultToastTTL})
}

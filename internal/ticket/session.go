package ticket

import (
	"sync"
	"time"
)

// State tracks a ticket through its lifecycle. Claim and priority are
// annotations, not states.
type State int

const (
	StateOpen State = iota
	StateProcessed
	StateClosing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateProcessed:
		return "processed"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Session is the in-memory record of a ticket's order details, keyed by the
// ticket channel. It lives only while the process runs; the ticket number is
// a display label, never a key.
type Session struct {
	TicketNumber  int
	CustomerID    string
	CustomerTag   string
	ItemType      string
	Quantity      string
	PaymentMethod string
	CreatedAt     time.Time
	State         State
	ClaimedBy     string
	ClosedBy      string
}

// Registry maps ticket channel IDs to their in-flight sessions. All reads
// return copies; all mutation goes through Registry methods so concurrent
// gateway handlers never share a Session pointer.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Put(channelID string, s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[channelID] = &s
}

func (r *Registry) Get(channelID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[channelID]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

func (r *Registry) Delete(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, channelID)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// mutate runs fn on the live session under the registry lock. Reports
// whether a session existed.
func (r *Registry) mutate(channelID string, fn func(*Session)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[channelID]
	if !ok {
		return false
	}
	fn(s)
	return true
}

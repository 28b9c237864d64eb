package feedback

import (
	"sync"

	"github.com/google/uuid"
)

// Ticket identifies one submitted request.
type Ticket struct {
	ID      string
	Request Request
}

// Session tracks the current request of a single user. Each submission gets
// a fresh ticket; a result is only accepted for the latest ticket, so a slow
// earlier reply can never overwrite a newer one.
type Session struct {
	mu       sync.Mutex
	current  string
	inFlight bool
	last     *Request
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{}
}

// Begin issues a ticket for req and makes it the current one. Any ticket
// issued earlier becomes stale.
func (s *Session) Begin(req Request) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := Ticket{ID: uuid.NewString(), Request: req}
	s.current = t.ID
	s.inFlight = true
	r := req
	s.last = &r
	return t
}

// Complete marks t as answered. It returns false for a stale ticket, whose
// result must be discarded.
func (s *Session) Complete(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isCurrent(t) {
		return false
	}
	s.inFlight = false
	return true
}

// isCurrent reports whether t is the latest issued ticket. s.mu must be held.
func (s *Session) isCurrent(t Ticket) bool {
	return t.ID != "" && t.ID == s.current
}

// InFlight reports whether the current ticket is still awaiting its reply.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// LastRequest returns the parameters of the most recent submission, used to
// refine the feedback with the same settings.
func (s *Session) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Request{}, false
	}
	return *s.last, true
}

package guide

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hyperjump/erabu/internal/models"
)

// Session is one buying-guide conversation. Follow-up turns that do not
// change what should be retrieved reuse the previous turn's plan and
// results instead of re-running retrieval.
type Session struct {
	ID string `json:"id"`

	mu    sync.Mutex
	turns []Turn
}

// NewSession creates a session with a fresh identifier.
func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// AddTurn appends a completed turn.
func (s *Session) AddTurn(turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// History returns a copy of the turns so far.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// LastTurn returns the most recent turn, or nil.
func (s *Session) LastTurn() *Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.turns) == 0 {
		return nil
	}
	t := s.turns[len(s.turns)-1]
	return &t
}

// NeedsRetrieval reports whether plan differs from the previous turn's plan
// in any retrieval-relevant field. A first turn always retrieves.
func (s *Session) NeedsRetrieval(plan *models.BuyingGuidePlan) bool {
	last := s.LastTurn()
	if last == nil || last.Plan == nil {
		return true
	}
	return !retrievalEquivalent(last.Plan, plan)
}

// retrievalEquivalent compares only the fields the filter and scorer read.
// Notes and the raw query may change without invalidating cached results.
func retrievalEquivalent(a, b *models.BuyingGuidePlan) bool {
	if (a.Budget == nil) != (b.Budget == nil) {
		return false
	}
	if a.Budget != nil && *a.Budget != *b.Budget {
		return false
	}
	return a.FlexOrDefault() == b.FlexOrDefault() &&
		a.MinReviewsOrDefault() == b.MinReviewsOrDefault() &&
		equalStrings(a.MustHaveKeywords, b.MustHaveKeywords) &&
		equalStrings(a.BoostKeywords, b.BoostKeywords)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Manager tracks live sessions by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers and returns a new session.
func (m *Manager) Create() *Session {
	s := NewSession()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session: %s", id)
	}
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

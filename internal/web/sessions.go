package web

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/talentquiz/internal/insight"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/talent"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("web: session not found")

// Entry is a snapshot of one browser quiz.
type Entry struct {
	State      session.State
	Respondent string
	Insight    *insight.Report
}

type entry struct {
	Entry
	touched time.Time
}

// SessionManager keeps in-progress quizzes in memory. Sessions idle for
// longer than the TTL are evicted the next time the manager is used.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*entry
}

// NewSessionManager creates a manager with the given idle TTL.
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Create starts a new quiz and returns its first state.
func (m *SessionManager) Create(variant talent.Variant, respondent string) session.State {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictLocked(now)

	st := session.New(uuid.NewString(), variant, now)
	m.sessions[st.ID] = &entry{
		Entry:   Entry{State: st, Respondent: respondent},
		touched: now,
	}
	return st
}

// Get returns the session with id.
func (m *SessionManager) Get(id string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictLocked(now)

	e, ok := m.sessions[id]
	if !ok {
		return Entry{}, ErrSessionNotFound
	}
	e.touched = now
	return e.Entry, nil
}

// Update applies fn to the session's state and stores the result. The
// stored state is left unchanged when fn fails. Both the previous and the
// new state are returned.
func (m *SessionManager) Update(id string, fn func(session.State, time.Time) (session.State, error)) (prev, next session.State, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.evictLocked(now)

	e, ok := m.sessions[id]
	if !ok {
		return session.State{}, session.State{}, ErrSessionNotFound
	}
	prev = e.State
	next, err = fn(prev, now)
	if err != nil {
		return prev, prev, err
	}
	if next.Phase != prev.Phase || next.StartedAt != prev.StartedAt {
		e.Insight = nil
	}
	e.State = next
	e.touched = now
	return prev, next, nil
}

// SetInsight caches a talent report for the session.
func (m *SessionManager) SetInsight(id string, r *insight.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		e.Insight = r
	}
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked(m.now())
	return len(m.sessions)
}

func (m *SessionManager) evictLocked(now time.Time) {
	for id, e := range m.sessions {
		if now.Sub(e.touched) > m.ttl {
			delete(m.sessions, id)
		}
	}
}

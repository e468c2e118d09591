package configurator

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/pkg/errors"
)

// Manager is the in-memory registry of live configuration sessions. Sessions
// expire after the idle TTL and the registry is capped; both bounds come from
// configuration.
type Manager struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*Session
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
}

// NewManager builds a session registry with the given idle TTL and capacity.
func NewManager(ttl time.Duration, maxSessions int) *Manager {
	return &Manager{
		sessions:    make(map[uuid.UUID]*Session),
		ttl:         ttl,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Open registers a new session in the loading state.
func (m *Manager) Open(product Product) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, errors.New(errors.CodeRateLimit, "too many open configuration sessions")
	}

	sess := newSession(product, now)
	m.sessions[sess.ID()] = sess
	return sess, nil
}

// Get returns the live session with the given ID and refreshes its idle
// timer.
func (m *Manager) Get(sessionID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)
	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "configuration session not found")
	}
	sess.touch(now)
	return sess, nil
}

// Remove drops the session from the registry. Missing IDs are ignored.
func (m *Manager) Remove(sessionID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len returns the number of registered sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweepLocked(now time.Time) {
	for id, sess := range m.sessions {
		if sess.expired(now, m.ttl) || sess.State() == StateClosed {
			delete(m.sessions, id)
		}
	}
}

package session

import (
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"

	"thelab/signup"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 30 * time.Minute

// Store maps session ids to sessions.
type Store struct {
	mu       sync.Mutex
	engine   *signup.Engine
	ttl      time.Duration
	sessions map[string]*Session
}

// NewStore returns an empty store. ttl <= 0 uses DefaultTTL.
func NewStore(engine *signup.Engine, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		engine:   engine,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Get looks up a live session.
func (st *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Create starts a new session with an empty form.
// Idle sessions are swept on the way.
func (st *Store) Create() *Session {
	s := newSession(st.engine)

	st.mu.Lock()
	st.sweepLocked(time.Now())
	st.sessions[s.ID] = s
	st.mu.Unlock()

	logger.Debug("Session created", "session", s.ID)
	return s
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := st.Get(id); ok {
		return s, false
	}
	return st.Create(), true
}

// Len returns the number of sessions held.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many went.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sweepLocked(now)
}

func (st *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Debug("Expired sessions removed", "count", removed)
	}
	return removed
}

// ContextKey is where the session middleware stores the request's session.
const ContextKey = "session"

// FromContext returns the session the middleware attached to c.
func FromContext(c rweb.Context) (*Session, bool) {
	s, ok := c.Get(ContextKey).(*Session)
	return s, ok && s != nil
}

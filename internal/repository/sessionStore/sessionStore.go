package sessionStore

import (
	"TMDBMovieBot/internal/domain"
	"context"
	"sync"

	"github.com/google/uuid"
)

// EvictionPolicy is invoked on Put with the session being replaced, if
// any. The default policy does nothing; a TTL or LRU bound can be hung
// here without touching callers.
type EvictionPolicy func(userID int64, replaced *domain.Session)

// Store owns every session record. Callers get value copies out of Get
// and mutate only through store operations.
type Store struct {
	sessions map[int64]*domain.Session
	evict    EvictionPolicy
	mu       sync.RWMutex
}

func New() *Store {
	return &Store{
		sessions: make(map[int64]*domain.Session),
		evict:    func(int64, *domain.Session) {},
	}
}

func (s *Store) SetEvictionPolicy(policy EvictionPolicy) {
	if policy == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict = policy
}

// Put replaces any existing session for the user. Replacement is total:
// candidates, index and awaiting flag all come from the new session. The
// correlation ID survives a replacement so one user's log trail stays
// joined across searches.
func (s *Store) Put(ctx context.Context, userID int64, session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UserID = userID
	old := s.sessions[userID]
	if old != nil {
		session.CorrelationID = old.CorrelationID
		session.Version = old.Version + 1
	}
	if session.CorrelationID == "" {
		session.CorrelationID = uuid.New().String()
	}
	s.sessions[userID] = &session
	s.evict(userID, old)
}

func (s *Store) Get(ctx context.Context, userID int64) (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return domain.Session{}, false
	}
	return *session, true
}

// UpdateIndex commits a navigation. It is a no-op when the session is
// gone or when its version moved past expectedVersion, which means a
// concurrent event won the race while this one was suspended on a fetch.
// The new index is clamped into the candidate range. Returns whether the
// commit happened.
func (s *Store) UpdateIndex(ctx context.Context, userID int64, newIndex int, expectedVersion uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.Version != expectedVersion {
		return false
	}
	if len(session.Candidates) == 0 {
		return false
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(session.Candidates)-1 {
		newIndex = len(session.Candidates) - 1
	}
	session.CurrentIndex = newIndex
	session.AwaitingQuery = false
	session.Version++
	return true
}

// SetAwaitingQuery flips the short-lived "waiting for a new query" step.
// When no session exists yet a bare awaiting session is created so the
// next plain-text message can be routed into the search flow.
func (s *Store) SetAwaitingQuery(ctx context.Context, userID int64, awaiting bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		if !awaiting {
			return
		}
		s.sessions[userID] = &domain.Session{
			UserID:        userID,
			CorrelationID: uuid.New().String(),
			AwaitingQuery: true,
		}
		return
	}
	session.AwaitingQuery = awaiting
	session.Version++
}

func (s *Store) Reset(ctx context.Context, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// CorrelationID returns the session's correlation ID, or a fresh
// transient one when the user has no session, so log lines always carry
// something joinable.
func (s *Store) CorrelationID(ctx context.Context, userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if session, ok := s.sessions[userID]; ok {
		return session.CorrelationID
	}
	return uuid.New().String()
}

func (s *Store) ActiveUserIDs(ctx context.Context) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

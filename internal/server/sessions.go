package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/storage"
)

// Session eviction defaults.
const (
	DefaultSessionIdleTimeout = 30 * time.Minute
	sessionCleanupInterval    = 5 * time.Minute
)

// AnalyzerFactory builds the ATS analyzer for one account, caching results in store.
type AnalyzerFactory func(store storage.Store) ats.Analyzer

// session is one account's open form. mu serializes every form operation of that account.
type session struct {
	mu     sync.Mutex
	store  storage.Store
	form   *form.Controller
	runner *ats.Runner

	// guarded by sessions.mu
	refs     int
	lastUsed time.Time
}

// sessions keeps one session per account while it is in use. Sessions without
// requests for longer than idle are dropped and restored from storage on the next request.
type sessions struct {
	mu       sync.Mutex
	byUser   map[uuid.UUID]*session
	stores   func(uuid.UUID) storage.Store
	analyzer AnalyzerFactory
	idle     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

func newSessions(stores func(uuid.UUID) storage.Store, analyzer AnalyzerFactory, idle time.Duration) *sessions {
	if idle <= 0 {
		idle = DefaultSessionIdleTimeout
	}
	s := &sessions{
		byUser:   make(map[uuid.UUID]*session),
		stores:   stores,
		analyzer: analyzer,
		idle:     idle,
		stop:     make(chan struct{}),
	}
	go s.cleanup(min(sessionCleanupInterval, idle))
	return s
}

// acquire returns the account's session, restoring its form state on first use.
// A failed restore is returned and nothing is cached. Callers release the session when done.
func (s *sessions) acquire(ctx context.Context, userID uuid.UUID) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.byUser[userID]; ok {
		sess.refs++
		return sess, nil
	}
	store := s.stores(userID)
	c, err := form.Open(ctx, store)
	if err != nil {
		return nil, err
	}
	sess := &session{
		store:  store,
		form:   c,
		runner: ats.NewRunner(s.analyzer(store)),
		refs:   1,
	}
	s.byUser[userID] = sess
	return sess, nil
}

func (s *sessions) release(sess *session) {
	s.mu.Lock()
	sess.refs--
	sess.lastUsed = time.Now()
	s.mu.Unlock()
}

// evictIdle drops sessions that no request holds and that were last used before now-idle.
func (s *sessions) evictIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.byUser {
		if sess.refs == 0 && now.Sub(sess.lastUsed) > s.idle {
			delete(s.byUser, id)
		}
	}
}

func (s *sessions) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser)
}

func (s *sessions) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			s.evictIdle(now)
		case <-s.stop:
			return
		}
	}
}

// Stop ends the eviction loop.
func (s *sessions) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// with runs fn while holding the session lock.
func (sess *session) with(fn func(*form.Controller) error) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.form)
}

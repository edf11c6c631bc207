package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-regform/pkg/form"
)

// SessionCookie names the cookie that carries the session id.
const SessionCookie = "regform_session"

// ErrSessionLimit is returned by Create when the store is full.
var ErrSessionLimit = errors.New("server: session limit reached")

// Session is one browser's form.
type Session struct {
	ID   string
	CSRF string

	ctrl *form.Controller

	mu       sync.Mutex
	notice   *form.Notice
	lastSeen time.Time
}

// Controller returns the form controller owned by the session.
func (s *Session) Controller() *form.Controller {
	return s.ctrl
}

func (s *Session) setNotice(notice form.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := notice
	s.notice = &n
}

// takeNotice returns and clears the pending notice.
func (s *Session) takeNotice() *form.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = nil
	return n
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// ControllerFactory builds the controller for a new session. The notifier
// receives the session's success notices.
type ControllerFactory func(notifier form.Notifier) (*form.Controller, error)

// SessionStore keeps sessions in memory and expires idle ones.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	factory  ControllerFactory
	now      func() time.Time
}

// SessionStoreOption customises a SessionStore.
type SessionStoreOption func(*SessionStore)

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) SessionStoreOption {
	return func(st *SessionStore) {
		if n >= 0 {
			st.max = n
		}
	}
}

// NewSessionStore builds an empty store.
func NewSessionStore(ttl time.Duration, factory ControllerFactory, opts ...SessionStoreOption) *SessionStore {
	st := &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(st)
		}
	}
	return st
}

// Get returns the live session for id.
func (st *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	now := st.now()
	if sess.idleSince(now) > st.ttl {
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// Create starts a new session with a fresh controller. When the store is at
// capacity, expired sessions are swept first and ErrSessionLimit is returned
// if none were freed.
func (st *SessionStore) Create() (*Session, error) {
	if st.full() {
		st.Sweep()
		if st.full() {
			return nil, ErrSessionLimit
		}
	}

	sess := &Session{
		ID:       uuid.NewString(),
		CSRF:     uuid.NewString(),
		lastSeen: st.now(),
	}
	ctrl, err := st.factory(form.NotifierFunc(func(_ context.Context, notice form.Notice) error {
		sess.setNotice(notice)
		return nil
	}))
	if err != nil {
		return nil, err
	}
	sess.ctrl = ctrl

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.max > 0 && len(st.sessions) >= st.max {
		return nil, ErrSessionLimit
	}
	st.sessions[sess.ID] = sess
	return sess, nil
}

func (st *SessionStore) full() bool {
	if st.max <= 0 {
		return false
	}
	return st.Len() >= st.max
}

// Len reports the number of stored sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many were
// removed.
func (st *SessionStore) Sweep() int {
	now := st.now()
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, sess := range st.sessions {
		if sess.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

func sessionCookie(sess *Session, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

type sessionKey struct{}

func withSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom returns the session attached by the session middleware.
func SessionFrom(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok && sess != nil
}

// Package session issues per-visitor session cookies and tracks login
// state for the process lifetime. Sessions are independent of
// authentication: every visitor gets one, and login binds a user id to it.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "techstore_sid"
	cookieTTL  = 24 * time.Hour
)

// Session is a point-in-time view resolved by the middleware. UserID is
// zero while the visitor is anonymous.
type Session struct {
	ID     string
	UserID int
}

type Manager struct {
	mu   sync.Mutex
	byID map[string]Session
}

func NewManager() *Manager {
	return &Manager{byID: make(map[string]Session)}
}

type ctxKey struct{}

// Middleware ensures every request carries a live session, creating one
// (and setting the cookie) when the visitor has none, and puts the
// session in the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess Session
		ok := false
		if c, err := r.Cookie(CookieName); err == nil {
			sess, ok = m.lookup(c.Value)
		}
		if !ok {
			sess = m.create()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(cookieTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

// FromContext returns the session resolved by Middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Bind attaches a user id to the session (login).
func (m *Manager) Bind(sessionID string, userID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.byID[sessionID]; ok {
		s.UserID = userID
		m.byID[sessionID] = s
	}
}

// Destroy drops the session entirely; the next request starts a fresh
// anonymous one.
func (m *Manager) Destroy(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, sessionID)
}

func (m *Manager) lookup(id string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	return s, ok
}

func (m *Manager) create() Session {
	s := Session{ID: uuid.NewString()}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = s
	return s
}

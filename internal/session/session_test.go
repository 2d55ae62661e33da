package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareIssuesCookieOnce(t *testing.T) {
	m := NewManager()
	var seen []Session
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := FromContext(r.Context())
		require.True(t, ok)
		seen = append(seen, s)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// second request with the cookie resolves the same session, no new cookie
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req)
	assert.Empty(t, rec2.Result().Cookies())

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0].ID, seen[1].ID)
}

func TestBindAndDestroy(t *testing.T) {
	m := NewManager()
	s := m.create()

	m.Bind(s.ID, 7)
	got, ok := m.lookup(s.ID)
	require.True(t, ok)
	assert.Equal(t, 7, got.UserID)

	m.Destroy(s.ID)
	_, ok = m.lookup(s.ID)
	assert.False(t, ok)
}

func TestBindUnknownSessionIsNoOp(t *testing.T) {
	m := NewManager()
	m.Bind("missing", 1)
	_, ok := m.lookup("missing")
	assert.False(t, ok)
}

package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"techstore/internal/directory"
	"techstore/internal/session"
)

type AuthHandler struct {
	Users    *directory.Store
	Sessions *session.Manager
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userInfo is the slim identity payload login and /me return; the full
// record (with password) stays on the user CRUD surface.
type userInfo struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)
	r.Get("/api/auth/me", h.me)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	u, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	sess, _ := session.FromContext(r.Context())
	h.Sessions.Bind(sess.ID, u.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    userInfo{ID: u.ID, Email: u.Email, Name: u.Name},
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		h.Sessions.Destroy(sess.ID)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())
	if sess.UserID == 0 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}
	u, err := h.Users.Get(sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userInfo{ID: u.ID, Email: u.Email, Name: u.Name})
}

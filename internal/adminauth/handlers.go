package adminauth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"roombooking/internal/api"
)

type Handlers struct {
	Auth *Authenticator
}

type loginRequest struct {
	Password string `json:"password"`
	Next     string `json:"next"`
}

type loginResponse struct {
	OK       bool   `json:"ok"`
	Redirect string `json:"redirect,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Login checks the shared password and sets the session cookie on success.
func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	// A malformed body is treated like an empty password.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if !h.Auth.checkPassword(req.Password) {
		hlog.FromRequest(r).Warn().
			Bool("configured", h.Auth.Enabled()).
			Msg("admin login rejected")
		api.WriteJSON(w, http.StatusUnauthorized, loginResponse{OK: false, Message: "incorrect password"})
		return
	}

	token, _, err := h.Auth.tokens.Issue()
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("issue admin session")
		api.WriteError(w, http.StatusInternalServerError, api.CodeInternal, "internal error")
		return
	}
	h.Auth.setCookie(w, token)
	api.WriteJSON(w, http.StatusOK, loginResponse{OK: true, Redirect: SafeNext(req.Next)})
}

func (h Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.clearCookie(w)
	api.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session reports the current admin session. Mounted behind the gate.
func (h Handlers) Session(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Authenticated bool       `json:"authenticated"`
		ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	}{Authenticated: api.IsAdmin(r.Context())}
	if s := SessionFromContext(r.Context()); s != nil {
		exp := s.ExpiresAt.UTC()
		resp.ExpiresAt = &exp
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

// LoginPage is the landing spot for gate redirects. Pages are rendered elsewhere; this
// tells the caller where to post the password.
func (h Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": api.IsAdmin(r.Context()),
		"login":         "/admin-login",
		"next":          SafeNext(r.URL.Query().Get("next")),
	})
}

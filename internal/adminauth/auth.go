// Package adminauth gates the admin surface behind a shared password and a signed
// session cookie.
package adminauth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"net/url"
	"strings"

	"roombooking/internal/api"
	"roombooking/pkg/config"
)

const defaultRedirect = "/admin"

type ctxKey struct{}

type Authenticator struct {
	password   string
	tokens     *Tokens
	cookieName string
	loginPath  string
	secure     bool
}

func New(cfg config.AdminConfig, secure bool) (*Authenticator, error) {
	tokens, err := NewTokens(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "admin_session"
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/admin/login"
	}
	return &Authenticator{
		password:   cfg.Password,
		tokens:     tokens,
		cookieName: cookieName,
		loginPath:  loginPath,
		secure:     secure,
	}, nil
}

// Enabled reports whether an admin password is configured. Without one every login fails.
func (a *Authenticator) Enabled() bool {
	return a.password != ""
}

func (a *Authenticator) LoginPath() string {
	return a.loginPath
}

func (a *Authenticator) checkPassword(candidate string) bool {
	if a.password == "" || candidate == "" {
		return false
	}
	want := sha256.Sum256([]byte(a.password))
	got := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

func (a *Authenticator) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Authenticator) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     a.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Authenticator) sessionFromRequest(r *http.Request) (*Session, bool) {
	c, err := r.Cookie(a.cookieName)
	if err != nil {
		return nil, false
	}
	s, err := a.tokens.Verify(c.Value)
	if err != nil {
		return nil, false
	}
	return s, true
}

// Session attaches a verified admin session to the request context when the cookie is valid.
// It never rejects.
func (a *Authenticator) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, ok := a.sessionFromRequest(r); ok {
			ctx := context.WithValue(api.WithAdmin(r.Context()), ctxKey{}, s)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// Gate redirects unauthenticated page requests to the login path, carrying the original
// location in ?next=. The login path itself passes through.
func (a *Authenticator) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.IsAdmin(r.Context()) || r.URL.Path == a.loginPath {
			next.ServeHTTP(w, r)
			return
		}
		target := a.loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, target, http.StatusFound)
	})
}

// RequireAdmin answers 401 JSON for API calls without an admin session.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !api.IsAdmin(r.Context()) {
			api.WriteError(w, http.StatusUnauthorized, api.CodeUnauthorized, "admin session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

// SafeNext returns next when it is a same-site relative path, otherwise the admin home.
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return defaultRedirect
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return defaultRedirect
	}
	return next
}

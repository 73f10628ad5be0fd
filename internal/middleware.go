package internal

import (
	"context"
	"net/http"
	"time"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/session"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	apiContextKey     contextKey = "api"
)

// requireSession resolves the session cookie and stashes the session plus a
// token-scoped API client in the request context. Anything invalid clears the
// cookie and redirects to the login page.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		sessionID, err := session.ParseCookie(s.cfg.SessionSecret, cookie.Value)
		if err != nil {
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		sess, err := s.sessions.Get(r.Context(), sessionID)
		if err != nil {
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		// When the remote API rejects the bearer token the local session is
		// useless; drop it so the next request lands on the login page.
		api := s.api.WithToken(sess.Token).WithUnauthorizedHook(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.sessions.Delete(ctx, sess.ID)
		})

		// Sessions created before the auth endpoint returned a user record
		// have no cached profile; hydrate it once from /me.
		if sess.User == nil {
			me, err := api.Me(r.Context())
			switch {
			case err == nil:
				sess.User = me
				_ = s.sessions.UpdateUser(r.Context(), sess.ID, me)
			case apiclient.IsUnauthorized(err):
				// The hook already deleted the session row.
				s.clearSessionCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		ctx = context.WithValue(ctx, apiContextKey, api)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

func apiFrom(ctx context.Context) *apiclient.Client {
	api, _ := ctx.Value(apiContextKey).(*apiclient.Client)
	return api
}

func (s *Server) setSessionCookie(w http.ResponseWriter, value string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// pageData builds the base template data: the chrome user plus any flash
// messages carried in the query string after a redirect.
func (s *Server) pageData(r *http.Request, title string) PageData {
	data := PageData{
		Title:   title,
		Error:   r.URL.Query().Get("err"),
		Success: r.URL.Query().Get("ok"),
	}
	if sess := sessionFrom(r.Context()); sess != nil && sess.User != nil {
		data.User = &UserInfo{Name: sess.User.Name, Email: sess.User.Email}
	}
	return data
}

package internal

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Avina-dox/DasavenaTI/internal/apiclient"
	"github.com/Avina-dox/DasavenaTI/internal/models"
	"github.com/Avina-dox/DasavenaTI/internal/session"
)

type loginData struct {
	PageData
	Email string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// Already logged in? Straight to the dashboard.
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if id, err := session.ParseCookie(s.cfg.SessionSecret, cookie.Value); err == nil {
			if _, err := s.sessions.Get(r.Context(), id); err == nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
		}
	}
	s.tmpl.Render(w, "login.html", loginData{PageData: s.pageData(r, "Iniciar sesión")})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	renderError := func(msg string) {
		w.WriteHeader(http.StatusUnauthorized)
		data := loginData{PageData: s.pageData(r, "Iniciar sesión"), Email: email}
		data.Error = msg
		s.tmpl.Render(w, "login.html", data)
	}

	if email == "" || password == "" {
		renderError("Email y contraseña son obligatorios.")
		return
	}

	resp, err := s.api.Login(r.Context(), email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email, "error", err)
		renderError(apiclient.UserMessage(err))
		return
	}

	user := resp.User
	if user == nil {
		// Some deployments return only the token; hydrate from /me.
		if me, err := s.api.WithToken(resp.Token).Me(r.Context()); err == nil {
			user = me
		}
	}

	sess, err := s.sessions.Create(r.Context(), resp.Token, user)
	if err != nil {
		s.logger.Error("failed to create session", "error", err)
		renderError("No se pudo iniciar la sesión.")
		return
	}

	signed, err := session.SignCookie(s.cfg.SessionSecret, sess.ID, sess.ExpiresAt)
	if err != nil {
		s.logger.Error("failed to sign session cookie", "error", err)
		renderError("No se pudo iniciar la sesión.")
		return
	}

	s.setSessionCookie(w, signed, sess.ExpiresAt)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if id, err := session.ParseCookie(s.cfg.SessionSecret, cookie.Value); err == nil {
			_ = s.sessions.Delete(r.Context(), id)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type usersData struct {
	PageData
	Search string
	Users  []models.User
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	data := usersData{PageData: s.pageData(r, "Usuarios"), Search: search}
	users, _, err := api.ListUsers(r.Context(), search)
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		data.Error = apiclient.UserMessage(err)
	}
	data.Users = users
	s.tmpl.Render(w, "users.html", data)
}

type userDetailData struct {
	PageData
	Detail      *models.User
	Assignments []models.Assignment
}

func (s *Server) handleUserDetail(w http.ResponseWriter, r *http.Request) {
	api := apiFrom(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	user, err := api.GetUser(r.Context(), id)
	if err != nil {
		if s.redirectUnauthorized(w, r, err) {
			return
		}
		if apiclient.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/usuarios?err="+url.QueryEscape(apiclient.UserMessage(err)), http.StatusSeeOther)
		return
	}

	data := userDetailData{PageData: s.pageData(r, user.Name), Detail: user}
	assignments, err := api.UserAssignments(r.Context(), id)
	if err != nil {
		data.Error = apiclient.UserMessage(err)
	}
	data.Assignments = assignments
	s.tmpl.Render(w, "user_detail.html", data)
}

// redirectUnauthorized sends the browser to the login page when the API
// rejected the session token. The 401 hook has already destroyed the local
// session by the time this runs.
func (s *Server) redirectUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

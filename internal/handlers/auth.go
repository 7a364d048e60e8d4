package handlers

import (
	"log/slog"
	"net/http"

	"vigiablog/internal/middleware"
	"vigiablog/internal/render"
	"vigiablog/internal/session"
	"vigiablog/internal/store"
)

// Auth groups the login and logout HTTP handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already logged in — straight to the dashboard.
	if _, ok := middleware.AdminID(r.Context()); ok {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{Title: "Login"})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Login",
			Error: "Preencha todos os campos.",
		})
		return
	}

	user, err := a.userStore.FindByUsername(username)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Login",
			Error: "Erro inesperado. Tente novamente.",
		})
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Login",
			Error: "Usuário ou senha inválidos.",
		})
		return
	}

	a.sessions.Establish(w, user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout ends the admin session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.End(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Package router sets up all HTTP routes and middleware chains for
// VigiaBlog. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vigiablog/internal/handlers"
	"vigiablog/internal/middleware"
	"vigiablog/internal/session"
	"vigiablog/web"
)

// loginRateLimit caps login attempts per IP per window.
const (
	loginRateLimit  = 5
	loginRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets (compiled CSS).
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	// Admin routes — CSRF-protected; mutations require a session.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF(secureCookies))

		// Auth pages — accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// Authenticated admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/", admin.Dashboard)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", admin.PostsList)
				r.Get("/new", admin.PostNew)
				r.Post("/", admin.PostCreate)
				r.Get("/{id}", admin.PostEdit)
				r.Post("/{id}", admin.PostUpdate)
				r.Post("/{id}/delete", admin.PostDelete)
			})
		})
	})

	// Public routes.
	r.Get("/", public.Homepage)
	r.Get("/category/{slug}", public.CategoryPage)
	r.Get("/{slug}", public.PostPage)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

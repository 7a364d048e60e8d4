// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"vigiablog/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// adminIDKey is the context key for the authenticated admin's id.
	adminIDKey contextKey = "admin_id"
)

// LoadSession reads the admin session cookie and stores the admin id in
// the request context. Downstream handlers access it via AdminID().
// This middleware does NOT enforce authentication — it just loads the
// session if one exists.
func LoadSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := store.Current(r); ok {
				ctx := context.WithValue(r.Context(), adminIDKey, id)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin redirects unauthenticated users to the login page.
// Must be applied after LoadSession in the middleware chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AdminID(r.Context()); !ok {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AdminID extracts the authenticated admin's id from the request
// context. The second return is false when no session is loaded.
func AdminID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(adminIDKey).(int64)
	return id, ok
}

// WithAdminID returns a context carrying the given admin id, as if
// LoadSession had run. Handlers under test use it to simulate a
// logged-in request.
func WithAdminID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, adminIDKey, id)
}

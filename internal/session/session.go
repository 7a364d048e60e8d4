// Package session manages the admin session cookie. The cookie value is
// the admin's numeric user id — there is no server-side session table,
// so presence of a parseable cookie is the only session state.
package session

import (
	"net/http"
	"strconv"
	"time"
)

const (
	// CookieName is the name of the admin session cookie.
	CookieName = "admin_session"

	// DefaultMaxAge is how long the cookie lives in the browser. There
	// is no renewal; after a week the admin logs in again.
	DefaultMaxAge = 7 * 24 * time.Hour
)

// Store writes and reads the admin session cookie.
type Store struct {
	secure bool
	maxAge time.Duration
}

// NewStore creates a session store. secure marks cookies HTTPS-only and
// should be true outside local development.
func NewStore(secure bool) *Store {
	return &Store{
		secure: secure,
		maxAge: DefaultMaxAge,
	}
}

// Establish sets the session cookie for the given user id. The cookie is
// http-only, site-wide, and expires after DefaultMaxAge.
func (s *Store) Establish(w http.ResponseWriter, userID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    strconv.FormatInt(userID, 10),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.maxAge.Seconds()),
	})
}

// End removes the session cookie.
func (s *Store) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		MaxAge:   -1,
	})
}

// Current returns the user id from the session cookie. A missing or
// non-numeric cookie means no session; it never errors.
func (s *Store) Current(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(cookie.Value, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

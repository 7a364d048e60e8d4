// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// retry.go wraps write operations against the pooled database with a
// narrow backoff loop. The pool runs with a strict connection ceiling,
// so a burst of traffic can exhaust it for a moment; that is the only
// failure mode worth retrying here. Everything else propagates
// immediately and unchanged.
package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

const (
	// maxRetries is how many times a transient failure is re-attempted
	// after the initial call.
	maxRetries = 3

	// initialDelay is the wait before the first re-attempt. It doubles
	// on every subsequent one (1s, 2s, 4s).
	initialDelay = 1 * time.Second
)

// pgTooManyConnections is the SQLSTATE raised when the server refuses a
// connection because the pool ceiling is reached (class 53,
// insufficient resources).
const pgTooManyConnections = "53300"

// IsTransient reports whether err is a connection-exhaustion failure
// worth retrying: SQLSTATE 53300, or an error text mentioning too many
// connections (poolers phrase it differently than Postgres itself).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgTooManyConnections {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "too many connections")
}

// WithRetry invokes fn, retrying transient connection-exhaustion
// failures up to maxRetries times with exponentially increasing delay.
// Non-transient errors, and transient errors that outlive the budget,
// are returned unchanged. The loop observes ctx, so an aborted request
// stops waiting instead of consuming the rest of its budget.
func WithRetry(ctx context.Context, fn func() error) error {
	b := retry.WithMaxRetries(maxRetries, retry.NewExponential(initialDelay))
	return withRetry(ctx, b, fn)
}

// withRetry is the backoff-injectable core of WithRetry, split out so
// tests can run it without real one-second delays.
func withRetry(ctx context.Context, b retry.Backoff, fn func() error) error {
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn()
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

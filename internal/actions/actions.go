// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package actions implements the admin post commands: create, update
// and delete. Each command checks the session, resolves the category,
// performs the storage write under the transient-error retry wrapper
// and invalidates the affected page cache keys. Commands return a
// Result instead of writing to the HTTP response, so the handlers
// decide how to render each outcome.
package actions

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"vigiablog/internal/cache"
	"vigiablog/internal/database"
	"vigiablog/internal/models"
	"vigiablog/internal/slug"
)

// defaultWriteTimeout bounds a storage write, including the time the
// retry wrapper spends waiting out pool exhaustion. Matches the
// DB_POOL_TIMEOUT config default.
const defaultWriteTimeout = 20 * time.Second

// Status classifies a command outcome.
type Status int

const (
	StatusSuccess Status = iota
	StatusUnauthorized
	StatusInvalid
	StatusStorageError
)

// Result is the outcome of a post command. Message is a user-visible
// Portuguese error text, empty on success.
type Result struct {
	Status  Status
	Message string
	Post    *models.Post
}

func success(p *models.Post) Result { return Result{Status: StatusSuccess, Post: p} }
func unauthorized() Result          { return Result{Status: StatusUnauthorized} }
func invalid(msg string) Result     { return Result{Status: StatusInvalid, Message: msg} }
func storageErr(msg string) Result  { return Result{Status: StatusStorageError, Message: msg} }

// PostInput carries the form fields of a post create or update.
type PostInput struct {
	ID       int64
	Title    string
	Slug     string
	Excerpt  string
	Content  string
	ImageURL string
	Category string
}

// PostStore is the subset of the post store the commands need.
type PostStore interface {
	FindBySlug(slug string) (*models.Post, error)
	Create(p *models.Post) (*models.Post, error)
	Update(p *models.Post) error
	Delete(id int64) error
}

// CategoryStore resolves category names to rows.
type CategoryStore interface {
	Upsert(name, slug string) (*models.Category, error)
}

// Invalidator drops rendered pages from the page cache.
type Invalidator interface {
	Invalidate(ctx context.Context, key string) error
}

// CacheLogger records invalidation events. Best-effort.
type CacheLogger interface {
	Log(entityType string, entityID int64, action string)
}

// Actions wires the post commands to their dependencies.
type Actions struct {
	posts        PostStore
	categories   CategoryStore
	pages        Invalidator
	cacheLog     CacheLogger
	writeTimeout time.Duration
}

// New creates the command set. writeTimeout caps how long a single
// storage write may run, retry waits included; non-positive values
// fall back to the default.
func New(posts PostStore, categories CategoryStore, pages Invalidator, cacheLog CacheLogger, writeTimeout time.Duration) *Actions {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	return &Actions{
		posts:        posts,
		categories:   categories,
		pages:        pages,
		cacheLog:     cacheLog,
		writeTimeout: writeTimeout,
	}
}

// withRetry runs a storage write under the transient-error backoff
// loop, bounded by the configured write timeout. When the pool stays
// exhausted past the deadline, the command fails instead of holding
// its request open through the remaining retry budget.
func (a *Actions) withRetry(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, a.writeTimeout)
	defer cancel()
	return database.WithRetry(ctx, fn)
}

// CreatePost inserts a new post. A blank slug is derived from the
// title. The category, when given, is upserted by its normalized key
// before the post write. userID is the session's admin id; zero means
// no session.
func (a *Actions) CreatePost(ctx context.Context, userID int64, in PostInput) Result {
	if userID <= 0 {
		return unauthorized()
	}

	if in.Slug == "" && in.Title != "" {
		in.Slug = slug.FromTitle(in.Title)
	}

	categoryName, categoryID, err := a.resolveCategory(in.Category)
	if err != nil {
		return storageErr("Erro ao criar post: " + err.Error())
	}

	// Pre-check keeps the common duplicate case off the retry path.
	existing, err := a.posts.FindBySlug(in.Slug)
	if err != nil {
		return storageErr("Erro ao criar post: " + err.Error())
	}
	if existing != nil {
		return invalid("Slug já existe.")
	}

	post := &models.Post{
		Title:        in.Title,
		Slug:         in.Slug,
		Excerpt:      in.Excerpt,
		Content:      in.Content,
		ImageURL:     optional(in.ImageURL),
		CategoryName: categoryName,
		CategoryID:   categoryID,
	}

	var created *models.Post
	err = a.withRetry(ctx, func() error {
		var createErr error
		created, createErr = a.posts.Create(post)
		return createErr
	})
	if err != nil {
		// The unique constraint closes the lookup/insert race.
		if isUniqueViolation(err) {
			return invalid("Slug já existe.")
		}
		return storageErr("Erro ao criar post: " + err.Error())
	}

	a.invalidate(ctx, created.ID, "create", cache.HomepageKey(), cache.AdminKey())
	return success(created)
}

// UpdatePost rewrites an existing post. The slug is taken verbatim
// from the form, changing the post's public URL when edited.
func (a *Actions) UpdatePost(ctx context.Context, userID int64, in PostInput) Result {
	if userID <= 0 {
		return unauthorized()
	}

	categoryName, categoryID, err := a.resolveCategory(in.Category)
	if err != nil {
		return storageErr("Erro ao atualizar post: " + err.Error())
	}

	post := &models.Post{
		ID:           in.ID,
		Title:        in.Title,
		Slug:         in.Slug,
		Excerpt:      in.Excerpt,
		Content:      in.Content,
		ImageURL:     optional(in.ImageURL),
		CategoryName: categoryName,
		CategoryID:   categoryID,
	}

	err = a.withRetry(ctx, func() error {
		return a.posts.Update(post)
	})
	if err != nil {
		return storageErr("Erro ao atualizar post: " + err.Error())
	}

	a.invalidate(ctx, post.ID, "update", cache.HomepageKey(), cache.AdminKey(), cache.SlugKey(post.Slug))
	return success(post)
}

// DeletePost removes a post by id. A missing id is a storage failure,
// not a silent no-op.
func (a *Actions) DeletePost(ctx context.Context, userID int64, id int64) Result {
	if userID <= 0 {
		return unauthorized()
	}

	err := a.withRetry(ctx, func() error {
		return a.posts.Delete(id)
	})
	if err != nil {
		slog.Error("delete post failed", "id", id, "error", err)
		return storageErr("Erro ao excluir post: " + err.Error())
	}

	a.invalidate(ctx, id, "delete", cache.HomepageKey(), cache.AdminKey())
	return success(nil)
}

// resolveCategory upserts the category by its normalized key and
// returns the pointers stored on the post. Blank names yield nils.
func (a *Actions) resolveCategory(name string) (*string, *int64, error) {
	if name == "" {
		return nil, nil, nil
	}
	cat, err := a.categories.Upsert(name, slug.CategoryKey(name))
	if err != nil {
		return nil, nil, err
	}
	return &name, &cat.ID, nil
}

// invalidate drops the given page cache keys and records the event.
// Cache failures are logged, never surfaced: the write already
// succeeded and stale pages expire on their own TTL.
func (a *Actions) invalidate(ctx context.Context, postID int64, action string, keys ...string) {
	for _, key := range keys {
		if err := a.pages.Invalidate(ctx, key); err != nil {
			slog.Warn("cache invalidation failed", "key", key, "error", err)
		}
	}
	a.cacheLog.Log("post", postID, action)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

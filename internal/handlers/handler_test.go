// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"vigiablog/internal/actions"
	"vigiablog/internal/cache"
	"vigiablog/internal/database"
	"vigiablog/internal/middleware"
	"vigiablog/internal/render"
	"vigiablog/internal/session"
	"vigiablog/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "vigiablog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "vigiablog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Renderer      *render.Renderer
	Sessions      *session.Store
	PostStore     *store.PostStore
	CategoryStore *store.CategoryStore
	UserStore     *store.UserStore
	CacheLog      *store.CacheLogStore
	PageCache     *cache.PageCache
	Commands      *actions.Actions
	Admin         *Admin
	Auth          *Auth
	Public        *Public
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(false)
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	userStore := store.NewUserStore(db)
	cacheLogStore := store.NewCacheLogStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	commands := actions.New(postStore, categoryStore, pageCache, cacheLogStore, 0)
	admin := NewAdmin(renderer, postStore, categoryStore, cacheLogStore, commands)
	auth := NewAuth(renderer, sessions, userStore)
	public := NewPublic(renderer, postStore, categoryStore, pageCache)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Renderer:      renderer,
		Sessions:      sessions,
		PostStore:     postStore,
		CategoryStore: categoryStore,
		UserStore:     userStore,
		CacheLog:      cacheLogStore,
		PageCache:     pageCache,
		Commands:      commands,
		Admin:         admin,
		Auth:          auth,
		Public:        public,
	}
}

// asAdmin marks a request as made by a logged-in admin.
func asAdmin(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithAdminID(r.Context(), 1))
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanupPosts deletes test posts by slug after the test.
func cleanupPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, slug := range slugs {
			db.Exec("DELETE FROM posts WHERE slug = $1", slug)
		}
	})
}

// cleanupCategories deletes test categories by slug after the test.
func cleanupCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, slug := range slugs {
			db.Exec("DELETE FROM categories WHERE slug = $1", slug)
		}
	})
}

// cleanupUsers deletes test users by username after the test.
func cleanupUsers(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, username := range usernames {
			db.Exec("DELETE FROM users WHERE username = $1", username)
		}
	})
}

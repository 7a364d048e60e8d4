package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vigiablog/internal/cache"
	"vigiablog/internal/models"
)

func TestHomepageRendersAndCaches(t *testing.T) {
	env := newTestEnv(t)
	cleanupPosts(t, env.DB, "public-home-post")
	cleanupCategories(t, env.DB, "public-home-cat")

	cat, err := env.CategoryStore.Upsert("Public Home Cat", "public-home-cat")
	if err != nil {
		t.Fatalf("upsert category: %v", err)
	}
	if _, err := env.PostStore.Create(&models.Post{
		Title: "Post da Home", Slug: "public-home-post", Content: "x", CategoryID: &cat.ID,
	}); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	env.Public.Homepage(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Post da Home") {
		t.Error("expected post on homepage")
	}

	// The rendered page is now cached.
	if _, ok := env.PageCache.Get(context.Background(), cache.HomepageKey()); !ok {
		t.Error("expected homepage to be cached after render")
	}
}

func TestHomepageServesFromCache(t *testing.T) {
	env := newTestEnv(t)

	env.PageCache.Set(context.Background(), cache.HomepageKey(), []byte("<html>cached home</html>"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	env.Public.Homepage(rr, req)

	if rr.Body.String() != "<html>cached home</html>" {
		t.Error("expected cached page to be served verbatim")
	}
}

func TestPostPageRendersRelated(t *testing.T) {
	env := newTestEnv(t)
	cleanupPosts(t, env.DB, "public-post-main", "public-post-related")
	cleanupCategories(t, env.DB, "public-post-cat")

	cat, err := env.CategoryStore.Upsert("Public Post Cat", "public-post-cat")
	if err != nil {
		t.Fatalf("upsert category: %v", err)
	}
	if _, err := env.PostStore.Create(&models.Post{
		Title: "Principal", Slug: "public-post-main", Content: "x", CategoryID: &cat.ID,
	}); err != nil {
		t.Fatalf("seed main post: %v", err)
	}
	if _, err := env.PostStore.Create(&models.Post{
		Title: "Relacionado", Slug: "public-post-related", Content: "x", CategoryID: &cat.ID,
	}); err != nil {
		t.Fatalf("seed related post: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/public-post-main", nil)
	req = withChiURLParam(req, "slug", "public-post-main")
	rr := httptest.NewRecorder()
	env.Public.PostPage(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Principal") {
		t.Error("expected post title")
	}
	if !strings.Contains(body, "Relacionado") {
		t.Error("expected related post in strip")
	}
}

func TestPostPageNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/no-such-slug", nil)
	req = withChiURLParam(req, "slug", "no-such-slug")
	rr := httptest.NewRecorder()
	env.Public.PostPage(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}

	// Misses are not cached.
	if _, ok := env.PageCache.Get(context.Background(), cache.SlugKey("no-such-slug")); ok {
		t.Error("404 must not be cached")
	}
}

func TestCategoryPageRenders(t *testing.T) {
	env := newTestEnv(t)
	cleanupPosts(t, env.DB, "public-cat-post")
	cleanupCategories(t, env.DB, "public-cat-page")

	cat, err := env.CategoryStore.Upsert("Categoria Pública", "public-cat-page")
	if err != nil {
		t.Fatalf("upsert category: %v", err)
	}
	if _, err := env.PostStore.Create(&models.Post{
		Title: "Post da Categoria", Slug: "public-cat-post", Content: "x", CategoryID: &cat.ID,
	}); err != nil {
		t.Fatalf("seed post: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/category/public-cat-page", nil)
	req = withChiURLParam(req, "slug", "public-cat-page")
	rr := httptest.NewRecorder()
	env.Public.CategoryPage(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Categoria Pública") {
		t.Error("expected category name")
	}
	if !strings.Contains(body, "Post da Categoria") {
		t.Error("expected category post")
	}

	if _, ok := env.PageCache.Get(context.Background(), cache.CategoryKey("public-cat-page")); !ok {
		t.Error("expected category page to be cached")
	}
}

func TestCategoryPageNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/category/no-such-cat", nil)
	req = withChiURLParam(req, "slug", "no-such-cat")
	rr := httptest.NewRecorder()
	env.Public.CategoryPage(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

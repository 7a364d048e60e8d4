// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vigiablog/internal/cache"
	"vigiablog/internal/models"
	"vigiablog/internal/render"
	"vigiablog/internal/store"
)

// homeCategoryLimit and homePostsPerCategory bound the homepage: at
// most five category sections, each with its three latest posts.
const (
	homeCategoryLimit    = 5
	homePostsPerCategory = 3
	relatedPostLimit     = 3
)

// Public groups handlers for the public-facing site. It checks the
// Valkey page cache before rendering, and stores rendered pages on
// miss.
type Public struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	pageCache     *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, postStore *store.PostStore, categoryStore *store.CategoryStore, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:      renderer,
		postStore:     postStore,
		categoryStore: categoryStore,
		pageCache:     pageCache,
	}
}

// Homepage renders the category sections with their latest posts.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.HomepageKey()); ok {
		writeHTML(w, cached)
		return
	}

	cats, err := p.categoryStore.ListWithRecentPosts(homeCategoryLimit, homePostsPerCategory)
	if err != nil {
		slog.Error("homepage category list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := p.renderer.Public("home", &render.PageData{
		Data: map[string]any{"Categories": cats},
	})
	if err != nil {
		slog.Error("homepage render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.HomepageKey(), html)
	writeHTML(w, html)
}

// PostPage renders a single post with a related-posts strip.
func (p *Public) PostPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if cached, ok := p.pageCache.Get(ctx, cache.SlugKey(slug)); ok {
		writeHTML(w, cached)
		return
	}

	post, err := p.postStore.FindBySlug(slug)
	if err != nil {
		slog.Error("post lookup failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	var related []models.Post
	if post.CategoryID != nil {
		related, err = p.postStore.ListRelated(*post.CategoryID, post.ID, relatedPostLimit)
		if err != nil {
			// The post page still works without the strip.
			slog.Warn("related posts lookup failed", "slug", slug, "error", err)
		}
	}

	html, err := p.renderer.Public("post", &render.PageData{
		Title: post.Title,
		Data:  map[string]any{"Post": post, "Related": related},
	})
	if err != nil {
		slog.Error("post render failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.SlugKey(slug), html)
	writeHTML(w, html)
}

// CategoryPage renders every post of a category.
func (p *Public) CategoryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	if cached, ok := p.pageCache.Get(ctx, cache.CategoryKey(slug)); ok {
		writeHTML(w, cached)
		return
	}

	cat, err := p.categoryStore.FindBySlug(slug)
	if err != nil {
		slog.Error("category lookup failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if cat == nil {
		http.NotFound(w, r)
		return
	}

	posts, err := p.postStore.ListByCategoryID(cat.ID)
	if err != nil {
		slog.Error("category posts lookup failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	html, err := p.renderer.Public("category", &render.PageData{
		Title: cat.Name,
		Data:  map[string]any{"Category": cat, "Posts": posts},
	})
	if err != nil {
		slog.Error("category render failed", "slug", slug, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.CategoryKey(slug), html)
	writeHTML(w, html)
}

func writeHTML(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

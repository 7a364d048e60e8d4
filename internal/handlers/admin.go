// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for VigiaBlog. Handlers
// are grouped by concern (admin, public, auth) and receive their
// dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vigiablog/internal/actions"
	"vigiablog/internal/middleware"
	"vigiablog/internal/models"
	"vigiablog/internal/render"
	"vigiablog/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	postStore     *store.PostStore
	categoryStore *store.CategoryStore
	cacheLog      *store.CacheLogStore
	commands      *actions.Actions
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, postStore *store.PostStore, categoryStore *store.CategoryStore, cacheLog *store.CacheLogStore, commands *actions.Actions) *Admin {
	return &Admin{
		renderer:      renderer,
		postStore:     postStore,
		categoryStore: categoryStore,
		cacheLog:      cacheLog,
		commands:      commands,
	}
}

// Dashboard renders the admin landing page with content counts and the
// recent cache invalidation events.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	postCount, err := a.postStore.Count()
	if err != nil {
		slog.Error("post count failed", "error", err)
	}

	cats, err := a.categoryStore.List()
	if err != nil {
		slog.Error("category list failed", "error", err)
	}

	entries, err := a.cacheLog.RecentEntries(10)
	if err != nil {
		slog.Error("cache log read failed", "error", err)
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"PostCount":     postCount,
			"CategoryCount": len(cats),
			"CacheLog":      entries,
		},
	})
}

// PostsList renders the admin post listing.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	a.postsList(w, r, "")
}

func (a *Admin) postsList(w http.ResponseWriter, r *http.Request, errMsg string) {
	posts, err := a.postStore.List()
	if err != nil {
		slog.Error("post list failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, "posts_list", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Error:   errMsg,
		Data:    map[string]any{"Posts": posts},
	})
}

// PostNew renders the empty post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   "Novo post",
		Section: "posts",
		Data:    map[string]any{"FormAction": "/admin/posts"},
	})
}

// PostCreate handles the new-post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	in := postInputFromForm(r)

	if msg := validatePost(in.Title, in.Slug, in.Excerpt, in.Content, in.Category, in.ImageURL); msg != "" {
		a.postForm(w, r, "Novo post", "/admin/posts", inputAsPost(in), msg)
		return
	}

	userID, _ := middleware.AdminID(r.Context())
	res := a.commands.CreatePost(r.Context(), userID, in)

	switch res.Status {
	case actions.StatusUnauthorized:
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
	case actions.StatusSuccess:
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
	default:
		a.postForm(w, r, "Novo post", "/admin/posts", inputAsPost(in), res.Message)
	}
}

// PostEdit renders the edit form for an existing post.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	post, err := a.postStore.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if post == nil {
		http.NotFound(w, r)
		return
	}

	a.postForm(w, r, "Editar post", "/admin/posts/"+strconv.FormatInt(id, 10), post, "")
}

// PostUpdate handles the edit form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	in := postInputFromForm(r)
	in.ID = id
	formAction := "/admin/posts/" + strconv.FormatInt(id, 10)

	if msg := validatePost(in.Title, in.Slug, in.Excerpt, in.Content, in.Category, in.ImageURL); msg != "" {
		a.postForm(w, r, "Editar post", formAction, inputAsPost(in), msg)
		return
	}

	userID, _ := middleware.AdminID(r.Context())
	res := a.commands.UpdatePost(r.Context(), userID, in)

	switch res.Status {
	case actions.StatusUnauthorized:
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
	case actions.StatusSuccess:
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
	default:
		a.postForm(w, r, "Editar post", formAction, inputAsPost(in), res.Message)
	}
}

// PostDelete handles the delete button on the post listing.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	userID, _ := middleware.AdminID(r.Context())
	res := a.commands.DeletePost(r.Context(), userID, id)

	switch res.Status {
	case actions.StatusUnauthorized:
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
	case actions.StatusSuccess:
		http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
	default:
		a.postsList(w, r, res.Message)
	}
}

func (a *Admin) postForm(w http.ResponseWriter, r *http.Request, title, action string, post *models.Post, errMsg string) {
	a.renderer.Page(w, r, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Error:   errMsg,
		Data:    map[string]any{"Post": post, "FormAction": action},
	})
}

// postInputFromForm reads the post fields out of the submitted form.
func postInputFromForm(r *http.Request) actions.PostInput {
	return actions.PostInput{
		Title:    r.FormValue("title"),
		Slug:     r.FormValue("slug"),
		Excerpt:  r.FormValue("excerpt"),
		Content:  r.FormValue("content"),
		ImageURL: r.FormValue("imageUrl"),
		Category: r.FormValue("category"),
	}
}

// inputAsPost converts form input back to a post so a failed submission
// re-renders with the user's values intact.
func inputAsPost(in actions.PostInput) *models.Post {
	p := &models.Post{
		ID:      in.ID,
		Title:   in.Title,
		Slug:    in.Slug,
		Excerpt: in.Excerpt,
		Content: in.Content,
	}
	if in.ImageURL != "" {
		p.ImageURL = &in.ImageURL
	}
	if in.Category != "" {
		p.CategoryName = &in.Category
	}
	return p
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"vigiablog/internal/models"
)

func testPost(slug string) *models.Post {
	name := "Test Categoria"
	return &models.Post{
		Title:        "Post de Teste",
		Slug:         slug,
		Excerpt:      "Um resumo curto.",
		Content:      "Conteúdo completo do post de teste.",
		CategoryName: &name,
	}
}

func TestPostStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-post-create"
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	created, err := s.Create(testPost(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == 0 {
		t.Error("expected non-zero id")
	}
	if created.Slug != slug {
		t.Errorf("slug: got %q, want %q", created.Slug, slug)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if created.CategoryName == nil || *created.CategoryName != "Test Categoria" {
		t.Errorf("category name: got %v", created.CategoryName)
	}
}

func TestPostStoreCreateDuplicateSlug(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-post-dup-slug"
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	if _, err := s.Create(testPost(slug)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(testPost(slug)); err == nil {
		t.Fatal("expected unique violation for duplicate slug")
	}
}

func TestPostStoreFindBySlug(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-post-find-slug"
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	// Not found case.
	p, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug (not found): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil for missing slug")
	}

	created, err := s.Create(testPost(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	p, err = s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if p == nil || p.ID != created.ID {
		t.Fatalf("expected post %d, got %+v", created.ID, p)
	}
}

func TestPostStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-post-update"
	newSlug := "test-post-update-renamed"
	t.Cleanup(func() { cleanPosts(t, db, slug, newSlug) })

	created, err := s.Create(testPost(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Title = "Título Atualizado"
	created.Slug = newSlug
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	p, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if p.Title != "Título Atualizado" {
		t.Errorf("title: got %q", p.Title)
	}
	if p.Slug != newSlug {
		t.Errorf("slug: got %q, want %q", p.Slug, newSlug)
	}

	// Old slug no longer resolves.
	old, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug (old): %v", err)
	}
	if old != nil {
		t.Error("expected old slug to be gone after rename")
	}
}

func TestPostStoreUpdateMissing(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	p := testPost("test-post-update-missing")
	p.ID = -1
	err := s.Update(p)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)

	slug := "test-post-delete"
	t.Cleanup(func() { cleanPosts(t, db, slug) })

	created, err := s.Create(testPost(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	p, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if p != nil {
		t.Error("expected post to be gone")
	}

	// Deleting again reports not found.
	err = s.Delete(created.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostStoreListRelated(t *testing.T) {
	db := testDB(t)
	ps := NewPostStore(db)
	cs := NewCategoryStore(db)

	catSlug := "test-related-cat"
	slugs := []string{"test-related-a", "test-related-b", "test-related-c"}
	t.Cleanup(func() {
		cleanPosts(t, db, slugs...)
		cleanCategories(t, db, catSlug)
	})

	cat, err := cs.Upsert("Related Cat", catSlug)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	var ids []int64
	for _, slug := range slugs {
		p := testPost(slug)
		p.CategoryID = &cat.ID
		created, err := ps.Create(p)
		if err != nil {
			t.Fatalf("Create %s: %v", slug, err)
		}
		ids = append(ids, created.ID)
	}

	related, err := ps.ListRelated(cat.ID, ids[0], 10)
	if err != nil {
		t.Fatalf("ListRelated: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("expected 2 related posts, got %d", len(related))
	}
	for _, p := range related {
		if p.ID == ids[0] {
			t.Error("related list must exclude the current post")
		}
	}

	// Limit is honored.
	related, err = ps.ListRelated(cat.ID, ids[0], 1)
	if err != nil {
		t.Fatalf("ListRelated (limit): %v", err)
	}
	if len(related) != 1 {
		t.Errorf("expected 1 related post, got %d", len(related))
	}
}

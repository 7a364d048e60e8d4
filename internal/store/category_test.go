// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"
)

func TestCategoryStoreUpsert(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	slug := "test-cat-upsert"
	t.Cleanup(func() { cleanCategories(t, db, slug) })

	first, err := s.Upsert("Monitoramento", slug)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected non-zero id")
	}
	if first.Name != "Monitoramento" {
		t.Errorf("name: got %q", first.Name)
	}

	// Upserting the same slug returns the same row.
	second, err := s.Upsert("Monitoramento", slug)
	if err != nil {
		t.Fatalf("Upsert (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same id on repeat upsert: got %d, want %d", second.ID, first.ID)
	}
}

func TestCategoryStoreUpsertRenames(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	slug := "test-cat-rename"
	t.Cleanup(func() { cleanCategories(t, db, slug) })

	first, err := s.Upsert("Nome Antigo", slug)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Same slug with a different name updates the name in place.
	second, err := s.Upsert("Nome Novo", slug)
	if err != nil {
		t.Fatalf("Upsert (rename): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same id after rename: got %d, want %d", second.ID, first.ID)
	}
	if second.Name != "Nome Novo" {
		t.Errorf("name: got %q, want %q", second.Name, "Nome Novo")
	}
}

func TestCategoryStoreFindBySlug(t *testing.T) {
	db := testDB(t)
	s := NewCategoryStore(db)

	slug := "test-cat-find"
	t.Cleanup(func() { cleanCategories(t, db, slug) })

	// Not found case.
	c, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug (not found): %v", err)
	}
	if c != nil {
		t.Fatal("expected nil for missing slug")
	}

	created, err := s.Upsert("Alarmes", slug)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	c, err = s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if c == nil || c.ID != created.ID {
		t.Fatalf("expected category %d, got %+v", created.ID, c)
	}
}

func TestCategoryStoreListWithRecentPosts(t *testing.T) {
	db := testDB(t)
	cs := NewCategoryStore(db)
	ps := NewPostStore(db)

	catSlug := "test-cat-recent"
	slugs := []string{"test-recent-1", "test-recent-2", "test-recent-3", "test-recent-4"}
	t.Cleanup(func() {
		cleanPosts(t, db, slugs...)
		cleanCategories(t, db, catSlug)
	})

	cat, err := cs.Upsert("Recentes", catSlug)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	for _, slug := range slugs {
		p := testPost(slug)
		p.CategoryID = &cat.ID
		if _, err := ps.Create(p); err != nil {
			t.Fatalf("Create %s: %v", slug, err)
		}
	}

	cats, err := cs.ListWithRecentPosts(5, 3)
	if err != nil {
		t.Fatalf("ListWithRecentPosts: %v", err)
	}

	var found bool
	for _, c := range cats {
		if c.Slug != catSlug {
			continue
		}
		found = true
		if len(c.Posts) != 3 {
			t.Errorf("expected 3 recent posts, got %d", len(c.Posts))
		}
		// Newest first.
		for i := 1; i < len(c.Posts); i++ {
			if c.Posts[i].CreatedAt.After(c.Posts[i-1].CreatedAt) {
				t.Error("recent posts not sorted newest first")
			}
		}
	}
	if !found {
		t.Fatalf("category %q missing from homepage listing", catSlug)
	}
}
